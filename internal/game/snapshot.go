package game

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedSnapshot marks stored data that cannot be restored.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// snapshot is the persisted shape. Pointers let Decode tell a missing field
// from a zero value.
type snapshot struct {
	Round       *int          `json:"round"`
	Scores      *[]RoundEntry `json:"scores"`
	Hands       *Hand         `json:"hands"`
	IsSubmitted *bool         `json:"isSubmitted"`
}

// EncodeSnapshot serializes the full state.
func EncodeSnapshot(s GameState) ([]byte, error) {
	scores := s.Scores
	if scores == nil {
		scores = []RoundEntry{}
	}
	hands := s.Hands
	if hands == nil {
		hands = Hand{}
	}
	return json.Marshal(snapshot{
		Round:       &s.Round,
		Scores:      &scores,
		Hands:       &hands,
		IsSubmitted: &s.IsSubmitted,
	})
}

// DecodeSnapshot parses data for a game of n players. Any missing field or
// shape mismatch returns an error wrapping ErrMalformedSnapshot.
func DecodeSnapshot(data []byte, n int) (GameState, error) {
	var raw snapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return GameState{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	switch {
	case raw.Round == nil:
		return GameState{}, fmt.Errorf("%w: missing round", ErrMalformedSnapshot)
	case raw.Scores == nil:
		return GameState{}, fmt.Errorf("%w: missing scores", ErrMalformedSnapshot)
	case raw.Hands == nil:
		return GameState{}, fmt.Errorf("%w: missing hands", ErrMalformedSnapshot)
	case raw.IsSubmitted == nil:
		return GameState{}, fmt.Errorf("%w: missing isSubmitted", ErrMalformedSnapshot)
	}

	st := GameState{
		Round:       *raw.Round,
		Scores:      *raw.Scores,
		Hands:       *raw.Hands,
		IsSubmitted: *raw.IsSubmitted,
	}
	if st.Scores == nil {
		st.Scores = []RoundEntry{}
	}
	if err := validateState(st, n); err != nil {
		return GameState{}, err
	}
	return st, nil
}

func validateState(st GameState, n int) error {
	if st.Round < 1 {
		return fmt.Errorf("%w: round %d", ErrMalformedSnapshot, st.Round)
	}
	if st.Round != len(st.Scores)+1 {
		return fmt.Errorf("%w: round %d with %d committed rounds", ErrMalformedSnapshot, st.Round, len(st.Scores))
	}
	if len(st.Hands) != n {
		return fmt.Errorf("%w: %d hand slots for %d players", ErrMalformedSnapshot, len(st.Hands), n)
	}
	for i, e := range st.Scores {
		if len(e) != n {
			return fmt.Errorf("%w: round %d has %d entries for %d players", ErrMalformedSnapshot, i+1, len(e), n)
		}
		for _, v := range e {
			if v < 0 {
				return fmt.Errorf("%w: round %d has negative value %d", ErrMalformedSnapshot, i+1, v)
			}
		}
	}
	return nil
}
