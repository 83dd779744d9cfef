package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Slot is one player's value for the round being entered. The zero Slot is empty.
type Slot struct {
	value int
	set   bool
}

// Empty returns the empty slot.
func Empty() Slot { return Slot{} }

// Value returns a slot holding n. Negative values yield the empty slot.
func Value(n int) Slot {
	if n < 0 {
		return Slot{}
	}
	return Slot{value: n, set: true}
}

// ParseSlot converts user-entered text into a slot. Blank, non-numeric and
// negative input all map to the empty slot; large values are kept as-is.
func ParseSlot(raw string) Slot {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Slot{}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Slot{}
	}
	return Value(n)
}

func (s Slot) IsEmpty() bool { return !s.set }

// Int reports the stored value and whether the slot is set.
func (s Slot) Int() (int, bool) { return s.value, s.set }

// OrZero is the commit-time coercion of a slot.
func (s Slot) OrZero() int {
	if !s.set {
		return 0
	}
	return s.value
}

// String renders the slot the way an input field shows it: blank when empty.
func (s Slot) String() string {
	if !s.set {
		return ""
	}
	return strconv.Itoa(s.value)
}

func (s Slot) MarshalJSON() ([]byte, error) {
	if !s.set {
		return []byte(`""`), nil
	}
	return []byte(strconv.Itoa(s.value)), nil
}

func (s *Slot) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*s = Slot{}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("hand slot %s: %w", data, err)
	}
	if n < 0 {
		return fmt.Errorf("hand slot %d: negative", n)
	}
	*s = Value(n)
	return nil
}

// Hand is the in-progress, uncommitted entry for the current round.
type Hand []Slot

// NewHand returns n empty slots.
func NewHand(n int) Hand { return make(Hand, n) }

// Coerce converts the hand into a round entry, empty slots becoming 0.
// The result never shares memory with h.
func (h Hand) Coerce() RoundEntry {
	out := make(RoundEntry, len(h))
	for i, s := range h {
		out[i] = s.OrZero()
	}
	return out
}

func (h Hand) clone() Hand {
	out := make(Hand, len(h))
	copy(out, h)
	return out
}

// RoundEntry holds one committed round, aligned positionally with the players.
type RoundEntry []int

func (e RoundEntry) clone() RoundEntry {
	out := make(RoundEntry, len(e))
	copy(out, e)
	return out
}

// GameState is the whole mutable session: everything that is persisted.
type GameState struct {
	Round       int
	Scores      []RoundEntry
	Hands       Hand
	IsSubmitted bool
}

// NewState returns the fresh-start state for n players.
func NewState(n int) GameState {
	return GameState{
		Round:  1,
		Scores: []RoundEntry{},
		Hands:  NewHand(n),
	}
}

// Clone returns a deep copy of s.
func (s GameState) Clone() GameState {
	out := GameState{
		Round:       s.Round,
		Scores:      cloneEntries(s.Scores),
		Hands:       s.Hands.clone(),
		IsSubmitted: s.IsSubmitted,
	}
	return out
}

// FinalScores is what the result view shows: the committed rounds plus the
// coerced in-progress hand. It is never written back into Scores.
func (s GameState) FinalScores() []RoundEntry {
	out := cloneEntries(s.Scores)
	return append(out, s.Hands.Coerce())
}

func cloneEntries(in []RoundEntry) []RoundEntry {
	out := make([]RoundEntry, 0, len(in))
	for _, e := range in {
		out = append(out, e.clone())
	}
	return out
}

// Totals sums each player's column across entries.
func Totals(entries []RoundEntry, n int) []int {
	totals := make([]int, n)
	for _, e := range entries {
		for i := 0; i < n && i < len(e); i++ {
			totals[i] += e[i]
		}
	}
	return totals
}

// Leaders returns the indexes sharing the highest total.
func Leaders(totals []int) []int {
	if len(totals) == 0 {
		return nil
	}
	best := totals[0]
	for _, t := range totals[1:] {
		if t > best {
			best = t
		}
	}
	var out []int
	for i, t := range totals {
		if t == best {
			out = append(out, i)
		}
	}
	return out
}
