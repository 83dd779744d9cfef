package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// MinPlayers is the smallest table the tracker accepts.
const MinPlayers = 2

const similarMinLen = 4

var ErrPlayers = errors.New("invalid players")

// CheckPlayers trims the names and rejects blank or duplicate entries.
// Duplicates are compared case-insensitively.
func CheckPlayers(names []string) ([]string, error) {
	if len(names) < MinPlayers {
		return nil, fmt.Errorf("%w: need at least %d, got %d", ErrPlayers, MinPlayers, len(names))
	}
	out := make([]string, 0, len(names))
	seen := make(map[string]int, len(names))
	for i, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, fmt.Errorf("%w: player %d has no name", ErrPlayers, i+1)
		}
		key := strings.ToLower(name)
		if j, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: players %d and %d are both %q", ErrPlayers, j+1, i+1, name)
		}
		seen[key] = i
		out = append(out, name)
	}
	return out, nil
}

// SimilarPlayers returns pairs of names one edit apart, which are usually typos.
// Names shorter than similarMinLen are skipped; "A" and "B" are not a typo.
func SimilarPlayers(names []string) [][2]string {
	var out [][2]string
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a, b := strings.ToLower(names[i]), strings.ToLower(names[j])
			if len([]rune(a)) < similarMinLen || len([]rune(b)) < similarMinLen {
				continue
			}
			if levenshtein.ComputeDistance(a, b) == 1 {
				out = append(out, [2]string{names[i], names[j]})
			}
		}
	}
	return out
}
