package testdata

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/753753753/Card-game/internal/game"
)

const (
	minRounds = 3
	maxRounds = 8
	maxHand   = 13
)

// Seed records games sample finished games for players through archive.
// The same seed always produces the same games.
func Seed(ctx context.Context, archive game.Archive, players []string, games int, seed int64) error {
	if archive == nil {
		return fmt.Errorf("seed: archive not configured")
	}
	rng := rand.New(rand.NewSource(seed))
	for g := 0; g < games; g++ {
		if err := archive.Record(ctx, players, Rounds(rng, len(players))); err != nil {
			return fmt.Errorf("seed game %d: %w", g+1, err)
		}
	}
	return nil
}

// Rounds returns a random run of committed rounds for n players.
func Rounds(rng *rand.Rand, n int) []game.RoundEntry {
	count := minRounds + rng.Intn(maxRounds-minRounds+1)
	out := make([]game.RoundEntry, 0, count)
	for r := 0; r < count; r++ {
		entry := make(game.RoundEntry, n)
		for i := range entry {
			entry[i] = rng.Intn(maxHand + 1)
		}
		out = append(out, entry)
	}
	return out
}
