// Package game holds the round-score state machine for a Callbreak table:
// the in-progress hand, committed rounds, the Editing/Finalized cycle, and
// the JSON snapshot the whole state is persisted as.
package game
