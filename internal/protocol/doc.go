// Package protocol reads and writes the puzzles' text formats: the box list
// and truck assignment line of the dispatch puzzle, and the per-turn enemy
// pairs of the onboarding puzzle.
package protocol
