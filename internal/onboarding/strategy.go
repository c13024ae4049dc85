package onboarding

import (
	"errors"
	"fmt"

	"github.com/eugenenazirov/great-dispatch/internal/protocol"
)

// ErrNoEnemies is returned when there is nothing to select from.
var ErrNoEnemies = errors.New("no enemies to select from")

// ErrUnknownStrategy is returned when a strategy name is not recognised.
var ErrUnknownStrategy = errors.New("unknown targeting strategy")

// Strategy decides which enemy to shoot.
type Strategy string

const (
	// Closest shoots the nearest enemy.
	Closest Strategy = "closest"
	// Farthest shoots the most distant enemy.
	Farthest Strategy = "farthest"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(name); s {
	case Closest, Farthest:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Select picks the target among enemies. On equal distances the enemy read
// first wins.
func (s Strategy) Select(enemies []protocol.Enemy) (protocol.Enemy, error) {
	if s != Closest && s != Farthest {
		return protocol.Enemy{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, string(s))
	}
	if len(enemies) == 0 {
		return protocol.Enemy{}, ErrNoEnemies
	}

	best := enemies[0]
	for _, e := range enemies[1:] {
		switch s {
		case Farthest:
			if e.Distance > best.Distance {
				best = e
			}
		case Closest:
			if e.Distance < best.Distance {
				best = e
			}
		}
	}
	return best, nil
}
