package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// EnemiesPerTurn is how many enemies the onboarding puzzle reports each turn.
const EnemiesPerTurn = 2

// Enemy is a ship approaching the player.
type Enemy struct {
	Name     string
	Distance int
}

// TurnReader reads onboarding turns from a stream of whitespace-separated
// tokens.
type TurnReader struct {
	sc *bufio.Scanner
}

// NewTurnReader wraps r.
func NewTurnReader(r io.Reader) *TurnReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &TurnReader{sc: sc}
}

// Next reads one turn. It returns io.EOF when the stream ends cleanly
// between turns.
func (t *TurnReader) Next() ([]Enemy, error) {
	enemies := make([]Enemy, 0, EnemiesPerTurn)
	for i := 0; i < EnemiesPerTurn; i++ {
		name, err := nextToken(t.sc, fmt.Sprintf("name of enemy %d", i+1))
		if err != nil {
			if i == 0 && errors.Is(err, ErrMalformedInput) {
				return nil, io.EOF
			}
			return nil, err
		}
		distTok, err := nextToken(t.sc, fmt.Sprintf("distance to %s", name))
		if err != nil {
			return nil, err
		}
		dist, err := strconv.Atoi(distTok)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid distance %q for %s", ErrMalformedInput, distTok, name)
		}
		enemies = append(enemies, Enemy{Name: name, Distance: dist})
	}
	return enemies, nil
}

// WriteTarget writes the name of the enemy to shoot.
func WriteTarget(w io.Writer, target Enemy) error {
	_, err := fmt.Fprintln(w, target.Name)
	return err
}
