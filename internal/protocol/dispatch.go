package protocol

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/eugenenazirov/great-dispatch/internal/fleet"
)

// maxPrealloc bounds the capacity reserved up front from the declared count.
const maxPrealloc = 1 << 16

// ReadBoxes parses a box count followed by that many "weight volume" pairs.
// Item ids come from seq in input order.
func ReadBoxes(r io.Reader, seq *fleet.Sequence) ([]fleet.Item, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	countTok, err := nextToken(sc, "box count")
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(countTok)
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: invalid box count %q", ErrMalformedInput, countTok)
	}

	items := make([]fleet.Item, 0, min(count, maxPrealloc))
	for i := 0; i < count; i++ {
		weight, err := nextFloat(sc, fmt.Sprintf("weight of box %d", i))
		if err != nil {
			return nil, err
		}
		volume, err := nextFloat(sc, fmt.Sprintf("volume of box %d", i))
		if err != nil {
			return nil, err
		}
		if weight < 0 || volume < 0 {
			return nil, fmt.Errorf("%w: box %d has negative weight or volume", ErrMalformedInput, i)
		}
		items = append(items, fleet.NewItem(seq, weight, volume))
	}
	return items, nil
}

// WriteAssignment writes the truck of every item, in input order, on one line.
func WriteAssignment(w io.Writer, items []fleet.Item) error {
	parts := make([]string, len(items))
	for i, item := range items {
		if item.Bin == fleet.Unassigned {
			return fmt.Errorf("box %d has no truck", item.ID)
		}
		parts[i] = strconv.Itoa(item.Bin)
	}
	_, err := io.WriteString(w, strings.Join(parts, " ")+"\n")
	return err
}

func nextToken(sc *bufio.Scanner, what string) (string, error) {
	if sc.Scan() {
		return sc.Text(), nil
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", what, err)
	}
	return "", fmt.Errorf("%w: missing %s", ErrMalformedInput, what)
}

func nextFloat(sc *bufio.Scanner, what string) (float64, error) {
	tok, err := nextToken(sc, what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrMalformedInput, what, tok)
	}
	return v, nil
}
