// Package draw generates unbiased ball selections from a cryptographically
// strong random source. Stateless; safe for concurrent callers.
package draw

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"

	"lottokit/internal/pkg/models"
)

// Numbers produces one valid selection for the rule: RedCount distinct reds
// in [1, RedMax] and BlueCount distinct blues in [1, BlueMax], both sorted
// ascending. The red and blue draws are independent.
func Numbers(rule models.LotteryRule) (models.Pick, error) {
	red, err := distinct(rule.RedCount, rule.RedMax)
	if err != nil {
		return models.Pick{}, fmt.Errorf("red draw: %w", err)
	}
	blue, err := distinct(rule.BlueCount, rule.BlueMax)
	if err != nil {
		return models.Pick{}, fmt.Errorf("blue draw: %w", err)
	}
	return models.Pick{Red: red, Blue: blue}, nil
}

// distinct draws count distinct integers uniformly from [1, max] by
// rejection sampling: already-chosen values are discarded and redrawn.
func distinct(count, max int) ([]int, error) {
	if count <= 0 || count > max {
		return nil, fmt.Errorf("cannot draw %d distinct values from [1, %d]", count, max)
	}
	seen := make(map[int]bool, count)
	out := make([]int, 0, count)
	for len(out) < count {
		n, err := uniform(max)
		if err != nil {
			return nil, err
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Ints(out)
	return out, nil
}

func uniform(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, fmt.Errorf("entropy source: %w", err)
	}
	return int(n.Int64()) + 1, nil
}
