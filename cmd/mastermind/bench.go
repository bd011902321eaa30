package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/schollz/progressbar/v3"

	"example.com/mastermind/internal/mastermind"
)

type benchResult struct {
	length   int
	strategy mastermind.Strategy
	games    int
	total    int
	worst    int
	worstFor mastermind.Combination
	rounds   map[int]int // rounds -> games
}

func (r benchResult) average() float64 {
	if r.games == 0 {
		return 0
	}
	return float64(r.total) / float64(r.games)
}

// runBench solves every secret of cfg.Length one game after another. Games
// share only the book, if any.
func runBench(ctx context.Context, cfg mastermind.Config, progress io.Writer) (benchResult, error) {
	size := mastermind.SpaceSize(cfg.Length)
	bar := progressbar.NewOptions(size,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription(fmt.Sprintf("%s n=%d", cfg.Strategy, cfg.Length)),
		progressbar.OptionShowCount(),
	)

	res := benchResult{
		length:   cfg.Length,
		strategy: cfg.Strategy,
		rounds:   make(map[int]int),
	}

	secret := mastermind.NewCombination(cfg.Length)
	for {
		report, err := mastermind.Solve(ctx, cfg, secret)
		if err != nil {
			return res, fmt.Errorf("secret %s: %w", secret, err)
		}

		n := len(report.Rounds)
		res.games++
		res.total += n
		res.rounds[n]++
		if n > res.worst {
			res.worst = n
			res.worstFor = secret.Clone()
		}
		_ = bar.Add(1)

		if !secret.Next() {
			break
		}
	}
	_ = bar.Finish()
	return res, nil
}

func (r benchResult) print(w io.Writer) {
	fmt.Fprintf(w, "\n%s, length %d: %d games\n", r.strategy, r.length, r.games)

	keys := make([]int, 0, len(r.rounds))
	for k := range r.rounds {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %4d rounds: %d\n", k, r.rounds[k])
	}
	fmt.Fprintf(w, "average %.3f, worst %d (%s)\n", r.average(), r.worst, r.worstFor)
}
