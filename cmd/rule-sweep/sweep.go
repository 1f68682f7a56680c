package main

import (
	"fmt"
	"sort"
	"sync"

	"camusicgen/internal/automaton"
)

type ruleResult struct {
	rule     int
	distinct int
	cycle    automaton.Cycle
	cycled   bool
	density  float64
	err      error
}

func (r ruleResult) String() string {
	period := "none"
	if r.cycled {
		period = fmt.Sprintf("start=%d period=%d", r.cycle.Start, r.cycle.Period)
	}
	return fmt.Sprintf("rule=%3d distinct=%d cycle=%s density=%.2f", r.rule, r.distinct, period, r.density)
}

// sweep evaluates all 256 rules on a pool of workers and returns the results
// ordered by distinct values (descending), then by rule number.
func sweep(initial automaton.Generation, length, workers int) ([]ruleResult, error) {
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan int)
	results := make(chan ruleResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rule := range jobs {
				results <- runRule(initial, rule, length)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for rule := 0; rule < 256; rule++ {
			jobs <- rule
		}
		close(jobs)
	}()

	var all []ruleResult
	var firstErr error
	for res := range results {
		if res.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("rule %d: %w", res.rule, res.err)
		}
		all = append(all, res)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].distinct != all[j].distinct {
			return all[i].distinct > all[j].distinct
		}
		return all[i].rule < all[j].rule
	})
	return all, nil
}

func runRule(initial automaton.Generation, rule, length int) ruleResult {
	seq, err := automaton.Generate(initial, rule, length)
	if err != nil {
		return ruleResult{rule: rule, err: err}
	}
	res := ruleResult{rule: rule, distinct: automaton.Distinct(seq.Integers)}
	res.cycle, res.cycled = automaton.FindCycle(seq.Integers)
	if n := seq.Len(); n > 0 {
		res.density = automaton.Density(seq.States[n-1])
	}
	return res
}
