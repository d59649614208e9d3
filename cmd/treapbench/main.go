// Command treapbench times the treap against a map-backed set on the
// insert, re-insert, erase, re-erase workload, after cross-checking that the
// two agree on a random operation sequence.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	flags "github.com/jessevdk/go-flags"
	"github.com/sourcegraph/conc/pool"

	"github.com/jrhy/treap"
	"github.com/jrhy/treap/internal/bench"
)

type config struct {
	Count      int    `short:"n" long:"count" default:"1000000" description:"Keys per pass"`
	Rounds     int    `short:"r" long:"rounds" default:"1" description:"Times to measure each container"`
	Seed       uint64 `short:"s" long:"seed" description:"Treap priority seed; 0 seeds from the runtime"`
	Jobs       int    `short:"j" long:"jobs" default:"1" description:"Measurements to run at once"`
	CrossCheck int    `long:"crosscheck" default:"10000" description:"Random operations to cross-check before timing; 0 skips"`
	Verbose    bool   `short:"v" long:"verbose" description:"Log at debug level"`
}

type container struct {
	name   string
	newSet func() bench.Set
}

type result struct {
	container string
	round     int
	elapsed   time.Duration
}

func main() {
	var cfg config
	parser := flags.NewParser(&cfg, flags.Default)
	_, err := parser.Parse()
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "treapbench",
	})
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if err := run(logger, cfg); err != nil {
		logger.Error("benchmark failed", "err", err)
		os.Exit(1)
	}
}

func validate(cfg config) error {
	switch {
	case cfg.Count < 0:
		return errors.Newf("count must not be negative, got %d", cfg.Count)
	case cfg.Rounds < 1:
		return errors.Newf("rounds must be at least 1, got %d", cfg.Rounds)
	case cfg.Jobs < 1:
		return errors.Newf("jobs must be at least 1, got %d", cfg.Jobs)
	case cfg.CrossCheck < 0:
		return errors.Newf("crosscheck must not be negative, got %d", cfg.CrossCheck)
	}
	return nil
}

func newTreap(seed uint64) bench.Set {
	if seed == 0 {
		return treap.New[int]()
	}
	t, err := treap.NewWithConfig(treap.Config[int]{
		Less:       func(a, b int) bool { return a < b },
		Priorities: treap.NewRandSource(seed),
	})
	if err != nil {
		panic(err)
	}
	return t
}

func containers(cfg config) []container {
	return []container{
		{"map", func() bench.Set { return bench.NewMapSet() }},
		{"treap", func() bench.Set { return newTreap(cfg.Seed) }},
	}
}

func run(logger *log.Logger, cfg config) error {
	if err := validate(cfg); err != nil {
		return err
	}
	if cfg.CrossCheck > 0 {
		r := rand.New(rand.NewPCG(cfg.Seed, uint64(cfg.CrossCheck)))
		keyMax := cfg.CrossCheck/10 + 1
		logger.Debug("cross-checking", "ops", cfg.CrossCheck, "keyMax", keyMax)
		err := bench.CrossCheck(newTreap(cfg.Seed), bench.NewMapSet(), cfg.CrossCheck, keyMax, r)
		if err != nil {
			return errors.Wrap(err, "cross-check")
		}
		logger.Info("cross-check passed", "ops", cfg.CrossCheck)
	}

	results, err := measureAll(logger, cfg, containers(cfg))
	if err != nil {
		return err
	}
	for _, res := range results {
		fmt.Printf("%5s: %.3f\n", res.container, res.elapsed.Seconds())
	}
	return nil
}

// measureAll runs every container for every round on a pool of cfg.Jobs
// goroutines. Results come back in round, then container, order.
func measureAll(logger *log.Logger, cfg config, cs []container) ([]result, error) {
	results := make([]result, cfg.Rounds*len(cs))
	p := pool.New().WithMaxGoroutines(cfg.Jobs).WithErrors()
	for round := 0; round < cfg.Rounds; round++ {
		for i, c := range cs {
			round, c, slot := round, c, round*len(cs)+i
			p.Go(func() error {
				logger := logger.With("container", c.name, "round", round)
				logger.Debug("measuring", "n", cfg.Count)
				elapsed, err := bench.Measure(c.newSet(), cfg.Count)
				if err != nil {
					return errors.Wrapf(err, "%s round %d", c.name, round)
				}
				logger.Debug("measured", "elapsed", elapsed)
				results[slot] = result{c.name, round, elapsed}
				return nil
			})
		}
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
