// Package genetic implements a population-based evolutionary search engine
// that is polymorphic over the candidate representation. Evaluation and
// reproduction of independent individuals run in parallel over a bounded
// goroutine pool.
package genetic

import (
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"
)

// Organism is the capability every evolvable representation must provide.
// Fitness is a cost, lower is better; it must be total (never NaN) and return
// +Inf for any individual violating domain constraints. Mutate perturbs the
// receiver in place. CrossOver combines two parents into a new child without
// modifying either parent.
type Organism[T any] interface {
	Fitness() float64
	Mutate(rng *rand.Rand)
	CrossOver(other T, rng *rand.Rand) T
	Clone() T
}

// Evaluated pairs an organism with its fitness for ranking within one
// generation.
type Evaluated[T Organism[T]] struct {
	Fitness  float64
	Organism T
}

// Config carries the search parameters. The zero value is not runnable; call
// Validate before use.
type Config struct {
	PopulationSize int     `json:"population_size"`
	Generations    int     `json:"generations"`
	EliteCount     int     `json:"elite_count"`
	MutationRate   float64 `json:"mutation_rate"`
	CrossoverRate  float64 `json:"crossover_rate"`
	Workers        int     `json:"workers"`
	RandomSeed     int64   `json:"random_seed"`
}

func (c Config) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("genetic: population size must be at least 2, got %d", c.PopulationSize)
	}
	if c.Generations < 1 {
		return fmt.Errorf("genetic: generations must be at least 1, got %d", c.Generations)
	}
	if c.EliteCount < 0 || c.EliteCount >= c.PopulationSize {
		return fmt.Errorf("genetic: elite count must be in [0, %d), got %d", c.PopulationSize, c.EliteCount)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("genetic: mutation rate must be in [0, 1], got %g", c.MutationRate)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("genetic: crossover rate must be in [0, 1], got %g", c.CrossoverRate)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.RandomSeed == 0 {
		c.RandomSeed = time.Now().UnixNano()
	}
	return c
}

// EvaluatePopulation computes fitness for every individual in parallel.
// Individuals are independent, so each task touches only its own output slot.
// workers <= 0 means GOMAXPROCS.
func EvaluatePopulation[T Organism[T]](population []T, workers int) []Evaluated[T] {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	evaluated := make([]Evaluated[T], len(population))
	p := pool.New().WithMaxGoroutines(workers)
	for i, individual := range population {
		i, individual := i, individual
		p.Go(func() {
			evaluated[i] = Evaluated[T]{Fitness: individual.Fitness(), Organism: individual}
		})
	}
	p.Wait()
	return evaluated
}

// Rank evaluates the population and sorts it ascending by fitness. The sort
// is unstable; ties carry no semantic ordering. +Inf individuals sink to the
// bottom, and NaN never reaches the comparator by the Organism contract.
func Rank[T Organism[T]](population []T, workers int) []Evaluated[T] {
	evaluated := EvaluatePopulation(population, workers)
	SortEvaluated(evaluated)
	return evaluated
}

// SortEvaluated orders evaluated individuals ascending by fitness in place.
func SortEvaluated[T Organism[T]](evaluated []Evaluated[T]) {
	sort.Slice(evaluated, func(i, j int) bool {
		return evaluated[i].Fitness < evaluated[j].Fitness
	})
}

// NextGeneration consumes a ranked (ascending) population and produces the
// next one. A window of size 2 slides with stride 1 over the non-elite tail,
// so each individual but the last parents twice and the window yields
// len(rest)-1 children. Each window draws one crossover coin; losers clone
// the first parent. Each child then independently draws a mutation coin.
// Finally clones of ranked[:EliteCount+1] are re-appended — the inclusive
// elite bound cancels the children shortfall exactly, conserving the
// population size for every EliteCount < len(ranked).
//
// All random draws derive from rng, so the transition is deterministic for a
// given seed even though children are produced in parallel.
func NextGeneration[T Organism[T]](ranked []Evaluated[T], cfg Config, rng *rand.Rand) []T {
	cfg = cfg.withDefaults()
	size := len(ranked)
	rest := ranked[cfg.EliteCount:]

	var children []T
	if len(rest) > 1 {
		children = make([]T, len(rest)-1)
		type draws struct {
			crossCoin float64
			mutCoin   float64
			seed      int64
		}
		coins := make([]draws, len(children))
		for i := range coins {
			coins[i] = draws{crossCoin: rng.Float64(), mutCoin: rng.Float64(), seed: rng.Int63()}
		}

		p := pool.New().WithMaxGoroutines(cfg.Workers)
		for i := range children {
			i := i
			p.Go(func() {
				local := rand.New(rand.NewSource(coins[i].seed))
				first := rest[i].Organism
				second := rest[i+1].Organism

				var child T
				if coins[i].crossCoin < cfg.CrossoverRate {
					child = first.CrossOver(second, local)
				} else {
					child = first.Clone()
				}
				if coins[i].mutCoin < cfg.MutationRate {
					child.Mutate(local)
				}
				children[i] = child
			})
		}
		p.Wait()
	}

	for _, elite := range ranked[:cfg.EliteCount+1] {
		children = append(children, elite.Organism.Clone())
	}

	// The window/elite arithmetic conserves size on its own; pad with clones
	// of the best (or trim the tail) if it ever does not.
	if len(children) != size {
		log.Printf("genetic: population size drifted from %d to %d, restoring", size, len(children))
		for len(children) < size {
			children = append(children, ranked[0].Organism.Clone())
		}
		children = children[:size]
	}
	return children
}

// Run drives the single-process loop: rank, report, reproduce, repeat, then
// one final ranking pass. progress may be nil.
func Run[T Organism[T]](population []T, cfg Config, progress func(generation int, ranked []Evaluated[T])) ([]Evaluated[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(population) != cfg.PopulationSize {
		return nil, fmt.Errorf("genetic: initial population has %d individuals, config says %d", len(population), cfg.PopulationSize)
	}
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.RandomSeed))

	for generation := 0; generation < cfg.Generations; generation++ {
		ranked := Rank(population, cfg.Workers)
		if progress != nil {
			progress(generation, ranked)
		}
		population = NextGeneration(ranked, cfg, rng)
	}

	final := Rank(population, cfg.Workers)
	if progress != nil {
		progress(cfg.Generations, final)
	}
	return final, nil
}
