package cluster

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/sandeepkv93/distributed-tsp-ga/genetic"
	"github.com/sandeepkv93/distributed-tsp-ga/tsp"
)

// Config parameterizes one distributed run. The embedded engine config
// governs selection and reproduction on the coordinator; ReportTopK bounds
// how many leading results each progress report carries.
type Config struct {
	genetic.Config
	ReportTopK int `json:"report_top_k"`
}

func (c Config) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if c.ReportTopK < 1 {
		return fmt.Errorf("cluster: report top-k must be at least 1, got %d", c.ReportTopK)
	}
	return nil
}

// Progress receives the best-ranked results after every gather. generation
// counts from 0; the final evaluation pass reports with generation equal to
// the configured generation count.
type Progress func(generation int, best []EvaluatedSolution)

// Coordinator drives the run from rank 0: it builds the initial population,
// broadcasts the problem once, then per generation scatters chunks, waits on
// the full gather barrier, and reproduces the next population. After the
// last generation it runs one more evaluation pass for reporting and sends
// every worker a terminate message.
type Coordinator struct {
	transport Transport
	matrix    *tsp.DistanceMatrix
	cfg       Config
	rng       *rand.Rand
	progress  Progress
}

// NewCoordinator validates the configuration against the transport. progress
// may be nil.
func NewCoordinator(transport Transport, matrix *tsp.DistanceMatrix, cfg Config, progress Progress) (*Coordinator, error) {
	if transport.Rank() != 0 {
		return nil, fmt.Errorf("cluster: coordinator must run at rank 0, transport says %d", transport.Rank())
	}
	if transport.Size() < 2 {
		return nil, fmt.Errorf("cluster: need at least one worker, transport size is %d", transport.Size())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.RandomSeed == 0 {
		return nil, fmt.Errorf("cluster: random seed must be set")
	}
	return &Coordinator{
		transport: transport,
		matrix:    matrix,
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(cfg.RandomSeed)),
		progress:  progress,
	}, nil
}

// Run executes the whole protocol and returns the final globally ranked
// evaluation of the last population. Any transport or protocol error is
// fatal: there is no retry, timeout, or worker reassignment.
func (c *Coordinator) Run() ([]EvaluatedSolution, error) {
	population := make([]tsp.Solution, c.cfg.PopulationSize)
	for i := range population {
		population[i] = tsp.RandomSolution(c.matrix.Size(), c.rng)
	}

	problem, err := ProblemEnvelope(c.matrix.Weights()).Encode()
	if err != nil {
		return nil, err
	}
	if err := c.transport.Broadcast(problem); err != nil {
		return nil, fmt.Errorf("cluster: broadcast problem: %w", err)
	}

	for generation := 0; generation < c.cfg.Generations; generation++ {
		evaluated, err := c.scatterGather(population)
		if err != nil {
			return nil, fmt.Errorf("cluster: generation %d: %w", generation, err)
		}
		c.report(generation, evaluated)

		ranked := make([]genetic.Evaluated[*tsp.Tour], len(evaluated))
		for i, ev := range evaluated {
			ranked[i] = genetic.Evaluated[*tsp.Tour]{
				Fitness:  ev.Fitness,
				Organism: tsp.NewTour(c.matrix, ev.Solution),
			}
		}
		next := genetic.NextGeneration(ranked, c.cfg.Config, c.rng)
		if len(next) != len(population) {
			return nil, fmt.Errorf("cluster: generation %d produced %d individuals, want %d", generation, len(next), len(population))
		}
		for i, tour := range next {
			population[i] = tour.Solution()
		}
	}

	final, err := c.scatterGather(population)
	if err != nil {
		return nil, fmt.Errorf("cluster: final evaluation: %w", err)
	}
	c.report(c.cfg.Generations, final)

	terminate, err := TerminateEnvelope().Encode()
	if err != nil {
		return nil, err
	}
	for rank := 1; rank < c.transport.Size(); rank++ {
		if err := c.transport.Send(rank, terminate); err != nil {
			return nil, fmt.Errorf("cluster: terminate rank %d: %w", rank, err)
		}
	}
	return final, nil
}

// scatterGather sends one contiguous chunk per worker, blocks until every
// worker has replied, and returns the merged, globally ascending ranking.
func (c *Coordinator) scatterGather(population []tsp.Solution) ([]EvaluatedSolution, error) {
	workers := c.transport.Size() - 1
	chunks := chunkSolutions(population, workers)
	for i, chunk := range chunks {
		payload, err := PopulationEnvelope(chunk).Encode()
		if err != nil {
			return nil, err
		}
		if err := c.transport.Send(i+1, payload); err != nil {
			return nil, fmt.Errorf("scatter to rank %d: %w", i+1, err)
		}
	}

	merged := make([]EvaluatedSolution, 0, len(population))
	for rank := 1; rank <= workers; rank++ {
		payload, err := c.transport.Recv(rank)
		if err != nil {
			return nil, fmt.Errorf("gather from rank %d: %w", rank, err)
		}
		envelope, err := DecodeEnvelope(payload)
		if err != nil {
			return nil, fmt.Errorf("gather from rank %d: %w", rank, err)
		}
		if envelope.Type != MessageEvaluatedPopulation {
			return nil, fmt.Errorf("gather from rank %d: unexpected %s message", rank, envelope.Type)
		}
		merged = append(merged, envelope.Evaluated...)
	}
	if len(merged) != len(population) {
		return nil, fmt.Errorf("gather merged %d results for %d solutions", len(merged), len(population))
	}

	sortEvaluatedSolutions(merged)
	return merged, nil
}

func (c *Coordinator) report(generation int, evaluated []EvaluatedSolution) {
	if c.progress == nil {
		return
	}
	k := c.cfg.ReportTopK
	if k > len(evaluated) {
		k = len(evaluated)
	}
	c.progress(generation, evaluated[:k])
}

// sortEvaluatedSolutions orders results ascending by fitness. The sort is
// unstable; +Inf entries sink to the bottom.
func sortEvaluatedSolutions(evaluated []EvaluatedSolution) {
	sort.Slice(evaluated, func(i, j int) bool {
		return evaluated[i].Fitness < evaluated[j].Fitness
	})
}

// chunkSolutions splits the population into n contiguous chunks whose sizes
// differ by at most one, so every solution lands in exactly one chunk even
// when n does not divide the population evenly.
func chunkSolutions(population []tsp.Solution, n int) [][]tsp.Solution {
	chunks := make([][]tsp.Solution, n)
	base := len(population) / n
	extra := len(population) % n
	offset := 0
	for i := range chunks {
		size := base
		if i < extra {
			size++
		}
		chunks[i] = population[offset : offset+size]
		offset += size
	}
	return chunks
}
