package genetic

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/distributed-tsp-ga/tsp"
)

func testMatrix(t *testing.T) *tsp.DistanceMatrix {
	t.Helper()
	m, err := tsp.NewDistanceMatrix([][]float64{
		{0, 2, 9, 10, 7},
		{2, 0, 6, 4, 3},
		{9, 6, 0, 8, 5},
		{10, 4, 8, 0, 1},
		{7, 3, 5, 1, 0},
	})
	require.NoError(t, err)
	return m
}

func randomTours(m *tsp.DistanceMatrix, n int, rng *rand.Rand) []*tsp.Tour {
	tours := make([]*tsp.Tour, n)
	for i := range tours {
		tours[i] = tsp.NewRandomTour(m, rng)
	}
	return tours
}

func TestConfigValidate(t *testing.T) {
	valid := Config{PopulationSize: 8, Generations: 3, EliteCount: 1, MutationRate: 0.1, CrossoverRate: 0.9}
	require.NoError(t, valid.Validate())

	cases := map[string]Config{
		"tiny population":    {PopulationSize: 1, Generations: 3, EliteCount: 0},
		"no generations":     {PopulationSize: 8, Generations: 0, EliteCount: 0},
		"elite too large":    {PopulationSize: 8, Generations: 3, EliteCount: 8},
		"negative elite":     {PopulationSize: 8, Generations: 3, EliteCount: -1},
		"mutation above one": {PopulationSize: 8, Generations: 3, EliteCount: 1, MutationRate: 1.5},
		"negative crossover": {PopulationSize: 8, Generations: 3, EliteCount: 1, CrossoverRate: -0.1},
	}
	for name, cfg := range cases {
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestEvaluatePopulationMatchesSerial(t *testing.T) {
	m := testMatrix(t)
	rng := rand.New(rand.NewSource(3))
	tours := randomTours(m, 30, rng)

	evaluated := EvaluatePopulation(tours, 4)
	require.Len(t, evaluated, 30)
	for i, ev := range evaluated {
		assert.Same(t, tours[i], ev.Organism)
		assert.Equal(t, tours[i].Fitness(), ev.Fitness)
	}
}

func TestRankAscendingWithInvalidTours(t *testing.T) {
	m := testMatrix(t)
	rng := rand.New(rand.NewSource(5))
	tours := randomTours(m, 10, rng)
	// Two invalid tours; they must sink to the bottom with +Inf.
	tours = append(tours,
		tsp.NewTour(m, tsp.Solution{Path: []int{0, 0, 1, 2, 3}}),
		tsp.NewTour(m, tsp.Solution{Path: []int{1, 1, 1, 1, 1}}),
	)

	ranked := Rank(tours, 4)
	require.Len(t, ranked, 12)
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].Fitness, ranked[i].Fitness)
	}
	assert.True(t, math.IsInf(ranked[10].Fitness, 1))
	assert.True(t, math.IsInf(ranked[11].Fitness, 1))
}

func TestNextGenerationConservesSize(t *testing.T) {
	m := testMatrix(t)
	rng := rand.New(rand.NewSource(7))
	const size = 8
	tours := randomTours(m, size, rng)
	ranked := Rank(tours, 2)

	for elite := 0; elite < size; elite++ {
		cfg := Config{
			PopulationSize: size,
			Generations:    1,
			EliteCount:     elite,
			MutationRate:   0.5,
			CrossoverRate:  0.5,
			RandomSeed:     1,
		}
		next := NextGeneration(ranked, cfg, rand.New(rand.NewSource(int64(elite)+1)))
		assert.Len(t, next, size, "elite count %d", elite)
	}
}

func TestNextGenerationClonesWithoutCrossover(t *testing.T) {
	m := testMatrix(t)
	rng := rand.New(rand.NewSource(9))
	const size = 6
	ranked := Rank(randomTours(m, size, rng), 2)

	cfg := Config{
		PopulationSize: size,
		Generations:    1,
		EliteCount:     1,
		MutationRate:   0,
		CrossoverRate:  0,
		RandomSeed:     1,
	}
	next := NextGeneration(ranked, cfg, rand.New(rand.NewSource(1)))
	require.Len(t, next, size)

	rest := ranked[cfg.EliteCount:]
	// Children are clones of each window's first parent, in order.
	for i := 0; i < len(rest)-1; i++ {
		assert.Equal(t, rest[i].Organism.Path(), next[i].Path())
		assert.NotSame(t, rest[i].Organism, next[i])
	}
	// The elite tail re-appends ranked[:EliteCount+1].
	for i := 0; i <= cfg.EliteCount; i++ {
		assert.Equal(t, ranked[i].Organism.Path(), next[len(rest)-1+i].Path())
	}
}

func TestNextGenerationDeterministicForSeed(t *testing.T) {
	m := testMatrix(t)
	rng := rand.New(rand.NewSource(21))
	const size = 10
	ranked := Rank(randomTours(m, size, rng), 2)

	cfg := Config{
		PopulationSize: size,
		Generations:    1,
		EliteCount:     2,
		MutationRate:   0.3,
		CrossoverRate:  0.8,
		Workers:        4,
		RandomSeed:     1,
	}
	first := NextGeneration(ranked, cfg, rand.New(rand.NewSource(42)))
	second := NextGeneration(ranked, cfg, rand.New(rand.NewSource(42)))
	require.Len(t, second, size)
	for i := range first {
		assert.Equal(t, first[i].Path(), second[i].Path())
	}
}

func TestRunBestFitnessNonIncreasing(t *testing.T) {
	m := testMatrix(t)
	rng := rand.New(rand.NewSource(23))
	cfg := Config{
		PopulationSize: 4,
		Generations:    3,
		EliteCount:     1,
		MutationRate:   0,
		CrossoverRate:  1,
		RandomSeed:     23,
	}

	var bests []float64
	final, err := Run(randomTours(m, 4, rng), cfg, func(generation int, ranked []Evaluated[*tsp.Tour]) {
		assert.Len(t, ranked, 4, "generation %d", generation)
		bests = append(bests, ranked[0].Fitness)
	})
	require.NoError(t, err)
	require.Len(t, final, 4)

	require.Len(t, bests, cfg.Generations+1)
	for i := 1; i < len(bests); i++ {
		assert.LessOrEqual(t, bests[i], bests[i-1])
	}
}

func TestRunRejectsMismatchedPopulation(t *testing.T) {
	m := testMatrix(t)
	rng := rand.New(rand.NewSource(29))
	cfg := Config{PopulationSize: 8, Generations: 1, EliteCount: 1, RandomSeed: 1}

	_, err := Run(randomTours(m, 5, rng), cfg, nil)
	assert.Error(t, err)
}
