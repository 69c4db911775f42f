package floatvec

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/distributed-tsp-ga/genetic"
)

func TestSphere(t *testing.T) {
	assert.Equal(t, 0.0, Sphere([]float64{0, 0, 0}))
	assert.Equal(t, 14.0, Sphere([]float64{1, 2, 3}))
}

func TestFitnessMapsNaNToInf(t *testing.T) {
	v := New([]float64{1}, func([]float64) float64 { return math.NaN() })
	assert.True(t, math.IsInf(v.Fitness(), 1))
}

func TestMutateTouchesOneGene(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	v := New([]float64{1, 2, 3, 4}, Sphere)
	before := append([]float64(nil), v.Genes()...)

	v.Mutate(rng)

	changed := 0
	for i := range before {
		if v.Genes()[i] != before[i] {
			changed++
		}
	}
	assert.LessOrEqual(t, changed, 1)
}

func TestCrossOverSplicesBits(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := NewRandom(6, -5, 5, Sphere, rng)
	b := NewRandom(6, -5, 5, Sphere, rng)
	aBefore := append([]float64(nil), a.Genes()...)
	bBefore := append([]float64(nil), b.Genes()...)

	for i := 0; i < 50; i++ {
		child := a.CrossOver(b, rng)
		require.Len(t, child.Genes(), 6)

		// At most one gene (the one holding the cut) may differ from both
		// parents; every other position copies one parent verbatim.
		spliced := 0
		for j, g := range child.Genes() {
			if g != a.Genes()[j] && g != b.Genes()[j] {
				spliced++
			}
		}
		assert.LessOrEqual(t, spliced, 1)

		assert.Equal(t, aBefore, a.Genes())
		assert.Equal(t, bBefore, b.Genes())
	}
}

func TestCloneIsDeep(t *testing.T) {
	v := New([]float64{1, 2}, Sphere)
	clone := v.Clone()
	clone.Genes()[0] = 99
	assert.Equal(t, 1.0, v.Genes()[0])
}

func TestEngineIntegration(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	cfg := genetic.Config{
		PopulationSize: 40,
		Generations:    30,
		EliteCount:     2,
		MutationRate:   0.2,
		CrossoverRate:  0.8,
		RandomSeed:     5,
	}

	population := make([]*Vector, cfg.PopulationSize)
	for i := range population {
		population[i] = NewRandom(4, -10, 10, Sphere, rng)
	}
	initialBest := genetic.Rank(population, 2)[0].Fitness

	final, err := genetic.Run(population, cfg, nil)
	require.NoError(t, err)
	require.Len(t, final, cfg.PopulationSize)
	assert.LessOrEqual(t, final[0].Fitness, initialBest)
}
