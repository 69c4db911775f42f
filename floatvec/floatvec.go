// Package floatvec is a real-valued organism for the genetic engine. It has
// no distribution concerns; it exists to exercise the engine with a second
// representation whose crossover works at the bit level of the IEEE-754 gene
// encoding rather than on permutation segments.
package floatvec

import (
	"math"
	"math/rand"
)

// Objective scores a gene vector; lower is better.
type Objective func(genes []float64) float64

// Sphere is the classic sum-of-squares benchmark, minimized at the origin.
func Sphere(genes []float64) float64 {
	sum := 0.0
	for _, g := range genes {
		sum += g * g
	}
	return sum
}

// Vector is a fixed-length real vector evaluated by a shared objective.
type Vector struct {
	genes     []float64
	objective Objective
}

// New wraps genes without copying.
func New(genes []float64, objective Objective) *Vector {
	return &Vector{genes: genes, objective: objective}
}

// NewRandom draws each gene uniformly from [min, max).
func NewRandom(length int, min, max float64, objective Objective, rng *rand.Rand) *Vector {
	genes := make([]float64, length)
	for i := range genes {
		genes[i] = min + rng.Float64()*(max-min)
	}
	return &Vector{genes: genes, objective: objective}
}

// Genes returns the gene slice without copying.
func (v *Vector) Genes() []float64 {
	return v.genes
}

// Fitness applies the objective. NaN results are mapped to +Inf to keep
// fitness total for the engine's comparator.
func (v *Vector) Fitness() float64 {
	f := v.objective(v.genes)
	if math.IsNaN(f) {
		return math.Inf(1)
	}
	return f
}

// Mutate adds gaussian noise to one uniformly chosen gene.
func (v *Vector) Mutate(rng *rand.Rand) {
	i := rng.Intn(len(v.genes))
	v.genes[i] += rng.NormFloat64()
}

// CrossOver performs single-point crossover at a uniformly chosen bit offset
// into the vector's IEEE-754 representation: the child takes v's bits before
// the cut and other's bits from the cut on. The gene holding the cut is
// spliced from both parents' bit patterns, so the child can land outside
// either parent's gene range. Neither parent is modified.
func (v *Vector) CrossOver(other *Vector, rng *rand.Rand) *Vector {
	n := len(v.genes)
	child := make([]float64, n)
	cut := rng.Intn(n * 64)
	gene, bit := cut/64, uint(cut%64)

	copy(child[:gene], v.genes[:gene])
	copy(child[gene+1:], other.genes[gene+1:])

	// Splice the cut gene: high bits from v, low bits from other.
	highMask := ^uint64(0) << (64 - bit)
	if bit == 0 {
		highMask = 0
	}
	bits := math.Float64bits(v.genes[gene])&highMask | math.Float64bits(other.genes[gene])&^highMask
	child[gene] = math.Float64frombits(bits)

	return &Vector{genes: child, objective: v.objective}
}

// Clone deep-copies the vector. The objective stays shared.
func (v *Vector) Clone() *Vector {
	return &Vector{genes: append([]float64(nil), v.genes...), objective: v.objective}
}
