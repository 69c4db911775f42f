// Package tsp models candidate solutions for the traveling salesman problem:
// a shared read-only distance matrix and permutation-encoded tours that plug
// into the genetic engine.
package tsp

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	ErrEmptyMatrix     = errors.New("tsp: distance matrix is empty")
	ErrNonSquareMatrix = errors.New("tsp: distance matrix is not square")
	ErrBadWeight       = errors.New("tsp: distance matrix contains NaN weight")
)

// DistanceMatrix is a dense weighted adjacency over N nodes. It is immutable
// once constructed and is shared by pointer across every tour built on it;
// workers rebuild an equivalent matrix from the broadcast payload.
type DistanceMatrix struct {
	weights [][]float64
}

// NewDistanceMatrix validates and deep-copies weights. The matrix must be
// square, non-empty and free of NaN entries so that tour fitness stays total.
func NewDistanceMatrix(weights [][]float64) (*DistanceMatrix, error) {
	n := len(weights)
	if n == 0 {
		return nil, ErrEmptyMatrix
	}
	copied := make([][]float64, n)
	for i, row := range weights {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrNonSquareMatrix, i, len(row), n)
		}
		copied[i] = make([]float64, n)
		for j, w := range row {
			if math.IsNaN(w) {
				return nil, fmt.Errorf("%w: entry [%d][%d]", ErrBadWeight, i, j)
			}
			copied[i][j] = w
		}
	}
	return &DistanceMatrix{weights: copied}, nil
}

// Size returns the number of nodes.
func (m *DistanceMatrix) Size() int {
	return len(m.weights)
}

// At returns the weight of the edge i -> j.
func (m *DistanceMatrix) At(i, j int) float64 {
	return m.weights[i][j]
}

// Weights returns a deep copy suitable for wire transfer.
func (m *DistanceMatrix) Weights() [][]float64 {
	out := make([][]float64, len(m.weights))
	for i, row := range m.weights {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Solution is the wire-visible form of a tour: an ordered sequence of node
// indices, conceptually a permutation of [0, N). Violations are not rejected
// here; Tour.Fitness penalizes them instead.
type Solution struct {
	Path []int `json:"path"`
}

// IdentitySolution returns the tour 0,1,...,n-1.
func IdentitySolution(n int) Solution {
	path := make([]int, n)
	for i := range path {
		path[i] = i
	}
	return Solution{Path: path}
}

// RandomSolution returns a uniformly random permutation of [0, n).
func RandomSolution(n int, rng *rand.Rand) Solution {
	s := IdentitySolution(n)
	rng.Shuffle(n, func(i, j int) {
		s.Path[i], s.Path[j] = s.Path[j], s.Path[i]
	})
	return s
}

// Clone returns a solution with its own path buffer.
func (s Solution) Clone() Solution {
	return Solution{Path: append([]int(nil), s.Path...)}
}

// Tour pairs a Solution with the shared distance matrix. It is the unit the
// genetic operators manipulate.
type Tour struct {
	matrix   *DistanceMatrix
	solution Solution
}

// NewTour wraps an existing solution. The solution is not copied.
func NewTour(m *DistanceMatrix, s Solution) *Tour {
	return &Tour{matrix: m, solution: s}
}

// NewRandomTour builds a tour over a fresh random permutation.
func NewRandomTour(m *DistanceMatrix, rng *rand.Rand) *Tour {
	return &Tour{matrix: m, solution: RandomSolution(m.Size(), rng)}
}

// Solution returns the underlying solution without copying.
func (t *Tour) Solution() Solution {
	return t.solution
}

// Path returns the tour's node sequence without copying.
func (t *Tour) Path() []int {
	return t.solution.Path
}

// Fitness is the open-path cost: the sum of edge weights along consecutive
// pairs (the first and last nodes are not implicitly connected). Lower is
// better. Any path that is not a permutation of all node indices is worth
// exactly +Inf, so invalid tours lose every selection without a separate
// validity check at call sites.
func (t *Tour) Fitness() float64 {
	n := t.matrix.Size()
	if len(t.solution.Path) != n {
		return math.Inf(1)
	}
	seen := make([]bool, n)
	for _, node := range t.solution.Path {
		if node < 0 || node >= n || seen[node] {
			return math.Inf(1)
		}
		seen[node] = true
	}
	cost := 0.0
	for i := 0; i+1 < n; i++ {
		cost += t.matrix.At(t.solution.Path[i], t.solution.Path[i+1])
	}
	return cost
}

// Mutate swaps the entries at two independently uniform positions. The
// positions may coincide, making a no-op mutation possible. A swap always
// preserves permutation validity.
func (t *Tour) Mutate(rng *rand.Rand) {
	path := t.solution.Path
	i := rng.Intn(len(path))
	j := rng.Intn(len(path))
	path[i], path[j] = path[j], path[i]
}

// CrossOver produces one child: the prefix [0,start) and suffix [end,N) come
// from t, the middle segment [start,end) from other, at identical positions.
// The donated segment may duplicate or omit indices relative to the flanks;
// such offspring are not repaired and instead score +Inf (see Fitness).
// Neither parent is modified and the child owns a fresh buffer.
func (t *Tour) CrossOver(other *Tour, rng *rand.Rand) *Tour {
	n := len(t.solution.Path)
	start := rng.Intn(n)
	end := start + rng.Intn(n-start)
	child := make([]int, n)
	copy(child[:start], t.solution.Path[:start])
	copy(child[start:end], other.solution.Path[start:end])
	copy(child[end:], t.solution.Path[end:])
	return &Tour{matrix: t.matrix, solution: Solution{Path: child}}
}

// Clone deep-copies the tour. The matrix stays shared.
func (t *Tour) Clone() *Tour {
	return &Tour{matrix: t.matrix, solution: t.solution.Clone()}
}
