package cluster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/distributed-tsp-ga/tsp"
)

func TestEnvelopeRoundTrips(t *testing.T) {
	envelopes := map[string]Envelope{
		"terminate": TerminateEnvelope(),
		"population": PopulationEnvelope([]tsp.Solution{
			{Path: []int{0, 1, 2}},
			{Path: []int{2, 1, 0}},
		}),
		"problem": ProblemEnvelope([][]float64{{0, 1}, {1, 0}}),
		"evaluated": EvaluatedEnvelope([]EvaluatedSolution{
			{Fitness: 12.5, Solution: tsp.Solution{Path: []int{0, 1, 2}}},
			{Fitness: math.Inf(1), Solution: tsp.Solution{Path: []int{0, 0, 2}}},
		}),
	}

	for name, envelope := range envelopes {
		payload, err := envelope.Encode()
		require.NoError(t, err, name)

		decoded, err := DecodeEnvelope(payload)
		require.NoError(t, err, name)
		assert.Equal(t, envelope.Type, decoded.Type, name)
		assert.Equal(t, envelope.Solutions, decoded.Solutions, name)
		assert.Equal(t, envelope.Weights, decoded.Weights, name)
		assert.Equal(t, envelope.Evaluated, decoded.Evaluated, name)
	}
}

func TestEnvelopeCarriesInfiniteFitness(t *testing.T) {
	payload, err := EvaluatedEnvelope([]EvaluatedSolution{
		{Fitness: math.Inf(1), Solution: tsp.Solution{Path: []int{1, 1}}},
	}).Encode()
	require.NoError(t, err)

	decoded, err := DecodeEnvelope(payload)
	require.NoError(t, err)
	assert.True(t, math.IsInf(decoded.Evaluated[0].Fitness, 1))
}

func TestDecodeEnvelopeRejectsGarbage(t *testing.T) {
	_, err := DecodeEnvelope([]byte("not an envelope"))
	assert.Error(t, err)

	_, err = DecodeEnvelope(nil)
	assert.Error(t, err)
}

func TestDecodeEnvelopeRejectsUnknownType(t *testing.T) {
	payload, err := Envelope{Type: MessageType(42)}.Encode()
	require.NoError(t, err)

	_, err = DecodeEnvelope(payload)
	assert.Error(t, err)
}

func TestMessageTypeString(t *testing.T) {
	assert.Equal(t, "Terminate", MessageTerminate.String())
	assert.Equal(t, "Population", MessagePopulation.String())
	assert.Equal(t, "ProblemData", MessageProblemData.String())
	assert.Equal(t, "EvaluatedPopulation", MessageEvaluatedPopulation.String())
}
