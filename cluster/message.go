// Package cluster distributes the genetic TSP search across one coordinator
// process (rank 0) and a fixed set of worker processes. Participants exchange
// a single envelope per message over a rank-addressed transport; generations
// are strictly sequential with a full gather barrier between scatter and
// selection.
package cluster

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/sandeepkv93/distributed-tsp-ga/tsp"
)

// MessageType tags the envelope union.
type MessageType uint8

const (
	// MessageTerminate tells a worker to leave its loop. No payload.
	MessageTerminate MessageType = iota
	// MessagePopulation carries a sub-population of tours to evaluate.
	MessagePopulation
	// MessageProblemData carries the shared distance matrix, broadcast once.
	MessageProblemData
	// MessageEvaluatedPopulation carries fitness-annotated tours back.
	MessageEvaluatedPopulation

	messageTypeCount
)

// EvaluatedSolution is a (fitness, tour) pair as it travels on the wire and
// as it is reported. Fitness may be +Inf for invalid tours, which is why the
// envelope is gob-encoded: encoding/json rejects infinities.
type EvaluatedSolution struct {
	Fitness  float64      `json:"fitness"`
	Solution tsp.Solution `json:"solution"`
}

// Envelope is the tagged union exchanged between coordinator and workers.
// Exactly one payload field is meaningful, selected by Type.
type Envelope struct {
	Type      MessageType
	Solutions []tsp.Solution
	Weights   [][]float64
	Evaluated []EvaluatedSolution
}

// TerminateEnvelope builds the terminate signal.
func TerminateEnvelope() Envelope {
	return Envelope{Type: MessageTerminate}
}

// PopulationEnvelope wraps a sub-population chunk.
func PopulationEnvelope(solutions []tsp.Solution) Envelope {
	return Envelope{Type: MessagePopulation, Solutions: solutions}
}

// ProblemEnvelope wraps the distance matrix weights.
func ProblemEnvelope(weights [][]float64) Envelope {
	return Envelope{Type: MessageProblemData, Weights: weights}
}

// EvaluatedEnvelope wraps a worker's fitness-annotated reply.
func EvaluatedEnvelope(evaluated []EvaluatedSolution) Envelope {
	return Envelope{Type: MessageEvaluatedPopulation, Evaluated: evaluated}
}

// Encode serializes the envelope with gob.
func (e Envelope) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return nil, fmt.Errorf("cluster: encode %v envelope: %w", e.Type, err)
	}
	return buf.Bytes(), nil
}

// DecodeEnvelope parses an envelope. A payload that does not decode, or that
// carries an unknown tag, is a protocol violation: the caller must treat it
// as fatal for the receiving process.
func DecodeEnvelope(payload []byte) (Envelope, error) {
	var e Envelope
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&e); err != nil {
		return Envelope{}, fmt.Errorf("cluster: decode envelope: %w", err)
	}
	if e.Type >= messageTypeCount {
		return Envelope{}, fmt.Errorf("cluster: unknown message type %d", e.Type)
	}
	return e, nil
}

func (t MessageType) String() string {
	switch t {
	case MessageTerminate:
		return "Terminate"
	case MessagePopulation:
		return "Population"
	case MessageProblemData:
		return "ProblemData"
	case MessageEvaluatedPopulation:
		return "EvaluatedPopulation"
	default:
		return fmt.Sprintf("MessageType(%d)", uint8(t))
	}
}
