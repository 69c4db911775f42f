package cluster

import (
	"fmt"

	"github.com/sandeepkv93/distributed-tsp-ga/genetic"
	"github.com/sandeepkv93/distributed-tsp-ga/tsp"
)

// Worker runs the non-root side of the protocol: it blocks for the one-time
// problem broadcast, rebuilds its local distance matrix, then answers every
// sub-population with a fitness-annotated reply until a terminate message
// arrives.
type Worker struct {
	transport   Transport
	evalWorkers int
}

// NewWorker wraps a transport at a worker rank. evalWorkers bounds the
// in-process evaluation parallelism; <= 0 means GOMAXPROCS.
func NewWorker(transport Transport, evalWorkers int) (*Worker, error) {
	if transport.Rank() == 0 {
		return nil, fmt.Errorf("cluster: worker cannot run at rank 0")
	}
	return &Worker{transport: transport, evalWorkers: evalWorkers}, nil
}

// Run executes the worker loop until terminate. A malformed message or a
// transport failure aborts the worker; there is no recovery path, matching
// the coordinator's all-or-nothing model.
func (w *Worker) Run() error {
	payload, err := w.transport.RecvBroadcast()
	if err != nil {
		return fmt.Errorf("cluster: await problem broadcast: %w", err)
	}
	envelope, err := DecodeEnvelope(payload)
	if err != nil {
		return fmt.Errorf("cluster: await problem broadcast: %w", err)
	}
	if envelope.Type != MessageProblemData {
		return fmt.Errorf("cluster: expected ProblemData broadcast, got %s", envelope.Type)
	}
	matrix, err := tsp.NewDistanceMatrix(envelope.Weights)
	if err != nil {
		return fmt.Errorf("cluster: rebuild distance matrix: %w", err)
	}

	for {
		payload, err := w.transport.Recv(0)
		if err != nil {
			return fmt.Errorf("cluster: await coordinator message: %w", err)
		}
		envelope, err := DecodeEnvelope(payload)
		if err != nil {
			return err
		}

		switch envelope.Type {
		case MessageTerminate:
			return nil
		case MessagePopulation:
			if err := w.evaluateAndReply(matrix, envelope.Solutions); err != nil {
				return err
			}
		default:
			return fmt.Errorf("cluster: unexpected %s message in worker loop", envelope.Type)
		}
	}
}

func (w *Worker) evaluateAndReply(matrix *tsp.DistanceMatrix, solutions []tsp.Solution) error {
	tours := make([]*tsp.Tour, len(solutions))
	for i, solution := range solutions {
		tours[i] = tsp.NewTour(matrix, solution)
	}
	evaluated := genetic.EvaluatePopulation(tours, w.evalWorkers)

	reply := make([]EvaluatedSolution, len(evaluated))
	for i, ev := range evaluated {
		reply[i] = EvaluatedSolution{Fitness: ev.Fitness, Solution: ev.Organism.Solution()}
	}
	payload, err := EvaluatedEnvelope(reply).Encode()
	if err != nil {
		return err
	}
	if err := w.transport.Send(0, payload); err != nil {
		return fmt.Errorf("cluster: reply with evaluated population: %w", err)
	}
	return nil
}
