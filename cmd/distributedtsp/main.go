// Command distributedtsp searches for low-cost tours over a weighted graph
// with a population-based evolutionary search, distributed across worker
// processes coordinated by rank 0. The same binary runs either role, or a
// self-contained local mode with goroutine workers.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sandeepkv93/distributed-tsp-ga/cluster"
	"github.com/sandeepkv93/distributed-tsp-ga/genetic"
	"github.com/sandeepkv93/distributed-tsp-ga/tsp"
)

func main() {
	role := flag.String("role", "local", "coordinator, worker, or local (in-process workers)")
	transportKind := flag.String("transport", "ws", "transport between processes: ws or nats")
	addr := flag.String("addr", "127.0.0.1:7946", "coordinator websocket address")
	natsURL := flag.String("nats-url", "nats://127.0.0.1:4222", "NATS server URL")
	natsPrefix := flag.String("nats-prefix", "tspga", "NATS subject prefix for this run")
	rank := flag.Int("rank", 1, "this worker's rank (worker role)")
	workers := flag.Int("workers", 4, "number of workers in the cluster")
	generations := flag.Int("generations", 50, "number of generations")
	population := flag.Int("population", 10000, "population size")
	elite := flag.Int("elite", 20, "elite count carried into the next generation")
	mutation := flag.Float64("mutation", 0.1, "mutation rate")
	crossover := flag.Float64("crossover", 0.9, "crossover rate")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	topK := flag.Int("topk", 10, "how many best results to report")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	cfg := cluster.Config{
		Config: genetic.Config{
			PopulationSize: *population,
			Generations:    *generations,
			EliteCount:     *elite,
			MutationRate:   *mutation,
			CrossoverRate:  *crossover,
			RandomSeed:     *seed,
		},
		ReportTopK: *topK,
	}

	var err error
	switch *role {
	case "local":
		err = runLocal(cfg, *workers)
	case "coordinator":
		err = runCoordinator(cfg, *transportKind, *addr, *natsURL, *natsPrefix, *workers)
	case "worker":
		err = runWorker(*transportKind, *addr, *natsURL, *natsPrefix, *rank, *workers)
	default:
		err = fmt.Errorf("unknown role %q", *role)
	}
	if err != nil {
		log.Fatalf("distributedtsp: %v", err)
	}
}

func runLocal(cfg cluster.Config, workers int) error {
	transports := cluster.NewChannelCluster(workers + 1)
	log.Printf("local mode: coordinator plus %d goroutine workers, seed %d", workers, cfg.RandomSeed)

	workerErrs := make(chan error, workers)
	for rank := 1; rank <= workers; rank++ {
		worker, err := cluster.NewWorker(transports[rank], 0)
		if err != nil {
			return err
		}
		go func() {
			workerErrs <- worker.Run()
		}()
	}

	if err := runSearch(transports[0], cfg); err != nil {
		return err
	}
	for i := 0; i < workers; i++ {
		if err := <-workerErrs; err != nil {
			return fmt.Errorf("worker failed: %w", err)
		}
	}
	return nil
}

func runCoordinator(cfg cluster.Config, kind, addr, natsURL, natsPrefix string, workers int) error {
	transport, err := dialTransport(kind, addr, natsURL, natsPrefix, 0, workers+1)
	if err != nil {
		return err
	}
	defer transport.Close()
	log.Printf("coordinator up: rank 0 of %d, seed %d", workers+1, cfg.RandomSeed)
	return runSearch(transport, cfg)
}

func runWorker(kind, addr, natsURL, natsPrefix string, rank, workers int) error {
	transport, err := dialTransport(kind, addr, natsURL, natsPrefix, rank, workers+1)
	if err != nil {
		return err
	}
	defer transport.Close()
	log.Printf("worker up: rank %d of %d", rank, workers+1)

	worker, err := cluster.NewWorker(transport, 0)
	if err != nil {
		return err
	}
	if err := worker.Run(); err != nil {
		return err
	}
	log.Printf("worker rank %d terminated", rank)
	return nil
}

func dialTransport(kind, addr, natsURL, natsPrefix string, rank, size int) (cluster.Transport, error) {
	switch kind {
	case "ws":
		if rank == 0 {
			return cluster.ListenWS(addr, size)
		}
		return cluster.DialWS(addr, rank, size)
	case "nats":
		return cluster.ConnectNATS(natsURL, natsPrefix, rank, size)
	default:
		return nil, fmt.Errorf("unknown transport %q", kind)
	}
}

func runSearch(transport cluster.Transport, cfg cluster.Config) error {
	matrix, err := tsp.NewDistanceMatrix(demoWeights)
	if err != nil {
		return err
	}

	progress := func(generation int, best []cluster.EvaluatedSolution) {
		fitnesses := make([]string, len(best))
		for i, ev := range best {
			fitnesses[i] = fmt.Sprintf("%.0f", ev.Fitness)
		}
		log.Printf("generation %d best: [%s]", generation, strings.Join(fitnesses, " "))
	}

	coordinator, err := cluster.NewCoordinator(transport, matrix, cfg, progress)
	if err != nil {
		return err
	}
	start := time.Now()
	final, err := coordinator.Run()
	if err != nil {
		return err
	}

	k := cfg.ReportTopK
	if k > len(final) {
		k = len(final)
	}
	log.Printf("done in %s", time.Since(start).Round(time.Millisecond))
	for i := 0; i < k; i++ {
		log.Printf("best %d: fitness %.0f path %v", i+1, final[i].Fitness, final[i].Solution.Path)
	}
	return nil
}
