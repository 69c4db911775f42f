package cluster

import (
	"encoding/binary"
	"fmt"
)

// Transport is the point of contact with the message-passing layer. The
// coordinator is rank 0; workers hold ranks 1..Size()-1. Send and Recv block
// on both ends and carry a single opaque payload; Broadcast delivers one
// payload from rank 0 to every worker with length-then-payload framing.
// No operation has a timeout: a peer that never answers stalls the run.
type Transport interface {
	Rank() int
	Size() int
	Send(to int, payload []byte) error
	Recv(from int) ([]byte, error)
	Broadcast(payload []byte) error
	RecvBroadcast() ([]byte, error)
	Close() error
}

// lengthFrame is the fixed-size first half of a broadcast: the payload length
// as a big-endian uint64, mirroring the length-then-payload protocol.
func lengthFrame(n int) []byte {
	frame := make([]byte, 8)
	binary.BigEndian.PutUint64(frame, uint64(n))
	return frame
}

func parseLengthFrame(frame []byte) (int, error) {
	if len(frame) != 8 {
		return 0, fmt.Errorf("cluster: length frame has %d bytes, want 8", len(frame))
	}
	return int(binary.BigEndian.Uint64(frame)), nil
}

// ChannelTransport links participants inside one process through buffered
// channels. It backs the tests and the single-binary local mode, where each
// worker is a goroutine instead of a process.
type ChannelTransport struct {
	rank  int
	size  int
	links [][]chan []byte // links[from][to]
	bcast []chan []byte   // one broadcast stream per worker
}

// NewChannelCluster wires size participants together and returns one
// transport per rank, index 0 being the coordinator's.
func NewChannelCluster(size int) []*ChannelTransport {
	links := make([][]chan []byte, size)
	for from := range links {
		links[from] = make([]chan []byte, size)
		for to := range links[from] {
			links[from][to] = make(chan []byte, 4)
		}
	}
	bcast := make([]chan []byte, size)
	for i := range bcast {
		bcast[i] = make(chan []byte, 2)
	}

	transports := make([]*ChannelTransport, size)
	for rank := range transports {
		transports[rank] = &ChannelTransport{rank: rank, size: size, links: links, bcast: bcast}
	}
	return transports
}

func (t *ChannelTransport) Rank() int { return t.rank }
func (t *ChannelTransport) Size() int { return t.size }

func (t *ChannelTransport) Send(to int, payload []byte) error {
	if to < 0 || to >= t.size || to == t.rank {
		return fmt.Errorf("cluster: send to invalid rank %d", to)
	}
	t.links[t.rank][to] <- append([]byte(nil), payload...)
	return nil
}

func (t *ChannelTransport) Recv(from int) ([]byte, error) {
	if from < 0 || from >= t.size || from == t.rank {
		return nil, fmt.Errorf("cluster: recv from invalid rank %d", from)
	}
	return <-t.links[from][t.rank], nil
}

func (t *ChannelTransport) Broadcast(payload []byte) error {
	if t.rank != 0 {
		return fmt.Errorf("cluster: broadcast from non-root rank %d", t.rank)
	}
	for to := 1; to < t.size; to++ {
		t.bcast[to] <- lengthFrame(len(payload))
		t.bcast[to] <- append([]byte(nil), payload...)
	}
	return nil
}

func (t *ChannelTransport) RecvBroadcast() ([]byte, error) {
	if t.rank == 0 {
		return nil, fmt.Errorf("cluster: root rank receiving its own broadcast")
	}
	want, err := parseLengthFrame(<-t.bcast[t.rank])
	if err != nil {
		return nil, err
	}
	payload := <-t.bcast[t.rank]
	if len(payload) != want {
		return nil, fmt.Errorf("cluster: broadcast payload has %d bytes, length frame said %d", len(payload), want)
	}
	return payload, nil
}

func (t *ChannelTransport) Close() error { return nil }
