package cluster

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSTransport realizes Transport over a NATS server. Point-to-point
// messages travel on per-pair subjects (<prefix>.p2p.<from>.<to>) and the
// problem broadcast on <prefix>.bcast, so delivery order per sender is
// preserved and a gather can wait on a specific worker. All subscriptions
// are established at connect time, before any send can happen.
type NATSTransport struct {
	rank   int
	size   int
	prefix string
	conn   *nats.Conn
	p2p    map[int]chan *nats.Msg
	bcast  chan *nats.Msg
	subs   []*nats.Subscription
}

// ConnectNATS joins the cluster rooted at the NATS server url. prefix
// namespaces one run's subjects so concurrent runs do not cross-talk.
func ConnectNATS(url, prefix string, rank, size int) (*NATSTransport, error) {
	if rank < 0 || rank >= size {
		return nil, fmt.Errorf("cluster: rank must be in [0, %d), got %d", size, rank)
	}
	conn, err := nats.Connect(url, nats.RetryOnFailedConnect(true), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("cluster: connect to NATS at %s: %w", url, err)
	}

	t := &NATSTransport{
		rank:   rank,
		size:   size,
		prefix: prefix,
		conn:   conn,
		p2p:    make(map[int]chan *nats.Msg),
	}

	subscribe := func(from int) error {
		ch := make(chan *nats.Msg, 16)
		sub, err := conn.ChanSubscribe(t.p2pSubject(from, rank), ch)
		if err != nil {
			return fmt.Errorf("cluster: subscribe to rank %d inbox: %w", from, err)
		}
		t.p2p[from] = ch
		t.subs = append(t.subs, sub)
		return nil
	}

	if rank == 0 {
		for from := 1; from < size; from++ {
			if err := subscribe(from); err != nil {
				conn.Close()
				return nil, err
			}
		}
	} else {
		if err := subscribe(0); err != nil {
			conn.Close()
			return nil, err
		}
		t.bcast = make(chan *nats.Msg, 4)
		sub, err := conn.ChanSubscribe(prefix+".bcast", t.bcast)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("cluster: subscribe to broadcast: %w", err)
		}
		t.subs = append(t.subs, sub)
	}

	// Make sure the server has registered every subscription before any
	// participant starts sending.
	if err := conn.Flush(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("cluster: flush subscriptions: %w", err)
	}
	return t, nil
}

func (t *NATSTransport) p2pSubject(from, to int) string {
	return fmt.Sprintf("%s.p2p.%d.%d", t.prefix, from, to)
}

func (t *NATSTransport) Rank() int { return t.rank }
func (t *NATSTransport) Size() int { return t.size }

func (t *NATSTransport) Send(to int, payload []byte) error {
	if to < 0 || to >= t.size || to == t.rank {
		return fmt.Errorf("cluster: send to invalid rank %d", to)
	}
	if err := t.conn.Publish(t.p2pSubject(t.rank, to), payload); err != nil {
		return fmt.Errorf("cluster: publish to rank %d: %w", to, err)
	}
	return nil
}

func (t *NATSTransport) Recv(from int) ([]byte, error) {
	ch, ok := t.p2p[from]
	if !ok {
		return nil, fmt.Errorf("cluster: no inbox for rank %d", from)
	}
	msg, ok := <-ch
	if !ok {
		return nil, fmt.Errorf("cluster: inbox for rank %d closed", from)
	}
	return msg.Data, nil
}

func (t *NATSTransport) Broadcast(payload []byte) error {
	if t.rank != 0 {
		return fmt.Errorf("cluster: broadcast from non-root rank %d", t.rank)
	}
	subject := t.prefix + ".bcast"
	if err := t.conn.Publish(subject, lengthFrame(len(payload))); err != nil {
		return fmt.Errorf("cluster: publish broadcast length: %w", err)
	}
	if err := t.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("cluster: publish broadcast payload: %w", err)
	}
	return t.conn.Flush()
}

func (t *NATSTransport) RecvBroadcast() ([]byte, error) {
	if t.bcast == nil {
		return nil, fmt.Errorf("cluster: rank %d has no broadcast subscription", t.rank)
	}
	frame, ok := <-t.bcast
	if !ok {
		return nil, fmt.Errorf("cluster: broadcast subscription closed")
	}
	want, err := parseLengthFrame(frame.Data)
	if err != nil {
		return nil, err
	}
	msg, ok := <-t.bcast
	if !ok {
		return nil, fmt.Errorf("cluster: broadcast subscription closed")
	}
	if len(msg.Data) != want {
		return nil, fmt.Errorf("cluster: broadcast payload has %d bytes, length frame said %d", len(msg.Data), want)
	}
	return msg.Data, nil
}

func (t *NATSTransport) Close() error {
	for _, sub := range t.subs {
		sub.Unsubscribe()
	}
	t.conn.Close()
	return nil
}
