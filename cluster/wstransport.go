package cluster

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// joinMessage is the first frame a worker sends after dialing, announcing
// which rank it occupies.
type joinMessage struct {
	Rank int `json:"rank"`
}

type wsPeer struct {
	conn    *websocket.Conn
	session string
	writeMu sync.Mutex
}

func (p *wsPeer) write(payload []byte) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.conn.WriteMessage(websocket.BinaryMessage, payload)
}

func (p *wsPeer) read() ([]byte, error) {
	messageType, payload, err := p.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	if messageType != websocket.BinaryMessage {
		return nil, fmt.Errorf("cluster: unexpected websocket message type %d", messageType)
	}
	return payload, nil
}

// WSTransport realizes Transport over websocket connections: rank 0 listens,
// every worker dials in and identifies itself with a join frame. Payloads
// travel as binary messages.
type WSTransport struct {
	rank     int
	size     int
	peers    map[int]*wsPeer
	joinMu   sync.Mutex    // guards peers while workers are still joining
	ready    chan struct{} // closed once every worker has joined
	listener net.Listener
	server   *http.Server
}

// ListenWS starts the coordinator side on addr and returns as soon as the
// listener is bound; pass a port of 0 to let the OS pick and read it back
// with Addr. Send, Recv and Broadcast block until all size-1 workers have
// joined.
func ListenWS(addr string, size int) (*WSTransport, error) {
	if size < 2 {
		return nil, fmt.Errorf("cluster: websocket cluster needs at least 2 participants, got %d", size)
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("cluster: listen on %s: %w", addr, err)
	}

	t := &WSTransport{
		rank:     0,
		size:     size,
		peers:    make(map[int]*wsPeer),
		ready:    make(chan struct{}),
		listener: listener,
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1 << 16,
		WriteBufferSize: 1 << 16,
		CheckOrigin:     func(*http.Request) bool { return true },
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/join", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("cluster: websocket upgrade failed: %v", err)
			return
		}
		var join joinMessage
		if err := conn.ReadJSON(&join); err != nil {
			log.Printf("cluster: bad join frame: %v", err)
			conn.Close()
			return
		}

		t.joinMu.Lock()
		defer t.joinMu.Unlock()
		if join.Rank < 1 || join.Rank >= size {
			log.Printf("cluster: rejecting join with invalid rank %d", join.Rank)
			conn.Close()
			return
		}
		if _, taken := t.peers[join.Rank]; taken {
			log.Printf("cluster: rejecting duplicate join for rank %d", join.Rank)
			conn.Close()
			return
		}
		peer := &wsPeer{conn: conn, session: uuid.NewString()}
		t.peers[join.Rank] = peer
		log.Printf("cluster: worker rank %d joined, session %s", join.Rank, peer.session)
		if len(t.peers) == size-1 {
			close(t.ready)
		}
	})

	t.server = &http.Server{Handler: mux}
	go func() {
		if err := t.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("cluster: websocket server stopped: %v", err)
		}
	}()
	return t, nil
}

// DialWS connects a worker with the given rank to the coordinator at addr
// (host:port). size is the total participant count including rank 0.
func DialWS(addr string, rank, size int) (*WSTransport, error) {
	if rank < 1 || rank >= size {
		return nil, fmt.Errorf("cluster: worker rank must be in [1, %d), got %d", size, rank)
	}
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/join", nil)
	if err != nil {
		return nil, fmt.Errorf("cluster: dial coordinator at %s: %w", addr, err)
	}
	if err := conn.WriteJSON(joinMessage{Rank: rank}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("cluster: send join frame: %w", err)
	}
	peer := &wsPeer{conn: conn, session: uuid.NewString()}
	ready := make(chan struct{})
	close(ready)
	return &WSTransport{rank: rank, size: size, peers: map[int]*wsPeer{0: peer}, ready: ready}, nil
}

// Addr returns the coordinator's bound listen address.
func (t *WSTransport) Addr() string {
	if t.listener == nil {
		return ""
	}
	return t.listener.Addr().String()
}

func (t *WSTransport) Rank() int { return t.rank }
func (t *WSTransport) Size() int { return t.size }

func (t *WSTransport) peer(rank int) (*wsPeer, error) {
	<-t.ready
	peer, ok := t.peers[rank]
	if !ok {
		return nil, fmt.Errorf("cluster: no connection to rank %d", rank)
	}
	return peer, nil
}

func (t *WSTransport) Send(to int, payload []byte) error {
	peer, err := t.peer(to)
	if err != nil {
		return err
	}
	if err := peer.write(payload); err != nil {
		return fmt.Errorf("cluster: send to rank %d: %w", to, err)
	}
	return nil
}

func (t *WSTransport) Recv(from int) ([]byte, error) {
	peer, err := t.peer(from)
	if err != nil {
		return nil, err
	}
	payload, err := peer.read()
	if err != nil {
		return nil, fmt.Errorf("cluster: recv from rank %d: %w", from, err)
	}
	return payload, nil
}

func (t *WSTransport) Broadcast(payload []byte) error {
	if t.rank != 0 {
		return fmt.Errorf("cluster: broadcast from non-root rank %d", t.rank)
	}
	for to := 1; to < t.size; to++ {
		peer, err := t.peer(to)
		if err != nil {
			return err
		}
		if err := peer.write(lengthFrame(len(payload))); err != nil {
			return fmt.Errorf("cluster: broadcast length to rank %d: %w", to, err)
		}
		if err := peer.write(payload); err != nil {
			return fmt.Errorf("cluster: broadcast payload to rank %d: %w", to, err)
		}
	}
	return nil
}

func (t *WSTransport) RecvBroadcast() ([]byte, error) {
	peer, err := t.peer(0)
	if err != nil {
		return nil, err
	}
	frame, err := peer.read()
	if err != nil {
		return nil, fmt.Errorf("cluster: recv broadcast length: %w", err)
	}
	want, err := parseLengthFrame(frame)
	if err != nil {
		return nil, err
	}
	payload, err := peer.read()
	if err != nil {
		return nil, fmt.Errorf("cluster: recv broadcast payload: %w", err)
	}
	if len(payload) != want {
		return nil, fmt.Errorf("cluster: broadcast payload has %d bytes, length frame said %d", len(payload), want)
	}
	return payload, nil
}

func (t *WSTransport) Close() error {
	t.joinMu.Lock()
	for _, peer := range t.peers {
		peer.conn.Close()
	}
	t.joinMu.Unlock()
	if t.server != nil {
		return t.server.Close()
	}
	return nil
}
