package market

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hypergate/hypergate/internal/pkg/logger"
)

const (
	reconnBaseDelay = 1 * time.Second
	reconnMaxDelay  = 30 * time.Second
	pingPeriod      = 15 * time.Second
)

// MidStream keeps a live cache of mid prices from the allMids websocket
// feed. It reconnects with backoff and stays usable across drops; a miss in
// the cache just means the feed has not delivered that coin yet.
type MidStream struct {
	url    string
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.RWMutex
	conn *websocket.Conn
	mids map[string]string

	// Serializes ping and subscribe frames; gorilla allows one writer.
	writeMu sync.Mutex
}

func NewMidStream(wsURL string) *MidStream {
	ctx, cancel := context.WithCancel(context.Background())
	return &MidStream{
		url:    wsURL,
		mids:   make(map[string]string),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *MidStream) Start() {
	go s.runLoop()
}

func (s *MidStream) Stop() {
	s.cancel()
	s.mu.Lock()
	if s.conn != nil {
		s.conn.Close()
	}
	s.mu.Unlock()
}

// GetMid returns the latest mid price for coin, if the feed has one.
func (s *MidStream) GetMid(coin string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mid, ok := s.mids[coin]
	return mid, ok
}

func (s *MidStream) runLoop() {
	delay := reconnBaseDelay

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		conn, err := s.connect()
		if err != nil {
			logger.Error("Mid stream connection failed", "error", err, "retry_in", delay)
			time.Sleep(delay)
			delay *= 2
			if delay > reconnMaxDelay {
				delay = reconnMaxDelay
			}
			continue
		}

		delay = reconnBaseDelay
		s.mu.Lock()
		s.conn = conn
		s.mu.Unlock()

		if err := s.sendSubscribe(conn); err != nil {
			logger.Error("Failed to subscribe to allMids", "error", err)
			conn.Close()
			continue
		}

		go s.ping(conn)
		s.readLoop(conn)

		s.mu.Lock()
		s.conn = nil
		s.mu.Unlock()
	}
}

// connect dials and configures a connection. It is returned rather than
// stored so the ping and read loops are bound to the connection they were
// started for, never a reconnected one.
func (s *MidStream) connect() (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(s.url, nil)
	if err != nil {
		return nil, err
	}

	// Zombie check: without any frame inside the window the read fails and
	// the run loop reconnects.
	readTimeout := pingPeriod + 10*time.Second
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	return conn, nil
}

func (s *MidStream) ping(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.writeMu.Lock()
			err := conn.WriteMessage(websocket.PingMessage, []byte{})
			s.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

type wsEnvelope struct {
	Channel string `json:"channel"`
	Data    struct {
		Mids map[string]string `json:"mids"`
	} `json:"data"`
}

func (s *MidStream) readLoop(conn *websocket.Conn) {
	defer conn.Close()

	readTimeout := pingPeriod + 10*time.Second

	for {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, message, err := conn.ReadMessage()
		if err != nil {
			if s.ctx.Err() == nil {
				logger.Error("Mid stream read error", "error", err)
			}
			return
		}

		var msg wsEnvelope
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		if msg.Channel != "allMids" || len(msg.Data.Mids) == 0 {
			continue
		}

		s.mu.Lock()
		for coin, mid := range msg.Data.Mids {
			s.mids[coin] = mid
		}
		s.mu.Unlock()
	}
}

func (s *MidStream) sendSubscribe(conn *websocket.Conn) error {
	msg := map[string]interface{}{
		"method": "subscribe",
		"subscription": map[string]string{
			"type": "allMids",
		},
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return conn.WriteJSON(msg)
}
