package manager

import (
	"sync"
	"time"
)

// NonceManager issues exchange nonces. The exchange requires every signed
// action's nonce to be a recent, strictly increasing millisecond timestamp,
// so concurrent callers must never receive the same value.
type NonceManager struct {
	mu   sync.Mutex
	last uint64
}

func NewNonceManager() *NonceManager {
	return &NonceManager{}
}

// Next returns the current millisecond timestamp, bumped past the previous
// value when two calls land in the same millisecond.
func (m *NonceManager) Next() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := uint64(time.Now().UnixMilli())
	if now <= m.last {
		now = m.last + 1
	}
	m.last = now
	return now
}
