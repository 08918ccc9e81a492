package delegation

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hypergate/hypergate/internal/pkg/logger"
	"github.com/hypergate/hypergate/internal/pkg/metrics"
	"github.com/hypergate/hypergate/internal/wallet"
)

// Approver sends an agent approval to the exchange.
type Approver interface {
	ApproveAgent(ctx context.Context, owner wallet.Signer, agent common.Address, agentName string) error
}

type pair struct {
	owner common.Address
	agent common.Address
}

// Manager tracks which owner/agent pairs have been approved this process
// lifetime and grants each one at most once. A failed grant is not recorded,
// so the next submission retries it.
type Manager struct {
	approver  Approver
	agentName string

	mu      sync.Mutex
	granted map[pair]bool
}

func NewManager(approver Approver, agentName string) *Manager {
	return &Manager{
		approver:  approver,
		agentName: agentName,
		granted:   make(map[pair]bool),
	}
}

// EnsureDelegation approves agent for the owner unless this pair was already
// granted. Safe for concurrent callers; at most one approval is sent per
// pair.
func (m *Manager) EnsureDelegation(ctx context.Context, owner wallet.Signer, agent common.Address) error {
	key := pair{owner: owner.Address(), agent: agent}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.granted[key] {
		return nil
	}

	if err := m.approver.ApproveAgent(ctx, owner, agent, m.agentName); err != nil {
		return err
	}

	m.granted[key] = true
	metrics.DelegationGrants.Inc()
	logger.Info("Delegation granted",
		"owner", key.owner.Hex(),
		"agent", key.agent.Hex(),
	)
	return nil
}

// IsGranted reports whether the pair has an approval on record.
func (m *Manager) IsGranted(owner, agent common.Address) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.granted[pair{owner: owner, agent: agent}]
}
