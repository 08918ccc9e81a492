package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hypergate/hypergate/internal/config"
	"github.com/hypergate/hypergate/internal/hyperliquid"
	"github.com/hypergate/hypergate/internal/market"
	"github.com/hypergate/hypergate/internal/model"
	"github.com/hypergate/hypergate/internal/order"
	"github.com/hypergate/hypergate/internal/pkg/apperrors"
	"github.com/hypergate/hypergate/internal/pkg/logger"
	"github.com/hypergate/hypergate/internal/pkg/metrics"
	"github.com/hypergate/hypergate/internal/wallet"
	"github.com/shopspring/decimal"
)

// OrderPlacer submits a signed order batch.
type OrderPlacer interface {
	PlaceOrders(ctx context.Context, signer wallet.Signer, orders []hyperliquid.OrderWire, vaultAddress *common.Address) (*hyperliquid.OrderResponseData, error)
}

// Delegator guarantees an owner has approved an agent key.
type Delegator interface {
	EnsureDelegation(ctx context.Context, owner wallet.Signer, agent common.Address) error
}

// AccountInfo exposes the informational account lookups around a submission.
type AccountInfo interface {
	PreTransferCheck(ctx context.Context, user, source common.Address) (*hyperliquid.PreTransferCheckResult, error)
	ClearinghouseState(ctx context.Context, user common.Address) (*hyperliquid.ClearinghouseState, error)
}

// SubmitService runs the order submission pipeline. At most one submission
// is in flight at a time; a second request while one runs is rejected
// immediately rather than queued.
type SubmitService struct {
	cfg        *config.Config
	wallets    wallet.Provider
	adapter    wallet.Adapter
	snapshots  market.Reader
	builder    *order.Builder
	placer     OrderPlacer
	delegation Delegator
	account    AccountInfo
	inFlight   atomic.Bool
}

func NewSubmitService(
	cfg *config.Config,
	wallets wallet.Provider,
	adapter wallet.Adapter,
	snapshots market.Reader,
	builder *order.Builder,
	placer OrderPlacer,
	delegation Delegator,
	account AccountInfo,
) *SubmitService {
	return &SubmitService{
		cfg:        cfg,
		wallets:    wallets,
		adapter:    adapter,
		snapshots:  snapshots,
		builder:    builder,
		placer:     placer,
		delegation: delegation,
		account:    account,
	}
}

// Submit places the entry/protection pair for req. The in-flight guard is
// released on every exit path, success or failure.
func (s *SubmitService) Submit(ctx context.Context, req model.SubmitRequest) (*model.SubmissionResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, apperrors.New(apperrors.ErrAlreadyInProgress, "a submission is already in flight", nil)
	}
	defer s.inFlight.Store(false)

	var isBuy bool
	switch strings.ToLower(req.Side) {
	case "buy":
		isBuy = true
	case "sell":
		isBuy = false
	default:
		return nil, apperrors.NewInvalidRequest(fmt.Sprintf("side must be buy or sell, got %q", req.Side))
	}

	notional, err := decimal.NewFromString(req.Notional)
	if err != nil {
		return nil, apperrors.NewInvalidNotional(fmt.Sprintf("notional %q is not a number", req.Notional))
	}

	roles, err := wallet.ResolveSigners(s.wallets.Wallets())
	if err != nil {
		return nil, err
	}

	delegate, err := s.adapter.SignerFor(ctx, roles.Delegate)
	if err != nil {
		return nil, err
	}

	// The trading account is the primary wallet under delegation, the
	// delegate itself otherwise.
	account := roles.Delegate.Address
	if roles.Topology == wallet.TopologyDelegated {
		account = roles.Primary.Address

		owner, err := s.adapter.SignerFor(ctx, roles.Primary)
		if err != nil {
			return nil, err
		}
		if err := s.delegation.EnsureDelegation(ctx, owner, roles.Delegate.Address); err != nil {
			return nil, err
		}
	}

	// Informational only: a missing bridge record does not block the
	// submission, it just tells the operator the account is unfunded.
	if check, err := s.account.PreTransferCheck(ctx, account, account); err != nil {
		logger.Warn("Pre-transfer check failed", "account", account.Hex(), "error", err)
	} else {
		logger.Info("Pre-transfer check",
			"account", account.Hex(),
			"userExists", check.UserExists,
			"fee", check.Fee,
		)
	}

	assetCtx, err := s.snapshots.GetAssetContext(ctx, req.Asset)
	if err != nil {
		return nil, err
	}

	orders, derived, err := s.builder.Build(order.Params{
		Asset:    assetCtx,
		IsBuy:    isBuy,
		Notional: notional,
		Offset:   decimal.NewFromFloat(s.cfg.Order.Offset),
		Tpsl:     s.cfg.Order.Trigger,
	})
	if err != nil {
		return nil, err
	}

	data, err := s.placer.PlaceOrders(ctx, delegate, orders, nil)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("rejected", req.Side).Inc()
		return nil, err
	}
	metrics.SubmissionsTotal.WithLabelValues("accepted", req.Side).Inc()

	result := &model.SubmissionResult{
		Asset:     assetCtx.Name,
		Side:      strings.ToLower(req.Side),
		Size:      derived.Size,
		EntryPx:   derived.EntryPx,
		TriggerPx: derived.TriggerPx,
		Topology:  string(roles.Topology),
		Account:   account.Hex(),
		Orders:    outcomes(derived, data),
	}

	// Post-trade snapshot, logged for the operator.
	if state, err := s.account.ClearinghouseState(ctx, account); err != nil {
		logger.Warn("Clearinghouse state fetch failed", "account", account.Hex(), "error", err)
	} else {
		logger.Info("Clearinghouse state",
			"account", account.Hex(),
			"accountValue", state.MarginSummary.AccountValue,
			"positions", len(state.AssetPositions),
		)
	}

	logger.Info("Submission accepted",
		"asset", result.Asset,
		"side", result.Side,
		"size", result.Size,
		"entryPx", result.EntryPx,
		"triggerPx", result.TriggerPx,
		"topology", result.Topology,
	)

	return result, nil
}

func outcomes(derived *order.Derived, data *hyperliquid.OrderResponseData) []model.OrderOutcome {
	out := make([]model.OrderOutcome, 0, len(data.Data.Statuses))
	for i, st := range data.Data.Statuses {
		o := model.OrderOutcome{}
		if i == 0 {
			o.Cloid = derived.Cloid
		}
		switch {
		case st.Filled != nil:
			o.Status = "filled"
			o.Oid = st.Filled.Oid
			o.AvgPx = st.Filled.AvgPx
		case st.Resting != nil:
			o.Status = "resting"
			o.Oid = st.Resting.Oid
		default:
			o.Status = "unknown"
		}
		out = append(out, o)
	}
	return out
}
