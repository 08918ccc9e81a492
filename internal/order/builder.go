package order

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hypergate/hypergate/internal/hyperliquid"
	"github.com/hypergate/hypergate/internal/market"
	"github.com/hypergate/hypergate/internal/numeric"
	"github.com/hypergate/hypergate/internal/pkg/apperrors"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Params describes one order derivation.
type Params struct {
	Asset    *market.AssetContext
	IsBuy    bool
	Notional decimal.Decimal
	// Offset is the fractional price offset, e.g. 0.01 for 1%. It pushes
	// the limit price through the mark so the entry fills immediately, and
	// places the trigger the same distance on the far side.
	Offset decimal.Decimal
	Tpsl   string
}

// Derived is the human-readable result of a build, before wire encoding.
type Derived struct {
	Size      string
	EntryPx   string
	TriggerPx string
	Cloid     string
}

// Builder turns notional requests into wire orders.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build derives a trigger-qualified market-style entry: an aggressive limit
// price one offset through the mark, with a protective trigger one offset
// beyond it. Size is notional divided by mark, truncated to the asset's
// szDecimals; a non-positive notional, zero mark, or a size that truncates
// to zero is an INVALID_NOTIONAL.
func (b *Builder) Build(p Params) ([]hyperliquid.OrderWire, *Derived, error) {
	if p.Asset == nil {
		return nil, nil, apperrors.NewInvalidRequest("missing asset context")
	}
	if !p.Notional.IsPositive() {
		return nil, nil, apperrors.NewInvalidNotional(
			fmt.Sprintf("notional must be positive, got %s", p.Notional.String()))
	}
	if !p.Asset.MarkPx.IsPositive() {
		return nil, nil, apperrors.NewInvalidNotional(
			fmt.Sprintf("asset %s has a non-positive mark price", p.Asset.Name))
	}

	tpsl := p.Tpsl
	if tpsl == "" {
		tpsl = hyperliquid.TpslTakeProfit
	}

	size := numeric.FormatDecimal(p.Notional.Div(p.Asset.MarkPx), p.Asset.SzDecimals)
	if sz, err := decimal.NewFromString(size); err != nil || !sz.IsPositive() {
		return nil, nil, apperrors.NewInvalidNotional(
			fmt.Sprintf("notional %s is below the minimum size for %s", p.Notional.String(), p.Asset.Name))
	}

	// A buy enters above the mark and triggers below it; a sell inverts.
	through := one.Add(p.Offset)
	beyond := one.Sub(p.Offset)
	if !p.IsBuy {
		through, beyond = beyond, through
	}

	entryPx := numeric.FormatDecimal(p.Asset.MarkPx.Mul(through), p.Asset.SzDecimals)
	triggerPx := numeric.FormatDecimal(p.Asset.MarkPx.Mul(beyond), p.Asset.SzDecimals)

	derived := &Derived{
		Size:      size,
		EntryPx:   entryPx,
		TriggerPx: triggerPx,
		Cloid:     newCloid(),
	}

	orders := []hyperliquid.OrderWire{{
		Asset:      p.Asset.AssetIndex,
		IsBuy:      p.IsBuy,
		LimitPx:    entryPx,
		Size:       size,
		ReduceOnly: false,
		OrderType: hyperliquid.OrderType{
			Trigger: &hyperliquid.TriggerOrderType{
				IsMarket:  true,
				TriggerPx: triggerPx,
				Tpsl:      tpsl,
			},
		},
		Cloid: derived.Cloid,
	}}

	return orders, derived, nil
}

// newCloid generates a 128-bit client order id in the 0x-prefixed form the
// exchange expects.
func newCloid() string {
	return "0x" + strings.ReplaceAll(uuid.New().String(), "-", "")
}
