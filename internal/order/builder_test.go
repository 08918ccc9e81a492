package order

import (
	"testing"

	"github.com/hypergate/hypergate/internal/hyperliquid"
	"github.com/hypergate/hypergate/internal/market"
	"github.com/hypergate/hypergate/internal/pkg/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func btcContext() *market.AssetContext {
	return &market.AssetContext{
		Name:       "BTC",
		AssetIndex: 0,
		SzDecimals: 4,
		MarkPx:     decimal.NewFromInt(50000),
	}
}

func TestBuild_Buy(t *testing.T) {
	b := NewBuilder()
	orders, derived, err := b.Build(Params{
		Asset:    btcContext(),
		IsBuy:    true,
		Notional: decimal.NewFromInt(15),
		Offset:   decimal.NewFromFloat(0.01),
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)

	assert.Equal(t, "0.0003", derived.Size)
	assert.Equal(t, "50500", derived.EntryPx)
	assert.Equal(t, "49500", derived.TriggerPx)

	wire := orders[0]
	assert.Equal(t, 0, wire.Asset)
	assert.True(t, wire.IsBuy)
	assert.Equal(t, "50500", wire.LimitPx)
	assert.Equal(t, "0.0003", wire.Size)
	assert.False(t, wire.ReduceOnly)
	assert.Nil(t, wire.OrderType.Limit)
	require.NotNil(t, wire.OrderType.Trigger)
	assert.True(t, wire.OrderType.Trigger.IsMarket)
	assert.Equal(t, "49500", wire.OrderType.Trigger.TriggerPx)
	assert.Equal(t, hyperliquid.TpslTakeProfit, wire.OrderType.Trigger.Tpsl)

	assert.Len(t, wire.Cloid, 34)
	assert.Equal(t, derived.Cloid, wire.Cloid)
}

func TestBuild_SellInvertsPrices(t *testing.T) {
	b := NewBuilder()
	_, derived, err := b.Build(Params{
		Asset:    btcContext(),
		IsBuy:    false,
		Notional: decimal.NewFromInt(15),
		Offset:   decimal.NewFromFloat(0.01),
	})
	require.NoError(t, err)

	assert.Equal(t, "49500", derived.EntryPx, "sell enters below the mark")
	assert.Equal(t, "50500", derived.TriggerPx)
}

func TestBuild_NotionalMustBePositive(t *testing.T) {
	b := NewBuilder()
	for _, notional := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, _, err := b.Build(Params{
			Asset:    btcContext(),
			IsBuy:    true,
			Notional: notional,
			Offset:   decimal.NewFromFloat(0.01),
		})
		require.Error(t, err)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrInvalidNotional, appErr.Type)
	}
}

func TestBuild_ZeroMarkPriceRejected(t *testing.T) {
	actx := btcContext()
	actx.MarkPx = decimal.Zero

	_, _, err := NewBuilder().Build(Params{
		Asset:    actx,
		IsBuy:    true,
		Notional: decimal.NewFromInt(15),
		Offset:   decimal.NewFromFloat(0.01),
	})
	require.Error(t, err)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrInvalidNotional, appErr.Type)
}

func TestBuild_DustNotionalRejected(t *testing.T) {
	// 0.001 / 50000 truncates to zero at four size decimals.
	b := NewBuilder()
	_, _, err := b.Build(Params{
		Asset:    btcContext(),
		IsBuy:    true,
		Notional: decimal.NewFromFloat(0.001),
		Offset:   decimal.NewFromFloat(0.01),
	})
	require.Error(t, err)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrInvalidNotional, appErr.Type)
}

func TestBuild_DefaultsToTakeProfit(t *testing.T) {
	b := NewBuilder()
	orders, _, err := b.Build(Params{
		Asset:    btcContext(),
		IsBuy:    true,
		Notional: decimal.NewFromInt(100),
		Offset:   decimal.NewFromFloat(0.02),
		Tpsl:     "",
	})
	require.NoError(t, err)
	assert.Equal(t, hyperliquid.TpslTakeProfit, orders[0].OrderType.Trigger.Tpsl)
}
