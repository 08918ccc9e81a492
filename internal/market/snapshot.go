package market

import (
	"context"
	"fmt"

	"github.com/hypergate/hypergate/internal/hyperliquid"
	"github.com/hypergate/hypergate/internal/pkg/apperrors"
	"github.com/shopspring/decimal"
)

// AssetContext is everything the order builder needs about one asset:
// its wire index, size precision, and current mark price. It is a snapshot
// for a single submission; index, szDecimals, and mark price are
// authoritative only for the instant of the call and must be re-resolved
// every time.
type AssetContext struct {
	Name       string
	AssetIndex int
	SzDecimals int
	MarkPx     decimal.Decimal
	MidPx      decimal.Decimal
}

// Reader resolves asset symbols to live contexts.
type Reader interface {
	GetAssetContext(ctx context.Context, name string) (*AssetContext, error)
}

type infoSource interface {
	MetaAndAssetCtxs(ctx context.Context) (*hyperliquid.Meta, []hyperliquid.AssetCtx, error)
}

// SnapshotService reads asset contexts from the info endpoint. Every call is
// one fresh round trip; nothing is cached across calls.
type SnapshotService struct {
	source infoSource
}

func NewSnapshotService(source infoSource) *SnapshotService {
	return &SnapshotService{source: source}
}

// GetAssetContext resolves name by exact match against the universe.
// Unknown symbols fail with ASSET_NOT_FOUND; a symbol whose context carries
// no parsable mark price is treated the same way.
func (s *SnapshotService) GetAssetContext(ctx context.Context, name string) (*AssetContext, error) {
	meta, ctxs, err := s.source.MetaAndAssetCtxs(ctx)
	if err != nil {
		return nil, err
	}

	for i, asset := range meta.Universe {
		if asset.Name != name {
			continue
		}

		mark, err := decimal.NewFromString(ctxs[i].MarkPx)
		if err != nil {
			return nil, apperrors.NewAssetNotFound(
				fmt.Sprintf("asset %s has no usable mark price", asset.Name))
		}
		out := &AssetContext{
			Name:       asset.Name,
			AssetIndex: i,
			SzDecimals: asset.SzDecimals,
			MarkPx:     mark,
		}
		if mid, err := decimal.NewFromString(ctxs[i].MidPx); err == nil {
			out.MidPx = mid
		}
		return out, nil
	}

	return nil, apperrors.NewAssetNotFound(fmt.Sprintf("asset %s not in universe", name))
}
