package hyperliquid

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hypergate/hypergate/internal/pkg/apperrors"
)

type infoRequest struct {
	Type   string `json:"type"`
	User   string `json:"user,omitempty"`
	Source string `json:"source,omitempty"`
}

// MetaAndAssetCtxs fetches the exchange universe together with the live
// context for each asset. The two halves arrive as a positional pair and
// stay index-aligned.
func (c *Client) MetaAndAssetCtxs(ctx context.Context) (*Meta, []AssetCtx, error) {
	raw, err := c.post(ctx, "/info", infoRequest{Type: "metaAndAssetCtxs"})
	if err != nil {
		return nil, nil, err
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil {
		return nil, nil, apperrors.New(apperrors.ErrTransport, "malformed metaAndAssetCtxs response", err)
	}
	if len(pair) != 2 {
		return nil, nil, apperrors.New(apperrors.ErrTransport, "metaAndAssetCtxs response is not a pair", nil)
	}

	var meta Meta
	if err := json.Unmarshal(pair[0], &meta); err != nil {
		return nil, nil, apperrors.New(apperrors.ErrTransport, "malformed universe metadata", err)
	}
	var ctxs []AssetCtx
	if err := json.Unmarshal(pair[1], &ctxs); err != nil {
		return nil, nil, apperrors.New(apperrors.ErrTransport, "malformed asset contexts", err)
	}
	if len(ctxs) != len(meta.Universe) {
		return nil, nil, apperrors.New(apperrors.ErrTransport, "asset contexts misaligned with universe", nil)
	}

	return &meta, ctxs, nil
}

// PreTransferCheck asks whether user is known to the bridge, attributing the
// lookup to source.
func (c *Client) PreTransferCheck(ctx context.Context, user, source common.Address) (*PreTransferCheckResult, error) {
	raw, err := c.post(ctx, "/info", infoRequest{
		Type:   "preTransferCheck",
		User:   user.Hex(),
		Source: source.Hex(),
	})
	if err != nil {
		return nil, err
	}

	var result PreTransferCheckResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, apperrors.New(apperrors.ErrTransport, "malformed preTransferCheck response", err)
	}
	return &result, nil
}

// ClearinghouseState fetches the account's positions and margin summary.
func (c *Client) ClearinghouseState(ctx context.Context, user common.Address) (*ClearinghouseState, error) {
	raw, err := c.post(ctx, "/info", infoRequest{
		Type: "clearinghouseState",
		User: user.Hex(),
	})
	if err != nil {
		return nil, err
	}

	var state ClearinghouseState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, apperrors.New(apperrors.ErrTransport, "malformed clearinghouseState response", err)
	}
	return &state, nil
}
