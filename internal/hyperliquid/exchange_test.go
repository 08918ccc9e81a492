package hyperliquid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hypergate/hypergate/internal/manager"
	"github.com/hypergate/hypergate/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExchange(t *testing.T, handler http.HandlerFunc) (*Exchange, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, false)
	return NewExchange(client, manager.NewNonceManager()), srv
}

func TestPlaceOrders_Accepted(t *testing.T) {
	var got ExchangeRequest
	ex, _ := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/exchange", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"status":"ok","response":{"type":"order","data":{"statuses":[{"resting":{"oid":77}}]}}}`))
	})

	data, err := ex.PlaceOrders(context.Background(), newTestSigner(t), sampleOrderAction().Orders, nil)
	require.NoError(t, err)
	require.Len(t, data.Data.Statuses, 1)
	assert.Equal(t, uint64(77), data.Data.Statuses[0].Resting.Oid)

	assert.NotZero(t, got.Nonce)
	assert.Nil(t, got.VaultAddress)
	assert.Contains(t, []uint8{27, 28}, got.Signature.V)

	action, err := json.Marshal(got.Action)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"order","grouping":"na","orders":[{"a":0,"b":true,"p":"50500","s":"0.0003","r":false,"t":{"limit":{"tif":"Gtc"}}}]}`, string(action))
}

func TestPlaceOrders_BatchRejected(t *testing.T) {
	ex, _ := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"err","response":"Insufficient margin"}`))
	})

	_, err := ex.PlaceOrders(context.Background(), newTestSigner(t), sampleOrderAction().Orders, nil)
	require.Error(t, err)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrSubmissionReject, appErr.Type)
	assert.Contains(t, appErr.Message, "Insufficient margin")
}

func TestPlaceOrders_PerOrderError(t *testing.T) {
	ex, _ := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","response":{"type":"order","data":{"statuses":[{"error":"Price too far from mark"}]}}}`))
	})

	_, err := ex.PlaceOrders(context.Background(), newTestSigner(t), sampleOrderAction().Orders, nil)
	require.Error(t, err)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrSubmissionReject, appErr.Type)
	assert.Contains(t, appErr.Message, "Price too far from mark")
}

func TestApproveAgent_SendsUserSignedAction(t *testing.T) {
	var got map[string]any
	ex, _ := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"status":"ok","response":{"type":"default"}}`))
	})

	owner := newTestSigner(t)
	agent := common.HexToAddress("0xABCDEF0123456789abcdef0123456789ABCDEF01")

	err := ex.ApproveAgent(context.Background(), owner, agent, "hypergate")
	require.NoError(t, err)

	action := got["action"].(map[string]any)
	assert.Equal(t, "approveAgent", action["type"])
	assert.Equal(t, "Testnet", action["hyperliquidChain"])
	assert.Equal(t, "0x66eee", action["signatureChainId"])
	assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", action["agentAddress"])
	assert.Equal(t, "hypergate", action["agentName"])
	assert.Equal(t, action["nonce"], got["nonce"])
}

func TestApproveAgent_Rejected(t *testing.T) {
	ex, _ := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"err","response":"Extra agent already used"}`))
	})

	err := ex.ApproveAgent(context.Background(), newTestSigner(t), common.Address{}, "hypergate")
	require.Error(t, err)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrDelegationFailed, appErr.Type)
}

func TestMetaAndAssetCtxs_AlignedPair(t *testing.T) {
	ex, _ := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/info", r.URL.Path)
		w.Write([]byte(`[
			{"universe":[{"name":"BTC","szDecimals":5},{"name":"ETH","szDecimals":4}]},
			[{"markPx":"50000","midPx":"50001"},{"markPx":"3000","midPx":"3000.5"}]
		]`))
	})

	meta, ctxs, err := ex.client.MetaAndAssetCtxs(context.Background())
	require.NoError(t, err)
	require.Len(t, meta.Universe, 2)
	require.Len(t, ctxs, 2)
	assert.Equal(t, "BTC", meta.Universe[0].Name)
	assert.Equal(t, 5, meta.Universe[0].SzDecimals)
	assert.Equal(t, "50000", ctxs[0].MarkPx)
}

func TestMetaAndAssetCtxs_Misaligned(t *testing.T) {
	ex, _ := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"universe":[{"name":"BTC","szDecimals":5}]},[]]`))
	})

	_, _, err := ex.client.MetaAndAssetCtxs(context.Background())
	require.Error(t, err)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrTransport, appErr.Type)
}
