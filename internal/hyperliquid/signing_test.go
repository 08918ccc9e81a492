package hyperliquid

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/hypergate/hypergate/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T) *wallet.LocalSigner {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	s, err := wallet.NewLocalSigner(common.Bytes2Hex(crypto.FromECDSA(key)))
	require.NoError(t, err)
	return s
}

func sampleOrderAction() OrderAction {
	return OrderAction{
		Type: "order",
		Orders: []OrderWire{{
			Asset:   0,
			IsBuy:   true,
			LimitPx: "50500",
			Size:    "0.0003",
			OrderType: OrderType{
				Limit: &LimitOrderType{Tif: TifGtc},
			},
		}},
		Grouping: GroupingNA,
	}
}

func TestActionHash_Deterministic(t *testing.T) {
	action := sampleOrderAction()

	h1, err := ActionHash(action, nil, 1700000000000)
	require.NoError(t, err)
	h2, err := ActionHash(action, nil, 1700000000000)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	h3, err := ActionHash(action, nil, 1700000000001)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3, "nonce must change the hash")

	vault := common.HexToAddress("0x1111111111111111111111111111111111111111")
	h4, err := ActionHash(action, &vault, 1700000000000)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h4, "vault address must change the hash")
}

func TestSignL1Action_NetworkChangesSignature(t *testing.T) {
	s := newTestSigner(t)
	action := sampleOrderAction()

	testnet, err := SignL1Action(s, action, nil, 1700000000000, false)
	require.NoError(t, err)
	mainnet, err := SignL1Action(s, action, nil, 1700000000000, true)
	require.NoError(t, err)

	assert.NotEqual(t, testnet.R, mainnet.R)
	assert.Contains(t, []uint8{27, 28}, testnet.V)
	assert.True(t, strings.HasPrefix(testnet.R, "0x"))
	assert.Len(t, testnet.R, 66)
	assert.Len(t, testnet.S, 66)
}

func TestSignApproveAgent_RecoversSigner(t *testing.T) {
	s := newTestSigner(t)
	agent := common.HexToAddress("0x2222222222222222222222222222222222222222")

	action := ApproveAgentAction{
		Type:             "approveAgent",
		HyperliquidChain: "Testnet",
		SignatureChainID: userSignChainHex,
		AgentAddress:     strings.ToLower(agent.Hex()),
		AgentName:        "hypergate",
		Nonce:            1700000000000,
	}

	sig, err := SignApproveAgent(s, action)
	require.NoError(t, err)

	// Rebuild the typed data and recover the signing address.
	typed := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"HyperliquidTransaction:ApproveAgent": {
				{Name: "hyperliquidChain", Type: "string"},
				{Name: "agentAddress", Type: "address"},
				{Name: "agentName", Type: "string"},
				{Name: "nonce", Type: "uint64"},
			},
		},
		PrimaryType: "HyperliquidTransaction:ApproveAgent",
		Domain: apitypes.TypedDataDomain{
			Name:              "HyperliquidSignTransaction",
			Version:           "1",
			ChainId:           math.NewHexOrDecimal256(userSignChainID),
			VerifyingContract: zeroAddress,
		},
		Message: apitypes.TypedDataMessage{
			"hyperliquidChain": action.HyperliquidChain,
			"agentAddress":     action.AgentAddress,
			"agentName":        action.AgentName,
			"nonce":            math.NewHexOrDecimal256(int64(action.Nonce)),
		},
	}
	digest, _, err := apitypes.TypedDataAndHash(typed)
	require.NoError(t, err)

	rawSig := append(common.FromHex(sig.R), common.FromHex(sig.S)...)
	rawSig = append(rawSig, sig.V-27)
	pub, err := crypto.SigToPub(digest, rawSig)
	require.NoError(t, err)
	assert.Equal(t, s.Address(), crypto.PubkeyToAddress(*pub))
}
