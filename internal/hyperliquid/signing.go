package hyperliquid

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/hypergate/hypergate/internal/wallet"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	// Chain id of the signing domain for user-signed actions (Arbitrum
	// Sepolia, 0x66eee). The exchange only checks the signature against
	// this domain; no on-chain transaction is involved.
	userSignChainID  = 421614
	userSignChainHex = "0x66eee"

	// Fixed chain id of the phantom-agent domain for L1 actions.
	l1ChainID = 1337

	zeroAddress = "0x0000000000000000000000000000000000000000"
)

// ActionHash computes the connection id for an L1 action: the msgpack
// encoding of the action, the nonce as 8 big-endian bytes, and a vault
// marker byte (plus the vault address when present), keccak-hashed.
func ActionHash(action any, vaultAddress *common.Address, nonce uint64) (common.Hash, error) {
	data, err := msgpack.Marshal(action)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode action: %w", err)
	}

	var nonceBytes [8]byte
	binary.BigEndian.PutUint64(nonceBytes[:], nonce)
	data = append(data, nonceBytes[:]...)

	if vaultAddress == nil {
		data = append(data, 0x00)
	} else {
		data = append(data, 0x01)
		data = append(data, vaultAddress.Bytes()...)
	}

	return crypto.Keccak256Hash(data), nil
}

// SignL1Action signs an order-style action with the phantom agent scheme:
// the action hash becomes the connectionId of a synthetic Agent struct whose
// source pins the target network.
func SignL1Action(signer wallet.Signer, action any, vaultAddress *common.Address, nonce uint64, isMainnet bool) (Signature, error) {
	connectionID, err := ActionHash(action, vaultAddress, nonce)
	if err != nil {
		return Signature{}, err
	}

	source := "b"
	if isMainnet {
		source = "a"
	}

	typed := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Agent": {
				{Name: "source", Type: "string"},
				{Name: "connectionId", Type: "bytes32"},
			},
		},
		PrimaryType: "Agent",
		Domain: apitypes.TypedDataDomain{
			Name:              "Exchange",
			Version:           "1",
			ChainId:           math.NewHexOrDecimal256(l1ChainID),
			VerifyingContract: zeroAddress,
		},
		Message: apitypes.TypedDataMessage{
			"source":       source,
			"connectionId": connectionID.Hex(),
		},
	}

	return signTyped(signer, typed)
}

// SignApproveAgent signs an agent approval with the account's own key. The
// signed fields must match the action payload byte for byte, including the
// lowercased agent address.
func SignApproveAgent(signer wallet.Signer, action ApproveAgentAction) (Signature, error) {
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
			"agentAddress":     strings.ToLower(action.AgentAddress),
			"agentName":        action.AgentName,
			"nonce":            math.NewHexOrDecimal256(int64(action.Nonce)),
		},
	}

	return signTyped(signer, typed)
}

func signTyped(signer wallet.Signer, typed apitypes.TypedData) (Signature, error) {
	sig, err := signer.SignTypedData(typed)
	if err != nil {
		return Signature{}, err
	}
	if len(sig) != 65 {
		return Signature{}, fmt.Errorf("unexpected signature length %d", len(sig))
	}
	return Signature{
		R: hexutil.Encode(sig[:32]),
		S: hexutil.Encode(sig[32:64]),
		V: sig[64],
	}, nil
}
