package hyperliquid

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hypergate/hypergate/internal/manager"
	"github.com/hypergate/hypergate/internal/pkg/apperrors"
	"github.com/hypergate/hypergate/internal/pkg/logger"
	"github.com/hypergate/hypergate/internal/wallet"
)

// Exchange posts signed actions to /exchange.
type Exchange struct {
	client *Client
	nonces *manager.NonceManager
}

func NewExchange(client *Client, nonces *manager.NonceManager) *Exchange {
	return &Exchange{client: client, nonces: nonces}
}

// PlaceOrders signs and submits a batch of orders under "na" grouping.
// A rejected batch or any per-order error surfaces as SUBMISSION_REJECTED
// carrying the exchange's own message.
func (e *Exchange) PlaceOrders(ctx context.Context, signer wallet.Signer, orders []OrderWire, vaultAddress *common.Address) (*OrderResponseData, error) {
	action := OrderAction{
		Type:     "order",
		Orders:   orders,
		Grouping: GroupingNA,
	}
	nonce := e.nonces.Next()

	sig, err := SignL1Action(signer, action, vaultAddress, nonce, e.client.IsMainnet())
	if err != nil {
		return nil, apperrors.New(apperrors.ErrInternal, "failed to sign order action", err)
	}

	req := ExchangeRequest{
		Action:    action,
		Nonce:     nonce,
		Signature: sig,
	}
	if vaultAddress != nil {
		addr := vaultAddress.Hex()
		req.VaultAddress = &addr
	}

	raw, err := e.client.post(ctx, "/exchange", req)
	if err != nil {
		return nil, err
	}

	var envelope ExchangeResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, apperrors.New(apperrors.ErrTransport, "malformed exchange response", err)
	}
	if envelope.Status != "ok" {
		return nil, apperrors.New(apperrors.ErrSubmissionReject,
			fmt.Sprintf("exchange rejected order action: %s", rawMessage(envelope.Response)), nil)
	}

	var data OrderResponseData
	if err := json.Unmarshal(envelope.Response, &data); err != nil {
		return nil, apperrors.New(apperrors.ErrTransport, "malformed order response data", err)
	}

	for i, st := range data.Data.Statuses {
		if st.Error != "" {
			return nil, apperrors.New(apperrors.ErrSubmissionReject,
				fmt.Sprintf("order %d rejected: %s", i, st.Error), nil)
		}
	}

	return &data, nil
}

// ApproveAgent registers agent as a named trading key for the owner account.
// The owner signs the approval directly.
func (e *Exchange) ApproveAgent(ctx context.Context, owner wallet.Signer, agent common.Address, agentName string) error {
	chain := "Testnet"
	if e.client.IsMainnet() {
		chain = "Mainnet"
	}

	action := ApproveAgentAction{
		Type:             "approveAgent",
		HyperliquidChain: chain,
		SignatureChainID: userSignChainHex,
		AgentAddress:     strings.ToLower(agent.Hex()),
		AgentName:        agentName,
		Nonce:            e.nonces.Next(),
	}

	sig, err := SignApproveAgent(owner, action)
	if err != nil {
		return apperrors.New(apperrors.ErrDelegationFailed, "failed to sign agent approval", err)
	}

	raw, err := e.client.post(ctx, "/exchange", ExchangeRequest{
		Action:    action,
		Nonce:     action.Nonce,
		Signature: sig,
	})
	if err != nil {
		return apperrors.New(apperrors.ErrDelegationFailed, "agent approval request failed", err)
	}

	var envelope ExchangeResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return apperrors.New(apperrors.ErrDelegationFailed, "malformed approval response", err)
	}
	if envelope.Status != "ok" {
		return apperrors.New(apperrors.ErrDelegationFailed,
			fmt.Sprintf("exchange rejected agent approval: %s", rawMessage(envelope.Response)), nil)
	}

	logger.Info("Agent approved",
		"owner", owner.Address().Hex(),
		"agent", agent.Hex(),
		"name", agentName,
	)
	return nil
}

// rawMessage renders a response payload for error text; rejections arrive as
// bare JSON strings.
func rawMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
