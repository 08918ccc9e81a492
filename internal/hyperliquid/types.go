package hyperliquid

import "encoding/json"

// Order time-in-force and trigger constants.
const (
	TifGtc = "Gtc"
	TifIoc = "Ioc"
	TifAlo = "Alo"

	TpslTakeProfit = "tp"
	TpslStopLoss   = "sl"

	GroupingNA = "na"
)

// LimitOrderType is the resting-order leg of an order type.
type LimitOrderType struct {
	Tif string `json:"tif" msgpack:"tif"`
}

// TriggerOrderType is the conditional leg of an order type. Field order
// matters for action hashing and must not change.
type TriggerOrderType struct {
	IsMarket  bool   `json:"isMarket" msgpack:"isMarket"`
	TriggerPx string `json:"triggerPx" msgpack:"triggerPx"`
	Tpsl      string `json:"tpsl" msgpack:"tpsl"`
}

// OrderType carries exactly one of its legs.
type OrderType struct {
	Limit   *LimitOrderType   `json:"limit,omitempty" msgpack:"limit,omitempty"`
	Trigger *TriggerOrderType `json:"trigger,omitempty" msgpack:"trigger,omitempty"`
}

// OrderWire is a single order in the exchange's compact wire form.
// Keys and their order are part of the signed payload.
type OrderWire struct {
	Asset      int       `json:"a" msgpack:"a"`
	IsBuy      bool      `json:"b" msgpack:"b"`
	LimitPx    string    `json:"p" msgpack:"p"`
	Size       string    `json:"s" msgpack:"s"`
	ReduceOnly bool      `json:"r" msgpack:"r"`
	OrderType  OrderType `json:"t" msgpack:"t"`
	Cloid      string    `json:"c,omitempty" msgpack:"c,omitempty"`
}

// OrderAction is the L1 action for placing a batch of orders.
type OrderAction struct {
	Type     string      `json:"type" msgpack:"type"`
	Orders   []OrderWire `json:"orders" msgpack:"orders"`
	Grouping string      `json:"grouping" msgpack:"grouping"`
}

// ApproveAgentAction registers a named agent key for an account. It is a
// user-signed action: the owning account signs it directly, not via the
// phantom agent scheme.
type ApproveAgentAction struct {
	Type             string `json:"type" msgpack:"type"`
	HyperliquidChain string `json:"hyperliquidChain" msgpack:"hyperliquidChain"`
	SignatureChainID string `json:"signatureChainId" msgpack:"signatureChainId"`
	AgentAddress     string `json:"agentAddress" msgpack:"agentAddress"`
	AgentName        string `json:"agentName" msgpack:"agentName"`
	Nonce            uint64 `json:"nonce" msgpack:"nonce"`
}

// Signature is the r/s/v triple the exchange expects alongside every action.
type Signature struct {
	R string `json:"r"`
	S string `json:"s"`
	V uint8  `json:"v"`
}

// ExchangeRequest is the envelope posted to /exchange.
type ExchangeRequest struct {
	Action       any       `json:"action"`
	Nonce        uint64    `json:"nonce"`
	Signature    Signature `json:"signature"`
	VaultAddress *string   `json:"vaultAddress,omitempty"`
}

// ExchangeResponse is the envelope returned by /exchange. On rejection the
// response field is a bare string instead of an object.
type ExchangeResponse struct {
	Status   string          `json:"status"`
	Response json.RawMessage `json:"response"`
}

// OrderResponseData holds the per-order statuses of an accepted order action.
type OrderResponseData struct {
	Type string `json:"type"`
	Data struct {
		Statuses []OrderStatus `json:"statuses"`
	} `json:"data"`
}

// OrderStatus is the outcome of one order in a batch. Exactly one of its
// fields is populated.
type OrderStatus struct {
	Resting *RestingOrder `json:"resting,omitempty"`
	Filled  *FilledOrder  `json:"filled,omitempty"`
	Error   string        `json:"error,omitempty"`
}

type RestingOrder struct {
	Oid uint64 `json:"oid"`
}

type FilledOrder struct {
	Oid     uint64 `json:"oid"`
	TotalSz string `json:"totalSz"`
	AvgPx   string `json:"avgPx"`
}

// AssetMeta is one entry of the exchange universe.
type AssetMeta struct {
	Name       string `json:"name"`
	SzDecimals int    `json:"szDecimals"`
	MaxLevered int    `json:"maxLeverage"`
	OnlyIso    bool   `json:"onlyIsolated"`
}

// Meta is the static half of the metaAndAssetCtxs response.
type Meta struct {
	Universe []AssetMeta `json:"universe"`
}

// AssetCtx is the live half, positionally aligned with Meta.Universe.
type AssetCtx struct {
	MarkPx       string   `json:"markPx"`
	MidPx        string   `json:"midPx"`
	OraclePx     string   `json:"oraclePx"`
	Funding      string   `json:"funding"`
	OpenInterest string   `json:"openInterest"`
	DayNtlVlm    string   `json:"dayNtlVlm"`
	PrevDayPx    string   `json:"prevDayPx"`
	ImpactPxs    []string `json:"impactPxs"`
}

// PreTransferCheckResult reports whether an account is known to the bridge.
type PreTransferCheckResult struct {
	Fee          string `json:"fee"`
	IsSanctioned bool   `json:"isSanctioned"`
	UserExists   bool   `json:"userExists"`
}

// ClearinghouseState is the post-trade account snapshot. Only the fields the
// gateway reads back are modeled; the rest stays raw.
type ClearinghouseState struct {
	AssetPositions []AssetPosition `json:"assetPositions"`
	MarginSummary  MarginSummary   `json:"marginSummary"`
	Withdrawable   string          `json:"withdrawable"`
}

type AssetPosition struct {
	Type     string `json:"type"`
	Position struct {
		Coin     string `json:"coin"`
		Szi      string `json:"szi"`
		EntryPx  string `json:"entryPx"`
		Leverage struct {
			Type  string `json:"type"`
			Value int    `json:"value"`
		} `json:"leverage"`
		UnrealizedPnl string `json:"unrealizedPnl"`
	} `json:"position"`
}

type MarginSummary struct {
	AccountValue string `json:"accountValue"`
	TotalNtlPos  string `json:"totalNtlPos"`
	TotalRawUsd  string `json:"totalRawUsd"`
}
