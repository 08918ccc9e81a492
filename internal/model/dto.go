package model

// SubmitRequest is the inbound order submission payload.
type SubmitRequest struct {
	Asset    string `json:"asset" binding:"required"`
	Side     string `json:"side" binding:"required,oneof=buy sell"`
	Notional string `json:"notional" binding:"required"`
}

// OrderOutcome describes one leg of the submitted pair.
type OrderOutcome struct {
	Cloid  string `json:"cloid"`
	Oid    uint64 `json:"oid,omitempty"`
	Status string `json:"status"`
	AvgPx  string `json:"avgPx,omitempty"`
}

// SubmissionResult is the response for an accepted submission.
type SubmissionResult struct {
	Asset     string         `json:"asset"`
	Side      string         `json:"side"`
	Size      string         `json:"size"`
	EntryPx   string         `json:"entryPx"`
	TriggerPx string         `json:"triggerPx"`
	Topology  string         `json:"topology"`
	Account   string         `json:"account"`
	Orders    []OrderOutcome `json:"orders"`
}

// AssetInfo is the public view of one universe entry.
type AssetInfo struct {
	Name       string `json:"name"`
	AssetIndex int    `json:"assetIndex"`
	SzDecimals int    `json:"szDecimals"`
	MarkPx     string `json:"markPx"`
	MidPx      string `json:"midPx,omitempty"`
}

// MidPrice is the live mid for one coin.
type MidPrice struct {
	Coin string `json:"coin"`
	Mid  string `json:"mid"`
}
