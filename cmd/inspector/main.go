// Inspector derives an order pair without submitting it, for checking what
// the gateway would send for a given asset and notional.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hypergate/hypergate/internal/hyperliquid"
	"github.com/hypergate/hypergate/internal/market"
	"github.com/hypergate/hypergate/internal/order"
	"github.com/shopspring/decimal"
)

func main() {
	var (
		baseURL  = flag.String("url", "https://api.hyperliquid-testnet.xyz", "exchange base URL")
		asset    = flag.String("asset", "BTC", "asset symbol")
		side     = flag.String("side", "buy", "buy or sell")
		notional = flag.String("notional", "15", "quote-currency notional")
		offset   = flag.Float64("offset", 0.01, "price offset fraction")
	)
	flag.Parse()

	client := hyperliquid.NewClient(*baseURL, false)
	snapshots := market.NewSnapshotService(client)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	actx, err := snapshots.GetAssetContext(ctx, *asset)
	if err != nil {
		log.Fatalf("Failed to resolve asset: %v", err)
	}

	n, err := decimal.NewFromString(*notional)
	if err != nil {
		log.Fatalf("Bad notional: %v", err)
	}

	orders, derived, err := order.NewBuilder().Build(order.Params{
		Asset:    actx,
		IsBuy:    *side == "buy",
		Notional: n,
		Offset:   decimal.NewFromFloat(*offset),
	})
	if err != nil {
		log.Fatalf("Failed to build orders: %v", err)
	}

	fmt.Printf("asset      %s (index %d, szDecimals %d)\n", actx.Name, actx.AssetIndex, actx.SzDecimals)
	fmt.Printf("markPx     %s\n", actx.MarkPx.String())
	fmt.Printf("size       %s\n", derived.Size)
	fmt.Printf("entryPx    %s\n", derived.EntryPx)
	fmt.Printf("triggerPx  %s\n", derived.TriggerPx)

	fmt.Println("\n--- wire orders ---")
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(orders); err != nil {
		log.Fatalf("Failed to encode orders: %v", err)
	}
}
