package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hypergate/hypergate/internal/market"
	"github.com/hypergate/hypergate/internal/model"
	"github.com/hypergate/hypergate/internal/pkg/apperrors"
)

type MarketHandler struct {
	snapshots market.Reader
	mids      *market.MidStream
}

func NewMarketHandler(snapshots market.Reader, mids *market.MidStream) *MarketHandler {
	return &MarketHandler{snapshots: snapshots, mids: mids}
}

// GetAsset handles GET /v1/assets/:name.
func (h *MarketHandler) GetAsset(c *gin.Context) {
	actx, err := h.snapshots.GetAssetContext(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.Error(err)
		return
	}

	info := model.AssetInfo{
		Name:       actx.Name,
		AssetIndex: actx.AssetIndex,
		SzDecimals: actx.SzDecimals,
		MarkPx:     actx.MarkPx.String(),
	}
	if !actx.MidPx.IsZero() {
		info.MidPx = actx.MidPx.String()
	}
	c.JSON(http.StatusOK, info)
}

// GetMid handles GET /v1/markets/:name/mid, served from the websocket cache.
func (h *MarketHandler) GetMid(c *gin.Context) {
	name := c.Param("name")
	if h.mids == nil {
		c.Error(apperrors.New(apperrors.ErrInternal, "mid stream not running", nil))
		return
	}

	mid, ok := h.mids.GetMid(name)
	if !ok {
		c.Error(apperrors.NewAssetNotFound("no mid price for " + name))
		return
	}

	c.JSON(http.StatusOK, model.MidPrice{Coin: name, Mid: mid})
}
