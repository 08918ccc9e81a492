package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hypergate/hypergate/internal/model"
	"github.com/hypergate/hypergate/internal/pkg/apperrors"
	"github.com/hypergate/hypergate/internal/service"
)

type OrderHandler struct {
	svc *service.SubmitService
}

func NewOrderHandler(svc *service.SubmitService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Submit handles POST /v1/orders.
func (h *OrderHandler) Submit(c *gin.Context) {
	var req model.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidRequest(err.Error()))
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}
