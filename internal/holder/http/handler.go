package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/rental-ledger-backend/internal/holder"
	"github.com/nekogravitycat/rental-ledger-backend/internal/ledger"
	"github.com/nekogravitycat/rental-ledger-backend/internal/pkg/request"
	"github.com/nekogravitycat/rental-ledger-backend/internal/pkg/response"
)

type Handler struct {
	service holder.Service
	ledger  ledger.Service
}

func NewHandler(service holder.Service, ledgerService ledger.Service) *Handler {
	return &Handler{
		service: service,
		ledger:  ledgerService,
	}
}

func (h *Handler) List(c *gin.Context) {
	var req ListHoldersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	holders, total, err := h.service.List(c.Request.Context(), holder.Filter{
		ResourceID: req.ResourceID,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]HolderResponse, len(holders))
	for i, hd := range holders {
		items[i] = NewResponse(hd)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	hd, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(hd))
}

// Allocate creates a holder bound to a resource.
func (h *Handler) Allocate(c *gin.Context) {
	var body AllocateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	hd, err := h.ledger.Allocate(c.Request.Context(), ledger.AllocateRequest{
		Name:       body.Name,
		Contact:    body.Contact,
		ResourceID: body.ResourceID,
		Quantity:   body.Quantity,
		Duration:   body.Duration,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(hd))
}

// Release removes the holder and hands its allocation back to the catalog.
// The removed holder is returned so the caller can see the final balance.
func (h *Handler) Release(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	hd, err := h.ledger.Release(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(hd))
}

func (h *Handler) RecordPayment(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body PaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	hd, err := h.ledger.RecordPayment(c.Request.Context(), uri.ID, *body.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(hd))
}
