package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/rental-ledger-backend/internal/journal"
	"github.com/nekogravitycat/rental-ledger-backend/internal/pkg/response"
)

type Handler struct {
	recorder *journal.Recorder
}

func NewHandler(recorder *journal.Recorder) *Handler {
	return &Handler{recorder: recorder}
}

func (h *Handler) List(c *gin.Context) {
	var req ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	entries, total, err := h.recorder.List(c.Request.Context(), journal.Filter{
		HolderID:   req.HolderID,
		ResourceID: req.ResourceID,
		Kind:       journal.Kind(req.Kind),
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]EntryResponse, len(entries))
	for i, e := range entries {
		items[i] = NewResponse(e)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}
