package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billscan/internal/service"
)

// BillHandler handles stored-bill query endpoints.
type BillHandler struct {
	billService service.BillService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// List handles GET /api/v1/bills
// Optional business_id query parameter narrows the listing to one payee.
func (h *BillHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	if businessIDStr := c.Query("business_id"); businessIDStr != "" {
		businessID, err := uuid.Parse(businessIDStr)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid business id")
			return
		}
		bills, total, err := h.billService.ListByBusiness(c.Request.Context(), businessID, offset, limit)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondPaginated(c, bills, PagMeta{Total: total, Offset: offset, Limit: limit})
		return
	}

	bills, total, err := h.billService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, bills, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/bills/:id
func (h *BillHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	bill, err := h.billService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, bill)
}
