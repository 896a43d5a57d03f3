package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billscan/internal/domain"
	"billscan/internal/service"
)

// BusinessHandler handles payee business management endpoints.
type BusinessHandler struct {
	businessService service.BusinessService
}

// NewBusinessHandler creates a new BusinessHandler.
func NewBusinessHandler(businessService service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

type createBusinessRequest struct {
	Name        string                `json:"name" binding:"required"`
	BankAccount string                `json:"bank_account" binding:"required"`
	PDFProducer string                `json:"pdf_producer"`
	Type        string                `json:"type" binding:"required"`
	URL         string                `json:"url"`
	Address     *createAddressRequest `json:"address"`
}

type createAddressRequest struct {
	Street     string `json:"street" binding:"required"`
	Number     string `json:"number" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode int    `json:"postal_code" binding:"required"`
}

// Create handles POST /api/v1/businesses
func (h *BusinessHandler) Create(c *gin.Context) {
	var req createBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	input := service.CreateBusinessInput{
		Name:        req.Name,
		BankAccount: req.BankAccount,
		PDFProducer: req.PDFProducer,
		Type:        domain.BusinessType(req.Type),
		URL:         req.URL,
	}
	if req.Address != nil {
		input.Address = &service.CreateAddressInput{
			Street:     req.Address.Street,
			Number:     req.Address.Number,
			City:       req.Address.City,
			PostalCode: req.Address.PostalCode,
		}
	}

	business, err := h.businessService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, business)
}

// List handles GET /api/v1/businesses
func (h *BusinessHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	businesses, total, err := h.businessService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, businesses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/businesses/:id
func (h *BusinessHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid business id")
		return
	}

	business, err := h.businessService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, business)
}
