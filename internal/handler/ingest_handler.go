package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billscan/internal/domain"
	"billscan/internal/service"
)

// IngestHandler handles document ingestion endpoints.
type IngestHandler struct {
	ingestService service.IngestService
	ingestions    service.IngestionQueryService
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestService service.IngestService, ingestions service.IngestionQueryService) *IngestHandler {
	return &IngestHandler{ingestService: ingestService, ingestions: ingestions}
}

// Ingest handles POST /api/v1/ingest
// Accepts one scanned bill PDF as multipart form data, runs the full
// extraction pipeline and answers 201 with the ingestion record when a
// bill was assembled, or 422 with the rejection context.
func (h *IngestHandler) Ingest(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}

	ingestion, err := h.ingestService.Ingest(c.Request.Context(), service.IngestInput{
		FileName: header.Filename,
		Content:  content,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if ingestion.Status == domain.IngestionRejected {
		c.JSON(http.StatusUnprocessableEntity, APIResponse{Success: false, Data: ingestion})
		return
	}
	RespondCreated(c, ingestion)
}

// List handles GET /api/v1/ingestions
func (h *IngestHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	ingestions, total, err := h.ingestions.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, ingestions, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/ingestions/:id
func (h *IngestHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid ingestion id")
		return
	}

	ingestion, err := h.ingestions.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ingestion)
}

// pagination reads offset/limit query params with sane bounds.
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	return offset, limit
}
