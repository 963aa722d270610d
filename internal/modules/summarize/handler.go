package summarize

import (
	"errors"

	"github.com/briefbox/brief-core/internal/middleware"
	"github.com/briefbox/brief-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/summarize", h.summarize)
}

func (h *Handler) summarize(c *gin.Context) {
	var dto summarizeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), middleware.CurrentUserID(c), dto.Text)
	if err != nil {
		switch {
		case errors.Is(err, ErrTextRequired):
			response.BadRequest(c, "Text is required")
		case errors.Is(err, ErrTextTooLong):
			response.BadRequest(c, "Text is too long")
		case errors.Is(err, ErrPersistenceFailed):
			response.InternalError(c, "Failed to save request")
		default:
			response.InternalError(c, "Failed to generate summary")
		}
		return
	}

	response.RawJSON(c, result)
}
