package history

import (
	"encoding/json"
	"errors"

	"github.com/briefbox/brief-core/internal/middleware"
	pkgredis "github.com/briefbox/brief-core/internal/pkg/redis"
	"github.com/briefbox/brief-core/internal/pkg/response"
	"github.com/briefbox/brief-core/internal/store"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc   *Service
	cache *detailCache
}

func NewHandler(svc *Service, rc *pkgredis.Client) *Handler {
	return &Handler{svc: svc, cache: newDetailCache(rc)}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.listDay)
	rg.GET("/history/:docId", h.getDetail)
}

func (h *Handler) listDay(c *gin.Context) {
	entries, err := h.svc.ListDay(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		c.Query("day"),
		c.Query("timezone"),
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDay):
			response.BadRequest(c, "Invalid day")
		case errors.Is(err, ErrInvalidTimezone):
			response.BadRequest(c, "Invalid timezone")
		default:
			response.InternalError(c, "Failed to load history")
		}
		return
	}

	response.OK(c, entries)
}

func (h *Handler) getDetail(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := middleware.CurrentUserID(c)
	id := c.Param("docId")

	if h.cache != nil {
		if body := h.cache.get(ctx, ownerID, id); body != nil {
			response.RawJSON(c, body)
			return
		}
	}

	rec, err := h.svc.GetDetail(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, "Failed to load history entry")
		return
	}

	body, err := json.Marshal(rec)
	if err != nil {
		response.InternalError(c, "Failed to load history entry")
		return
	}
	if h.cache != nil && len(rec.Result) > 0 {
		h.cache.set(ctx, ownerID, id, body)
	}

	response.RawJSON(c, body)
}
