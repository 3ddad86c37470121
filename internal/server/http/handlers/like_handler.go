package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// LikeHandler serves product likes.
type LikeHandler struct {
	facade LikeFacade
}

// NewLikeHandler constructs LikeHandler.
func NewLikeHandler(facade LikeFacade) *LikeHandler {
	return &LikeHandler{facade: facade}
}

// Toggle handles POST /api/likes/:productId.
func (h *LikeHandler) Toggle(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}
	status, err := h.facade.ToggleLike(c.Request.Context(), CurrentPrincipal(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.LikeResponse{Liked: status.Liked, Count: status.Count})
}

// Status handles GET /api/likes/product/:productId. Liked is reported only for authenticated callers.
func (h *LikeHandler) Status(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}
	status, err := h.facade.LikeStatus(c.Request.Context(), optionalPrincipal(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.LikeResponse{Liked: status.Liked, Count: status.Count})
}

// Mine handles GET /api/users/likes.
func (h *LikeHandler) Mine(c *gin.Context) {
	page, limit := pageQuery(c)
	result, err := h.facade.MyLikes(c.Request.Context(), CurrentPrincipal(c), page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(result, toProductResponse))
}
