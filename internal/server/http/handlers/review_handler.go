package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/usecase"
)

// ReviewHandler serves product reviews.
type ReviewHandler struct {
	facade ReviewFacade
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(facade ReviewFacade) *ReviewHandler {
	return &ReviewHandler{facade: facade}
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := h.facade.CreateReview(c.Request.Context(), CurrentPrincipal(c), usecase.ReviewInput{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, toReviewResponse(*review))
}

// ForProduct handles GET /api/reviews/product/:id.
func (h *ReviewHandler) ForProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, limit := pageQuery(c)
	result, err := h.facade.ProductReviews(c.Request.Context(), id, page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(result, toReviewResponse))
}

// Mine handles GET /api/users/reviews.
func (h *ReviewHandler) Mine(c *gin.Context) {
	page, limit := pageQuery(c)
	result, err := h.facade.MyReviews(c.Request.Context(), CurrentPrincipal(c), page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(result, toReviewResponse))
}

// List handles GET /api/reviews.
func (h *ReviewHandler) List(c *gin.Context) {
	page, limit := pageQuery(c)
	result, err := h.facade.Reviews(c.Request.Context(), model.ReviewStatus(c.Query("status")), page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(result, toReviewResponse))
}

// Update handles PUT /api/reviews/:id.
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ReviewUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := h.facade.UpdateReview(c.Request.Context(), CurrentPrincipal(c), id, usecase.ReviewUpdate{
		Rating:  req.Rating,
		Title:   req.Title,
		Comment: req.Comment,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(*review))
}

// Approve handles PUT /api/reviews/:id/approve.
func (h *ReviewHandler) Approve(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	review, err := h.facade.ApproveReview(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(*review))
}

// Delete handles DELETE /api/reviews/:id.
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteReview(c.Request.Context(), CurrentPrincipal(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
