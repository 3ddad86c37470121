package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/usecase"
)

// UserHandler serves profile and account administration endpoints.
type UserHandler struct {
	facade AccountFacade
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(facade AccountFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Profile handles GET /api/users/profile.
func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.facade.Profile(c.Request.Context(), CurrentPrincipal(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{
		UserResponse: toUserResponse(profile.User),
		Stats: dto.UserStatsResponse{
			OrdersCount:  profile.Stats.OrdersCount,
			ReviewsCount: profile.Stats.ReviewsCount,
			LikesCount:   profile.Stats.LikesCount,
		},
	})
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.facade.UpdateProfile(c.Request.Context(), CurrentPrincipal(c), usecase.ProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}

// List handles GET /api/users.
func (h *UserHandler) List(c *gin.Context) {
	page, limit := pageQuery(c)
	result, err := h.facade.Users(c.Request.Context(), page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(result, toUserResponse))
}

// Create handles POST /api/users.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.AccountRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.facade.CreateUser(c.Request.Context(), usecase.AccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     model.Role(req.Role),
		IsActive: req.IsActive,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(*user))
}

// Update handles PUT /api/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.facade.UpdateUser(c.Request.Context(), id, usecase.ProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}

// Delete handles DELETE /api/users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteUser(c.Request.Context(), CurrentPrincipal(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ChangeRole handles PUT /api/users/:id/role.
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RoleRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.facade.ChangeUserRole(c.Request.Context(), id, model.Role(req.Role))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}

// ChangeStatus handles PUT /api/users/:id/status.
func (h *UserHandler) ChangeStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UserStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.IsActive == nil {
		_ = c.Error(domainErrors.Validation("isActive is required"))
		return
	}
	user, err := h.facade.ChangeUserStatus(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}

// Dashboard handles GET /api/dashboard/stats.
func (h *UserHandler) Dashboard(c *gin.Context) {
	stats, err := h.facade.Dashboard(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.DashboardResponse{
		TotalUsers:    stats.TotalUsers,
		TotalProducts: stats.TotalProducts,
		TotalOrders:   stats.Orders.Count,
		TotalRevenue:  stats.Orders.Revenue.InexactFloat64(),
	})
}
