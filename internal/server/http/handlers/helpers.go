package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// CurrentPrincipal returns authenticated caller or zero principal.
func CurrentPrincipal(c *gin.Context) model.Principal {
	principal, _ := middleware.CurrentPrincipal(c)
	return principal
}

func optionalPrincipal(c *gin.Context) *model.Principal {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return nil
	}
	return &principal
}

// pathID parses positive identifier from path parameter. On failure the error
// is attached to context and false is returned.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Error(domainErrors.Validation("invalid %s", name))
		return 0, false
	}
	return id, true
}

// pageQuery reads page and limit; malformed values fall back to defaults.
func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return page, limit
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(domainErrors.Validation("malformed request body"))
		return false
	}
	return true
}
