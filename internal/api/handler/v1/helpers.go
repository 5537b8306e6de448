package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/social-events-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/social-events-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/social-events-api/internal/api/middleware"
	"github.com/vietanh2810/social-events-api/internal/config"
	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/service"
)

type Translator interface {
	T(acceptLanguage, key string, data map[string]any) string
}

// currentUserID returns the authenticated user id, or zero for anonymous requests.
func currentUserID(ctx *gin.Context) uint {
	return ctx.GetUint(middleware.ContextKeyUserID)
}

func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s: %q", name, ctx.Param(name)))
	}

	return uint(id), nil
}

func bindPage(ctx *gin.Context, conf *config.PaginationConfig) (domain.Page, *response.Err) {
	var req request.PageRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		return domain.Page{}, response.ErrBadRequest(err)
	}

	if err := req.Validate(); err != nil {
		return domain.Page{}, response.ErrBadRequest(err)
	}

	return req.ToPage(conf.DefaultPageSize, conf.MaxPageSize), nil
}

// renderRuleErr renders business-rule (400) and authority (403) failures
// and reports whether err was one of them.
func renderRuleErr(ctx *gin.Context, err error) bool {
	if vErr, ok := service.AsValidationError(err); ok {
		response.RenderErr(ctx, response.ErrBadRequest(vErr))
		return true
	}

	var pErr *service.PermissionError
	if errors.As(err, &pErr) {
		response.RenderErr(ctx, response.ErrPermissionDenied(pErr))
		return true
	}

	return false
}

func translate(ctx *gin.Context, tr Translator, key string) string {
	return tr.T(ctx.GetHeader("Accept-Language"), key, nil)
}
