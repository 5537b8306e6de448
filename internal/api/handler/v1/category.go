package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/social-events-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/social-events-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/social-events-api/internal/config"
	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/service"
)

type CategoryService interface {
	Create(ctx context.Context, creatorID uint, category domain.Category) (domain.Category, error)
	Get(ctx context.Context, id uint) (domain.Category, error)
	List(ctx context.Context, query domain.CategoryQuery) (domain.Paginated[domain.Category], error)
	Update(ctx context.Context, userID, id uint, upd domain.CategoryUpdate) (domain.Category, error)
	Delete(ctx context.Context, userID, id uint) error
}

type CategoryHandler struct {
	svc        CategoryService
	pagination *config.PaginationConfig
}

func NewCategoryHandler(svc CategoryService, pagination *config.PaginationConfig) *CategoryHandler {
	return &CategoryHandler{
		svc:        svc,
		pagination: pagination,
	}
}

// HandleListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        search          query     string  false  "Name contains (case-insensitive)"
// @Param        sort_by         query     string  false  "name or created_at"
// @Param        sort_direction  query     string  false  "asc or desc"
// @Param        page            query     int     false  "Page number"
// @Param        page_size       query     int     false  "Page size"
// @Success      200             {object}  domain.Paginated[domain.Category]
// @Failure      400             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /categories [get]
func (h *CategoryHandler) HandleListCategories(ctx *gin.Context) {
	var req request.ListCategoriesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	categories, err := h.svc.List(ctx.Request.Context(), domain.CategoryQuery{
		Search:        req.Search,
		SortBy:        req.SortBy,
		SortDirection: req.SortDirection,
		Page:          req.ToPage(h.pagination.DefaultPageSize, h.pagination.MaxPageSize),
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleListCategories -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// HandleGetCategory godoc
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        categoryID  path      int  true  "Category ID"
// @Success      200         {object}  domain.Category
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /categories/{categoryID} [get]
func (h *CategoryHandler) HandleGetCategory(ctx *gin.Context) {
	categoryID, respErr := parseIDParam(ctx, "categoryID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	category, err := h.svc.Get(ctx.Request.Context(), categoryID)
	if err != nil {
		h.renderErr(ctx, "h.svc.Get", categoryID, err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// HandleCreateCategory godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateCategoryRequest  true  "request body"
// @Success      201      {object}  domain.Category
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /categories [post]
// @Security     BearerAuth
func (h *CategoryHandler) HandleCreateCategory(ctx *gin.Context) {
	var req request.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	category, err := h.svc.Create(ctx.Request.Context(), currentUserID(ctx), domain.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.renderErr(ctx, "h.svc.Create", 0, err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

// HandleUpdateCategory godoc
// @Summary      Update a category
// @Description  Only the creator of a category may update it.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        categoryID  path      int                            true  "Category ID"
// @Param        request     body      request.UpdateCategoryRequest  true  "request body"
// @Success      200         {object}  domain.Category
// @Failure      400         {object}  response.Err
// @Failure      401         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      409         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /categories/{categoryID} [patch]
// @Security     BearerAuth
func (h *CategoryHandler) HandleUpdateCategory(ctx *gin.Context) {
	categoryID, respErr := parseIDParam(ctx, "categoryID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	category, err := h.svc.Update(ctx.Request.Context(), currentUserID(ctx), categoryID, req.ToDomain())
	if err != nil {
		h.renderErr(ctx, "h.svc.Update", categoryID, err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// HandleDeleteCategory godoc
// @Summary      Delete a category
// @Description  Only the creator of a category may delete it. Its events are kept without a category.
// @Tags         categories
// @Param        categoryID  path  int  true  "Category ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /categories/{categoryID} [delete]
// @Security     BearerAuth
func (h *CategoryHandler) HandleDeleteCategory(ctx *gin.Context) {
	categoryID, respErr := parseIDParam(ctx, "categoryID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), currentUserID(ctx), categoryID); err != nil {
		h.renderErr(ctx, "h.svc.Delete", categoryID, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *CategoryHandler) renderErr(ctx *gin.Context, op string, categoryID uint, err error) {
	if renderRuleErr(ctx, err) {
		return
	}

	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		response.RenderErr(ctx, response.ErrNotFound("category", "ID", categoryID))
	case errors.Is(err, service.ErrCategoryNameExists):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		err = fmt.Errorf("v1.CategoryHandler -> %s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
