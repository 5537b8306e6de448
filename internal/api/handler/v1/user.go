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

type UserService interface {
	GetProfile(ctx context.Context, id uint) (domain.UserProfile, error)
	UpdateProfile(ctx context.Context, id uint, upd domain.UserUpdate) (domain.User, error)
	ToggleFollow(ctx context.Context, followerID, followingID uint) (bool, error)
	Followers(ctx context.Context, userID uint, page domain.Page) (domain.Paginated[domain.User], error)
	Following(ctx context.Context, userID uint, page domain.Page) (domain.Paginated[domain.User], error)
	GetPreferences(ctx context.Context, userID uint) (domain.Preferences, error)
	UpdatePreferences(ctx context.Context, userID uint, upd domain.PreferencesUpdate) (domain.Preferences, error)
}

type UserHandler struct {
	svc        UserService
	pagination *config.PaginationConfig
	tr         Translator
}

func NewUserHandler(svc UserService, pagination *config.PaginationConfig, tr Translator) *UserHandler {
	return &UserHandler{
		svc:        svc,
		pagination: pagination,
		tr:         tr,
	}
}

// HandleGetMe godoc
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.UserProfile
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetMe(ctx *gin.Context) {
	h.renderProfile(ctx, currentUserID(ctx))
}

// HandleGetUser godoc
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Param        userID  path      int  true  "User ID"
// @Success      200     {object}  domain.UserProfile
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /users/{userID} [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, respErr := parseIDParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	h.renderProfile(ctx, userID)
}

func (h *UserHandler) renderProfile(ctx *gin.Context, userID uint) {
	profile, err := h.svc.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
			return
		}

		err = fmt.Errorf("v1.renderProfile -> h.svc.GetProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleUpdateMe godoc
// @Summary      Update the current user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpdateProfileRequest  true  "request body"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/me [patch]
// @Security     BearerAuth
func (h *UserHandler) HandleUpdateMe(ctx *gin.Context) {
	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	userID := currentUserID(ctx)
	user, err := h.svc.UpdateProfile(ctx.Request.Context(), userID, req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateMe -> h.svc.UpdateProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleToggleFollow godoc
// @Summary      Follow or unfollow a user
// @Tags         users
// @Produce      json
// @Param        userID  path      int  true  "User ID"
// @Success      200     {object}  response.Detail  "unfollowed"
// @Success      201     {object}  response.Detail  "followed"
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /users/{userID}/follow [post]
// @Security     BearerAuth
func (h *UserHandler) HandleToggleFollow(ctx *gin.Context) {
	userID, respErr := parseIDParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	followed, err := h.svc.ToggleFollow(ctx.Request.Context(), currentUserID(ctx), userID)
	if err != nil {
		if renderRuleErr(ctx, err) {
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
			return
		}

		err = fmt.Errorf("v1.HandleToggleFollow -> h.svc.ToggleFollow -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if followed {
		ctx.JSON(http.StatusCreated, response.Detail{Detail: translate(ctx, h.tr, "UserFollowed")})
		return
	}

	ctx.JSON(http.StatusOK, response.Detail{Detail: translate(ctx, h.tr, "UserUnfollowed")})
}

// HandleListFollowers godoc
// @Summary      List the followers of a user
// @Tags         users
// @Produce      json
// @Param        userID     path      int  true   "User ID"
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  domain.Paginated[domain.User]
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /users/{userID}/followers [get]
// @Security     BearerAuth
func (h *UserHandler) HandleListFollowers(ctx *gin.Context) {
	h.renderFollowList(ctx, "followers", h.svc.Followers)
}

// HandleListFollowing godoc
// @Summary      List the users a user follows
// @Tags         users
// @Produce      json
// @Param        userID     path      int  true   "User ID"
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  domain.Paginated[domain.User]
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /users/{userID}/following [get]
// @Security     BearerAuth
func (h *UserHandler) HandleListFollowing(ctx *gin.Context) {
	h.renderFollowList(ctx, "following", h.svc.Following)
}

type followLister func(ctx context.Context, userID uint, page domain.Page) (domain.Paginated[domain.User], error)

func (h *UserHandler) renderFollowList(ctx *gin.Context, name string, list followLister) {
	userID, respErr := parseIDParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page, respErr := bindPage(ctx, h.pagination)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	users, err := list(ctx.Request.Context(), userID, page)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
			return
		}

		err = fmt.Errorf("v1.renderFollowList -> %s -> %w", name, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleGetPreferences godoc
// @Summary      Get the current user's preferences
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  domain.Preferences
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /preferences [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetPreferences(ctx *gin.Context) {
	prefs, err := h.svc.GetPreferences(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		err = fmt.Errorf("v1.HandleGetPreferences -> h.svc.GetPreferences -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, prefs)
}

// HandleUpdatePreferences godoc
// @Summary      Update the current user's preferences
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpdatePreferencesRequest  true  "request body"
// @Success      200      {object}  domain.Preferences
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /preferences [patch]
// @Security     BearerAuth
func (h *UserHandler) HandleUpdatePreferences(ctx *gin.Context) {
	var req request.UpdatePreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	prefs, err := h.svc.UpdatePreferences(ctx.Request.Context(), currentUserID(ctx), req.ToDomain())
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdatePreferences -> h.svc.UpdatePreferences -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, prefs)
}
