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

type CommentService interface {
	Create(ctx context.Context, authorID, eventID uint, parentID *uint, content string) (domain.Comment, error)
	Update(ctx context.Context, userID, id uint, content string) (domain.Comment, error)
	Delete(ctx context.Context, userID, id uint) error
	ToggleLike(ctx context.Context, userID, id uint) (domain.LikeResult, error)
	ListByEvent(ctx context.Context, requesterID uint, eventRef string, page domain.Page) (domain.Paginated[domain.Comment], error)
	Replies(ctx context.Context, requesterID, id uint, page domain.Page) (domain.Paginated[domain.Comment], error)
}

type CommentHandler struct {
	svc        CommentService
	pagination *config.PaginationConfig
}

func NewCommentHandler(svc CommentService, pagination *config.PaginationConfig) *CommentHandler {
	return &CommentHandler{
		svc:        svc,
		pagination: pagination,
	}
}

// HandleCreateComment godoc
// @Summary      Comment on an event, or reply to a comment
// @Description  Replies are one level deep. New comments are pushed to the event's comment stream.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateCommentRequest  true  "request body"
// @Success      201      {object}  domain.Comment
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /comments [post]
// @Security     BearerAuth
func (h *CommentHandler) HandleCreateComment(ctx *gin.Context) {
	var req request.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	comment, err := h.svc.Create(ctx.Request.Context(), currentUserID(ctx), req.EventID, req.ParentID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", req.EventID))
			return
		}

		h.renderErr(ctx, "h.svc.Create", 0, err)
		return
	}

	ctx.JSON(http.StatusCreated, comment)
}

// HandleUpdateComment godoc
// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        commentID  path      int                           true  "Comment ID"
// @Param        request    body      request.UpdateCommentRequest  true  "request body"
// @Success      200        {object}  domain.Comment
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /comments/{commentID} [patch]
// @Security     BearerAuth
func (h *CommentHandler) HandleUpdateComment(ctx *gin.Context) {
	commentID, respErr := parseIDParam(ctx, "commentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	comment, err := h.svc.Update(ctx.Request.Context(), currentUserID(ctx), commentID, req.Content)
	if err != nil {
		h.renderErr(ctx, "h.svc.Update", commentID, err)
		return
	}

	ctx.JSON(http.StatusOK, comment)
}

// HandleDeleteComment godoc
// @Summary      Delete a comment and its replies
// @Tags         comments
// @Param        commentID  path  int  true  "Comment ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /comments/{commentID} [delete]
// @Security     BearerAuth
func (h *CommentHandler) HandleDeleteComment(ctx *gin.Context) {
	commentID, respErr := parseIDParam(ctx, "commentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), currentUserID(ctx), commentID); err != nil {
		h.renderErr(ctx, "h.svc.Delete", commentID, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleToggleLike godoc
// @Summary      Like or unlike a comment
// @Tags         comments
// @Produce      json
// @Param        commentID  path      int  true  "Comment ID"
// @Success      200        {object}  domain.LikeResult
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /comments/{commentID}/like [post]
// @Security     BearerAuth
func (h *CommentHandler) HandleToggleLike(ctx *gin.Context) {
	commentID, respErr := parseIDParam(ctx, "commentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	result, err := h.svc.ToggleLike(ctx.Request.Context(), currentUserID(ctx), commentID)
	if err != nil {
		h.renderErr(ctx, "h.svc.ToggleLike", commentID, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleListReplies godoc
// @Summary      List the replies to a comment
// @Tags         comments
// @Produce      json
// @Param        commentID  path      int  true   "Comment ID"
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  domain.Paginated[domain.Comment]
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /comments/{commentID}/replies [get]
func (h *CommentHandler) HandleListReplies(ctx *gin.Context) {
	commentID, respErr := parseIDParam(ctx, "commentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page, respErr := bindPage(ctx, h.pagination)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	replies, err := h.svc.Replies(ctx.Request.Context(), currentUserID(ctx), commentID, page)
	if err != nil {
		h.renderErr(ctx, "h.svc.Replies", commentID, err)
		return
	}

	ctx.JSON(http.StatusOK, replies)
}

// HandleListEventComments godoc
// @Summary      List the comments of an event
// @Tags         comments
// @Produce      json
// @Param        eventRef   path      string  true   "Event ID or slug"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  domain.Paginated[domain.Comment]
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /events/{eventRef}/comments [get]
func (h *CommentHandler) HandleListEventComments(ctx *gin.Context) {
	page, respErr := bindPage(ctx, h.pagination)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	comments, err := h.svc.ListByEvent(ctx.Request.Context(), currentUserID(ctx), ctx.Param("eventRef"), page)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "reference", ctx.Param("eventRef")))
			return
		}

		h.renderErr(ctx, "h.svc.ListByEvent", 0, err)
		return
	}

	ctx.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) renderErr(ctx *gin.Context, op string, commentID uint, err error) {
	if renderRuleErr(ctx, err) {
		return
	}

	if errors.Is(err, service.ErrCommentNotFound) {
		response.RenderErr(ctx, response.ErrNotFound("comment", "ID", commentID))
		return
	}

	err = fmt.Errorf("v1.CommentHandler -> %s -> %w", op, err)
	response.RenderErr(ctx, response.ErrInternalServerError(err))
}
