package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/vietanh2810/social-events-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/social-events-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/social-events-api/internal/config"
	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/service"
)

const imageFormField = "image"

var errImageMissing = errors.New("No file was submitted in the \"image\" field.")

type EventService interface {
	Get(ctx context.Context, requesterID uint, ref string) (domain.Event, error)
	Search(ctx context.Context, requesterID uint, filter domain.EventFilter, page domain.Page) (domain.Paginated[domain.Event], error)
	Create(ctx context.Context, organizerID uint, event domain.Event, image *service.ImageUpload) (domain.Event, error)
	Update(ctx context.Context, userID uint, ref string, upd domain.EventUpdate) (domain.Event, error)
	Delete(ctx context.Context, userID uint, ref string) error
	UploadImage(ctx context.Context, userID uint, ref string, image service.ImageUpload) (domain.Event, error)
	ToggleFavorite(ctx context.Context, userID uint, ref string) (bool, error)
	Registrations(ctx context.Context, userID uint, ref string, page domain.Page) (domain.Paginated[domain.Registration], error)
}

type EventHandler struct {
	svc        EventService
	pagination *config.PaginationConfig
	tr         Translator
}

func NewEventHandler(svc EventService, pagination *config.PaginationConfig, tr Translator) *EventHandler {
	return &EventHandler{
		svc:        svc,
		pagination: pagination,
		tr:         tr,
	}
}

// HandleSearchEvents godoc
// @Summary      Search events
// @Description  Anonymous users only see public events. favorites_only is ignored for them.
// @Tags         events
// @Produce      json
// @Param        q               query     string   false  "Text in title, description or location"
// @Param        category        query     int      false  "Category ID"
// @Param        date_from       query     string   false  "Events starting at or after (RFC 3339)"
// @Param        date_to         query     string   false  "Events ending at or before (RFC 3339)"
// @Param        price_min       query     number   false  "Minimum price"
// @Param        price_max       query     number   false  "Maximum price"
// @Param        status          query     string   false  "draft, published or cancelled"
// @Param        location        query     string   false  "Location contains"
// @Param        available_only  query     bool     false  "Only events with free seats"
// @Param        favorites_only  query     bool     false  "Only the caller's favorites"
// @Param        organizer       query     int      false  "Organizer ID"
// @Param        order_by        query     string   false  "Field, prefixed with - for descending"
// @Param        page            query     int      false  "Page number"
// @Param        page_size       query     int      false  "Page size"
// @Success      200             {object}  domain.Paginated[domain.Event]
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /events/search [get]
func (h *EventHandler) HandleSearchEvents(ctx *gin.Context) {
	var req request.SearchEventsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	page := req.ToPage(h.pagination.DefaultPageSize, h.pagination.MaxPageSize)
	events, err := h.svc.Search(ctx.Request.Context(), currentUserID(ctx), req.ToDomain(), page)
	if err != nil {
		h.renderErr(ctx, "h.svc.Search", err)
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID or slug
// @Tags         events
// @Produce      json
// @Param        eventRef  path      string  true  "Event ID or slug"
// @Success      200       {object}  domain.Event
// @Failure      401       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /events/{eventRef} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	event, err := h.svc.Get(ctx.Request.Context(), currentUserID(ctx), ctx.Param("eventRef"))
	if err != nil {
		h.renderErr(ctx, "h.svc.Get", err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Description  Accepts JSON, or a multipart form with an optional "image" file.
// @Tags         events
// @Accept       json,mpfd
// @Produce      json
// @Param        request  body      request.CreateEventRequest  true   "request body"
// @Param        image    formData  file                        false  "Event image"
// @Success      201      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	var req request.CreateEventRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var image *service.ImageUpload
	if ctx.ContentType() == binding.MIMEMultipartPOSTForm {
		header, err := ctx.FormFile(imageFormField)
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		if header != nil {
			file, err := header.Open()
			if err != nil {
				response.RenderErr(ctx, response.ErrBadRequest(err))
				return
			}
			defer file.Close()

			image = &service.ImageUpload{File: file, Size: header.Size}
		}
	}

	event, err := h.svc.Create(ctx.Request.Context(), currentUserID(ctx), req.ToDomain(), image)
	if err != nil {
		h.renderErr(ctx, "h.svc.Create", err)
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Description  Only the organizer may update an event. Changing the title changes the slug.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventRef  path      string                      true  "Event ID or slug"
// @Param        request   body      request.UpdateEventRequest  true  "request body"
// @Success      200       {object}  domain.Event
// @Failure      400       {object}  response.Err
// @Failure      401       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /events/{eventRef} [patch]
// @Security     BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.Update(ctx.Request.Context(), currentUserID(ctx), ctx.Param("eventRef"), req.ToDomain())
	if err != nil {
		h.renderErr(ctx, "h.svc.Update", err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Tags         events
// @Param        eventRef  path  string  true  "Event ID or slug"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventRef} [delete]
// @Security     BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	if err := h.svc.Delete(ctx.Request.Context(), currentUserID(ctx), ctx.Param("eventRef")); err != nil {
		h.renderErr(ctx, "h.svc.Delete", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUploadImage godoc
// @Summary      Replace the image of an event
// @Tags         events
// @Accept       mpfd
// @Produce      json
// @Param        eventRef  path      string  true  "Event ID or slug"
// @Param        image     formData  file    true  "Event image"
// @Success      200       {object}  domain.Event
// @Failure      400       {object}  response.Err
// @Failure      401       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /events/{eventRef}/image [put]
// @Security     BearerAuth
func (h *EventHandler) HandleUploadImage(ctx *gin.Context) {
	header, err := ctx.FormFile(imageFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			err = errImageMissing
		}
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	defer file.Close()

	event, err := h.svc.UploadImage(ctx.Request.Context(), currentUserID(ctx), ctx.Param("eventRef"), service.ImageUpload{
		File: file,
		Size: header.Size,
	})
	if err != nil {
		h.renderErr(ctx, "h.svc.UploadImage", err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleToggleFavorite godoc
// @Summary      Add or remove an event from the caller's favorites
// @Tags         events
// @Produce      json
// @Param        eventRef  path      string  true  "Event ID or slug"
// @Success      200       {object}  response.Status
// @Failure      401       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /events/{eventRef}/favorite [post]
// @Security     BearerAuth
func (h *EventHandler) HandleToggleFavorite(ctx *gin.Context) {
	added, err := h.svc.ToggleFavorite(ctx.Request.Context(), currentUserID(ctx), ctx.Param("eventRef"))
	if err != nil {
		h.renderErr(ctx, "h.svc.ToggleFavorite", err)
		return
	}

	key := "EventRemovedFromFavorites"
	if added {
		key = "EventAddedToFavorites"
	}

	ctx.JSON(http.StatusOK, response.Status{Status: translate(ctx, h.tr, key)})
}

// HandleListRegistrations godoc
// @Summary      List the registrations of an event
// @Description  Only the organizer may list them.
// @Tags         events
// @Produce      json
// @Param        eventRef   path      string  true   "Event ID or slug"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  domain.Paginated[domain.Registration]
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /events/{eventRef}/registrations [get]
// @Security     BearerAuth
func (h *EventHandler) HandleListRegistrations(ctx *gin.Context) {
	page, respErr := bindPage(ctx, h.pagination)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registrations, err := h.svc.Registrations(ctx.Request.Context(), currentUserID(ctx), ctx.Param("eventRef"), page)
	if err != nil {
		h.renderErr(ctx, "h.svc.Registrations", err)
		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

func (h *EventHandler) renderErr(ctx *gin.Context, op string, err error) {
	if renderRuleErr(ctx, err) {
		return
	}

	if errors.Is(err, service.ErrEventNotFound) {
		response.RenderErr(ctx, response.ErrNotFound("event", "reference", ctx.Param("eventRef")))
		return
	}

	err = fmt.Errorf("v1.EventHandler -> %s -> %w", op, err)
	response.RenderErr(ctx, response.ErrInternalServerError(err))
}
