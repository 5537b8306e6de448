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

type RegistrationService interface {
	Register(ctx context.Context, userID, eventID uint, notes string) (domain.Registration, error)
	Get(ctx context.Context, userID, id uint) (domain.Registration, error)
	Mine(ctx context.Context, userID uint, page domain.Page) (domain.Paginated[domain.Registration], error)
	Confirm(ctx context.Context, userID, id uint) (domain.Registration, error)
	Cancel(ctx context.Context, userID, id uint) (domain.Registration, error)
	Restore(ctx context.Context, userID, id uint) (domain.Registration, error)
	QRCode(ctx context.Context, userID, id uint) ([]byte, error)
}

type RegistrationHandler struct {
	svc        RegistrationService
	pagination *config.PaginationConfig
	tr         Translator
}

func NewRegistrationHandler(svc RegistrationService, pagination *config.PaginationConfig, tr Translator) *RegistrationHandler {
	return &RegistrationHandler{
		svc:        svc,
		pagination: pagination,
		tr:         tr,
	}
}

// HandleCreateRegistration godoc
// @Summary      Register to an event
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateRegistrationRequest  true  "request body"
// @Success      201      {object}  domain.Registration
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /registrations [post]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleCreateRegistration(ctx *gin.Context) {
	var req request.CreateRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reg, err := h.svc.Register(ctx.Request.Context(), currentUserID(ctx), req.EventID, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", req.EventID))
			return
		}

		h.renderErr(ctx, "h.svc.Register", 0, err)
		return
	}

	ctx.JSON(http.StatusCreated, reg)
}

// HandleListMine godoc
// @Summary      List the caller's registrations
// @Tags         registrations
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  domain.Paginated[domain.Registration]
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /registrations/mine [get]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleListMine(ctx *gin.Context) {
	page, respErr := bindPage(ctx, h.pagination)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registrations, err := h.svc.Mine(ctx.Request.Context(), currentUserID(ctx), page)
	if err != nil {
		h.renderErr(ctx, "h.svc.Mine", 0, err)
		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

// HandleGetRegistration godoc
// @Summary      Get a registration
// @Description  Visible to the attendee and to the organizer of the event.
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Success      200             {object}  domain.Registration
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      403             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /registrations/{registrationID} [get]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleGetRegistration(ctx *gin.Context) {
	registrationID, respErr := parseIDParam(ctx, "registrationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reg, err := h.svc.Get(ctx.Request.Context(), currentUserID(ctx), registrationID)
	if err != nil {
		h.renderErr(ctx, "h.svc.Get", registrationID, err)
		return
	}

	ctx.JSON(http.StatusOK, reg)
}

type registrationTransition func(ctx context.Context, userID, id uint) (domain.Registration, error)

// HandleConfirm godoc
// @Summary      Confirm a pending registration
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Success      200             {object}  response.RegistrationAction
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      403             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /registrations/{registrationID}/confirm [post]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleConfirm(ctx *gin.Context) {
	h.transition(ctx, "h.svc.Confirm", "RegistrationConfirmed", h.svc.Confirm)
}

// HandleCancel godoc
// @Summary      Cancel a registration
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Success      200             {object}  response.RegistrationAction
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      403             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /registrations/{registrationID}/cancel [post]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleCancel(ctx *gin.Context) {
	h.transition(ctx, "h.svc.Cancel", "RegistrationCancelled", h.svc.Cancel)
}

// HandleRestore godoc
// @Summary      Restore a cancelled registration
// @Description  Fails when the event is cancelled or full.
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Success      200             {object}  response.RegistrationAction
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      403             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /registrations/{registrationID}/restore [post]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleRestore(ctx *gin.Context) {
	h.transition(ctx, "h.svc.Restore", "RegistrationRestored", h.svc.Restore)
}

func (h *RegistrationHandler) transition(ctx *gin.Context, op, messageKey string, change registrationTransition) {
	registrationID, respErr := parseIDParam(ctx, "registrationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reg, err := change(ctx.Request.Context(), currentUserID(ctx), registrationID)
	if err != nil {
		h.renderErr(ctx, op, registrationID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.RegistrationAction{
		Success:      translate(ctx, h.tr, messageKey),
		Registration: reg,
	})
}

// HandleQRCode godoc
// @Summary      Get the check-in QR code of a registration
// @Tags         registrations
// @Produce      png
// @Param        registrationID  path  int  true  "Registration ID"
// @Success      200             {file}    binary
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      403             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /registrations/{registrationID}/qrcode [get]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleQRCode(ctx *gin.Context) {
	registrationID, respErr := parseIDParam(ctx, "registrationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	png, err := h.svc.QRCode(ctx.Request.Context(), currentUserID(ctx), registrationID)
	if err != nil {
		h.renderErr(ctx, "h.svc.QRCode", registrationID, err)
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

func (h *RegistrationHandler) renderErr(ctx *gin.Context, op string, registrationID uint, err error) {
	if renderRuleErr(ctx, err) {
		return
	}

	if errors.Is(err, service.ErrRegistrationNotFound) {
		response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
		return
	}

	err = fmt.Errorf("v1.RegistrationHandler -> %s -> %w", op, err)
	response.RenderErr(ctx, response.ErrInternalServerError(err))
}
