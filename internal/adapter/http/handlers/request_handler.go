package handlers

import (
	"errors"
	"net/http"
	"strings"

	request "project_billing/internal/adapter/http/dto/request"
	response "project_billing/internal/adapter/http/dto/response"
	"project_billing/internal/usecase"
	"project_billing/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequestPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST_INPUT", "Invalid project request payload", http.StatusBadRequest)
)

// actorHeader identifies the staff member performing privileged transitions.
const actorHeader = "X-Actor-ID"

// RequestHandler handles HTTP requests for customer project requests.

type RequestHandler struct {
	usecase usecase.IRequestUseCase
}

func NewRequestHandler(uc usecase.IRequestUseCase) *RequestHandler {
	return &RequestHandler{usecase: uc}
}

// SubmitRequest opens a new customer project request.
func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	var payload request.SubmitProjectRequestRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequestPayload.HTTPStatus, errInvalidRequestPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.Submit(c.Request.Context(), usecase.SubmitRequestCommand{
		CustomerID: payload.ResolveCustomerID(),
		Title:      payload.ResolveTitle(),
		Content:    payload.Content,
		Budget:     payload.Budget,
		StartDate:  payload.StartDate,
	})
	if err != nil {
		appErr := mapRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromProjectRequest(created))
}

func (h *RequestHandler) GetRequest(c *gin.Context) {
	r, err := h.usecase.GetByID(c.Request.Context(), c.Param("request_id"))
	if err != nil {
		appErr := mapRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProjectRequest(r))
}

// ConvertRequest turns a pending request into a draft proposal. The acting
// staff member comes from the X-Actor-ID header.
func (h *RequestHandler) ConvertRequest(c *gin.Context) {
	actorID := resolveActorID(c)

	proposal, err := h.usecase.ConvertToProposal(c.Request.Context(), c.Param("request_id"), actorID)
	if err != nil {
		appErr := mapRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromProposal(proposal))
}

func resolveActorID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(actorHeader))
}

func mapRequestError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequestInput):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST_INPUT", "Invalid project request payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPermissionDenied):
		return pkg.NewDomainErrorSimple("PERMISSION_DENIED", "Actor lacks the publish_proposals capability", http.StatusForbidden)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return pkg.NewDomainErrorSimple("REQUEST_NOT_FOUND", "Project request not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRequestNotPending):
		return pkg.NewDomainErrorSimple("REQUEST_NOT_PENDING", "Project request was already converted or rejected", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
