package handlers

import (
	"errors"
	"net/http"

	response "project_billing/internal/adapter/http/dto/response"
	"project_billing/internal/usecase"
	"project_billing/pkg"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles read access to projects and their commerce records.

type ProjectHandler struct {
	usecase usecase.IProjectUseCase
}

func NewProjectHandler(uc usecase.IProjectUseCase) *ProjectHandler {
	return &ProjectHandler{usecase: uc}
}

// GetProject returns the project with its order and subscription resolved.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	view, err := h.usecase.GetByID(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		appErr := mapProjectError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProjectView(view))
}

func (h *ProjectHandler) GetOrder(c *gin.Context) {
	o, err := h.usecase.GetOrder(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		appErr := mapProjectError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(o))
}

func (h *ProjectHandler) GetSubscription(c *gin.Context) {
	s, err := h.usecase.GetSubscription(c.Request.Context(), c.Param("subscription_id"))
	if err != nil {
		appErr := mapProjectError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromSubscription(s))
}

func mapProjectError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProjectID):
		return pkg.NewDomainErrorSimple("INVALID_PROJECT_ID", "Invalid project id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return pkg.NewDomainErrorSimple("PROJECT_NOT_FOUND", "Project not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrSubscriptionNotFound):
		return pkg.NewDomainErrorSimple("SUBSCRIPTION_NOT_FOUND", "Subscription not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
