package handlers

import (
	"errors"
	"log"
	"net/http"

	request "project_billing/internal/adapter/http/dto/request"
	response "project_billing/internal/adapter/http/dto/response"
	"project_billing/internal/usecase"
	"project_billing/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidProposalPayload = pkg.NewDomainErrorSimple("INVALID_PROPOSAL_INPUT", "Invalid proposal payload", http.StatusBadRequest)
)

// ProposalHandler handles HTTP requests for the proposal lifecycle and its
// conversion into a project.

type ProposalHandler struct {
	proposals   usecase.IProposalUseCase
	conversions usecase.IConversionUseCase
}

func NewProposalHandler(proposals usecase.IProposalUseCase, conversions usecase.IConversionUseCase) *ProposalHandler {
	return &ProposalHandler{proposals: proposals, conversions: conversions}
}

func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	var payload request.CreateProposalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}

	created, err := h.proposals.Create(c.Request.Context(), usecase.CreateProposalCommand{
		Title:           payload.Title,
		Content:         payload.Content,
		AuthorID:        payload.AuthorID,
		CustomerID:      payload.CustomerID,
		RequestID:       payload.RequestID,
		CostType:        payload.ResolveCostType(),
		LineItems:       payload.ResolveLineItems(),
		Meta:            payload.Meta,
		BillingAddress:  payload.BillingAddress.ToEntity(),
		ShippingAddress: payload.ShippingAddress.ToEntity(),
	})
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromProposal(created))
}

func (h *ProposalHandler) GetProposal(c *gin.Context) {
	p, err := h.proposals.GetByID(c.Request.Context(), c.Param("proposal_id"))
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProposal(p))
}

// UpdateLineItems replaces the billing payload and marks the proposal as an
// invoice-line-items proposal.
func (h *ProposalHandler) UpdateLineItems(c *gin.Context) {
	var payload request.UpdateLineItemsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}

	p, err := h.proposals.UpdateLineItems(c.Request.Context(), c.Param("proposal_id"), payload.LineItems.ToEntity())
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProposal(p))
}

func (h *ProposalHandler) PublishProposal(c *gin.Context) {
	p, err := h.proposals.Publish(c.Request.Context(), c.Param("proposal_id"), resolveActorID(c))
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProposal(p))
}

func (h *ProposalHandler) ApproveProposal(c *gin.Context) {
	p, err := h.proposals.Approve(c.Request.Context(), c.Param("proposal_id"))
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProposal(p))
}

// ConvertProposal runs the proposal to project conversion. The proposal is
// consumed on success; billing problems surface in the response body, not as
// HTTP errors.
func (h *ProposalHandler) ConvertProposal(c *gin.Context) {
	proposalID := c.Param("proposal_id")
	log.Printf("[conversion][handler] convert start proposal_id=%s", proposalID)

	result, err := h.conversions.ConvertToProject(c.Request.Context(), proposalID, resolveActorID(c))
	if err != nil {
		log.Printf("[conversion][handler] convert failed proposal_id=%s err=%v", proposalID, err)
		appErr := mapConversionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[conversion][handler] convert success proposal_id=%s project_id=%s order_id=%s subscription_id=%s",
		proposalID, result.Project.ID, result.OrderID, result.SubscriptionID)

	c.JSON(http.StatusCreated, response.FromConversionResult(result))
}

func mapProposalError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProposalInput), errors.Is(err, usecase.ErrInvalidProposalID):
		return pkg.NewDomainErrorSimple("INVALID_PROPOSAL_INPUT", "Invalid proposal payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPermissionDenied):
		return pkg.NewDomainErrorSimple("PERMISSION_DENIED", "Actor lacks the publish_proposals capability", http.StatusForbidden)
	case errors.Is(err, usecase.ErrProposalNotFound):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_FOUND", "Proposal not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProposalLocked), errors.Is(err, usecase.ErrProposalNotApproved):
		return pkg.NewDomainErrorSimple("PROPOSAL_STATUS_CONFLICT", "Proposal status does not allow this transition", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapConversionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProposalID):
		return pkg.NewDomainErrorSimple("INVALID_PROPOSAL_INPUT", "Invalid proposal id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPermissionDenied):
		return pkg.NewDomainErrorSimple("PERMISSION_DENIED", "Actor lacks the publish_proposals capability", http.StatusForbidden)
	case errors.Is(err, usecase.ErrProposalNotFound):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_FOUND", "Proposal not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCustomerNotFound):
		return pkg.NewDomainErrorSimple("CUSTOMER_NOT_FOUND", "Customer not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProposalNotApproved):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_APPROVED", "Proposal is not published or approved", http.StatusConflict)
	case errors.Is(err, usecase.ErrConversionInProgress):
		return pkg.NewDomainErrorSimple("CONVERSION_IN_PROGRESS", "Proposal conversion already in progress or done", http.StatusConflict)
	case errors.Is(err, usecase.ErrEmptyProposal):
		return pkg.NewDomainErrorSimple("EMPTY_PROPOSAL", "Proposal has no billable line items", http.StatusUnprocessableEntity)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
