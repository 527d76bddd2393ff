package routes

import (
	"project_billing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathRequests      = "/requests"
	PathProposals     = "/proposals"
	PathProjects      = "/projects"
	PathOrders        = "/orders"
	PathSubscriptions = "/subscriptions"
)

func addConversionRoutes(rg *gin.RouterGroup, requestHandler *handlers.RequestHandler, proposalHandler *handlers.ProposalHandler, projectHandler *handlers.ProjectHandler) {
	requests := rg.Group(PathRequests)
	{
		requests.POST("", requestHandler.SubmitRequest)
		requests.GET("/:request_id", requestHandler.GetRequest)
		requests.POST("/:request_id/convert", requestHandler.ConvertRequest)
	}

	proposals := rg.Group(PathProposals)
	{
		proposals.POST("", proposalHandler.CreateProposal)
		proposals.GET("/:proposal_id", proposalHandler.GetProposal)
		proposals.PUT("/:proposal_id/line-items", proposalHandler.UpdateLineItems)
		proposals.PATCH("/:proposal_id/publish", proposalHandler.PublishProposal)
		proposals.PATCH("/:proposal_id/approve", proposalHandler.ApproveProposal)
		proposals.POST("/:proposal_id/convert", proposalHandler.ConvertProposal)
	}

	projects := rg.Group(PathProjects)
	{
		projects.GET("/:project_id", projectHandler.GetProject)
	}

	orders := rg.Group(PathOrders)
	{
		orders.GET("/:order_id", projectHandler.GetOrder)
	}

	subscriptions := rg.Group(PathSubscriptions)
	{
		subscriptions.GET("/:subscription_id", projectHandler.GetSubscription)
	}
}
