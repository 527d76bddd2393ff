package routes

import (
	"log"
	"os"
	"strconv"

	_ "project_billing/docs" // This will be auto-generated
	"project_billing/internal/adapter/http/handlers"
	repository2 "project_billing/internal/adapter/persistence/repository"
	"project_billing/internal/config"
	"project_billing/internal/infrastructure/audit"
	"project_billing/internal/infrastructure/database"
	"project_billing/internal/infrastructure/payments"
	"project_billing/internal/infrastructure/staff"
	"project_billing/internal/usecase"
	"project_billing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	cfg := config.Load()
	auditLog := audit.New(cfg.Debug)
	ddb := database.ConnectDynamoDB()

	proposalRepo := repository2.NewProposalDynamoRepository(ddb)
	requestRepo := repository2.NewRequestDynamoRepository(ddb)
	projectRepo := repository2.NewProjectDynamoRepository(ddb)
	orderRepo := repository2.NewOrderDynamoRepository(ddb)
	subscriptionRepo := repository2.NewSubscriptionDynamoRepository(ddb)
	productCatalog := repository2.NewProductDynamoCatalog(ddb)
	customerRepo := repository2.NewCustomerDynamoRepository(ddb)

	capabilities := staff.NewEnvDirectory(cfg.StaffPublishers)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	validator := usecase.NewLineItemValidator(productCatalog, auditLog)
	orderBuilder := usecase.NewOrderBuilder(orderRepo, auditLog)
	subscriptionBuilder := usecase.NewSubscriptionBuilder(subscriptionRepo, paymentGateway, auditLog)

	requestUseCase := usecase.NewRequestUseCase(requestRepo, proposalRepo, capabilities)
	proposalUseCase := usecase.NewProposalUseCase(proposalRepo, capabilities)
	conversionUseCase := usecase.NewConversionUseCase(
		proposalRepo,
		projectRepo,
		customerRepo,
		capabilities,
		paymentGateway,
		validator,
		orderBuilder,
		subscriptionBuilder,
		config.ProposalProjectMetaKeys,
		auditLog,
	)
	projectUseCase := usecase.NewProjectUseCase(projectRepo, orderRepo, subscriptionRepo, auditLog)

	requestHandler := handlers.NewRequestHandler(requestUseCase)
	proposalHandler := handlers.NewProposalHandler(proposalUseCase, conversionUseCase)
	projectHandler := handlers.NewProjectHandler(projectUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addConversionRoutes(v1, requestHandler, proposalHandler, projectHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
