package handlers

import (
	"tillpoint/internal/errorcode"
	"tillpoint/internal/logger"
	"tillpoint/internal/printqueue"
	"tillpoint/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services, the error-code registry and
// the print queue.
type Handler struct {
	services *service.Service
	errors   *errorcode.Manager
	queue    *printqueue.Queue
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, errors *errorcode.Manager, queue *printqueue.Queue, log *logger.Logger) *Handler {
	return &Handler{services: services, errors: errors, queue: queue, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Public endpoints: tenant bootstrap and auth
	router.POST("/businesses", h.createBusiness)
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected, error-enveloped)
	h.registerAPIRoutes(router)

	// Live print-queue stats over WebSocket, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.errorEnvelope, h.claimsMiddleware, h.tenantMiddleware)
	{
		h.registerBusinessRoutes(api)
		h.registerCatalogRoutes(api)
		h.registerCustomerRoutes(api)
		h.registerSalesRoutes(api)
		h.registerInvoiceRoutes(api)
		h.registerPrintRoutes(api)
		h.registerReportRoutes(api)
		h.registerAdminRoutes(api)
	}
}

func (h *Handler) registerBusinessRoutes(api *gin.RouterGroup) {
	biz := api.Group("/business")
	{
		biz.GET("", h.getBusiness)
		biz.PUT("", h.updateBusiness)
	}
}

func (h *Handler) registerCatalogRoutes(api *gin.RouterGroup) {
	products := api.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
		products.PUT("/:id", h.updateProduct)
		products.DELETE("/:id", h.deleteProduct)
	}
	categories := api.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
		categories.DELETE("/:id", h.deleteCategory)
	}
}

func (h *Handler) registerCustomerRoutes(api *gin.RouterGroup) {
	customers := api.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.PUT("/:id", h.updateCustomer)
		customers.DELETE("/:id", h.deleteCustomer)
	}
}

func (h *Handler) registerSalesRoutes(api *gin.RouterGroup) {
	sales := api.Group("/sales")
	{
		sales.POST("", h.recordSale)
		sales.GET("", h.listSales)
		sales.GET("/:id", h.getSale)
		sales.POST("/:id/receipt/print", h.printReceipt)
	}
}

func (h *Handler) registerInvoiceRoutes(api *gin.RouterGroup) {
	invoices := api.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:id", h.getInvoice)
		invoices.POST("/:id/pay", h.payInvoice)
	}
}

func (h *Handler) registerPrintRoutes(api *gin.RouterGroup) {
	jobs := api.Group("/print-jobs")
	{
		jobs.GET("/:id", h.getPrintJob)
		jobs.DELETE("/:id", h.cancelPrintJob)
	}
}

func (h *Handler) registerReportRoutes(api *gin.RouterGroup) {
	reports := api.Group("/reports")
	{
		reports.GET("/sales-summary", h.salesSummary)
	}
}

func (h *Handler) registerAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin", h.adminOnly)
	{
		admin.GET("/errors", h.listErrors)
		admin.GET("/errors/recent", h.recentErrors)
		admin.GET("/errors/:code", h.getErrorDetails)
	}
}
