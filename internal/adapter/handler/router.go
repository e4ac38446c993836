package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services bundles the use cases the HTTP surface exposes.
type Services struct {
	Auth      AuthManager
	Sales     SaleRecorder
	Products  ProductManager
	Debts     DebtManager
	Dashboard StatsProvider
}

// NewRouter builds the gin engine with CORS, the public auth endpoints, and
// the session-guarded API.
func NewRouter(svc Services, corsOrigin string, cookieMaxAge int, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "dukapro"})
	})

	auth := newAuthHandler(svc.Auth, cookieMaxAge, logger)
	sales := newSaleHandler(svc.Sales, logger)
	products := newProductHandler(svc.Products, logger)
	debts := newDebtHandler(svc.Debts, logger)
	dashboard := newDashboardHandler(svc.Dashboard)

	api := r.Group("/api")

	api.POST("/auth/login", auth.handleLogin)
	api.POST("/auth/register", auth.handleRegister)
	api.GET("/auth/session", auth.handleSession)
	api.DELETE("/auth/logout", auth.handleLogout)

	guarded := api.Group("", RequireAuth(svc.Auth))

	guarded.GET("/items", products.handleList)
	guarded.POST("/items", products.handleCreate)
	guarded.PUT("/items/:id", products.handleUpdate)
	guarded.DELETE("/items/:id", products.handleDelete)

	guarded.GET("/sales", sales.handleListSales)
	guarded.POST("/sales", sales.handleCreateSale)

	guarded.GET("/debts", debts.handleList)
	guarded.POST("/debts", debts.handleCreate)
	guarded.PUT("/debts/:id", debts.handleUpdate)
	guarded.DELETE("/debts/:id", debts.handleDelete)

	guarded.GET("/dashboard", dashboard.handleStats)

	return r
}
