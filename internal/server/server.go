// Package server wires services, handlers and middleware into the Gin router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"butce/internal/config"
	apperrors "butce/internal/errors"
	_ "butce/internal/docs" // swagger docs
	"butce/internal/handlers"
	"butce/internal/logger"
	"butce/internal/metrics"
	"butce/internal/middleware"
	"butce/internal/services"
	"butce/internal/session"
)

// Services bundles the business layer.
type Services struct {
	Users        services.UserServicer
	Members      services.MemberServicer
	Transactions services.TransactionServicer
	Reports      services.ReportServicer
	Seeder       services.SeedServicer
}

// NewServices builds every service on db. users is passed in so callers can
// choose the bcrypt cost.
func NewServices(db *gorm.DB, users services.UserServicer) *Services {
	members := services.NewMemberService(db)
	transactions := services.NewTransactionService(db, members, services.NewAssociationService(db))
	return &Services{
		Users:        users,
		Members:      members,
		Transactions: transactions,
		Reports:      services.NewReportService(transactions),
		Seeder:       services.NewSeedService(users, members),
	}
}

// Seed runs the startup seed from configuration.
func (s *Services) Seed(cfg *config.Config) error {
	return s.Seeder.Seed(services.SeedConfig{
		Username:    cfg.SeedUsername,
		Password:    cfg.SeedPassword,
		MemberNames: cfg.SeedMembers,
	})
}

// NewRouter builds the HTTP surface. ping reports database health.
func NewRouter(cfg *config.Config, svc *Services, sessions *session.Manager, m *metrics.Metrics, ping func() error) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users, sessions)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Reports, svc.Members, m)
	reportHandler := handlers.NewReportHandler(svc.Reports)
	memberHandler := handlers.NewMemberHandler(svc.Members, svc.Transactions)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics(m))
	router.Use(middleware.ErrorHandler())

	// Public routes
	router.GET("/login", authHandler.LoginStatus)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	router.GET("/api/health", func(c *gin.Context) {
		if err := ping(); err != nil {
			logger.Get().Warnw("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", middleware.MetricsAuth(cfg.MetricsAPIKey), gin.WrapH(m.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Everything else needs a session
	protected := router.Group("/")
	protected.Use(middleware.RequireSession(sessions))

	protected.GET("/", transactionHandler.Index)
	protected.POST("/add", transactionHandler.CreateTransaction)
	protected.GET("/edit/:id", transactionHandler.GetTransaction)
	protected.POST("/edit/:id", transactionHandler.UpdateTransaction)
	protected.POST("/delete/:id", transactionHandler.DeleteTransaction)
	protected.GET("/delete/:id", transactionHandler.DeleteTransaction)

	protected.GET("/report", reportHandler.MemberIncomeReport)

	protected.GET("/members", memberHandler.ListMembers)
	protected.GET("/members/:id/transactions", memberHandler.MemberTransactions)

	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/password", authHandler.ChangePassword)

	router.NoRoute(middleware.RequireSession(sessions), func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": apperrors.ErrNotFound.Code, "message": apperrors.ErrNotFound.Message}})
	})

	return router
}
