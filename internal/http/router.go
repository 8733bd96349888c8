package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sudha-chandrann/settleupbackend/internal/service"
)

// NewRouter wires middlewares and routes.
func NewRouter(
	logger *zap.Logger,
	authSvc *service.AuthService,
	tokens *service.TokenService,
	authH *AuthHandler,
	groupH *GroupHandler,
	expenseH *ExpenseHandler,
	txH *TransactionHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	api := r.Group("/api/v1")

	users := api.Group("/users")
	users.GET("/", func(c *gin.Context) {
		respondSuccess(c, http.StatusOK, "hello", nil)
	})
	users.POST("/auth/register", authH.Register)
	users.POST("/auth/login", authH.Login)
	users.POST("/auth/verification-code", authH.RequestVerificationCode)
	users.POST("/auth/verify-email", authH.VerifyEmail)

	protected := api.Group("")
	protected.Use(AuthMiddleware(authSvc, tokens))
	protected.GET("/users/me", authH.Me)
	protected.POST("/users/auth/logout", authH.Logout)

	protected.POST("/groups", groupH.CreateGroup)
	protected.GET("/groups", groupH.ListGroups)
	protected.GET("/groups/:id", groupH.GetGroup)
	protected.GET("/groups/:id/expenses", expenseH.ListGroupExpenses)

	protected.POST("/expenses", expenseH.CreateExpense)
	protected.GET("/expenses", expenseH.ListExpenses)

	protected.POST("/transactions", txH.CreateTransaction)
	protected.GET("/transactions", txH.ListTransactions)
	protected.PATCH("/transactions/:id/settle", txH.SettleTransaction)

	return r
}

// zapLoggerMiddleware logs one line per request.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware forces Content-Type: application/json on responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
