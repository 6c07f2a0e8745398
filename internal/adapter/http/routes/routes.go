package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "quote_rollup/docs"
	"quote_rollup/internal/adapter/http/handlers"
	"quote_rollup/internal/app"
	"quote_rollup/internal/observability"
	"quote_rollup/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const shutdownTimeout = 10 * time.Second

// NewRouter builds the gin engine over the use cases held by c.
func NewRouter(c *app.Container) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, c.Log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	quoteHandler := handlers.NewQuoteHandler(c.Quotes)
	opportunityHandler := handlers.NewOpportunityHandler(c.Opportunities)
	eventHandler := handlers.NewChangeEventHandler(c.Rollup)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRoutes(v1, quoteHandler)
	addOpportunityRoutes(v1, opportunityHandler)
	addEventRoutes(v1, eventHandler)

	return router
}

// Run serves the API on c.Config.Port until ctx is cancelled.
func Run(ctx context.Context, c *app.Container) error {
	srv := &http.Server{
		Addr:              ":" + c.Config.Port,
		Handler:           NewRouter(c),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Log.Info("http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func setMiddlewares(router *gin.Engine, log *logger.Logger) {
	if observability.Enabled() {
		router.Use(otelgin.Middleware(observability.ServiceName()))
	}
	router.Use(requestLogger(log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("recovered from panic", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
