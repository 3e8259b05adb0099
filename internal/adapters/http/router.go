package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"

	"github.com/rafaelleal24/rocketshoes/internal/adapters/config"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/http/controllers"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/http/middleware"
)

type Router struct {
	healthController *controllers.HealthController
	cartController   *controllers.CartController
	rateLimiter      middleware.RateLimiter
	rateLimit        config.RateLimitConfig
}

// NewRouter wires the API routes. rateLimiter may be nil when rate limiting
// is disabled.
func NewRouter(
	healthController *controllers.HealthController,
	cartController *controllers.CartController,
	rateLimiter middleware.RateLimiter,
	rateLimit config.RateLimitConfig,
) *Router {
	return &Router{
		healthController: healthController,
		cartController:   cartController,
		rateLimiter:      rateLimiter,
		rateLimit:        rateLimit,
	}
}

func (r *Router) mutationLimit() gin.HandlerFunc {
	if r.rateLimiter == nil || !r.rateLimit.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(r.rateLimiter, r.rateLimit.Limit, r.rateLimit.Window)
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	limit := r.mutationLimit()

	router.GET("/swagger/doc.json", serveAPIDoc)

	apiGroup := router.Group("/api")
	v1Group := apiGroup.Group("/v1")
	{
		v1Group.Use(middleware.LogRequest())
		v1Group.GET("/health", r.healthController.Health)

		v1Group.GET("/cart", r.cartController.GetCart)
		v1Group.POST("/cart/items", limit, r.cartController.AddProduct)
		v1Group.DELETE("/cart/items/:id", limit, r.cartController.RemoveProduct)
		v1Group.PATCH("/cart/items/:id", limit, r.cartController.UpdateProductAmount)
	}
}

// serveAPIDoc returns the OpenAPI document registered by the docs package.
func serveAPIDoc(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "api documentation not registered"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}

func (r *Router) Handler() http.Handler {
	engine := gin.New()
	engine.Use(gin.Recovery())
	r.SetupRoutes(engine)
	return engine
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
