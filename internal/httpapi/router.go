package httpapi

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Routes is implemented by each domain's HTTP handler.
type Routes interface {
	RegisterRoutes(r gin.IRouter)
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRouter builds the engine with the standard middleware chain, /health and every domain's routes.
func NewRouter(tracker *apperror.Tracker, log logger.ZapLogger, routes ...Routes) *gin.Engine {
	r := gin.New()
	r.Use(
		Recovery(log),
		RequestContext(),
		AccessLog(log),
		CORS(),
		Errors(tracker),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Timestamp: time.Now().UTC()})
	})

	for _, rt := range routes {
		rt.RegisterRoutes(r)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Response{Message: "Route not found"})
	})

	return r
}
