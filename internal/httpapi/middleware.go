package httpapi

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestContext propagates X-Request-ID or generates one, and stores the
// request context on the request's context.Context.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := auth.NewRequestContext(c.GetHeader(auth.RequestIDHeader))
		c.Request = c.Request.WithContext(auth.WithRequestContext(c.Request.Context(), rc))
		c.Header(auth.RequestIDHeader, rc.RequestID)
		c.Next()
	}
}

func AccessLog(log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", auth.GetRequestID(c.Request.Context())),
		)
	}
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+auth.RequestIDHeader)
		c.Header("Access-Control-Expose-Headers", auth.RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Recovery answers a panic with the generic INTERNAL envelope.
func Recovery(log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in http handler",
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, Response{Message: apperror.MessageInternal})
			}
		}()
		c.Next()
	}
}

// Errors writes the envelope for the last error a handler recorded with Fail.
func Errors(tracker *apperror.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		appErr := tracker.Track(c.Request.Context(), c.Errors.Last().Err,
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(HTTPStatus(appErr.Kind), Response{Message: appErr.Message})
	}
}
