package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"time"

	"payhook_backend/internal/logger"
	"payhook_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		log := logger.FromContext(c.Request.Context())
		fields := []any{
			slog.String("client_ip", c.ClientIP()),
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Duration("duration", duration),
		}
		if c.Writer.Status() >= 500 {
			log.Error("HTTP Server Error", fields...)
		} else if c.Writer.Status() >= 400 {
			log.Warn("HTTP Client Error", fields...)
		} else {
			log.Info("HTTP Request", fields...)
		}
	}
}

// RawBodyMiddleware captures the request body bytes exactly as received,
// before any JSON binding, and restores the body so handlers can still bind.
// Signature verification depends on these bytes: a re-serialized form of the
// parsed payload is not equivalent.
func RawBodyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			rawBody, err := io.ReadAll(c.Request.Body)
			if err != nil {
				logger.CtxWithError(c.Request.Context(), "Failed to read request body", err,
					"path", c.Request.URL.Path)
				c.AbortWithStatus(400)
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(rawBody))
			c.Set(contextkeys.RawBodyContextKey.String(), rawBody)
		}
		c.Next()
	}
}

// RawBody returns the transport-captured body bytes for the current request.
func RawBody(c *gin.Context) ([]byte, bool) {
	val, ok := c.Get(contextkeys.RawBodyContextKey.String())
	if !ok {
		return nil, false
	}
	rawBody, ok := val.([]byte)
	return rawBody, ok
}
