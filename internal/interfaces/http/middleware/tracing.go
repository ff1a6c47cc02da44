package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength is the maximum length for request IDs to prevent DoS via large headers.
const MaxRequestIDLength = 128

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	// ServiceName is the name of the service for trace identification.
	ServiceName string
	// Enabled controls whether tracing is active.
	Enabled bool
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "trendlens-backend",
		Enabled:     true,
	}
}

// Tracing returns OpenTelemetry tracing middleware with default configuration.
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig returns OpenTelemetry tracing middleware with custom configuration.
// The span name follows the format: "HTTP METHOD route_pattern" (e.g., "GET /api/v1/products/top").
// Pair with TracingAttributeInjector and SpanErrorMarker for request_id
// attributes and 4xx/5xx error status.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return otelgin.Middleware(cfg.ServiceName)
}

// TracingAttributeInjector returns a middleware that injects custom attributes
// into the active span. It must be placed AFTER the Tracing middleware in the
// chain so the span is still recording.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			enrichSpanWithAttributes(c, span)
		}
		c.Next()
	}
}

// enrichSpanWithAttributes adds custom attributes to the span from the request context.
func enrichSpanWithAttributes(c *gin.Context, span trace.Span) {
	if requestID := getRequestID(c); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}

	// Route-level platform parameter used by the social endpoints
	if platform := c.Param("platform"); platform != "" {
		span.SetAttributes(attribute.String("platform", platform))
	}
}

// getRequestID retrieves the request ID from the gin context or header.
// Header values are truncated to prevent abuse.
func getRequestID(c *gin.Context) string {
	// First check gin context (set by RequestID middleware)
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok && id != "" {
			return id
		}
	}

	// Fallback to header with length validation
	headerID := c.GetHeader("X-Request-ID")
	if len(headerID) > MaxRequestIDLength {
		return headerID[:MaxRequestIDLength]
	}
	return headerID
}

// SpanErrorMarker returns a middleware that marks spans with error status
// for HTTP error responses (4xx/5xx).
// This should be placed AFTER the Tracing middleware in the middleware chain.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// After the request is processed, check the response status
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		statusCode := c.Writer.Status()

		// Mark error status for 4xx and 5xx responses
		if statusCode >= http.StatusBadRequest {
			var errorMessage string
			switch {
			case statusCode >= http.StatusInternalServerError:
				errorMessage = "Internal Server Error"
			case statusCode == http.StatusNotFound:
				errorMessage = "Not Found"
			case statusCode == http.StatusConflict:
				errorMessage = "Conflict"
			default:
				errorMessage = "Client Error"
			}

			span.SetStatus(codes.Error, errorMessage)
			span.SetAttributes(attribute.Int("http.status_code", statusCode))
		}
	}
}
