// Package respond renders the error and data envelopes shared by handlers
// and middleware.
package respond

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

type errorBody struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	MessageAr string         `json:"message_ar,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// Data writes the success envelope.
func Data(c *gin.Context, status int, payload any) {
	c.JSON(status, gin.H{"data": payload})
}

// Error writes the error envelope. Typed AppErrors pass through with their
// own status and bilingual message; anything else is logged server-side and
// coerced to an opaque 500 so internals never leak to the client.
func Error(c *gin.Context, logger *slog.Logger, err error) {
	app, typed := domain.AsAppError(err)
	if !typed {
		logger.Error("unhandled error",
			slog.String("path", c.FullPath()),
			slog.String("method", c.Request.Method),
			slog.String("error", err.Error()))
	}
	c.JSON(app.Kind.Status(), errorEnvelope{Error: errorBody{
		Code:      app.Code,
		Message:   app.Message,
		MessageAr: app.MessageAr,
		Details:   app.Details,
	}})
}

// AbortError is Error plus gin abort, for middleware.
func AbortError(c *gin.Context, logger *slog.Logger, err error) {
	Error(c, logger, err)
	c.Abort()
}

// BindError converts gin binding failures into the InvalidInput shape.
func BindError(c *gin.Context, logger *slog.Logger, err error) {
	Error(c, logger, &domain.AppError{
		Kind:      domain.KindInvalidInput,
		Code:      "INVALID_REQUEST",
		Message:   err.Error(),
		MessageAr: "الطلب غير صالح",
	})
}

// NotFoundHandler is mounted as the router fallback.
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorEnvelope{Error: errorBody{
		Code:      "ROUTE_NOT_FOUND",
		Message:   "route not found",
		MessageAr: "المسار غير موجود",
	}})
}
