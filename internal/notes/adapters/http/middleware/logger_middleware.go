// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"technotes/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// RequestContextKey - ключ Locals, под которым обработчикам доступен
// контекст запроса с идентификатором.
const RequestContextKey = "requestContext"

// NewLoggerMiddleware создает промежуточное ПО для логирования HTTP запросов.
// Каждому запросу присваивается идентификатор: из заголовка X-Request-ID,
// если клиент его прислал, иначе сгенерированный. Идентификатор кладётся
// в контекст, попадает во все записи логов обработчиков и возвращается
// клиенту в ответном заголовке.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()
		path := ctx.Path()
		method := ctx.Method()

		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		ctx.Locals(RequestContextKey, requestCtx)

		requestID, _ := logger.GetRequestID(requestCtx)
		ctx.Set(HeaderRequestID, requestID)

		log := logger.Log(requestCtx).With(
			zap.String("path", path),
			zap.String("method", method),
			zap.String("ip", ctx.IP()),
		)

		log.Info(requestCtx, "Request started")

		err := ctx.Next()

		latency := time.Since(start)
		status := ctx.Response().StatusCode()

		logFields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}

		if err != nil {
			log.Error(requestCtx, "Request failed", append(logFields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Info(requestCtx, "Request completed", logFields...)
		return nil
	}
}
