package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/RDP08/agenda.capas/handlers"
)

// ctxlog is a [context.Context] key and acts as a virtual package for operations related to it.
type ctxlog struct{}

// from returns the request logger stored in ctx, or fallback.
func (key ctxlog) from(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(key).(*slog.Logger); ok {
		return logger
	}
	return fallback
}

// loggerMiddleware returns a middleware that sets a [slog.Logger] in
// the [context.Context] and logs the request after it has terminated.
// Requests without an X-Request-Id header get a generated one, echoed
// in the response.
func (key ctxlog) loggerMiddleware(parent *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		requestID := ctx.Header("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.SetHeader("X-Request-Id", requestID)

		op := ctx.Operation()
		logger := parent.With("x-request-id", requestID)

		start := time.Now()
		next(huma.WithValue(ctx, key, logger.WithGroup("op").With("id", op.OperationID)))

		logger.LogAttrs(context.Background(), slog.LevelInfo,
			joinSpace(op.Method, op.Path, ctx.Version().Proto),
			slog.String("from", ctx.RemoteAddr()),
			slog.String("ua", ctx.Header("User-Agent")),
			slog.Int("status", ctx.Status()),
			slog.Duration("dur", time.Since(start)),
		)
	}
}

// recoverMiddleware returns a middleware that recovers and logs the value from panic,
// then answers with a generic [http.StatusInternalServerError] error.
func (key ctxlog) recoverMiddleware(api huma.API, fallback *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			key.from(ctx.Context(), fallback).LogAttrs(context.Background(), slog.LevelError,
				"panic occurred", slog.Any("recovered", v))
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "panic occurred")
		}()
		next(ctx)
	}
}

// errorHandler returns a function that gets the [slog.Logger] from [context.Context] and logs the error.
// Client errors are logged as warnings, everything else as errors.
func (key ctxlog) errorHandler(fallback *slog.Logger) func(context.Context, error) {
	return func(ctx context.Context, err error) {
		level := slog.LevelError
		attrs := []slog.Attr{slog.Any("err", err)}

		var statusErr huma.StatusError
		if errors.As(err, &statusErr) {
			if status := statusErr.GetStatus(); status < http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			attrs = append(attrs, slog.Int("status", statusErr.GetStatus()))
			var model *handlers.ErrorModel
			if errors.As(err, &model) && len(model.Errors) > 0 {
				attrs = append(attrs, slog.Any("errors", model.Errors))
			}
		}

		key.from(ctx, fallback).LogAttrs(context.Background(), level, "error occurred", attrs...)
	}
}
