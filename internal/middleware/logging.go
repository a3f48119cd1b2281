// Package middleware holds the Connect interceptors shared by every service.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// sessionScoped is implemented by requests that target a live session.
type sessionScoped interface {
	GetSessionID() string
}

// sessionID returns the session a request targets, or "" if it has none.
func sessionID(req connect.AnyRequest) string {
	if s, ok := req.Any().(sessionScoped); ok {
		return s.GetSessionID()
	}
	return ""
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, session ID, duration, and any error codes/messages.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			session := sessionID(req)

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					slog.Warn("RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"session_id", session,
						"duration_ms", duration,
					)
				} else {
					slog.Error("RPC error",
						"procedure", procedure,
						"error", err,
						"session_id", session,
						"duration_ms", duration,
					)
				}
			} else {
				slog.Info("RPC ok",
					"procedure", procedure,
					"session_id", session,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}
