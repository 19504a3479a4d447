package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"dawam/internal/api"
	"dawam/internal/requestctx"
)

func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered",
					"err", rec,
					"path", r.URL.Path,
					"requestId", requestctx.GetRequestID(r.Context()),
					"stack", string(debug.Stack()),
				)
				api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestctx.GetRequestID(r.Context()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
