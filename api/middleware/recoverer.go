package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/poscatalog/catalog-backend/api/responses"
	pkgerrors "github.com/poscatalog/catalog-backend/pkg/errors"
	"github.com/poscatalog/catalog-backend/pkg/logger"
)

func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := fmt.Errorf("panic: %v", rec)
					ctx := r.Context()
					if logg != nil {
						fields := map[string]any{
							"panic":  rec,
							"method": r.Method,
							"path":   r.URL.Path,
						}
						// the route pattern keeps log grouping stable across path params
						if rctx := chi.RouteContext(ctx); rctx != nil {
							if pattern := rctx.RoutePattern(); pattern != "" {
								fields["route"] = pattern
							}
						}
						ctx = logg.WithFields(ctx, fields)
						logg.Error(ctx, "panic.recovered", err)
					}
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
