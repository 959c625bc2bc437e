package router

import (
	"net/http"

	"github.com/Rishu9835/DOORWISE/internal/pkg/config"
	"github.com/samber/lo"
)

// middlewareMaintenance answers 503 for the route patterns listed in
// app.maintenance.endpoints.
func middlewareMaintenance(cfg config.Config) Middleware {
	blocked := map[string]struct{}{}
	if cfg != nil {
		blocked = lo.Keyify(cfg.GetArray("app.maintenance.endpoints"))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := blocked[matchedRoutePath(r)]; ok {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
