package http

import (
	"net/http"

	"github.com/cwrk-planet/aichat/internal/app/api"
	"github.com/cwrk-planet/aichat/pkg/errs"
	"github.com/cwrk-planet/aichat/pkg/httputil"
)

type StatusHandlers struct {
	API api.Client
}

// GET /api/status
func (h *StatusHandlers) Status(w http.ResponseWriter, r *http.Request) {
	if !h.API.Health(r.Context()) {
		httputil.Error(r.Context(), w, errs.ToHTTP(api.ErrConnection), "upstream unavailable",
			map[string]any{"upstream": h.API.BaseURL()})
		return
	}

	httputil.OK(r.Context(), w, map[string]any{
		"status":   "ok",
		"upstream": h.API.BaseURL(),
	})
}
