package http

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cwrk-planet/aichat/internal/app/api"
	"github.com/cwrk-planet/aichat/internal/config"
	"github.com/cwrk-planet/aichat/internal/domain"
	"github.com/cwrk-planet/aichat/internal/session"
	"github.com/cwrk-planet/aichat/pkg/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageNames = []domain.Page{domain.PageHome, domain.PageRegister, domain.PageLogin, domain.PageChat}

type Pages struct {
	api      api.Client
	sessions *session.Store
	ui       config.UI
	now      func() time.Time
	tmpl     map[domain.Page]*template.Template
}

func NewPages(client api.Client, sessions *session.Store, ui config.UI, now func() time.Time) (*Pages, error) {
	if client == nil || sessions == nil {
		return nil, errors.New("pages: api client and session store are required")
	}
	if now == nil {
		now = time.Now
	}

	tmpl := make(map[domain.Page]*template.Template, len(pageNames))
	for _, p := range pageNames {
		t, err := template.New("layout.html").ParseFS(templatesFS, "templates/layout.html", "templates/"+string(p)+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", p, err)
		}
		tmpl[p] = t
	}

	return &Pages{api: client, sessions: sessions, ui: ui, now: now, tmpl: tmpl}, nil
}

// GET / — показывает страницу, выбранную состоянием сессии.
func (h *Pages) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := session.IDFromContext(ctx)

	st, err := h.sessions.TakeView(id)
	if err != nil {
		logger.FromContext(ctx).Warn("session vanished before render", "err", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	view := newView(h.ui, st, h.now())
	if st.Page == domain.PageHome && h.ui.CheckUpstream && !h.api.Health(ctx) {
		view.UpstreamDown = true
		view.UpstreamURL = h.api.BaseURL()
	}

	var buf bytes.Buffer
	if err := h.tmpl[st.Page].Execute(&buf, view); err != nil {
		logger.FromContext(ctx).Error("render page failed", "page", st.Page, "err", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// POST /nav/{page}
func (h *Pages) Navigate(w http.ResponseWriter, r *http.Request) {
	page := domain.ParsePage(chi.URLParam(r, "page"))
	h.update(r, func(st *session.State) { st.Navigate(page) })
	redirectHome(w, r)
}

// POST /logout
func (h *Pages) Logout(w http.ResponseWriter, r *http.Request) {
	h.update(r, func(st *session.State) {
		st.Logout()
		st.Notify(domain.SeveritySuccess, "Logged out successfully!")
	})
	logger.FromContext(r.Context()).Info("user logged out")
	redirectHome(w, r)
}

// POST /history/clear
func (h *Pages) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.update(r, func(st *session.State) { st.ClearHistory() })
	redirectHome(w, r)
}

func (h *Pages) update(r *http.Request, fn func(st *session.State)) {
	id, _ := session.IDFromContext(r.Context())
	if err := h.sessions.Update(id, fn); err != nil {
		logger.FromContext(r.Context()).Warn("session update skipped", "err", err)
	}
}

func (h *Pages) snapshot(r *http.Request) session.State {
	id, _ := session.IDFromContext(r.Context())
	st, _ := h.sessions.Get(id)
	return st
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// transportNotice переводит сетевую ошибку в текст для пользователя.
func (h *Pages) transportNotice(err error) string {
	switch {
	case errors.Is(err, api.ErrTimeout):
		return "Request timed out. Please try again."
	case errors.Is(err, api.ErrConnection):
		return "Connection error. Make sure the API server is running on " + h.api.BaseURL()
	default:
		return "Request error: " + err.Error()
	}
}

func lastUpstream(endpoint string, res api.Response) *session.Upstream {
	return &session.Upstream{Endpoint: endpoint, Status: res.Status, Body: res.Text()}
}
