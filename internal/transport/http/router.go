package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cwrk-planet/aichat/internal/app/api"
	"github.com/cwrk-planet/aichat/internal/config"
	"github.com/cwrk-planet/aichat/internal/session"
	"github.com/cwrk-planet/aichat/pkg/httputil"
)

type Deps struct {
	API          api.Client
	Sessions     *session.Store
	UI           config.UI
	CORSOrigins  []string
	SecureCookie bool
	Now          func() time.Time
}

func NewRouter(d Deps) (http.Handler, error) {
	pages, err := NewPages(d.API, d.Sessions, d.UI, d.Now)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(httputil.MiddlewareRequestID)
	r.Use(httputil.MiddlewareLogging)

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.OK(r.Context(), w, map[string]string{"status": "ok"})
	})

	sh := &StatusHandlers{API: d.API}
	r.Route("/api", func(ar chi.Router) {
		ar.Use(cors.Handler(cors.Options{
			AllowedOrigins: d.CORSOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
		ar.Get("/status", sh.Status)
	})

	// Страницы: всё состояние в сессии, действия — POST с редиректом на /
	r.Group(func(pr chi.Router) {
		pr.Use(d.Sessions.Middleware(d.SecureCookie))

		pr.Get("/", pages.Index)
		pr.Post("/nav/{page}", pages.Navigate)
		pr.Post("/register", pages.Register)
		pr.Post("/login", pages.Login)
		pr.Post("/logout", pages.Logout)
		pr.Post("/chat", pages.Chat)
		pr.Post("/history/clear", pages.ClearHistory)
	})

	return r, nil
}
