package http

import (
	"errors"
	"net/http"

	"github.com/cwrk-planet/aichat/internal/app/api"
	"github.com/cwrk-planet/aichat/internal/domain"
	"github.com/cwrk-planet/aichat/internal/session"
	"github.com/cwrk-planet/aichat/pkg/logger"
)

// POST /register
func (h *Pages) Register(w http.ResponseWriter, r *http.Request) {
	defer redirectHome(w, r)

	reg := domain.Registration{
		Credentials: domain.Credentials{
			Username: r.PostFormValue("username"),
			Password: r.PostFormValue("password"),
		},
		Confirm: r.PostFormValue("confirm_password"),
	}
	if err := reg.Validate(); err != nil {
		h.update(r, func(st *session.State) { st.Notify(validationSeverity(err), err.Error()) })
		return
	}
	creds := reg.Clean()

	res, err := h.api.Register(r.Context(), api.CredentialsRequest{Username: creds.Username, Password: creds.Password})
	if err != nil {
		logger.FromContext(r.Context()).Warn("register call failed", "err", err)
		h.update(r, func(st *session.State) { st.Notify(domain.SeverityError, h.transportNotice(err)) })
		return
	}

	h.update(r, func(st *session.State) {
		st.Last = lastUpstream(api.PathRegister, res)
		if res.Created() {
			st.Notify(domain.SeveritySuccess, "Registered successfully! Please log in.")
			st.Navigate(domain.PageLogin)
			return
		}
		st.Notify(domain.SeverityError, "Registration failed: "+res.Detail())
	})
}

// POST /login
func (h *Pages) Login(w http.ResponseWriter, r *http.Request) {
	defer redirectHome(w, r)

	creds := domain.Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if err := creds.Validate(); err != nil {
		h.update(r, func(st *session.State) { st.Notify(validationSeverity(err), err.Error()) })
		return
	}
	creds = creds.Clean()

	res, err := h.api.Login(r.Context(), api.CredentialsRequest{Username: creds.Username, Password: creds.Password})
	if err != nil {
		logger.FromContext(r.Context()).Warn("login call failed", "err", err)
		h.update(r, func(st *session.State) { st.Notify(domain.SeverityError, h.transportNotice(err)) })
		return
	}

	h.update(r, func(st *session.State) {
		st.Last = lastUpstream(api.PathLogin, res)
		if res.OK() {
			st.Login(creds.Username, res.Token())
			st.Notify(domain.SeveritySuccess, "Logged in successfully!")
			return
		}
		st.Notify(domain.SeverityError, "Login failed: "+res.Detail())
	})
	if res.OK() {
		logger.FromContext(r.Context()).Info("user logged in", "username", creds.Username)
	}
}

func validationSeverity(err error) domain.Severity {
	if errors.Is(err, domain.ErrPasswordMismatch) {
		return domain.SeverityError
	}
	return domain.SeverityWarning
}
