package http

import (
	"net/http"
	"strings"

	"github.com/cwrk-planet/aichat/internal/app/api"
	"github.com/cwrk-planet/aichat/internal/domain"
	"github.com/cwrk-planet/aichat/internal/session"
	"github.com/cwrk-planet/aichat/pkg/logger"
)

// POST /chat
func (h *Pages) Chat(w http.ResponseWriter, r *http.Request) {
	defer redirectHome(w, r)

	st := h.snapshot(r)
	if !st.LoggedIn {
		h.update(r, func(st *session.State) {
			st.Navigate(domain.PageChat)
		})
		return
	}

	msg := strings.TrimSpace(r.PostFormValue("message"))
	if msg == "" {
		h.update(r, func(st *session.State) { st.Notify(domain.SeverityWarning, domain.ErrEmptyMessage.Error()) })
		return
	}
	topic := domain.NormalizeTopic(r.PostFormValue("topic"))

	res, err := h.api.Chat(r.Context(), api.ChatRequest{
		Message:  msg,
		Topic:    topic,
		Username: st.Username,
		Token:    st.Token,
	})
	if err != nil {
		logger.FromContext(r.Context()).Warn("chat call failed", "err", err)
		h.applyChat(r, st, func(cur *session.State) { cur.Notify(domain.SeverityError, h.transportNotice(err)) })
		return
	}

	at := h.now()
	h.applyChat(r, st, func(cur *session.State) {
		cur.Last = lastUpstream(api.PathChat, res)
		switch {
		case res.OK():
			reply, err := res.Reply()
			if err != nil {
				cur.Notify(domain.SeverityError, "Error parsing response: "+err.Error())
				return
			}
			cur.AddExchange(msg, reply, at)
		case res.Unauthorized():
			cur.Notify(domain.SeverityError, "Authentication failed. Please login again.")
			cur.Unauthorized()
		default:
			cur.Notify(domain.SeverityError, "Chat failed: "+res.Detail())
		}
	})
}

// applyChat применяет результат /chat, только если пока шёл запрос
// пользователь не вышел и не сменился.
func (h *Pages) applyChat(r *http.Request, sent session.State, fn func(cur *session.State)) {
	h.update(r, func(cur *session.State) {
		if !cur.SameLogin(sent) {
			logger.FromContext(r.Context()).Info("chat result dropped: login changed while waiting", "username", sent.Username)
			return
		}
		fn(cur)
	})
}
