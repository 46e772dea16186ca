package http

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/cwrk-planet/aichat/internal/config"
	"github.com/cwrk-planet/aichat/internal/domain"
	"github.com/cwrk-planet/aichat/internal/session"
)

type debugView struct {
	LoggedIn     bool
	Username     string
	Page         domain.Page
	HasToken     bool
	TokenExpires string
	Last         *session.Upstream
}

type pageView struct {
	Title        string
	Page         domain.Page
	LoggedIn     bool
	Username     string
	Notices      []domain.Notice
	History      []domain.HistoryEntry
	Topics       []string
	DefaultTopic string
	UpstreamDown bool
	UpstreamURL  string
	Debug        *debugView
}

func newView(ui config.UI, st session.State, now time.Time) pageView {
	v := pageView{
		Title:        ui.Title,
		Page:         st.Page,
		LoggedIn:     st.LoggedIn,
		Username:     st.Username,
		Notices:      st.Notices,
		History:      domain.Newest(st.History),
		Topics:       domain.Topics,
		DefaultTopic: domain.DefaultTopic,
	}
	if ui.Debug {
		v.Debug = &debugView{
			LoggedIn: st.LoggedIn,
			Username: st.Username,
			Page:     st.Page,
			HasToken: st.Token != "",
			Last:     st.Last,
		}
		if exp, ok := tokenExpiry(st.Token); ok {
			v.Debug.TokenExpires = exp.Format(time.RFC3339)
			if !exp.After(now) {
				v.Debug.TokenExpires += " (expired)"
			}
		}
	}
	return v
}

// tokenExpiry читает exp из JWT без проверки подписи: ключа у клиента нет,
// значение нужно только для debug-панели.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0), true
	case json.Number:
		n, err := exp.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(n, 0), true
	default:
		return time.Time{}, false
	}
}
