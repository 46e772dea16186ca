package session

import (
	"time"

	"github.com/cwrk-planet/aichat/internal/domain"
)

// Upstream — последний ответ API, только для debug-панели.
type Upstream struct {
	Endpoint string
	Status   int
	Body     string
}

// State — всё, что клиент помнит о браузере между запросами.
type State struct {
	Page     domain.Page
	LoggedIn bool
	Username string
	Token    string
	History  []domain.HistoryEntry
	Notices  []domain.Notice
	Last     *Upstream
}

func newState() State {
	return State{Page: domain.PageHome}
}

// Navigate переключает страницу; незнакомое имя ведёт на home.
func (s *State) Navigate(p domain.Page) {
	s.Page = domain.ParsePage(string(p))
}

func (s *State) Login(username, token string) {
	s.LoggedIn = true
	s.Username = username
	s.Token = token
	s.Page = domain.PageChat
}

// Logout сбрасывает логин, имя, токен и историю одновременно.
func (s *State) Logout() {
	s.LoggedIn = false
	s.Username = ""
	s.Token = ""
	s.History = nil
	s.Page = domain.PageHome
}

// Unauthorized — API ответило 401: токен больше не годится, отправляем на логин.
func (s *State) Unauthorized() {
	s.LoggedIn = false
	s.Token = ""
	s.Page = domain.PageLogin
}

// SameLogin — сессия всё ещё под тем же входом, что и снимок prev.
// Ответ API, пришедший после logout или смены пользователя, применять нельзя.
func (s *State) SameLogin(prev State) bool {
	return s.LoggedIn && prev.LoggedIn && s.Username == prev.Username && s.Token == prev.Token
}

func (s *State) AddExchange(you, ai string, at time.Time) {
	s.History = append(s.History,
		domain.NewEntry(domain.SenderYou, you, at),
		domain.NewEntry(domain.SenderAI, ai, at),
	)
}

func (s *State) ClearHistory() {
	s.History = nil
}

func (s *State) Notify(sev domain.Severity, text string) {
	s.Notices = append(s.Notices, domain.Notice{Severity: sev, Text: text})
}

// TakeNotices отдаёт накопленные сообщения и очищает очередь.
func (s *State) TakeNotices() []domain.Notice {
	n := s.Notices
	s.Notices = nil
	return n
}

func (s State) clone() State {
	c := s
	c.History = append([]domain.HistoryEntry(nil), s.History...)
	c.Notices = append([]domain.Notice(nil), s.Notices...)
	if s.Last != nil {
		last := *s.Last
		c.Last = &last
	}
	return c
}
