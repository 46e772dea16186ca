package domain

// Page — экран, который сейчас показывается в сессии.
type Page string

const (
	PageHome     Page = "home"
	PageRegister Page = "register"
	PageLogin    Page = "login"
	PageChat     Page = "chat"
)

// ParsePage — неизвестное значение ведёт на home.
func ParsePage(s string) Page {
	switch p := Page(s); p {
	case PageHome, PageRegister, PageLogin, PageChat:
		return p
	default:
		return PageHome
	}
}

func (p Page) Valid() bool {
	return ParsePage(string(p)) == p && p != ""
}
