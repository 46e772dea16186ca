package domain

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice — сообщение пользователю, показывается один раз.
type Notice struct {
	Severity Severity
	Text     string
}
