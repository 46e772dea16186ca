package domain

var Topics = []string{"General", "Weather", "Science", "Tech", "News", "Sports", "Health", "Entertainment"}

const DefaultTopic = "General"

func ValidTopic(t string) bool {
	for _, v := range Topics {
		if v == t {
			return true
		}
	}
	return false
}

// NormalizeTopic — пустая или незнакомая тема превращается в DefaultTopic.
func NormalizeTopic(t string) string {
	if ValidTopic(t) {
		return t
	}
	return DefaultTopic
}
