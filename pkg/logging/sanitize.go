package logging

import "unicode/utf8"

const (
	// MaxQuestionLogLength is the maximum length of a question to log
	MaxQuestionLogLength = 120
	// MaxAnswerLogLength is the maximum length of an answer to log
	MaxAnswerLogLength = 200
)

// TruncateQuestion shortens a user question for log fields. Spreadsheet
// questions can quote whole rows; logs only need the head.
func TruncateQuestion(q string) string {
	return Truncate(q, MaxQuestionLogLength)
}

// TruncateAnswer shortens a rendered answer for log fields.
func TruncateAnswer(a string) string {
	return Truncate(a, MaxAnswerLogLength)
}

// Truncate cuts s after at most maxLen bytes and adds an ellipsis. The cut
// lands on a rune boundary so accented text stays valid UTF-8.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
