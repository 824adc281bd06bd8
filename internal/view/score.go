package view

// Color is the traffic-light colour used for scores.
type Color string

const (
	Green  Color = "green"
	Yellow Color = "yellow"
	Red    Color = "red"
)

// ScoreColor grades a percentage score: 80 and above green, 60 and above
// yellow, otherwise red.
func ScoreColor(score int) Color {
	switch {
	case score >= 80:
		return Green
	case score >= 60:
		return Yellow
	default:
		return Red
	}
}

// ScoreText is the short verdict shown next to a score.
func ScoreText(score int) string {
	switch {
	case score >= 80:
		return "Excellent!"
	case score >= 60:
		return "Good job!"
	case score >= 40:
		return "Not bad!"
	default:
		return "Keep practicing!"
	}
}

// ProgressTip suggests what to do after a quiz.
func ProgressTip(score int) string {
	switch {
	case score >= 80:
		return "You are ready to move to the next level!"
	case score >= 60:
		return "You can practice more to reinforce your correct answers."
	default:
		return "We recommend studying the words you answered incorrectly."
	}
}

// ResultHeadline is the headline of the result dialog shown right after a
// quiz is submitted. It uses finer bands than ScoreText.
func ResultHeadline(score int) string {
	switch {
	case score >= 90:
		return "Excellent!"
	case score >= 80:
		return "Great job!"
	case score >= 70:
		return "Good work!"
	case score >= 60:
		return "Not bad!"
	case score >= 50:
		return "You passed!"
	default:
		return "Keep practicing!"
	}
}
