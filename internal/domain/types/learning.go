package types

import "time"

// Profile is the editable part of the user record.
type Profile struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
}

// Progress is the summary shown on the dashboard and profile.
type Progress struct {
	ConversationsCount int `json:"conversationsCount"`
	MessagesCount      int `json:"messagesCount"`
	VocabularyCount    int `json:"vocabularyCount"`
	StreakDays         int `json:"streakDays"`
	QuizzesCompleted   int `json:"quizzesCompleted,omitempty"`
}

// ProgressStats holds the time-series behind the progress graphs.
type ProgressStats struct {
	ActivityData       []ActivityPoint   `json:"activityData"`
	WeeklyActivity     []ActivityPoint   `json:"weeklyActivity"`
	VocabularyProgress []VocabularyPoint `json:"vocabularyProgress"`
	QuizResults        []ScorePoint      `json:"quizResults"`
	ErrorReduction     []ErrorRatePoint  `json:"errorReduction"`
	VocabularyByLevel  []NamedCount      `json:"vocabularyByLevel"`
	MasteryProgress    Mastery           `json:"masteryProgress"`
}

type ActivityPoint struct {
	Day      string `json:"day,omitempty"`
	Week     string `json:"week,omitempty"`
	Messages int    `json:"messages"`
	Minutes  int    `json:"minutes"`
}

type VocabularyPoint struct {
	Date     string `json:"date"`
	NewWords int    `json:"newWords"`
	Mastered int    `json:"mastered"`
	Total    int    `json:"total"`
}

type ScorePoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

type ErrorRatePoint struct {
	Date      string  `json:"date"`
	ErrorRate float64 `json:"errorRate"`
}

// NamedCount is a labelled count; the API uses both "value" and "count".
type NamedCount struct {
	Name     string `json:"name"`
	Value    int    `json:"value,omitempty"`
	Count    int    `json:"count,omitempty"`
	Category string `json:"category,omitempty"`
}

type Mastery struct {
	Total      int `json:"total"`
	Mastered   int `json:"mastered"`
	InProgress int `json:"inProgress"`
}

// ErrorAnalysis aggregates the learner's mistakes over a time range.
type ErrorAnalysis struct {
	TotalErrors      int            `json:"totalErrors"`
	ErrorCategories  []NamedCount   `json:"errorCategories"`
	TopErrorTypes    []NamedCount   `json:"topErrorTypes"`
	MonthlyTrends    []MonthlyTrend `json:"monthlyTrends"`
	ErrorImprovement Improvement    `json:"errorImprovement"`
}

type MonthlyTrend struct {
	Month       string `json:"month"`
	Errors      int    `json:"errors"`
	Corrections int    `json:"corrections"`
}

type Improvement struct {
	PreviousPeriod   int     `json:"previousPeriod"`
	CurrentPeriod    int     `json:"currentPeriod"`
	PercentageChange float64 `json:"percentageChange"`
}

// VocabularyItem is a word the learner has encountered.
type VocabularyItem struct {
	ID                 ID         `json:"id"`
	Word               string     `json:"word"`
	Translation        string     `json:"translation"`
	Level              Level      `json:"level"`
	TimesEncountered   int        `json:"timesEncountered"`
	TimesCorrectlyUsed int        `json:"timesCorrectlyUsed"`
	LastEncounteredAt  *time.Time `json:"lastEncounteredAt,omitempty"`
	IsMastered         bool       `json:"isMastered"`
}

// VocabularyPatch is the body of a vocabulary update.
type VocabularyPatch struct {
	Translation string `json:"translation"`
}

// Flashcard is a vocabulary item prepared for drilling.
type Flashcard struct {
	ID          ID     `json:"id"`
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Level       Level  `json:"level"`
	Example     string `json:"example,omitempty"`
}

// Conversation is a tutoring thread.
type Conversation struct {
	ID            ID         `json:"id"`
	Title         string     `json:"title"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
	Messages      []Message  `json:"messages,omitempty"`
}

// Message is one turn in a conversation. ErrorAnalysis is only set on
// learner messages.
type Message struct {
	ID            ID               `json:"id"`
	Content       string           `json:"content"`
	IsFromUser    bool             `json:"isFromUser"`
	CreatedAt     time.Time        `json:"createdAt"`
	ErrorAnalysis *MessageAnalysis `json:"errorAnalysis,omitempty"`
}

type MessageAnalysis struct {
	Errors []ErrorDetail `json:"errors"`
}

// ErrorDetail is a single correction suggested for a learner message.
type ErrorDetail struct {
	ErrorText   string `json:"errorText"`
	Correction  string `json:"correction"`
	Explanation string `json:"explanation,omitempty"`
	ErrorType   string `json:"errorType,omitempty"`
}

// NewConversation starts a thread with an opening message.
type NewConversation struct {
	Title          string `json:"title"`
	InitialMessage string `json:"initialMessage"`
}

// Quiz is a set of multiple-choice questions at one level.
type Quiz struct {
	ID        ID         `json:"id"`
	Title     string     `json:"title"`
	Level     Level      `json:"level"`
	QuizType  string     `json:"quizType,omitempty"`
	Questions []Question `json:"questions"`
}

type Question struct {
	ID       ID       `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizOptions parameterizes quiz generation.
type QuizOptions struct {
	Level         Level  `json:"level,omitempty"`
	QuizType      string `json:"quizType,omitempty"`
	QuestionCount int    `json:"questionCount,omitempty"`
}

// QuizSubmission carries the learner's answers. QuestionID is an integer on
// the wire.
type QuizSubmission struct {
	QuizID  ID           `json:"quizId"`
	Answers []QuizAnswer `json:"answers"`
}

type QuizAnswer struct {
	QuestionID int    `json:"questionId"`
	Answer     string `json:"answer"`
}

// QuizResult is a graded submission.
type QuizResult struct {
	ID             ID             `json:"id"`
	QuizID         ID             `json:"quizId,omitempty"`
	QuizTitle      string         `json:"quizTitle"`
	QuizLevel      Level          `json:"quizLevel"`
	Score          int            `json:"score"`
	CorrectAnswers int            `json:"correctAnswers"`
	TotalQuestions int            `json:"totalQuestions"`
	CompletedAt    time.Time      `json:"completedAt"`
	Answers        []AnswerResult `json:"answers,omitempty"`
}

type AnswerResult struct {
	QuestionID    ID     `json:"questionId,omitempty"`
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// Goal is a learner-defined target.
type Goal struct {
	ID              ID        `json:"id,omitempty"`
	Title           string    `json:"title"`
	TargetType      string    `json:"targetType"`
	TargetValue     int       `json:"targetValue"`
	CurrentProgress int       `json:"currentProgress"`
	Frequency       string    `json:"frequency"`
	IsCompleted     bool      `json:"isCompleted"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
}

// Badge is an achievement, earned or not.
type Badge struct {
	ID          ID         `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	IsEarned    bool       `json:"isEarned"`
	EarnedAt    *time.Time `json:"earnedAt,omitempty"`
	Progress    int        `json:"progress,omitempty"`
}
