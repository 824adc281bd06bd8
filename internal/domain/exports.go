package domain

import (
	interfaces "lingo/internal/domain/interfaces"
	types "lingo/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ID        = types.ID
	Level     = types.Level
	Route     = types.Route
	TimeRange = types.TimeRange

	AuthState   = types.AuthState
	Credentials = types.Credentials
	NewUser     = types.NewUser
	User        = types.User
	Session     = types.Session

	ErrorKind = types.ErrorKind
	APIError  = types.APIError

	Profile         = types.Profile
	Progress        = types.Progress
	ProgressStats   = types.ProgressStats
	ActivityPoint   = types.ActivityPoint
	VocabularyPoint = types.VocabularyPoint
	ScorePoint      = types.ScorePoint
	ErrorRatePoint  = types.ErrorRatePoint
	NamedCount      = types.NamedCount
	Mastery         = types.Mastery
	ErrorAnalysis   = types.ErrorAnalysis
	MonthlyTrend    = types.MonthlyTrend
	Improvement     = types.Improvement
	VocabularyItem  = types.VocabularyItem
	VocabularyPatch = types.VocabularyPatch
	Flashcard       = types.Flashcard
	Conversation    = types.Conversation
	Message         = types.Message
	MessageAnalysis = types.MessageAnalysis
	ErrorDetail     = types.ErrorDetail
	NewConversation = types.NewConversation
	Quiz            = types.Quiz
	Question        = types.Question
	QuizOptions     = types.QuizOptions
	QuizSubmission  = types.QuizSubmission
	QuizAnswer      = types.QuizAnswer
	QuizResult      = types.QuizResult
	AnswerResult    = types.AnswerResult
	Goal            = types.Goal
	Badge           = types.Badge
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Storage        = interfaces.Storage
	Gateway        = interfaces.Gateway
	Navigator      = interfaces.Navigator
	NavigatorFunc  = interfaces.NavigatorFunc
	SessionSource  = interfaces.SessionSource
	SessionService = interfaces.SessionService
)

// Constants re-exported from the types subpackage.
const (
	KeyToken = types.KeyToken
	KeyUser  = types.KeyUser

	StateUnknown         = types.StateUnknown
	StateUnauthenticated = types.StateUnauthenticated
	StateAuthenticated   = types.StateAuthenticated

	KindUnknown      = types.KindUnknown
	KindBadRequest   = types.KindBadRequest
	KindUnauthorized = types.KindUnauthorized
	KindNotFound     = types.KindNotFound
	KindServerError  = types.KindServerError

	RouteLogin     = types.RouteLogin
	RouteRegister  = types.RouteRegister
	RouteDashboard = types.RouteDashboard
	RouteRoot      = types.RouteRoot

	RangeWeek  = types.RangeWeek
	RangeMonth = types.RangeMonth
	RangeYear  = types.RangeYear
	RangeAll   = types.RangeAll
)

// Error sentinels re-exported for errors.Is matching.
var (
	ErrUnknown      = types.ErrUnknown
	ErrBadRequest   = types.ErrBadRequest
	ErrUnauthorized = types.ErrUnauthorized
	ErrNotFound     = types.ErrNotFound
	ErrServerError  = types.ErrServerError
)

// Levels lists the CEFR levels in ascending order.
var Levels = types.Levels

// ClassifyStatus maps a non-2xx HTTP status to an ErrorKind.
func ClassifyStatus(code int) ErrorKind { return types.ClassifyStatus(code) }

// KindOf returns the ErrorKind carried by err.
func KindOf(err error) ErrorKind { return types.KindOf(err) }
