package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode identifies an application error class
type ErrorCode string

// Error code constants
const (
	ErrorCode_INTERNAL         ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_NOT_FOUND        ErrorCode = "NOT_FOUND"
	ErrorCode_ALREADY_EXISTS   ErrorCode = "ALREADY_EXISTS"
	ErrorCode_UNAUTHENTICATED  ErrorCode = "UNAUTHENTICATED"
	ErrorCode_FORBIDDEN        ErrorCode = "FORBIDDEN"
	ErrorCode_INVALID_PAYLOAD  ErrorCode = "INVALID_PAYLOAD"

	ErrorCode_AUTH_INVALID_TOKEN   ErrorCode = "AUTH_INVALID_TOKEN"
	ErrorCode_AUTH_TOKEN_EXPIRED   ErrorCode = "AUTH_TOKEN_EXPIRED"
	ErrorCode_AUTH_INVALID_API_KEY ErrorCode = "AUTH_INVALID_API_KEY"

	ErrorCode_TOPIC_NOT_FOUND        ErrorCode = "TOPIC_NOT_FOUND"
	ErrorCode_TOPIC_INVALID_DURATION ErrorCode = "TOPIC_INVALID_DURATION"
	ErrorCode_TOPIC_INVALID_STATE    ErrorCode = "TOPIC_INVALID_STATE"

	ErrorCode_SESSION_NOT_FOUND  ErrorCode = "SESSION_NOT_FOUND"
	ErrorCode_SESSION_NOT_ACTIVE ErrorCode = "SESSION_NOT_ACTIVE"
	ErrorCode_SESSION_ENDED      ErrorCode = "SESSION_ENDED"

	ErrorCode_PARTICIPANT_UNKNOWN_ROLE ErrorCode = "PARTICIPANT_UNKNOWN_ROLE"
	ErrorCode_PARTICIPANT_NO_AGENTS    ErrorCode = "PARTICIPANT_NO_AGENTS"

	ErrorCode_ASSESSMENT_UNKNOWN_DOMAIN ErrorCode = "ASSESSMENT_UNKNOWN_DOMAIN"
	ErrorCode_ASSESSMENT_EMPTY_PROPOSAL ErrorCode = "ASSESSMENT_EMPTY_PROPOSAL"
	ErrorCode_NARRATIVE_FAILED          ErrorCode = "NARRATIVE_FAILED"

	ErrorCode_DB_CONNECTION_FAILED       ErrorCode = "DB_CONNECTION_FAILED"
	ErrorCode_DB_QUERY_FAILED            ErrorCode = "DB_QUERY_FAILED"
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = "INTEGRATION_STORAGE_FAILED"
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = "INTEGRATION_CACHE_FAILED"
)

// String returns the string representation of the error code
func (c ErrorCode) String() string {
	return string(c)
}

// AppError là custom error type cho application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid request payload",
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid authentication token",
	}
}

func ErrTokenExpired() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_TOKEN_EXPIRED,
		Message:  "Authentication token has expired",
	}
}

func ErrInvalidAPIKey() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_API_KEY,
		Message:  "Invalid operator API key",
	}
}

// Topic Errors
func ErrTopicNotFound(topicID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_TOPIC_NOT_FOUND,
		Message:  "Topic not found",
	}.WithDetail("topic_id", topicID)
}

func ErrInvalidTopicDuration(duration int) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_TOPIC_INVALID_DURATION,
		Message:  "Topic duration must be a positive number of minutes",
	}.WithDetail("duration_minutes", fmt.Sprintf("%d", duration))
}

func ErrTopicInvalidState(topicID, currentState, expectedState string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_TOPIC_INVALID_STATE,
		Message:  "Topic is in invalid state",
	}.WithDetail("topic_id", topicID).
		WithDetail("current_state", currentState).
		WithDetail("expected_state", expectedState)
}

// Session Errors
func ErrSessionNotFound(sessionID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_SESSION_NOT_FOUND,
		Message:  "Session not found",
	}.WithDetail("session_id", sessionID)
}

func ErrSessionNotActive(sessionID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_SESSION_NOT_ACTIVE,
		Message:  "Session is not active",
	}.WithDetail("session_id", sessionID)
}

func ErrSessionEnded(sessionID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_SESSION_ENDED,
		Message:  "Session has already ended",
	}.WithDetail("session_id", sessionID)
}

// Participant Errors
func ErrUnknownParticipantRole(role string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_PARTICIPANT_UNKNOWN_ROLE,
		Message:  "No strategy registered for participant role",
	}.WithDetail("role", role)
}

func ErrNoAgentParticipants() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_PARTICIPANT_NO_AGENTS,
		Message:  "Session requires at least one simulated participant",
	}
}

// Assessment Errors
func ErrUnknownAssessmentDomain(domain string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_ASSESSMENT_UNKNOWN_DOMAIN,
		Message:  "Unknown assessment domain",
	}.WithDetail("domain", domain)
}

func ErrEmptyProposal() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_ASSESSMENT_EMPTY_PROPOSAL,
		Message:  "Proposal text is required",
	}
}

func ErrNarrativeFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_NARRATIVE_FAILED,
		Message:  "Narrative generation failed",
	}
}

// Infrastructure Errors
func ErrDBConnectionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_CONNECTION_FAILED,
		Message:  "Database connection failed",
	}
}

func ErrDBQueryFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}
}

func ErrStorageFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  "Object storage operation failed",
	}
}

func ErrCacheFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:  "Cache operation failed",
	}
}
