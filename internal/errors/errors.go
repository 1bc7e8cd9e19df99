package errors

import (
	"errors"
	"fmt"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeValidation    ErrorType = "VALIDATION"
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeAuth          ErrorType = "AUTH"
	TypeRateLimit     ErrorType = "RATE_LIMIT"
	TypeAI            ErrorType = "AI"
	TypeVCS           ErrorType = "VCS"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if detail, ok := e.Context["detail"].(string); ok && detail != "" {
			msg += fmt.Sprintf(" - %s", detail)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another AppError of the same type and message, so derived
// errors built with WithError/WithContext still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// WithMessage keeps the type and replaces the human message.
// The result no longer matches the original sentinel with errors.Is.
func (e *AppError) WithMessage(msg string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    msg,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// TypeOf returns the type of the first AppError in err's chain, or TypeInternal.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return TypeInternal
}

// Validation errors
var (
	ErrContentRequired = NewAppError(TypeValidation, "content is required", nil).
				WithSuggestion("Send the document text in the 'content' field")

	ErrTeamConfigRequired = NewAppError(TypeValidation, "team_config is required", nil).
				WithSuggestion("Send at least an empty members list: {\"members\": []}")

	ErrRepositoryRequired = NewAppError(TypeValidation, "owner and repo are required", nil)

	ErrNoIssues = NewAppError(TypeValidation, "issues array is required and must not be empty", nil)

	ErrIssuesRequired = NewAppError(TypeValidation, "issues required", nil)

	ErrTooManyIssues = NewAppError(TypeValidation, "Maximum 50 issues per batch", nil).
				WithSuggestion("Split the list into batches of at most 50 issues")

	ErrInvalidRequest = NewAppError(TypeValidation, "invalid request body", nil)
)

// Configuration errors
var (
	ErrAPIKeyMissing = NewAppError(TypeConfiguration, "AI API key is missing", nil).
				WithSuggestion("Set ANTHROPIC_API_KEY (or GEMINI_API_KEY with ai.provider=gemini)")

	ErrTokenMissing = NewAppError(TypeConfiguration, "GitHub token is missing", nil).
			WithSuggestion("Set GITHUB_TOKEN or github.token in the config file")

	ErrJWTSecretMissing = NewAppError(TypeConfiguration, "JWT secret is missing", nil).
				WithSuggestion("Set JWT_SECRET before running the server")

	ErrProviderNotSupported = NewAppError(TypeConfiguration, "AI provider not supported", nil).
				WithSuggestion("Use ai.provider=anthropic or ai.provider=gemini")

	ErrConfigInvalid = NewAppError(TypeConfiguration, "configuration is invalid", nil)
)

// Auth errors
var (
	ErrNoToken = NewAppError(TypeAuth, "No token provided", nil)

	ErrInvalidToken = NewAppError(TypeAuth, "Invalid or expired token", nil).
			WithSuggestion("Sign in again with GitHub")
)

// Rate limit errors
var (
	ErrRateLimited = NewAppError(TypeRateLimit, "Trop de générations. Limite : 10 par heure.", nil)
)

// VCS errors
var (
	ErrRepositoryNotFound = NewAppError(TypeVCS, "repository not found", nil).
				WithSuggestion("Check repository owner/name and access permissions")

	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Sign in again or generate a new token at: https://github.com/settings/tokens")

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub token has insufficient permissions", nil).
					WithSuggestion("Token needs the 'repo' scope")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes before publishing again")

	ErrListRepositories = NewAppError(TypeVCS, "failed to list repositories", nil)
)

// AI errors
var (
	ErrAIGeneration = NewAppError(TypeAI, "AI generation failed", nil).
			WithSuggestion("Try again or check your API key configuration")

	ErrGenerationFormat = NewAppError(TypeAI, "invalid JSON", nil).
				WithSuggestion("The model answered with something other than JSON, try again")

	ErrQuotaExceeded = NewAppError(TypeAI, "AI quota exceeded or rate limited", nil).
				WithSuggestion("Wait a few minutes and try again, or check your API quota")

	ErrEmptyCompletion = NewAppError(TypeAI, "AI returned an empty response", nil)
)
