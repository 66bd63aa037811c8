package dto

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	apperrors "github.com/rafabene/gamehub-backend/internal/domain/errors"
)

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs)
type ErrorResponse struct {
	problems.DefaultProblem
	Errors []ValidationError      `json:"errors,omitempty"`
	Meta   map[string]interface{} `json:"meta,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
	Value   string `json:"value,omitempty"`
}

// RespondProblem escreve a resposta com o media type de RFC 7807
func RespondProblem(c *gin.Context, response ErrorResponse) {
	body, err := json.Marshal(response)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Data(response.Status, problems.ProblemMediaType, body)
}

// NewErrorResponseI18n cria uma resposta de erro RFC 7807 usando i18n
func NewErrorResponseI18n(c *gin.Context, problemType, titleKey, detailKey string, status int, params ...map[string]interface{}) ErrorResponse {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	problem := problems.NewStatusProblem(status)
	problem.Type = baseURL + problemType
	problem.Title = T(c, titleKey, params...)
	problem.Detail = T(c, detailKey, params...)
	problem.Instance = c.Request.URL.Path

	return ErrorResponse{DefaultProblem: *problem}
}

// Helper functions para respostas de erro comuns com i18n

// ValidationErrorResponseI18n cria uma resposta de erro de validação
func ValidationErrorResponseI18n(c *gin.Context, validationErrors []ValidationError) ErrorResponse {
	response := NewErrorResponseI18n(
		c,
		apperrors.ProblemTypeValidation,
		"error.validation.title",
		"error.validation.detail",
		http.StatusBadRequest,
	)
	response.Errors = validationErrors
	return response
}

// ValidationFailedErrorResponseI18n cria uma resposta 400 com detalhe específico
func ValidationFailedErrorResponseI18n(c *gin.Context, detailKey string) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		apperrors.ProblemTypeValidation,
		"error.validation.title",
		detailKey,
		http.StatusBadRequest,
	)
}

// NotFoundErrorResponseI18n cria uma resposta de erro 404
func NotFoundErrorResponseI18n(c *gin.Context, resource string) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		apperrors.ProblemTypeNotFound,
		"error.not_found.title",
		"error.not_found.detail",
		http.StatusNotFound,
		map[string]interface{}{"Resource": resource},
	)
}

// ConflictErrorResponseI18n cria uma resposta de erro 409
func ConflictErrorResponseI18n(c *gin.Context, detailKey string, params ...map[string]interface{}) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		apperrors.ProblemTypeConflict,
		"error.conflict.title",
		detailKey,
		http.StatusConflict,
		params...,
	)
}

// InvalidTransitionErrorResponseI18n cria uma resposta 409 para transição
// ilegal, expondo o status atual para que o chamador corrija a requisição
func InvalidTransitionErrorResponseI18n(c *gin.Context, currentStatus string) ErrorResponse {
	response := NewErrorResponseI18n(
		c,
		apperrors.ProblemTypeInvalidTransition,
		"error.invalid_transition.title",
		"error.invalid_transition.detail",
		http.StatusConflict,
		map[string]interface{}{"Status": currentStatus},
	)
	response.Meta = map[string]interface{}{"current_status": currentStatus}
	return response
}

// UnauthorizedErrorResponseI18n cria uma resposta de erro 401
func UnauthorizedErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		apperrors.ProblemTypeUnauthorized,
		"error.unauthorized.title",
		"error.unauthorized.detail",
		http.StatusUnauthorized,
	)
}

// ForbiddenErrorResponseI18n cria uma resposta de erro 403.
// O detalhe é genérico: não revela qual permissão faltou.
func ForbiddenErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		apperrors.ProblemTypeForbidden,
		"error.forbidden.title",
		"error.forbidden.detail",
		http.StatusForbidden,
	)
}

// UnavailableErrorResponseI18n cria uma resposta de erro 503
func UnavailableErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		apperrors.ProblemTypeUnavailable,
		"error.unavailable.title",
		"error.unavailable.detail",
		http.StatusServiceUnavailable,
	)
}

// InternalErrorResponseI18n cria uma resposta de erro 500
func InternalErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		apperrors.ProblemTypeInternal,
		"error.internal.title",
		"error.internal.detail",
		http.StatusInternalServerError,
	)
}

// FromDomainError mapeia um erro da taxonomia de domínio para a resposta
// RFC 7807 correspondente. Erros fora da taxonomia viram 500 genérico.
func FromDomainError(c *gin.Context, err error) ErrorResponse {
	var transitionErr *apperrors.TransitionError
	if errors.As(err, &transitionErr) {
		return InvalidTransitionErrorResponseI18n(c, transitionErr.CurrentStatus)
	}

	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) && errors.Is(err, apperrors.ErrValidationFailed) {
		return ValidationFailedErrorResponseI18n(c, domainErr.Message)
	}

	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		return UnauthorizedErrorResponseI18n(c)
	case errors.Is(err, apperrors.ErrForbidden):
		return ForbiddenErrorResponseI18n(c)
	case errors.Is(err, apperrors.ErrSubmissionNotFound):
		return NotFoundErrorResponseI18n(c, "Submission")
	case errors.Is(err, apperrors.ErrUserNotFound):
		return NotFoundErrorResponseI18n(c, "User")
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return InvalidTransitionErrorResponseI18n(c, "")
	case errors.Is(err, apperrors.ErrValidationFailed):
		return ValidationFailedErrorResponseI18n(c, "error.validation.detail")
	case errors.Is(err, apperrors.ErrConflict):
		return ConflictErrorResponseI18n(c, "error.conflict.detail")
	case errors.Is(err, apperrors.ErrUnavailable):
		return UnavailableErrorResponseI18n(c)
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return ConflictErrorResponseI18n(c, "error.email_already_exists")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return UnauthorizedErrorResponseI18n(c)
	case errors.Is(err, apperrors.ErrInvalidEmail):
		return ValidationFailedErrorResponseI18n(c, "error.invalid_email")
	}

	return InternalErrorResponseI18n(c)
}
