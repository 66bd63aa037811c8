package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound       = errors.New("error.user_not_found")
	ErrEmailAlreadyExists = errors.New("error.email_already_exists")
	ErrInvalidCredentials = errors.New("error.invalid_credentials")
	ErrUnauthorized       = errors.New("error.unauthorized")
	ErrForbidden          = errors.New("error.forbidden")
)

// Moderation errors
// Nota: Estes são códigos de erro (message IDs para i18n).
var (
	ErrSubmissionNotFound = errors.New("error.submission_not_found")
	ErrInvalidTransition  = errors.New("error.invalid_transition")
	ErrValidationFailed   = errors.New("error.validation_failed")
	ErrConflict           = errors.New("error.conflict")
	ErrUnavailable        = errors.New("error.unavailable")
)

// Domain errors
var (
	ErrInvalidEmail = errors.New("error.invalid_email")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
const (
	ProblemTypeValidation        = "/problems/validation-error"
	ProblemTypeNotFound          = "/problems/not-found"
	ProblemTypeConflict          = "/problems/conflict"
	ProblemTypeUnauthorized      = "/problems/unauthorized"
	ProblemTypeForbidden         = "/problems/forbidden"
	ProblemTypeInvalidTransition = "/problems/invalid-transition"
	ProblemTypeUnavailable       = "/problems/unavailable"
	ProblemTypeInternal          = "/problems/internal-error"
	ProblemTypeBadRequest        = "/problems/bad-request"
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Type    string
	Title   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// TransitionError indica transição ilegal no ciclo de moderação.
// Carrega o status atual para que o chamador possa corrigir a requisição;
// nunca é coagido silenciosamente para o estado válido mais próximo.
type TransitionError struct {
	CurrentStatus   string
	RequestedStatus string
}

// NewTransitionError cria um TransitionError
func NewTransitionError(current, requested string) *TransitionError {
	return &TransitionError{
		CurrentStatus:   current,
		RequestedStatus: requested,
	}
}

func (e *TransitionError) Error() string {
	return "illegal transition from " + e.CurrentStatus + " to " + e.RequestedStatus
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
