package dto

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rafabene/gamehub-backend/internal/domain/entities"
)

// RegisterCustomValidations registra validações de binding específicas
// do domínio no validator do Gin. Deve ser chamado uma vez no startup.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return v.RegisterValidation("submissionstatus", func(fl validator.FieldLevel) bool {
		return entities.Status(fl.Field().String()).IsValid()
	})
}

// ValidationErrorsFromBinding extrai erros de campo de um erro de binding
// do Gin para o formato da resposta RFC 7807
func ValidationErrorsFromBinding(err error) []ValidationError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	result := make([]ValidationError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		result = append(result, ValidationError{
			Field:   fieldErr.Field(),
			Message: fieldErr.Tag(),
			Tag:     fieldErr.Tag(),
		})
	}
	return result
}
