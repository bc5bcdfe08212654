package usecase

import "errors"

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "LEAD_NOT_FOUND"
	CodeEmptyRequest = "EMPTY_SELECTION"
	CodeDatabase     = "DATABASE_ERROR"
)

// DomainError: erro de entrada do cliente (validação, lead inexistente).
type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError: falha de infraestrutura. Message é seguro para o cliente, Err fica só no log.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func notFoundError() *DomainError {
	return &DomainError{Code: CodeNotFound, Message: "Lead not found"}
}
