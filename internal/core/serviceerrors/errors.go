package serviceerrors

import "errors"

type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindConflict
	KindUnprocessableEntity
	KindInvalidRequest
	KindOutOfStock
	KindCollaboratorFailure
	KindStorageFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnprocessableEntity:
		return "unprocessable_entity"
	case KindInvalidRequest:
		return "invalid_request"
	case KindOutOfStock:
		return "out_of_stock"
	case KindCollaboratorFailure:
		return "collaborator_failure"
	case KindStorageFailure:
		return "storage_failure"
	default:
		return "unknown"
	}
}

func IsOfKind(err error, kind ErrorKind) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind == kind
	}
	return false
}

// ServiceError carries a user-facing Message. Cause, when set, is the
// underlying failure and is only meant for logs.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func NewUnprocessableEntityError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnprocessableEntity, Message: message}
}

func NewInvalidRequestError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidRequest, Message: message}
}

func NewOutOfStockError(message string) *ServiceError {
	return &ServiceError{Kind: KindOutOfStock, Message: message}
}

func NewCollaboratorFailureError(message string, cause error) *ServiceError {
	return &ServiceError{Kind: KindCollaboratorFailure, Message: message, Cause: cause}
}

func NewStorageFailureError(message string, cause error) *ServiceError {
	return &ServiceError{Kind: KindStorageFailure, Message: message, Cause: cause}
}
