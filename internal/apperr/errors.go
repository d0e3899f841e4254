package apperr

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// NotFoundError reports a missing resource by kind and key
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " " + e.Key + " not found"
}

func NewNotFound(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

// ConflictError reports a write that collides with existing state
type ConflictError struct {
	Message string
	Err     error
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

func NewConflict(msg string, err error) *ConflictError {
	return &ConflictError{Message: msg, Err: err}
}
