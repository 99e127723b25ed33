package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")

	// ErrUnavailable is returned by write operations when no database
	// connection could be established. Reads never return it; they degrade
	// to empty results instead.
	ErrUnavailable = NewDomainError("UNAVAILABLE", "Storage is unavailable")

	// ErrRelationViolated is returned when a write references a row that
	// does not exist, or would delete one that other rows still require.
	ErrRelationViolated = NewDomainError("RELATION_VIOLATED", "Operation violates a relational constraint")
)
