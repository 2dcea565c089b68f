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
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState         = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrSiteNotResolved      = NewDomainError("SITE_NOT_RESOLVED", "No website resolved for this request")
	ErrChannelNotConfigured = NewDomainError("CHANNEL_NOT_CONFIGURED", "Messenger channel is not configured for this website")
	ErrEmptyCart            = NewDomainError("EMPTY_CART", "Cart is empty")
	ErrMissingContact       = NewDomainError("MISSING_CONTACT", "Customer name and location are required")
	ErrCheckoutInFlight     = NewDomainError("CHECKOUT_IN_FLIGHT", "A checkout is already being processed for this session")
)
