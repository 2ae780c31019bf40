package types

import "fmt"

// APIError carries an HTTP status code through the service layer so handlers
// and the global error handler can render a uniform JSON body.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// BadRequest builds a 400 error.
func BadRequest(format string, args ...interface{}) *APIError {
	return &APIError{Code: 400, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a 404 error. Tenant-isolation failures use this too, so a
// foreign org's resource is indistinguishable from a missing one.
func NotFound(format string, args ...interface{}) *APIError {
	return &APIError{Code: 404, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized builds a 401 error.
func Unauthorized(format string, args ...interface{}) *APIError {
	return &APIError{Code: 401, Message: fmt.Sprintf(format, args...)}
}
