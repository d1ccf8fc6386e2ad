package types

import "github.com/gofrs/uuid"

// HTTP Header Constants
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderUID           = "uid"
)

// Authentication Constants
const (
	BearerPrefix    = "Bearer "
	AccessTokenName = "access_token"
	UserCtxName     = "user"
	ClaimKey        = "claim"
)

// Common Values
const (
	AdminRole  = "admin"
	ViewerRole = "viewer"
)

// UserContext is the authenticated caller stored in fiber locals.
type UserContext struct {
	UserID uuid.UUID `json:"uid"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Role   string    `json:"role"`
}

// Response is the success envelope returned by every catalog endpoint.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// OKMessage wraps data and a user-facing message.
func OKMessage(data interface{}, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Fail builds an error envelope.
func Fail(code, message string, details interface{}) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Message: message, Details: details}
}
