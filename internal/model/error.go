package model

// Error codes carried in ErrorResponse.Code
const (
	CodeValidation      = "validation_error"
	CodeInvalidPassword = "invalid_password"
	CodeBusy            = "busy"
	CodeFileExists      = "file_exists"
	CodeNotFound        = "not_found"
	CodeInternal        = "internal_error"
)

// ErrorResponse is the JSON body of every API error.
// Code lets clients branch without parsing Error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
