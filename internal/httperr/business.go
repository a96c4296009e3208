package httperr

import "errors"

const (
	CodePasswordMismatch   = "password_mismatch"
	CodeEmailTaken         = "email_taken"
	CodeInvalidRole        = "invalid_role"
	CodeUserNotFound       = "user_not_found"
	CodeInvalidCredentials = "invalid_credentials"
	CodeReferenceViolation = "reference_violation"
	CodeNotFound           = "not_found"
	CodeInvalidInput       = "invalid_input"
)

type BusinessError struct {
	Code string
	// Detail carries the underlying cause when it is worth showing.
	Detail string
}

func (e BusinessError) Error() string {
	if e.Detail != "" {
		return e.Code + ": " + e.Detail
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessDetail(code, detail string) error {
	return BusinessError{Code: code, Detail: detail}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Detail returns the detail of a business error, or err's text otherwise.
func Detail(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Detail
	}
	return err.Error()
}
