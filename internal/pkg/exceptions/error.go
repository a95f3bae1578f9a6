package exceptions

import (
	"errors"
	"fmt"
	"medibook-service/internal/pkg/constvars"
	"runtime"
)

// ErrorKind groups errors into the categories callers are allowed to branch on.
type ErrorKind string

const (
	KindValidation          ErrorKind = "validation"
	KindNotFound            ErrorKind = "not_found"
	KindUnauthorized        ErrorKind = "unauthorized"
	KindConflict            ErrorKind = "conflict"
	KindInvalidAppointment  ErrorKind = "invalid_appointment"
	KindPaymentNotCompleted ErrorKind = "payment_not_completed"
	KindExternalProvider    ErrorKind = "external_provider"
	KindCorrelationMismatch ErrorKind = "correlation_mismatch"
	KindInternal            ErrorKind = "internal"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	Kind          ErrorKind  `json:"kind,omitempty"`
	Err           error      `json:"-"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithKind overrides the kind derived from the status code.
func (e *CustomError) WithKind(kind ErrorKind) *CustomError {
	e.Kind = kind
	return e
}

// BuildNewCustomError records up to three caller frames starting at the site that
// invoked the error constructor.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		Success:       false,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     getLocations(3, 3),
		Kind:          kindFromStatus(statusCode),
		Err:           err,
	}
}

// KindOf returns the kind of the outermost CustomError in err's chain.
func KindOf(err error) ErrorKind {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

func kindFromStatus(statusCode int) ErrorKind {
	switch statusCode {
	case constvars.StatusBadRequest:
		return KindValidation
	case constvars.StatusUnauthorized, constvars.StatusForbidden:
		return KindUnauthorized
	case constvars.StatusNotFound:
		return KindNotFound
	case constvars.StatusConflict, constvars.StatusTooManyRequests:
		return KindConflict
	case constvars.StatusPaymentRequired:
		return KindPaymentNotCompleted
	case constvars.StatusBadGateway, constvars.StatusGatewayTimeout:
		return KindExternalProvider
	default:
		return KindInternal
	}
}

func getLocations(skip, depth int) []Location {
	pcs := make([]uintptr, depth)
	n := runtime.Callers(skip+1, pcs)
	if n == 0 {
		return []Location{{File: constvars.ResponseUnknown, FunctionName: constvars.ResponseUnknown}}
	}

	locations := make([]Location, 0, n)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		locations = append(locations, Location{
			File:         frame.File,
			Line:         frame.Line,
			FunctionName: frame.Function,
		})
		if !more {
			break
		}
	}
	return locations
}
