package predict

import (
	"errors"
	"fmt"

	"github.com/Sayan30092004/load-main/internal/model"
)

// Sentinel errors, one per failure kind. Match with errors.Is.
var (
	ErrNetwork        = errors.New("prediction service unreachable")
	ErrHTTPStatus     = errors.New("prediction service returned non-success status")
	ErrParse          = errors.New("malformed prediction response")
	ErrRegionMismatch = errors.New("prediction response is for a different region")
)

// Error is a failed prediction call.
type Error struct {
	Err        error
	Kind       model.ErrorKind
	StatusCode int
}

func (e *Error) Error() string {
	switch e.Kind {
	case model.ErrorKindHTTP:
		if e.Err != nil {
			return fmt.Sprintf("%s: %d: %v", e.sentinel(), e.StatusCode, e.Err)
		}
		return fmt.Sprintf("%s: %d", e.sentinel(), e.StatusCode)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.sentinel(), e.Err)
		}
		return e.sentinel().Error()
	}
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Err}
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case model.ErrorKindNetwork:
		return ErrNetwork
	case model.ErrorKindHTTP:
		return ErrHTTPStatus
	case model.ErrorKindValidation:
		return ErrRegionMismatch
	default:
		return ErrParse
	}
}

// Describe converts any error into the structured form recorded in workflow state.
// Errors that did not come from this package are reported as network failures.
func Describe(err error) model.ErrorInfo {
	var perr *Error
	if errors.As(err, &perr) {
		info := model.ErrorInfo{
			Kind:       perr.Kind,
			StatusCode: perr.StatusCode,
			Message:    err.Error(),
		}
		return info
	}
	return model.ErrorInfo{
		Kind:    model.ErrorKindNetwork,
		Message: err.Error(),
	}
}

func networkError(err error) error {
	return &Error{Kind: model.ErrorKindNetwork, Err: err}
}

func statusError(code int, body string) error {
	var cause error
	if body != "" {
		cause = errors.New(body)
	}
	return &Error{Kind: model.ErrorKindHTTP, StatusCode: code, Err: cause}
}

func parseError(err error) error {
	return &Error{Kind: model.ErrorKindParse, Err: err}
}

// MismatchError reports a response whose region differs from the requested one.
func MismatchError(requested, got string) error {
	return &Error{
		Kind: model.ErrorKindValidation,
		Err:  fmt.Errorf("requested %q, got %q", requested, got),
	}
}
