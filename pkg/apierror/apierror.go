package apierror

import "fmt"

// APIError is a coded error surfaced to the user. Upstream is the raw
// message reported by the workday API, when one was present.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Upstream   string `json:"upstream,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Upstream != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Upstream)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, upstream string, status int) *APIError {
	return &APIError{Code: code, Message: message, Upstream: upstream, HTTPStatus: status}
}

// UserMessage is the string shown in page banners: the upstream message
// when the API provided one, otherwise the canned message.
func (e *APIError) UserMessage() string {
	if e == nil {
		return ""
	}
	if e.Upstream != "" {
		return e.Upstream
	}
	return e.Message
}
