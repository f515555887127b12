package idp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ApiError is a non-2xx response from the identity provider.
type ApiError struct {
	Status int
	Msg    string
}

func (e *ApiError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("provider returned status %d", e.Status)
	}
	return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Msg)
}

// IsNotFound reports whether the given error is a provider 404 response.
func IsNotFound(err error) bool {
	var apiErr *ApiError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsAlreadyRegistered reports whether the provider rejected a sign-up because
// the email address is already taken.
func IsAlreadyRegistered(err error) bool {
	var apiErr *ApiError
	if !errors.As(err, &apiErr) {
		return false
	}
	return strings.Contains(strings.ToLower(apiErr.Msg), "already registered") ||
		strings.Contains(strings.ToLower(apiErr.Msg), "already been registered")
}

// errorBody covers the different error formats the provider API emits.
type errorBody struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func parseApiError(resp *http.Response) error {
	apiErr := &ApiError{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		apiErr.Msg = strings.TrimSpace(string(data))
		return apiErr
	}

	switch {
	case body.Msg != "":
		apiErr.Msg = body.Msg
	case body.Message != "":
		apiErr.Msg = body.Message
	case body.ErrorDescription != "":
		apiErr.Msg = body.ErrorDescription
	default:
		apiErr.Msg = body.Error
	}

	return apiErr
}
