package authapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error carries the server's detail message for a non-2xx response, so the
// caller can show it unchanged.
type Error struct {
	StatusCode int    `json:"-"`
	Detail     string `json:"detail"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("http error %d: %s", e.StatusCode, e.Detail)
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading error response body: %w", err)
	}

	typedError := new(Error)
	if err := json.Unmarshal(body, typedError); err != nil || typedError.Detail == "" {
		detail := strings.TrimSpace(string(body))
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return &Error{StatusCode: resp.StatusCode, Detail: detail}
	}

	typedError.StatusCode = resp.StatusCode
	return typedError
}
