package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnauthorized is returned for 401 responses so callers can force a
// re-login instead of showing the raw backend message.
var ErrUnauthorized = errors.New("gateway: unauthorized")

// APIError is a non-2xx backend response with its detail envelope already
// coalesced into one displayable string.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Display implements core.DisplayableError.
func (e *APIError) Display() string { return e.Message }

// detailEnvelope is the backend's error body: {"detail": ...} where detail
// may be a string, a list of {"msg": ...} objects, or an arbitrary object.
type detailEnvelope struct {
	Detail json.RawMessage `json:"detail"`
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return &APIError{Status: resp.StatusCode, Message: coalesceDetail(body, resp.Status)}
}

func coalesceDetail(body []byte, fallback string) string {
	var env detailEnvelope
	if err := json.Unmarshal(body, &env); err != nil || len(env.Detail) == 0 {
		return fallback
	}

	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(env.Detail, &items); err == nil && len(items) > 0 {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, ", ")
		}
	}

	// unknown object shape: show it as-is rather than hide it
	return string(env.Detail)
}
