package llm

import (
	"encoding/json"
	"errors"
	"net/http"
)

// finish checks the schema and assembles the normalized response shared by
// all backends.
func finish(req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := checkSchema(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// classifyStatus maps an HTTP status from a backend SDK error to the
// package error types. Unknown statuses count as unavailability.
func classifyStatus(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// resolveModel maps a friendly alias to a model id, passing unknown names
// through unchanged.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}

func errNoContent(backend string) error {
	return &ErrInvalidResponse{Err: errors.New("no text content in " + backend + " response")}
}
