package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/custodia-labs/geosearch/internal/core/domain"
)

// maxBodySize caps how much of a response is read.
const maxBodySize = 8 << 20

// maxErrorBody caps the body kept on an HTTPError.
const maxErrorBody = 256

var errNotJSON = errors.New("body is not valid JSON")

// decodeJSON validates body and returns it as a raw JSON value.
func decodeJSON(body []byte) (json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if !json.Valid(body) {
		return nil, &domain.ParseError{Err: errNotJSON}
	}
	out := make(json.RawMessage, len(body))
	copy(out, body)
	return out, nil
}

func truncateBody(body []byte) string {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return string(body)
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
