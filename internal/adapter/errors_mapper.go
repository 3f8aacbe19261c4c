package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var statusSentinels = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusRequestTimeout:      ErrRequestTimeout,
	http.StatusConflict:            ErrConflict,
	http.StatusUnprocessableEntity: ErrUnprocessable,
	http.StatusTooManyRequests:     ErrTooManyRequests,
}

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	statusErr := NewStatusError(code, "")

	body := strings.TrimSpace(string(resp.Body()))
	var parsed struct {
		Message         string   `json:"message"`
		DistanceFromBin *float64 `json:"distanceFromBin"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err == nil && parsed.Message != "" {
		statusErr.Message = parsed.Message
		statusErr.DistanceFromBin = parsed.DistanceFromBin
	} else if body != "" {
		statusErr.Message = body
	} else {
		statusErr.Message = http.StatusText(code)
	}

	return statusErr
}
