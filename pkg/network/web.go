package network

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// HttpRequestClient posts JSON bodies to a single endpoint and decodes JSON
// responses into T.
type HttpRequestClient[T any] struct {
	hc *http.Client
	u  *url.URL
	l  *log.Logger
}

func NewHttpRequestClient[T any](u *url.URL, logger *log.Logger) (*HttpRequestClient[T], error) {
	if u == nil {
		return nil, errors.New("url cannot be nil")
	}

	// Model calls can take minutes; callers bound them with a context.
	hc := &http.Client{Timeout: 0}

	return &HttpRequestClient[T]{
		hc: hc,
		u:  u,
		l:  logger,
	}, nil
}

// PreparePost prepares a body for a POST request, then returns a function that
// executes that POST request.
func (h HttpRequestClient[T]) PreparePost(body any) (func(context.Context) (T, error), error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare http request body")
	}

	return func(ctx context.Context) (T, error) {
		var v T

		req, err := http.NewRequestWithContext(
			ctx, http.MethodPost, h.u.String(),
			bytes.NewReader(b),
		)
		if err != nil {
			return v, errors.Wrap(err, "failed to create request")
		}

		req.Header.Set("Content-Type", "application/json")

		h.l.Debugf("POST %s (%d bytes)", h.u, len(b))

		res, err := h.hc.Do(req)
		if err != nil {
			return v, errors.Wrap(err, "failed to send request")
		}

		defer res.Body.Close()

		resBody, err := io.ReadAll(res.Body)
		if err != nil {
			return v, errors.Wrap(err, "failed to read response body")
		}

		if res.StatusCode < 200 || res.StatusCode > 299 {
			return v, errors.Errorf(
				"unexpected status %s: %s",
				res.Status,
				bytes.TrimSpace(resBody),
			)
		}

		err = json.Unmarshal(resBody, &v)
		if err != nil {
			return v, errors.Wrap(err, "failed to unmarshal response body")
		}

		return v, nil
	}, nil
}
