package gommt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// envelope is the fixed response wrapper used by every API endpoint.
// The error fields are pointers so a present-but-incomplete error
// object is distinguishable from a complete one.
type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *struct {
		Type    *string `json:"type"`
		Message *string `json:"message"`
	} `json:"error"`
}

type apiErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// send issues one API call. Every call goes out as an HTTP POST; the
// logical verb travels in the X-HTTP-Method-Override header. The body
// is JSON unless files are attached, in which case it is a multipart
// form carrying both the data fields and the named file streams.
func (c *Client) send(ctx context.Context, method, endpoint string, data map[string]any, files map[string]io.Reader, extra map[string]string) (json.RawMessage, error) {
	var body io.Reader
	contentType := ""

	if files == nil {
		if data != nil {
			payload, err := json.Marshal(data)
			if err != nil {
				return nil, errors.Wrap(err, "encode request body")
			}
			body = bytes.NewReader(payload)
			contentType = "application/json"
		}
	} else {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for k, v := range data {
			if err := writeFormValue(w, k, v); err != nil {
				return nil, errors.Wrap(err, "encode form field")
			}
		}
		for name, r := range files {
			part, err := w.CreateFormFile(name, name)
			if err != nil {
				return nil, errors.Wrap(err, "create form file")
			}
			if _, err := io.Copy(part, r); err != nil {
				return nil, errors.Wrap(err, "copy file content")
			}
		}
		if err := w.Close(); err != nil {
			return nil, errors.Wrap(err, "finalize form body")
		}
		body = &buf
		contentType = w.FormDataContentType()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	// The base header set is immutable; each call works on its own copy
	// so concurrent calls with different extra headers cannot race.
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("X-HTTP-Method-Override", method)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode != http.StatusOK {
		// An error object missing either field counts as malformed and
		// falls back to the defaults, same as an undecodable body.
		errType, errMsg := "UnknownException", string(raw)
		if decodeErr == nil && env.Error != nil && env.Error.Type != nil && env.Error.Message != nil {
			errType, errMsg = *env.Error.Type, *env.Error.Message
		}
		log.Error().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Str("type", errType).
			Msg("unsuccessful response from ModernMT API")
		return nil, &Error{Status: resp.StatusCode, Type: errType, Message: errMsg}
	}

	if decodeErr != nil {
		return nil, errors.Wrap(decodeErr, "decode response body")
	}
	return env.Data, nil
}

// writeFormValue writes one data field into a multipart form. Slice
// values become repeated fields, everything else is stringified.
func writeFormValue(w *multipart.Writer, key string, v any) error {
	switch val := v.(type) {
	case []string:
		for _, el := range val {
			if err := w.WriteField(key, el); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, el := range val {
			if err := w.WriteField(key, fmt.Sprint(el)); err != nil {
				return err
			}
		}
		return nil
	default:
		return w.WriteField(key, fmt.Sprint(val))
	}
}
