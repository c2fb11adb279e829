package gommt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// keyMaxAge is how long a cached batch public key counts as fresh.
// Past this age a verification triggers a best-effort refresh.
const keyMaxAge = time.Hour

// CallbackResult is the verified payload of a batch-translation
// callback: the translation data plus the metadata echoed back from
// the original submission.
type CallbackResult struct {
	Data     TranslationResult
	Metadata map[string]any
}

// callbackBody mirrors the wire shape of a batch callback.
type callbackBody struct {
	Result struct {
		Status int             `json:"status"`
		Data   json.RawMessage `json:"data"`
		Error  *apiErrorBody   `json:"error"`
	} `json:"result"`
	Metadata map[string]any `json:"metadata"`
}

// HandleCallback verifies a signed batch-translation callback and
// returns its embedded translation payload.
//
// The signature is an RS256 token issued by the API and checked
// against the batch public key. The key is fetched on first use (a
// failure there is fatal) and refreshed best-effort once older than
// keyMaxAge; a failed refresh falls back to the stale key. A signature
// that does not verify fails with ErrInvalidSignature and no payload
// is returned.
func (c *Client) HandleCallback(ctx context.Context, body []byte, signature string) (*CallbackResult, error) {
	key, fetchedAt, ok, err := c.keys.Get(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read key cache")
	}
	if !ok {
		if key, err = c.refreshPublicKey(ctx); err != nil {
			return nil, err
		}
	} else if time.Since(fetchedAt) > keyMaxAge {
		if fresh, err := c.refreshPublicKey(ctx); err != nil {
			log.Warn().Err(err).Msg("batch public key refresh failed, verifying with stale key")
		} else {
			key = fresh
		}
	}

	if err := verifySignature(signature, key); err != nil {
		return nil, err
	}

	var cb callbackBody
	if err := json.Unmarshal(normalizeBody(body), &cb); err != nil {
		return nil, errors.Wrap(err, "decode callback body")
	}

	if cb.Result.Error != nil {
		return nil, &Error{
			Status:   cb.Result.Status,
			Type:     cb.Result.Error.Type,
			Message:  cb.Result.Error.Message,
			Metadata: cb.Metadata,
		}
	}

	data, err := newTranslationResult(cb.Result.Data)
	if err != nil {
		return nil, errors.Wrap(err, "decode callback result")
	}
	return &CallbackResult{Data: data, Metadata: cb.Metadata}, nil
}

// refreshPublicKey fetches the batch public key and stores it in the
// key cache stamped with the current time. A cache write failure does
// not fail the fetch: the fresh key is still usable for this call.
func (c *Client) refreshPublicKey(ctx context.Context) ([]byte, error) {
	raw, err := c.send(ctx, "get", "/translate/batch/key", nil, nil, nil)
	if err != nil {
		return nil, err
	}

	var res struct {
		PublicKey string `json:"publicKey"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, errors.Wrap(err, "decode key response")
	}
	key, err := base64.StdEncoding.DecodeString(res.PublicKey)
	if err != nil {
		return nil, errors.Wrap(err, "decode public key")
	}

	if err := c.keys.Set(ctx, key, time.Now()); err != nil {
		log.Warn().Err(err).Msg("failed to store batch public key in cache")
	}
	return key, nil
}

// verifySignature checks the RS256 callback token against the cached
// PEM public key. Any failure here means the payload is
// unauthenticated.
func verifySignature(signature string, pemKey []byte) error {
	pub, err := jwt.ParseRSAPublicKeyFromPEM(pemKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	_, err = jwt.Parse(signature, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return pub, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return nil
}

// normalizeBody unwraps a callback body that was delivered as a
// JSON-encoded string instead of a plain JSON object.
func normalizeBody(body []byte) []byte {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return []byte(s)
		}
	}
	return body
}
