package gommt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"

	"github.com/ZaguanLabs/gommt/cache"
)

// defaultBaseURL is the production API endpoint.
const defaultBaseURL = "https://api.modernmt.com"

// Client is a ModernMT API client. Use NewClient to create one; the
// zero value is not usable. A Client is safe for concurrent use.
type Client struct {
	apiKey          string
	platform        string
	platformVersion string
	apiClient       string

	baseURL    string
	headers    map[string]string // immutable after NewClient
	httpClient *http.Client
	keys       cache.KeyCache

	// Memories groups the translation-memory and glossary operations.
	Memories *MemoryServices
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithPlatform overrides the platform name and version reported to the
// API via the MMT-Platform and MMT-PlatformVersion headers.
func WithPlatform(name, version string) ClientOption {
	return func(c *Client) {
		c.platform = name
		c.platformVersion = version
	}
}

// WithAPIClient sets the optional MMT-ApiClient identification header.
func WithAPIClient(id string) ClientOption {
	return func(c *Client) {
		c.apiClient = id
	}
}

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithKeyCache sets the storage for the batch-callback signing key.
// The default is an in-process cache scoped to this client; use
// cache.Redis when several processes verify callbacks for the same
// API key.
func WithKeyCache(kc cache.KeyCache) ClientOption {
	return func(c *Client) {
		c.keys = kc
	}
}

// NewClient creates a ModernMT client authenticated with apiKey.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:          apiKey,
		platform:        Name,
		platformVersion: Version,
		baseURL:         defaultBaseURL,
		httpClient:      http.DefaultClient,
		keys:            cache.NewMemory(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.headers = map[string]string{
		"MMT-ApiKey":          c.apiKey,
		"MMT-Platform":        c.platform,
		"MMT-PlatformVersion": c.platformVersion,
		"User-Agent":          UserAgent(),
	}
	if c.apiClient != "" {
		c.headers["MMT-ApiClient"] = c.apiClient
	}

	c.Memories = &MemoryServices{client: c}
	return c
}

// ListSupportedLanguages returns the language codes the translation
// engine supports.
func (c *Client) ListSupportedLanguages(ctx context.Context) ([]string, error) {
	raw, err := c.send(ctx, "get", "/translate/languages", nil, nil, nil)
	if err != nil {
		return nil, err
	}
	var langs []string
	if err := json.Unmarshal(raw, &langs); err != nil {
		return nil, errors.Wrap(err, "decode languages")
	}
	return langs, nil
}

// DetectLanguage detects the language of a single text.
// Recognized options: format.
func (c *Client) DetectLanguage(ctx context.Context, q string, opts ...Options) (*DetectedLanguage, error) {
	data := map[string]any{"q": q}
	mergeOptions(opts).apply(data, detectOptionKeys...)

	raw, err := c.send(ctx, "get", "/translate/detect", data, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[DetectedLanguage](raw)
}

// DetectLanguages detects the language of each text in an ordered
// list. Recognized options: format.
func (c *Client) DetectLanguages(ctx context.Context, q []string, opts ...Options) ([]DetectedLanguage, error) {
	data := map[string]any{"q": q}
	mergeOptions(opts).apply(data, detectOptionKeys...)

	raw, err := c.send(ctx, "get", "/translate/detect", data, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeMany[DetectedLanguage](raw)
}

// Translate translates a single text into the target language. An
// empty source asks the engine to detect it. Recognized options:
// hints, context_vector, priority, project_id, multiline, timeout,
// format, alt_translations, session, ignore_glossary_case, glossaries,
// mask_profanities.
func (c *Client) Translate(ctx context.Context, source, target, q string, opts ...Options) (*Translation, error) {
	data := map[string]any{"target": target, "q": q}
	if source != "" {
		data["source"] = source
	}
	mergeOptions(opts).apply(data, translateOptionKeys...)

	raw, err := c.send(ctx, "get", "/translate", data, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[Translation](raw)
}

// TranslateMany translates an ordered list of texts into the target
// language. It recognizes the same options as Translate.
func (c *Client) TranslateMany(ctx context.Context, source, target string, q []string, opts ...Options) ([]Translation, error) {
	data := map[string]any{"target": target, "q": q}
	if source != "" {
		data["source"] = source
	}
	mergeOptions(opts).apply(data, translateOptionKeys...)

	raw, err := c.send(ctx, "get", "/translate", data, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeMany[Translation](raw)
}

// BatchTranslate enqueues an asynchronous translation. The result is
// not returned here: the API later delivers it to the webhook URL,
// where HandleCallback verifies and decodes it. The returned flag is
// the enqueue acknowledgment. Recognized options: hints,
// context_vector, project_id, multiline, format, alt_translations,
// session, ignore_glossary_case, glossaries, mask_profanities,
// metadata, idempotency_key (sent as the x-idempotency-key header).
func (c *Client) BatchTranslate(ctx context.Context, webhook, source, target string, q []string, opts ...Options) (bool, error) {
	data := map[string]any{"webhook": webhook, "target": target, "q": q}
	if source != "" {
		data["source"] = source
	}
	o := mergeOptions(opts)
	o.apply(data, batchTranslateOptionKeys...)

	var extra map[string]string
	if v, ok := o[idempotencyKeyOption]; ok {
		extra = map[string]string{"x-idempotency-key": toString(v)}
	}

	raw, err := c.send(ctx, "post", "/translate/batch", data, nil, extra)
	if err != nil {
		return false, err
	}
	var ack struct {
		Enqueued bool `json:"enqueued"`
	}
	if err := json.Unmarshal(raw, &ack); err != nil {
		return false, errors.Wrap(err, "decode batch acknowledgment")
	}
	return ack.Enqueued, nil
}

// GetContextVector computes a context vector for a single target
// language from raw text. It returns an empty string when the engine
// has no vector for the target. Recognized options: hints, limit.
func (c *Client) GetContextVector(ctx context.Context, source, target, text string, opts ...Options) (string, error) {
	vectors, err := c.GetContextVectors(ctx, source, []string{target}, text, opts...)
	if err != nil {
		return "", err
	}
	return vectors[target], nil
}

// GetContextVectors computes context vectors for several target
// languages from raw text, keyed by target. Recognized options:
// hints, limit.
func (c *Client) GetContextVectors(ctx context.Context, source string, targets []string, text string, opts ...Options) (map[string]string, error) {
	data := map[string]any{"source": source, "targets": targets, "text": text}
	mergeOptions(opts).apply(data, contextVectorOptionKeys...)

	raw, err := c.send(ctx, "get", "/context-vector", data, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeVectors(raw)
}

// GetContextVectorFromFile computes a context vector for a single
// target language from a document stream. Recognized options: hints,
// limit, compression.
func (c *Client) GetContextVectorFromFile(ctx context.Context, source, target string, content io.Reader, opts ...Options) (string, error) {
	vectors, err := c.GetContextVectorsFromFile(ctx, source, []string{target}, content, opts...)
	if err != nil {
		return "", err
	}
	return vectors[target], nil
}

// GetContextVectorsFromFile computes context vectors for several
// target languages from a document stream. Recognized options: hints,
// limit, compression.
func (c *Client) GetContextVectorsFromFile(ctx context.Context, source string, targets []string, content io.Reader, opts ...Options) (map[string]string, error) {
	data := map[string]any{"source": source, "targets": targets}
	mergeOptions(opts).apply(data, contextVectorFileOptionKeys...)

	raw, err := c.send(ctx, "get", "/context-vector", data, map[string]io.Reader{"content": content}, nil)
	if err != nil {
		return nil, err
	}
	return decodeVectors(raw)
}

// GetContextVectorFromPath is GetContextVectorFromFile reading from a
// file path; the file is closed whether the call succeeds or fails.
func (c *Client) GetContextVectorFromPath(ctx context.Context, source, target, path string, opts ...Options) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "open content file")
	}
	defer f.Close()
	return c.GetContextVectorFromFile(ctx, source, target, f, opts...)
}

// GetContextVectorsFromPath is GetContextVectorsFromFile reading from
// a file path; the file is closed whether the call succeeds or fails.
func (c *Client) GetContextVectorsFromPath(ctx context.Context, source string, targets []string, path string, opts ...Options) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open content file")
	}
	defer f.Close()
	return c.GetContextVectorsFromFile(ctx, source, targets, f, opts...)
}

// QualityEstimation scores the quality of a translation for a
// sentence in the given language pair.
func (c *Client) QualityEstimation(ctx context.Context, source, target, sentence, translation string) (*QualityEstimation, error) {
	data := map[string]any{
		"source":      source,
		"target":      target,
		"sentence":    sentence,
		"translation": translation,
	}

	raw, err := c.send(ctx, "get", "/translate/qe", data, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[QualityEstimation](raw)
}

// Me returns the account profile of the API key owner, including the
// current billing period.
func (c *Client) Me(ctx context.Context) (*User, error) {
	raw, err := c.send(ctx, "get", "/users/me", nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[User](raw)
}

// decodeOne decodes a payload expected to be a single object. When the
// server answers with a list anyway, the first element is returned:
// the response shape decides, not the request.
func decodeOne[T any](raw json.RawMessage) (*T, error) {
	if isArray(raw) {
		many, err := decodeMany[T](raw)
		if err != nil {
			return nil, err
		}
		if len(many) == 0 {
			return nil, errors.New("empty response payload")
		}
		return &many[0], nil
	}
	var one T
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, errors.Wrap(err, "decode response payload")
	}
	return &one, nil
}

// decodeMany decodes a payload expected to be a list. A single object
// becomes a one-element list, again following the response shape.
func decodeMany[T any](raw json.RawMessage) ([]T, error) {
	if !isArray(raw) {
		one, err := decodeOne[T](raw)
		if err != nil {
			return nil, err
		}
		return []T{*one}, nil
	}
	var many []T
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, errors.Wrap(err, "decode response payload")
	}
	return many, nil
}

func decodeVectors(raw json.RawMessage) (map[string]string, error) {
	var res struct {
		Vectors map[string]string `json:"vectors"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, errors.Wrap(err, "decode context vectors")
	}
	if res.Vectors == nil {
		res.Vectors = map[string]string{}
	}
	return res.Vectors, nil
}
