package gommt

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Options is a loose bag of optional request parameters. Every
// operation recognizes a fixed set of keys; anything outside that set
// is silently ignored and never reaches the outgoing request.
type Options map[string]any

// Recognized option keys per operation.
var (
	translateOptionKeys = []string{
		"hints", "context_vector", "priority", "project_id", "multiline",
		"timeout", "format", "alt_translations", "session",
		"ignore_glossary_case", "glossaries", "mask_profanities",
	}
	batchTranslateOptionKeys = []string{
		"hints", "context_vector", "project_id", "multiline", "format",
		"alt_translations", "session", "ignore_glossary_case",
		"glossaries", "mask_profanities", "metadata",
	}
	detectOptionKeys            = []string{"format"}
	contextVectorOptionKeys     = []string{"hints", "limit"}
	contextVectorFileOptionKeys = []string{"hints", "limit", "compression"}
	memoryCreateOptionKeys      = []string{"description", "external_id"}
	memoryEditOptionKeys        = []string{"name", "description"}
	contentAddOptionKeys        = []string{"tuid", "session"}
	importOptionKeys            = []string{"compression"}
)

// idempotencyKeyOption is recognized on batch translate only and
// travels as the x-idempotency-key header, never as a body field.
const idempotencyKeyOption = "idempotency_key"

// IdempotencyKey returns a random key suitable for the idempotency_key
// option of BatchTranslate.
func IdempotencyKey() string {
	return uuid.NewString()
}

// apply copies the recognized keys of the bag into the parameter map.
func (o Options) apply(params map[string]any, keys ...string) {
	for _, k := range keys {
		v, ok := o[k]
		if !ok {
			continue
		}
		if k == "hints" {
			v = joinHints(v)
		}
		params[k] = v
	}
}

// mergeOptions collapses a variadic option list into a single bag,
// later bags overriding earlier ones on key collision.
func mergeOptions(opts []Options) Options {
	switch len(opts) {
	case 0:
		return nil
	case 1:
		return opts[0]
	}
	merged := make(Options)
	for _, o := range opts {
		for k, v := range o {
			merged[k] = v
		}
	}
	return merged
}

// toString renders an option value for use in a header or form field.
func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// joinHints serializes a hints value: ordered sequences are
// comma-joined, scalars pass through unchanged. Hints are usually
// memory identifiers, so numeric slices are accepted too.
func joinHints(v any) any {
	switch h := v.(type) {
	case []string:
		return strings.Join(h, ",")
	case []int:
		parts := make([]string, len(h))
		for i, el := range h {
			parts[i] = fmt.Sprint(el)
		}
		return strings.Join(parts, ",")
	case []int64:
		parts := make([]string, len(h))
		for i, el := range h {
			parts[i] = fmt.Sprint(el)
		}
		return strings.Join(parts, ",")
	case []any:
		parts := make([]string, len(h))
		for i, el := range h {
			parts[i] = fmt.Sprint(el)
		}
		return strings.Join(parts, ",")
	default:
		return v
	}
}
