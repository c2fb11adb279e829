package gommt

import (
	"bytes"
	"encoding/json"
	"time"
)

// The structs below are the value objects returned by the API. Their
// field sets are the per-type allow-lists: the json tags name exactly
// the wire fields that are kept, every other field in a payload is
// dropped during decoding. Optional fields are pointers or nilable
// slices so that "absent" stays distinguishable from a zero value.

// Translation is the result of a translate or batch-translate call.
type Translation struct {
	Translation      string   `json:"translation"`
	ContextVector    *string  `json:"contextVector,omitempty"`
	Characters       int64    `json:"characters"`
	BilledCharacters int64    `json:"billedCharacters"`
	DetectedLanguage *string  `json:"detectedLanguage,omitempty"`
	AltTranslations  []string `json:"altTranslations,omitempty"`
}

// DetectedLanguage is the result of a language-detection call.
type DetectedLanguage struct {
	BilledCharacters int64  `json:"billedCharacters"`
	DetectedLanguage string `json:"detectedLanguage"`
}

// Memory is a server-side translation memory.
type Memory struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description,omitempty"`
	CreationDate *time.Time `json:"creationDate,omitempty"`
}

// ImportJob is an asynchronous content or glossary import. Progress
// runs from 0 to 1; poll with MemoryServices.GetImportStatus.
type ImportJob struct {
	ID       string  `json:"id"`
	Memory   int64   `json:"memory"`
	Size     int64   `json:"size"`
	Progress float64 `json:"progress"`
}

// BillingPeriod is the current billing-period snapshot of an account.
type BillingPeriod struct {
	Begin           *time.Time `json:"begin,omitempty"`
	End             *time.Time `json:"end,omitempty"`
	Chars           int64      `json:"chars"`
	Plan            string     `json:"plan"`
	PlanDescription string     `json:"planDescription"`
	PlanForCatTool  bool       `json:"planForCatTool"`
	Amount          float64    `json:"amount"`
	Currency        string     `json:"currency"`
	CurrencySymbol  string     `json:"currencySymbol"`
}

// User is the account profile returned by Me.
type User struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	RegistrationDate *time.Time     `json:"registrationDate,omitempty"`
	Country          string         `json:"country"`
	IsBusiness       bool           `json:"isBusiness"`
	Status           string         `json:"status"`
	BillingPeriod    *BillingPeriod `json:"billingPeriod,omitempty"`
}

// QualityEstimation is a machine-judged quality score for a
// (source, target, sentence, translation) tuple.
type QualityEstimation struct {
	Score float64 `json:"score"`
}

// GlossaryTerm is a single entry of a glossary import request.
type GlossaryTerm struct {
	Term     string `json:"term"`
	Language string `json:"language"`
}

// TranslationResult holds the translation payload of a batch callback.
// The server returns a single object or an ordered list depending on
// how the batch was submitted; the shape of the response payload, not
// the original request, decides which variant is populated.
type TranslationResult struct {
	one  *Translation
	many []Translation
}

// Single returns the translation when the payload was a single object.
func (r TranslationResult) Single() (Translation, bool) {
	if r.one == nil {
		return Translation{}, false
	}
	return *r.one, true
}

// Many returns the translations when the payload was an ordered list.
func (r TranslationResult) Many() ([]Translation, bool) {
	if r.many == nil {
		return nil, false
	}
	return r.many, true
}

func newTranslationResult(raw json.RawMessage) (TranslationResult, error) {
	if isArray(raw) {
		var many []Translation
		if err := json.Unmarshal(raw, &many); err != nil {
			return TranslationResult{}, err
		}
		if many == nil {
			many = []Translation{}
		}
		return TranslationResult{many: many}, nil
	}

	var one Translation
	if err := json.Unmarshal(raw, &one); err != nil {
		return TranslationResult{}, err
	}
	return TranslationResult{one: &one}, nil
}

// isArray reports whether a raw JSON value is an array.
func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
