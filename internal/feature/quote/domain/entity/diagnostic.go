package entity

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/buger/jsonparser"
)

// Diagnostic codes written by the quote provider into the "error" field.
const (
	DiagnosticMissingAPIKey = "missing_api_key"
	DiagnosticRequestFailed = "request_failed"
)

var errStopIteration = errors.New("stop iteration")

// Diagnostic is the raw JSON payload explaining a provider answer. It is either
// the provider's own response body or a small {"error": ..., "detail": ...}
// object describing why no body could be obtained.
type Diagnostic []byte

type errorPayload struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// NewErrorDiagnostic builds a diagnostic of the form {"error": code, "detail": detail}.
// detail is omitted when empty.
func NewErrorDiagnostic(code, detail string) Diagnostic {
	b, _ := json.Marshal(errorPayload{Error: code, Detail: detail})
	return b
}

// Reason はネガティブキャッシュに保存する短い理由を返します。
// "error" フィールドが偽でない値を持てばその値（文字列以外はJSON表記のまま）、
// なければトップレベルの最初のキー名、どちらもなければ "unknown" を返します。
func (d Diagnostic) Reason() string {
	if v, t, _, err := jsonparser.Get(d, "error"); err == nil && !Falsy(v, t) {
		if t != jsonparser.String {
			return string(v)
		}
		if s, err := jsonparser.ParseString(v); err == nil {
			return s
		}
		return string(v)
	}

	var (
		first string
		found bool
	)
	_ = jsonparser.ObjectEach(d, func(key, _ []byte, _ jsonparser.ValueType, _ int) error {
		first, found = string(key), true
		if s, err := jsonparser.ParseString(key); err == nil {
			first = s
		}
		return errStopIteration
	})
	if !found || first == "" {
		return UnknownReason
	}
	return first
}

// MarshalJSON embeds the payload verbatim.
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

func (d Diagnostic) String() string {
	return string(d)
}

// Falsy reports whether a JSON value is null, false, zero, "" or an empty container.
func Falsy(v []byte, t jsonparser.ValueType) bool {
	switch t {
	case jsonparser.Null, jsonparser.NotExist:
		return true
	case jsonparser.Boolean:
		return string(v) == "false"
	case jsonparser.Number:
		f, err := strconv.ParseFloat(string(v), 64)
		return err == nil && f == 0
	case jsonparser.String:
		return len(v) == 0
	case jsonparser.Array:
		n := 0
		_, _ = jsonparser.ArrayEach(v, func([]byte, jsonparser.ValueType, int, error) { n++ })
		return n == 0
	case jsonparser.Object:
		n := 0
		_ = jsonparser.ObjectEach(v, func([]byte, []byte, jsonparser.ValueType, int) error {
			n++
			return nil
		})
		return n == 0
	default:
		return false
	}
}
