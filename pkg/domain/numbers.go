package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Keywords accepted in place of a number.
const (
	KeywordAutocalculate = "Autocalculate"
	KeywordAutosize      = "Autosize"
	KeywordNoLimit       = "NoLimit"
)

// NumberOr is a number that may be replaced by a keyword object such as
// {"type": "Autocalculate"} or {"type": "NoLimit"}.
type NumberOr struct {
	Value   *float64
	Keyword string
}

// Number wraps a literal value.
func Number(v float64) *NumberOr { return &NumberOr{Value: &v} }

// Keyword wraps a keyword in place of a number.
func Keyword(k string) *NumberOr { return &NumberOr{Keyword: k} }

// Float returns the literal value, if any.
func (n *NumberOr) Float() (float64, bool) {
	if n == nil || n.Value == nil {
		return 0, false
	}
	return *n.Value, true
}

// MarshalJSON writes the literal value or the keyword object.
func (n NumberOr) MarshalJSON() ([]byte, error) {
	if n.Value != nil {
		return json.Marshal(*n.Value)
	}
	return json.Marshal(struct {
		Type string `json:"type"`
	}{Type: n.Keyword})
}

// UnmarshalJSON accepts a number, a keyword object, or a bare keyword string.
func (n *NumberOr) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*n = NumberOr{}
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return nil
	case trimmed[0] == '{':
		var obj struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		n.Keyword = obj.Type
		return nil
	case trimmed[0] == '"':
		return json.Unmarshal(trimmed, &n.Keyword)
	}
	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return fmt.Errorf("expected number or keyword: %w", err)
	}
	n.Value = &v
	return nil
}
