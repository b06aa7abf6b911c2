package domain

import (
	"encoding/json"
	"testing"
)

func TestNumberOrDecodesEveryForm(t *testing.T) {
	cases := map[string]struct {
		value   float64
		isValue bool
		keyword string
	}{
		`0.5`:                       {value: 0.5, isValue: true},
		`{"type": "Autocalculate"}`: {keyword: KeywordAutocalculate},
		`"NoLimit"`:                 {keyword: KeywordNoLimit},
		`null`:                      {},
	}
	for raw, want := range cases {
		var n NumberOr
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			t.Fatalf("%s: %v", raw, err)
		}
		v, ok := n.Float()
		if ok != want.isValue || v != want.value || n.Keyword != want.keyword {
			t.Errorf("%s: got value=%v ok=%v keyword=%q", raw, v, ok, n.Keyword)
		}
	}
	var n NumberOr
	if err := json.Unmarshal([]byte(`[1]`), &n); err == nil {
		t.Fatal("expected an array to be rejected")
	}
}

func TestNumberOrEncodesKeywordAsObject(t *testing.T) {
	data, err := json.Marshal(struct {
		A *NumberOr `json:"a"`
		B *NumberOr `json:"b"`
	}{A: Number(2), B: Keyword(KeywordAutosize)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"a":2,"b":{"type":"Autosize"}}` {
		t.Fatalf("unexpected encoding %s", data)
	}
	var nilNumber *NumberOr
	if _, ok := nilNumber.Float(); ok {
		t.Fatal("nil number must report no value")
	}
}
