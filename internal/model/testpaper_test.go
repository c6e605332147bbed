package model

import (
	"encoding/json"
	"testing"
)

func TestOptionListPreservesOrder(t *testing.T) {
	// Member order in the document is the display order; it must survive
	// a decode/encode round trip even when keys are not sorted.
	doc := `{"c":"Charlie","a":"Alpha","d":"Delta","b":"Bravo"}`

	var l OptionList
	if err := json.Unmarshal([]byte(doc), &l); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	wantKeys := []string{"c", "a", "d", "b"}
	if len(l) != len(wantKeys) {
		t.Fatalf("len = %d, want %d", len(l), len(wantKeys))
	}
	for i, k := range wantKeys {
		if l[i].Key != k {
			t.Fatalf("option %d key = %q, want %q", i, l[i].Key, k)
		}
	}

	out, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != doc {
		t.Fatalf("Marshal = %s, want %s", out, doc)
	}
}

func TestOptionListLookup(t *testing.T) {
	l := OptionList{{Key: "a", Text: "Alpha"}, {Key: "b", Text: "Bravo"}}

	if text, ok := l.Get("b"); !ok || text != "Bravo" {
		t.Fatalf("Get(b) = %q, %t", text, ok)
	}
	if l.Has("z") {
		t.Fatal("Has(z) = true")
	}
}

func TestOptionListRejectsNonObject(t *testing.T) {
	var l OptionList
	if err := json.Unmarshal([]byte(`["a","b"]`), &l); err == nil {
		t.Fatal("array decoded without error")
	}
}

func TestTimeLimitSeconds(t *testing.T) {
	cases := []struct {
		minutes, want int
	}{
		{0, NoTimeLimit},
		{-5, NoTimeLimit},
		{1, 60},
		{90, 5400},
	}
	for _, c := range cases {
		p := TestPaper{TimeLimitMinutes: c.minutes}
		if got := p.TimeLimitSeconds(); got != c.want {
			t.Fatalf("TimeLimitSeconds(%d) = %d, want %d", c.minutes, got, c.want)
		}
	}
}

func TestFormatAccuracy(t *testing.T) {
	cases := []struct {
		correct, total int
		want           string
	}{
		{1, 3, "33.33"},
		{0, 3, "0.00"},
		{3, 3, "100.00"},
		{2, 3, "66.67"},
		{0, 0, "0.00"},
		{1, -1, "0.00"},
	}
	for _, c := range cases {
		if got := FormatAccuracy(c.correct, c.total); got != c.want {
			t.Fatalf("FormatAccuracy(%d,%d) = %q, want %q", c.correct, c.total, got, c.want)
		}
	}
}

func TestBuildAnswerKey(t *testing.T) {
	key := BuildAnswerKey([]AnswerKeyEntry{
		{ID: "q1", Answer: "a"},
		{ID: "q2", Answer: "c", Explanation: "see chapter 2"},
	})
	if len(key) != 2 {
		t.Fatalf("len = %d, want 2", len(key))
	}
	if key["q2"].Explanation != "see chapter 2" {
		t.Fatalf("q2 = %+v", key["q2"])
	}
}
