package textutil

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "lowercases and splits on punctuation",
			input:  "Budget Hotels, in Rome!",
			expect: []string{"budget", "hotels", "rome"},
		},
		{
			name:   "drops short and numeric tokens",
			input:  "a 5-day trip to 42 cities",
			expect: []string{"day", "trip", "cities"},
		},
		{
			name:   "empty input",
			input:  "",
			expect: nil,
		},
		{
			name:   "only noise",
			input:  "!! 12 a b ##",
			expect: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.expect) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestKeywordsRemovesStopwords(t *testing.T) {
	t.Parallel()

	keywords := Keywords("Plan the trip with all these documents")

	if _, ok := keywords["the"]; ok {
		t.Fatalf("expected stopword 'the' to be removed")
	}
	if _, ok := keywords["with"]; ok {
		t.Fatalf("expected stopword 'with' to be removed")
	}
	if _, ok := keywords["plan"]; !ok {
		t.Fatalf("expected 'plan' to be kept")
	}
	if _, ok := keywords["trip"]; !ok {
		t.Fatalf("expected 'trip' to be kept")
	}
	if _, ok := keywords["documents"]; !ok {
		t.Fatalf("expected 'documents' to be kept")
	}
}

func TestKeywordsEmptyInput(t *testing.T) {
	t.Parallel()

	if got := Keywords(""); len(got) != 0 {
		t.Fatalf("expected empty keyword set, got %v", got)
	}
}
