package openai

import "testing"

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New("", ""); err == nil {
		t.Fatalf("expected error for empty api key")
	}
}

func TestNewDefaultModel(t *testing.T) {
	p, err := New("sk-test", "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if p.ModelID() != DefaultModel {
		t.Fatalf("ModelID = %q, want %q", p.ModelID(), DefaultModel)
	}
	if p.Dimensions() != 1536 {
		t.Fatalf("Dimensions = %d, want 1536", p.Dimensions())
	}
}

func TestDimensionsByModel(t *testing.T) {
	cases := []struct {
		model string
		want  int
	}{
		{"text-embedding-3-large", 3072},
		{"text-embedding-3-small", 1536},
		{"text-embedding-ada-002", 1536},
		{"some-custom-model", 0},
	}
	for _, tc := range cases {
		p, err := New("sk-test", tc.model)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", tc.model, err)
		}
		if p.Dimensions() != tc.want {
			t.Fatalf("Dimensions(%q) = %d, want %d", tc.model, p.Dimensions(), tc.want)
		}
	}
}
