package matcher

import "testing"

func TestDefaultPreprocess(t *testing.T) {
	fn := DefaultPreprocess(DefaultStopwords)
	cases := []struct {
		in   string
		want string
	}{
		{"Apple Inc.", "apple"},
		{"  Apple   Computer  ", "apple computer"},
		{"O'Reilly Media, LLC", "oreilly media"},
		{"ACME Corp", "acme"},
		{"Ltd", ""},
		{"Café Müller GmbH", "café müller gmbh"},
		{"3M Company", "3m"},
	}
	for _, tc := range cases {
		if got := fn(tc.in); got != tc.want {
			t.Fatalf("preprocess(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDefaultPreprocessCustomStopwords(t *testing.T) {
	fn := DefaultPreprocess([]string{"gmbh"})
	if got := fn("Müller GmbH Ltd"); got != "müller ltd" {
		t.Fatalf("preprocess = %q, want %q", got, "müller ltd")
	}
	// Empty stopword list keeps every word.
	keepAll := DefaultPreprocess(nil)
	if got := keepAll("Apple Inc"); got != "apple inc" {
		t.Fatalf("preprocess = %q, want %q", got, "apple inc")
	}
}
