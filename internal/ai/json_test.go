package ai

import "testing"

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"surrounding prose", "Here you go:\n```json\n{\"a\":1}\n```\nDone.", `{"a":1}`, true},
		{"nested braces", `text {"a":{"b":2}} trailing`, `{"a":{"b":2}}`, true},
		{"brace in string", `{"a":"x } y"}`, `{"a":"x } y"}`, true},
		{"escaped quote", `{"a":"say \" } fine"}`, `{"a":"say \" } fine"}`, true},
		{"no object", "sorry, I cannot help with that", "", false},
		{"unbalanced", `{"a":1`, "", false},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := ExtractJSON(tc.in)
			if found != tc.found {
				t.Fatalf("found = %v, want %v", found, tc.found)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
