package utils

import "testing"

type extractionDoc struct {
	Found bool   `json:"found"`
	Value string `json:"value"`
}

func TestParseAIJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFound bool
		wantValue string
		wantErr   bool
	}{
		{
			name:      "pure JSON",
			input:     `{"found": true, "value": "bar"}`,
			wantFound: true,
			wantValue: "bar",
		},
		{
			name:      "json code fence",
			input:     "```json\n{\"found\": true, \"value\": \"restaurant\"}\n```",
			wantFound: true,
			wantValue: "restaurant",
		},
		{
			name:      "bare code fence",
			input:     "```\n{\"found\": false, \"value\": \"\"}\n```",
			wantFound: false,
			wantValue: "",
		},
		{
			name:      "surrounding prose",
			input:     `Sure! Here is the result: {"found": true, "value": "cafe"} Hope that helps.`,
			wantFound: true,
			wantValue: "cafe",
		},
		{
			name:      "braces inside string values",
			input:     `{"found": true, "value": "a {weird} name"}`,
			wantFound: true,
			wantValue: "a {weird} name",
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "no JSON at all",
			input:   "I could not find anything.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc extractionDoc
			err := ParseAIJSON(tt.input, &doc)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAIJSON error: %v", err)
			}
			if doc.Found != tt.wantFound || doc.Value != tt.wantValue {
				t.Errorf("got {found:%v value:%q}, want {found:%v value:%q}",
					doc.Found, doc.Value, tt.wantFound, tt.wantValue)
			}
		})
	}
}
