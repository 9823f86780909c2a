package redact_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zoombee/equation-api/internal/redact"
)

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		omits    []string
		contains []string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "plain message untouched",
			input: "equation must contain exactly one equality sign",
			want:  "equation must contain exactly one equality sign",
		},
		{
			name:  "quoted fragment",
			input: `rejected input '2+2; rm -rf'`,
			omits: []string{"rm -rf"},
		},
		{
			name:     "double quoted fragment",
			input:    `rejected input "exec('x')"`,
			omits:    []string{"exec"},
			contains: []string{redact.RedactedInputPlaceholder},
		},
		{
			name:     "backtick quoted fragment",
			input:    "rejected input `rm -rf /`",
			omits:    []string{"rm -rf"},
			contains: []string{redact.RedactedInputPlaceholder},
		},
		{
			name:     "quote pairs redacted independently",
			input:    `first 'aaa' then "bbb" tail`,
			omits:    []string{"aaa", "bbb"},
			contains: []string{"first", "then", "tail"},
		},
		{
			name:  "dunder identifier",
			input: "disallowed name __import__ in input",
			omits: []string{"__import__"},
		},
		{
			name:  "attribute access chain",
			input: "disallowed pattern x.__class__.__bases__",
			omits: []string{"__class__", "bases"},
		},
		{
			name:  "code keyword",
			input: "input mentions eval somewhere",
			omits: []string{"eval"},
		},
		{
			name:     "overlong token",
			input:    "rejected " + strings.Repeat("A", 80),
			omits:    []string{strings.Repeat("A", 80)},
			contains: []string{redact.RedactedInputPlaceholder},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := redact.String(tc.input)
			if tc.want != "" || tc.input == "" {
				assert.Equal(t, tc.want, got)
			}
			for _, s := range tc.omits {
				assert.NotContains(t, got, s)
			}
			for _, s := range tc.contains {
				assert.Contains(t, got, s)
			}
		})
	}
}

func TestError(t *testing.T) {
	assert.Equal(t, "", redact.Error(nil))

	err := errors.New("unsafe fragment __globals__ rejected")
	assert.NotContains(t, redact.Error(err), "__globals__")
}
