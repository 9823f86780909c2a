// Package redact provides utilities for redacting user-supplied equation
// content from strings before they are logged or returned in error responses.
// Untrusted input must never be echoed verbatim: a rejected payload can carry
// code fragments, and reflecting them back would hand an attacker an oracle
// for probing the input gate.
package redact

import (
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedInputPlaceholder      = "[REDACTED_INPUT]"
	RedactedCodePlaceholder       = "[REDACTED_CODE]"
	RedactedIdentifierPlaceholder = "[REDACTED_IDENTIFIER]"
)

// Precompiled regex patterns
var (
	// Quoted fragments: anything the user wrapped in quotes is verbatim input.
	quotedRegex = regexp.MustCompile(`'[^']*'|"[^"]*"|` + "`[^`]*`")

	// Dunder names and attribute access, the classic injection shapes.
	dunderRegex    = regexp.MustCompile(`__[A-Za-z0-9_]*(__)?`)
	attributeRegex = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*(\s*\.\s*[A-Za-z_][A-Za-z0-9_]*)+`)

	// Call-like identifiers outside the recognized math vocabulary.
	codeWordRegex = regexp.MustCompile(
		`(?i)\b(import|exec|eval|compile|open|system|subprocess|os|sys|builtins|globals|locals|getattr|setattr|lambda)\b`,
	)

	// Overlong unbroken sequences are payloads, not equations.
	longTokenRegex = regexp.MustCompile(`[^\s=]{64,}`)

	patterns = []*regexp.Regexp{
		quotedRegex, dunderRegex, attributeRegex, codeWordRegex, longTokenRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		quotedRegex:    RedactedInputPlaceholder,
		dunderRegex:    RedactedIdentifierPlaceholder,
		attributeRegex: RedactedIdentifierPlaceholder,
		codeWordRegex:  RedactedCodePlaceholder,
		longTokenRegex: RedactedInputPlaceholder,
	}
)

// String redacts user-supplied content from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		placeholder := RedactionPlaceholder
		if ph, ok := patternPlaceholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}

	return result
}

// Error redacts user-supplied content from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
