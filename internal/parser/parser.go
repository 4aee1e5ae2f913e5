package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
)

// DefaultLanguage is the dialect used when no language is configured and the
// source has no "# language:" header.
const DefaultLanguage = "en"

// ParseError is one malformed-structure error reported by the grammar engine.
type ParseError struct {
	URI      string
	Location Location
	Message  string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.URI, e.Location.Line, e.Location.Column, e.Message)
}

// Engine errors render as "(line:column): message", one per line.
var engineErrorPattern = regexp.MustCompile(`^\((\d+):(\d+)\): (.*)$`)

var languageHeaderPattern = regexp.MustCompile(`^\s*#\s*language\s*:\s*([a-zA-Z\-_]+)\s*$`)

// Parse parses a feature source into a GherkinDocument. Keywords are matched
// against the dialect for language unless the source declares its own.
// On failure the document is nil and every engine error is returned in order.
func Parse(uri string, content []byte, language string) (*GherkinDocument, []ParseError) {
	if language == "" {
		language = DefaultLanguage
	}
	if !SupportedLanguage(language) {
		return nil, []ParseError{{
			URI:      uri,
			Location: Location{Line: 1, Column: 1},
			Message:  fmt.Sprintf("language not supported: %s", language),
		}}
	}

	newID := (&messages.Incrementing{}).NewId
	tree, err := gherkin.ParseGherkinDocumentForLanguage(bytes.NewReader(content), language, newID)
	if err != nil {
		return nil, engineErrors(uri, err)
	}

	if declared, ok := declaredLanguage(content); ok {
		language = declared
	}
	return Transform(tree, uri, language), nil
}

// declaredLanguage returns the "# language:" header of content. The header
// only counts when it precedes everything but blank and comment lines.
func declaredLanguage(content []byte) (string, bool) {
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := languageHeaderPattern.FindStringSubmatch(trimmed); m != nil {
			return m[1], true
		}
		if !strings.HasPrefix(trimmed, "#") {
			return "", false
		}
	}
	return "", false
}

// SupportedLanguage reports whether the dialect table knows the language code.
func SupportedLanguage(code string) bool {
	return gherkin.DialectsBuiltin().GetDialect(code) != nil
}

func engineErrors(uri string, err error) []ParseError {
	var errors []ParseError
	for _, line := range strings.Split(err.Error(), "\n") {
		m := engineErrorPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		lineNo, _ := strconv.Atoi(m[1])
		column, _ := strconv.Atoi(m[2])
		// end-of-file errors carry column 0
		column = max(column, 1)
		errors = append(errors, ParseError{
			URI:      uri,
			Location: Location{Line: lineNo, Column: column},
			Message:  m[3],
		})
	}
	if len(errors) == 0 {
		errors = append(errors, ParseError{URI: uri, Message: err.Error()})
	}
	return errors
}
