// Package source reads feature files for the discovery pipeline.
package source

import (
	"fmt"
	"os"
	"strings"
)

const (
	Encoding  = "utf-8"
	MediaType = "text/vnd.cucumber.gherkin+plain"
)

type Media struct {
	Encoding string `json:"encoding"`
	Type     string `json:"type"`
}

// Source is the full text of one feature file.
type Source struct {
	URI   string
	Data  string
	Media Media
}

// ReadError reports a path that could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Load reads path as UTF-8 text. Invalid byte sequences become U+FFFD.
func Load(path string) (*Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return &Source{
		URI:   path,
		Data:  strings.ToValidUTF8(string(content), "�"),
		Media: Media{Encoding: Encoding, Type: MediaType},
	}, nil
}
