// Package render writes branch listings as a table, JSON or YAML.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/thiagokokada/git-branches/internal/git"
	"go.yaml.in/yaml/v3"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, json or yaml)", s)
	}
}

type Options struct {
	Format Format
	Color  bool
	Theme  Theme
}

// Branches writes a listing. current may be nil.
func Branches(w io.Writer, branches []git.Branch, current *git.Branch, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, NewBranchViews(branches, current), opts)
	case FormatYAML:
		return writeYAML(w, NewBranchViews(branches, current), opts)
	default:
		return writeTable(w, branches, current, opts)
	}
}

// Current writes the current branch. Nothing is written for nil.
func Current(w io.Writer, current *git.Branch, opts Options) error {
	if current == nil {
		return nil
	}
	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, NewBranchView(*current, true), opts)
	case FormatYAML:
		return writeYAML(w, NewBranchView(*current, true), opts)
	default:
		_, err := fmt.Fprintln(w, current.Name)
		return err
	}
}

func writeJSON(w io.Writer, v any, opts Options) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return emit(w, buf.String(), "json", opts)
}

func writeYAML(w io.Writer, v any, opts Options) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return emit(w, buf.String(), "yaml", opts)
}

func emit(w io.Writer, src, lexer string, opts Options) error {
	if !opts.Color {
		_, err := io.WriteString(w, src)
		return err
	}
	style := opts.Theme.palette().chromaStyle
	if err := quick.Highlight(w, src, lexer, "terminal256", style); err != nil {
		return fmt.Errorf("highlight %s: %w", lexer, err)
	}
	return nil
}

// Diff writes a unified diff, highlighted when color is enabled.
func Diff(w io.Writer, diff string, opts Options) error {
	if diff == "" {
		return nil
	}
	return emit(w, diff, "diff", opts)
}
