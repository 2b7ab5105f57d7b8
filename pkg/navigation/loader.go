package navigation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported menu file format")
	ErrTrailingData      = errors.New("unexpected data after menu document")
)

// rawEntry mirrors Entry with pointer fields so absent keys can be told apart
// from zero values.
type rawEntry struct {
	ID        *string `json:"id" yaml:"id"`
	Title     *string `json:"title" yaml:"title"`
	Icon      *string `json:"icon" yaml:"icon"`
	URL       *string `json:"url" yaml:"url"`
	AdminOnly *bool   `json:"adminOnly" yaml:"adminOnly"`
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadFile reads a menu definition from disk.
func LoadFile(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}

	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse menu file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a menu definition. The document is either a list of entries
// or a single entry. Unknown keys are rejected and every field is required.
func Parse(data []byte, format Format) (*Config, error) {
	var (
		raws []rawEntry
		err  error
	)

	switch format {
	case FormatJSON:
		raws, err = decodeJSON(data)
	case FormatYAML:
		raws, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raws))
	for i, raw := range raws {
		entry, err := raw.toEntry(i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return New(entries...)
}

func decodeJSON(data []byte) ([]rawEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.DisallowUnknownFields()

	var raws []rawEntry
	if trimmed[0] == '[' {
		if err := decoder.Decode(&raws); err != nil {
			return nil, err
		}
	} else {
		var raw rawEntry
		if err := decoder.Decode(&raw); err != nil {
			return nil, err
		}
		raws = []rawEntry{raw}
	}

	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return raws, nil
}

func decodeYAML(data []byte) ([]rawEntry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var raws []rawEntry
	listErr := yaml.UnmarshalWithOptions(data, &raws, yaml.Strict())
	if listErr == nil {
		return raws, nil
	}

	var raw rawEntry
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.Strict()); err != nil {
		return nil, listErr
	}
	return []rawEntry{raw}, nil
}

func (r rawEntry) toEntry(i int) (Entry, error) {
	id := ""
	if r.ID != nil {
		id = *r.ID
	}

	missing := func(field string) error {
		return &EntryError{Index: i, ID: id, Field: field, Err: ErrMissingField}
	}

	switch {
	case r.ID == nil:
		return Entry{}, missing("id")
	case r.Title == nil:
		return Entry{}, missing("title")
	case r.Icon == nil:
		return Entry{}, missing("icon")
	case r.URL == nil:
		return Entry{}, missing("url")
	case r.AdminOnly == nil:
		return Entry{}, missing("adminOnly")
	}

	return Entry{
		ID:        *r.ID,
		Title:     *r.Title,
		Icon:      *r.Icon,
		URL:       *r.URL,
		AdminOnly: *r.AdminOnly,
	}, nil
}
