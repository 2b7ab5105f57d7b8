package navigation

import (
	"errors"
	"fmt"
	"html"
	"iter"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ErrEmptyField    = errors.New("field must not be empty")
	ErrMissingField  = errors.New("field is missing")
	ErrDuplicateID   = errors.New("duplicate menu entry id")
	ErrMarkupInTitle = errors.New("title must not contain markup")
	ErrInvalidID     = errors.New("id must contain only lowercase letters, digits and hyphens")
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidID reports whether id can name a menu entry. Underscores are excluded
// because permission rows store ids with hyphens turned into underscores.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Entry represents a sidebar menu item. The JSON names are part of the wire
// contract shared with the dashboard front end.
type Entry struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Icon      string `json:"icon" yaml:"icon"`
	URL       string `json:"url" yaml:"url"`
	AdminOnly bool   `json:"adminOnly" yaml:"adminOnly"`
}

// EntryError reports which entry failed validation.
type EntryError struct {
	Index int
	ID    string
	Field string
	Err   error
}

func (e *EntryError) Error() string {
	label := e.ID
	if label == "" {
		label = fmt.Sprintf("#%d", e.Index)
	}
	if e.Field == "" {
		return fmt.Sprintf("menu entry %s: %v", label, e.Err)
	}
	return fmt.Sprintf("menu entry %s: %s: %v", label, e.Field, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// Config is an ordered, read-only set of menu entries. Order is display order.
// A Config never changes after New returns, so it can be shared between
// goroutines without locking.
type Config struct {
	entries []Entry
	index   map[string]int
}

// New validates entries and builds a Config holding its own copy of them.
func New(entries ...Entry) (*Config, error) {
	items := make([]Entry, len(entries))
	copy(items, entries)

	index := make(map[string]int, len(items))
	for i, entry := range items {
		if err := validateEntry(i, entry); err != nil {
			return nil, err
		}
		if _, exists := index[entry.ID]; exists {
			return nil, &EntryError{Index: i, ID: entry.ID, Field: "id", Err: ErrDuplicateID}
		}
		index[entry.ID] = i
	}

	return &Config{entries: items, index: index}, nil
}

// MustNew is like New but panics on invalid entries. Intended for literals.
func MustNew(entries ...Entry) *Config {
	cfg, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Entries returns every configured entry, admin-only ones included, in display
// order. The slice is a copy: callers may modify it freely.
func (c *Config) Entries() []Entry {
	if c == nil {
		return []Entry{}
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// All iterates the entries in display order without copying the slice.
func (c *Config) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		if c == nil {
			return
		}
		for i, entry := range c.entries {
			if !yield(i, entry) {
				return
			}
		}
	}
}

func (c *Config) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

func (c *Config) Lookup(id string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// IDs returns the entry identifiers in display order.
func (c *Config) IDs() []string {
	ids := make([]string, 0, c.Len())
	for _, entry := range c.All() {
		ids = append(ids, entry.ID)
	}
	return ids
}

func validateEntry(i int, entry Entry) error {
	fields := []struct {
		name  string
		value string
	}{
		{"id", entry.ID},
		{"title", entry.Title},
		{"icon", entry.Icon},
		{"url", entry.URL},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &EntryError{Index: i, ID: entry.ID, Field: f.name, Err: ErrEmptyField}
		}
	}

	if !ValidID(entry.ID) {
		return &EntryError{Index: i, ID: entry.ID, Field: "id", Err: ErrInvalidID}
	}

	if html.UnescapeString(bluemonday.StrictPolicy().Sanitize(entry.Title)) != entry.Title {
		return &EntryError{Index: i, ID: entry.ID, Field: "title", Err: ErrMarkupInTitle}
	}

	return nil
}
