package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format is the content encoding requested for comment bodies
type Format string

const (
	FormatText     Format = "text"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// Formats lists every format the remote service understands, in display order
var Formats = []Format{FormatText, FormatHTML, FormatMarkdown}

// ParseFormat returns the Format named by s or a ConfigurationError
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", &ConfigurationError{
		Message: fmt.Sprintf("unsupported format: %q, use one of %s", s, strings.Join(names, ", ")),
	}
}

// CommentID keeps the raw JSON token of an identifier so a string stays a
// string and a number stays a number when the cache is written back.
type CommentID string

// NewCommentID builds a string-typed identifier
func NewCommentID(s string) CommentID {
	b, _ := json.Marshal(s)
	return CommentID(b)
}

func (id *CommentID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	switch {
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	default:
		if _, err := strconv.ParseFloat(string(b), 64); err != nil {
			return fmt.Errorf("comment id must be a string or a number, got %s", b)
		}
	}
	*id = CommentID(b)
	return nil
}

func (id CommentID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return []byte(id), nil
}

// String returns the identifier without JSON quoting
func (id CommentID) String() string {
	if strings.HasPrefix(string(id), `"`) {
		var s string
		if err := json.Unmarshal([]byte(id), &s); err == nil {
			return s
		}
	}
	return string(id)
}

type Author struct {
	Name    string `json:"name" validate:"required"`
	Website string `json:"website,omitempty"`
}

// HasWebsite reports whether the author should be rendered as a link
func (a Author) HasWebsite() bool {
	return len(a.Website) > 0
}

// Comment is one entry of the collection as served by the remote service
type Comment struct {
	ID       CommentID `json:"id" validate:"required"`
	PostURL  string    `json:"postUrl" validate:"required"`
	Author   Author    `json:"author"`
	Text     string    `json:"text"`
	PostedAt time.Time `json:"postedAt"`
}

// timestampLayouts are the ISO-8601 shapes accepted for postedAt, most common first.
// Layouts without an offset are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp reads an ISO-8601 date or date-time
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("postedAt %q is not an ISO-8601 timestamp", s)
}

func (c *Comment) UnmarshalJSON(b []byte) error {
	type plain Comment
	var raw struct {
		plain
		PostedAt json.RawMessage `json:"postedAt"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = Comment(raw.plain)
	c.PostedAt = time.Time{}

	v := bytes.TrimSpace(raw.PostedAt)
	switch {
	case len(v) == 0 || bytes.Equal(v, []byte("null")):
		return nil
	case v[0] == '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}
		t, err := ParseTimestamp(s)
		if err != nil {
			return err
		}
		c.PostedAt = t
	default:
		// epoch milliseconds
		ms, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("postedAt must be a timestamp string or epoch milliseconds, got %s", v)
		}
		c.PostedAt = time.UnixMilli(ms).UTC()
	}
	return nil
}

// Collection is ordered as returned by the remote service
type Collection []Comment

// Page is one page to render in a batch run
type Page struct {
	Permalink string
	Output    string
}

// FetchRequest describes a single call to the remote comments service
type FetchRequest struct {
	URL    string
	Token  string
	Format Format
}

// Collector defines the interface for retrieving the full comment collection
type Collector interface {
	FetchComments(ctx context.Context, req FetchRequest) (Collection, error)
}

// Store holds the cache snapshot. Put replaces it wholesale.
type Store interface {
	Put(c Collection) error
	Get() (Collection, error)
	Exists() bool
}
