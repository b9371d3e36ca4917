package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"text", "html", "markdown"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}

	_, err := ParseFormat("pdf")
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Error(), `"pdf"`)
	assert.Contains(t, cfgErr.Error(), "text, html, markdown")
}

func TestCommentIDKeepsJSONKind(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		display string
	}{
		{"number", `1`, "1"},
		{"string", `"c-42"`, "c-42"},
		{"uuid", `"0b8f2f7e-8a3c-4a55-9b1e-0f6e2a8b9c10"`, "0b8f2f7e-8a3c-4a55-9b1e-0f6e2a8b9c10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id CommentID
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &id))
			assert.Equal(t, tt.display, id.String())

			out, err := json.Marshal(id)
			require.NoError(t, err)
			assert.Equal(t, tt.raw, string(out))
		})
	}
}

func TestCommentIDRejectsObjects(t *testing.T) {
	var id CommentID
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &id))
}

func TestNewCommentID(t *testing.T) {
	id := NewCommentID("abc")
	assert.Equal(t, "abc", id.String())
	assert.Equal(t, CommentID(`"abc"`), id)
}

func TestAuthorHasWebsite(t *testing.T) {
	assert.False(t, Author{Name: "Ann"}.HasWebsite())
	assert.False(t, Author{Name: "Ann", Website: ""}.HasWebsite())
	assert.True(t, Author{Name: "Ann", Website: "https://ann.example"}.HasWebsite())
}

func TestDecodeCollection(t *testing.T) {
	body := `[
		{"id":1,"postUrl":"https://ex.com/blog/a","author":{"name":"Ann"},"text":"Hi","postedAt":"2024-01-01T00:00:00Z"},
		{"id":"x","postUrl":"https://ex.com/blog/b","author":{"name":"Bob","website":"https://bob.example"},"text":"<p>Yo</p>","postedAt":"2024-02-03T10:20:30Z"}
	]`

	c, err := DecodeCollection([]byte(body))
	require.NoError(t, err)
	require.Len(t, c, 2)

	assert.Equal(t, "1", c[0].ID.String())
	assert.Equal(t, "https://ex.com/blog/a", c[0].PostURL)
	assert.Equal(t, "Ann", c[0].Author.Name)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), c[0].PostedAt.UTC())
	assert.Equal(t, "x", c[1].ID.String())
	assert.Equal(t, "https://bob.example", c[1].Author.Website)
}

func TestDecodeCollectionEmptyArray(t *testing.T) {
	c, err := DecodeCollection([]byte(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Empty(t, c)
}

func TestDecodeCollectionInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"object", `{"comments":[]}`},
		{"null", `null`},
		{"missing author name", `[{"id":1,"postUrl":"https://ex.com/a","author":{},"text":"x","postedAt":"2024-01-01T00:00:00Z"}]`},
		{"missing post url", `[{"id":1,"author":{"name":"Ann"},"text":"x","postedAt":"2024-01-01T00:00:00Z"}]`},
		{"missing id", `[{"postUrl":"https://ex.com/a","author":{"name":"Ann"},"text":"x","postedAt":"2024-01-01T00:00:00Z"}]`},
		{"bad timestamp", `[{"id":1,"postUrl":"https://ex.com/a","author":{"name":"Ann"},"text":"x","postedAt":"yesterday"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCollection([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDecodeCollectionTimestampForms(t *testing.T) {
	plus2 := time.FixedZone("", 2*60*60)
	tests := []struct {
		name     string
		postedAt string
		want     time.Time
	}{
		{"rfc3339", `"2024-01-01T10:00:00Z"`, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"microseconds", `"2024-01-01T00:00:00.000000Z"`, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"milliseconds", `"2024-01-01T00:00:00.250Z"`, time.Date(2024, 1, 1, 0, 0, 0, 250e6, time.UTC)},
		{"offset with colon", `"2024-01-01T12:00:00+02:00"`, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"offset without colon", `"2024-01-01T00:00:00+0000"`, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"space separator", `"2024-01-01 10:00:00"`, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"space separator with offset", `"2024-01-01 12:00:00+02:00"`, time.Date(2024, 1, 1, 12, 0, 0, 0, plus2)},
		{"no seconds", `"2024-01-01T10:30"`, time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)},
		{"date only", `"2024-01-01"`, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"epoch millis", `1704067200000`, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"null", `null`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `[{"id":1,"postUrl":"https://ex.com/a","author":{"name":"Ann"},"text":"Hi","postedAt":` + tt.postedAt + `}]`
			c, err := DecodeCollection([]byte(body))
			require.NoError(t, err)
			require.Len(t, c, 1)
			assert.True(t, tt.want.Equal(c[0].PostedAt), "want %s, got %s", tt.want, c[0].PostedAt)
			assert.Equal(t, "1", c[0].ID.String())
			assert.Equal(t, "Ann", c[0].Author.Name)
		})
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "yesterday", "01/02/2024", "2024-13-01"} {
		_, err := ParseTimestamp(s)
		assert.Error(t, err, s)
	}
}
