package attachments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefs_URLRoundTrip(t *testing.T) {
	refs := NewRefs("DeskNotes")

	url := refs.URL(42, "abc.png")
	assert.Equal(t, "desknotes://attachments/42/abc.png", url)

	noteID, filename, ok := refs.Parse(url)
	assert.True(t, ok)
	assert.Equal(t, int64(42), noteID)
	assert.Equal(t, "abc.png", filename)
}

func TestRefs_Parse(t *testing.T) {
	refs := NewRefs("desknotes")

	tests := []struct {
		name     string
		ref      string
		wantID   int64
		wantFile string
		wantOK   bool
	}{
		{name: "reference", ref: "desknotes://attachments/7/f.png", wantID: 7, wantFile: "f.png", wantOK: true},
		{name: "surrounding whitespace", ref: "  desknotes://attachments/7/f.png\n", wantID: 7, wantFile: "f.png", wantOK: true},
		{name: "query ignored", ref: "desknotes://attachments/7/f.png?v=2", wantID: 7, wantFile: "f.png", wantOK: true},
		{name: "other scheme", ref: "https://attachments/7/f.png"},
		{name: "other host", ref: "desknotes://images/7/f.png"},
		{name: "missing filename", ref: "desknotes://attachments/7/"},
		{name: "extra segment", ref: "desknotes://attachments/7/a/f.png"},
		{name: "non numeric note", ref: "desknotes://attachments/x/f.png"},
		{name: "zero note", ref: "desknotes://attachments/0/f.png"},
		{name: "prefix only match", ref: "see desknotes://attachments/7/f.png"},
		{name: "empty", ref: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, file, ok := refs.Parse(tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
				assert.Equal(t, tt.wantFile, file)
			}
		})
	}
}

func TestRefs_Referenced(t *testing.T) {
	refs := NewRefs("desknotes")

	tests := []struct {
		name   string
		markup string
		want   []string
	}{
		{
			name:   "empty content",
			markup: "",
			want:   nil,
		},
		{
			name: "images scoped to the note",
			markup: `<p>one <img src="desknotes://attachments/3/h1.png"></p>` +
				`<p><img alt="x" src='desknotes://attachments/3/h3.png' /></p>` +
				`<img src="desknotes://attachments/4/h2.png">`,
			want: []string{"h1.png", "h3.png"},
		},
		{
			name:   "entities in attribute values are decoded",
			markup: `<img src="desknotes://attachments/3/h1.png?a=1&amp;b=2">`,
			want:   []string{"h1.png"},
		},
		{
			name:   "non image attribute still counts",
			markup: `<a href="desknotes://attachments/3/doc.png">open</a>`,
			want:   []string{"doc.png"},
		},
		{
			name:   "text mentions do not count",
			markup: `<p>desknotes://attachments/3/h9.png</p><img src="prefix desknotes://attachments/3/h8.png">`,
			want:   nil,
		},
		{
			name:   "uppercase tags",
			markup: `<IMG SRC="desknotes://attachments/3/h6.webp">`,
			want:   []string{"h6.webp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := refs.Referenced(3, tt.markup)
			assert.Len(t, got, len(tt.want))
			for _, name := range tt.want {
				assert.Contains(t, got, name)
			}
		})
	}
}
