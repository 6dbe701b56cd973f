package attachments

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// refHost is the fixed authority of attachment reference URLs.
const refHost = "attachments"

// Refs builds and parses attachment reference URLs of the form
// <scheme>://attachments/<noteId>/<filename>.
type Refs struct {
	scheme string
}

// NewRefs returns Refs for the given URL scheme.
func NewRefs(scheme string) Refs {
	return Refs{scheme: strings.ToLower(scheme)}
}

// Scheme returns the URL scheme.
func (r Refs) Scheme() string {
	return r.scheme
}

// URL returns the reference URL embedded in note content for a stored file.
func (r Refs) URL(noteID int64, filename string) string {
	return fmt.Sprintf("%s://%s/%d/%s", r.scheme, refHost, noteID, url.PathEscape(filename))
}

// Parse extracts the note id and filename from a reference URL.
// The whole value must be a reference; surrounding whitespace is ignored.
func (r Refs) Parse(ref string) (noteID int64, filename string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return 0, "", false
	}
	if !strings.EqualFold(u.Scheme, r.scheme) || !strings.EqualFold(u.Host, refHost) {
		return 0, "", false
	}

	segments := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	if len(segments) != 2 || segments[1] == "" {
		return 0, "", false
	}
	noteID, err = strconv.ParseInt(segments[0], 10, 64)
	if err != nil || noteID <= 0 {
		return 0, "", false
	}
	return noteID, segments[1], true
}

// Referenced returns the filenames that markup references for noteID.
//
// Every attribute of every element is considered, but only when its entire
// value is a reference URL; text content and partial matches are ignored.
func (r Refs) Referenced(noteID int64, markup string) map[string]struct{} {
	refs := make(map[string]struct{})
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed tail; either way the scan is done.
			return refs
		case html.StartTagToken, html.SelfClosingTagToken:
			_, hasAttr := z.TagName()
			for hasAttr {
				var val []byte
				_, val, hasAttr = z.TagAttr()
				if id, filename, ok := r.Parse(string(val)); ok && id == noteID {
					refs[filename] = struct{}{}
				}
			}
		}
	}
}
