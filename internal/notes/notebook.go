package notes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// payloadRe extracts the machine-readable JSON payload embedded in the
// notebook's comment marker.
var payloadRe = regexp.MustCompile(`(?s)<!-- NOTES_JSON: (.*?) -->`)

// Notebook is the markdown-file note backend. The file it writes is
// human-readable but carries the full note list as an embedded JSON
// payload, so a round trip through Save/List is exact. Hand-edited files
// without the payload are recovered by parsing the rendered sections.
type Notebook struct {
	path string
	md   goldmark.Markdown
}

// NewNotebook creates a Notebook backed by the markdown file at path.
// The file is created on first write.
func NewNotebook(path string) *Notebook {
	return &Notebook{path: path, md: goldmark.New()}
}

// Path returns the notebook's file path.
func (nb *Notebook) Path() string {
	return nb.path
}

// List loads all notes from the notebook in document order. A missing
// file is an empty notebook, not an error. IDs are 1-based positions.
func (nb *Notebook) List() ([]Note, error) {
	src, err := os.ReadFile(nb.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading notebook: %w", err)
	}

	var list []Note
	if m := payloadRe.FindSubmatch(src); m != nil {
		if err := json.Unmarshal(m[1], &list); err != nil {
			return nil, fmt.Errorf("parsing notebook payload: %w", err)
		}
	} else {
		list = nb.parseSections(src)
	}

	for i := range list {
		list[i].ID = int64(i + 1)
	}
	return list, nil
}

// Insert appends a note and rewrites the file.
func (nb *Notebook) Insert(n Note) (int64, error) {
	list, err := nb.List()
	if err != nil {
		return 0, err
	}
	list = append(list, n)
	if err := nb.save(list); err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

// UpdateContent replaces a note's content in place, keeping its category
// and timestamp, and rewrites the file.
func (nb *Notebook) UpdateContent(id int64, content string) error {
	list, err := nb.List()
	if err != nil {
		return err
	}
	if id < 1 || id > int64(len(list)) {
		return fmt.Errorf("note %d not found in notebook", id)
	}
	list[id-1].Content = content
	return nb.save(list)
}

// save renders the full notebook and replaces the file atomically:
// write to a uniquely named temp file, then rename over the target.
func (nb *Notebook) save(list []Note) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding notebook payload: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Notes\n\n")
	fmt.Fprintf(&b, "<!-- NOTES_JSON: %s -->\n\n", payload)
	for _, n := range list {
		fmt.Fprintf(&b, "## %s\n%s\n\n*Added: %s*\n\n---\n\n", n.Category, n.Content, n.Timestamp)
	}

	dir := filepath.Dir(nb.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating notebook dir: %w", err)
		}
	}

	tmp := nb.path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing notebook: %w", err)
	}
	if err := os.Rename(tmp, nb.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing notebook: %w", err)
	}
	return nil
}

// parseSections recovers notes from the rendered markdown when the JSON
// payload is absent. A level-2 heading opens a section, a thematic break
// closes it, and an "*Added: …*" line carries the timestamp. Sections
// without a recognizable header are classified from their content.
func (nb *Notebook) parseSections(src []byte) []Note {
	doc := nb.md.Parser().Parse(gmtext.NewReader(src))

	var (
		list     []Note
		category string
		paras    []string
		stamp    string
	)

	flush := func() {
		content := strings.TrimSpace(strings.Join(paras, "\n\n"))
		if category == "" && content == "" {
			paras, stamp = nil, ""
			return
		}
		if category == "" {
			category, content = Classify(content)
		}
		list = append(list, New(category, content, stamp))
		category, paras, stamp = "", nil, ""
	}

	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Heading:
			if node.Level == 1 {
				continue // document title
			}
			flush()
			category = strings.TrimSpace(plainText(node, src))
		case *ast.ThematicBreak:
			flush()
		default:
			text := strings.TrimSpace(plainText(c, src))
			if text == "" {
				continue
			}
			if rest, ok := strings.CutPrefix(text, "Added: "); ok {
				stamp = strings.TrimSpace(rest)
				continue
			}
			paras = append(paras, text)
		}
	}
	flush()

	return list
}

// plainText collects the raw text of a node's inline content, preserving
// soft line breaks and dropping formatting markers.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteString("\n")
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
