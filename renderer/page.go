package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"

	"github.com/erraggy/oasdocs/navigation"
	"github.com/erraggy/oasdocs/oaserrors"
)

// Page is a committed, rendered page. Its markup never changes, so it can
// answer element lookups and serve as the selection.Scroller that runs a
// deferred scroll once the page exists.
type Page struct {
	body []byte

	parseOnce sync.Once
	root      *html.Node
	ids       map[string]*html.Node
	parseErr  error

	mu     sync.Mutex
	target string
}

func newPage(body []byte) *Page {
	return &Page{body: body}
}

// Bytes returns the page markup.
func (p *Page) Bytes() []byte { return p.body }

// String returns the page markup.
func (p *Page) String() string { return string(p.body) }

// WriteTo writes the page markup to w.
func (p *Page) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.body)
	if err != nil {
		return int64(n), &oaserrors.RenderError{Message: "failed to write page", Cause: err}
	}
	return int64(n), nil
}

func (p *Page) parse() error {
	p.parseOnce.Do(func() {
		root, err := html.Parse(bytes.NewReader(p.body))
		if err != nil {
			p.parseErr = &oaserrors.RenderError{Message: "failed to parse rendered page", Cause: err}
			return
		}
		p.root = root
		p.ids = make(map[string]*html.Node)
		indexIDs(root, p.ids)
	})
	return p.parseErr
}

func indexIDs(n *html.Node, ids map[string]*html.Node) {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" {
				if _, dup := ids[a.Val]; !dup {
					ids[a.Val] = n
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		indexIDs(c, ids)
	}
}

func (p *Page) element(id string) *html.Node {
	if p.parse() != nil {
		return nil
	}
	return p.ids[id]
}

// HasElement reports whether an element with the id exists.
func (p *Page) HasElement(id string) bool {
	return p.element(id) != nil
}

// ScrollIntoView implements selection.Scroller. A missing component element
// falls back to an element named after the bare component. The last element
// scrolled to is reported by Target.
func (p *Page) ScrollIntoView(id string) bool {
	if !p.HasElement(id) {
		name, ok := navigation.ComponentFromElementID(id)
		if !ok || !p.HasElement(name) {
			return false
		}
		id = name
	}
	p.mu.Lock()
	p.target = id
	p.mu.Unlock()
	return true
}

// Target returns the id of the element last scrolled into view, or "".
func (p *Page) Target() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.target
}

// Section returns the outer HTML of the element with the id.
func (p *Page) Section(id string) (string, bool) {
	n := p.element(id)
	if n == nil {
		return "", false
	}
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", false
	}
	return b.String(), true
}

// Text returns the text content of the element with the id, with runs of
// whitespace collapsed.
func (p *Page) Text(id string) (string, bool) {
	n := p.element(id)
	if n == nil {
		return "", false
	}
	var b strings.Builder
	collectText(n, &b)
	return strings.Join(strings.Fields(b.String()), " "), true
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	if n.Type == html.ElementNode && (n.Data == "style" || n.Data == "script") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// Markdown converts the whole page to GitHub-flavoured Markdown.
func (p *Page) Markdown() (string, error) {
	return toMarkdown(string(p.body))
}

// SectionMarkdown converts the element with the id to Markdown.
func (p *Page) SectionMarkdown(id string) (string, error) {
	section, ok := p.Section(id)
	if !ok {
		return "", fmt.Errorf("renderer: no element with id %q", id)
	}
	return toMarkdown(section)
}

func toMarkdown(markup string) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	out, err := converter.ConvertString(markup)
	if err != nil {
		return "", &oaserrors.RenderError{Message: "markdown conversion failed", Cause: err}
	}
	return out, nil
}
