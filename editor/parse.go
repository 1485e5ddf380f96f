package editor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var fontSizeStyle = regexp.MustCompile(`font-size:\s*(\d+)px`)

// Parse rebuilds a document from a stored content snapshot so an existing
// post can be reopened for editing. Presentation-only attributes (inline
// styles on lists, overlay labels, delete buttons) are recognized and
// dropped; the semantic structure is what round-trips.
func Parse(content string) (*Document, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(content), ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}

	d := NewDocument()
	for _, n := range nodes {
		if err := d.fromHTML(d.root, n); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Document) fromHTML(parent NodeID, n *html.Node) error {
	switch n.Type {
	case html.TextNode:
		// Whitespace between block elements is formatting noise, not content.
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		_, err := d.NewNode(parent, Node{Kind: KindText, Text: n.Data})
		return err

	case html.ElementNode:
		return d.fromElement(parent, n)
	}
	return nil
}

func (d *Document) fromElement(parent NodeID, n *html.Node) error {
	switch n.DataAtom {
	case atom.Div:
		switch {
		case hasClass(n, "image-container"):
			src := ""
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.DataAtom == atom.Img {
					src = attr(c, "src")
					break
				}
			}
			_, err := d.NewNode(parent, Node{Kind: KindImage, Src: src})
			return err

		case hasClass(n, "youtube-embed-container"):
			videoID := ""
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.DataAtom == atom.Iframe {
					videoID = embedVideoID(attr(c, "src"))
					break
				}
			}
			_, err := d.NewNode(parent, Node{Kind: KindVideoEmbed, VideoID: videoID})
			return err

		case hasClass(n, "overlay"):
			// Reconstructed by the serializer; nothing to keep.
			return nil
		}
		// Anonymous wrapper; recurse transparently.
		return d.childrenFromHTML(parent, n)

	case atom.P:
		id, err := d.NewNode(parent, Node{Kind: KindParagraph})
		if err != nil {
			return err
		}
		return d.childrenFromHTML(id, n)

	case atom.A:
		id, err := d.NewNode(parent, Node{Kind: KindLink, Href: attr(n, "href")})
		if err != nil {
			return err
		}
		return d.childrenFromHTML(id, n)

	case atom.Ul, atom.Ol:
		id, err := d.NewNode(parent, Node{Kind: KindList, Ordered: n.DataAtom == atom.Ol})
		if err != nil {
			return err
		}
		return d.childrenFromHTML(id, n)

	case atom.Li:
		id, err := d.NewNode(parent, Node{Kind: KindListItem})
		if err != nil {
			return err
		}
		return d.childrenFromHTML(id, n)

	case atom.Span, atom.Font:
		span := Node{Kind: KindSpan}
		style := attr(n, "style")
		span.Bold = strings.Contains(style, "font-weight: bold") || strings.Contains(style, "font-weight:bold")
		span.Italic = strings.Contains(style, "font-style: italic") || strings.Contains(style, "font-style:italic")
		span.Underline = strings.Contains(style, "text-decoration: underline") || strings.Contains(style, "text-decoration:underline")
		if m := fontSizeStyle.FindStringSubmatch(style); m != nil {
			span.FontPx, _ = strconv.Atoi(m[1])
		}
		id, err := d.NewNode(parent, span)
		if err != nil {
			return err
		}
		return d.childrenFromHTML(id, n)

	case atom.B, atom.Strong:
		id, err := d.NewNode(parent, Node{Kind: KindSpan, Bold: true})
		if err != nil {
			return err
		}
		return d.childrenFromHTML(id, n)

	case atom.I, atom.Em:
		id, err := d.NewNode(parent, Node{Kind: KindSpan, Italic: true})
		if err != nil {
			return err
		}
		return d.childrenFromHTML(id, n)

	case atom.U:
		id, err := d.NewNode(parent, Node{Kind: KindSpan, Underline: true})
		if err != nil {
			return err
		}
		return d.childrenFromHTML(id, n)

	case atom.Br:
		return nil

	case atom.Button, atom.Iframe, atom.Img, atom.Script, atom.Style:
		// Containers own their media and affordances; stray ones are dropped.
		return nil
	}

	// Unknown element; keep its content, lose the wrapper.
	return d.childrenFromHTML(parent, n)
}

func (d *Document) childrenFromHTML(parent NodeID, n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := d.fromHTML(parent, c); err != nil {
			return err
		}
	}
	return nil
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// embedVideoID pulls the video id out of an embed URL like
// https://www.youtube.com/embed/abc123.
func embedVideoID(src string) string {
	const marker = "/embed/"
	i := strings.Index(src, marker)
	if i < 0 {
		return ""
	}
	id := src[i+len(marker):]
	if j := strings.IndexAny(id, "?&"); j >= 0 {
		id = id[:j]
	}
	return id
}
