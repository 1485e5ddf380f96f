package editor

import (
	"fmt"
	"html"
	"strings"
)

// Serialize renders the document to the HTML snapshot stored on a post's
// content field. Serialization is a pure read; armed embeds always render
// inert, with the overlay visible.
func (d *Document) Serialize() string {
	var b strings.Builder
	n, err := d.Node(d.root)
	if err != nil {
		return ""
	}
	for _, c := range n.Children {
		d.render(&b, c)
	}
	return b.String()
}

func (d *Document) render(b *strings.Builder, id NodeID) {
	n, err := d.Node(id)
	if err != nil {
		return
	}

	switch n.Kind {
	case KindText:
		b.WriteString(html.EscapeString(n.Text))

	case KindParagraph:
		b.WriteString("<p>")
		d.renderChildren(b, n)
		b.WriteString("</p>")

	case KindLink:
		fmt.Fprintf(b, `<a href=%q target="_blank">`, n.Href)
		d.renderChildren(b, n)
		b.WriteString("</a>")

	case KindList:
		tag := "ul"
		if n.Ordered {
			tag = "ol"
		}
		fmt.Fprintf(b, `<%s style="padding-left: 20px; margin: 10px 0">`, tag)
		d.renderChildren(b, n)
		fmt.Fprintf(b, "</%s>", tag)

	case KindListItem:
		b.WriteString("<li>")
		d.renderChildren(b, n)
		b.WriteString("</li>")

	case KindSpan:
		b.WriteString("<span style=\"")
		var styles []string
		if n.Bold {
			styles = append(styles, "font-weight: bold")
		}
		if n.Italic {
			styles = append(styles, "font-style: italic")
		}
		if n.Underline {
			styles = append(styles, "text-decoration: underline")
		}
		if n.FontPx > 0 {
			styles = append(styles, fmt.Sprintf("font-size: %dpx", n.FontPx))
		}
		b.WriteString(strings.Join(styles, "; "))
		b.WriteString("\">")
		d.renderChildren(b, n)
		b.WriteString("</span>")

	case KindImage:
		b.WriteString(`<div class="image-container">`)
		fmt.Fprintf(b, `<img src=%q alt="삽입된 이미지">`, n.Src)
		b.WriteString(`<button class="delete-btn">×</button>`)
		b.WriteString("</div>")

	case KindVideoEmbed:
		b.WriteString(`<div class="youtube-embed-container">`)
		fmt.Fprintf(b, `<iframe src="https://www.youtube.com/embed/%s" title="YouTube video" allowfullscreen></iframe>`, n.VideoID)
		b.WriteString(`<div class="overlay">▶️ 비디오 재생하려면 클릭</div>`)
		b.WriteString(`<button class="delete-btn">×</button>`)
		b.WriteString("</div>")

	default:
		d.renderChildren(b, n)
	}
}

func (d *Document) renderChildren(b *strings.Builder, n *Node) {
	for _, c := range n.Children {
		d.render(b, c)
	}
}

// PlainText strips the markup and returns only the document's text runs.
// Backs the authoring UI's character count.
func (d *Document) PlainText() string {
	var b strings.Builder
	d.Walk(func(id NodeID, n *Node) bool {
		if n.Kind == KindText {
			b.WriteString(n.Text)
		}
		return true
	})
	return b.String()
}
