package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// listItemPlaceholder fills a fresh list item so the author has something
// selected to type over.
const listItemPlaceholder = "내용을 입력하세요"

// InlineStyle names a toolbar text style.
type InlineStyle int

const (
	StyleBold InlineStyle = iota
	StyleItalic
	StyleUnderline
)

// Selection is the live selection range. Offsets are rune offsets when Node
// is a text node and child indexes otherwise; Start == End is a caret.
type Selection struct {
	Node  NodeID
	Start int
	End   int
}

// Caret reports whether the selection is collapsed.
func (s Selection) Caret() bool { return s.Start == s.End }

// Controller mediates raw input events into document mutations for one
// editing session. It owns the cursor, keeps the session's content field in
// sync with the tree, and is not safe for concurrent use: one author, one
// session.
type Controller struct {
	doc     *Document
	sel     *Selection
	session *SessionState

	// Confirm gates destructive commands. The default declines nothing;
	// a UI wires its confirmation dialog in here.
	Confirm func(prompt string) bool

	// baseFontPx applies when the font size changes with nothing selected.
	// It styles the editing surface and is not part of the serialized content.
	baseFontPx int
}

// NewController builds a controller for the session. When the session
// already carries content (editing an existing post), the tree is rebuilt
// from the stored snapshot.
func NewController(session *SessionState) (*Controller, error) {
	doc := NewDocument()
	if session != nil && session.Content != "" {
		var err error
		doc, err = Parse(session.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to load content into editor: %w", err)
		}
	}

	return &Controller{
		doc:        doc,
		session:    session,
		Confirm:    func(string) bool { return true },
		baseFontPx: 16,
	}, nil
}

// Document exposes the underlying tree, mainly for inspection.
func (c *Controller) Document() *Document { return c.doc }

// Selection returns a copy of the current selection, or nil when the editor
// is not focused.
func (c *Controller) Selection() *Selection {
	if c.sel == nil {
		return nil
	}
	s := *c.sel
	return &s
}

// Focus places the cursor. Every mutation command requires focus first.
func (c *Controller) Focus(sel Selection) error {
	if _, err := c.doc.Node(sel.Node); err != nil {
		return err
	}
	c.sel = &sel
	return nil
}

// FocusEnd places the caret after the last top-level node.
func (c *Controller) FocusEnd() {
	root, _ := c.doc.Node(c.doc.Root())
	n := len(root.Children)
	c.sel = &Selection{Node: c.doc.Root(), Start: n, End: n}
}

// Blur drops the selection.
func (c *Controller) Blur() {
	c.sel = nil
}

// ClickOutside disarms every video embed. Without this an embed armed for
// playback would keep swallowing clicks after the author moved on.
func (c *Controller) ClickOutside() {
	c.doc.DisarmEmbeds()
}

// ActivateEmbed arms a video embed: overlay hidden, playback interactive.
// One-way per embed; only ClickOutside reverses it.
func (c *Controller) ActivateEmbed(id NodeID) error {
	return c.doc.ArmEmbed(id)
}

// InsertImage places an image container at the cursor, replacing any
// selected content, and moves the cursor after it.
func (c *Controller) InsertImage(url string) error {
	if strings.TrimSpace(url) == "" {
		return ErrEmptyURL
	}
	if c.sel == nil {
		return ErrNoSelection
	}

	c.deleteSelectedContent()
	if _, err := c.insertAtCaret(Node{Kind: KindImage, Src: url}); err != nil {
		return err
	}

	c.syncContent()
	return nil
}

// InsertLink inserts an anchor around the selected text (or the raw URL as
// its own label). YouTube URLs are not linked at all: the video id is
// extracted and an embed is inserted instead.
func (c *Controller) InsertLink(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return ErrEmptyURL
	}
	if c.sel == nil {
		return ErrNoSelection
	}

	if IsYouTubeURL(url) {
		videoID := ExtractVideoID(url)
		if videoID == "" {
			return ErrBadVideoURL
		}
		return c.InsertVideoEmbed(videoID)
	}

	label := c.selectedText()
	if label == "" {
		label = url
	}

	c.deleteSelectedContent()
	linkID, err := c.insertAtCaret(Node{Kind: KindLink, Href: url})
	if err != nil {
		return err
	}
	if _, err := c.doc.NewNode(linkID, Node{Kind: KindText, Text: label}); err != nil {
		return err
	}

	c.syncContent()
	return nil
}

// InsertVideoEmbed places a video embed container at the cursor. The embed
// starts inert: overlay visible, playback surface ignoring pointer events.
func (c *Controller) InsertVideoEmbed(videoID string) error {
	if strings.TrimSpace(videoID) == "" {
		return ErrBadVideoURL
	}
	if c.sel == nil {
		return ErrNoSelection
	}

	c.deleteSelectedContent()
	if _, err := c.insertAtCaret(Node{Kind: KindVideoEmbed, VideoID: videoID}); err != nil {
		return err
	}

	c.syncContent()
	return nil
}

// ToggleList wraps the selected text (or a placeholder) into a single item
// of a new list. Each call makes an independent list; adjacent lists are
// not merged.
func (c *Controller) ToggleList(ordered bool) error {
	if c.sel == nil {
		return ErrNoSelection
	}

	text := c.selectedText()
	if text == "" {
		text = listItemPlaceholder
	}

	c.deleteSelectedContent()
	listID, err := c.insertAtCaret(Node{Kind: KindList, Ordered: ordered})
	if err != nil {
		return err
	}
	itemID, err := c.doc.NewNode(listID, Node{Kind: KindListItem})
	if err != nil {
		return err
	}
	textID, err := c.doc.NewNode(itemID, Node{Kind: KindText, Text: text})
	if err != nil {
		return err
	}

	// Select the item's text so typing replaces it.
	c.sel = &Selection{Node: textID, Start: 0, End: utf8.RuneCountInString(text)}
	c.syncContent()
	return nil
}

// ApplyInlineStyle wraps the selected text in a styled span.
func (c *Controller) ApplyInlineStyle(style InlineStyle) error {
	if c.sel == nil {
		return ErrNoSelection
	}
	text := c.selectedText()
	if text == "" {
		return ErrNoSelection
	}

	span := Node{Kind: KindSpan}
	switch style {
	case StyleBold:
		span.Bold = true
	case StyleItalic:
		span.Italic = true
	case StyleUnderline:
		span.Underline = true
	}

	return c.wrapSelection(span, text)
}

// ChangeFontSize wraps the selected text in a sized span, or, with nothing
// selected, changes the editing surface's base size.
func (c *Controller) ChangeFontSize(px int) error {
	if px <= 0 {
		return fmt.Errorf("invalid font size %d", px)
	}
	if c.sel == nil || c.selectedText() == "" {
		c.baseFontPx = px
		return nil
	}
	return c.wrapSelection(Node{Kind: KindSpan, FontPx: px}, c.selectedText())
}

// BaseFontSize returns the editing surface's base font size in pixels.
func (c *Controller) BaseFontSize() int { return c.baseFontPx }

// DeleteNode removes exactly one image or video container after the
// confirmation hook approves. Declining is a clean no-op.
func (c *Controller) DeleteNode(id NodeID) error {
	n, err := c.doc.Node(id)
	if err != nil {
		return err
	}

	var prompt string
	switch n.Kind {
	case KindImage:
		prompt = "이미지를 삭제하시겠습니까?"
	case KindVideoEmbed:
		prompt = "YouTube 비디오를 삭제하시겠습니까?"
	default:
		return ErrNotDeletable
	}

	if !c.Confirm(prompt) {
		return nil
	}

	// Move a cursor inside the doomed subtree to the node's old position.
	if c.sel != nil && c.inSubtree(c.sel.Node, id) {
		if idx, err := c.doc.ChildIndex(id); err == nil {
			c.sel = &Selection{Node: n.Parent, Start: idx, End: idx}
		} else {
			c.FocusEnd()
		}
	}

	if err := c.doc.Detach(id); err != nil {
		return err
	}

	c.syncContent()
	return nil
}

// HandleEnter implements list-item continuation: when the cursor's ancestor
// chain contains a list item, a fresh item is appended right after it and
// the cursor moves in. Returns false when default newline handling should
// proceed instead.
func (c *Controller) HandleEnter() (bool, error) {
	if c.sel == nil {
		return false, nil
	}

	item := c.doc.AncestorOfKind(c.sel.Node, KindListItem)
	if item == NoNode {
		return false, nil
	}

	newItem, err := c.doc.InsertAfter(item, Node{Kind: KindListItem})
	if err != nil {
		return false, err
	}
	textID, err := c.doc.NewNode(newItem, Node{Kind: KindText, Text: listItemPlaceholder})
	if err != nil {
		return false, err
	}

	c.sel = &Selection{Node: textID, Start: 0, End: utf8.RuneCountInString(listItemPlaceholder)}
	c.syncContent()
	return true, nil
}

// HandleKey runs after a keystroke lands in the editor. Enter continues a
// list item; space and Enter also trigger URL auto-detection on the last
// whitespace-delimited token of the current text node. Returns true when
// the keystroke was consumed.
func (c *Controller) HandleKey(key string) (bool, error) {
	if c.sel == nil {
		return false, nil
	}

	if key == "Enter" {
		handled, err := c.HandleEnter()
		if handled || err != nil {
			return handled, err
		}
	}

	if key != " " && key != "Enter" {
		return false, nil
	}

	n, err := c.doc.Node(c.sel.Node)
	if err != nil || n.Kind != KindText {
		return false, nil
	}

	token := LastToken(n.Text)
	if token == "" {
		return false, nil
	}

	switch {
	case IsYouTubeURL(token):
		c.stripTrailingToken(c.sel.Node, token)
		return true, c.InsertLink(token)
	case IsImageURL(token):
		c.stripTrailingToken(c.sel.Node, token)
		return true, c.InsertImage(token)
	}

	return false, nil
}

// HandlePaste intercepts pasted text. YouTube and image URLs become embeds
// and images; anything else falls through to a plain text insertion.
// Returns true when the paste was converted.
func (c *Controller) HandlePaste(text string) (bool, error) {
	if c.sel == nil {
		return false, ErrNoSelection
	}

	switch {
	case IsYouTubeURL(text):
		return true, c.InsertLink(text)
	case IsImageURL(text):
		return true, c.InsertImage(text)
	}

	return false, c.InsertText(text)
}

// InsertText types text at the cursor, replacing any selection.
func (c *Controller) InsertText(text string) error {
	if c.sel == nil {
		return ErrNoSelection
	}
	if text == "" {
		return nil
	}

	c.deleteSelectedContent()

	n, err := c.doc.Node(c.sel.Node)
	if err != nil {
		return err
	}

	if n.Kind == KindText {
		runes := []rune(n.Text)
		off := clamp(c.sel.Start, 0, len(runes))
		c.doc.arena[c.sel.Node].Text = string(runes[:off]) + text + string(runes[off:])
		pos := off + utf8.RuneCountInString(text)
		c.sel = &Selection{Node: c.sel.Node, Start: pos, End: pos}
	} else {
		id, err := c.insertAtCaret(Node{Kind: KindText, Text: text})
		if err != nil {
			return err
		}
		pos := utf8.RuneCountInString(text)
		c.sel = &Selection{Node: id, Start: pos, End: pos}
	}

	c.syncContent()
	return nil
}

// WordCount counts the content's characters with all markup stripped.
func (c *Controller) WordCount() int {
	return utf8.RuneCountInString(c.doc.PlainText())
}

// insertAtCaret places a node at the collapsed cursor. A caret inside a
// text node splits the run; a caret in an element inserts at the child
// index. The cursor lands immediately after the inserted node.
func (c *Controller) insertAtCaret(n Node) (NodeID, error) {
	sel := c.sel
	cur, err := c.doc.Node(sel.Node)
	if err != nil {
		return NoNode, err
	}

	var id NodeID
	if cur.Kind == KindText {
		parent := cur.Parent
		if parent == NoNode {
			return NoNode, ErrNodeNotFound
		}
		idx, err := c.doc.ChildIndex(sel.Node)
		if err != nil {
			return NoNode, err
		}

		runes := []rune(cur.Text)
		off := clamp(sel.Start, 0, len(runes))
		switch {
		case off == 0:
			id, err = c.doc.InsertAt(parent, idx, n)
		case off >= len(runes):
			id, err = c.doc.InsertAt(parent, idx+1, n)
		default:
			c.doc.arena[sel.Node].Text = string(runes[:off])
			id, err = c.doc.InsertAt(parent, idx+1, n)
			if err == nil {
				_, err = c.doc.InsertAt(parent, idx+2, Node{Kind: KindText, Text: string(runes[off:])})
			}
		}
		if err != nil {
			return NoNode, err
		}
	} else {
		idx := clamp(sel.Start, 0, len(cur.Children))
		id, err = c.doc.InsertAt(sel.Node, idx, n)
		if err != nil {
			return NoNode, err
		}
	}

	parent := c.doc.arena[id].Parent
	idx, err := c.doc.ChildIndex(id)
	if err != nil {
		return NoNode, err
	}
	c.sel = &Selection{Node: parent, Start: idx + 1, End: idx + 1}
	return id, nil
}

// selectedText returns the text the selection covers: a substring of a text
// node, or the plain text of the covered children of an element.
func (c *Controller) selectedText() string {
	if c.sel == nil || c.sel.Caret() {
		return ""
	}
	n, err := c.doc.Node(c.sel.Node)
	if err != nil {
		return ""
	}

	if n.Kind == KindText {
		runes := []rune(n.Text)
		start := clamp(c.sel.Start, 0, len(runes))
		end := clamp(c.sel.End, start, len(runes))
		return string(runes[start:end])
	}

	var b strings.Builder
	start := clamp(c.sel.Start, 0, len(n.Children))
	end := clamp(c.sel.End, start, len(n.Children))
	for _, child := range n.Children[start:end] {
		c.doc.walk(child, func(_ NodeID, cn *Node) bool {
			if cn.Kind == KindText {
				b.WriteString(cn.Text)
			}
			return true
		})
	}
	return b.String()
}

// deleteSelectedContent removes whatever the selection covers and collapses
// the cursor to the selection start. A caret is a no-op.
func (c *Controller) deleteSelectedContent() {
	if c.sel == nil || c.sel.Caret() {
		return
	}
	n, err := c.doc.Node(c.sel.Node)
	if err != nil {
		return
	}

	if n.Kind == KindText {
		runes := []rune(n.Text)
		start := clamp(c.sel.Start, 0, len(runes))
		end := clamp(c.sel.End, start, len(runes))
		c.doc.arena[c.sel.Node].Text = string(runes[:start]) + string(runes[end:])
		c.sel = &Selection{Node: c.sel.Node, Start: start, End: start}
		return
	}

	start := clamp(c.sel.Start, 0, len(n.Children))
	end := clamp(c.sel.End, start, len(n.Children))
	doomed := append([]NodeID(nil), n.Children[start:end]...)
	for _, id := range doomed {
		_ = c.doc.Detach(id)
	}
	c.sel = &Selection{Node: c.sel.Node, Start: start, End: start}
}

// wrapSelection replaces the selected text with a wrapper node containing
// that text, cursor after the wrapper.
func (c *Controller) wrapSelection(wrapper Node, text string) error {
	c.deleteSelectedContent()
	id, err := c.insertAtCaret(wrapper)
	if err != nil {
		return err
	}
	if _, err := c.doc.NewNode(id, Node{Kind: KindText, Text: text}); err != nil {
		return err
	}
	c.syncContent()
	return nil
}

// stripTrailingToken removes the final occurrence of token from a text node
// and parks the caret at the node's end.
func (c *Controller) stripTrailingToken(id NodeID, token string) {
	n, err := c.doc.Node(id)
	if err != nil {
		return
	}
	text := n.Text
	if i := strings.LastIndex(text, token); i >= 0 {
		text = strings.TrimSpace(text[:i] + text[i+len(token):])
	}
	c.doc.arena[id].Text = text
	pos := utf8.RuneCountInString(text)
	c.sel = &Selection{Node: id, Start: pos, End: pos}
}

// inSubtree reports whether id lives in the subtree rooted at rootID.
func (c *Controller) inSubtree(id, rootID NodeID) bool {
	for cur := id; cur != NoNode; {
		if cur == rootID {
			return true
		}
		n, err := c.doc.Node(cur)
		if err != nil {
			return false
		}
		cur = n.Parent
	}
	return false
}

// syncContent republishes the serialized snapshot onto the session (the
// form state the save endpoints read).
func (c *Controller) syncContent() {
	if c.session != nil {
		c.session.Content = c.doc.Serialize()
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
