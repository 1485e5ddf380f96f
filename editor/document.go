// Package editor implements the rich-text document model behind the blog
// authoring UI: an arena-allocated content tree, a command controller that
// mirrors the browser editing surface, and a lossless HTML snapshot format
// stored on the post's content field.
package editor

import (
	"errors"
	"fmt"
)

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrNotDeletable = errors.New("node is not a deletable container")
	ErrNoSelection  = errors.New("no active selection")
	ErrEmptyURL     = errors.New("url must not be empty")
	ErrBadVideoURL  = errors.New("cannot process YouTube URL")
)

// NodeKind identifies what a tree node represents.
type NodeKind int

const (
	KindRoot NodeKind = iota
	KindParagraph
	KindText
	KindLink
	KindList
	KindListItem
	KindImage
	KindVideoEmbed
	KindSpan
)

func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindParagraph:
		return "paragraph"
	case KindText:
		return "text"
	case KindLink:
		return "link"
	case KindList:
		return "list"
	case KindListItem:
		return "list-item"
	case KindImage:
		return "image"
	case KindVideoEmbed:
		return "video-embed"
	case KindSpan:
		return "span"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// NodeID indexes into the document arena. Detached slots are tombstoned and
// never reused, so a stale id can't silently alias a newer node.
type NodeID int

const NoNode NodeID = -1

// Node is one entry in the arena. Which fields are meaningful depends on
// Kind; the zero value of everything else is ignored.
type Node struct {
	Kind     NodeKind
	Parent   NodeID
	Children []NodeID

	Text    string // KindText
	Href    string // KindLink
	Src     string // KindImage
	VideoID string // KindVideoEmbed
	Ordered bool   // KindList

	// KindSpan styling.
	Bold      bool
	Italic    bool
	Underline bool
	FontPx    int

	// Armed tracks a video embed whose overlay has been clicked: the
	// playback surface accepts pointer events and the overlay is hidden.
	// Runtime-only; never serialized.
	Armed bool

	detached bool
}

// Cursor addresses a position in the tree: a rune offset inside a text
// node, or a child index inside anything else.
type Cursor struct {
	Node   NodeID
	Offset int
}

// Document is the mutable content tree for one editing session.
type Document struct {
	arena []Node
	root  NodeID
}

func NewDocument() *Document {
	d := &Document{}
	d.root = d.alloc(Node{Kind: KindRoot, Parent: NoNode})
	return d
}

// Root returns the id of the document root.
func (d *Document) Root() NodeID {
	return d.root
}

// Node returns the live node for id, or ErrNodeNotFound for ids that are out
// of range or belong to a detached subtree.
func (d *Document) Node(id NodeID) (*Node, error) {
	if id < 0 || int(id) >= len(d.arena) {
		return nil, ErrNodeNotFound
	}
	n := &d.arena[id]
	if n.detached {
		return nil, ErrNodeNotFound
	}
	return n, nil
}

func (d *Document) alloc(n Node) NodeID {
	d.arena = append(d.arena, n)
	return NodeID(len(d.arena) - 1)
}

// NewNode allocates a node and attaches it as the last child of parent.
// Note: alloc may grow the arena, so parent is re-indexed after allocation
// rather than held across it.
func (d *Document) NewNode(parent NodeID, n Node) (NodeID, error) {
	if _, err := d.Node(parent); err != nil {
		return NoNode, err
	}
	n.Parent = parent
	id := d.alloc(n)
	p := &d.arena[parent]
	p.Children = append(p.Children, id)
	return id, nil
}

// InsertAt allocates a node and places it at child index idx of parent.
// idx is clamped to the child list bounds.
func (d *Document) InsertAt(parent NodeID, idx int, n Node) (NodeID, error) {
	if _, err := d.Node(parent); err != nil {
		return NoNode, err
	}
	n.Parent = parent
	id := d.alloc(n)

	p := &d.arena[parent]
	if idx < 0 {
		idx = 0
	}
	if idx > len(p.Children) {
		idx = len(p.Children)
	}
	p.Children = append(p.Children[:idx], append([]NodeID{id}, p.Children[idx:]...)...)
	return id, nil
}

// InsertAfter allocates a node and places it immediately after sibling in
// the sibling's parent.
func (d *Document) InsertAfter(sibling NodeID, n Node) (NodeID, error) {
	s, err := d.Node(sibling)
	if err != nil {
		return NoNode, err
	}
	parent := s.Parent
	if parent == NoNode {
		return NoNode, ErrNodeNotFound
	}

	n.Parent = parent
	id := d.alloc(n)

	p := &d.arena[parent]
	for i, c := range p.Children {
		if c == sibling {
			p.Children = append(p.Children[:i+1], append([]NodeID{id}, p.Children[i+1:]...)...)
			return id, nil
		}
	}
	return NoNode, ErrNodeNotFound
}

// Detach removes id and its whole subtree from the document. The root
// cannot be detached. Arena slots stay tombstoned.
func (d *Document) Detach(id NodeID) error {
	if id == d.root {
		return ErrNotDeletable
	}
	n, err := d.Node(id)
	if err != nil {
		return err
	}

	if n.Parent != NoNode {
		if p, err := d.Node(n.Parent); err == nil {
			for i, c := range p.Children {
				if c == id {
					p.Children = append(p.Children[:i], p.Children[i+1:]...)
					break
				}
			}
		}
	}

	d.markDetached(id)
	return nil
}

func (d *Document) markDetached(id NodeID) {
	n := &d.arena[id]
	n.detached = true
	for _, c := range n.Children {
		d.markDetached(c)
	}
}

// ChildIndex returns id's position within its parent.
func (d *Document) ChildIndex(id NodeID) (int, error) {
	n, err := d.Node(id)
	if err != nil {
		return 0, err
	}
	if n.Parent == NoNode {
		return 0, ErrNodeNotFound
	}
	p, err := d.Node(n.Parent)
	if err != nil {
		return 0, err
	}
	for i, c := range p.Children {
		if c == id {
			return i, nil
		}
	}
	return 0, ErrNodeNotFound
}

// AncestorOfKind walks the parent chain starting at id, looking for kind.
// The walk stops at the document root. Returns NoNode when nothing matches.
func (d *Document) AncestorOfKind(id NodeID, kind NodeKind) NodeID {
	for cur := id; cur != NoNode && cur != d.root; {
		n, err := d.Node(cur)
		if err != nil {
			return NoNode
		}
		if n.Kind == kind {
			return cur
		}
		cur = n.Parent
	}
	return NoNode
}

// Walk visits every live node depth-first, parents before children.
func (d *Document) Walk(visit func(id NodeID, n *Node) bool) {
	d.walk(d.root, visit)
}

func (d *Document) walk(id NodeID, visit func(id NodeID, n *Node) bool) bool {
	n, err := d.Node(id)
	if err != nil {
		return true
	}
	if !visit(id, n) {
		return false
	}
	for _, c := range n.Children {
		if !d.walk(c, visit) {
			return false
		}
	}
	return true
}

// NodesOfKind returns the ids of every live node of the given kind, in
// document order.
func (d *Document) NodesOfKind(kind NodeKind) []NodeID {
	var out []NodeID
	d.Walk(func(id NodeID, n *Node) bool {
		if n.Kind == kind {
			out = append(out, id)
		}
		return true
	})
	return out
}

// ArmEmbed marks a video embed as interactive and hides its overlay. The
// transition is one-way per embed; only DisarmEmbeds reverses it.
func (d *Document) ArmEmbed(id NodeID) error {
	n, err := d.Node(id)
	if err != nil {
		return err
	}
	if n.Kind != KindVideoEmbed {
		return ErrNodeNotFound
	}
	n.Armed = true
	return nil
}

// DisarmEmbeds returns every video embed to the inert state: overlay
// visible, playback surface ignoring pointer events. Called when a click
// lands outside the editor so an armed embed can't keep capturing input.
func (d *Document) DisarmEmbeds() {
	for _, id := range d.NodesOfKind(KindVideoEmbed) {
		d.arena[id].Armed = false
	}
}
