package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeAttachesToParent(t *testing.T) {
	d := NewDocument()

	p, err := d.NewNode(d.Root(), Node{Kind: KindParagraph})
	require.NoError(t, err)
	txt, err := d.NewNode(p, Node{Kind: KindText, Text: "hello"})
	require.NoError(t, err)

	parent, err := d.Node(p)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{txt}, parent.Children)

	child, err := d.Node(txt)
	require.NoError(t, err)
	assert.Equal(t, p, child.Parent)
}

func TestNewNodeUnknownParent(t *testing.T) {
	d := NewDocument()

	_, err := d.NewNode(NodeID(99), Node{Kind: KindParagraph})
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestInsertAtClampsIndex(t *testing.T) {
	d := NewDocument()
	first, err := d.NewNode(d.Root(), Node{Kind: KindParagraph})
	require.NoError(t, err)

	before, err := d.InsertAt(d.Root(), -5, Node{Kind: KindParagraph})
	require.NoError(t, err)
	after, err := d.InsertAt(d.Root(), 100, Node{Kind: KindParagraph})
	require.NoError(t, err)

	root, err := d.Node(d.Root())
	require.NoError(t, err)
	assert.Equal(t, []NodeID{before, first, after}, root.Children)
}

func TestInsertAfterPlacesSibling(t *testing.T) {
	d := NewDocument()
	first, err := d.NewNode(d.Root(), Node{Kind: KindParagraph})
	require.NoError(t, err)
	last, err := d.NewNode(d.Root(), Node{Kind: KindParagraph})
	require.NoError(t, err)

	mid, err := d.InsertAfter(first, Node{Kind: KindImage, Src: "/a.png"})
	require.NoError(t, err)

	root, err := d.Node(d.Root())
	require.NoError(t, err)
	assert.Equal(t, []NodeID{first, mid, last}, root.Children)
}

func TestDetachRootIsRefused(t *testing.T) {
	d := NewDocument()
	assert.ErrorIs(t, d.Detach(d.Root()), ErrNotDeletable)
}

func TestDetachTombstonesSubtree(t *testing.T) {
	d := NewDocument()
	p, err := d.NewNode(d.Root(), Node{Kind: KindParagraph})
	require.NoError(t, err)
	txt, err := d.NewNode(p, Node{Kind: KindText, Text: "gone"})
	require.NoError(t, err)

	require.NoError(t, d.Detach(p))

	_, err = d.Node(p)
	assert.ErrorIs(t, err, ErrNodeNotFound)
	_, err = d.Node(txt)
	assert.ErrorIs(t, err, ErrNodeNotFound)

	root, err := d.Node(d.Root())
	require.NoError(t, err)
	assert.Empty(t, root.Children)

	// Tombstoned slots never come back, even for the same subtree.
	assert.ErrorIs(t, d.Detach(p), ErrNodeNotFound)
}

func TestChildIndex(t *testing.T) {
	d := NewDocument()
	a, err := d.NewNode(d.Root(), Node{Kind: KindParagraph})
	require.NoError(t, err)
	b, err := d.NewNode(d.Root(), Node{Kind: KindParagraph})
	require.NoError(t, err)

	idx, err := d.ChildIndex(a)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	idx, err = d.ChildIndex(b)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = d.ChildIndex(d.Root())
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestAncestorOfKind(t *testing.T) {
	d := NewDocument()
	list, err := d.NewNode(d.Root(), Node{Kind: KindList})
	require.NoError(t, err)
	item, err := d.NewNode(list, Node{Kind: KindListItem})
	require.NoError(t, err)
	txt, err := d.NewNode(item, Node{Kind: KindText, Text: "entry"})
	require.NoError(t, err)

	assert.Equal(t, item, d.AncestorOfKind(txt, KindListItem))
	assert.Equal(t, list, d.AncestorOfKind(txt, KindList))
	assert.Equal(t, NoNode, d.AncestorOfKind(txt, KindImage))
}

func TestNodesOfKindDocumentOrder(t *testing.T) {
	d := NewDocument()
	p, err := d.NewNode(d.Root(), Node{Kind: KindParagraph})
	require.NoError(t, err)
	inner, err := d.NewNode(p, Node{Kind: KindImage, Src: "/inner.png"})
	require.NoError(t, err)
	outer, err := d.NewNode(d.Root(), Node{Kind: KindImage, Src: "/outer.png"})
	require.NoError(t, err)

	assert.Equal(t, []NodeID{inner, outer}, d.NodesOfKind(KindImage))
}

func TestArmEmbedRequiresVideoEmbed(t *testing.T) {
	d := NewDocument()
	img, err := d.NewNode(d.Root(), Node{Kind: KindImage, Src: "/a.png"})
	require.NoError(t, err)

	assert.ErrorIs(t, d.ArmEmbed(img), ErrNodeNotFound)
}

func TestDisarmEmbedsClearsEveryEmbed(t *testing.T) {
	d := NewDocument()
	first, err := d.NewNode(d.Root(), Node{Kind: KindVideoEmbed, VideoID: "aaa"})
	require.NoError(t, err)
	second, err := d.NewNode(d.Root(), Node{Kind: KindVideoEmbed, VideoID: "bbb"})
	require.NoError(t, err)

	require.NoError(t, d.ArmEmbed(first))
	require.NoError(t, d.ArmEmbed(second))

	d.DisarmEmbeds()

	for _, id := range []NodeID{first, second} {
		n, err := d.Node(id)
		require.NoError(t, err)
		assert.False(t, n.Armed)
	}
}
