package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNode(t *testing.T, d *Document, parent NodeID, n Node) NodeID {
	t.Helper()
	id, err := d.NewNode(parent, n)
	require.NoError(t, err)
	return id
}

func TestSerializeParagraphAndText(t *testing.T) {
	d := NewDocument()
	p := mustNode(t, d, d.Root(), Node{Kind: KindParagraph})
	mustNode(t, d, p, Node{Kind: KindText, Text: "a < b & c"})

	assert.Equal(t, "<p>a &lt; b &amp; c</p>", d.Serialize())
}

func TestSerializeLink(t *testing.T) {
	d := NewDocument()
	a := mustNode(t, d, d.Root(), Node{Kind: KindLink, Href: "https://example.com"})
	mustNode(t, d, a, Node{Kind: KindText, Text: "example"})

	assert.Equal(t, `<a href="https://example.com" target="_blank">example</a>`, d.Serialize())
}

func TestSerializeLists(t *testing.T) {
	d := NewDocument()
	ul := mustNode(t, d, d.Root(), Node{Kind: KindList})
	li := mustNode(t, d, ul, Node{Kind: KindListItem})
	mustNode(t, d, li, Node{Kind: KindText, Text: "entry"})

	assert.Equal(t,
		`<ul style="padding-left: 20px; margin: 10px 0"><li>entry</li></ul>`,
		d.Serialize())

	ordered := NewDocument()
	ol := mustNode(t, ordered, ordered.Root(), Node{Kind: KindList, Ordered: true})
	item := mustNode(t, ordered, ol, Node{Kind: KindListItem})
	mustNode(t, ordered, item, Node{Kind: KindText, Text: "first"})

	assert.Equal(t,
		`<ol style="padding-left: 20px; margin: 10px 0"><li>first</li></ol>`,
		ordered.Serialize())
}

func TestSerializeStyledSpans(t *testing.T) {
	d := NewDocument()
	span := mustNode(t, d, d.Root(), Node{Kind: KindSpan, Bold: true, FontPx: 24})
	mustNode(t, d, span, Node{Kind: KindText, Text: "loud"})

	assert.Equal(t,
		`<span style="font-weight: bold; font-size: 24px">loud</span>`,
		d.Serialize())
}

func TestSerializeImageContainer(t *testing.T) {
	d := NewDocument()
	mustNode(t, d, d.Root(), Node{Kind: KindImage, Src: "/uploads/photo.png"})

	assert.Equal(t,
		`<div class="image-container"><img src="/uploads/photo.png" alt="삽입된 이미지"><button class="delete-btn">×</button></div>`,
		d.Serialize())
}

func TestSerializeVideoEmbed(t *testing.T) {
	d := NewDocument()
	mustNode(t, d, d.Root(), Node{Kind: KindVideoEmbed, VideoID: "abc123"})

	assert.Equal(t,
		`<div class="youtube-embed-container"><iframe src="https://www.youtube.com/embed/abc123" title="YouTube video" allowfullscreen></iframe><div class="overlay">▶️ 비디오 재생하려면 클릭</div><button class="delete-btn">×</button></div>`,
		d.Serialize())
}

func TestSerializeArmedEmbedStaysInert(t *testing.T) {
	d := NewDocument()
	id := mustNode(t, d, d.Root(), Node{Kind: KindVideoEmbed, VideoID: "abc123"})
	inert := d.Serialize()

	require.NoError(t, d.ArmEmbed(id))
	assert.Equal(t, inert, d.Serialize())
	assert.Contains(t, d.Serialize(), `class="overlay"`)
}

func TestSerializeSkipsDetachedNodes(t *testing.T) {
	d := NewDocument()
	p := mustNode(t, d, d.Root(), Node{Kind: KindParagraph})
	mustNode(t, d, p, Node{Kind: KindText, Text: "kept"})
	img := mustNode(t, d, d.Root(), Node{Kind: KindImage, Src: "/gone.png"})

	require.NoError(t, d.Detach(img))
	assert.Equal(t, "<p>kept</p>", d.Serialize())
}

func TestPlainText(t *testing.T) {
	d := NewDocument()
	p := mustNode(t, d, d.Root(), Node{Kind: KindParagraph})
	mustNode(t, d, p, Node{Kind: KindText, Text: "안녕하세요 "})
	a := mustNode(t, d, p, Node{Kind: KindLink, Href: "https://example.com"})
	mustNode(t, d, a, Node{Kind: KindText, Text: "링크"})
	mustNode(t, d, d.Root(), Node{Kind: KindImage, Src: "/a.png"})

	assert.Equal(t, "안녕하세요 링크", d.PlainText())
}

func TestParseRebuildsContainers(t *testing.T) {
	content := `<p>intro</p>` +
		`<div class="image-container"><img src="/uploads/a.png" alt="삽입된 이미지"><button class="delete-btn">×</button></div>` +
		`<div class="youtube-embed-container"><iframe src="https://www.youtube.com/embed/xyz789" title="YouTube video" allowfullscreen></iframe><div class="overlay">▶️ 비디오 재생하려면 클릭</div><button class="delete-btn">×</button></div>`

	d, err := Parse(content)
	require.NoError(t, err)

	images := d.NodesOfKind(KindImage)
	require.Len(t, images, 1)
	img, err := d.Node(images[0])
	require.NoError(t, err)
	assert.Equal(t, "/uploads/a.png", img.Src)

	embeds := d.NodesOfKind(KindVideoEmbed)
	require.Len(t, embeds, 1)
	embed, err := d.Node(embeds[0])
	require.NoError(t, err)
	assert.Equal(t, "xyz789", embed.VideoID)
	assert.False(t, embed.Armed)
}

func TestParseLegacyBoldAndFontTags(t *testing.T) {
	d, err := Parse(`<b>bold</b><font style="font-size: 18px">sized</font>`)
	require.NoError(t, err)

	spans := d.NodesOfKind(KindSpan)
	require.Len(t, spans, 2)

	first, err := d.Node(spans[0])
	require.NoError(t, err)
	assert.True(t, first.Bold)

	second, err := d.Node(spans[1])
	require.NoError(t, err)
	assert.Equal(t, 18, second.FontPx)
}

func TestSerializeParseRoundTrip(t *testing.T) {
	d := NewDocument()
	p := mustNode(t, d, d.Root(), Node{Kind: KindParagraph})
	mustNode(t, d, p, Node{Kind: KindText, Text: "서울의 재즈, "})
	span := mustNode(t, d, p, Node{Kind: KindSpan, Bold: true})
	mustNode(t, d, span, Node{Kind: KindText, Text: "강조"})
	a := mustNode(t, d, p, Node{Kind: KindLink, Href: "https://example.com"})
	mustNode(t, d, a, Node{Kind: KindText, Text: "더 보기"})
	ul := mustNode(t, d, d.Root(), Node{Kind: KindList})
	li := mustNode(t, d, ul, Node{Kind: KindListItem})
	mustNode(t, d, li, Node{Kind: KindText, Text: "하나"})
	mustNode(t, d, d.Root(), Node{Kind: KindImage, Src: "/uploads/cover.webp"})
	mustNode(t, d, d.Root(), Node{Kind: KindVideoEmbed, VideoID: "abc123"})

	snapshot := d.Serialize()
	reparsed, err := Parse(snapshot)
	require.NoError(t, err)
	assert.Equal(t, snapshot, reparsed.Serialize())
}
