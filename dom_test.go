package dom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocumentSlicing(t *testing.T) {
	in := `<div id="a"><b>x</b>rest</div>`
	doc := mustParse(t, in)

	div, ok := doc.GetElementByID("a")
	require.True(t, ok)

	// while boundaries are valid, outer markup is a direct slice of the input
	require.Equal(t, in, string(doc.OuterHTML(div)))
	span, ok := doc.Boundaries(div)
	require.True(t, ok)
	require.Equal(t, in, string(span.Slice(doc.Input())))

	// inner excludes the element's own tags; outer includes them
	require.Equal(t, `<b>x</b>rest`, string(doc.InnerHTML(div)))
	require.Equal(t, `<div id="a">`+string(doc.InnerHTML(div))+`</div>`, string(doc.OuterHTML(div)))

	require.Equal(t, "xrest", string(doc.InnerText(div)))
}

func TestDocumentMutationInvalidatesBoundaries(t *testing.T) {
	in := `<section><div><a href="/about">About</a></div><p>intact</p></section>`
	doc := mustParse(t, in)

	hs, err := doc.QuerySelectorAll("a[href]")
	require.NoError(t, err)
	require.Len(t, hs, 1)
	a := hs[0]

	attrs, err := doc.MutateAttributes(a)
	require.NoError(t, err)
	attrs.Set("href", []byte("http://x/"))

	// the element and all ancestors lose their boundaries...
	_, ok := doc.Boundaries(a)
	require.False(t, ok)
	div, _, err := parentOf(doc, a)
	require.NoError(t, err)
	_, ok = doc.Boundaries(div)
	require.False(t, ok)
	_, ok = doc.Raw(div)
	require.False(t, ok)

	// ...but untouched siblings keep theirs
	p, _, err2 := doc.QuerySelector("p")
	require.NoError(t, err2)
	_, ok = doc.Boundaries(p)
	require.True(t, ok)

	// recomputed markup reflects the new value
	require.Equal(t, `<div><a href="http://x/">About</a></div>`, string(doc.OuterHTML(div)))
}

func parentOf(doc *Document, h NodeHandle) (NodeHandle, *Node, error) {
	n, err := doc.Resolve(h)
	if err != nil {
		return 0, nil, err
	}
	p, ok := n.Parent()
	if !ok {
		return 0, nil, ErrBadHandle
	}
	pn, err := doc.Resolve(p)
	return p, pn, err
}

func TestDocumentSerializeEscaping(t *testing.T) {
	doc := mustParse(t, `<a title="x">t</a>`)

	h := doc.Roots()[0]
	attrs, err := doc.MutateAttributes(h)
	require.NoError(t, err)
	attrs.Set("title", []byte(`say "hi" & <go>`))

	out := string(doc.OuterHTML(h))
	require.Contains(t, out, `&#34;hi&#34;`)
	require.Contains(t, out, `&amp;`)
	require.NotContains(t, out, `"hi"`)
}

func TestDocumentSerializeBareAttribute(t *testing.T) {
	doc := mustParse(t, `<iframe allowfullscreen x=1></iframe>`)

	h := doc.Roots()[0]
	attrs, err := doc.MutateAttributes(h)
	require.NoError(t, err)
	require.True(t, attrs.Remove("x"))

	require.Equal(t, `<iframe allowfullscreen></iframe>`, string(doc.OuterHTML(h)))
}

func TestDocumentSerializeVoid(t *testing.T) {
	doc := mustParse(t, `<p><br>x</p>`)

	p := doc.Roots()[0]
	_, err := doc.MutateAttributes(p)
	require.NoError(t, err)

	require.Equal(t, `<p><br>x</p>`, string(doc.OuterHTML(p)))
}

func TestDocumentAppendChild(t *testing.T) {
	doc := mustParse(t, `<ul><li>a</li></ul>`)

	ul := doc.Roots()[0]
	li := doc.NewElement("li")
	require.NoError(t, doc.AppendChild(li, doc.NewText([]byte("b"))))
	require.NoError(t, doc.AppendChild(ul, li))

	require.Equal(t, `<ul><li>a</li><li>b</li></ul>`, string(doc.OuterHTML(ul)))
	require.Len(t, doc.ChildrenTop(ul), 2)

	_, ok := doc.Boundaries(ul)
	require.False(t, ok)
}

func TestDocumentChildren(t *testing.T) {
	doc := mustParse(t, `<div><p>a<b>c</b></p><i>d</i></div>`)

	div := doc.Roots()[0]
	top := doc.ChildrenTop(div)
	require.Len(t, top, 2)

	all := doc.ChildrenAll(div)
	require.Len(t, all, 6) // p, "a", b, "c", i, "d" in pre-order

	var kinds []string
	for _, h := range all {
		n, err := doc.Resolve(h)
		require.NoError(t, err)
		if n.Type == ElementNode {
			kinds = append(kinds, n.TagName().String())
		} else {
			kinds = append(kinds, n.Data().String())
		}
	}
	require.Equal(t, []string{"p", "a", "b", "c", "i", "d"}, kinds)
}

func TestDocumentChildListSpill(t *testing.T) {
	doc := mustParse(t, `<ul><li>1</li><li>2</li><li>3</li><li>4</li><li>5</li><li>6</li></ul>`)

	ul := doc.Roots()[0]
	require.Len(t, doc.ChildrenTop(ul), 6)

	hs, err := doc.QuerySelectorAll("li")
	require.NoError(t, err)
	require.Len(t, hs, 6)
}

func TestDocumentHandleErrors(t *testing.T) {
	doc := mustParse(t, `<p>x</p>`)

	_, err := doc.Resolve(NodeHandle(999))
	require.ErrorIs(t, err, ErrBadHandle)

	// text node is not an element
	text := doc.ChildrenTop(doc.Roots()[0])[0]
	_, err = doc.Element(text)
	require.ErrorIs(t, err, ErrTypeMismatch)
	_, err = doc.Attributes(text)
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestBytesViews(t *testing.T) {
	doc := mustParse(t, `<p id="x">hey</p>`)

	n, err := doc.Element(doc.Roots()[0])
	require.NoError(t, err)
	require.False(t, n.TagName().IsOwned())

	id, ok := n.Attributes().ID()
	require.True(t, ok)
	require.False(t, id.IsOwned())
	require.Equal(t, 1, id.Len())

	owned := OwnBytes([]byte("x"))
	require.True(t, owned.IsOwned())
	require.True(t, owned.Equal(id))

	// owned copies detach from the source buffer
	src := []byte("abc")
	cp := OwnBytes(src)
	src[0] = 'z'
	require.Equal(t, "abc", cp.String())
}

func TestParseEmptyInput(t *testing.T) {
	doc := mustParse(t, "")
	require.Empty(t, doc.Roots())
	require.Empty(t, doc.Nodes())
}
