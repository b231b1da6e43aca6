package dom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parseAttrsOf(t *testing.T, markup string) *Attributes {
	t.Helper()
	doc, err := Parse([]byte(markup))
	require.NoError(t, err)
	require.NotEmpty(t, doc.Roots())
	attrs, err := doc.Attributes(doc.Roots()[0])
	require.NoError(t, err)
	return attrs
}

func TestAttributesInline(t *testing.T) {
	attrs := parseAttrsOf(t, `<a href="/about" target=_blank rel=noopener>`)

	require.Equal(t, 3, attrs.Len())

	v, ok := attrs.Get("href")
	require.True(t, ok)
	require.Equal(t, "/about", v.String())

	v, ok = attrs.Get("target")
	require.True(t, ok)
	require.Equal(t, "_blank", v.String())

	_, ok = attrs.Get("missing")
	require.False(t, ok)
	require.True(t, attrs.Contains("rel"))
	require.False(t, attrs.Contains("Rel")) // attribute keys are byte-exact
}

func TestAttributesPromotion(t *testing.T) {
	attrs := parseAttrsOf(t, `<a a=1 b=2 c=3 d=4 e=5 f=6 g=7>`)

	require.Equal(t, 7, attrs.Len())

	// insertion order survives promotion to the hashed layout
	var keys []string
	for _, e := range attrs.Entries() {
		keys = append(keys, e.Key.String())
	}
	require.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, keys)

	v, ok := attrs.Get("f")
	require.True(t, ok)
	require.Equal(t, "6", v.String())
}

func TestAttributesRemove(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{"inline", `<a a=1 b=2 c=3>`},
		{"promoted", `<a a=1 b=2 c=3 x=0 y=0 z=0>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := parseAttrsOf(t, tt.markup)
			n := attrs.Len()

			require.True(t, attrs.Remove("b"))
			require.False(t, attrs.Remove("b"))
			require.Equal(t, n-1, attrs.Len())
			require.False(t, attrs.Contains("b"))

			// remaining order unchanged
			require.Equal(t, "a", attrs.Entries()[0].Key.String())
			require.Equal(t, "c", attrs.Entries()[1].Key.String())

			v, ok := attrs.Get("c")
			require.True(t, ok)
			require.Equal(t, "3", v.String())
		})
	}
}

func TestAttributesRemoveValue(t *testing.T) {
	attrs := parseAttrsOf(t, `<input type=checkbox checked>`)

	require.True(t, attrs.RemoveValue("type"))
	a := attrs.Attr("type")
	require.NotNil(t, a)
	require.False(t, a.HasValue)

	// bare attribute stays bare
	require.True(t, attrs.RemoveValue("checked"))
	require.False(t, attrs.RemoveValue("missing"))
	require.Equal(t, 2, attrs.Len())
}

func TestAttributesValueShapes(t *testing.T) {
	attrs := parseAttrsOf(t, `<a plain empty="" single='q' unquoted=v>`)

	a := attrs.Attr("plain")
	require.NotNil(t, a)
	require.False(t, a.HasValue)

	a = attrs.Attr("empty")
	require.NotNil(t, a)
	require.True(t, a.HasValue)
	require.Equal(t, 0, a.Value.Len())

	v, _ := attrs.Get("single")
	require.Equal(t, "q", v.String())
	v, _ = attrs.Get("unquoted")
	require.Equal(t, "v", v.String())
}

func TestAttributesIDClassCache(t *testing.T) {
	attrs := parseAttrsOf(t, `<p id="para" class="big red">`)

	id, ok := attrs.ID()
	require.True(t, ok)
	require.Equal(t, "para", id.String())

	// class must return the class value, not the id
	class, ok := attrs.Class()
	require.True(t, ok)
	require.Equal(t, "big red", class.String())

	require.True(t, attrs.IsClassMember("big"))
	require.True(t, attrs.IsClassMember("red"))
	require.False(t, attrs.IsClassMember("re"))
	require.False(t, attrs.IsClassMember(""))
}

func TestAttributesCacheFollowsMutation(t *testing.T) {
	attrs := parseAttrsOf(t, `<p id="x">`)

	attrs.Set("class", []byte("added"))
	require.True(t, attrs.IsClassMember("added"))

	require.True(t, attrs.Remove("id"))
	_, ok := attrs.ID()
	require.False(t, ok)

	attrs.Set("id", []byte("y"))
	id, ok := attrs.ID()
	require.True(t, ok)
	require.Equal(t, "y", id.String())

	require.True(t, attrs.RemoveValue("class"))
	_, ok = attrs.Class()
	require.False(t, ok)
}

func TestAttributesSetNilValue(t *testing.T) {
	var attrs Attributes
	attrs.Set("disabled", nil)
	a := attrs.Attr("disabled")
	require.NotNil(t, a)
	require.False(t, a.HasValue)

	attrs.Set("disabled", []byte(""))
	require.True(t, attrs.Attr("disabled").HasValue)
	require.Equal(t, 1, attrs.Len())
}
