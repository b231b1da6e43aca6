package dom

import "golang.org/x/net/html/atom"

// Tag classification policy. The void list matches what browsers treat as
// childless; it has drifted historically, so keep changes confined to
// isVoidTag.

// tagAtom interns a tag name case-insensitively. Unknown or overlong names
// yield zero, which classifies as an ordinary element.
func tagAtom(name []byte) atom.Atom {
	var buf [16]byte
	if len(name) > len(buf) {
		return 0
	}
	for i := 0; i < len(name); i++ {
		buf[i] = toLower(name[i])
	}
	return atom.Lookup(buf[:len(name)])
}

// isVoidTag reports whether the element never has children or a close tag.
func isVoidTag(a atom.Atom) bool {
	switch a {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr,
		atom.Img, atom.Input, atom.Link, atom.Meta, atom.Param, atom.Source,
		atom.Track, atom.Wbr:
		return true
	}
	return false
}

// isRawTextTag reports whether the element's content is a single
// uninterpreted byte run terminated only by its own close tag.
func isRawTextTag(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Textarea, atom.Title:
		return true
	}
	return false
}
