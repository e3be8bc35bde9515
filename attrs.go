package lyric

import "encoding/xml"

// Namespace URIs the engine recognizes. TTML documents in the wild are
// inconsistent about declaring these: some bind them properly via xmlns:*,
// some just use the bare prefix with no declaration at all. encoding/xml
// resolves a declared prefix to its URI and leaves an undeclared prefix as
// the literal prefix string in xml.Name.Space, so both styles are matched by
// checking a small alias set rather than a single canonical URI.
const (
	nsXML    = "http://www.w3.org/XML/1998/namespace"
	nsTTM    = "http://www.w3.org/ns/ttml#metadata"
	nsItunes = "http://music.apple.com/lyric-ttml-internal"
)

func spaceMatchesAlias(space string, aliases ...string) bool {
	if space == "" {
		return true
	}
	for _, a := range aliases {
		if space == a {
			return true
		}
	}
	return false
}

// attrLocal looks up an attribute by local name only, ignoring namespace.
func attrLocal(attrs []xml.Attr, local string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// attrNS looks up an attribute that may appear under one of the given
// namespace aliases (or a bare, undeclared prefix) or with no namespace at
// all (the common "role=" vs "ttm:role=" aliasing TTML tolerates).
func attrNS(attrs []xml.Attr, local string, aliases ...string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == local && spaceMatchesAlias(a.Name.Space, aliases...) {
			return a.Value, true
		}
	}
	return "", false
}

func hasAttrLocal(attrs []xml.Attr, local string) bool {
	_, ok := attrLocal(attrs, local)
	return ok
}

// isTTMName reports whether name is <local> under an explicit ttm: prefix
// (declared or not) — unlike attrNS, a bare unprefixed element does NOT
// count, since metadata tags like <ttm:agent> are only ever written with
// the prefix in practice.
func isTTMName(name xml.Name, local string) bool {
	return name.Local == local && (name.Space == "ttm" || name.Space == nsTTM)
}
