package lyric

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// decodeToUTF8 accepts the raw bytes of a TTML document and returns valid
// UTF-8 text. It tries, in order: a UTF-8/UTF-16 byte-order mark, an explicit
// encoding="..." declared in the XML prolog for one of a handful of legacy
// single-byte codepages still seen in older lyric exports, then falls back
// to assuming the bytes are already UTF-8. Input that still doesn't decode
// to valid UTF-8 is a fatal encoding error.
func decodeToUTF8(raw []byte) (string, error) {
	enc := detectUnicodeEncoding(raw)
	if enc == nil {
		enc = detectDeclaredLegacyEncoding(raw)
	}
	if enc != nil {
		decoded, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return "", newEncodingError(err.Error())
		}
		raw = decoded
	}

	if !utf8.Valid(raw) {
		return "", newEncodingError("input is not valid UTF-8")
	}
	return string(raw), nil
}

func detectUnicodeEncoding(raw []byte) encoding.Encoding {
	switch {
	case len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF:
		return unicode.UTF8BOM // BOM present; decoder strips it.
	case len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return nil
	}
}

var xmlDeclEncodingRegexp = regexp.MustCompile(`(?i)<\?xml[^>]*\bencoding\s*=\s*["']([^"']+)["']`)

// legacyEncodings maps the handful of single-byte codepage names still found
// declared in older TTML/lyric exports to their golang.org/x/text/encoding
// implementation. UTF-8 and UTF-16 are handled separately via BOM detection
// above and are deliberately absent here.
var legacyEncodings = map[string]encoding.Encoding{
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
}

// detectDeclaredLegacyEncoding inspects the first bytes of raw for an XML
// prolog naming one of legacyEncodings, scanning only the leading window a
// prolog can plausibly occupy so this never runs a regexp over an entire
// large document. A declaration naming an unrecognized or Unicode encoding
// is ignored here; unrecognized names fall through to the plain UTF-8 path,
// and Unicode ones are already handled by their BOM.
func detectDeclaredLegacyEncoding(raw []byte) encoding.Encoding {
	window := raw
	if len(window) > 256 {
		window = window[:256]
	}
	m := xmlDeclEncodingRegexp.FindSubmatch(window)
	if m == nil {
		return nil
	}
	name := strings.ToLower(strings.TrimSpace(string(m[1])))
	return legacyEncodings[name]
}
