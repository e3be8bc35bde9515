package lyric

// StripMetadata is a declared option surface for caller-supplied keyword
// and regex-based metadata stripping (e.g. removing "Lyrics provided by..."
// credit lines that some sources embed directly in the lyric text). Like
// ApplyChineseConversion, this is a deliberate pass-through: opts.Keywords
// and opts.RegexPatterns describe a policy this module never owns, only
// carries so a caller can wire their own stripping pass around a single,
// documented option struct.
func StripMetadata(data *ParsedSourceData, opts MetadataStripperOptions) *ParsedSourceData {
	return data
}
