package lyric

// ApplyChineseConversion is a declared option surface for Simplified/
// Traditional Chinese text conversion. It is intentionally a pass-through:
// the conversion table/config this engine would need (e.g. OpenCC-style
// variant mappings) is data the caller supplies, not something this module
// ships or has an opinion about. A caller wanting real conversion applies it
// themselves using opts.ConfigName to select their own table, either before
// parsing or over the LineText/Syllable text this function leaves untouched.
func ApplyChineseConversion(lines []LyricLine, opts ChineseConversionOptions) []LyricLine {
	return lines
}
