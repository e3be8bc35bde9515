// Package lyric implements a lyric-processing engine: parsing TTML lyric
// documents into a structured intermediate representation and applying
// agent-recognition and syllable-smoothing transform passes on top of it.
// The package performs no audio I/O, speaks no wire protocol, persists no
// state, and never renders back to TTML.
package lyric

import (
	log "github.com/sirupsen/logrus"
)

// Syllable is a single timed text fragment, typically one sung unit.
type Syllable struct {
	Text          string
	StartMs       int64
	EndMs         int64
	DurationMs    *int64
	EndsWithSpace bool
}

// Duration returns EndMs-StartMs, ignoring any cached DurationMs.
func (s Syllable) Duration() int64 {
	return s.EndMs - s.StartMs
}

// TranslationEntry is a single translation track attached to a line or
// background section.
type TranslationEntry struct {
	Text string
	Lang *string
}

// RomanizationEntry is a single phonetic-transliteration track attached to a
// line or background section. StartMs/EndMs carry the romanization span's
// own timing when the source provides it (nil otherwise), which the
// downstream adapter uses to match romanizations onto individual words by
// maximum overlap rather than attaching one romanization to a whole line.
type RomanizationEntry struct {
	Text    string
	Lang    *string
	Scheme  *string
	StartMs *int64
	EndMs   *int64
}

// BackgroundSection is a parallel layer of syllables (and optional
// translations/romanizations) accompanying a main line, typically sung by a
// backing voice.
type BackgroundSection struct {
	StartMs       int64
	EndMs         int64
	Syllables     []Syllable
	Translations  []TranslationEntry
	Romanizations []RomanizationEntry
}

// AgentDefault is the sentinel soloist agent ID assigned to a line when no
// agent was ever set during parsing.
const AgentDefault = "v1"

// AgentDuet is the conventional duet-partner agent ID.
const AgentDuet = "v2"

// AgentChorus is the conventional chorus agent ID.
const AgentChorus = "v1000"

// LyricLine is one line of lyrics in the canonical parsed model.
type LyricLine struct {
	StartMs            int64
	EndMs              int64
	LineText           *string
	MainSyllables      []Syllable
	Translations       []TranslationEntry
	Romanizations      []RomanizationEntry
	Agent              *string
	SongPart           *string
	ItunesKey          *string
	BackgroundSection  *BackgroundSection
}

// EffectiveAgent returns the line's agent, or AgentDefault if unset.
func (l LyricLine) EffectiveAgent() string {
	if l.Agent == nil || *l.Agent == "" {
		return AgentDefault
	}
	return *l.Agent
}

// LyricFormat tags the source format a ParsedSourceData was produced from.
type LyricFormat string

// LyricFormatTTML is the only format this engine currently parses.
const LyricFormatTTML LyricFormat = "ttml"

// ParsedSourceData is the output of a single parse call: ordered lines, raw
// metadata, and accumulated non-fatal warnings. It is produced once; the
// optional RecognizeAgents/SmoothSyllables post-passes return new line
// slices, which the caller stores back into Lines (as Pipeline does).
type ParsedSourceData struct {
	Lines               []LyricLine
	RawMetadata         map[string][]string
	SourceFormat        LyricFormat
	SourceFilename      *string
	IsLineTimedSource   bool
	Warnings            []string
	RawTTMLFromInput    *string
}

func newParsedSourceData() *ParsedSourceData {
	return &ParsedSourceData{
		RawMetadata:   make(map[string][]string),
		SourceFormat:  LyricFormatTTML,
	}
}

func (p *ParsedSourceData) addMetadata(key, value string) {
	p.RawMetadata[key] = append(p.RawMetadata[key], value)
}

func (p *ParsedSourceData) warn(msg string) {
	p.Warnings = append(p.Warnings, msg)
	log.WithField("tag", tagParser).Warn(msg)
}

// DefaultLanguageOptions supplies fallback BCP-47-like language tags used
// when a translation/romanization span carries no xml:lang of its own.
type DefaultLanguageOptions struct {
	Main         *string
	Translation  *string
	Romanization *string
}

// AgentRecognizerOptions configures the agent (singer) recognition pass.
type AgentRecognizerOptions struct {
	Enabled           bool
	CustomPattern     *string
	CaseSensitive     bool
	InheritAgent      bool
	RemoveMarkerLines bool
}

// NewDefaultAgentRecognizerOptions returns the conventional defaults: enabled,
// the built-in "(Name):" pattern, case-insensitive, inheriting the carried
// agent across non-marker lines, and keeping marker-only lines.
func NewDefaultAgentRecognizerOptions() AgentRecognizerOptions {
	return AgentRecognizerOptions{
		Enabled:           true,
		CaseSensitive:     false,
		InheritAgent:      true,
		RemoveMarkerLines: false,
	}
}

// SyllableSmoothingOptions configures the syllable-duration smoothing pass.
type SyllableSmoothingOptions struct {
	Factor              float64
	DurationThresholdMs int64
	GapThresholdMs      int64
	SmoothingIterations int
}

// NewDefaultSyllableSmoothingOptions returns the tuned defaults used across
// the reference lyric sources this engine was built against.
func NewDefaultSyllableSmoothingOptions() SyllableSmoothingOptions {
	return SyllableSmoothingOptions{
		Factor:              0.15,
		DurationThresholdMs: 50,
		GapThresholdMs:      100,
		SmoothingIterations: 5,
	}
}

// ChineseConversionOptions is an option surface for caller-supplied Chinese
// text conversion (e.g. Simplified/Traditional). The engine declares the
// surface only; ApplyChineseConversion in chinese.go is a deliberate
// pass-through because the conversion policy (which config/table to use) is
// entirely caller-supplied.
type ChineseConversionOptions struct {
	ConfigName *string
}

// MetadataStripperOptions is an option surface for caller-supplied metadata
// keyword/regex stripping. StripMetadata in metadata_stripper.go is a
// deliberate pass-through for the same reason as ChineseConversionOptions.
type MetadataStripperOptions struct {
	Enabled              bool
	Keywords             []string
	KeywordCaseSensitive bool
	EnableRegexStripping bool
	RegexPatterns        []string
	RegexCaseSensitive   bool
}

// NewDefaultMetadataStripperOptions returns sensible defaults: enabled,
// regex stripping on, both case-insensitive.
func NewDefaultMetadataStripperOptions() MetadataStripperOptions {
	return MetadataStripperOptions{
		Enabled:              true,
		EnableRegexStripping: true,
	}
}

func strPtr(s string) *string { return &s }

func i64Ptr(v int64) *int64 { return &v }
