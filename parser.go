package lyric

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
)

// spanRole is the closed set of roles a <span> can play inside a paragraph,
// tracked on a stack so nested background/translation/romanization spans
// resolve correctly.
type spanRole int

const (
	roleGeneric spanRole = iota
	roleTranslation
	roleRomanization
	roleBackground
)

type spanContext struct {
	role    spanRole
	lang    *string
	scheme  *string
	startMs *int64
	endMs   *int64
}

// lastSyllableInfo tracks whether the token immediately behind the cursor was
// a just-closed syllable, so a following whitespace-only text node can be
// folded into it as a trailing space rather than becoming its own syllable.
type lastSyllableInfo struct {
	pending       bool
	wasBackground bool
}

type bgAccum struct {
	startMs       int64
	endMs         int64
	haveStart     bool
	haveEnd       bool
	syllables     []Syllable
	translations  []TranslationEntry
	romanizations []RomanizationEntry
}

type pAccum struct {
	startMs        int64
	endMs          int64
	haveStart      bool
	haveEnd        bool
	agent          *string
	songPart       *string
	itunesKey      *string
	syllables      []Syllable
	translations   []TranslationEntry
	romanizations  []RomanizationEntry
	bg             *bgAccum
	directTextBuf  strings.Builder
}

type metadataState struct {
	inTranslations         bool
	inTranslation          bool
	translationLang        *string
	inText                 bool
	textForID              string
	translationBuf         strings.Builder
	inSongwriters          bool
	inSongwriter           bool
	songwriterBuf          strings.Builder
	inAgent                bool
	agentID                string
	agentType              string
	inAgentName            bool
	agentNameBuf           strings.Builder
	inOtherTTM             bool
	otherTTMKey            string
	otherTTMBuf            strings.Builder
}

type bodyState struct {
	inBody         bool
	inDiv          bool
	divSongPart    *string
	inP            bool
	current        *pAccum
	spanStack      []spanContext
	textBuf        strings.Builder
	lastSyllable   lastSyllableInfo
}

type parser struct {
	out                     *ParsedSourceData
	isLineTimingMode        bool
	defaultMainLang         *string
	defaultTranslationLang  *string
	defaultRomanizationLang *string
	xmlIDs                  map[string]bool
	inMetadata              bool
	meta                    metadataState
	body                    bodyState
	itunesTranslations      []itunesTranslation
}

var timedSpanRegexp = regexp.MustCompile(`<(?:[A-Za-z][\w.-]*:)?[Ss]pan\s[^>]*\bbegin\s*=`)

// ParseTTML parses a TTML lyric document into the canonical intermediate
// representation described by the engine. raw is the document's raw bytes
// (encoding is auto-detected: UTF-8 with or without BOM, or UTF-16 LE/BE with
// BOM). Malformed XML and undecodable input are fatal; everything else the
// format tolerates is recorded as a warning on the returned ParsedSourceData.
func ParseTTML(raw []byte, defaults DefaultLanguageOptions) (*ParsedSourceData, error) {
	text, err := decodeToUTF8(raw)
	if err != nil {
		return nil, err
	}

	p := &parser{
		out:                     newParsedSourceData(),
		defaultMainLang:         defaults.Main,
		defaultTranslationLang:  defaults.Translation,
		defaultRomanizationLang: defaults.Romanization,
		xmlIDs:                  make(map[string]bool),
	}
	p.out.RawTTMLFromInput = strPtr(text)
	p.out.IsLineTimedSource = !timedSpanRegexp.MatchString(text)

	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newMalformedXMLError(dec.InputOffset(), err.Error())
		}

		switch t := tok.(type) {
		case xml.StartElement:
			p.handleStart(t)
		case xml.EndElement:
			if err := p.handleEnd(t); err != nil {
				return nil, err
			}
		case xml.CharData:
			p.handleText(string(t))
		}
	}

	p.applyItunesTranslations()

	log.WithField("tag", tagParser).Debugf("parsed %d lines (line-timed=%v)", len(p.out.Lines), p.out.IsLineTimedSource)
	return p.out, nil
}

// applyItunesTranslations matches <iTunesMetadata><translations> entries
// against each line's itunes:key, appending a TranslationEntry to any line
// whose key matches. A translation targeting a key no line carries is
// silently dropped, mirroring the original parser (the iTunesMetadata block
// commonly outlives edits to the body).
func (p *parser) applyItunesTranslations() {
	if len(p.itunesTranslations) == 0 {
		return
	}
	for i := range p.out.Lines {
		line := &p.out.Lines[i]
		if line.ItunesKey == nil {
			continue
		}
		for _, t := range p.itunesTranslations {
			if t.forID == *line.ItunesKey {
				line.Translations = append(line.Translations, TranslationEntry{Text: t.text, Lang: t.lang})
			}
		}
	}
}

// --- dispatch ---

func (p *parser) handleStart(e xml.StartElement) {
	switch {
	case p.body.inP:
		p.handlePStart(e)
	case p.inMetadata:
		p.handleMetadataStart(e)
	default:
		p.handleGlobalStart(e)
	}
}

func (p *parser) handleEnd(e xml.EndElement) error {
	switch {
	case p.body.inP:
		return p.handlePEnd(e)
	case p.inMetadata:
		p.handleMetadataEnd(e)
		return nil
	default:
		p.handleGlobalEnd(e)
		return nil
	}
}

var unknownEntityRegexp = regexp.MustCompile(`&([A-Za-z][A-Za-z0-9]*);`)

// stripUnknownEntities drops any "&name;" sequence encoding/xml left
// untouched because Strict is false (the five predefined entities are always
// resolved by the decoder itself and never reach here as literal text), and
// records a warning for each one removed.
func (p *parser) stripUnknownEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}
	return unknownEntityRegexp.ReplaceAllStringFunc(text, func(m string) string {
		p.out.warn(fmt.Sprintf("ignored unknown XML entity %q", m))
		return ""
	})
}

func (p *parser) handleText(text string) {
	text = p.stripUnknownEntities(text)
	switch {
	case p.body.inP:
		p.handlePText(text)
	case p.inMetadata && p.meta.inText:
		p.meta.translationBuf.WriteString(text)
	case p.inMetadata && p.meta.inSongwriter:
		p.meta.songwriterBuf.WriteString(text)
	case p.inMetadata && p.meta.inAgentName:
		p.meta.agentNameBuf.WriteString(text)
	case p.inMetadata && p.meta.inOtherTTM:
		p.meta.otherTTMBuf.WriteString(text)
	}
}

// --- global (outside <metadata>, outside <body><p>) ---

func (p *parser) handleGlobalStart(e xml.StartElement) {
	local := e.Name.Local
	switch local {
	case "tt":
		p.processTTStart(e)
	case "metadata":
		p.inMetadata = true
	case "body":
		p.body.inBody = true
	case "div":
		if p.body.inBody {
			p.body.inDiv = true
			p.body.divSongPart = nil
			if v, ok := attrNS(e.Attr, "song-part", "itunes", nsItunes); ok {
				p.body.divSongPart = strPtr(v)
			}
		}
	case "p":
		if p.body.inBody {
			p.startP(e)
		}
	}
}

func (p *parser) handleGlobalEnd(e xml.EndElement) {
	switch e.Name.Local {
	case "metadata":
		p.inMetadata = false
	case "body":
		p.body.inBody = false
	case "div":
		p.body.inDiv = false
		p.body.divSongPart = nil
	}
}

func (p *parser) processTTStart(e xml.StartElement) {
	if v, ok := attrNS(e.Attr, "lang", "xml", nsXML); ok && p.defaultMainLang == nil {
		p.defaultMainLang = strPtr(v)
	}
	if v, ok := attrNS(e.Attr, "timing", "itunes", nsItunes); ok {
		p.out.IsLineTimedSource = strings.EqualFold(v, "line")
		p.isLineTimingMode = p.out.IsLineTimedSource
		return
	}
	p.isLineTimingMode = p.out.IsLineTimedSource
	if p.isLineTimingMode {
		p.out.warn("no word-level <span begin=...> timing found; falling back to line timing")
	}
}

// --- metadata ---

func (p *parser) handleMetadataStart(e xml.StartElement) {
	name := e.Name
	local := name.Local
	switch {
	case local == "meta":
		p.processMetaTag(e)
	case isTTMName(name, "agent"):
		p.processAgentStart(e)
	case isTTMName(name, "name") && p.meta.inAgent:
		p.meta.inAgentName = true
		p.meta.agentNameBuf.Reset()
	case local == "iTunesMetadata":
		// container only
	case local == "translations":
		p.meta.inTranslations = true
	case local == "translation" && p.meta.inTranslations:
		p.meta.inTranslation = true
		if v, ok := attrNS(e.Attr, "lang", "xml", nsXML); ok {
			p.meta.translationLang = strPtr(v)
		} else {
			p.meta.translationLang = nil
		}
	case local == "text" && p.meta.inTranslation:
		p.meta.inText = true
		p.meta.textForID, _ = attrLocal(e.Attr, "for")
		p.meta.translationBuf.Reset()
	case local == "songwriters":
		p.meta.inSongwriters = true
	case local == "songwriter" && p.meta.inSongwriters:
		p.meta.inSongwriter = true
		p.meta.songwriterBuf.Reset()
	case name.Space == "ttm" || name.Space == nsTTM:
		p.meta.inOtherTTM = true
		p.meta.otherTTMKey = local
		p.meta.otherTTMBuf.Reset()
	}
}

func (p *parser) processMetaTag(e xml.StartElement) {
	key, hasKey := attrLocal(e.Attr, "key")
	value, hasValue := attrLocal(e.Attr, "value")
	if !hasKey || !hasValue {
		p.out.warn("<meta> element missing key or value attribute, ignored")
		return
	}
	p.out.addMetadata(key, value)
}

func (p *parser) processAgentStart(e xml.StartElement) {
	p.meta.inAgent = true
	p.meta.agentID, _ = attrNS(e.Attr, "id", "xml", nsXML)
	p.meta.agentType, _ = attrLocal(e.Attr, "type")
	p.meta.agentNameBuf.Reset()

	if p.meta.agentID != "" {
		if p.xmlIDs[p.meta.agentID] {
			p.out.warn(fmt.Sprintf("duplicate xml:id %q in metadata", p.meta.agentID))
		}
		p.xmlIDs[p.meta.agentID] = true
	}
	if p.meta.agentType != "" && p.meta.agentID != "" {
		p.out.addMetadata("agent-type-"+p.meta.agentID, p.meta.agentType)
	}
}

func (p *parser) handleMetadataEnd(e xml.EndElement) {
	name := e.Name
	local := name.Local
	if local == "metadata" {
		p.inMetadata = false
		return
	}
	switch {
	case isTTMName(name, "name") && p.meta.inAgentName:
		p.meta.inAgentName = false
		if p.meta.agentID != "" {
			p.out.addMetadata("agent", p.meta.agentID+"="+NormalizeWhitespace(p.meta.agentNameBuf.String()))
		}
	case isTTMName(name, "agent"):
		p.meta.inAgent = false
		p.meta.agentID = ""
		p.meta.agentType = ""
	case local == "translations":
		p.meta.inTranslations = false
	case local == "translation" && p.meta.inTranslation:
		p.meta.inTranslation = false
	case local == "text" && p.meta.inText:
		p.meta.inText = false
		if p.meta.textForID != "" {
			p.itunesTranslations = append(p.itunesTranslations, itunesTranslation{
				forID: p.meta.textForID,
				lang:  p.meta.translationLang,
				text:  NormalizeWhitespace(p.meta.translationBuf.String()),
			})
		}
	case local == "songwriters":
		p.meta.inSongwriters = false
	case local == "songwriter" && p.meta.inSongwriter:
		p.meta.inSongwriter = false
		w := NormalizeWhitespace(p.meta.songwriterBuf.String())
		if w != "" {
			p.out.addMetadata("songwriter", w)
		}
	case name.Space == "ttm" || name.Space == nsTTM:
		if p.meta.inOtherTTM && local == p.meta.otherTTMKey {
			p.meta.inOtherTTM = false
			v := NormalizeWhitespace(p.meta.otherTTMBuf.String())
			if v != "" {
				p.out.addMetadata(local, v)
			}
		}
	}
}

// iTunes per-line translation text: <text for="L1">...</text> inside
// <translation xml:lang="...">. The "for" target is matched against each
// line's itunes:key once the whole document has been parsed (see
// applyItunesTranslations), so we just record (key, lang, text)
// triples keyed by the target id.
type itunesTranslation struct {
	forID string
	lang  *string
	text  string
}

// --- <body><div><p> ---

func (p *parser) startP(e xml.StartElement) {
	acc := &pAccum{}
	if v, ok := attrLocal(e.Attr, "begin"); ok {
		if ms, err := ParseTimecode(v); err == nil {
			acc.startMs, acc.haveStart = ms, true
		} else {
			p.out.warn(fmt.Sprintf("invalid begin time %q on <p>, defaulting to 0", v))
		}
	}
	if v, ok := attrLocal(e.Attr, "end"); ok {
		if ms, err := ParseTimecode(v); err == nil {
			acc.endMs, acc.haveEnd = ms, true
		} else {
			p.out.warn(fmt.Sprintf("invalid end time %q on <p>, ignored", v))
		}
	}
	if v, ok := attrNS(e.Attr, "agent", "ttm", nsTTM); ok {
		acc.agent = strPtr(v)
	}
	if v, ok := attrNS(e.Attr, "key", "itunes", nsItunes); ok {
		acc.itunesKey = strPtr(v)
	}
	if v, ok := attrNS(e.Attr, "song-part", "itunes", nsItunes); ok {
		acc.songPart = strPtr(v)
	} else if p.body.divSongPart != nil {
		acc.songPart = p.body.divSongPart
	}

	p.body.inP = true
	p.body.current = acc
	p.body.spanStack = nil
	p.body.lastSyllable = lastSyllableInfo{}
}

func (p *parser) handlePStart(e xml.StartElement) {
	switch e.Name.Local {
	case "span":
		p.processSpanStart(e)
	}
}

func (p *parser) handlePEnd(e xml.EndElement) error {
	switch e.Name.Local {
	case "span":
		p.processSpanEnd()
	case "br":
		p.body.current.directTextBuf.WriteString(" ")
	case "p":
		p.finalizeP()
		p.body.inP = false
		p.body.current = nil
		p.body.spanStack = nil
	}
	return nil
}

func (p *parser) handlePText(text string) {
	p.body.current.directTextBuf.WriteString(text)
	p.processSpanText(text)
}

// processSpanText applies the "whitespace-only text right after a syllable
// closes becomes that syllable's trailing space" rule instead of starting a
// new syllable, then — if a span is currently open — feeds the text into
// its buffer. The trailing-space check runs regardless of nesting depth:
// most word spans are direct children of <p> (so the stack is empty right
// after one closes), and that is exactly where this rule matters most.
func (p *parser) processSpanText(text string) {
	if p.body.lastSyllable.pending && text != "" && strings.TrimSpace(text) == "" {
		p.applyTrailingSpace()
		p.body.lastSyllable = lastSyllableInfo{}
		return
	}
	if strings.TrimSpace(text) != "" {
		p.body.lastSyllable = lastSyllableInfo{}
	}
	if len(p.body.spanStack) > 0 {
		p.body.textBuf.WriteString(text)
	}
}

func (p *parser) applyTrailingSpace() {
	if p.body.lastSyllable.wasBackground {
		if bg := p.body.current.bg; bg != nil && len(bg.syllables) > 0 {
			bg.syllables[len(bg.syllables)-1].EndsWithSpace = true
		}
		return
	}
	if n := len(p.body.current.syllables); n > 0 {
		p.body.current.syllables[n-1].EndsWithSpace = true
	}
}

func (p *parser) inBackgroundContext() bool {
	for _, c := range p.body.spanStack {
		if c.role == roleBackground {
			return true
		}
	}
	return false
}

// processSpanStart pushes a new span context. Role is determined from
// ttm:role ("x-bg" -> background, "x-translation" -> translation,
// "x-roman"/"x-translit" -> romanization, anything else -> a plain timed
// syllable span), following the Apple Music TTML lyrics convention this
// format is built on.
func (p *parser) processSpanStart(e xml.StartElement) {
	role := roleGeneric
	var lang, scheme *string
	var startMs, endMs *int64

	if v, ok := attrNS(e.Attr, "role", "ttm", nsTTM); ok {
		switch v {
		case "x-bg":
			role = roleBackground
		case "x-translation":
			role = roleTranslation
		case "x-roman", "x-translit":
			role = roleRomanization
		}
	}
	if v, ok := attrNS(e.Attr, "lang", "xml", nsXML); ok {
		lang = strPtr(v)
	}
	if v, ok := attrLocal(e.Attr, "scheme"); ok {
		scheme = strPtr(v)
	}
	if v, ok := attrLocal(e.Attr, "begin"); ok {
		if ms, err := ParseTimecode(v); err == nil {
			startMs = i64Ptr(ms)
		} else {
			p.out.warn(fmt.Sprintf("invalid begin time %q on span, ignored", v))
		}
	}
	if v, ok := attrLocal(e.Attr, "end"); ok {
		if ms, err := ParseTimecode(v); err == nil {
			endMs = i64Ptr(ms)
		} else {
			p.out.warn(fmt.Sprintf("invalid end time %q on span, ignored", v))
		}
	}

	if role == roleBackground {
		if p.body.current.bg == nil {
			p.body.current.bg = &bgAccum{}
		}
		if startMs != nil {
			p.body.current.bg.startMs, p.body.current.bg.haveStart = *startMs, true
		}
		if endMs != nil {
			p.body.current.bg.endMs, p.body.current.bg.haveEnd = *endMs, true
		}
	}

	p.body.spanStack = append(p.body.spanStack, spanContext{
		role: role, lang: lang, scheme: scheme, startMs: startMs, endMs: endMs,
	})
	p.body.textBuf.Reset()
}

func (p *parser) processSpanEnd() {
	if len(p.body.spanStack) == 0 {
		return
	}
	ctx := p.body.spanStack[len(p.body.spanStack)-1]
	p.body.spanStack = p.body.spanStack[:len(p.body.spanStack)-1]
	p.body.lastSyllable = lastSyllableInfo{}

	text := p.body.textBuf.String()
	defer p.body.textBuf.Reset()

	switch ctx.role {
	case roleBackground:
		return
	case roleTranslation:
		p.handleAuxSpanEnd(ctx, text, true)
	case roleRomanization:
		p.handleAuxSpanEnd(ctx, text, false)
	default:
		p.handleGenericSpanEnd(ctx, text)
	}
}

// handleGenericSpanEnd turns one timed <span> into a Syllable. A span
// lacking begin/end is dropped, with a warning only when its text is not
// blank. A span whose text is present but entirely whitespace becomes a
// single literal-space syllable, preserving inter-word timing; a span with
// no text node at all produces nothing.
func (p *parser) handleGenericSpanEnd(ctx spanContext, text string) {
	if text == "" {
		return
	}
	if ctx.startMs == nil || ctx.endMs == nil {
		if strings.TrimSpace(text) != "" {
			p.out.warn("span missing begin/end time, syllable dropped")
		}
		return
	}

	withinBG := p.inBackgroundContext()
	trimmed := strings.TrimSpace(text)
	sylText := " "
	if trimmed != "" {
		sylText = trimmed
		if withinBG {
			sylText = trimParens(sylText)
		}
	}

	syl := Syllable{Text: sylText, StartMs: *ctx.startMs, EndMs: *ctx.endMs}
	if withinBG {
		bg := p.body.current.bg
		if bg == nil {
			bg = &bgAccum{}
			p.body.current.bg = bg
		}
		bg.syllables = append(bg.syllables, syl)
		if !bg.haveStart || syl.StartMs < bg.startMs {
			bg.startMs, bg.haveStart = syl.StartMs, true
		}
		if !bg.haveEnd || syl.EndMs > bg.endMs {
			bg.endMs, bg.haveEnd = syl.EndMs, true
		}
	} else {
		p.body.current.syllables = append(p.body.current.syllables, syl)
	}
	p.body.lastSyllable = lastSyllableInfo{pending: true, wasBackground: withinBG}
}

func (p *parser) handleAuxSpanEnd(ctx spanContext, text string, isTranslation bool) {
	norm := NormalizeWhitespace(text)
	if norm == "" {
		return
	}
	lang := ctx.lang
	if lang == nil {
		if isTranslation {
			lang = p.defaultTranslationLang
		} else {
			lang = p.defaultRomanizationLang
		}
	}

	withinBG := p.inBackgroundContext()
	var bg *bgAccum
	if withinBG {
		if p.body.current.bg == nil {
			p.body.current.bg = &bgAccum{}
		}
		bg = p.body.current.bg
	}

	if isTranslation {
		entry := TranslationEntry{Text: norm, Lang: lang}
		if withinBG {
			bg.translations = append(bg.translations, entry)
		} else {
			p.body.current.translations = append(p.body.current.translations, entry)
		}
		return
	}
	entry := RomanizationEntry{Text: norm, Lang: lang, Scheme: ctx.scheme, StartMs: ctx.startMs, EndMs: ctx.endMs}
	if withinBG {
		bg.romanizations = append(bg.romanizations, entry)
	} else {
		p.body.current.romanizations = append(p.body.current.romanizations, entry)
	}
}

// finalizeP converts the accumulated <p> into a LyricLine, branching on
// whether the document is line-timed or word-timed. A paragraph that ends
// up with no text, no syllables, no background content, no translations,
// no romanizations and no positive duration is dropped silently — such a
// <p> carries nothing worth keeping.
func (p *parser) finalizeP() {
	acc := p.body.current

	line := LyricLine{
		Agent:     acc.agent,
		SongPart:  acc.songPart,
		ItunesKey: acc.itunesKey,
	}

	if acc.haveStart {
		line.StartMs = acc.startMs
	} else if len(acc.syllables) > 0 {
		line.StartMs = acc.syllables[0].StartMs
	}
	if acc.haveEnd {
		line.EndMs = acc.endMs
	} else if len(acc.syllables) > 0 {
		line.EndMs = acc.syllables[len(acc.syllables)-1].EndMs
	} else {
		line.EndMs = line.StartMs
	}

	if p.isLineTimingMode {
		p.finalizeLineMode(acc, &line)
	} else {
		p.finalizeWordMode(acc, &line)
	}

	line.Translations = acc.translations
	line.Romanizations = acc.romanizations

	if acc.bg != nil && (len(acc.bg.syllables) > 0 || len(acc.bg.translations) > 0 || len(acc.bg.romanizations) > 0) {
		bg := &BackgroundSection{
			Syllables:     acc.bg.syllables,
			Translations:  acc.bg.translations,
			Romanizations: acc.bg.romanizations,
		}
		if acc.bg.haveStart {
			bg.StartMs = acc.bg.startMs
		} else if len(acc.bg.syllables) > 0 {
			bg.StartMs = acc.bg.syllables[0].StartMs
		}
		if acc.bg.haveEnd {
			bg.EndMs = acc.bg.endMs
		} else if len(acc.bg.syllables) > 0 {
			bg.EndMs = acc.bg.syllables[len(acc.bg.syllables)-1].EndMs
		}
		line.BackgroundSection = bg
		if bg.EndMs > line.EndMs {
			line.EndMs = bg.EndMs
		}
	}

	if line.LineText == nil &&
		len(line.MainSyllables) == 0 &&
		line.BackgroundSection == nil &&
		len(line.Translations) == 0 &&
		len(line.Romanizations) == 0 &&
		line.EndMs <= line.StartMs {
		return
	}
	p.out.Lines = append(p.out.Lines, line)
}

func (p *parser) finalizeLineMode(acc *pAccum, line *LyricLine) {
	text := NormalizeWhitespace(acc.directTextBuf.String())
	if text == "" && len(acc.syllables) > 0 {
		var sb strings.Builder
		for i, s := range acc.syllables {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(s.Text)
		}
		text = NormalizeWhitespace(sb.String())
	}
	if text == "" {
		return
	}
	line.LineText = strPtr(text)
	line.MainSyllables = []Syllable{{Text: text, StartMs: line.StartMs, EndMs: line.EndMs}}
}

func (p *parser) finalizeWordMode(acc *pAccum, line *LyricLine) {
	line.MainSyllables = acc.syllables
	if len(acc.syllables) == 0 {
		return
	}
	var sb strings.Builder
	for i, s := range acc.syllables {
		sb.WriteString(s.Text)
		if s.EndsWithSpace && i != len(acc.syllables)-1 {
			sb.WriteString(" ")
		}
	}
	if text := NormalizeWhitespace(sb.String()); text != "" {
		line.LineText = strPtr(text)
	}
}
