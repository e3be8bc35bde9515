package lyric

import (
	"errors"
	"testing"
)

const wordTimedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<tt xmlns:ttm="http://www.w3.org/ns/ttml#metadata" xmlns:itunes="http://music.apple.com/lyric-ttml-internal" xml:lang="en" itunes:timing="Word">
<head><metadata>
<ttm:agent type="person" xml:id="v1"><ttm:name type="full">Alice</ttm:name></ttm:agent>
<meta key="musicName" value="Test Song"/>
</metadata></head>
<body><div>
<p begin="0s" end="2s" ttm:agent="v1" itunes:key="L1"><span begin="0s" end="1s">Hello</span> <span begin="1.2s" end="2s">world</span></p>
<p begin="2s" end="4s" ttm:agent="v2"><span begin="2s" end="2.5s">Hi</span><span ttm:role="x-translation" xml:lang="zh-CN">你好</span><span ttm:role="x-bg"><span begin="3s" end="4s">(echo)</span></span></p>
</div></body>
</tt>`

func TestParseTTMLWordTimed(t *testing.T) {
	data, err := ParseTTML([]byte(wordTimedFixture), DefaultLanguageOptions{})
	if err != nil {
		t.Fatalf("ParseTTML returned error: %v", err)
	}
	if data.IsLineTimedSource {
		t.Fatalf("expected word-timed source")
	}
	if len(data.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(data.Lines))
	}

	l1 := data.Lines[0]
	if l1.Agent == nil || *l1.Agent != "v1" {
		t.Errorf("line 0 agent = %v, want v1", l1.Agent)
	}
	if l1.ItunesKey == nil || *l1.ItunesKey != "L1" {
		t.Errorf("line 0 itunes key = %v, want L1", l1.ItunesKey)
	}
	if len(l1.MainSyllables) != 2 {
		t.Fatalf("line 0 expected 2 syllables, got %d", len(l1.MainSyllables))
	}
	if l1.MainSyllables[0].Text != "Hello" || !l1.MainSyllables[0].EndsWithSpace {
		t.Errorf("syllable 0 = %+v, want Hello with EndsWithSpace", l1.MainSyllables[0])
	}
	if l1.MainSyllables[1].Text != "world" {
		t.Errorf("syllable 1 = %+v, want world", l1.MainSyllables[1])
	}
	if l1.LineText == nil || *l1.LineText != "Hello world" {
		t.Errorf("line 0 text = %v, want %q", l1.LineText, "Hello world")
	}

	l2 := data.Lines[1]
	if l2.Agent == nil || *l2.Agent != "v2" {
		t.Errorf("line 1 agent = %v, want v2", l2.Agent)
	}
	if len(l2.Translations) != 1 || l2.Translations[0].Text != "你好" {
		t.Errorf("line 1 translations = %+v, want [{你好 zh-CN}]", l2.Translations)
	}
	if l2.BackgroundSection == nil {
		t.Fatalf("line 1 expected a background section")
	}
	if len(l2.BackgroundSection.Syllables) != 1 || l2.BackgroundSection.Syllables[0].Text != "echo" {
		t.Errorf("background syllables = %+v, want [{echo ...}] (parens stripped)", l2.BackgroundSection.Syllables)
	}

	if data.RawMetadata["agent"] == nil || data.RawMetadata["agent"][0] != "v1=Alice" {
		t.Errorf("raw metadata agent = %v, want [v1=Alice]", data.RawMetadata["agent"])
	}
	if data.RawMetadata["agent-type-v1"] == nil || data.RawMetadata["agent-type-v1"][0] != "person" {
		t.Errorf("raw metadata agent-type-v1 = %v, want [person]", data.RawMetadata["agent-type-v1"])
	}
	if data.RawMetadata["musicName"] == nil || data.RawMetadata["musicName"][0] != "Test Song" {
		t.Errorf("raw metadata musicName = %v, want [Test Song]", data.RawMetadata["musicName"])
	}
}

const lineTimedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<tt xml:lang="en">
<body><div>
<p begin="0s" end="3s">Just a plain line of text</p>
</div></body>
</tt>`

func TestParseTTMLLineTimedFallback(t *testing.T) {
	data, err := ParseTTML([]byte(lineTimedFixture), DefaultLanguageOptions{})
	if err != nil {
		t.Fatalf("ParseTTML returned error: %v", err)
	}
	if !data.IsLineTimedSource {
		t.Fatalf("expected line-timed fallback when no <span begin=...> is present")
	}
	if len(data.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(data.Lines))
	}
	line := data.Lines[0]
	if line.LineText == nil || *line.LineText != "Just a plain line of text" {
		t.Errorf("line text = %v, want %q", line.LineText, "Just a plain line of text")
	}
	if line.StartMs != 0 || line.EndMs != 3000 {
		t.Errorf("line timing = [%d,%d], want [0,3000]", line.StartMs, line.EndMs)
	}
	if len(data.Warnings) == 0 {
		t.Errorf("expected a fallback warning to be recorded")
	}
}

const itunesTranslationFixture = `<?xml version="1.0" encoding="UTF-8"?>
<tt xmlns:itunes="http://music.apple.com/lyric-ttml-internal" itunes:timing="Word">
<head><metadata>
<iTunesMetadata><translations><translation xml:lang="zh-CN"><text for="L1">你好世界</text></translation></translations></iTunesMetadata>
</metadata></head>
<body><div>
<p begin="0s" end="1s" itunes:key="L1"><span begin="0s" end="1s">Hello</span></p>
</div></body>
</tt>`

func TestParseTTMLITunesTranslations(t *testing.T) {
	data, err := ParseTTML([]byte(itunesTranslationFixture), DefaultLanguageOptions{})
	if err != nil {
		t.Fatalf("ParseTTML returned error: %v", err)
	}
	if len(data.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(data.Lines))
	}
	got := data.Lines[0].Translations
	if len(got) != 1 || got[0].Text != "你好世界" || got[0].Lang == nil || *got[0].Lang != "zh-CN" {
		t.Errorf("translations = %+v, want [{你好世界 zh-CN}]", got)
	}
}

func TestParseTTMLMalformedXML(t *testing.T) {
	_, err := ParseTTML([]byte(`<tt><body><div><p begin="0s`), DefaultLanguageOptions{})
	if err == nil {
		t.Fatal("expected an error for truncated, unterminated XML")
	}
	if !errors.Is(err, ErrMalformedXML) {
		t.Errorf("expected ErrMalformedXML, got %v", err)
	}
}

func TestParseTTMLEncodingError(t *testing.T) {
	_, err := ParseTTML([]byte{0x80, 0x81, 0x82}, DefaultLanguageOptions{})
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("expected ErrEncoding, got %v", err)
	}
}

func TestParseTTMLEmptyMetaIgnored(t *testing.T) {
	raw := `<tt><head><metadata><meta key="onlyKey"/></metadata></head><body><div><p begin="0s" end="1s">x</p></div></body></tt>`
	data, err := ParseTTML([]byte(raw), DefaultLanguageOptions{})
	if err != nil {
		t.Fatalf("ParseTTML returned error: %v", err)
	}
	if len(data.Warnings) == 0 {
		t.Errorf("expected a warning for the malformed <meta> tag")
	}
}
