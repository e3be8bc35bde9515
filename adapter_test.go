package lyric

import "testing"

func TestFlattenDuetAlternation(t *testing.T) {
	data := &ParsedSourceData{Lines: []LyricLine{
		{Agent: strPtr("v1"), MainSyllables: []Syllable{{Text: "a", StartMs: 0, EndMs: 100}}},
		{Agent: strPtr("v2"), MainSyllables: []Syllable{{Text: "b", StartMs: 100, EndMs: 200}}},
		{Agent: strPtr("v1"), MainSyllables: []Syllable{{Text: "c", StartMs: 200, EndMs: 300}}},
		{Agent: strPtr("v3"), MainSyllables: []Syllable{{Text: "d", StartMs: 300, EndMs: 400}}},
	}}

	out := Flatten(data)
	want := []bool{false, true, false, false}
	for i, w := range want {
		if out[i].IsDuet != w {
			t.Errorf("line %d (agent %s) IsDuet = %v, want %v", i, out[i].Agent, out[i].IsDuet, w)
		}
	}
}

func TestFlattenDuetAlternationAmongOtherAgents(t *testing.T) {
	data := &ParsedSourceData{Lines: []LyricLine{
		{Agent: strPtr("v1"), MainSyllables: []Syllable{{Text: "a", StartMs: 0, EndMs: 100}}},
		{Agent: strPtr("v3"), MainSyllables: []Syllable{{Text: "b", StartMs: 100, EndMs: 200}}},
		{Agent: strPtr("v4"), MainSyllables: []Syllable{{Text: "c", StartMs: 200, EndMs: 300}}},
		{Agent: strPtr("v3"), MainSyllables: []Syllable{{Text: "d", StartMs: 300, EndMs: 400}}},
	}}

	out := Flatten(data)
	want := []bool{false, false, true, false}
	for i, w := range want {
		if out[i].IsDuet != w {
			t.Errorf("line %d (agent %s) IsDuet = %v, want %v", i, out[i].Agent, out[i].IsDuet, w)
		}
	}
}

func TestSelectTranslationPrefersZhCN(t *testing.T) {
	entries := []TranslationEntry{
		{Text: "hello", Lang: strPtr("ja")},
		{Text: "你好", Lang: strPtr("zh-CN")},
	}
	if got := selectTranslation(entries); got != "你好" {
		t.Errorf("selectTranslation = %q, want 你好", got)
	}
}

func TestSelectTranslationEmptyMarker(t *testing.T) {
	entries := []TranslationEntry{{Text: "//", Lang: strPtr("zh-CN")}}
	if got := selectTranslation(entries); got != "" {
		t.Errorf("selectTranslation = %q, want empty string for // marker", got)
	}
}

func TestSelectTranslationFallsBackToFirst(t *testing.T) {
	entries := []TranslationEntry{{Text: "first", Lang: strPtr("de")}, {Text: "second", Lang: strPtr("fr")}}
	if got := selectTranslation(entries); got != "first" {
		t.Errorf("selectTranslation = %q, want first", got)
	}
}

func TestFlattenInstrumentalExtension(t *testing.T) {
	data := &ParsedSourceData{Lines: []LyricLine{
		{MainSyllables: []Syllable{{Text: "♪", StartMs: 0, EndMs: 500}}},
	}}

	out := Flatten(data)
	if out[0].EndMs != instrumentalExtensionMs {
		t.Errorf("EndMs = %d, want %d", out[0].EndMs, instrumentalExtensionMs)
	}
	if out[0].Words[0].EndMs != instrumentalExtensionMs {
		t.Errorf("word EndMs = %d, want %d", out[0].Words[0].EndMs, instrumentalExtensionMs)
	}
}

func TestFlattenNoInstrumentalExtensionForMultiSyllableLine(t *testing.T) {
	data := &ParsedSourceData{Lines: []LyricLine{
		{StartMs: 0, EndMs: 200, MainSyllables: []Syllable{
			{Text: "a", StartMs: 0, EndMs: 100},
			{Text: "b", StartMs: 100, EndMs: 200},
		}},
	}}
	out := Flatten(data)
	if out[0].EndMs != 200 {
		t.Errorf("EndMs = %d, want 200 (no instrumental extension for multi-syllable line)", out[0].EndMs)
	}
}

func TestFlattenRomanizationOverlapMatching(t *testing.T) {
	data := &ParsedSourceData{Lines: []LyricLine{{
		MainSyllables: []Syllable{
			{Text: "a", StartMs: 0, EndMs: 100},
			{Text: "b", StartMs: 100, EndMs: 200},
		},
		Romanizations: []RomanizationEntry{
			{Text: "A-roman", StartMs: i64Ptr(0), EndMs: i64Ptr(100)},
			{Text: "B-roman", StartMs: i64Ptr(100), EndMs: i64Ptr(200)},
		},
	}}}

	out := Flatten(data)
	if out[0].Words[0].Romanization != "A-roman" {
		t.Errorf("word 0 romanization = %q, want A-roman", out[0].Words[0].Romanization)
	}
	if out[0].Words[1].Romanization != "B-roman" {
		t.Errorf("word 1 romanization = %q, want B-roman", out[0].Words[1].Romanization)
	}
}

func TestFlattenLineLevelRomanization(t *testing.T) {
	data := &ParsedSourceData{Lines: []LyricLine{{
		MainSyllables: []Syllable{
			{Text: "a", StartMs: 0, EndMs: 100},
			{Text: "b", StartMs: 100, EndMs: 200},
		},
		Romanizations: []RomanizationEntry{
			{Text: "whole-line-roman", StartMs: i64Ptr(0), EndMs: i64Ptr(0)},
		},
	}}}

	out := Flatten(data)
	for i, w := range out[0].Words {
		if w.Romanization != "whole-line-roman" {
			t.Errorf("word %d romanization = %q, want whole-line-roman", i, w.Romanization)
		}
	}
}

func TestFlattenBackgroundSection(t *testing.T) {
	data := &ParsedSourceData{Lines: []LyricLine{{
		StartMs:       0,
		EndMs:         1000,
		MainSyllables: []Syllable{{Text: "main", StartMs: 0, EndMs: 1000}},
		BackgroundSection: &BackgroundSection{
			StartMs:   200,
			EndMs:     1500,
			Syllables: []Syllable{{Text: "echo", StartMs: 200, EndMs: 1500}},
		},
	}}}

	out := Flatten(data)
	if len(out) != 2 {
		t.Fatalf("expected main line + background line, got %d entries", len(out))
	}
	if !out[1].IsBackground {
		t.Errorf("second entry should be marked IsBackground")
	}
	if out[1].BackgroundFor != 0 {
		t.Errorf("BackgroundFor = %d, want 0", out[1].BackgroundFor)
	}
	if out[0].EndMs != 1500 {
		t.Errorf("main line EndMs = %d, want extended to background's 1500", out[0].EndMs)
	}
}
