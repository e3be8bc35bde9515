package lyric

import (
	log "github.com/sirupsen/logrus"
)

const preferredTranslationLang = "zh-CN"

// instrumentalExtensionMs is how long, counted from its syllable's start, a
// single-syllable, single-line source is assumed to run, under the
// convention that such a source represents an instrumental track rather than
// a truncated one.
const instrumentalExtensionMs = 3_600_000

// RenderWord is one word-level unit ready for display: either a real
// syllable or a romanization fragment matched onto it.
type RenderWord struct {
	Text          string
	StartMs       int64
	EndMs         int64
	EndsWithSpace bool
	Romanization  string
}

// RenderLine is a single flattened, display-ready lyric line: the main
// track's words plus whichever translation/romanization/background content
// applies, with duet/chorus status already resolved.
type RenderLine struct {
	StartMs       int64
	EndMs         int64
	Words         []RenderWord
	Translation   string
	Agent         string
	IsDuet        bool
	IsBackground  bool
	BackgroundFor int // index into the flattened line slice of the main line this background section rides on, or -1
}

// Flatten converts the canonical parsed/recognized/smoothed representation
// into the consumer-facing render model: one RenderLine per main line, plus
// one extra RenderLine per background section, agent-alternation duet
// detection, zh-CN-preferred translation selection, and the single-syllable
// "instrumental" end-time extension.
//
// Agent-duet tracking uses a first-seen map, romanizations attach to words
// by maximum time overlap, "//" is treated as a deliberately empty
// translation, and a single start=end=0 romanization entry is treated as
// line-level rather than per-word.
func Flatten(data *ParsedSourceData) []RenderLine {
	duetMap := map[string]bool{}
	seenOrder := make([]string, 0, 4)

	result := make([]RenderLine, 0, len(data.Lines))
	for _, line := range data.Lines {
		agent := line.EffectiveAgent()
		isDuet := resolveDuet(agent, duetMap, &seenOrder)

		rl := RenderLine{
			StartMs:      line.StartMs,
			EndMs:        line.EndMs,
			Agent:        agent,
			IsDuet:       isDuet,
			BackgroundFor: -1,
		}
		rl.Words = buildWords(line.MainSyllables, line.Romanizations)
		rl.Translation = selectTranslation(line.Translations)

		result = append(result, rl)

		if line.BackgroundSection != nil {
			bgIdx := len(result)
			bg := line.BackgroundSection
			bgLine := RenderLine{
				StartMs:       bg.StartMs,
				EndMs:         bg.EndMs,
				Agent:         agent,
				IsDuet:        isDuet,
				IsBackground:  true,
				BackgroundFor: bgIdx - 1,
			}
			bgLine.Words = buildWords(bg.Syllables, bg.Romanizations)
			bgLine.Translation = selectTranslation(bg.Translations)
			result = append(result, bgLine)
			if bg.EndMs > result[bgIdx-1].EndMs {
				result[bgIdx-1].EndMs = bg.EndMs
			}
		}
	}

	if isInstrumentalSource(data.Lines) {
		extendInstrumental(result)
	}
	return result
}

// isInstrumentalSource reports whether the parsed source looks like an
// instrumental placeholder: exactly one line carrying exactly one syllable
// and no background section. A line with a background section is plainly
// not a placeholder, regardless of how few main syllables it has.
func isInstrumentalSource(lines []LyricLine) bool {
	return len(lines) == 1 && len(lines[0].MainSyllables) == 1 && lines[0].BackgroundSection == nil
}

// resolveDuet assigns each agent ID a duet status the first time it is seen,
// then reuses that status on every later line from the same agent. The
// default solo agent and the chorus agent are never duet partners; the
// conventional duet agent is always one. Any other agent alternates with
// the other agents in that same "other" category, based on how many of them
// have already been assigned.
func resolveDuet(agent string, duetMap map[string]bool, seenOrder *[]string) bool {
	if isDuet, ok := duetMap[agent]; ok {
		return isDuet
	}

	var isDuet bool
	switch agent {
	case AgentDefault, AgentChorus:
		isDuet = false
	case AgentDuet:
		isDuet = true
	default:
		isDuet = len(*seenOrder)%2 != 0
		*seenOrder = append(*seenOrder, agent)
	}
	duetMap[agent] = isDuet
	return isDuet
}

func selectTranslation(entries []TranslationEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var fallback string
	for _, t := range entries {
		if t.Lang != nil && *t.Lang == preferredTranslationLang {
			return normalizeTranslationText(t.Text)
		}
		if fallback == "" {
			fallback = t.Text
		}
	}
	return normalizeTranslationText(fallback)
}

// normalizeTranslationText applies the "//" empty-translation convention:
// some sources use a literal "//" to mark a deliberately blank translation
// slot (distinct from simply omitting the translation).
func normalizeTranslationText(text string) string {
	if text == "//" {
		return ""
	}
	return text
}

// buildWords pairs main syllables with romanization entries by maximum
// time-overlap. A romanization set containing exactly one entry whose start
// and end are both zero (the degenerate "start=end=0" marker a source uses
// when it romanizes a whole line rather than individual words) is treated
// as line-level and attached to every word instead of being overlap-matched.
func buildWords(syllables []Syllable, romanizations []RomanizationEntry) []RenderWord {
	words := make([]RenderWord, len(syllables))
	for i, s := range syllables {
		words[i] = RenderWord{Text: s.Text, StartMs: s.StartMs, EndMs: s.EndMs, EndsWithSpace: s.EndsWithSpace}
	}

	if len(romanizations) == 1 && isLineLevelRomanization(romanizations[0]) {
		for i := range words {
			words[i].Romanization = romanizations[0].Text
		}
		return words
	}

	for i := range words {
		words[i].Romanization = bestOverlapRomanization(words[i], romanizations)
	}
	return words
}

func isLineLevelRomanization(r RomanizationEntry) bool {
	return r.StartMs != nil && r.EndMs != nil && *r.StartMs == 0 && *r.EndMs == 0
}

// bestOverlapRomanization returns the text of whichever romanization entry
// overlaps w's [StartMs, EndMs) interval the most, in milliseconds. An
// entry with no timing of its own never wins against one that has timing,
// and ties keep the earliest-listed entry.
func bestOverlapRomanization(w RenderWord, romanizations []RomanizationEntry) string {
	var best string
	var bestOverlap int64 = -1
	for _, r := range romanizations {
		if r.StartMs == nil || r.EndMs == nil {
			continue
		}
		overlap := overlapMs(w.StartMs, w.EndMs, *r.StartMs, *r.EndMs)
		if overlap > bestOverlap {
			bestOverlap = overlap
			best = r.Text
		}
	}
	if bestOverlap <= 0 && best == "" && len(romanizations) > 0 && len(romanizations) == 1 {
		// A single untimed entry with no word-level alternative is the best
		// guess available; attach it rather than dropping it silently.
		return romanizations[0].Text
	}
	return best
}

func overlapMs(aStart, aEnd, bStart, bEnd int64) int64 {
	lo := max(aStart, bStart)
	hi := min(aEnd, bEnd)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// extendInstrumental extends the sole rendered line's single syllable to run
// for instrumentalExtensionMs past its start, under the convention that a
// TTML document with exactly one line carrying exactly one syllable is an
// instrumental placeholder rather than a genuine one-word lyric.
func extendInstrumental(lines []RenderLine) {
	if len(lines) == 0 || len(lines[0].Words) != 1 {
		return
	}
	main := &lines[0]
	extended := main.Words[0].StartMs + instrumentalExtensionMs
	if extended > main.EndMs {
		main.EndMs = extended
		main.Words[0].EndMs = extended
		log.WithField("tag", tagAdapter).Debug("single-syllable single-line source detected, extended as instrumental")
	}
}
