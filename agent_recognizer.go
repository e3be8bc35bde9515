package lyric

import (
	"regexp"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

const defaultAgentPattern = `^\s*(?:\((.+?)\)|（(.+?)）|([^\s:：()（）]+))\s*[:：]\s*`

// RecognizeAgents scans each line's rendered text for a leading "Name:" /
// "(Name):" / "（Name）：" marker, assigns the matching agent ID to the line,
// and trims the marker off the line's text and leading syllables. The
// current agent carries forward across lines that carry no marker of their
// own when opts.InheritAgent is set.
//
// A single compiled regex is checked against each line's text, with a
// carried "current agent" that persists until a new marker appears.
func RecognizeAgents(lines []LyricLine, opts AgentRecognizerOptions) []LyricLine {
	if !opts.Enabled {
		return lines
	}

	pattern := defaultAgentPattern
	if opts.CustomPattern != nil && *opts.CustomPattern != "" {
		pattern = *opts.CustomPattern
	}
	if !opts.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		log.WithField("tag", tagAgent).Warnf("invalid agent pattern %q, skipping recognition: %v", pattern, err)
		return lines
	}

	result := make([]LyricLine, 0, len(lines))
	var currentAgent *string

	for _, line := range lines {
		text := lineText(line)
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			if currentAgent != nil && opts.InheritAgent {
				line.Agent = currentAgent
			}
			result = append(result, line)
			continue
		}

		name := firstNonEmptyGroup(re, text, loc)
		agentID := strPtr(name)
		currentAgent = agentID

		markerByteLen := loc[1]
		remainder := cleanLineText(&line, markerByteLen)

		if remainder == "" {
			if opts.RemoveMarkerLines {
				// A marker-only line (e.g. a stage direction like "(Chorus):")
				// carries no singable content once the marker is stripped.
				continue
			}
			result = append(result, line)
			continue
		}

		line.Agent = agentID
		result = append(result, line)
	}
	return result
}

func lineText(l LyricLine) string {
	if l.LineText != nil {
		return *l.LineText
	}
	var sb strings.Builder
	for _, s := range l.MainSyllables {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func firstNonEmptyGroup(re *regexp.Regexp, text string, loc []int) string {
	for g := 1; g*2+1 < len(loc); g++ {
		start, end := loc[g*2], loc[g*2+1]
		if start >= 0 && end >= 0 && end > start {
			return text[start:end]
		}
	}
	return ""
}

// cleanLineText removes markerByteLen bytes worth of marker from the front
// of the line's rendered text and, in lockstep, drains the same number of
// bytes from the start of MainSyllables — greedily consuming whole
// syllables and truncating a final partial syllable. The cut point is
// snapped backward to the nearest rune boundary so a multi-byte character
// straddling the marker's edge is never split.
func cleanLineText(line *LyricLine, markerByteLen int) string {
	if line.LineText != nil {
		text := *line.LineText
		cut := snapToRuneBoundary(text, markerByteLen)
		cut = min(cut, len(text))
		cleaned := strings.TrimLeft(text[cut:], " ")
		line.LineText = strPtr(cleaned)
	}

	remaining := markerByteLen
	kept := line.MainSyllables[:0:0]
	for i, syl := range line.MainSyllables {
		if remaining <= 0 {
			kept = append(kept, line.MainSyllables[i:]...)
			break
		}
		if remaining >= len(syl.Text) {
			remaining -= len(syl.Text)
			continue
		}
		cut := snapToRuneBoundary(syl.Text, remaining)
		syl.Text = strings.TrimLeft(syl.Text[cut:], " ")
		remaining = 0
		if syl.Text != "" {
			kept = append(kept, syl)
		}
		kept = append(kept, line.MainSyllables[i+1:]...)
		break
	}
	line.MainSyllables = kept

	if line.LineText != nil {
		return *line.LineText
	}
	return lineText(*line)
}

// snapToRuneBoundary returns the largest index <= n that lies on a UTF-8
// rune boundary within s.
func snapToRuneBoundary(s string, n int) int {
	if n <= 0 {
		return 0
	}
	if n >= len(s) {
		return len(s)
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return n
}
