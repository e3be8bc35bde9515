package lyric

import (
	"math"
	"strconv"
	"strings"
)

// ParseTimecode converts a TTML time string to non-negative milliseconds.
// Recognized grammars, in priority order:
//
//	<seconds>s      12.345s           seconds, optional fraction, rounded to ms
//	HH:MM:SS[.fff]  01:02:03.456
//	MM:SS[.fff]     02:03.456         hours default to 0
//	SS[.fff]        3.456             minutes and hours default to 0
//
// The fractional part is at most three digits and left-justified (".4" is
// 400ms). Minutes must be < 60. Seconds must be < 60 whenever a minutes
// component is present. A leading minus, an empty integer-seconds segment
// (".5"), or a value overflowing an unsigned 64-bit millisecond count are all
// rejected.
func ParseTimecode(raw string) (int64, error) {
	if raw == "" {
		return 0, newInvalidTimeError(raw)
	}
	if strings.HasPrefix(raw, "-") {
		return 0, newInvalidTimeError(raw)
	}

	if rest, ok := strings.CutSuffix(raw, "s"); ok {
		return parseSecondsForm(raw, rest)
	}

	parts := strings.Split(raw, ":")
	switch len(parts) {
	case 1:
		return parseClockForm(raw, "0", "0", parts[0])
	case 2:
		return parseClockForm(raw, "0", parts[0], parts[1])
	case 3:
		return parseClockForm(raw, parts[0], parts[1], parts[2])
	default:
		return 0, newInvalidTimeError(raw)
	}
}

func parseSecondsForm(raw, rest string) (int64, error) {
	if rest == "" || strings.HasPrefix(rest, ".") || strings.HasSuffix(rest, ".") {
		return 0, newInvalidTimeError(raw)
	}
	if strings.HasPrefix(rest, "-") {
		return 0, newInvalidTimeError(raw)
	}
	seconds, err := strconv.ParseFloat(rest, 64)
	if err != nil || seconds < 0 {
		return 0, newInvalidTimeError(raw)
	}
	totalMs := seconds * 1000.0
	if totalMs >= math.MaxInt64 {
		return 0, newInvalidTimeError(raw)
	}
	return int64(math.Round(totalMs)), nil
}

// parseClockForm parses an already-split hours/minutes/secondsWithFraction
// triple: minutes < 60 always; seconds < 60 whenever a minutes component was
// present in the source string (hasMinutes is true for the MM:SS and
// HH:MM:SS forms, false for the bare-seconds form).
func parseClockForm(raw, hoursStr, minutesStr, secPart string) (int64, error) {
	hasMinutes := hoursStr != "0" || minutesStr != "0" || strings.Contains(raw, ":")

	hours, err := parseNonNegativeInt(hoursStr)
	if err != nil {
		return 0, newInvalidTimeError(raw)
	}
	minutes, err := parseNonNegativeInt(minutesStr)
	if err != nil {
		return 0, newInvalidTimeError(raw)
	}
	if minutes >= 60 {
		return 0, newInvalidTimeError(raw)
	}

	dotParts := strings.SplitN(secPart, ".", 2)
	if dotParts[0] == "" {
		return 0, newInvalidTimeError(raw)
	}
	seconds, err := parseNonNegativeInt(dotParts[0])
	if err != nil {
		return 0, newInvalidTimeError(raw)
	}
	if hasMinutes && seconds >= 60 {
		return 0, newInvalidTimeError(raw)
	}

	var fracMs int64
	if len(dotParts) == 2 {
		frac := dotParts[1]
		if frac == "" || len(frac) > 3 || !isAllDigits(frac) {
			return 0, newInvalidTimeError(raw)
		}
		frac = frac + strings.Repeat("0", 3-len(frac))
		v, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, newInvalidTimeError(raw)
		}
		fracMs = v
	}

	if hours > math.MaxInt64/3_600_000 || seconds > math.MaxInt64/1000 {
		return 0, newInvalidTimeError(raw)
	}
	total := hours*3_600_000 + minutes*60_000 + seconds*1000 + fracMs
	if total < 0 {
		return 0, newInvalidTimeError(raw)
	}
	return total, nil
}

func parseNonNegativeInt(s string) (int64, error) {
	if s == "" || !isAllDigits(s) {
		return 0, newInvalidTimeError(s)
	}
	return strconv.ParseInt(s, 10, 64)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
