package lyric

import (
	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"
)

// groupGap reports the gap in ms between the end of a and the start of b,
// used for boundary detection below.
func groupGap(a, b Syllable) int64 {
	return b.StartMs - a.EndMs
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}

// SmoothSyllables applies a one-dimensional diffusion pass to each line's
// syllable durations, distributing abrupt duration changes across
// neighboring syllables within a group while preserving each group's total
// duration and endpoints. It is a no-op when SmoothingIterations is zero or
// Factor falls outside [0, 0.5] — values above 0.5 make the per-iteration
// update unstable (it can invert a syllable's ordering relative to its
// neighbor).
func SmoothSyllables(lines []LyricLine, opts SyllableSmoothingOptions) []LyricLine {
	if opts.SmoothingIterations <= 0 || opts.Factor < 0 || opts.Factor > 0.5 {
		return lines
	}

	out := make([]LyricLine, len(lines))
	copy(out, lines)
	for i := range out {
		out[i].MainSyllables = smoothSyllableSlice(out[i].MainSyllables, opts)
	}
	return out
}

func smoothSyllableSlice(syllables []Syllable, opts SyllableSmoothingOptions) []Syllable {
	if len(syllables) < 2 {
		return syllables
	}

	groups := groupSyllables(syllables, opts)
	result := make([]Syllable, 0, len(syllables))
	for _, group := range groups {
		result = append(result, smoothGroup(group, opts)...)
	}
	return result
}

// groupSyllables splits a line's syllables into contiguous runs, breaking
// wherever two neighbors' durations differ by more than
// DurationThresholdMs or the gap between them exceeds GapThresholdMs.
func groupSyllables(syllables []Syllable, opts SyllableSmoothingOptions) [][]Syllable {
	var groups [][]Syllable
	start := 0
	for i := 1; i < len(syllables); i++ {
		prev, cur := syllables[i-1], syllables[i]
		if absDiff(prev.Duration(), cur.Duration()) > opts.DurationThresholdMs ||
			groupGap(prev, cur) > opts.GapThresholdMs {
			groups = append(groups, syllables[start:i])
			start = i
		}
	}
	groups = append(groups, syllables[start:])
	return groups
}

// smoothGroup runs the diffusion/rescale/reassign pipeline on one group.
// Endpoints use the two-neighbor blend (1-f)*d + f*neighbor; interior
// syllables use (1-2f)*d + f*(prev+next). After SmoothingIterations rounds
// the new total duration is rescaled back to the group's original total so
// the group's overall length is unchanged, then timestamps are reassigned
// by walking forward from the group's original start, re-inserting the
// original gaps between syllables. The final syllable's end is forced back
// to its original value to absorb any residual rounding drift.
func smoothGroup(group []Syllable, opts SyllableSmoothingOptions) []Syllable {
	n := len(group)
	if n < 2 {
		return group
	}

	originalStart := group[0].StartMs
	originalEnd := group[n-1].EndMs
	originalGaps := make([]int64, n-1)
	var originalTotal int64
	durations := make([]float64, n)
	for i, s := range group {
		durations[i] = float64(s.Duration())
		originalTotal += s.Duration()
		if i > 0 {
			originalGaps[i-1] = group[i].StartMs - group[i-1].EndMs
		}
	}

	before, _ := stats.StandardDeviationPopulation(durations)

	f := opts.Factor
	for iter := 0; iter < opts.SmoothingIterations; iter++ {
		next := make([]float64, n)
		for i := 0; i < n; i++ {
			switch {
			case n == 1:
				next[i] = durations[i]
			case i == 0:
				next[i] = (1-f)*durations[i] + f*durations[i+1]
			case i == n-1:
				next[i] = (1-f)*durations[i] + f*durations[i-1]
			default:
				next[i] = (1-2*f)*durations[i] + f*(durations[i-1]+durations[i+1])
			}
		}
		durations = next
	}

	var newTotal float64
	for _, d := range durations {
		newTotal += d
	}
	if newTotal > 1e-6 {
		scale := float64(originalTotal) / newTotal
		for i := range durations {
			durations[i] *= scale
		}
	}

	after, _ := stats.StandardDeviationPopulation(durations)
	if after >= before {
		log.WithField("tag", tagSmoother).Debugf(
			"smoothing did not reduce duration spread (before=%.1f after=%.1f); thresholds may need tuning", before, after)
	}

	result := make([]Syllable, n)
	cursor := originalStart
	for i, s := range group {
		dur := int64(durations[i] + 0.5)
		result[i] = s
		result[i].StartMs = cursor
		result[i].EndMs = cursor + dur
		result[i].DurationMs = i64Ptr(dur)
		cursor = result[i].EndMs
		if i < n-1 {
			cursor += originalGaps[i]
		}
	}
	result[n-1].EndMs = originalEnd
	if d := result[n-1].EndMs - result[n-1].StartMs; d >= 0 {
		result[n-1].DurationMs = i64Ptr(d)
	}
	return result
}
