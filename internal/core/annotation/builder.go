package annotation

import (
	"unicode"
	"unicode/utf8"
)

// Build converts raw scene lines plus the validating-line set and the
// per-line flagged ranges into styled segments in reading order.
//
// Every validating line produces a Plain segment for its leading
// whitespace followed by alternating Valid/Flagged segments. The leading
// segment of the first validating line is the anchor. Input that would
// produce a malformed segment is rejected with an *InvalidAnnotationError,
// as are validating lines that are not valid UTF-8.
func Build(lines []string, validatingLines []int, flaggedRanges map[int][]Range) (Result, error) {
	validating := make(map[int]struct{}, len(validatingLines))
	for _, idx := range validatingLines {
		if idx < 0 || idx >= len(lines) {
			return Result{Anchor: NoAnchor}, invalidf(idx, "validating line outside [0, %d)", len(lines))
		}
		validating[idx] = struct{}{}
	}

	for idx := range flaggedRanges {
		if _, ok := validating[idx]; !ok {
			return Result{Anchor: NoAnchor}, invalidf(idx, "flagged ranges on a line that is not validating")
		}
	}

	var (
		segments       = make([]Segment, 0, len(lines)+2*len(validating))
		anchor         = NoAnchor
		anchorAssigned = false
	)

	for i, line := range lines {
		if _, ok := validating[i]; !ok {
			segments = append(segments, Segment{Text: line + "\n", Style: StylePlain})
			continue
		}

		var err error
		segments, anchor, anchorAssigned, err = appendValidatingLine(segments, i, line, flaggedRanges[i], anchor, anchorAssigned)
		if err != nil {
			return Result{Anchor: NoAnchor}, err
		}
	}

	return Result{Segments: segments, Anchor: anchor}, nil
}

// appendValidatingLine emits the segments of one validating line. The
// leading whitespace segment becomes the anchor only when no earlier line
// has claimed it.
func appendValidatingLine(
	segments []Segment,
	lineIdx int,
	line string,
	ranges []Range,
	anchor int,
	anchorAssigned bool,
) ([]Segment, int, bool, error) {
	if !utf8.ValidString(line) {
		return segments, anchor, anchorAssigned, invalidf(lineIdx, "line is not valid UTF-8")
	}

	runes := []rune(line)
	offset := FirstContentOffset(line)

	// Validate the whole line first so nothing is emitted for a bad line.
	// Pairs are compared as given, ends exclusive.
	prevEnd := 0
	for j, r := range ranges {
		absStart := r.Start + offset
		absEnd := r.End + offset - 1

		switch {
		case r.Start < 0:
			return segments, anchor, anchorAssigned, invalidf(lineIdx, "range %d starts at negative offset %d", j, r.Start)
		case j > 0 && r.Start < prevEnd:
			return segments, anchor, anchorAssigned, invalidf(lineIdx, "range %d [%d,%d] overlaps or precedes the previous range", j, r.Start, r.End)
		case absEnd < absStart:
			return segments, anchor, anchorAssigned, invalidf(lineIdx, "range %d [%d,%d] ends before it starts", j, r.Start, r.End)
		case absEnd > len(runes):
			return segments, anchor, anchorAssigned, invalidf(lineIdx, "range %d [%d,%d] exceeds line length %d", j, r.Start, r.End, len(runes)-offset)
		}
		prevEnd = r.End
	}

	if !anchorAssigned {
		anchor = len(segments)
		anchorAssigned = true
	}
	segments = append(segments, Segment{Text: string(runes[:offset]), Style: StylePlain})

	cursor := offset
	for _, r := range ranges {
		absStart := r.Start + offset
		absEnd := r.End + offset - 1

		segments = append(segments,
			Segment{Text: string(runes[cursor:absStart]), Style: StyleValid},
			Segment{Text: string(runes[absStart:absEnd]), Style: StyleFlagged},
		)
		cursor = absEnd
	}

	segments = append(segments, Segment{Text: string(runes[cursor:]) + "\n", Style: StyleValid})
	return segments, anchor, anchorAssigned, nil
}

// FirstContentOffset returns the rune index of the first non-whitespace
// character of line, or the rune length of line when it is blank.
func FirstContentOffset(line string) int {
	i := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			return i
		}
		i++
	}
	return i
}
