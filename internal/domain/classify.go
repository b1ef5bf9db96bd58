package domain

import "strings"

// MinFields is the number of whitespace-separated fields a data line must
// carry. Seven fields would be enough to get a declination; the eighth is the
// grid-north offset needed to derive grid declination.
const MinFields = 8

// CommentIndicator marks a line as a comment when it is the first
// non-whitespace character.
const CommentIndicator = "#"

// LineKind tags the classification of one raw input line.
type LineKind int

const (
	// LineBlank is an all-whitespace line, echoed verbatim.
	LineBlank LineKind = iota
	// LineComment starts with the comment indicator, echoed verbatim.
	LineComment
	// LineMalformed has fewer than the minimum fields and never proceeds
	// past classification.
	LineMalformed
	// LineData carries enough fields to build a request.
	LineData
)

// Classified is the result of classifying one raw line. Fields is populated
// only for LineData.
type Classified struct {
	Kind   LineKind
	Raw    string
	Fields []string
}

// ClassifyLine tokenizes one raw input line. It is pure and total: every
// string maps to exactly one classification and no error is possible.
// Extra fields beyond minFields are tolerated and ignored downstream.
func ClassifyLine(raw string, minFields int) Classified {
	stripped := strings.TrimSpace(raw)
	if stripped == "" {
		return Classified{Kind: LineBlank, Raw: raw}
	}
	if strings.HasPrefix(stripped, CommentIndicator) {
		return Classified{Kind: LineComment, Raw: raw}
	}
	fields := strings.Fields(stripped)
	if len(fields) < minFields {
		return Classified{Kind: LineMalformed, Raw: raw}
	}
	return Classified{Kind: LineData, Raw: raw, Fields: fields}
}
