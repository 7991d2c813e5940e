package sink

import (
	"bytes"
	"encoding/xml"
	"strings"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.9
	fontCharWidth   = 0.55
	fontSizeMin     = 6.0
)

// fontSizeFor estimates the largest font size at which textLen characters fit
// into the given box, clamped to [fontSizeMin, maxSize].
func fontSizeFor(availWidth, availHeight float64, textLen int, maxSize float64) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(maxSize, min(byHeight, byWidth)))
}

// wrapWords breaks s into lines of at most maxChars characters, splitting on
// whitespace. Words longer than maxChars get a line of their own.
func wrapWords(s string, maxChars int) []string {
	maxChars = max(1, maxChars)
	var lines []string
	var cur strings.Builder
	for _, w := range strings.Fields(s) {
		if cur.Len() > 0 && cur.Len()+1+len(w) > maxChars {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// truncate shortens lines to at most maxLines, marking the cut with an ellipsis.
func truncate(lines []string, maxLines int) []string {
	if maxLines <= 0 {
		return nil
	}
	if len(lines) <= maxLines {
		return lines
	}
	out := append([]string(nil), lines[:maxLines]...)
	out[maxLines-1] = strings.TrimRight(out[maxLines-1], " .") + "..."
	return out
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
