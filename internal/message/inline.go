package message

import "strings"

// inlineSpan is a matched inline math span within a plain text line.
// start/end are byte offsets into the line covering the delimiters; content
// is the interior with delimiters excluded and escapes still in place.
type inlineSpan struct {
	start, end int
	content    string
}

// ScanInline splits a plain text line into text and formula fragments.
// Inline math is delimited by $...$ or \(...\), matched non-greedily left to
// right. Concatenating the fragments (ignoring types) reproduces the line,
// modulo delimiter un-escaping inside formula fragments.
//
// A lone $ or an unclosed \( stays literal text. An empty span between two
// delimiters still yields a formula fragment.
func ScanInline(line string) []Block {
	var out []Block
	pos := 0

	for pos <= len(line) {
		span, ok := nextInlineSpan(line, pos)
		if !ok {
			break
		}
		if span.start > pos {
			out = append(out, TextBlock(line[pos:span.start]))
		}
		out = append(out, FormulaBlock(unescapeInline(span.content)))
		pos = span.end
	}

	if len(out) == 0 {
		return []Block{TextBlock(line)}
	}
	if pos < len(line) {
		out = append(out, TextBlock(line[pos:]))
	}
	// All fragments but the last continue the same source line; renderers
	// use this to avoid breaking the line apart.
	for i := range out[:len(out)-1] {
		out[i].Inline = true
	}
	return out
}

// nextInlineSpan finds the earliest complete span at or after pos.
func nextInlineSpan(line string, pos int) (inlineSpan, bool) {
	for i := pos; i < len(line); i++ {
		switch line[i] {
		case '$':
			if escapedAt(line, i) {
				continue
			}
			if end, ok := findDollarClose(line, i+1); ok {
				return inlineSpan{start: i, end: end + 1, content: line[i+1 : end]}, true
			}
		case '\\':
			if i+1 < len(line) && line[i+1] == '(' {
				if end, ok := findParenClose(line, i+2); ok {
					return inlineSpan{start: i, end: end + 2, content: line[i+2 : end]}, true
				}
			}
		}
	}
	return inlineSpan{}, false
}

// findDollarClose returns the index of the first unescaped $ at or after from.
func findDollarClose(line string, from int) (int, bool) {
	for i := from; i < len(line); i++ {
		if line[i] == '$' && !escapedAt(line, i) {
			return i, true
		}
	}
	return 0, false
}

// findParenClose returns the index of the backslash of the first \) at or
// after from whose backslash is not itself escaped.
func findParenClose(line string, from int) (int, bool) {
	for i := from; i+1 < len(line); i++ {
		if line[i] == '\\' && line[i+1] == ')' && !escapedAt(line, i) {
			return i, true
		}
	}
	return 0, false
}

// escapedAt reports whether the byte at i is preceded by a backslash.
// This is a single-character lookback: a delimiter after two backslashes
// still counts as escaped. Kept as is for parity with existing corpora.
func escapedAt(line string, i int) bool {
	return i > 0 && line[i-1] == '\\'
}

var inlineUnescaper = strings.NewReplacer(`\$`, "$", `\(`, "(", `\)`, ")")

// unescapeInline removes the escape backslashes from delimiter characters
// inside a formula interior.
func unescapeInline(s string) string {
	return inlineUnescaper.Replace(s)
}
