package message

import "strings"

// lineKind is the context-free category of a single input line.
type lineKind int

const (
	kindText lineKind = iota
	kindThinking
	kindFence
	kindTableRow
	kindMathOpen // a line that is exactly the \[ opener
	kindMathLine // math content or closer carried on the line itself
	kindImageRef
)

const (
	thinkOpenTag   = "<think>"
	thinkCloseTag  = "</think>"
	imageOpenTag   = "<image-uuid>"
	imageCloseTag  = "</image-uuid>"
	mathOpenDelim  = `\[`
	mathCloseDelim = `\]`
)

// classifyLine categorizes one line of input without consulting parser state.
// Matching happens on the whitespace-trimmed line; callers keep the original
// line for buffering.
//
// The classification is deliberately context free: a line starting with | or
// a math delimiter is categorized as table/math even when the assembler is
// inside an open code fence. Only the plain-text category gets re-routed by
// the assembler's mode flags. Existing message corpora depend on this.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(trimmed, thinkOpenTag):
		return kindThinking
	case strings.HasPrefix(trimmed, "```"):
		return kindFence
	case strings.HasPrefix(trimmed, "|"):
		return kindTableRow
	case strings.HasPrefix(trimmed, mathOpenDelim):
		// A bare \[ opens block math; an opener carrying content on the
		// same line is handled as a math line.
		if strings.ReplaceAll(trimmed, " ", "") == mathOpenDelim {
			return kindMathOpen
		}
		return kindMathLine
	case strings.HasPrefix(trimmed, mathCloseDelim):
		return kindMathLine
	case strings.HasPrefix(trimmed, imageOpenTag):
		return kindImageRef
	}
	return kindText
}
