// Package message parses raw chat-message bodies into an ordered sequence of
// typed content blocks. The input is markdown-like text that may contain
// fenced code, pipe tables, LaTeX math, <think> sections and <image-uuid>
// references. Parsing is line oriented and never fails: malformed input
// degrades to plain text rather than raising an error.
package message

import (
	"github.com/google/uuid"
)

// BlockType identifies the type of content block
type BlockType int

const (
	BlockText BlockType = iota
	BlockCode
	BlockTable
	BlockFormula
	BlockThinking
	BlockImage
)

// String returns the block type name
func (t BlockType) String() string {
	switch t {
	case BlockText:
		return "text"
	case BlockCode:
		return "code"
	case BlockTable:
		return "table"
	case BlockFormula:
		return "formula"
	case BlockThinking:
		return "thinking"
	case BlockImage:
		return "image"
	}
	return "unknown"
}

// Block represents a discrete unit of message content. Which fields are
// meaningful depends on Type.
type Block struct {
	Type BlockType

	Body string // For text, code, formula and thinking blocks

	Lang   string // For code blocks: language tag from the opening fence
	Indent int    // For code blocks: leading whitespace stripped from every body line

	Header []string   // For table blocks: trimmed header cells
	Rows   [][]string // For table blocks: trimmed data row cells

	Expanded bool // For thinking blocks: UI state, always false after parsing

	// Inline marks a text/formula fragment that continues the same source
	// line; the following fragment belongs to the same line.
	Inline bool

	ImageID uuid.UUID // For image blocks: identifier resolved against the image store
}

// TextBlock returns a plain text block
func TextBlock(body string) Block {
	return Block{Type: BlockText, Body: body}
}

// CodeBlock returns a code block with its fence language tag and the indent
// width that was stripped from the body lines
func CodeBlock(body, lang string, indent int) Block {
	return Block{Type: BlockCode, Body: body, Lang: lang, Indent: indent}
}

// TableBlock returns a table block
func TableBlock(header []string, rows [][]string) Block {
	return Block{Type: BlockTable, Header: header, Rows: rows}
}

// FormulaBlock returns a LaTeX formula block, delimiters already stripped
func FormulaBlock(body string) Block {
	return Block{Type: BlockFormula, Body: body}
}

// ThinkingBlock returns a thinking block. Expanded starts false; it is a
// UI-only default, never derived from input.
func ThinkingBlock(body string) Block {
	return Block{Type: BlockThinking, Body: body}
}

// ImageBlock returns an image block referencing a resolved identifier
func ImageBlock(id uuid.UUID) Block {
	return Block{Type: BlockImage, ImageID: id}
}

// Resolver maps an image identifier to a stored resource. Resolve reports
// whether the identifier is known; a miss must not raise, the parser
// downgrades the referencing line to plain text.
type Resolver interface {
	Resolve(id uuid.UUID) bool
}

// ResolverFunc adapts a function to the Resolver interface
type ResolverFunc func(uuid.UUID) bool

// Resolve calls f
func (f ResolverFunc) Resolve(id uuid.UUID) bool { return f(id) }
