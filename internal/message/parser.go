package message

import (
	"strings"

	"github.com/google/uuid"
)

// Parser assembles input lines into content blocks. It is a single-pass
// state machine: every line is classified, then routed by the current mode
// flags into a pending buffer or straight to the output. Buffers flush at
// mode transitions and at end of input.
//
// A Parser is used for exactly one message; it holds no state across
// invocations of Parse.
type Parser struct {
	resolver Resolver
	blocks   []Block

	// Pending plain text run. Only degraded image-reference lines
	// accumulate here; ordinary prose is emitted per line.
	textBuf []string

	codeOpen   bool
	codeLang   string
	codeIndent int
	codeBuf    []string

	mathOpen bool
	mathBuf  []string

	thinkingOpen bool
	thinkBuf     []string

	tableHeader []string
	tableRows   [][]string
	headerSet   bool
}

// NewParser returns a parser that checks image references against resolver.
// A nil resolver treats every image reference as unresolvable.
func NewParser(resolver Resolver) *Parser {
	return &Parser{resolver: resolver}
}

// Parse converts a raw message body into its content blocks. The input is
// split on \n with empty lines preserved; an empty input is one empty line
// and parses to a single empty text block.
func Parse(input string, resolver Resolver) []Block {
	p := NewParser(resolver)
	for _, line := range strings.Split(input, "\n") {
		p.Feed(line)
	}
	return p.Finish()
}

// Feed processes a single input line without its trailing newline.
func (p *Parser) Feed(line string) {
	switch classifyLine(line) {
	case kindFence:
		p.handleFence(line)
	case kindTableRow:
		p.handleTableRow(line)
	case kindMathOpen:
		p.handleMathOpen()
	case kindMathLine:
		p.handleMathLine(line)
	case kindThinking:
		p.handleThinking(line)
	case kindImageRef:
		p.handleImageRef(line)
	default:
		p.handleText(line)
	}
}

// Finish flushes every pending buffer and returns the block sequence.
// Unterminated fences, math and thinking sections flush with whatever
// content was buffered; unbalanced delimiters are not an error.
func (p *Parser) Finish() []Block {
	p.flushText()
	p.flushCode()
	p.flushTable()
	p.flushMath()
	p.flushThinking()
	return p.blocks
}

func (p *Parser) emit(b Block) {
	p.blocks = append(p.blocks, b)
}

// handleFence toggles the code mode. Opening captures the fence language tag
// and the fence line's own indent, which is stripped from every body line.
func (p *Parser) handleFence(line string) {
	if p.codeOpen {
		p.flushCode()
		return
	}
	p.flushText()
	p.flushTable()

	trimmed := strings.TrimSpace(line)
	p.codeLang = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
	p.codeIndent = leadingWhitespace(line)
	p.codeOpen = true
	p.codeBuf = nil
}

// handleTableRow accumulates a table row. Delimiter rows (cells of only - and
// :) are discarded; the first real row becomes the header, later rows data.
func (p *Parser) handleTableRow(line string) {
	p.flushText()

	cells := splitTableCells(line)
	if isDelimiterRow(cells) {
		return
	}
	if !p.headerSet {
		p.tableHeader = cells
		p.headerSet = true
		return
	}
	p.tableRows = append(p.tableRows, cells)
}

func (p *Parser) handleMathOpen() {
	p.flushText()
	p.flushTable()
	p.mathOpen = true
	p.mathBuf = nil
}

// handleMathLine processes a line that carries math delimiters with content,
// or the \] closer.
func (p *Parser) handleMathLine(line string) {
	p.flushText()
	p.flushTable()

	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, mathCloseDelim) {
		p.emit(FormulaBlock(strings.Join(p.mathBuf, "\n")))
		p.mathOpen = false
		p.mathBuf = nil
		return
	}

	content := strings.TrimSpace(stripMathDelims(trimmed))
	if p.mathOpen {
		p.mathBuf = append(p.mathBuf, content)
		return
	}
	// Opener and closer on a single line.
	p.emit(FormulaBlock(content))
}

// handleThinking opens a thinking section or, when both tags share the line,
// emits the section immediately.
func (p *Parser) handleThinking(line string) {
	trimmed := strings.TrimSpace(line)

	if idx := strings.Index(trimmed, thinkCloseTag); idx >= 0 {
		p.flushText()
		p.flushTable()
		content := trimmed[:idx]
		content = strings.TrimPrefix(content, thinkOpenTag)
		p.emit(ThinkingBlock(strings.TrimSpace(content)))
		return
	}

	p.flushText()
	p.flushTable()
	p.flushThinking()
	p.thinkingOpen = true
	p.thinkBuf = nil
	if rest := strings.TrimSpace(strings.TrimPrefix(trimmed, thinkOpenTag)); rest != "" {
		p.thinkBuf = append(p.thinkBuf, rest)
	}
}

// handleImageRef resolves an <image-uuid> reference. A malformed identifier
// or a store miss downgrades the whole line to pending text.
func (p *Parser) handleImageRef(line string) {
	trimmed := strings.TrimSpace(line)
	id, ok := parseImageRef(trimmed)
	if ok && p.resolver != nil && p.resolver.Resolve(id) {
		p.flushText()
		p.emit(ImageBlock(id))
		return
	}
	p.textBuf = append(p.textBuf, line)
}

// handleText routes a plain-text line by the current mode. This is the only
// place classification defers to parser state.
func (p *Parser) handleText(line string) {
	switch {
	case p.thinkingOpen:
		p.appendThinking(line)
	case p.codeOpen:
		p.codeBuf = append(p.codeBuf, stripIndent(line, p.codeIndent))
	case p.mathOpen:
		p.mathBuf = append(p.mathBuf, stripMathDelims(line))
	default:
		// A header-only table survives prose; it only flushes once it has
		// data rows.
		if p.headerSet && len(p.tableRows) > 0 {
			p.flushTable()
		}
		p.flushText()
		p.blocks = append(p.blocks, ScanInline(line)...)
	}
}

// appendThinking buffers a line inside an open thinking section, closing the
// section when the line carries the end tag.
func (p *Parser) appendThinking(line string) {
	if idx := strings.Index(line, thinkCloseTag); idx >= 0 {
		p.thinkBuf = append(p.thinkBuf, line[:idx])
		p.thinkingOpen = false
		p.flushThinkBuf()
		return
	}
	p.thinkBuf = append(p.thinkBuf, line)
}

func (p *Parser) flushText() {
	if len(p.textBuf) == 0 {
		return
	}
	p.emit(TextBlock(strings.Join(p.textBuf, "\n")))
	p.textBuf = nil
}

func (p *Parser) flushCode() {
	if !p.codeOpen {
		return
	}
	p.emit(CodeBlock(strings.Join(p.codeBuf, "\n"), p.codeLang, p.codeIndent))
	p.codeOpen = false
	p.codeLang = ""
	p.codeIndent = 0
	p.codeBuf = nil
}

// flushTable emits the accumulated table if it has at least one data row.
// A lone header is discarded; its text is gone from the output.
func (p *Parser) flushTable() {
	if p.headerSet && len(p.tableRows) > 0 {
		p.emit(TableBlock(p.tableHeader, p.tableRows))
	}
	p.tableHeader = nil
	p.tableRows = nil
	p.headerSet = false
}

func (p *Parser) flushMath() {
	if !p.mathOpen {
		return
	}
	p.emit(FormulaBlock(strings.Join(p.mathBuf, "\n")))
	p.mathOpen = false
	p.mathBuf = nil
}

func (p *Parser) flushThinking() {
	if !p.thinkingOpen {
		return
	}
	p.thinkingOpen = false
	p.flushThinkBuf()
}

func (p *Parser) flushThinkBuf() {
	p.emit(ThinkingBlock(strings.TrimSpace(strings.Join(p.thinkBuf, "\n"))))
	p.thinkBuf = nil
}

// parseImageRef extracts and validates the identifier between image tags.
func parseImageRef(trimmed string) (uuid.UUID, bool) {
	rest, ok := strings.CutPrefix(trimmed, imageOpenTag)
	if !ok {
		return uuid.UUID{}, false
	}
	inner, _, ok := strings.Cut(rest, imageCloseTag)
	if !ok {
		return uuid.UUID{}, false
	}
	id, err := uuid.Parse(strings.TrimSpace(inner))
	if err != nil {
		return uuid.UUID{}, false
	}
	return id, true
}

// splitTableCells splits a row on | into trimmed cells, dropping empties.
func splitTableCells(line string) []string {
	var cells []string
	for _, cell := range strings.Split(strings.TrimSpace(line), "|") {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

// isDelimiterRow reports whether every cell is made of only - and :
// characters, i.e. the markdown header separator row. A row with no cells
// left after filtering counts as a delimiter row and is likewise discarded.
func isDelimiterRow(cells []string) bool {
	for _, cell := range cells {
		for _, r := range cell {
			if r != '-' && r != ':' {
				return false
			}
		}
	}
	return true
}

// stripMathDelims removes \[ and \] delimiter substrings from a line.
func stripMathDelims(line string) string {
	line = strings.ReplaceAll(line, mathOpenDelim, "")
	return strings.ReplaceAll(line, mathCloseDelim, "")
}

// leadingWhitespace counts leading space and tab characters.
func leadingWhitespace(line string) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return n
}

// stripIndent drops up to indent leading characters from a code body line.
func stripIndent(line string, indent int) string {
	if indent <= 0 {
		return line
	}
	if indent > len(line) {
		indent = len(line)
	}
	return line[indent:]
}
