package ui

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mvela/chatblocks/internal/imagestore"
	"github.com/mvela/chatblocks/internal/message"
)

// ImageSource supplies encoded image bytes for image blocks. Satisfied by
// *imagestore.Store.
type ImageSource interface {
	Get(id uuid.UUID) (*imagestore.Image, error)
}

// Renderer turns parsed blocks into styled terminal output.
type Renderer struct {
	styles *Styles

	width          int
	images         ImageSource
	showImages     bool
	expandThinking bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth sets the wrap width for prose. Zero disables wrapping.
func WithWidth(width int) Option {
	return func(r *Renderer) { r.width = width }
}

// WithImageSource provides the store used to resolve image blocks.
// Without a source, image blocks render as placeholders.
func WithImageSource(src ImageSource) Option {
	return func(r *Renderer) { r.images = src }
}

// WithImages toggles inline image output. When disabled, resolved images
// render as placeholders even if the terminal supports them.
func WithImages(enabled bool) Option {
	return func(r *Renderer) { r.showImages = enabled }
}

// WithExpandedThinking renders thinking sections in full instead of
// collapsing them to a one-line marker.
func WithExpandedThinking(expanded bool) Option {
	return func(r *Renderer) { r.expandThinking = expanded }
}

// NewRenderer creates a renderer bound to the given styles.
func NewRenderer(styles *Styles, opts ...Option) *Renderer {
	r := &Renderer{
		styles:     styles,
		showImages: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the styled output for a block sequence. Consecutive
// inline fragments are rejoined onto one line before wrapping, so a prose
// line split around inline math comes back as a single visual line.
func (r *Renderer) Render(blocks []message.Block) string {
	var out strings.Builder
	var line strings.Builder

	flushLine := func() {
		if line.Len() == 0 {
			return
		}
		out.WriteString(r.wrap(line.String()))
		out.WriteString("\n")
		line.Reset()
	}

	for _, block := range blocks {
		switch block.Type {
		case message.BlockText:
			// A blank source line arrives as an empty text block.
			if block.Body == "" && !block.Inline && line.Len() == 0 {
				out.WriteString("\n")
				continue
			}
			line.WriteString(r.styles.Text.Render(block.Body))
			if !block.Inline {
				flushLine()
			}
		case message.BlockFormula:
			if block.Inline || isInlineContinuation(&line) {
				line.WriteString(r.styles.Formula.Render(block.Body))
				if !block.Inline {
					flushLine()
				}
				continue
			}
			flushLine()
			out.WriteString(r.renderFormula(block))
		case message.BlockCode:
			flushLine()
			out.WriteString(r.renderCode(block))
		case message.BlockTable:
			flushLine()
			out.WriteString(RenderTable(block.Header, block.Rows, r.styles))
		case message.BlockThinking:
			flushLine()
			out.WriteString(r.renderThinking(block))
		case message.BlockImage:
			flushLine()
			out.WriteString(r.renderImage(block))
		}
	}
	flushLine()
	return out.String()
}

// isInlineContinuation reports whether a line is already being assembled,
// meaning the current fragment finishes it.
func isInlineContinuation(line *strings.Builder) bool {
	return line.Len() > 0
}

func (r *Renderer) wrap(s string) string {
	if r.width <= 0 {
		return s
	}
	return wordwrap.String(s, r.width)
}

func (r *Renderer) renderFormula(block message.Block) string {
	return r.styles.Formula.Render(block.Body) + "\n"
}

func (r *Renderer) renderCode(block message.Block) string {
	body := block.Body
	if hl := NewHighlighter(block.Lang); hl != nil {
		body = hl.Highlight(body)
	}

	indent := strings.Repeat(" ", block.Indent)
	var b strings.Builder
	for _, line := range strings.Split(body, "\n") {
		b.WriteString(indent + line + "\n")
	}
	return b.String()
}

func (r *Renderer) renderThinking(block message.Block) string {
	lines := strings.Split(block.Body, "\n")
	if !r.expandThinking && !block.Expanded {
		label := fmt.Sprintf("· thinking (%d lines)", len(lines))
		if len(lines) == 1 {
			label = "· thinking (1 line)"
		}
		return r.styles.Thinking.Render(label) + "\n"
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(r.styles.Thinking.Render(line) + "\n")
	}
	return b.String()
}

func (r *Renderer) renderImage(block message.Block) string {
	placeholder := r.styles.Muted.Render("[image "+block.ImageID.String()+"]") + "\n"
	if r.images == nil || !r.showImages {
		return placeholder
	}

	img, err := r.images.Get(block.ImageID)
	if err != nil {
		return placeholder
	}
	rendered := RenderInlineImage(block.ImageID.String(), img.Data)
	if rendered == "" {
		return placeholder
	}
	return rendered
}
