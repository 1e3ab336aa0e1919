package ui

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mvela/chatblocks/internal/imagestore"
	"github.com/mvela/chatblocks/internal/message"
)

func renderPlain(t *testing.T, input string, opts ...Option) string {
	t.Helper()
	blocks := message.Parse(input, nil)
	r := NewRenderer(testStyles(t), opts...)
	return StripANSI(r.Render(blocks))
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRenderRejoinsInlineFragments(t *testing.T) {
	got := renderPlain(t, "Hello $x^2$ world")
	if got != "Hello x^2 world\n" {
		t.Errorf("got %q", got)
	}
}

func TestRenderProseLines(t *testing.T) {
	got := renderPlain(t, "first line\n\nthird line")
	want := "first line\n\nthird line\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderWrapsAtWidth(t *testing.T) {
	got := renderPlain(t, "aaaa bbbb cccc", WithWidth(10))
	want := "aaaa bbbb\ncccc\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderCodeKeepsIndent(t *testing.T) {
	got := renderPlain(t, "  ```\n  x = 1\n  ```")
	if got != "  x = 1\n" {
		t.Errorf("got %q", got)
	}
}

func TestRenderBlockFormula(t *testing.T) {
	got := renderPlain(t, `\[`+"\nE = mc^2\n"+`\]`)
	if got != "E = mc^2\n" {
		t.Errorf("got %q", got)
	}
}

func TestRenderThinkingCollapsed(t *testing.T) {
	got := renderPlain(t, "<think>step one\nstep two</think>")
	if got != "· thinking (2 lines)\n" {
		t.Errorf("got %q", got)
	}
}

func TestRenderThinkingExpanded(t *testing.T) {
	got := renderPlain(t, "<think>step one\nstep two</think>", WithExpandedThinking(true))
	if got != "step one\nstep two\n" {
		t.Errorf("got %q", got)
	}
}

func TestRenderTableBlock(t *testing.T) {
	got := renderPlain(t, "| a | b |\n| --- | --- |\n| 1 | 2 |")
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header, separator, one row; got %q", got)
	}
}

func TestRenderImagePlaceholder(t *testing.T) {
	id := uuid.MustParse("3e0c7f8a-9f2d-4b1e-8c5a-2d6f1e9b0a47")
	blocks := []message.Block{message.ImageBlock(id)}
	r := NewRenderer(testStyles(t))
	got := StripANSI(r.Render(blocks))
	want := "[image " + id.String() + "]\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderImageFromStoreWithoutTerminalSupport(t *testing.T) {
	t.Setenv("KITTY_WINDOW_ID", "")
	t.Setenv("TERM", "dumb")
	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("LC_TERMINAL", "")
	ClearRenderedImages()
	t.Cleanup(ClearRenderedImages)

	store, err := imagestore.Open(t.TempDir() + "/images.db")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	id, err := store.Put(testPNG(t))
	if err != nil {
		t.Fatal(err)
	}

	input := "<image-uuid>" + id.String() + "</image-uuid>"
	blocks := message.Parse(input, store.Resolver())
	r := NewRenderer(testStyles(t), WithImageSource(store))
	got := StripANSI(r.Render(blocks))

	// terminal has no image protocol, so the store lookup succeeds but
	// rendering falls back to the placeholder
	want := "[image " + id.String() + "]\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
