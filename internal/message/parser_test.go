package message

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
)

var testImageID = uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")

// knownImages resolves only testImageID.
var knownImages = ResolverFunc(func(id uuid.UUID) bool {
	return id == testImageID
})

func assertBlocks(t *testing.T, input string, got, want []Block) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("parse %q: got %d blocks %v, want %d blocks %v",
			input, len(got), got, len(want), want)
	}
	for i := range got {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Errorf("parse %q: block %d = %+v, want %+v", input, i, got[i], want[i])
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	got := Parse("", nil)
	assertBlocks(t, "", got, []Block{TextBlock("")})
}

func TestParseProseLines(t *testing.T) {
	// Prose is emitted one block per physical line, never batched.
	got := Parse("first\n\nsecond", nil)
	want := []Block{TextBlock("first"), TextBlock(""), TextBlock("second")}
	assertBlocks(t, "prose", got, want)
}

func TestParseInlineMathInProse(t *testing.T) {
	got := Parse("Hello $x^2$ world", nil)
	want := []Block{inl(TextBlock("Hello ")), inl(FormulaBlock("x^2")), TextBlock(" world")}
	assertBlocks(t, "inline math", got, want)
}

func TestParseFencedCode(t *testing.T) {
	input := "```go\nfunc main() {}\n```\nafter"
	got := Parse(input, nil)
	want := []Block{
		CodeBlock("func main() {}", "go", 0),
		TextBlock("after"),
	}
	assertBlocks(t, input, got, want)
}

func TestParseFencedCodeIndent(t *testing.T) {
	// The fence line's indent is stripped from every body line.
	input := "  ```python\n  x = 1\n    y = 2\n  ```"
	got := Parse(input, nil)
	want := []Block{CodeBlock("x = 1\n  y = 2", "python", 2)}
	assertBlocks(t, input, got, want)
}

func TestParseUnterminatedFence(t *testing.T) {
	input := "```rust\nlet a = 1;\nlet b = 2;"
	got := Parse(input, nil)
	want := []Block{CodeBlock("let a = 1;\nlet b = 2;", "rust", 0)}
	assertBlocks(t, input, got, want)
}

func TestParseTableSurroundedByProse(t *testing.T) {
	input := strings.Join([]string{
		"intro",
		"| Name | Age |",
		"|------|-----|",
		"| Alice | 30 |",
		"| Bob | 25 |",
		"outro",
	}, "\n")
	got := Parse(input, nil)
	want := []Block{
		TextBlock("intro"),
		TableBlock([]string{"Name", "Age"}, [][]string{{"Alice", "30"}, {"Bob", "25"}}),
		TextBlock("outro"),
	}
	assertBlocks(t, input, got, want)
}

func TestParseTableDelimiterRowVariants(t *testing.T) {
	input := "| a | b |\n| :--- | ---: |\n| 1 | 2 |"
	got := Parse(input, nil)
	want := []Block{TableBlock([]string{"a", "b"}, [][]string{{"1", "2"}})}
	assertBlocks(t, input, got, want)
}

// A header with no data rows never becomes a table; its text is dropped.
// Longstanding behavior, kept for compatibility.
func TestParseHeaderOnlyTableDropped(t *testing.T) {
	input := "| Name | Age |\n|------|-----|\nafter"
	got := Parse(input, nil)
	want := []Block{TextBlock("after")}
	assertBlocks(t, input, got, want)

	got = Parse("| Name | Age |", nil)
	assertBlocks(t, "trailing header", got, nil)
}

func TestParseBlockMath(t *testing.T) {
	input := "\\[\nE = mc^2\n\\]\nafter"
	got := Parse(input, nil)
	want := []Block{FormulaBlock("E = mc^2"), TextBlock("after")}
	assertBlocks(t, input, got, want)
}

func TestParseSingleLineBlockMath(t *testing.T) {
	input := `\[ a + b = c \]`
	got := Parse(input, nil)
	want := []Block{FormulaBlock("a + b = c")}
	assertBlocks(t, input, got, want)
}

func TestParseUnterminatedBlockMath(t *testing.T) {
	input := "\\[\nx + y"
	got := Parse(input, nil)
	want := []Block{FormulaBlock("x + y")}
	assertBlocks(t, input, got, want)
}

func TestParseThinkingSingleLine(t *testing.T) {
	got := Parse("<think> weighing options </think>", nil)
	want := []Block{ThinkingBlock("weighing options")}
	assertBlocks(t, "single-line thinking", got, want)
	if got[0].Expanded {
		t.Error("thinking blocks must start collapsed")
	}
}

func TestParseThinkingMultiLine(t *testing.T) {
	input := "<think>plan:\nstep 1\nstep 2</think>\nanswer"
	got := Parse(input, nil)
	want := []Block{
		ThinkingBlock("plan:\nstep 1\nstep 2"),
		TextBlock("answer"),
	}
	assertBlocks(t, input, got, want)
}

func TestParseUnterminatedThinking(t *testing.T) {
	input := "<think>\nstill going"
	got := Parse(input, nil)
	want := []Block{ThinkingBlock("still going")}
	assertBlocks(t, input, got, want)
}

func TestParseImageResolved(t *testing.T) {
	input := "look:\n<image-uuid>" + testImageID.String() + "</image-uuid>\ndone"
	got := Parse(input, knownImages)
	want := []Block{
		TextBlock("look:"),
		ImageBlock(testImageID),
		TextBlock("done"),
	}
	assertBlocks(t, input, got, want)
}

func TestParseImageMissDegradesToText(t *testing.T) {
	line := "<image-uuid>00000000-0000-0000-0000-000000000001</image-uuid>"
	got := Parse(line, knownImages)
	want := []Block{TextBlock(line)}
	assertBlocks(t, line, got, want)
}

func TestParseImageMalformedDegradesToText(t *testing.T) {
	tests := []string{
		"<image-uuid>not-a-uuid</image-uuid>",
		"<image-uuid>unterminated",
	}
	for _, line := range tests {
		got := Parse(line, knownImages)
		assertBlocks(t, line, got, []Block{TextBlock(line)})
	}
}

func TestParseImageNilResolver(t *testing.T) {
	line := "<image-uuid>" + testImageID.String() + "</image-uuid>"
	got := Parse(line, nil)
	assertBlocks(t, line, got, []Block{TextBlock(line)})
}

// Consecutive degraded image lines accumulate into one pending text run and
// flush newline-joined at the next boundary.
func TestParseDegradedImageRunJoins(t *testing.T) {
	miss := "<image-uuid>bad</image-uuid>"
	input := miss + "\n" + miss + "\nprose"
	got := Parse(input, knownImages)
	want := []Block{
		TextBlock(miss + "\n" + miss),
		TextBlock("prose"),
	}
	assertBlocks(t, input, got, want)
}

// Classification is context free: a table row inside an open code fence is
// routed to the table accumulator, not the code buffer. Kept for
// compatibility with existing message corpora.
func TestParseTableRowInsideFenceQuirk(t *testing.T) {
	input := "```\n| not code |\n```"
	got := Parse(input, nil)
	want := []Block{CodeBlock("", "", 0)}
	assertBlocks(t, input, got, want)
}

func TestParseMixedDocument(t *testing.T) {
	input := strings.Join([]string{
		"<think>outline first</think>",
		"Heading prose with $e^x$ inline.",
		"```js",
		"console.log(1);",
		"```",
		"| k | v |",
		"|---|---|",
		"| a | 1 |",
		"\\[",
		"\\sum_i x_i",
		"\\]",
		"closing words",
	}, "\n")
	got := Parse(input, nil)
	want := []Block{
		ThinkingBlock("outline first"),
		inl(TextBlock("Heading prose with ")),
		inl(FormulaBlock("e^x")),
		TextBlock(" inline."),
		CodeBlock("console.log(1);", "js", 0),
		TableBlock([]string{"k", "v"}, [][]string{{"a", "1"}}),
		FormulaBlock(`\sum_i x_i`),
		TextBlock("closing words"),
	}
	assertBlocks(t, input, got, want)
}

// No input line may vanish from the output except the documented cases
// (delimiter rows, header-only tables, fence lines, delimiters).
func TestParseReconstruction(t *testing.T) {
	input := strings.Join([]string{
		"alpha",
		"```",
		"beta",
		"```",
		"gamma",
	}, "\n")
	got := Parse(input, nil)

	var payload []string
	for _, b := range got {
		payload = append(payload, b.Body)
	}
	joined := strings.Join(payload, "\n")
	for _, word := range []string{"alpha", "beta", "gamma"} {
		if !strings.Contains(joined, word) {
			t.Errorf("content %q lost in output %q", word, joined)
		}
	}
}

func TestParserFeedFinish(t *testing.T) {
	p := NewParser(nil)
	p.Feed("one")
	p.Feed("two")
	got := p.Finish()
	want := []Block{TextBlock("one"), TextBlock("two")}
	assertBlocks(t, "feed/finish", got, want)
}
