package message

import (
	"reflect"
	"testing"
)

// inl marks a fragment as continuing its source line.
func inl(b Block) Block {
	b.Inline = true
	return b
}

func TestScanInlineDollarSpans(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Block
	}{
		{
			name: "simple span",
			line: "Hello $x^2$ world",
			want: []Block{inl(TextBlock("Hello ")), inl(FormulaBlock("x^2")), TextBlock(" world")},
		},
		{
			name: "empty span still emits formula",
			line: "Text $$ end",
			want: []Block{inl(TextBlock("Text ")), inl(FormulaBlock("")), TextBlock(" end")},
		},
		{
			name: "whitespace-only span",
			line: "a $ $ b",
			want: []Block{inl(TextBlock("a ")), inl(FormulaBlock(" ")), TextBlock(" b")},
		},
		{
			name: "escaped dollar stays literal",
			line: `This is a real \$5 price, not $x=1$.`,
			want: []Block{inl(TextBlock(`This is a real \$5 price, not `)), inl(FormulaBlock("x=1")), TextBlock(".")},
		},
		{
			name: "span at line start",
			line: "$a$ and $b$",
			want: []Block{inl(FormulaBlock("a")), inl(TextBlock(" and ")), FormulaBlock("b")},
		},
		{
			name: "escaped dollar inside span",
			line: `cost $5 \$ 3$ total`,
			want: []Block{inl(TextBlock("cost ")), inl(FormulaBlock(`5 $ 3`)), TextBlock(" total")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanInline(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ScanInline(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestScanInlineParenSpans(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Block
	}{
		{
			name: "simple paren span",
			line: `Euler: \(e^{i\pi}+1=0\) done`,
			want: []Block{inl(TextBlock("Euler: ")), inl(FormulaBlock(`e^{i\pi}+1=0`)), TextBlock(" done")},
		},
		{
			name: "plain parens inside span",
			line: `map \(f(x)\) applies f`,
			want: []Block{inl(TextBlock("map ")), inl(FormulaBlock("f(x)")), TextBlock(" applies f")},
		},
		{
			name: "escaped paren delimiters unescape",
			line: `\(\(a\$b\)`,
			want: []Block{FormulaBlock("(a$b")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanInline(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ScanInline(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestScanInlineNoMatch(t *testing.T) {
	lines := []string{
		"",
		"plain prose without math",
		"price $100 with no closer",
		`lonely \( opener`,
		`escaped \$ only`,
	}

	for _, line := range lines {
		got := ScanInline(line)
		want := []Block{TextBlock(line)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ScanInline(%q) = %v, want single text fragment", line, got)
		}
	}
}

// Concatenating fragment payloads must reproduce the line, modulo the
// delimiters and un-escaping inside formula fragments.
func TestScanInlineReconstruction(t *testing.T) {
	line := "before $x$ middle \\(y\\) after"
	var rebuilt string
	for _, b := range ScanInline(line) {
		switch b.Type {
		case BlockText:
			rebuilt += b.Body
		case BlockFormula:
			rebuilt += b.Body
		default:
			t.Fatalf("unexpected block type %v", b.Type)
		}
	}
	if rebuilt != "before x middle y after" {
		t.Errorf("reconstructed %q", rebuilt)
	}
}
