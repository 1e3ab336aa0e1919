package message

import "testing"

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"<think>", kindThinking},
		{"  <think>planning", kindThinking},
		{"<think>done</think>", kindThinking},
		{"```", kindFence},
		{"```go", kindFence},
		{"   ```python", kindFence},
		{"| a | b |", kindTableRow},
		{"  |---|---|", kindTableRow},
		{`\[`, kindMathOpen},
		{`  \[  `, kindMathOpen},
		{`\[ x^2 \]`, kindMathLine},
		{`\]`, kindMathLine},
		{"<image-uuid>123e4567-e89b-12d3-a456-426614174000</image-uuid>", kindImageRef},
		{"regular prose", kindText},
		{"", kindText},
		{"a | b", kindText},        // pipe not at line start
		{"$x$ inline", kindText},   // inline math is not a block
		{"</think>", kindText},     // close tag alone is routed by the assembler
		{"<imagery>", kindText},
	}

	for _, tt := range tests {
		if got := classifyLine(tt.line); got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
