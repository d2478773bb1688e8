package chunk

import (
	"strings"
	"testing"

	"nilox/value"
)

func TestDisassembleInstructionSimple(t *testing.T) {
	c := New()
	c.Write(byte(OpReturn), 1)
	line, next := DisassembleInstruction(c, 0)
	if next != 1 {
		t.Errorf("next offset = %d, want 1", next)
	}
	if !strings.Contains(line, "OP_RETURN") {
		t.Errorf("line = %q, want it to contain OP_RETURN", line)
	}
}

func TestDisassembleInstructionConstant(t *testing.T) {
	c := New()
	if err := c.WriteConstant(value.Number(1.5), 3); err != nil {
		t.Fatalf("WriteConstant: %v", err)
	}
	line, next := DisassembleInstruction(c, 0)
	if next != 2 {
		t.Errorf("next offset = %d, want 2", next)
	}
	if !strings.Contains(line, "OP_CONSTANT") || !strings.Contains(line, "1.5") {
		t.Errorf("line = %q, want OP_CONSTANT and 1.5", line)
	}
}

func TestDisassembleChunkWalksEveryInstruction(t *testing.T) {
	c := New()
	if err := c.WriteConstant(value.Number(1), 1); err != nil {
		t.Fatalf("WriteConstant: %v", err)
	}
	c.Write(byte(OpNegate), 1)
	c.Write(byte(OpReturn), 1)

	// DisassembleChunk only logs; it must not panic when walking a mixed
	// constant/simple instruction stream.
	DisassembleChunk(c, "test")
}

func TestDisassembleInstructionOmitsLineOnRepeat(t *testing.T) {
	c := New()
	c.Write(byte(OpNil), 5)
	c.Write(byte(OpReturn), 5)
	first, next := DisassembleInstruction(c, 0)
	second, _ := DisassembleInstruction(c, next)
	if !strings.Contains(first, "5") {
		t.Errorf("first line = %q, want it to show line 5", first)
	}
	if !strings.Contains(second, "|") {
		t.Errorf("second line = %q, want the repeated-line marker '|'", second)
	}
}
