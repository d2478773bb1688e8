package chunk

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// DisassembleChunk walks every instruction in c and logs its textual form
// at debug level, prefixed by name. It is the primary consumer of
// DisassembleInstruction and exists for the NILOX_PRINT_CODE debug
// switch and the niloxc disasm subcommand.
func DisassembleChunk(c *Chunk, name string) {
	logrus.Debugf("== %s ==", name)
	for offset := 0; offset < len(c.Code); {
		line, next := DisassembleInstruction(c, offset)
		logrus.Debug(line)
		offset = next
	}
}

// DisassembleInstruction renders the instruction at offset as a single
// human-readable line and returns it alongside the offset of the next
// instruction.
func DisassembleInstruction(c *Chunk, offset int) (string, int) {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d ", offset)

	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		b.WriteString("   | ")
	} else {
		fmt.Fprintf(&b, "%4d ", c.Lines[offset])
	}

	op := OpCode(c.Code[offset])
	switch op {
	case OpConstant:
		return constantInstruction(&b, "OP_CONSTANT", c, offset)
	case OpConstantLong:
		return constantLongInstruction(&b, "OP_CONSTANT_LONG", c, offset)
	case OpNil:
		return simpleInstruction(&b, "OP_NIL", offset)
	case OpTrue:
		return simpleInstruction(&b, "OP_TRUE", offset)
	case OpFalse:
		return simpleInstruction(&b, "OP_FALSE", offset)
	case OpEqual:
		return simpleInstruction(&b, "OP_EQUAL", offset)
	case OpGreater:
		return simpleInstruction(&b, "OP_GREATER", offset)
	case OpLess:
		return simpleInstruction(&b, "OP_LESS", offset)
	case OpAdd:
		return simpleInstruction(&b, "OP_ADD", offset)
	case OpSubtract:
		return simpleInstruction(&b, "OP_SUBTRACT", offset)
	case OpMultiply:
		return simpleInstruction(&b, "OP_MULTIPLY", offset)
	case OpDivide:
		return simpleInstruction(&b, "OP_DIVIDE", offset)
	case OpNot:
		return simpleInstruction(&b, "OP_NOT", offset)
	case OpNegate:
		return simpleInstruction(&b, "OP_NEGATE", offset)
	case OpReturn:
		return simpleInstruction(&b, "OP_RETURN", offset)
	default:
		fmt.Fprintf(&b, "unknown opcode %d", op)
		return b.String(), offset + 1
	}
}

func simpleInstruction(b *strings.Builder, name string, offset int) (string, int) {
	b.WriteString(name)
	return b.String(), offset + 1
}

func constantInstruction(b *strings.Builder, name string, c *Chunk, offset int) (string, int) {
	index := c.Code[offset+1]
	fmt.Fprintf(b, "%-16s %4d '%s'", name, index, c.Constants[index].String())
	return b.String(), offset + 2
}

func constantLongInstruction(b *strings.Builder, name string, c *Chunk, offset int) (string, int) {
	index := ReadConstantLong(c.Code, offset+1)
	fmt.Fprintf(b, "%-16s %4d '%s'", name, index, c.Constants[index].String())
	return b.String(), offset + 4
}
