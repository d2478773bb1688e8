package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, source string) (stdout, stderr string, result InterpretResult) {
	t.Helper()
	var out, errBuf bytes.Buffer
	v := New(WithStdout(&out), WithStderr(&errBuf))
	defer v.Close()
	result = v.Interpret(source)
	return out.String(), errBuf.String(), result
}

func TestArithmeticPrecedence(t *testing.T) {
	out, _, result := run(t, "1 + 2 * 3")
	require.Equal(t, ResultOK, result)
	assert.Equal(t, "7", strings.TrimSpace(out))
}

func TestGroupingOverridesPrecedence(t *testing.T) {
	out, _, result := run(t, "(1 + 2) * 3")
	require.Equal(t, ResultOK, result)
	assert.Equal(t, "9", strings.TrimSpace(out))
}

func TestNotOnNilIsTrue(t *testing.T) {
	out, _, result := run(t, "!nil")
	require.Equal(t, ResultOK, result)
	assert.Equal(t, "true", strings.TrimSpace(out))
}

func TestStringConcatenationThenEquality(t *testing.T) {
	out, _, result := run(t, `"he" + "llo" == "hello"`)
	require.Equal(t, ResultOK, result)
	assert.Equal(t, "true", strings.TrimSpace(out))
}

func TestNegateNonNumberIsRuntimeError(t *testing.T) {
	_, errOut, result := run(t, "-true")
	require.Equal(t, ResultRuntimeError, result)
	assert.NotEmpty(t, errOut)
}

func TestAddNumberAndStringIsRuntimeError(t *testing.T) {
	_, errOut, result := run(t, `1 + "a"`)
	require.Equal(t, ResultRuntimeError, result)
	assert.NotEmpty(t, errOut)
}

func TestDanglingOperatorIsCompileError(t *testing.T) {
	_, errOut, result := run(t, "1 +")
	require.Equal(t, ResultCompileError, result)
	assert.NotEmpty(t, errOut)
}

func TestLessOrEqual(t *testing.T) {
	out, _, result := run(t, "1 <= 2")
	require.Equal(t, ResultOK, result)
	assert.Equal(t, "true", strings.TrimSpace(out))
}

func TestVMIsReusableAfterRuntimeError(t *testing.T) {
	var out, errBuf bytes.Buffer
	v := New(WithStdout(&out), WithStderr(&errBuf))
	defer v.Close()

	require.Equal(t, ResultRuntimeError, v.Interpret("-true"))
	out.Reset()
	require.Equal(t, ResultOK, v.Interpret("1 + 1"))
	assert.Equal(t, "2", strings.TrimSpace(out.String()))
}

func TestInternedStringsShareIdentityAcrossConcatenation(t *testing.T) {
	out, _, result := run(t, `"a" + "b" == "ab"`)
	require.Equal(t, ResultOK, result)
	assert.Equal(t, "true", strings.TrimSpace(out))
}
