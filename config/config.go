// Package config resolves the debug switches that gate the compiler's and
// VM's diagnostic output, mirroring the DEBUG_TRACE_EXECUTION and
// DEBUG_PRINT_CODE compile-time flags from the reference implementation as
// environment variables instead, since Go has no build-time #define for it.
package config

import "os"

// Debug holds the resolved debug flags for one compile/run.
type Debug struct {
	TraceExecution bool
	PrintCode      bool
}

// FromEnv resolves Debug from the process environment. NILOX_TRACE_EXECUTION
// enables the VM's instruction trace; NILOX_PRINT_CODE enables the
// compiler's post-compile disassembly dump. Both are off unless set to a
// non-empty value.
func FromEnv() Debug {
	return Debug{
		TraceExecution: os.Getenv("NILOX_TRACE_EXECUTION") != "",
		PrintCode:      os.Getenv("NILOX_PRINT_CODE") != "",
	}
}
