package ir

// Version constants for the compiled table format and the compiler.
const (
	// TableVersion is the compiled table schema version.
	TableVersion = "1"

	// CompilerVersion is the lexc compiler version.
	CompilerVersion = "0.1.0"
)
