package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Grammar document errors
//   - E2xxx: Compile errors
type ErrorCode string

const (
	// Grammar document errors (E1xxx)
	E1001 ErrorCode = "E1001" // Malformed document
	E1002 ErrorCode = "E1002" // Unknown atom key
	E1003 ErrorCode = "E1003" // Ambiguous atom mapping
	E1004 ErrorCode = "E1004" // Invalid atom value

	// Compile errors (E2xxx)
	E2001 ErrorCode = "E2001" // Unsupported atom kind
	E2002 ErrorCode = "E2002" // Maximum nesting depth exceeded
	E2003 ErrorCode = "E2003" // Invalid program
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "malformed grammar document",
	E1002: "unknown atom key",
	E1003: "ambiguous atom mapping",
	E1004: "invalid atom value",

	E2001: "unsupported atom kind",
	E2002: "maximum nesting depth exceeded",
	E2003: "invalid program",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "grammar"
	case '2':
		return "compile"
	default:
		return "unknown"
	}
}
