package internal

// Character constants for token scanning
const (
	CharDoubleQuote = '"'
	CharSingleQuote = '\''
	CharBackslash   = '\\'
)

// Error message constants (mirror public constants for internal use)
const (
	ErrMsgUnterminatedQuote = "unterminated quoted token"
	ErrMsgEmptyKeywordName  = "empty keyword name"
)
