package internal

import (
	"fmt"
	"strings"
)

// TokenError describes a malformed token or invocation string.
type TokenError struct {
	Message string
	Token   string
}

// NewTokenError creates a token error.
func NewTokenError(message, token string) *TokenError {
	return &TokenError{Message: message, Token: token}
}

// Error implements the error interface.
func (e *TokenError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Token)
	}
	return e.Message
}

// SplitTokens splits a raw tag invocation into whitespace-separated tokens.
// A single- or double-quoted run groups into one token with its quotes and
// escapes preserved, so expression compilation can still classify literals.
// Quotes may open mid-token ('name="a b"' stays one token).
func SplitTokens(s string) ([]string, error) {
	var tokens []string
	var sb strings.Builder

	var quote byte
	quoteStart := 0

	flush := func() {
		if sb.Len() > 0 {
			tokens = append(tokens, sb.String())
			sb.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if quote != 0 {
			sb.WriteByte(ch)
			if ch == CharBackslash && i+1 < len(s) {
				i++
				sb.WriteByte(s[i])
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}

		switch {
		case ch == CharDoubleQuote || ch == CharSingleQuote:
			quote = ch
			quoteStart = i
			sb.WriteByte(ch)
		case isSpace(ch):
			flush()
		default:
			sb.WriteByte(ch)
		}
	}

	if quote != 0 {
		return nil, NewTokenError(ErrMsgUnterminatedQuote, s[quoteStart:])
	}
	flush()
	return tokens, nil
}

// isSpace reports whether ch is ASCII whitespace.
func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
