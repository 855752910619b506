package ast

import "unicode"

// Builtins is the fixed, closed set of builtin rule names and the
// single-character predicate each one tests. Every builtin consumes at most
// one character and succeeds iff the character satisfies its predicate.
var Builtins = map[string]func(r rune) bool{
	"B_ANY":        func(r rune) bool { return true },
	"B_NEWLINE_CR": func(r rune) bool { return r == '\r' },
	"B_NEWLINE_LF": func(r rune) bool { return r == '\n' },
	"B_DOUBLE_QUOTE": func(r rune) bool { return r == '"' },

	"B_ASCII":               func(r rune) bool { return r <= unicode.MaxASCII },
	"B_ASCII_ALPHABETIC":    isASCIIAlphabetic,
	"B_ASCII_ALPHANUMERIC":  isASCIIAlphanumeric,
	"B_ASCII_CONTROL":       func(r rune) bool { return r <= unicode.MaxASCII && unicode.IsControl(r) },
	"B_ASCII_DIGIT":         func(r rune) bool { return r >= '0' && r <= '9' },
	"B_ASCII_GRAPHIC":       isASCIIGraphic,
	"B_ASCII_HEXDIGIT":      isASCIIHexDigit,
	"B_ASCII_LOWERCASE":     func(r rune) bool { return r >= 'a' && r <= 'z' },
	"B_ASCII_PUNCTUATION":   isASCIIPunctuation,
	"B_ASCII_UPPERCASE":     func(r rune) bool { return r >= 'A' && r <= 'Z' },
	"B_ASCII_WHITESPACE":    isASCIIWhitespace,

	"B_CONTROL":   unicode.IsControl,
	"B_LOWERCASE": unicode.IsLower,
	"B_NUMERIC":   unicode.IsNumber,
	"B_UPPERCASE": unicode.IsUpper,
	"B_WHITESPACE": unicode.IsSpace,
}

func isASCIIAlphabetic(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlphabetic(r) || (r >= '0' && r <= '9')
}

func isASCIIHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isASCIIWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func isASCIIPunctuation(r rune) bool {
	if r > unicode.MaxASCII {
		return false
	}
	switch {
	case r >= '!' && r <= '/':
		return true
	case r >= ':' && r <= '@':
		return true
	case r >= '[' && r <= '`':
		return true
	case r >= '{' && r <= '~':
		return true
	default:
		return false
	}
}

func isASCIIGraphic(r rune) bool {
	return r >= '!' && r <= '~'
}

// IsBuiltinName reports whether name uses the reserved builtin prefix.
func IsBuiltinName(name string) bool {
	return len(name) >= len(BuiltinPrefix) && name[:len(BuiltinPrefix)] == BuiltinPrefix
}

// IsValidBuiltin reports whether name is a member of the closed builtin
// table.
func IsValidBuiltin(name string) bool {
	_, ok := Builtins[name]
	return ok
}

// IsExternalName reports whether name uses the reserved external prefix.
func IsExternalName(name string) bool {
	return len(name) >= len(ExternalPrefix) && name[:len(ExternalPrefix)] == ExternalPrefix
}

// IsReservedName reports whether name is reserved (builtin or external
// prefix), regardless of whether it is a *valid* builtin.
func IsReservedName(name string) bool {
	return IsBuiltinName(name) || IsExternalName(name)
}
