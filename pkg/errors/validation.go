package errors

import (
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks
// when the name is later interpolated into URLs, cache keys, or local
// command arguments.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, backslash)
//   - No null bytes
//   - Maximum length of 256 characters
//
// Ecosystem-specific validation (scoped NPM names, crate naming rules)
// is done separately by the ecosystem adapters.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateSymbolName validates a symbol name supplied for direct lookup.
// Symbols are matched against extracted signatures, so the rules are loose:
// non-empty, printable, and bounded in length.
func ValidateSymbolName(symbol string) error {
	if symbol == "" {
		return New(ErrCodeInvalidSymbol, "symbol name cannot be empty")
	}
	if len(symbol) > 128 {
		return New(ErrCodeInvalidSymbol, "symbol name too long (max 128 characters)")
	}
	for _, r := range symbol {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidSymbol, "symbol name contains whitespace or control characters")
		}
	}
	return nil
}

// ValidateQuery validates a free-text search query.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return New(ErrCodeInvalidQuery, "query cannot be empty")
	}
	if len(query) > 512 {
		return New(ErrCodeInvalidQuery, "query too long (max 512 characters)")
	}
	return nil
}
