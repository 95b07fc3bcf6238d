package tools

import (
	"strings"
	"unicode"
)

// NormalizePhoneDigits reduz um telefone à sua forma canônica (apenas dígitos),
// tolerando '+' inicial, espaços, hífens, pontos e parênteses.
//
// "+56 9 1234-5678", "56912345678" e "(56) 9.1234.5678" normalizam igual.
func NormalizePhoneDigits(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
