package catalog

import "fmt"

// Language is one of the storefront's supported display language codes.
type Language string

// Supported languages. Japanese is the storefront default and the first
// fallback for localized text.
const (
	LangJA   Language = "ja"
	LangEN   Language = "en"
	LangZHTW Language = "zh-tw"
	LangZHCN Language = "zh-cn"
	LangKO   Language = "ko"
)

// Languages lists every supported language in the order the original
// storefront cycles through them.
var Languages = []Language{LangJA, LangEN, LangZHTW, LangZHCN, LangKO}

// UnsupportedLanguageError indicates a language code outside the supported set.
type UnsupportedLanguageError struct {
	Code string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language %q", e.Code)
}

// ParseLanguage validates a raw language code.
func ParseLanguage(code string) (Language, error) {
	for _, l := range Languages {
		if string(l) == code {
			return l, nil
		}
	}
	return "", &UnsupportedLanguageError{Code: code}
}

// Next returns the language following l in cycling order, wrapping around.
// Unknown values restart the cycle at the default language.
func (l Language) Next() Language {
	for i, cur := range Languages {
		if cur == l {
			return Languages[(i+1)%len(Languages)]
		}
	}
	return LangJA
}
