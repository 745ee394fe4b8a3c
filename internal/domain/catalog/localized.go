package catalog

// LocalizedText is a per-language string mapping, keyed by Language.
// Absent keys are filled in at read time by Resolve, never stored.
type LocalizedText map[Language]string

// Resolve returns the best available text for lang. The fallback order is
// fixed: requested language, Japanese, the first present key in cycling
// order, empty string. Every localized read in the storefront goes through
// this function so the fallback behaviour cannot drift between call sites.
func (t LocalizedText) Resolve(lang Language) string {
	if len(t) == 0 {
		return ""
	}
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	if v, ok := t[LangJA]; ok && v != "" {
		return v
	}
	for _, l := range Languages {
		if v, ok := t[l]; ok && v != "" {
			return v
		}
	}
	return ""
}

// Clone returns an independent copy of the mapping.
func (t LocalizedText) Clone() LocalizedText {
	if t == nil {
		return nil
	}
	out := make(LocalizedText, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// WithValue returns a copy of t with the text for lang replaced. The
// receiver is never mutated; existing translations for other languages are
// preserved.
func (t LocalizedText) WithValue(lang Language, text string) LocalizedText {
	out := t.Clone()
	if out == nil {
		out = make(LocalizedText, 1)
	}
	out[lang] = text
	return out
}
