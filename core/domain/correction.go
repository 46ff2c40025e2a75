package domain

// CorrectionKind tags which concern a correction entry serves.
// It is informational only and never changes rewrite precedence.
type CorrectionKind string

const (
	CorrectionTypo            CorrectionKind = "typo"
	CorrectionTransliteration CorrectionKind = "transliteration"
	CorrectionAbbreviation    CorrectionKind = "abbreviation"
)

// CorrectionEntry maps a known-bad or alternate query fragment to its canonical form.
type CorrectionEntry struct {
	Pattern     string         `toml:"pattern" json:"pattern"`
	Replacement string         `toml:"replacement" json:"replacement"`
	Kind        CorrectionKind `toml:"kind" json:"kind,omitempty"`
}
