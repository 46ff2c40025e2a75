package rewrite

import "catalog-suggest/core/domain"

// DefaultEntries is the built-in correction list in definition order.
func DefaultEntries() []domain.CorrectionEntry {
	return []domain.CorrectionEntry{
		// keyboard layout typos
		{Pattern: "xfq", Replacement: "чай", Kind: domain.CorrectionTypo},
		{Pattern: "xfqyfz", Replacement: "сервиз", Kind: domain.CorrectionTypo},

		{Pattern: "холс", Replacement: "hols", Kind: domain.CorrectionTransliteration},
		{Pattern: "san pelle", Replacement: "san pellegrino", Kind: domain.CorrectionTransliteration},
		{Pattern: "sanpelle", Replacement: "san pellegrino", Kind: domain.CorrectionTransliteration},
		{Pattern: "san pel", Replacement: "san pellegrino", Kind: domain.CorrectionTransliteration},
		{Pattern: "san pellegr", Replacement: "san pellegrino", Kind: domain.CorrectionTransliteration},

		{Pattern: "адаптер", Replacement: "adapter", Kind: domain.CorrectionAbbreviation},
		{Pattern: "адаптер для", Replacement: "adapter for", Kind: domain.CorrectionAbbreviation},
	}
}

// DefaultTable returns a table built from DefaultEntries.
func DefaultTable() *Table {
	return MustNewTable(DefaultEntries())
}
