package rewrite

import (
	"os"

	"github.com/BurntSushi/toml"

	"catalog-suggest/core/domain"
	"catalog-suggest/core/errors"
)

// tableFile is the on-disk layout of a correction table:
//
//	[[correction]]
//	pattern = "xfq"
//	replacement = "чай"
//	kind = "typo"
//
// Array-of-tables preserves file order, which becomes iteration order.
type tableFile struct {
	Corrections []domain.CorrectionEntry `toml:"correction"`
}

// LoadTable reads a TOML correction table from path.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, "read correction table")
	}
	return ParseTable(string(data), path)
}

// ParseTable decodes a TOML correction table. source is used in error messages.
func ParseTable(data string, source string) (*Table, error) {
	var f tableFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, &errors.ParseError{Source: source, Err: err}
	}
	return NewTable(f.Corrections)
}
