package parsers

import (
	"io"

	"github.com/username/salescope/src/models"
)

// Parser turns an uploaded file into header-keyed raw rows. Implementations
// must not interpret field values; normalization happens downstream.
type Parser interface {
	Parse(file io.Reader) ([]models.RawRow, error)
}
