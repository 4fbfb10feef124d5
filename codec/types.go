package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/agglom/matrix"
)

var (
	// ErrUnknownFormat indicates an unsupported input or output format name.
	ErrUnknownFormat = errors.New("codec: unknown format")

	// ErrMalformed indicates input that does not follow the declared format.
	ErrMalformed = errors.New("codec: malformed input")
)

// Format names a matrix or tree encoding.
type Format string

// Matrix input formats.
const (
	FormatPhylip Format = "phylip"
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

// Tree output formats (FormatJSON is shared).
const (
	FormatNewick  Format = "newick"
	FormatMsgpack Format = "msgpack"
)

// Input is a decoded distance matrix with optional taxon labels.
// Labels is nil when the source carried none.
type Input struct {
	Labels []string
	Matrix *matrix.Dense
}

// FormatFromPath infers a format from a file extension.
//
//	.phy .phylip .dist → phylip; .csv → csv; .json → json; .yaml .yml → yaml;
//	.nwk .newick .tree → newick; .msgpack .mp → msgpack.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".phy", ".phylip", ".dist":
		return FormatPhylip, nil
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".nwk", ".newick", ".tree":
		return FormatNewick, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%q: %w", path, ErrUnknownFormat)
	}
}

// malformedf wraps ErrMalformed with a format tag and location.
func malformedf(tag string, line int, format string, args ...any) error {
	return fmt.Errorf("%s line %d: %s: %w", tag, line, fmt.Sprintf(format, args...), ErrMalformed)
}
