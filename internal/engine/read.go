package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readSource reads the whole file and returns it as UTF-8 text. A UTF-8 BOM
// is dropped and UTF-16 content is converted when a BOM announces it; any
// other content must already be valid UTF-8.
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	decoded, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUndecodable, path, err)
	}
	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("%w: %s", ErrUndecodable, path)
	}
	return string(decoded), nil
}
