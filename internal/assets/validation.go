package assets

import "fmt"

// maxAssetNameLen bounds asset names accepted from flags and config files.
const maxAssetNameLen = 64

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Only ASCII letters, digits, hyphens and underscores are accepted, which
// rules out path separators, traversal sequences and extension tricks.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLen {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, maxAssetNameLen)
	}
	for _, r := range name {
		if !isNameRune(r) {
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}

func isNameRune(r rune) bool {
	return r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z' ||
		r >= '0' && r <= '9' ||
		r == '-' || r == '_'
}
