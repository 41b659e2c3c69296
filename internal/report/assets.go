package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ImageChecker answers whether a background image exists for a name
// within an asset folder such as "flags" or "locations".
type ImageChecker interface {
	HasImage(folder, name string) (bool, error)
}

var (
	nonAssetChars = regexp.MustCompile(`[^\w-]`)
	hyphenRuns    = regexp.MustCompile(`-+`)
)

// AssetName normalizes a display name to the slug asset files are
// named after: lowercase, spaces to hyphens, special characters
// stripped.
func AssetName(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = nonAssetChars.ReplaceAllString(slug, "")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// DirChecker looks for asset images under a local directory tree laid
// out as <root>/<folder>/<file>.
type DirChecker struct {
	Root string
}

// HasImage reports whether any file in the folder matches the
// normalized name. Underscore and hyphen spellings both count.
func (d DirChecker) HasImage(folder, name string) (bool, error) {
	slug := AssetName(name)
	if slug == "" {
		return false, nil
	}

	entries, err := os.ReadDir(filepath.Join(d.Root, folder))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to list %s assets: %w", folder, err)
	}

	variants := []string{slug, strings.ReplaceAll(slug, "-", "_"), strings.ReplaceAll(slug, "-", "")}
	for _, entry := range entries {
		fileName := strings.ToLower(entry.Name())
		for _, variant := range variants {
			if strings.Contains(fileName, variant) {
				return true, nil
			}
		}
	}
	return false, nil
}
