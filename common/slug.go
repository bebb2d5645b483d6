package common

import (
	"errors"
	"regexp"
	"strings"
)

const maxSlugLen = 60

var (
	ErrEmptySlug = errors.New("slug cannot be empty")
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

	// Organization and workspace names are often Spanish. Fold the
	// accented letters before stripping, so "Operación" keeps its
	// letters instead of splitting on them.
	accentFolder = strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
		"ü", "u", "ñ", "n",
	)
)

// Slugify derives a URL-safe slug from input, falling back to the
// second argument when the input has no usable characters.
func Slugify(input, fallback string) (string, error) {
	slug := slugify(input)
	if slug == "" {
		slug = slugify(fallback)
	}
	if slug == "" {
		return "", ErrEmptySlug
	}
	return slug, nil
}

func slugify(s string) string {
	lower := accentFolder.Replace(strings.ToLower(strings.TrimSpace(s)))
	slug := nonSlugChars.ReplaceAllString(lower, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	return slug
}
