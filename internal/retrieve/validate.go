package retrieve

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// placeholderPatterns match generic default assets some providers hand back
// instead of failing: stock "no avatar" images, 1x1 pixels, branded fallbacks.
// Treating one of those as a genuine result is a correctness bug, so the
// engine rejects them and moves on to the next strategy.
var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)no[-_]?avatar`),
	regexp.MustCompile(`(?i)default[-_]?(profile|avatar|user|img)`),
	regexp.MustCompile(`(?i)placeholder`),
	regexp.MustCompile(`(?i)/anonymous\.(png|jpe?g|webp)`),
	regexp.MustCompile(`(?i)blank[-_]?profile`),
	regexp.MustCompile(`(?i)1x1\.(png|gif)`),
}

var (
	errEmptyResult = errors.New("empty result")
	errRelativeURL = errors.New("locator is not an absolute reference")
	errBadScheme   = errors.New("locator has no resolvable scheme")
	ErrPlaceholder = errors.New("locator matches a placeholder asset pattern")
)

// Validate decides whether a candidate result counts as a success. Inline
// payloads only need to be non-empty; URL results must be absolute http(s)
// references that do not look like a default asset.
func Validate(res *Result) error {
	if res == nil {
		return errEmptyResult
	}
	if len(res.Data) > 0 {
		return nil
	}

	loc := strings.TrimSpace(res.URL)
	if loc == "" {
		return errEmptyResult
	}

	u, err := url.Parse(loc)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return errRelativeURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errBadScheme
	}

	for _, p := range placeholderPatterns {
		if p.MatchString(loc) {
			return ErrPlaceholder
		}
	}
	return nil
}
