package base

import (
	"strings"

	"github.com/matzehuels/basegen/pkg/errors"
)

// Style selects the overall exterior massing of a generated base.
type Style string

// Supported base styles.
const (
	// StylePyramid is a single tapered shell from footprint to top.
	StylePyramid Style = "pyramid"

	// StyleStepped is a stack of shrinking tapered tiers.
	StyleStepped Style = "stepped"

	// StyleTower is a wide tapered base topped by a narrower tower.
	StyleTower Style = "tower"
)

// ValidStyles is the set of supported base styles.
var ValidStyles = map[Style]bool{
	StylePyramid: true,
	StyleStepped: true,
	StyleTower:   true,
}

// ParseStyle converts a string to a Style, case-insensitively.
func ParseStyle(s string) (Style, error) {
	style := Style(strings.ToLower(s))
	if !ValidStyles[style] {
		return "", errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: pyramid, stepped, tower)", s)
	}
	return style, nil
}

// String returns the style name.
func (s Style) String() string { return string(s) }
