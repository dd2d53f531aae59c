package positions

import (
	"fmt"
	"strings"
)

// Record holds one electrode location in spherical form. Theta is the
// azimuth in degrees with 0 at the nose, Phi the elevation in degrees
// above the horizontal plane, Radius the unit-normalized distance from
// the head center.
type Record struct {
	Theta  float64
	Phi    float64
	Radius float64

	// Name is the electrode label when the file carries one (a labels,
	// label or name column). Empty otherwise.
	Name string

	// Extra holds numeric columns that are not part of the coordinate
	// schema, keyed by header name. Nil when the file has none.
	Extra map[string]float64
}

// Convention selects how Cartesian X/Y axes map to anatomical directions.
// Files in spherical form ignore it.
type Convention int

const (
	// ConventionDefault: X runs left ear to right ear, Y inion to nasion.
	ConventionDefault Convention = iota
	// ConventionEEGLab: X runs inion to nasion, Y left ear to right ear.
	ConventionEEGLab
)

// ParseConvention maps a configuration string to a Convention.
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(s) {
	case "", "default", "cartesian-default", "spherical", "spherical-native":
		return ConventionDefault, nil
	case "eeglab", "cartesian-eeglab":
		return ConventionEEGLab, nil
	}
	return ConventionDefault, fmt.Errorf("positions: unknown axis convention %q", s)
}

// FormatError reports a position file that cannot be interpreted: no
// header row, or no recognized coordinate column set.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "positions: " + e.Reason
}
