package profile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/incident-map/internal/geo"
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// Location is one of three shapes: a ZIP code, a free-form address, or
// device coordinates together with their address.
type Location struct {
	ZipCode string     `json:"zipCode,omitempty"`
	Address string     `json:"address,omitempty" validate:"omitempty,max=300"`
	Coords  *geo.Point `json:"coords,omitempty"`
}

type Household struct {
	Size                 int    `json:"size" validate:"min=1,max=50"`
	HasPets              bool   `json:"hasPets"`
	AccessibilityNeeds   bool   `json:"accessibilityNeeds"`
	AccessibilityDetails string `json:"accessibilityDetails,omitempty" validate:"max=1000"`
}

// AlertSettings narrows notifications to a radius and a set of incident
// categories. Zero values mean no restriction.
type AlertSettings struct {
	RadiusMiles float64  `json:"radiusMiles,omitempty" validate:"gte=0,lte=500"`
	Categories  []string `json:"categories,omitempty" validate:"dive,oneof=fires evacuations reliefCenters floods earthquakes"`
}

// UserProfile is the single local user's onboarding answers. Resolved is
// filled by geocoding and is not part of the location shape.
type UserProfile struct {
	Location      Location       `json:"location"`
	Household     Household      `json:"household"`
	Notifications bool           `json:"notifications"`
	Alerts        *AlertSettings `json:"alerts,omitempty" validate:"omitempty"`
	Resolved      *geo.Point     `json:"resolved,omitempty"`
}

var validate = validator.New()

// Validate checks the location shape and field ranges.
func (p UserProfile) Validate() error {
	if err := p.Location.validateShape(); err != nil {
		return err
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func (l Location) validateShape() error {
	zip := strings.TrimSpace(l.ZipCode)
	addr := strings.TrimSpace(l.Address)

	switch {
	case l.Coords != nil:
		if zip != "" || addr == "" {
			return fmt.Errorf("%w: coordinates need an address and no zip code", ErrInvalid)
		}
		if err := validate.Struct(l.Coords); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	case zip != "":
		if addr != "" {
			return fmt.Errorf("%w: give a zip code or an address, not both", ErrInvalid)
		}
		if !zipPattern.MatchString(zip) {
			return fmt.Errorf("%w: malformed zip code %q", ErrInvalid, zip)
		}
	case addr == "":
		return fmt.Errorf("%w: location is required", ErrInvalid)
	}
	return nil
}

// Point is the best known position for the profile.
func (p UserProfile) Point() *geo.Point {
	if p.Location.Coords != nil {
		return p.Location.Coords
	}
	return p.Resolved
}

// query is what gets sent to the forward geocoder.
func (l Location) query() string {
	if l.ZipCode != "" {
		return strings.TrimSpace(l.ZipCode)
	}
	return strings.TrimSpace(l.Address)
}
