package directory

import (
	"time"
)

// Known resource types; the set is open-ended.
const (
	TypeShelter  = "shelter"
	TypeFoodBank = "foodBank"
	TypeMedical  = "medical"
	TypeAnimal   = "animal"
)

// Hours maps day of week (0 = Sunday) to flat open/close hour breakpoints,
// e.g. {9, 12, 13, 17}. A nil entry means closed all day.
type Hours map[int][]float64

// Resource is a directory entry. Distance is set only after a proximity
// computation against a user location.
type Resource struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Services      []string `json:"services"`
	Accessibility bool     `json:"accessibility"`
	OpenNow       bool     `json:"openNow"`
	Hours         Hours    `json:"hours,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Website       string   `json:"website,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	Distance      *float64 `json:"distance,omitempty"` // miles
}

// OpenAt reports whether the hours schedule is open at t (in t's location).
// Breakpoints are read in pairs as [open, close); a trailing unpaired value is ignored.
func (r Resource) OpenAt(t time.Time) bool {
	breaks := r.Hours[int(t.Weekday())]
	hour := float64(t.Hour()) + float64(t.Minute())/60
	for i := 0; i+1 < len(breaks); i += 2 {
		if hour >= breaks[i] && hour < breaks[i+1] {
			return true
		}
	}
	return false
}

// Campaign is a fundraising entry passed through unchanged.
// AmountRaised may exceed Goal.
type Campaign struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Organizer      string   `json:"organizer"`
	Description    string   `json:"description"`
	ImageURL       string   `json:"imageUrl"`
	AmountRaised   float64  `json:"amountRaised"`
	Goal           float64  `json:"goal"`
	Donors         int      `json:"donors"`
	Verified       bool     `json:"verified"`
	DonationLink   string   `json:"donationLink"`
	PaymentMethods []string `json:"paymentMethods"`
}
