package submission

// ResourcePayload is a suggested directory entry.
type ResourcePayload struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Type          string   `json:"type" validate:"required"`
	Description   string   `json:"description" validate:"max=2000"`
	Latitude      float64  `json:"latitude" validate:"latitude"`
	Longitude     float64  `json:"longitude" validate:"longitude"`
	Services      []string `json:"services"`
	Accessibility bool     `json:"accessibility"`
	Phone         string   `json:"phone,omitempty"`
	Website       string   `json:"website,omitempty" validate:"omitempty,url"`
	Notes         string   `json:"notes,omitempty"`
}

func (ResourcePayload) Kind() Kind { return KindResource }

// CampaignPayload is a suggested fundraising campaign.
type CampaignPayload struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Organizer      string   `json:"organizer" validate:"required"`
	Description    string   `json:"description" validate:"max=2000"`
	ImageURL       string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Goal           float64  `json:"goal" validate:"gt=0"`
	DonationLink   string   `json:"donationLink" validate:"required,url"`
	PaymentMethods []string `json:"paymentMethods"`
}

func (CampaignPayload) Kind() Kind { return KindCampaign }

// IncidentPayload is a user-reported hazard.
type IncidentPayload struct {
	Category    string  `json:"category" validate:"required,oneof=fires evacuations reliefCenters floods earthquakes"`
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Latitude    float64 `json:"latitude" validate:"latitude"`
	Longitude   float64 `json:"longitude" validate:"longitude"`
}

func (IncidentPayload) Kind() Kind { return KindIncident }
