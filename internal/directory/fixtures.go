package directory

// FixtureResources is the fixed resource list served when the directory
// backend is unavailable or mock data is enabled.
func FixtureResources() []Resource {
	weekdays := func(open, close float64) Hours {
		h := Hours{0: nil, 6: nil}
		for d := 1; d <= 5; d++ {
			h[d] = []float64{open, close}
		}
		return h
	}
	everyDay := func(breaks ...float64) Hours {
		h := Hours{}
		for d := 0; d <= 6; d++ {
			h[d] = breaks
		}
		return h
	}

	return []Resource{
		{
			ID:            "res-1",
			Name:          "Pasadena Convention Center Shelter",
			Type:          TypeShelter,
			Description:   "Red Cross emergency shelter with cots and meals.",
			Latitude:      34.1443,
			Longitude:     -118.1445,
			Services:      []string{"beds", "meals", "showers", "charging"},
			Accessibility: true,
			OpenNow:       true,
			Hours:         everyDay(0, 24),
			Phone:         "(626) 555-0140",
			Website:       "https://www.redcross.org",
			Notes:         "Bring ID and medications.",
		},
		{
			ID:            "res-2",
			Name:          "LA Regional Food Bank",
			Type:          TypeFoodBank,
			Description:   "Emergency food boxes and water distribution.",
			Latitude:      34.0195,
			Longitude:     -118.2228,
			Services:      []string{"food", "water", "baby supplies"},
			Accessibility: true,
			OpenNow:       true,
			Hours:         weekdays(8, 17),
			Phone:         "(323) 555-0199",
			Website:       "https://www.lafoodbank.org",
		},
		{
			ID:            "res-3",
			Name:          "Glendale Urgent Care",
			Type:          TypeMedical,
			Description:   "Walk-in care for smoke inhalation and minor burns.",
			Latitude:      34.1425,
			Longitude:     -118.2551,
			Services:      []string{"urgent care", "respiratory", "prescriptions"},
			Accessibility: true,
			OpenNow:       true,
			Hours:         everyDay(8, 12, 13, 20),
			Phone:         "(818) 555-0112",
		},
		{
			ID:            "res-4",
			Name:          "Pierce College Large Animal Evacuation",
			Type:          TypeAnimal,
			Description:   "Temporary shelter for horses and livestock.",
			Latitude:      34.1826,
			Longitude:     -118.5760,
			Services:      []string{"horses", "livestock", "feed"},
			Accessibility: false,
			OpenNow:       true,
			Phone:         "(818) 555-0177",
			Notes:         "Call ahead with trailer details.",
		},
	}
}

// FixtureCampaigns is the fixed campaign list.
func FixtureCampaigns() []Campaign {
	return []Campaign{
		{
			ID: "camp-1", Title: "Rebuild Altadena Homes", Organizer: "Altadena Mutual Aid",
			Description:  "Helping displaced families cover temporary housing.",
			ImageURL:     "https://images.example.org/altadena.jpg",
			AmountRaised: 182500, Goal: 250000, Donors: 1460, Verified: true,
			DonationLink:   "https://donate.example.org/altadena",
			PaymentMethods: []string{"card", "paypal", "venmo"},
		},
		{
			ID: "camp-2", Title: "Firefighter Meal Fund", Organizer: "Glendale Rotary",
			Description:  "Hot meals for crews on the line.",
			ImageURL:     "https://images.example.org/meals.jpg",
			AmountRaised: 31200, Goal: 25000, Donors: 512, Verified: false,
			DonationLink:   "https://donate.example.org/meals",
			PaymentMethods: []string{"card"},
		},
	}
}
