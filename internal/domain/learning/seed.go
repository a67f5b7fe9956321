package learning

// DefaultCourses is inserted when the courses collection is empty.
func DefaultCourses() []*Course {
	return []*Course{
		{
			Title:       "Business basics for first-time founders",
			Description: "From idea to a simple, testable plan.",
			Category:    "Business",
			Level:       "beginner",
			Language:    "en",
			Instructor:  "UdyamSakhi team",
			Lessons: []Lesson{
				{ID: "bb-1", Title: "Validating your idea", DurationMinutes: 12},
				{ID: "bb-2", Title: "Knowing your customer", DurationMinutes: 15},
				{ID: "bb-3", Title: "Writing a one page plan", DurationMinutes: 18},
			},
		},
		{
			Title:       "GST and bookkeeping",
			Description: "Invoices, returns and keeping clean books.",
			Category:    "Finance",
			Level:       "beginner",
			Language:    "hi",
			Instructor:  "CA Meera Joshi",
			Lessons: []Lesson{
				{ID: "gst-1", Title: "Do I need GST?", DurationMinutes: 10},
				{ID: "gst-2", Title: "Raising a GST invoice", DurationMinutes: 14},
				{ID: "gst-3", Title: "Filing GSTR-1 and 3B", DurationMinutes: 20},
				{ID: "gst-4", Title: "Daily bookkeeping habits", DurationMinutes: 12},
			},
		},
		{
			Title:       "Cash flow and pricing",
			Description: "Price for profit and keep the business liquid.",
			Category:    "Finance",
			Level:       "intermediate",
			Language:    "en",
			Instructor:  "Ritu Agarwal",
			Lessons: []Lesson{
				{ID: "cf-1", Title: "Costing your product", DurationMinutes: 16},
				{ID: "cf-2", Title: "Margins and discounts", DurationMinutes: 14},
				{ID: "cf-3", Title: "Forecasting cash", DurationMinutes: 18},
			},
		},
		{
			Title:       "Selling on Instagram and WhatsApp",
			Description: "Build a catalogue and convert followers to buyers.",
			Category:    "Marketing",
			Level:       "beginner",
			Language:    "en",
			Instructor:  "Neha Kapoor",
			Lessons: []Lesson{
				{ID: "sm-1", Title: "Setting up a business profile", DurationMinutes: 10},
				{ID: "sm-2", Title: "Product photos on a phone", DurationMinutes: 15},
				{ID: "sm-3", Title: "WhatsApp catalogue and payments", DurationMinutes: 12},
			},
		},
		{
			Title:       "Scaling with marketplaces",
			Description: "Listing, ads and logistics on large marketplaces.",
			Category:    "Marketing",
			Level:       "advanced",
			Language:    "en",
			Instructor:  "Anjali Menon",
			Lessons: []Lesson{
				{ID: "mp-1", Title: "Choosing a marketplace", DurationMinutes: 12},
				{ID: "mp-2", Title: "Listings that rank", DurationMinutes: 18},
				{ID: "mp-3", Title: "Sponsored ads budgets", DurationMinutes: 16},
				{ID: "mp-4", Title: "Returns and fulfilment", DurationMinutes: 14},
			},
		},
	}
}

// DefaultMentors is inserted when the mentors collection is empty.
func DefaultMentors() []*Mentor {
	return []*Mentor{
		{
			Name:            "Kavita Rao",
			Bio:             "Founded a handloom label selling across India and abroad.",
			Expertise:       []string{"Marketing", "Branding", "Export"},
			Industries:      []string{"Handicrafts", "Fashion"},
			Languages:       []string{"en", "kn", "hi"},
			ExperienceYears: 14,
			Rating:          4.8,
			Available:       true,
		},
		{
			Name:            "Meera Joshi",
			Bio:             "Chartered accountant advising micro enterprises on tax and funding.",
			Expertise:       []string{"Finance", "Tax", "Funding"},
			Industries:      []string{"Retail", "Services", "Food"},
			Languages:       []string{"hi", "mr", "en"},
			ExperienceYears: 11,
			Rating:          4.7,
			Available:       true,
		},
		{
			Name:            "Sunita Devi",
			Bio:             "Runs a women-led food processing cooperative.",
			Expertise:       []string{"Operations", "Supply chain"},
			Industries:      []string{"Food", "Agriculture"},
			Languages:       []string{"hi"},
			ExperienceYears: 9,
			Rating:          4.5,
			Available:       true,
		},
		{
			Name:            "Priya Nair",
			Bio:             "Product lead turned D2C founder.",
			Expertise:       []string{"Technology", "Marketing", "Growth"},
			Industries:      []string{"Technology", "Beauty"},
			Languages:       []string{"en", "ml"},
			ExperienceYears: 8,
			Rating:          4.6,
			Available:       false,
		},
		{
			Name:            "Farah Sheikh",
			Bio:             "Lawyer focusing on MSME compliance and contracts.",
			Expertise:       []string{"Legal", "Compliance"},
			Industries:      []string{"Services", "Retail", "Manufacturing"},
			Languages:       []string{"en", "hi", "ur"},
			ExperienceYears: 12,
			Rating:          4.4,
			Available:       true,
		},
	}
}
