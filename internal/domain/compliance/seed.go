package compliance

// Defaults is the requirement set inserted when the collection is empty.
func Defaults() []*Item {
	all := []string{MatchAll}
	return []*Item{
		{
			Title:         "Udyam registration",
			Description:   "Free MSME registration that unlocks government schemes and priority lending.",
			Category:      "registration",
			Priority:      PriorityHigh,
			BusinessTypes: all,
			States:        all,
			Steps:         []string{"Keep Aadhaar and PAN ready", "Fill the Udyam portal form", "Verify with OTP", "Download the certificate"},
			Fees:          "Free",
			Timeline:      "Same day",
			Links:         []Link{{Title: "Udyam portal", URL: "https://udyamregistration.gov.in"}},
			Source:        SourceSeed,
		},
		{
			Title:         "GST registration",
			Description:   "Mandatory above the turnover threshold or for inter-state and online sales.",
			Category:      "tax",
			Priority:      PriorityHigh,
			BusinessTypes: all,
			States:        all,
			Steps:         []string{"Create a TRN on the GST portal", "Upload PAN, address proof and bank details", "Complete Aadhaar authentication", "Receive GSTIN"},
			Fees:          "Free",
			Timeline:      "7-10 working days",
			Links:         []Link{{Title: "GST portal", URL: "https://www.gst.gov.in"}},
			Source:        SourceSeed,
		},
		{
			Title:         "FSSAI licence",
			Description:   "Food business registration or licence depending on turnover.",
			Category:      "licence",
			Priority:      PriorityHigh,
			BusinessTypes: []string{"food", "restaurant", "catering"},
			States:        all,
			Steps:         []string{"Pick basic registration, state or central licence", "Apply on FoSCoS", "Upload kitchen layout and ID", "Inspection if required"},
			Fees:          "100-7500 per year",
			Timeline:      "7-60 days",
			Links:         []Link{{Title: "FoSCoS", URL: "https://foscos.fssai.gov.in"}},
			Source:        SourceSeed,
		},
		{
			Title:         "Shops and Establishments registration",
			Description:   "State registration for shops, offices and commercial premises.",
			Category:      "licence",
			Priority:      PriorityMedium,
			BusinessTypes: []string{"retail", "services", "food", "restaurant"},
			States:        all,
			Steps:         []string{"Apply on the state labour portal", "Upload premises proof", "Pay the fee"},
			Fees:          "Varies by state",
			Timeline:      "Within 30 days of opening",
			Source:        SourceSeed,
		},
		{
			Title:         "Professional tax",
			Description:   "State tax on professions and employment.",
			Category:      "tax",
			Priority:      PriorityMedium,
			BusinessTypes: all,
			States:        []string{"Maharashtra", "Karnataka", "West Bengal", "Tamil Nadu", "Gujarat", "Telangana"},
			Steps:         []string{"Register for PTEC and PTRC", "Deduct from salaries", "File returns"},
			Fees:          "Up to 2500 per year",
			Timeline:      "Within 30 days of hiring",
			Source:        SourceSeed,
		},
		{
			Title:         "Trademark registration",
			Description:   "Protects the brand name and logo.",
			Category:      "registration",
			Priority:      PriorityLow,
			BusinessTypes: all,
			States:        all,
			Steps:         []string{"Search existing marks", "File TM-A", "Respond to examination report", "Publication and registration"},
			Fees:          "4500 for individuals and MSMEs",
			Timeline:      "6-18 months",
			Links:         []Link{{Title: "IP India", URL: "https://ipindia.gov.in"}},
			Source:        SourceSeed,
		},
		{
			Title:         "Import Export Code",
			Description:   "Required to export goods or services.",
			Category:      "registration",
			Priority:      PriorityLow,
			BusinessTypes: []string{"manufacturing", "handicrafts", "textiles"},
			States:        all,
			Steps:         []string{"Apply on the DGFT portal", "Link PAN and bank account", "Download the IEC"},
			Fees:          "500",
			Timeline:      "1-3 days",
			Links:         []Link{{Title: "DGFT", URL: "https://www.dgft.gov.in"}},
			Source:        SourceSeed,
		},
		{
			Title:         "EPF and ESI registration",
			Description:   "Social security registrations once headcount crosses the thresholds.",
			Category:      "labour",
			Priority:      PriorityMedium,
			BusinessTypes: all,
			States:        all,
			Steps:         []string{"Register on the Shram Suvidha portal", "Add employees", "Pay monthly contributions"},
			Fees:          "Free",
			Timeline:      "When 10 or more employees",
			Source:        SourceSeed,
		},
	}
}
