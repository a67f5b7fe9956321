package funding

// Defaults is the scheme list inserted when the collection is empty.
func Defaults() []*Scheme {
	return []*Scheme{
		{
			Name:         "Stand-Up India",
			Provider:     "SIDBI",
			Description:  "Bank loans for greenfield enterprises led by women or SC/ST entrepreneurs.",
			Industries:   []string{"all"},
			MaxAmount:    10000000,
			InterestRate: "Base rate + 3% + tenor premium",
			WomenFocused: true,
			Eligibility:  []string{"Woman entrepreneur holding at least 51%", "Greenfield project", "Not a defaulter"},
			Link:         "https://www.standupmitra.in",
		},
		{
			Name:         "Mahila Udyam Nidhi",
			Provider:     "SIDBI",
			Description:  "Soft loan for women starting small scale units.",
			Industries:   []string{"Manufacturing", "Services", "Handicrafts"},
			MaxAmount:    1000000,
			InterestRate: "Bank rate",
			WomenFocused: true,
			Eligibility:  []string{"Women-owned small enterprise"},
			Link:         "https://www.sidbi.in",
		},
		{
			Name:         "Annapurna Scheme",
			Provider:     "State Bank of Mysore / SBI",
			Description:  "Working capital for women in food catering.",
			Industries:   []string{"Food"},
			MaxAmount:    50000,
			InterestRate: "Market rate",
			WomenFocused: true,
			Eligibility:  []string{"Woman running a catering business"},
		},
		{
			Name:         "PMEGP",
			Provider:     "KVIC",
			Description:  "Credit-linked subsidy for new micro enterprises.",
			Industries:   []string{"all"},
			MaxAmount:    5000000,
			InterestRate: "Bank rate with 15-35% subsidy",
			Eligibility:  []string{"Age above 18", "New project", "Class VIII pass above 10 lakh project cost"},
			Link:         "https://www.kviconline.gov.in/pmegpeportal",
		},
		{
			Name:         "Pradhan Mantri Mudra Yojana",
			Provider:     "MUDRA via banks and NBFCs",
			Description:  "Collateral-free loans in Shishu, Kishor and Tarun tiers.",
			Industries:   []string{"all"},
			MaxAmount:    2000000,
			InterestRate: "8-12%",
			Eligibility:  []string{"Non-farm income generating activity"},
			Link:         "https://www.mudra.org.in",
		},
		{
			Name:         "CGTMSE guarantee",
			Provider:     "CGTMSE",
			Description:  "Credit guarantee for collateral-free MSE loans, higher cover for women.",
			Industries:   []string{"Manufacturing", "Services", "Retail"},
			MaxAmount:    50000000,
			InterestRate: "Lender rate",
			Eligibility:  []string{"Udyam registered micro or small enterprise"},
			Link:         "https://www.cgtmse.in",
		},
		{
			Name:         "Startup India Seed Fund",
			Provider:     "DPIIT",
			Description:  "Grants and convertible debt for proof of concept and market entry.",
			Industries:   []string{"Technology", "Services", "Manufacturing"},
			MaxAmount:    5000000,
			InterestRate: "Grant / convertible",
			Eligibility:  []string{"DPIIT recognised startup", "Incorporated under two years"},
			Link:         "https://seedfund.startupindia.gov.in",
		},
	}
}
