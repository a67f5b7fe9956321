package marketplace

// Defaults is the catalog inserted when the collection is empty.
func Defaults() []*Marketplace {
	return []*Marketplace{
		{
			Name:           "Amazon Saheli",
			Description:    "Amazon India programme for women-led businesses with subsidised fees and training.",
			URL:            "https://www.amazon.in/saheli",
			Industries:     []string{"Handicrafts", "Fashion", "Food", "Beauty"},
			ProductTypes:   []string{"sarees", "jewellery", "handbags", "pickles", "cosmetics", "home decor"},
			TargetMarkets:  []string{"women", "urban", "national", "online shoppers"},
			CommissionRate: 8,
			AverageRating:  4.4,
			Features:       []string{"Reduced referral fees", "Account management", "Free imaging and cataloguing"},
			Requirements:   []string{"GST registration", "Women-owned business", "Bank account"},
			Active:         true,
		},
		{
			Name:           "Flipkart Samarth",
			Description:    "Onboarding programme for artisans, weavers and micro enterprises.",
			URL:            "https://seller.flipkart.com/samarth",
			Industries:     []string{"Handicrafts", "Fashion", "Handloom"},
			ProductTypes:   []string{"handloom", "sarees", "kurtis", "pottery", "woodcraft"},
			TargetMarkets:  []string{"national", "tier 2", "youth", "online shoppers"},
			CommissionRate: 0,
			AverageRating:  4.2,
			Features:       []string{"Zero commission for six months", "Warehousing support", "Dedicated onboarding"},
			Requirements:   []string{"Artisan or weaver ID or NGO referral", "Bank account"},
			Active:         true,
		},
		{
			Name:           "Meesho",
			Description:    "Social commerce marketplace with zero commission for small sellers.",
			URL:            "https://supplier.meesho.com",
			Industries:     []string{"Fashion", "Home", "Beauty"},
			ProductTypes:   []string{"kurtis", "sarees", "home decor", "kitchen", "cosmetics"},
			TargetMarkets:  []string{"tier 2", "tier 3", "rural", "budget", "women"},
			CommissionRate: 0,
			AverageRating:  4.0,
			Features:       []string{"Zero commission", "Reseller network", "Low return shipping"},
			Requirements:   []string{"GST or enrolment ID", "Bank account"},
			Active:         true,
		},
		{
			Name:           "Government e-Marketplace (GeM)",
			Description:    "Public procurement portal for selling to government departments.",
			URL:            "https://gem.gov.in",
			Industries:     []string{"Manufacturing", "Services", "Textiles", "Food"},
			ProductTypes:   []string{"stationery", "uniforms", "furniture", "cleaning", "catering"},
			TargetMarkets:  []string{"government", "institutional", "b2b"},
			CommissionRate: 0.5,
			AverageRating:  3.8,
			Features:       []string{"Womaniya initiative", "Direct purchase up to 25,000", "Timely payments"},
			Requirements:   []string{"Udyam registration", "PAN", "GST registration"},
			Active:         true,
		},
		{
			Name:           "ONDC",
			Description:    "Open Network for Digital Commerce, reach buyers across many buyer apps.",
			URL:            "https://ondc.org",
			Industries:     []string{"Food", "Retail", "Grocery", "Fashion"},
			ProductTypes:   []string{"groceries", "snacks", "spices", "pickles", "apparel"},
			TargetMarkets:  []string{"local", "hyperlocal", "urban", "national"},
			CommissionRate: 3,
			AverageRating:  3.9,
			Features:       []string{"Low commission", "Works with many buyer apps", "Hyperlocal delivery"},
			Requirements:   []string{"Seller app onboarding", "FSSAI for food"},
			Active:         true,
		},
		{
			Name:           "IndiaMART",
			Description:    "B2B marketplace connecting manufacturers and wholesalers with buyers.",
			URL:            "https://seller.indiamart.com",
			Industries:     []string{"Manufacturing", "Textiles", "Agriculture", "Food"},
			ProductTypes:   []string{"wholesale", "machinery", "fabric", "spices", "packaging"},
			TargetMarkets:  []string{"b2b", "wholesalers", "retailers", "export"},
			CommissionRate: 0,
			AverageRating:  4.1,
			Features:       []string{"Lead generation", "Buyer enquiries", "Paid listings"},
			Requirements:   []string{"Business address", "GST recommended"},
			Active:         true,
		},
		{
			Name:           "Etsy",
			Description:    "Global marketplace for handmade and vintage goods.",
			URL:            "https://www.etsy.com/sell",
			Industries:     []string{"Handicrafts", "Art", "Fashion"},
			ProductTypes:   []string{"jewellery", "art", "handbags", "embroidery", "home decor"},
			TargetMarkets:  []string{"international", "export", "premium"},
			CommissionRate: 6.5,
			AverageRating:  4.5,
			Features:       []string{"Global reach", "Handmade focus", "Ads platform"},
			Requirements:   []string{"International payments", "Export compliance"},
			Active:         true,
		},
		{
			Name:           "Swiggy Instamart Seller",
			Description:    "Quick commerce listing for packaged food brands.",
			URL:            "https://partner.swiggy.com",
			Industries:     []string{"Food"},
			ProductTypes:   []string{"snacks", "sweets", "beverages", "ready to eat"},
			TargetMarkets:  []string{"urban", "metro", "young professionals"},
			CommissionRate: 18,
			AverageRating:  3.6,
			Features:       []string{"Ten minute delivery", "Metro reach"},
			Requirements:   []string{"FSSAI licence", "Barcoded packaging"},
			Active:         false,
		},
	}
}
