package services

import "github.com/Venkat-Kolasani/Oilseed-Mitra/domain"

// Crop economics rows. Cost and subsidy are rupees per acre, yield in
// quintals per acre, price rupees per quintal.
var cropTable = []domain.Crop{
	{Name: "Paddy", Cost: 15000, Yield: 25, Price: 2183, Subsidy: 1000, Water: "High"},
	{Name: "Mustard", Cost: 8000, Yield: 10, Price: 5450, Subsidy: 1500, Water: "Low"},
	{Name: "Soybean", Cost: 12000, Yield: 12, Price: 4200, Subsidy: 1200, Water: "Medium"},
	{Name: "Groundnut", Cost: 18000, Yield: 8, Price: 6377, Subsidy: 1000, Water: "Medium"},
	{Name: "Sunflower", Cost: 12000, Yield: 8, Price: 6760, Subsidy: 1300, Water: "Low-Medium"},
	{Name: "Wheat", Cost: 10000, Yield: 20, Price: 2275, Subsidy: 800, Water: "Medium"},
	{Name: "Cotton", Cost: 20000, Yield: 7, Price: 6620, Subsidy: 500, Water: "High"},
}

var schemeTable = []domain.Scheme{
	{
		ID:               "nmeo-op",
		Name:             "National Mission on Edible Oils - Oil Palm (NMEO-OP)",
		ShortDescription: "A special mission to boost domestic oil palm cultivation and production.",
		Description:      "With a focus on increasing edible oil production, this mission provides significant subsidies for planting materials, inputs, and maintenance, aiming to make India self-sufficient in edible oils.",
		Benefits: []string{
			"Financial assistance of ₹29,000 per hectare for planting material.",
			"Support for maintenance and intercropping during the gestation period.",
			"Price assurance for farmers with a viability price formula.",
			"Special focus on North-Eastern states and Andaman & Nicobar Islands.",
		},
		Eligibility: []string{
			"All farmers, with a special focus on those in identified zones suitable for oil palm.",
			"Availability of assured irrigation is necessary.",
		},
		HowToApply: []string{
			"Contact the State Department of Horticulture/Agriculture.",
			"Identified companies in the oil palm sector can also assist with applications.",
			"Submit land documents and proof of irrigation facilities.",
		},
		Link: "https://nmeo.dac.gov.in/",
	},
	{
		ID:               "nfsm-os",
		Name:             "National Food Security Mission (NFSM) - Oilseeds",
		ShortDescription: "Financial assistance for seeds, demonstrations, and equipment to boost oilseed production.",
		Description:      "A centrally sponsored scheme focused on increasing the production of oilseeds and reducing the import burden. It provides support to farmers through various interventions.",
		Benefits: []string{
			"Subsidies on high-yielding seed varieties.",
			"Funding for block demonstrations to showcase modern techniques.",
			"Support for purchasing improved farm machinery.",
			"Assistance for irrigation and water-saving devices.",
		},
		Eligibility: []string{
			"All farmers are eligible.",
			"Focus on small and marginal farmers.",
			"Assistance is provided through state agriculture departments.",
		},
		HowToApply: []string{
			"Contact the local District Agriculture Officer or Krishi Vigyan Kendra (KVK).",
			"Register on the state's agriculture department portal.",
			"Submit the application form with required land documents.",
			"Receive benefits directly or through authorized dealers.",
		},
		Link: "https://www.nfsm.gov.in/",
	},
	{
		ID:               "pm-kisan",
		Name:             "PM-KISAN",
		ShortDescription: "Income support of ₹6,000/year to all landholding farmer families.",
		Description:      "Pradhan Mantri Kisan Samman Nidhi is a central sector scheme with 100% funding from the Government of India. It provides income support to all landholding farmer families in the country to supplement their financial needs.",
		Benefits: []string{
			"Direct income support of ₹6,000 per year.",
			"Payment in three equal installments of ₹2,000.",
			"Money is directly transferred to the bank accounts of the beneficiaries.",
		},
		Eligibility: []string{
			"All landholding farmer families.",
			"The farmer must be an Indian citizen.",
			"Certain exclusion criteria apply (e.g., institutional landholders, high-income individuals).",
		},
		HowToApply: []string{
			"Visit the official PM-KISAN portal (pmkisan.gov.in).",
			"Click on \"New Farmer Registration\".",
			"Enter Aadhaar number, mobile number, and select state.",
			"Fill in the personal and land details and submit the form.",
			"Alternatively, contact the local Patwari, revenue officer, or Common Service Centre (CSC).",
		},
		Link: "https://pmkisan.gov.in/",
	},
	{
		ID:               "pmfby",
		Name:             "PMFBY",
		ShortDescription: "Comprehensive insurance cover against crop failure to stabilize farmers' income.",
		Description:      "Pradhan Mantri Fasal Bima Yojana (PMFBY) is the government-sponsored crop insurance scheme that integrates multiple stakeholders on a single platform.",
		Benefits: []string{
			"Low premium rates for farmers (2% for Kharif, 1.5% for Rabi, 5% for commercial/horticultural crops).",
			"Covers yield losses due to non-preventable risks, such as natural fire, lightning, storm, hail, cyclone, etc.",
			"Provides full insurance cover against crop loss.",
		},
		Eligibility: []string{
			"All farmers including sharecroppers and tenant farmers growing notified crops in the notified areas are eligible for coverage.",
			"Compulsory for loanee farmers availing crop loans.",
			"Voluntary for non-loanee farmers.",
		},
		HowToApply: []string{
			"Contact your nearest bank, PAC, or insurance agent.",
			"Enroll through the National Crop Insurance Portal (pmfby.gov.in).",
			"Provide necessary documents like land records, bank passbook, and Aadhaar card.",
			"Pay the premium amount to complete the enrollment.",
		},
		Link: "https://pmfby.gov.in/",
	},
	{
		ID:               "kcc",
		Name:             "Kisan Credit Card (KCC) Scheme",
		ShortDescription: "Provides farmers with timely access to credit for their agricultural needs.",
		Description:      "The KCC scheme aims at providing adequate and timely credit support from the banking system under a single window to the farmers for their cultivation & other needs.",
		Benefits: []string{
			"Revolving cash credit facility. Unlimited withdrawals and repayments within the limit.",
			"Credit for cultivation, post-harvest expenses, and consumption requirements.",
			"Interest subvention/prompt repayment incentive for farmers.",
			"Coverage under crop insurance for notified crops.",
		},
		Eligibility: []string{
			"All farmers - individuals/joint borrowers who are owner cultivators.",
			"Tenant farmers, oral lessees & sharecroppers.",
			"Self Help Groups (SHGs) or Joint Liability Groups (JLGs) of farmers.",
		},
		HowToApply: []string{
			"Approach a Commercial Bank, RRB, or Cooperative Bank.",
			"Fill out the application form available on the bank's website or at the branch.",
			"Submit the form along with land documents and a passport-size photograph.",
			"The bank will assess the application and sanction the KCC limit.",
		},
		Link: "https://www.sbi.co.in/web/agri-rural/agriculture-banking/crop-finance/kisan-credit-card",
	},
}

var mandiTable = []domain.MandiPrice{
	{ID: "mandi1", Crop: "Mustard", Price: 5650, Market: "Alwar, Rajasthan", Date: "Yesterday"},
	{ID: "mandi2", Crop: "Soybean", Price: 4350, Market: "Indore, MP", Date: "Today"},
	{ID: "mandi3", Crop: "Paddy (Basmati)", Price: 3800, Market: "Karnal, Haryana", Date: "Today"},
	{ID: "mandi4", Crop: "Groundnut", Price: 6500, Market: "Rajkot, Gujarat", Date: "Yesterday"},
	{ID: "mandi5", Crop: "Wheat", Price: 2350, Market: "Ludhiana, Punjab", Date: "Today"},
	{ID: "mandi6", Crop: "Sunflower", Price: 6800, Market: "Gulbarga, Karnataka", Date: "Yesterday"},
	{ID: "mandi7", Crop: "Cotton", Price: 6700, Market: "Adilabad, Telangana", Date: "Today"},
	{ID: "mandi8", Crop: "Mustard", Price: 5500, Market: "Agra, UP", Date: "Today"},
	{ID: "mandi9", Crop: "Soybean", Price: 4400, Market: "Ujjain, MP", Date: "Yesterday"},
	{ID: "mandi10", Crop: "Sesame", Price: 14500, Market: "Jaipur, Rajasthan", Date: "Today"},
	{ID: "mandi11", Crop: "Safflower", Price: 5200, Market: "Solapur, Maharashtra", Date: "Today"},
	{ID: "mandi12", Crop: "Linseed", Price: 4800, Market: "Sagar, MP", Date: "Yesterday"},
	{ID: "mandi13", Crop: "Castor Seed", Price: 5800, Market: "Patan, Gujarat", Date: "Today"},
}

var fpoTable = []domain.FPO{
	{ID: "fpo1", Name: "Sahyadri Farmer Producer Co.", Contact: "9876543210", Location: "Nashik, Maharashtra", Specialization: "Grapes, Vegetables"},
	{ID: "fpo2", Name: "MahaFPC", Contact: "9876543211", Location: "Pune, Maharashtra", Specialization: "Pulses, Grains, Oilseeds"},
	{ID: "fpo3", Name: "VAPCOL", Contact: "9876543212", Location: "Jaipur, Rajasthan", Specialization: "Organic Produce, Spices"},
	{ID: "fpo4", Name: "Chaitanya Godavari FPO", Contact: "9876543213", Location: "East Godavari, AP", Specialization: "Paddy, Coconut"},
	{ID: "fpo5", Name: "Greenfuture Farmer Producer Company Ltd", Contact: "9876543214", Location: "Dharwad, Karnataka", Specialization: "Cotton, Millets"},
	{ID: "fpo6", Name: "Marutham Sustainable Agriculture FPC", Contact: "9876543215", Location: "Madurai, Tamil Nadu", Specialization: "Oilseeds, Organic Farming"},
	{ID: "fpo7", Name: "Devbhumi Natural Products Producer Co.", Contact: "9876543216", Location: "Almora, Uttarakhand", Specialization: "Herbs, Honey, Spices"},
	{ID: "fpo8", Name: "Basar Agrarian Producer Co. Ltd.", Contact: "9876543217", Location: "Basar, Arunachal Pradesh", Specialization: "Kiwi, Oranges, Large Cardamom"},
}
