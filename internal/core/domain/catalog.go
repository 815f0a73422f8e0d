package domain

import "strconv"

// ServiceOffering is one entry of the clinic's price list.
type ServiceOffering struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Category string `json:"category"`
	PriceRWF int    `json:"price_rwf"`
}

var serviceCatalog = []ServiceOffering{
	{"basic-tracking", "Basic GPS Tracking", "Tracking Services", 15000},
	{"advanced-monitoring", "Advanced Health Monitoring", "Tracking Services", 25000},
	{"herd-management", "Herd Management System", "Tracking Services", 100000},
	{"pet-tracking", "Pet Tracking Collar", "Tracking Services", 12000},
	{"general-consultation", "General Veterinary Consultation", "Consultation Services", 5000},
	{"virtual-consultation", "Virtual Consultation", "Consultation Services", 3000},
	{"emergency-consultation", "Emergency Consultation", "Consultation Services", 8000},
	{"farm-visit", "Farm Visit", "Consultation Services", 15000},
	{"disease-screening", "Disease Screening", "Monitoring Services", 7000},
	{"vaccination-program", "Vaccination Program", "Monitoring Services", 10000},
	{"parasite-control", "Parasite Control", "Monitoring Services", 6000},
	{"reproductive-health", "Reproductive Health Monitoring", "Monitoring Services", 8000},
}

// ServiceCatalog returns a copy of the price list.
func ServiceCatalog() []ServiceOffering {
	out := make([]ServiceOffering, len(serviceCatalog))
	copy(out, serviceCatalog)
	return out
}

// ServiceLabel returns "<label> - RWF <price>" for a known service value and
// the value itself otherwise. Free-text services are common for farmer bookings.
func ServiceLabel(value string) string {
	for _, s := range serviceCatalog {
		if s.Value == value {
			return s.Label + " - RWF " + formatRWF(s.PriceRWF)
		}
	}
	return value
}

func formatRWF(n int) string {
	s := strconv.Itoa(n)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out)
}
