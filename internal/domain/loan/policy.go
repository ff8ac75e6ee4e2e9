package loan

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryPersonal    Category = "PERSONAL"
	CategoryBusiness    Category = "BUSINESS"
	CategoryEmergency   Category = "EMERGENCY"
	CategoryEducation   Category = "EDUCATION"
	CategoryMedical     Category = "MEDICAL"
	CategoryAgriculture Category = "AGRICULTURE"
)

// Policy is the static reference data for one loan category: the annual
// rate applied at approval and the caps the application validator enforces.
type Policy struct {
	RatePercent   decimal.Decimal
	MaxPrincipal  decimal.Decimal
	MaxTermMonths int
}

// MinPrincipal is the floor for any application regardless of category.
var MinPrincipal = decimal.NewFromInt(1000)

func pol(rate string, maxPrincipal int64, maxTerm int) Policy {
	return Policy{
		RatePercent:   decimal.RequireFromString(rate),
		MaxPrincipal:  decimal.NewFromInt(maxPrincipal),
		MaxTermMonths: maxTerm,
	}
}

var policies = map[Category]Policy{
	CategoryPersonal:    pol("12.0", 500_000, 36),
	CategoryBusiness:    pol("15.0", 1_000_000, 60),
	CategoryEmergency:   pol("8.0", 100_000, 12),
	CategoryEducation:   pol("10.0", 300_000, 48),
	CategoryMedical:     pol("8.0", 200_000, 24),
	CategoryAgriculture: pol("14.0", 800_000, 36),
}

// PolicyFor returns the policy for a category. Unrecognized categories fall
// back to the PERSONAL policy (12% / 500k / 36 months) rather than failing,
// matching how rates were assigned historically.
func PolicyFor(c Category) Policy {
	if p, ok := policies[c]; ok {
		return p
	}
	return policies[CategoryPersonal]
}

func KnownCategory(c Category) bool {
	_, ok := policies[c]
	return ok
}

func Categories() []Category {
	return []Category{
		CategoryPersonal, CategoryBusiness, CategoryEmergency,
		CategoryEducation, CategoryMedical, CategoryAgriculture,
	}
}
