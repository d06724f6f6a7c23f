package enum

// OthersCategory is the fixed set of non-motor insurance categories.
type OthersCategory string

const (
	OthersCategoryPublicLiability   OthersCategory = "Public Liability"
	OthersCategoryContractorAllRisk OthersCategory = "Contractor All Risk"
	OthersCategoryWorkmenComp       OthersCategory = "Workmen's Compensation"
	OthersCategoryBond              OthersCategory = "Bond"
)

// Valid reports whether the value is a known category.
func (o OthersCategory) Valid() bool {
	switch o {
	case OthersCategoryPublicLiability, OthersCategoryContractorAllRisk,
		OthersCategoryWorkmenComp, OthersCategoryBond:
		return true
	}
	return false
}
