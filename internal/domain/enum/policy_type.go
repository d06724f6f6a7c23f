package enum

// PolicyType is the insurance cover level for motor policies.
type PolicyType string

const (
	PolicyTypeComprehensive PolicyType = "Comprehensive"
	PolicyTypeThirdParty    PolicyType = "Third Party"
	PolicyTypeTheftFire     PolicyType = "Theft & Fire"
)

// Valid reports whether the value is a known policy type.
func (p PolicyType) Valid() bool {
	switch p {
	case PolicyTypeComprehensive, PolicyTypeThirdParty, PolicyTypeTheftFire:
		return true
	}
	return false
}
