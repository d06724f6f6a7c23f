package enum

// AssetType classifies what a policy covers: a motor vehicle or
// another insurable category (liability, bonds, projects).
type AssetType string

const (
	AssetTypeMotor  AssetType = "Motor"
	AssetTypeOthers AssetType = "Others"
)

// Valid reports whether the value is a known asset classification.
func (a AssetType) Valid() bool {
	return a == AssetTypeMotor || a == AssetTypeOthers
}
