package gen

// Case selects the generation mode for a field.
type Case string

const (
	// CasePositive produces valid-shaped values.
	CasePositive Case = "positive"
	// CaseNegative produces invalid-shaped values.
	CaseNegative Case = "negative"
	// CaseMixed is a per-field policy: each field of each row independently
	// draws positive or negative. It is resolved by the row generator and is
	// never looked up in the registry directly.
	CaseMixed Case = "mixed"
)

// ParseCase normalizes a user-supplied case name.
func ParseCase(raw string) (Case, bool) {
	switch Case(raw) {
	case CasePositive, CaseNegative, CaseMixed:
		return Case(raw), true
	}
	return "", false
}
