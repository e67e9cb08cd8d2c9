package model

// ProfileStatus is the activation state of a profile.
type ProfileStatus string

const (
	ProfileActive   ProfileStatus = "active"
	ProfileInactive ProfileStatus = "inactive"
)

// Company is a tenant with its own chart of accounts and journal.
type Company struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	NIF  string `yaml:"nif"` // tax number
}

// Profile is an operator identity scoped to a set of companies.
type Profile struct {
	ID         string        `yaml:"id"`
	Name       string        `yaml:"name"`
	Username   string        `yaml:"username"`
	UserCode   string        `yaml:"user_code"`
	Role       string        `yaml:"role"`
	Email      string        `yaml:"email"`
	Status     ProfileStatus `yaml:"status"`
	CompanyIDs []string      `yaml:"company_ids"`
}

// CanSee reports whether the profile has been granted companyID.
func (p Profile) CanSee(companyID string) bool {
	for _, id := range p.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}
