// Package tenants keeps the companies of a workspace and the profiles that
// may operate on them.
package tenants

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kiala-nvumbi/DINK1/internal/id"
	"github.com/kiala-nvumbi/DINK1/internal/model"
)

// FileName is the registry file at the workspace root.
const FileName = "tenants.yaml"

// Seeded identities of a fresh workspace.
const (
	DefaultCompanyID = "default"
	DefaultProfileID = "admin"
)

// Registry lists companies and profiles.
type Registry struct {
	Companies []model.Company `yaml:"companies"`
	Profiles  []model.Profile `yaml:"profiles"`
}

// Default returns the registry of a new workspace: one administrator who
// can see one example company.
func Default() *Registry {
	return &Registry{
		Companies: []model.Company{
			{ID: DefaultCompanyID, Name: "Empresa Exemplo Lda", NIF: "5000123456"},
		},
		Profiles: []model.Profile{
			{
				ID:         DefaultProfileID,
				Name:       "Administrador Geral",
				Username:   "admin_dink",
				UserCode:   "DINK-001",
				Role:       "Contabilista Certificado",
				Email:      "admin@dink.ao",
				Status:     model.ProfileActive,
				CompanyIDs: []string{DefaultCompanyID},
			},
		},
	}
}

// Load reads a registry file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tenants: %w", err)
	}
	var r Registry
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing tenants: %w", err)
	}
	return &r, nil
}

// Save writes the registry to path.
func Save(path string, r *Registry) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling tenants: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing tenants: %w", err)
	}
	return nil
}

// Company returns a company by ID.
func (r *Registry) Company(companyID string) (model.Company, bool) {
	for _, c := range r.Companies {
		if c.ID == companyID {
			return c, true
		}
	}
	return model.Company{}, false
}

// Profile returns a profile by ID.
func (r *Registry) Profile(profileID string) (model.Profile, bool) {
	i := r.profileIndex(profileID)
	if i < 0 {
		return model.Profile{}, false
	}
	return r.Profiles[i], true
}

// ProfileByUsername returns the profile with the given username.
func (r *Registry) ProfileByUsername(username string) (model.Profile, bool) {
	for _, p := range r.Profiles {
		if p.Username == username {
			return p, true
		}
	}
	return model.Profile{}, false
}

func (r *Registry) profileIndex(profileID string) int {
	for i, p := range r.Profiles {
		if p.ID == profileID {
			return i
		}
	}
	return -1
}

// AddCompany registers a company. When ownerProfileID is set the owner is
// granted access to it.
func (r *Registry) AddCompany(name, nif, ownerProfileID string) (model.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Company{}, fmt.Errorf("%w: company name is required", model.ErrValidation)
	}
	owner := -1
	if ownerProfileID != "" {
		if owner = r.profileIndex(ownerProfileID); owner < 0 {
			return model.Company{}, fmt.Errorf("%w: profile %s", model.ErrNotFound, ownerProfileID)
		}
	}

	c := model.Company{ID: id.New(), Name: name, NIF: strings.TrimSpace(nif)}
	r.Companies = append(r.Companies, c)
	if owner >= 0 {
		r.Profiles[owner].CompanyIDs = append(r.Profiles[owner].CompanyIDs, c.ID)
	}
	return c, nil
}

// AddProfileParams holds the fields of a new profile.
type AddProfileParams struct {
	Name     string
	Username string
	UserCode string
	Role     string
	Email    string
}

// AddProfile registers an active profile with no companies.
func (r *Registry) AddProfile(params AddProfileParams) (model.Profile, error) {
	name := strings.TrimSpace(params.Name)
	username := strings.TrimSpace(params.Username)
	if name == "" || username == "" {
		return model.Profile{}, fmt.Errorf("%w: profile name and username are required", model.ErrValidation)
	}
	if _, taken := r.ProfileByUsername(username); taken {
		return model.Profile{}, fmt.Errorf("%w: username %q already exists", model.ErrValidation, username)
	}

	p := model.Profile{
		ID:       id.New(),
		Name:     name,
		Username: username,
		UserCode: params.UserCode,
		Role:     params.Role,
		Email:    params.Email,
		Status:   model.ProfileActive,
	}
	r.Profiles = append(r.Profiles, p)
	return p, nil
}

// Grant gives a profile access to a company. Granting twice is a no-op.
func (r *Registry) Grant(profileID, companyID string) error {
	i := r.profileIndex(profileID)
	if i < 0 {
		return fmt.Errorf("%w: profile %s", model.ErrNotFound, profileID)
	}
	if _, ok := r.Company(companyID); !ok {
		return fmt.Errorf("%w: company %s", model.ErrNotFound, companyID)
	}
	if r.Profiles[i].CanSee(companyID) {
		return nil
	}
	r.Profiles[i].CompanyIDs = append(r.Profiles[i].CompanyIDs, companyID)
	return nil
}

// VisibleCompanies returns the companies a profile may open, in
// registration order. Inactive profiles see nothing.
func (r *Registry) VisibleCompanies(profileID string) ([]model.Company, error) {
	p, ok := r.Profile(profileID)
	if !ok {
		return nil, fmt.Errorf("%w: profile %s", model.ErrNotFound, profileID)
	}
	var out []model.Company
	if p.Status == model.ProfileInactive {
		return out, nil
	}
	for _, c := range r.Companies {
		if p.CanSee(c.ID) {
			out = append(out, c)
		}
	}
	return out, nil
}

// CanAccess reports whether profileID may open companyID.
func (r *Registry) CanAccess(profileID, companyID string) bool {
	p, ok := r.Profile(profileID)
	if !ok || p.Status == model.ProfileInactive {
		return false
	}
	if _, ok := r.Company(companyID); !ok {
		return false
	}
	return p.CanSee(companyID)
}
