package domain

import "fmt"

// DefaultRoles is the role vocabulary used when no override is configured.
var DefaultRoles = []string{
	"Customer",
	"PMC",
	"Architect",
	"Designer",
	"Contractor",
	"Legal/Liaisoning",
	"Ava-PMT",
	"DC (Contractor)",
	"DC (PMC)",
	"Inspector (PMC)",
	"HOD (PMC)",
	"Engineer (Contractor)",
}

// Catalog is the fixed, ordered set of role names a project can staff.
// It is built once at startup and never mutated afterwards; every
// reconciliation request is validated against it. Roles that appear in
// storage but not in the catalog are tolerated on read and ignored on
// write, so the catalog can shrink or grow across deployments without
// breaking older data.
type Catalog struct {
	ordered []string
	members map[string]struct{}
}

// NewCatalog builds a catalog from an ordered list of role names.
// The list must be non-empty and free of blanks and duplicates.
func NewCatalog(roles []string) (*Catalog, error) {
	if len(roles) == 0 {
		return nil, fmt.Errorf("catalog requires at least one role")
	}

	c := &Catalog{
		ordered: make([]string, 0, len(roles)),
		members: make(map[string]struct{}, len(roles)),
	}
	for _, role := range roles {
		if role == "" {
			return nil, fmt.Errorf("catalog role name cannot be blank")
		}
		if _, dup := c.members[role]; dup {
			return nil, fmt.Errorf("duplicate role %q in catalog", role)
		}
		c.ordered = append(c.ordered, role)
		c.members[role] = struct{}{}
	}
	return c, nil
}

// MustDefaultCatalog returns a catalog over DefaultRoles.
func MustDefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultRoles)
	if err != nil {
		panic(err)
	}
	return c
}

// Roles returns the catalog's role names in their fixed order.
// The returned slice is a copy; callers may not mutate the catalog.
func (c *Catalog) Roles() []string {
	out := make([]string, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// IsValid reports whether name is a recognized role.
func (c *Catalog) IsValid(name string) bool {
	_, ok := c.members[name]
	return ok
}

// Len returns the number of roles in the catalog.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
