package profiles

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultCatalog []byte

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Catalog is an immutable set of profiles indexed by cluster ID.
type Catalog struct {
	profiles []Profile
	byID     map[int]int
}

type catalogDocument struct {
	Profiles []Profile `yaml:"profiles"`
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("profiles: embedded catalog: %v", err))
	}
	return c
}

// Load reads a catalog from path, or returns the default catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(doc.Profiles) == 0 {
		return nil, fmt.Errorf("%w: no profiles", ErrInvalidCatalog)
	}

	c := &Catalog{byID: make(map[int]int, len(doc.Profiles))}
	for _, p := range doc.Profiles {
		if err := validate(p); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate profile id %d", ErrInvalidCatalog, p.ID)
		}
		c.byID[p.ID] = len(c.profiles)
		c.profiles = append(c.profiles, p)
	}

	slices.SortFunc(c.profiles, func(a, b Profile) int { return a.ID - b.ID })
	for i, p := range c.profiles {
		c.byID[p.ID] = i
	}

	return c, nil
}

func validate(p Profile) error {
	switch {
	case p.ID < 0:
		return fmt.Errorf("%w: profile id %d is negative", ErrInvalidCatalog, p.ID)
	case p.Name == "":
		return fmt.Errorf("%w: profile %d has no name", ErrInvalidCatalog, p.ID)
	case len(p.Strategies) == 0:
		return fmt.Errorf("%w: profile %d has no strategies", ErrInvalidCatalog, p.ID)
	case !validRisk(p.RiskTier):
		return fmt.Errorf("%w: profile %d risk tier %q", ErrInvalidCatalog, p.ID, p.RiskTier)
	case p.Color != "" && !colorPattern.MatchString(p.Color):
		return fmt.Errorf("%w: profile %d color %q", ErrInvalidCatalog, p.ID, p.Color)
	}
	return nil
}

// Lookup returns the profile for a cluster ID.
func (c *Catalog) Lookup(id int) (Profile, error) {
	i, ok := c.byID[id]
	if !ok {
		return Profile{}, fmt.Errorf("%w: cluster %d", ErrNotFound, id)
	}
	return c.profiles[i], nil
}

// List returns every profile ordered by ID.
func (c *Catalog) List() []Profile {
	return slices.Clone(c.profiles)
}

// Len returns the number of profiles.
func (c *Catalog) Len() int {
	return len(c.profiles)
}

// Covers verifies that every label in [0, clusters) has a profile.
func (c *Catalog) Covers(clusters int) error {
	var missing []int
	for id := range clusters {
		if _, ok := c.byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v of %d", ErrIncomplete, missing, clusters)
	}
	return nil
}
