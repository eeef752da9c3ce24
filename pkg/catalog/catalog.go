// Package catalog holds the unit kinds that can be placed on a board.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dfb/gmtools/pkg/types"
)

// Catalog errors.
var (
	ErrInvalidCatalog = errors.New("invalid unit catalog")
	ErrUnitNotFound   = errors.New("unit not in catalog")
)

// builtin is the unit list shipped with the editor. ImageName values match
// the renderer's asset keys.
var builtin = []types.CatalogUnit{
	{Name: "Archer", ImageName: "unitArcher", AC: 3, Health: 5, Movement: 2},
	{Name: "Archer Captain", ImageName: "unitCapArcher", AC: 4, Health: 8, Movement: 2},
	{Name: "Catapult", ImageName: "unitCatapult", AC: 2, Health: 10, Movement: 1},
	{Name: "Cavalry", ImageName: "unitCavalry", AC: 6, Health: 8, Movement: 4},
	{Name: "Cavalry Captain", ImageName: "unitCapCavalry", AC: 7, Health: 9, Movement: 4},
	{Name: "Spearman", ImageName: "unitSpearman", AC: 8, Health: 8, Movement: 2},
	{Name: "Spearman Captain", ImageName: "unitCapSpearman", AC: 8, Health: 10, Movement: 2},
	{Name: "Player - Melee", ImageName: "unitPlayerMelee", AC: 0, Health: 5, Movement: 2},
	{Name: "Player - Ranged", ImageName: "unitPlayerRanged", AC: 0, Health: 5, Movement: 2},
	{Name: "Player - Airborn", ImageName: "unitPlayerAirborn", AC: 0, Health: 5, Movement: 4},
}

// Catalog maps unit names to their definitions. A Catalog is read-only
// after construction and safe for concurrent use.
type Catalog struct {
	units  []types.CatalogUnit
	byName map[string]types.CatalogUnit
}

// New builds a catalog from units. Names must be non-empty and unique.
func New(units []types.CatalogUnit) (*Catalog, error) {
	c := &Catalog{
		units:  make([]types.CatalogUnit, 0, len(units)),
		byName: make(map[string]types.CatalogUnit, len(units)),
	}
	for i, u := range units {
		if u.Name == "" {
			return nil, fmt.Errorf("unit %d has no name: %w", i, ErrInvalidCatalog)
		}
		if _, dup := c.byName[u.Name]; dup {
			return nil, fmt.Errorf("duplicate unit %q: %w", u.Name, ErrInvalidCatalog)
		}
		if u.Health < 0 || u.Movement < 0 {
			return nil, fmt.Errorf("unit %q has negative stats: %w", u.Name, ErrInvalidCatalog)
		}
		c.units = append(c.units, u)
		c.byName[u.Name] = u
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(builtin)
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads a YAML list of units from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var units []types.CatalogUnit
	if err := yaml.Unmarshal(data, &units); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %v: %w", path, err, ErrInvalidCatalog)
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("catalog %s is empty: %w", path, ErrInvalidCatalog)
	}
	return New(units)
}

// LoadOrDefault loads path, or returns the built-in catalog when path is
// empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Lookup returns the unit with the given name.
func (c *Catalog) Lookup(name string) (types.CatalogUnit, bool) {
	u, ok := c.byName[name]
	return u, ok
}

// Keys returns the unit names, sorted.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.byName))
	for k := range c.byName {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Units returns the units in catalog order.
func (c *Catalog) Units() []types.CatalogUnit {
	return append([]types.CatalogUnit(nil), c.units...)
}

// Spawn returns a new instance of the named unit at full health. Unknown
// names give ErrUnitNotFound.
func (c *Catalog) Spawn(name string, id int) (types.UnitInstance, error) {
	u, ok := c.Lookup(name)
	if !ok {
		return types.UnitInstance{}, fmt.Errorf("unit %q: %w", name, ErrUnitNotFound)
	}
	return types.UnitInstance{ID: id, Unit: u.Name, Health: u.Health}, nil
}
