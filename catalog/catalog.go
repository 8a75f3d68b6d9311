// Package catalog maps raw source column names to canonical names.
package catalog

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"

	"github.com/invertedv/parcels"
)

// Entry documents one source column.
type Entry struct {
	Raw     string
	Name    string
	Meaning string
	Unit    string
}

// Catalog is an immutable, injective raw -> canonical mapping. Build it once with New.
type Catalog struct {
	entries []Entry
	byRaw   map[string]int
	names   mapset.Set[string]
}

func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{
		byRaw: make(map[string]int, len(entries)),
		names: mapset.NewSet[string](),
	}

	raws := mapset.NewSet[string]()
	for ind, ent := range entries {
		if ent.Raw == "" || ent.Name == "" {
			return nil, errors.Wrapf(parcels.ErrConfig, "catalog entry %d has an empty name", ind)
		}

		if !raws.Add(ent.Raw) {
			return nil, errors.Wrapf(parcels.ErrConfig, "raw column %s listed twice", ent.Raw)
		}

		if !c.names.Add(ent.Name) {
			return nil, errors.Wrapf(parcels.ErrConfig, "canonical name %s is not unique", ent.Name)
		}

		c.byRaw[ent.Raw] = ind
	}

	// a raw key may equal a canonical name only if it is its own entry's
	for _, ent := range entries {
		if pos, ok := c.byRaw[ent.Name]; ok && entries[pos].Name != ent.Name {
			return nil, errors.Wrapf(parcels.ErrConfig, "raw column %s collides with canonical name of %s", ent.Name, ent.Raw)
		}
	}

	c.entries = append([]Entry(nil), entries...)

	return c, nil
}

// MustNew is New for package-level catalogs; it panics on an invalid mapping.
func MustNew(entries ...Entry) *Catalog {
	c, e := New(entries...)
	if e != nil {
		panic(e)
	}

	return c
}

// ***************** Methods *****************

// Canonical returns the canonical name of raw.
func (c *Catalog) Canonical(raw string) (string, bool) {
	pos, ok := c.byRaw[raw]
	if !ok {
		return "", false
	}

	return c.entries[pos].Name, true
}

// Lookup returns the entry for a canonical name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	for _, ent := range c.entries {
		if ent.Name == name {
			return ent, true
		}
	}

	return Entry{}, false
}

func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Raw returns the raw names, in catalog order.
func (c *Catalog) Raw() []string {
	raws := make([]string, 0, len(c.entries))
	for _, ent := range c.entries {
		raws = append(raws, ent.Raw)
	}

	return raws
}

// Names returns the canonical names, in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for _, ent := range c.entries {
		names = append(names, ent.Name)
	}

	return names
}

// Apply returns a copy of df with cataloged columns renamed. Columns that already carry a canonical name
// are kept as they are, so Apply is idempotent; any other column is dropped.
// Every catalog entry must be present under its raw or canonical name, otherwise the result is ErrConfig.
func (c *Catalog) Apply(df *parcels.DF) (*parcels.DF, error) {
	present := mapset.NewSet[string](df.ColumnNames()...)
	for _, ent := range c.entries {
		if !present.Contains(ent.Raw) && !present.Contains(ent.Name) {
			return nil, errors.Wrapf(parcels.ErrConfig, "catalog column %s (%s) not in input", ent.Raw, ent.Name)
		}
	}

	var cols []*parcels.Col
	for _, col := range df.Columns() {
		name, ok := c.Canonical(col.Name())
		if !ok {
			if !c.names.Contains(col.Name()) {
				continue
			}

			name = col.Name()
		}

		var (
			cx *parcels.Col
			e  error
		)
		if cx, e = col.Renamed(name); e != nil {
			return nil, e
		}

		cols = append(cols, cx)
	}

	if len(cols) == 0 {
		return nil, errors.Wrap(parcels.ErrConfig, "no cataloged columns in input")
	}

	return parcels.NewDF(cols...)
}
