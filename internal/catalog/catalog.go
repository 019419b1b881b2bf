// Package catalog holds the read-only set of attractions a trip can be built
// from, with the search and grouping helpers the library panel uses.
// Entries are seeded once and never mutated; every accessor returns copies.
package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/pkordes/trip-builder/internal/domain"
)

// Catalog is an immutable attraction list with memoized search.
// It is safe for concurrent use.
type Catalog struct {
	entries []domain.Activity
	byID    map[string]int
	regions map[string][]string

	// searches memoizes Search by normalized query. Entries never change, so
	// cached results only expire to bound memory.
	searches *cache.Cache
}

// New builds a Catalog over entries. regions maps a region name to the
// attraction IDs it contains; pass nil for no region lookup.
func New(entries []domain.Activity, regions map[string][]string) *Catalog {
	c := &Catalog{
		entries:  make([]domain.Activity, len(entries)),
		byID:     make(map[string]int, len(entries)),
		regions:  make(map[string][]string, len(regions)),
		searches: cache.New(10*time.Minute, 20*time.Minute),
	}
	for i, e := range entries {
		c.entries[i] = e.Clone()
		c.byID[e.ID] = i
	}
	for name, ids := range regions {
		c.regions[name] = append([]string{}, ids...)
	}
	return c
}

// Default returns the catalog seeded with the built-in Indonesian attractions.
func Default() *Catalog {
	return New(seedAttractions, seedRegions)
}

// All returns every attraction in catalog order.
func (c *Catalog) All() []domain.Activity {
	return cloneAll(c.entries)
}

// Get returns the attraction with the given ID.
func (c *Catalog) Get(id string) (domain.Activity, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Activity{}, false
	}
	return c.entries[i].Clone(), true
}

// Search returns attractions whose name, description, address, or category
// contains query, case-insensitively, in catalog order.
// An empty query matches everything; callers that mean "no filter" should
// not call Search at all.
func (c *Catalog) Search(query string) []domain.Activity {
	q := strings.ToLower(query)
	if hit, ok := c.searches.Get(q); ok {
		return cloneAll(hit.([]domain.Activity))
	}

	out := []domain.Activity{}
	for _, e := range c.entries {
		if matches(e, q) {
			out = append(out, e)
		}
	}
	c.searches.SetDefault(q, out)
	return cloneAll(out)
}

func matches(a domain.Activity, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(a.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(a.Description), lowerQuery) ||
		strings.Contains(strings.ToLower(a.Address), lowerQuery) ||
		strings.Contains(strings.ToLower(string(a.Category)), lowerQuery)
}

// ByCategory groups attractions by category. Every category has an entry,
// possibly empty.
func (c *Catalog) ByCategory() map[domain.Category][]domain.Activity {
	out := make(map[domain.Category][]domain.Activity, len(domain.Categories))
	for _, cat := range domain.Categories {
		out[cat] = []domain.Activity{}
	}
	for _, e := range c.entries {
		out[e.Category] = append(out[e.Category], e.Clone())
	}
	return out
}

// ByLocation returns the attractions listed under a named region.
// The lookup is an exact match on the region name; unknown regions yield an
// empty slice.
func (c *Catalog) ByLocation(region string) []domain.Activity {
	ids := c.regions[region]
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []domain.Activity{}
	for _, e := range c.entries {
		if want[e.ID] {
			out = append(out, e.Clone())
		}
	}
	return out
}

// Regions returns the known region names, sorted.
func (c *Catalog) Regions() []string {
	out := make([]string, 0, len(c.regions))
	for name := range c.regions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func cloneAll(in []domain.Activity) []domain.Activity {
	out := make([]domain.Activity, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}
