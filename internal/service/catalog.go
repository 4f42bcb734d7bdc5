package service

import (
	"sort"
	"strings"
	"sync"

	"velora/internal/models"

	"github.com/rs/zerolog"
)

// Catalog serves the static service list and holds the ephemeral search
// query. The catalog itself never changes at runtime; only the query does.
type Catalog struct {
	services []models.Service
	byID     map[int64]models.Service

	mu     sync.RWMutex
	query  string
	logger *zerolog.Logger
}

func NewCatalog(services []models.Service, logger *zerolog.Logger) *Catalog {
	sorted := make([]models.Service, len(services))
	copy(sorted, services)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[int64]models.Service, len(sorted))
	for _, svc := range sorted {
		byID[svc.ID] = svc
	}

	return &Catalog{services: sorted, byID: byID, logger: logger}
}

// Services returns the full catalog ordered by ID.
func (c *Catalog) Services() []models.Service {
	out := make([]models.Service, len(c.services))
	copy(out, c.services)
	return out
}

// ServiceByID returns the service with the given ID, or nil.
func (c *Catalog) ServiceByID(id int64) *models.Service {
	svc, ok := c.byID[id]
	if !ok {
		return nil
	}
	return &svc
}

// ServiceIDs returns all catalog IDs; the SEO composer uses them to build
// the service canonical rule group.
func (c *Catalog) ServiceIDs() []int64 {
	ids := make([]int64, 0, len(c.services))
	for _, svc := range c.services {
		ids = append(ids, svc.ID)
	}
	return ids
}

// Search filters services by a case-insensitive match on name, category or
// description. An empty query returns the full catalog.
func (c *Catalog) Search(query string) []models.Service {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Services()
	}

	var out []models.Service
	for _, svc := range c.services {
		if strings.Contains(strings.ToLower(svc.Name), q) ||
			strings.Contains(strings.ToLower(svc.Category), q) ||
			strings.Contains(strings.ToLower(svc.Description), q) {
			out = append(out, svc)
		}
	}
	return out
}

// SetQuery updates the active search text.
func (c *Catalog) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = strings.TrimSpace(query)
}

// ClearQuery resets the search state.
func (c *Catalog) ClearQuery() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = ""
}

// Query reports the current search text and whether a search is active.
func (c *Catalog) Query() models.SearchQuery {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.SearchQuery{Text: c.query, Active: c.query != ""}
}

// Results applies the active query, or returns the full catalog when no
// search is active.
func (c *Catalog) Results() []models.Service {
	c.mu.RLock()
	q := c.query
	c.mu.RUnlock()
	return c.Search(q)
}
