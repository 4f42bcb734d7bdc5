package seo

import (
	"fmt"
	"strings"

	"velora/internal/config"
)

// Coordinates is a lat/lng pair for place meta tags.
type Coordinates struct {
	Lat float64
	Lng float64
}

// indiaCentroid is the fallback for cities missing from the table. A wrong
// but plausible coordinate beats a broken tag.
var indiaCentroid = Coordinates{Lat: 20.5937, Lng: 78.9629}

// defaultCities covers the launch markets when the config lists none.
var defaultCities = []config.CityConfig{
	{Slug: "mumbai", Name: "Mumbai", Lat: 19.0760, Lng: 72.8777},
	{Slug: "delhi", Name: "Delhi", Lat: 28.7041, Lng: 77.1025},
	{Slug: "bangalore", Name: "Bangalore", Lat: 12.9716, Lng: 77.5946},
	{Slug: "hyderabad", Name: "Hyderabad", Lat: 17.3850, Lng: 78.4867},
	{Slug: "chennai", Name: "Chennai", Lat: 13.0827, Lng: 80.2707},
	{Slug: "kolkata", Name: "Kolkata", Lat: 22.5726, Lng: 88.3639},
	{Slug: "pune", Name: "Pune", Lat: 18.5204, Lng: 73.8567},
	{Slug: "jaipur", Name: "Jaipur", Lat: 26.9124, Lng: 75.7873},
}

// Composer produces all head metadata for a requested path: canonical URL,
// hreflang alternates, Open Graph + Twitter tags and JSON-LD. Every method
// is a pure function of its inputs and the static tables built here.
type Composer struct {
	site       config.SiteConfig
	cityBySlug map[string]config.CityConfig
	cityAlias  map[string]string // alias path -> canonical slug
	coords     map[string]Coordinates
	serviceIDs map[int64]bool
}

// New builds the static lookup tables. serviceIDs are the catalog's numeric
// identifiers, used for the service canonical rule group.
func New(site config.SiteConfig, serviceIDs []int64) *Composer {
	cities := site.Cities
	if len(cities) == 0 {
		cities = defaultCities
	}

	c := &Composer{
		site:       site,
		cityBySlug: make(map[string]config.CityConfig, len(cities)),
		cityAlias:  make(map[string]string),
		coords:     make(map[string]Coordinates, len(cities)),
		serviceIDs: make(map[int64]bool, len(serviceIDs)),
	}

	for _, city := range cities {
		slug := strings.ToLower(city.Slug)
		c.cityBySlug[slug] = city
		c.coords[slug] = Coordinates{Lat: city.Lat, Lng: city.Lng}
		c.coords[strings.ToLower(city.Name)] = Coordinates{Lat: city.Lat, Lng: city.Lng}

		c.cityAlias["/"+slug] = slug
		aliases := city.Aliases
		if len(aliases) == 0 {
			aliases = []string{
				"/" + slug + "-escorts",
				"/escorts-" + slug,
				"/" + slug + "-companions",
				"/companions-" + slug,
			}
		}
		for _, alias := range aliases {
			alias = strings.ToLower(strings.TrimSpace(alias))
			if !strings.HasPrefix(alias, "/") {
				alias = "/" + alias
			}
			c.cityAlias[alias] = slug
		}
	}

	for _, id := range serviceIDs {
		c.serviceIDs[id] = true
	}

	return c
}

// SiteName returns the configured site name.
func (c *Composer) SiteName() string { return c.site.Name }

// cityCoordinates looks up a city by display name or slug, falling back to
// the India centroid for unrecognized cities.
func (c *Composer) cityCoordinates(city string) Coordinates {
	if coords, ok := c.coords[strings.ToLower(strings.TrimSpace(city))]; ok {
		return coords
	}
	return indiaCentroid
}

// normalize lowercases and trims the input and reduces a full URL on our
// own host back to its path, so canonical output can be fed back in.
func (c *Composer) normalize(path string) string {
	p := strings.ToLower(strings.TrimSpace(path))

	base := strings.ToLower(strings.TrimRight(c.site.BaseURL, "/"))
	if base != "" && strings.HasPrefix(p, base) {
		p = p[len(base):]
	}

	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// absolute joins a normalized path onto the site base URL.
func (c *Composer) absolute(path string) string {
	base := strings.TrimRight(c.site.BaseURL, "/")
	if path == "/" || path == "" {
		return base + "/"
	}
	return base + path
}

func formatCoordinate(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
}
