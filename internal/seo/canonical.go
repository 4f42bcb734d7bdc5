package seo

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"velora/internal/metrics"
)

// Alias tables for the fixed page groups. Keys are normalized paths, values
// canonical paths.
var homepageAliases = map[string]bool{
	"":            true,
	"/":           true,
	"/home":       true,
	"/index":      true,
	"/index.html": true,
}

var legalAliases = map[string]string{
	"/privacy-policy":       "/privacy-policy",
	"/privacy":              "/privacy-policy",
	"/privacy.html":         "/privacy-policy",
	"/terms-and-conditions": "/terms-and-conditions",
	"/terms":                "/terms-and-conditions",
	"/tos":                  "/terms-and-conditions",
	"/refund-policy":        "/refund-policy",
	"/refund":               "/refund-policy",
	"/disclaimer":           "/disclaimer",
}

var specialAliases = map[string]string{
	"/blog":       "/blog",
	"/blogs":      "/blog",
	"/contact":    "/contact",
	"/contact-us": "/contact",
	"/faq":        "/faq",
	"/faqs":       "/faq",
	"/about":      "/about",
	"/about-us":   "/about",
	"/search":     "/search",
}

// filterKeys are query parameters that only reorder or narrow a listing;
// their presence canonicalizes to the bare path.
var filterKeys = []string{"sort", "order", "filter", "category", "price_min", "price_max"}

// ResolveCanonical maps a requested path to its canonical absolute URL.
// Rule groups are checked in fixed priority order: homepage, city, service,
// legal, special, pagination, filter, fallback; the first match wins.
// Resolution is a fixed point: feeding the output back in returns the same
// URL.
func (c *Composer) ResolveCanonical(path string) string {
	p := c.normalize(path)

	base := p
	query := ""
	if i := strings.Index(p, "?"); i >= 0 {
		base, query = p[:i], p[i+1:]
	}

	if query == "" {
		if homepageAliases[base] {
			return c.absolute("/")
		}
		if slug, ok := c.cityAlias[base]; ok {
			return c.absolute("/" + slug)
		}
		if id, ok := serviceAliasID(base); ok && c.serviceIDs[id] {
			return c.absolute(fmt.Sprintf("/services/%d", id))
		}
		if canonical, ok := legalAliases[base]; ok {
			return c.absolute(canonical)
		}
		if canonical, ok := specialAliases[base]; ok {
			return c.absolute(canonical)
		}
	} else if values, err := url.ParseQuery(query); err == nil {
		// Page 1 folds into the bare path; deeper pages stay
		// self-canonical so paginated content remains indexable.
		if page := values.Get("page"); page != "" {
			if n, err := strconv.Atoi(page); err == nil {
				if n == 1 {
					return c.ResolveCanonical(base)
				}
				return c.absolute(base + "?page=" + page)
			}
		}
		for _, key := range filterKeys {
			if values.Has(key) {
				return c.ResolveCanonical(base)
			}
		}
	}

	metrics.IncCanonicalFallback()
	return c.absolute(p)
}

// serviceAliasID extracts a numeric service ID from the known service path
// shapes: /services/{id} (canonical), /service/{id}, /book/{id}.
func serviceAliasID(path string) (int64, bool) {
	for _, prefix := range []string{"/services/", "/service/", "/book/"} {
		if rest, ok := strings.CutPrefix(path, prefix); ok {
			if id, err := strconv.ParseInt(rest, 10, 64); err == nil {
				return id, true
			}
		}
	}
	return 0, false
}
