package seo

import "encoding/json"

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// SchemaParts are the JSON-LD fragments a page supplies. Extra accepts a
// single schema object or a slice of them.
type SchemaParts struct {
	Product    map[string]any
	Review     map[string]any
	HowTo      map[string]any
	Event      map[string]any
	Article    map[string]any
	FAQ        map[string]any
	Breadcrumb map[string]any
	Extra      any
}

// BuildJSONLD concatenates the page's structured data in fixed order: the
// always-present organization descriptor, then product/review/how-to/event,
// then article/FAQ/breadcrumb, then ad-hoc extras flattened. No
// de-duplication: overlapping schema types legitimately co-occur.
func (c *Composer) BuildJSONLD(parts SchemaParts) []map[string]any {
	out := []map[string]any{c.Organization()}

	ordered := []map[string]any{
		parts.Product,
		parts.Review,
		parts.HowTo,
		parts.Event,
		parts.Article,
		parts.FAQ,
		parts.Breadcrumb,
	}
	for _, m := range ordered {
		if m != nil {
			out = append(out, m)
		}
	}

	switch extra := parts.Extra.(type) {
	case nil:
	case map[string]any:
		out = append(out, extra)
	case []map[string]any:
		out = append(out, extra...)
	case []any:
		for _, e := range extra {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
	}

	return out
}

// Organization returns the site descriptor placed first on every page.
func (c *Composer) Organization() map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     c.site.Name,
		"url":      c.absolute("/"),
	}
	if c.site.LogoURL != "" {
		m["logo"] = c.site.LogoURL
	}
	return m
}

// WebSite returns a minimal WebSite schema with optional SearchAction.
func WebSite(name, url, searchActionURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if searchActionURL != "" {
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchActionURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// Product returns a minimal product schema payload.
func Product(name, description, url, imageURL string, price float64, currency string) map[string]any {
	m := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        name,
		"description": description,
	}
	if url != "" {
		m["url"] = url
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if price > 0 {
		m["offers"] = map[string]any{
			"@type":         "Offer",
			"price":         price,
			"priceCurrency": currency,
		}
	}
	return m
}

// Article returns a minimal Article schema payload.
func Article(headline, url, imageURL, authorName, datePublished string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Article",
		"headline": headline,
	}
	if url != "" {
		m["url"] = url
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if authorName != "" {
		m["author"] = map[string]any{"@type": "Person", "name": authorName}
	}
	if datePublished != "" {
		m["datePublished"] = datePublished
	}
	return m
}

// FAQItem maps one question to its answer text.
type FAQItem struct {
	Question string
	Answer   string
}

// FAQPage builds a schema.org FAQPage.
func FAQPage(items []FAQItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for _, it := range items {
		el = append(el, map[string]any{
			"@type": "Question",
			"name":  it.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  it.Answer,
			},
		})
	}
	return map[string]any{
		"@context":   "https://schema.org",
		"@type":      "FAQPage",
		"mainEntity": el,
	}
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Event returns a minimal Event schema payload.
func Event(name, startDate, locationName, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Event",
		"name":     name,
	}
	if startDate != "" {
		m["startDate"] = startDate
	}
	if locationName != "" {
		m["location"] = map[string]any{"@type": "Place", "name": locationName}
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// HowToStep is one step of a HowTo schema.
type HowToStep struct {
	Name string
	Text string
}

// HowTo builds a schema.org HowTo.
func HowTo(name string, steps []HowToStep) map[string]any {
	el := make([]map[string]any, 0, len(steps))
	for _, st := range steps {
		el = append(el, map[string]any{
			"@type": "HowToStep",
			"name":  st.Name,
			"text":  st.Text,
		})
	}
	return map[string]any{
		"@context": "https://schema.org",
		"@type":    "HowTo",
		"name":     name,
		"step":     el,
	}
}

// Review returns a minimal Review schema payload.
func Review(itemName, authorName string, rating float64, body string) map[string]any {
	m := map[string]any{
		"@context":     "https://schema.org",
		"@type":        "Review",
		"itemReviewed": map[string]any{"@type": "Thing", "name": itemName},
		"reviewRating": map[string]any{"@type": "Rating", "ratingValue": rating},
	}
	if authorName != "" {
		m["author"] = map[string]any{"@type": "Person", "name": authorName}
	}
	if body != "" {
		m["reviewBody"] = body
	}
	return m
}
