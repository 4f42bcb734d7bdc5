package seo

// AlternateLink is one <link rel="alternate" hreflang> descriptor.
type AlternateLink struct {
	Rel      string `json:"rel"`
	Hreflang string `json:"hreflang"`
	Href     string `json:"href"`
}

// Hreflang resolves the canonical URL and emits the fixed triple pointing
// at it: x-default, India-English, US-English. Single-market product; this
// is deliberately not a configurable locale system.
func (c *Composer) Hreflang(path string) []AlternateLink {
	canonical := c.ResolveCanonical(path)
	return []AlternateLink{
		{Rel: "alternate", Hreflang: "x-default", Href: canonical},
		{Rel: "alternate", Hreflang: "en-IN", Href: canonical},
		{Rel: "alternate", Hreflang: "en-US", Href: canonical},
	}
}
