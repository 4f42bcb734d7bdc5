package seo

import "fmt"

// Tag is one meta tag descriptor: Open Graph tags use the property
// attribute, Twitter tags the name attribute.
type Tag struct {
	Attribute string `json:"attribute"`
	Key       string `json:"key"`
	Content   string `json:"content"`
}

func og(key, content string) Tag {
	return Tag{Attribute: "property", Key: key, Content: content}
}

func tw(key, content string) Tag {
	return Tag{Attribute: "name", Key: key, Content: content}
}

const (
	CardSummary           = "summary"
	CardSummaryLargeImage = "summary_large_image"
)

// ogType maps content types to Open Graph object types.
func ogType(ct ContentType) string {
	switch ct {
	case ContentService:
		return "product"
	case ContentBlog:
		return "article"
	default:
		return "website"
	}
}

// defaultCard is the fixed content-type to card-type table.
func defaultCard(ct ContentType) string {
	switch ct {
	case ContentBlog, ContentLegal:
		return CardSummary
	default:
		return CardSummaryLargeImage
	}
}

// visuallyDriven marks the types whose summary card upgrades to
// summary_large_image when an image is available.
func visuallyDriven(ct ContentType) bool {
	switch ct {
	case ContentHomepage, ContentCity, ContentService, ContentSpecial:
		return true
	default:
		return false
	}
}

// ComposeSocialTags emits the Open Graph family followed by the Twitter
// Card family for the given page. Composition never fails: unresolvable
// inputs degrade to documented defaults, a missing tag being preferable to
// a broken render.
func (c *Composer) ComposeSocialTags(page Page) []Tag {
	meta := page.Meta()
	ct := page.ContentType()
	canonical := c.ResolveCanonical(meta.Path)

	tags := []Tag{
		og("og:title", meta.Title),
		og("og:description", meta.Description),
		og("og:url", canonical),
		og("og:site_name", c.site.Name),
		og("og:locale", c.site.Locale),
		og("og:type", ogType(ct)),
	}

	// OG image block only when a URL is resolvable: explicit, then the
	// content-type default.
	ogImage := ""
	if meta.Image != nil && meta.Image.URL != "" {
		ogImage = meta.Image.URL
	} else if url, ok := c.site.DefaultImages[string(ct)]; ok {
		ogImage = url
	}
	if ogImage != "" {
		tags = append(tags,
			og("og:image", ogImage),
			og("og:image:width", "1200"),
			og("og:image:height", "630"),
			og("og:image:alt", c.imageAlt(page)),
		)
	}

	switch p := page.(type) {
	case CityPage:
		coords := c.cityCoordinates(p.CityName)
		tags = append(tags,
			og("place:location:latitude", formatCoordinate(coords.Lat)),
			og("place:location:longitude", formatCoordinate(coords.Lng)),
		)
	case ServicePage:
		tags = append(tags, og("product:brand", c.site.Name))
		if p.ServiceName != "" {
			tags = append(tags, og("product:category", p.ServiceName))
		}
	case BlogPost:
		if p.PublishedAt != "" {
			tags = append(tags, og("article:published_time", p.PublishedAt))
		}
		if p.ModifiedAt != "" {
			tags = append(tags, og("article:modified_time", p.ModifiedAt))
		}
		if p.Author != "" {
			tags = append(tags, og("article:author", p.Author))
		}
	}

	card := defaultCard(ct)
	twImage := ogImage
	if twImage == "" {
		// Twitter additionally falls back to the card-generic default.
		twImage = c.site.FallbackImage
	}
	if card == CardSummary && twImage != "" && visuallyDriven(ct) {
		card = CardSummaryLargeImage
	}

	tags = append(tags,
		tw("twitter:card", card),
		tw("twitter:title", meta.Title),
		tw("twitter:description", meta.Description),
		tw("twitter:site", c.site.TwitterSite),
		tw("twitter:creator", c.site.TwitterCreator),
	)

	if card == CardSummaryLargeImage && twImage != "" {
		tags = append(tags,
			tw("twitter:image", twImage),
			tw("twitter:image:alt", c.imageAlt(page)),
		)
	}

	if app := meta.App; app != nil {
		if app.IPhoneID != "" {
			tags = append(tags, tw("twitter:app:id:iphone", app.IPhoneID))
		}
		if app.IPadID != "" {
			tags = append(tags, tw("twitter:app:id:ipad", app.IPadID))
		}
		if app.GooglePlayID != "" {
			tags = append(tags, tw("twitter:app:id:googleplay", app.GooglePlayID))
		}
		if app.Country != "" {
			tags = append(tags, tw("twitter:app:country", app.Country))
		}
	}

	if player := meta.Player; player != nil {
		tags = append(tags,
			tw("twitter:player", player.URL),
			tw("twitter:player:width", fmt.Sprintf("%d", player.Width)),
			tw("twitter:player:height", fmt.Sprintf("%d", player.Height)),
		)
	}

	return tags
}

// imageAlt prefers the explicit alt text, then synthesizes one from the
// content type.
func (c *Composer) imageAlt(page Page) string {
	meta := page.Meta()
	if meta.Image != nil && meta.Image.Alt != "" {
		return meta.Image.Alt
	}

	switch p := page.(type) {
	case CityPage:
		return fmt.Sprintf("%s companions in %s", c.site.Name, p.CityName)
	case ServicePage:
		if p.ServiceName != "" {
			return fmt.Sprintf("%s - %s", p.ServiceName, c.site.Name)
		}
		return fmt.Sprintf("%s services", c.site.Name)
	case BlogPost:
		if meta.Title != "" {
			return meta.Title
		}
		return fmt.Sprintf("%s blog", c.site.Name)
	default:
		return c.site.Name
	}
}
