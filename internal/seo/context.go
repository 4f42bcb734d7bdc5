package seo

// ContentType tags a page variant for canonical, social and structured-data
// composition.
type ContentType string

const (
	ContentHomepage ContentType = "homepage"
	ContentCity     ContentType = "city"
	ContentService  ContentType = "service"
	ContentBlog     ContentType = "blog"
	ContentLegal    ContentType = "legal"
	ContentSpecial  ContentType = "special"
)

// Image is an explicit share image with optional alt text. Alt text is
// synthesized from the content type when empty.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// AppCard carries the optional Twitter app-card block.
type AppCard struct {
	IPhoneID     string `json:"iphone_id,omitempty"`
	IPadID       string `json:"ipad_id,omitempty"`
	GooglePlayID string `json:"googleplay_id,omitempty"`
	Country      string `json:"country,omitempty"`
}

// PlayerCard carries the optional Twitter player-card block.
type PlayerCard struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// PageMeta is the part every page variant shares. Path is the requested
// path; the composer resolves it to the canonical URL itself.
type PageMeta struct {
	Title       string
	Description string
	Path        string
	Image       *Image
	App         *AppCard
	Player      *PlayerCard
}

// Meta returns the shared fields of a page variant.
func (m PageMeta) Meta() PageMeta { return m }

func (PageMeta) isPage() {}

// Page is a sealed union over the six content types. Each variant carries
// only the fields it actually uses.
type Page interface {
	ContentType() ContentType
	Meta() PageMeta
	isPage()
}

type HomePage struct{ PageMeta }

type CityPage struct {
	PageMeta
	CityName string
}

type ServicePage struct {
	PageMeta
	ServiceName string
}

type BlogPost struct {
	PageMeta
	PublishedAt string
	ModifiedAt  string
	Author      string
}

type LegalPage struct{ PageMeta }

type SpecialPage struct{ PageMeta }

func (HomePage) ContentType() ContentType    { return ContentHomepage }
func (CityPage) ContentType() ContentType    { return ContentCity }
func (ServicePage) ContentType() ContentType { return ContentService }
func (BlogPost) ContentType() ContentType    { return ContentBlog }
func (LegalPage) ContentType() ContentType   { return ContentLegal }
func (SpecialPage) ContentType() ContentType { return ContentSpecial }
