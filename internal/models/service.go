package models

// Variant is a purchasable option within a service. IDs are unique within
// the parent service only.
type Variant struct {
	ID       string  `yaml:"id" json:"id"`
	Name     string  `yaml:"name" json:"name"`
	Price    float64 `yaml:"price" json:"price"`
	Duration string  `yaml:"duration" json:"duration"`
	Image    string  `yaml:"image" json:"image,omitempty"`
}

// Service is one bookable offering category from the static catalog.
type Service struct {
	ID           int64     `yaml:"id" json:"id"`
	Name         string    `yaml:"name" json:"name"`
	Category     string    `yaml:"category" json:"category"`
	Description  string    `yaml:"description" json:"description"`
	Image        string    `yaml:"image" json:"image,omitempty"`
	Availability string    `yaml:"availability" json:"availability,omitempty"`
	Variants     []Variant `yaml:"variants" json:"variants"`
}

// VariantByID returns the variant with the given ID, or nil.
func (s Service) VariantByID(id string) *Variant {
	for i := range s.Variants {
		if s.Variants[i].ID == id {
			return &s.Variants[i]
		}
	}
	return nil
}

// SearchQuery is ephemeral UI state for catalog filtering. Never persisted.
type SearchQuery struct {
	Text   string `json:"text"`
	Active bool   `json:"active"`
}
