package seo

// ValidationReport is the advisory output of Validate. It never gates
// rendering; a page ships with whatever tags it has.
type ValidationReport struct {
	IsValid         bool     `json:"is_valid"`
	MissingRequired []string `json:"missing_required"`
	Recommendations []string `json:"recommendations"`
}

var requiredTags = []string{
	"og:title",
	"og:description",
	"og:url",
	"twitter:card",
	"twitter:title",
	"twitter:description",
}

// Validate checks the universally-required tag names per family and returns
// human-readable improvement suggestions. Advisory tooling, not a gate.
func Validate(tags []Tag) ValidationReport {
	present := make(map[string]string, len(tags))
	for _, tag := range tags {
		present[tag.Key] = tag.Content
	}

	report := ValidationReport{
		MissingRequired: []string{},
		Recommendations: []string{},
	}

	for _, key := range requiredTags {
		if present[key] == "" {
			report.MissingRequired = append(report.MissingRequired, key)
		}
	}
	report.IsValid = len(report.MissingRequired) == 0

	if present["og:image"] == "" {
		report.Recommendations = append(report.Recommendations, "add og:image so shares render a preview")
	}
	if present["og:site_name"] == "" {
		report.Recommendations = append(report.Recommendations, "set og:site_name for branded shares")
	}
	if present["og:locale"] == "" {
		report.Recommendations = append(report.Recommendations, "set og:locale for locale-aware crawlers")
	}
	if present["twitter:card"] == CardSummaryLargeImage && present["twitter:image"] == "" {
		report.Recommendations = append(report.Recommendations, "add image for large-image card")
	}
	if present["twitter:site"] == "" {
		report.Recommendations = append(report.Recommendations, "set twitter:site to the site handle")
	}

	return report
}
