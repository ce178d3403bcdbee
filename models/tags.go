package models

// TagPoints is the controlled tag vocabulary with the points awarded to
// the reporter when a tagged issue is resolved. The set mirrors the tag
// list served to the content validator; it is not mutable at runtime.
var TagPoints = map[string]int{
	"Wifi":          10,
	"Network":       10,
	"Cleanliness":   5,
	"Plumbing":      15,
	"Electrical":    15,
	"Lighting":      10,
	"Safety":        20,
	"Security":      20,
	"Maintenance":   10,
	"Sanitation":    10,
	"Structural":    25,
	"Accessibility": 15,
	"HVAC":          15,
	"Pest Control":  10,
	"Gardening":     5,
	"Transport":     10,
	"Signage":       5,
	"Fire Safety":   25,
	"Other":         5,
}

// KnownTag reports whether the tag is in the registry.
func KnownTag(name string) bool {
	_, ok := TagPoints[name]
	return ok
}

// KnownTags returns the registry's tag names.
func KnownTags() []string {
	tags := make([]string, 0, len(TagPoints))
	for name := range TagPoints {
		tags = append(tags, name)
	}
	return tags
}

// SanitizeTags drops tags that are not in the registry. Unknown tags are
// not an error and duplicates are preserved; the order of the input is kept.
func SanitizeTags(raw []string) []string {
	valid := make([]string, 0, len(raw))
	for _, tag := range raw {
		if KnownTag(tag) {
			valid = append(valid, tag)
		}
	}
	return valid
}

// ResolutionAward computes the points granted to the reporter when an
// issue is resolved: the sum of the tag point values, or a severity-based
// flat award when no recognized tag contributes anything.
func ResolutionAward(tags []string, severity IssueSeverity) int {
	total := 0
	for _, tag := range tags {
		total += TagPoints[tag]
	}
	if total > 0 {
		return total
	}
	switch severity {
	case SeverityHigh:
		return 20
	case SeverityMedium:
		return 10
	default:
		return 5
	}
}
