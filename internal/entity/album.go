package entity

// Album is a named collection of photos on the upstream profile.
// ID is whatever the extractor could recover and is not guaranteed unique.
type Album struct {
	ID         string
	Name       string
	Cover      string // empty when no cover image was found
	PhotoCount *int
	URL        string
}
