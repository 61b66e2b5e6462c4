package entity

// Photo is a single image of an album.
type Photo struct {
	ID        string
	Src       string
	Caption   string
	Timestamp string
}
