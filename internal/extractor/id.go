package extractor

import (
	"github.com/google/uuid"
	"github.com/user/comic-reader/pkg/utils"
)

// IDGenerator assigns identifiers to extracted photos.
type IDGenerator interface {
	NewID(src string) string
}

// RandomIDs issues a fresh UUID per photo. Identifiers are not stable
// across fetches of the same album.
type RandomIDs struct{}

func (RandomIDs) NewID(string) string {
	return uuid.NewString()
}

// HashIDs derives the identifier from the normalized source URL, so the
// same image keeps its id across fetches. Duplicate images share an id.
type HashIDs struct{}

const hashIDLength = 16

func (HashIDs) NewID(src string) string {
	return utils.HashURL(utils.NormalizeURL(src))[:hashIDLength]
}

// NewIDGenerator returns the generator for mode ("random" or "hash").
func NewIDGenerator(mode string) IDGenerator {
	if mode == "hash" {
		return HashIDs{}
	}
	return RandomIDs{}
}
