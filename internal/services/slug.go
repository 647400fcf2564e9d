package services

import (
	"crypto/rand"
	"math/big"
	"strings"

	"summitportal/internal/domain"
)

const slugSuffixLength = 6

var slugSuffixAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

// resolveSlug normalizes an explicit slug or derives one from name. When neither yields a
// usable slug, prefix plus a random suffix is returned.
func resolveSlug(explicit, name, prefix string) (string, error) {
	slug := domain.Slugify(strings.TrimSpace(explicit))
	if slug == "" {
		slug = domain.Slugify(name)
	}
	if slug != "" {
		return slug, nil
	}
	suffix, err := randomSlugSuffix()
	if err != nil {
		return "", err
	}
	return prefix + "-" + suffix, nil
}

func randomSlugSuffix() (string, error) {
	b := make([]rune, slugSuffixLength)
	max := big.NewInt(int64(len(slugSuffixAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = slugSuffixAlphabet[n.Int64()]
	}
	return string(b), nil
}

func actorID(actor *domain.AdminSession) string {
	if actor == nil || actor.Profile == nil {
		return ""
	}
	return actor.Profile.ID
}
