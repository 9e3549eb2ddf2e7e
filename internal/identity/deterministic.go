package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PostUUID returns the stable identifier for a post slug. Repeated catalog
// syncs map the same slug to the same row.
func PostUUID(slug string) uuid.UUID {
	return UUID("go-posts:post:" + strings.ToLower(strings.TrimSpace(slug)))
}

// TagUUID returns the stable identifier for a tag name.
func TagUUID(tag string) uuid.UUID {
	return UUID("go-posts:tag:" + strings.ToLower(strings.TrimSpace(tag)))
}
