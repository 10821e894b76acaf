package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	if strings.TrimSpace(key) == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(false))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
	}
	return uid
}

// ContentHash keys the content-addressed dedup map. Two byte-identical pieces
// of extracted text always produce the same hash, so duplicate extractions
// collapse into one block. Normalization is disabled: the hash must track the
// exact bytes, not a cleaned-up form.
func ContentHash(content string) string {
	return UUID("go-docref:content:" + content).String()
}

// DocumentUUID identifies a parsed document by its normalized absolute path.
func DocumentUUID(absolutePath string) uuid.UUID {
	return UUID("go-docref:document:" + strings.TrimSpace(absolutePath))
}
