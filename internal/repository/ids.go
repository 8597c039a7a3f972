package repository

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

// Id generation lives in the storage layer so that domain logic never cares
// how identifiers are minted. Internal keys are random UUIDs; public ids are
// short, non-sequential references safe to expose externally.

func newID() uuid.UUID {
	return uuid.New()
}

// newPublicID returns an identifier like "AP-7F3A91C44B20" for the given
// prefix. Six random bytes keep accidental collisions out of reach at any
// plausible row count; a collision would otherwise surface as a duplicate-key
// error on an unrelated unique index.
func newPublicID(prefix string) string {
	b := make([]byte, 6)
	rand.Read(b)
	return fmt.Sprintf("%s-%012X", prefix, b)
}
