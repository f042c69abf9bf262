package utils

import "github.com/google/uuid"

// UUIDGenerator produces the opaque identifiers handed out on anonymous
// identity issuance. Version 7 keeps ids roughly time-ordered, which makes
// server-side debugging of freshly created records easier.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
