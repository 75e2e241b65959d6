// filepath: internal/models/models.go
// Package models contains the core data structures for the application.
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Info represents general information about the local pet database.
type Info struct {
	Version       string `json:"version"`
	DatabasePath  string `json:"database_path"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	SchemaVersion int64  `json:"schema_version"`
	PetCount      int    `json:"pet_count"`
}

// Gender is the stored integer code of a pet's gender.
// Rows written by this application only ever hold one of the three constants,
// but readers must cope with any other value.
type Gender int

const (
	GenderUnknown Gender = 0
	GenderMale    Gender = 1
	GenderFemale  Gender = 2
)

// Valid reports whether g is one of the defined gender codes.
func (g Gender) Valid() bool {
	return g == GenderUnknown || g == GenderMale || g == GenderFemale
}

// String returns the display name. Out-of-range codes display as Unknown.
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return "Unknown"
	}
}

// ParseGender accepts a gender name ("male", "Female", "m", "u", ...) or its
// integer code. An empty string yields GenderUnknown.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown", "u":
		return GenderUnknown, nil
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !Gender(n).Valid() {
		return GenderUnknown, fmt.Errorf("invalid gender: %q", s)
	}
	return Gender(n), nil
}

// Pet is one row of the pets table.
type Pet struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Breed  string `json:"breed"`
	Gender Gender `json:"gender"`
	Weight int    `json:"weight"`
}
