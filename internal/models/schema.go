// filepath: internal/models/schema.go
package models

// Database file and schema identity.
const (
	DefaultDatabaseName = "shelter.db"
	DatabaseVersion     = 1
)

// The pets table and its columns. The creation statement lives in
// internal/db/migrations/00001_create_pets.sql and must agree with these names.
const (
	PetsTable    = "pets"
	ColumnID     = "_id"
	ColumnName   = "name"
	ColumnBreed  = "breed"
	ColumnGender = "gender"
	ColumnWeight = "weight"
)

// PetColumns is the projection used by every pet query, in scan order.
var PetColumns = []string{ColumnID, ColumnName, ColumnBreed, ColumnGender, ColumnWeight}
