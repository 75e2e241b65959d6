package shared

type Error string

// Implement the error interface
func (e Error) Error() string { return string(e) }

//------------
// Definitions
//------------

// cli errors
const (
	ErrorCreateFile = Error("could not create the file")
	ErrorEncodeFile = Error("could not encode to file")
)

// repository errors
const (
	ErrPetNotFound        = Error("pet not found")
	ErrStorageUnavailable = Error("storage unavailable")
	ErrWriteFailed        = Error("write failed")
	ErrSchemaOutdated     = Error("database schema is outdated")
)

// parser errors
const (
	ErrInvalidWeight = Error("invalid weight")
)
