// filepath: internal/initconfig/models.go
package initconfig

// InitConfig is the root struct for parsing the TOML seed file.
type InitConfig struct {
	Pets []InitPet `toml:"pet"`
}

// InitPet represents a [[pet]] entry in the TOML seed file.
// Gender accepts the same spellings as the CLI ("male", "f", "2", ...).
type InitPet struct {
	Name   string `toml:"name"`
	Breed  string `toml:"breed"`
	Gender string `toml:"gender"`
	Weight int    `toml:"weight"`
}
