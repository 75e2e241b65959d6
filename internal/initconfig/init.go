// filepath: internal/initconfig/init.go
package initconfig

import (
	"fmt"
	"os"
	"strconv"

	"petsapp/internal/logging"
	"petsapp/internal/models"
	"petsapp/internal/services"

	"github.com/BurntSushi/toml"
)

// Load reads and decodes a seed file.
func Load(configPath string) (*InitConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file '%s': %w", configPath, err)
	}

	var config InitConfig
	if _, err := toml.Decode(string(data), &config); err != nil {
		return nil, fmt.Errorf("failed to parse TOML seed file '%s': %w", configPath, err)
	}
	return &config, nil
}

// Inputs reads a seed file and converts it to service input without storing
// anything, so callers can reject a bad file before their first write.
func Inputs(configPath string) ([]services.PetInput, error) {
	config, err := Load(configPath)
	if err != nil {
		return nil, err
	}
	logging.Log.Infof("Found %d pet(s) in seed file.", len(config.Pets))

	return toInputs(config.Pets)
}

// toInputs converts seed entries to service input. Gender spelling errors are
// reported as validation errors with the entry number.
func toInputs(pets []InitPet) ([]services.PetInput, error) {
	inputs := make([]services.PetInput, 0, len(pets))
	for i, p := range pets {
		gender, err := models.ParseGender(p.Gender)
		if err != nil {
			return nil, fmt.Errorf("pet #%d: %w: %v", i+1, services.ErrValidation, err)
		}
		inputs = append(inputs, services.PetInput{
			Name:       p.Name,
			Breed:      p.Breed,
			Gender:     gender,
			WeightText: strconv.Itoa(p.Weight),
		})
	}
	return inputs, nil
}
