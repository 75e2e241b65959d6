// filepath: internal/services/pet_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"petsapp/internal/config"
	"petsapp/internal/logging"
	"petsapp/internal/models"
	"petsapp/internal/repository"
	"petsapp/internal/shared"
)

// Compile-time check to ensure interface is implemented
var _ PetService = (*petService)(nil)

// petService validates input and translates storage errors for the pets table.
type petService struct {
	Repo    *repository.Repository
	Auditor Auditor
	Actor   string
}

// DummyPet is the sample pet stored by InsertDummyPet.
var DummyPet = PetInput{Name: "Toto", Breed: "Terrier", Gender: models.GenderMale, WeightText: "7"}

// nopAuditor drops every event.
type nopAuditor struct{}

func (nopAuditor) Log(context.Context, string, string, string, map[string]interface{}) {}

// NewPetService creates a new PetService on an already opened repository.
// A nil auditor records nothing.
func NewPetService(repo *repository.Repository, auditor Auditor, actor string) *petService {
	if auditor == nil {
		auditor = nopAuditor{}
	}
	if actor == "" {
		actor = "local"
	}
	return &petService{Repo: repo, Auditor: auditor, Actor: actor}
}

// OpenPetService opens the database named in cfg and returns a service owning it.
// The caller must Close the service on every exit path.
func OpenPetService(cfg *config.Config, auditor Auditor, actor string) (*petService, error) {
	repo, err := repository.Open(cfg)
	if err != nil {
		logging.Log.Errorf("PetService: failed to open storage: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return NewPetService(repo, auditor, actor), nil
}

// Close releases the underlying database handle.
func (s *petService) Close() error {
	return s.Repo.Close()
}

// === Validation ===

// buildPet trims and checks raw input. All problems are reported at once.
func buildPet(input PetInput) (models.Pet, error) {
	name := strings.TrimSpace(input.Name)
	breed := strings.TrimSpace(input.Breed)

	var problems []string
	if name == "" {
		problems = append(problems, "name is required")
	}
	if breed == "" {
		problems = append(problems, "breed is required")
	}
	if !input.Gender.Valid() {
		problems = append(problems, fmt.Sprintf("gender %d is not one of 0, 1, 2", int(input.Gender)))
	}
	weight, err := shared.ParseWeight(input.WeightText)
	if err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return models.Pet{}, fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return models.Pet{Name: name, Breed: breed, Gender: input.Gender, Weight: weight}, nil
}

// === Business Logic Methods ===

// Create validates the input and stores a new pet, returning its id.
func (s *petService) Create(input PetInput) (int64, error) {
	pet, err := buildPet(input)
	if err != nil {
		return 0, err
	}

	id, err := s.Repo.InsertPet(pet)
	if err != nil {
		logging.Log.Errorf("PetService: Failed to create pet '%s': %v", pet.Name, err)
		return 0, translateError(err)
	}

	s.audit("pet.create", id, map[string]interface{}{
		"name": pet.Name, "breed": pet.Breed, "gender": int(pet.Gender), "weight": pet.Weight,
	})
	return id, nil
}

// List returns a lazy sequence over all pets. Each range over it runs a fresh
// query; the cursor is closed when the loop finishes or breaks.
func (s *petService) List() iter.Seq2[models.Pet, error] {
	return func(yield func(models.Pet, error) bool) {
		cursor, err := s.Repo.QueryAllPets()
		if err != nil {
			yield(models.Pet{}, translateError(err))
			return
		}
		defer cursor.Close()

		for cursor.Next() {
			if !yield(cursor.Pet(), nil) {
				return
			}
		}
		if err := cursor.Err(); err != nil {
			yield(models.Pet{}, translateError(err))
		}
	}
}

// ListAll collects List into a slice.
func (s *petService) ListAll() ([]models.Pet, error) {
	pets := make([]models.Pet, 0)
	for pet, err := range s.List() {
		if err != nil {
			return nil, err
		}
		pets = append(pets, pet)
	}
	return pets, nil
}

// Get returns the pet with the given id, or ErrNotFound.
func (s *petService) Get(id int64) (*models.Pet, error) {
	pet, err := s.Repo.QueryPetByID(id)
	if err != nil {
		return nil, translateError(err)
	}
	return pet, nil
}

// Update applies the given fields to an existing pet, keeping its id.
// It fails with ErrUpdateFailed when the pet no longer exists.
func (s *petService) Update(id int64, update PetUpdate) error {
	logging.Log.Debugf("PetService: Updating pet ID %d", id)

	var input PetInput
	if update.partial() {
		current, err := s.Repo.LoadPetByID(id)
		if err != nil {
			if errors.Is(err, shared.ErrPetNotFound) {
				return fmt.Errorf("%w: pet %d no longer exists", ErrUpdateFailed, id)
			}
			return translateError(err)
		}
		input = currentInput(*current)
	}

	if update.Name != nil {
		input.Name = *update.Name
	}
	if update.Breed != nil {
		input.Breed = *update.Breed
	}
	if update.Gender != nil {
		input.Gender = *update.Gender
	}
	if update.WeightText != nil {
		input.WeightText = *update.WeightText
	}

	pet, err := buildPet(input)
	if err != nil {
		return err
	}

	affected, err := s.Repo.UpdatePet(id, pet)
	if err != nil {
		logging.Log.Errorf("PetService: Failed to update pet %d: %v", id, err)
		return translateError(err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: pet %d no longer exists", ErrUpdateFailed, id)
	}

	s.audit("pet.update", id, map[string]interface{}{
		"name": pet.Name, "breed": pet.Breed, "gender": int(pet.Gender), "weight": pet.Weight,
	})
	return nil
}

// currentInput turns a stored row back into input, replacing corrupt values
// with their defaults so an edit of other fields still validates.
func currentInput(pet models.Pet) PetInput {
	gender := pet.Gender
	if !gender.Valid() {
		gender = models.GenderUnknown
	}
	weight := pet.Weight
	if weight < 0 {
		weight = 0
	}
	return PetInput{Name: pet.Name, Breed: pet.Breed, Gender: gender, WeightText: strconv.Itoa(weight)}
}

// Delete removes the pet with the given id. Deleting a missing pet is not an
// error; the returned count is 0.
func (s *petService) Delete(id int64) (int64, error) {
	affected, err := s.Repo.DeletePet(id)
	if err != nil {
		logging.Log.Errorf("PetService: Failed to delete pet %d: %v", id, err)
		return 0, translateError(err)
	}
	if affected > 0 {
		s.audit("pet.delete", id, nil)
	}
	return affected, nil
}

// DeleteAll removes every pet and returns how many were removed.
func (s *petService) DeleteAll() (int64, error) {
	removed, err := s.Repo.DeleteAllPets()
	if err != nil {
		logging.Log.Errorf("PetService: Failed to delete all pets: %v", err)
		return 0, translateError(err)
	}
	s.Auditor.Log(context.Background(), "pet.delete_all", s.Actor, models.PetsTable, map[string]interface{}{"removed": removed})
	return removed, nil
}

// Count returns the number of stored pets.
func (s *petService) Count() (int, error) {
	count, err := s.Repo.CountPets()
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// InsertDummyPet stores the sample pet used to try out the catalog.
func (s *petService) InsertDummyPet() (int64, error) {
	return s.Create(DummyPet)
}

// Seed validates every input first and then stores them all in one
// transaction. Either all pets are stored or none are.
func (s *petService) Seed(inputs []PetInput) ([]int64, error) {
	pets := make([]models.Pet, 0, len(inputs))
	for i, input := range inputs {
		pet, err := buildPet(input)
		if err != nil {
			return nil, fmt.Errorf("pet #%d: %w", i+1, err)
		}
		pets = append(pets, pet)
	}

	tx, err := s.Repo.BeginTx()
	if err != nil {
		return nil, translateError(err)
	}
	defer tx.Rollback()

	ids := make([]int64, 0, len(pets))
	for _, pet := range pets {
		id, err := tx.InsertPetInTx(pet)
		if err != nil {
			logging.Log.Errorf("PetService: Failed to seed pet '%s': %v", pet.Name, err)
			return nil, translateError(err)
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, translateError(err)
	}

	s.Auditor.Log(context.Background(), "pet.seed", s.Actor, models.PetsTable, map[string]interface{}{"count": len(ids)})
	return ids, nil
}

// Repair resets corrupt gender and weight values and returns how many rows changed.
func (s *petService) Repair() (int, error) {
	fixed, err := s.Repo.FixCorruptPets()
	if err != nil {
		return 0, translateError(err)
	}
	if fixed > 0 {
		s.Auditor.Log(context.Background(), "pet.repair", s.Actor, models.PetsTable, map[string]interface{}{"fixed": fixed})
	}
	return fixed, nil
}

func (s *petService) audit(action string, id int64, details map[string]interface{}) {
	s.Auditor.Log(context.Background(), action, s.Actor, fmt.Sprintf("Pet:%d", id), details)
}
