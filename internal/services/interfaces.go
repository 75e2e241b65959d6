// filepath: internal/services/interfaces.go
package services

import (
	"context"
	"iter"

	"petsapp/internal/models"
)

// Auditor defines the interface for recording write events.
type Auditor interface {
	// Log records an event.
	// action: what happened (e.g., "pet.create", "pet.delete")
	// actor: who did it
	// resource: what was affected (e.g., "Pet:7")
	// details: structured metadata about the event
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}

// InfoService defines the interface for the info service.
type InfoService interface {
	GetInfo() (models.Info, error)
	Close() error
}

// PetService is the typed, validating interface to the pets table.
// It is the only caller of the repository.
type PetService interface {
	Create(input PetInput) (int64, error)
	List() iter.Seq2[models.Pet, error]
	ListAll() ([]models.Pet, error)
	Get(id int64) (*models.Pet, error)
	Update(id int64, update PetUpdate) error
	Delete(id int64) (int64, error)
	DeleteAll() (int64, error)
	Count() (int, error)
	InsertDummyPet() (int64, error)
	Seed(inputs []PetInput) ([]int64, error)
	Repair() (int, error)
	Close() error
}

// PetInput carries raw user input for creating a pet.
type PetInput struct {
	Name       string
	Breed      string
	Gender     models.Gender
	WeightText string
}

// PetUpdate carries the fields to change. Nil fields keep their stored value.
type PetUpdate struct {
	Name       *string
	Breed      *string
	Gender     *models.Gender
	WeightText *string
}

// partial reports whether the stored row is needed to fill in missing fields.
func (u PetUpdate) partial() bool {
	return u.Name == nil || u.Breed == nil || u.Gender == nil || u.WeightText == nil
}
