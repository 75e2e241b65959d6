// filepath: internal/services/mocks/pet_mock.go
package mocks

import (
	"iter"

	"petsapp/internal/models"
	"petsapp/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockPetService is a mock implementation of services.PetService
type MockPetService struct {
	mock.Mock
}

// Compile-time check to ensure interface compliance
var _ services.PetService = (*MockPetService)(nil)

func (m *MockPetService) Create(input services.PetInput) (int64, error) {
	args := m.Called(input)
	return args.Get(0).(int64), args.Error(1)
}

// List replays the pets returned by ListAll, or the ListAll error.
func (m *MockPetService) List() iter.Seq2[models.Pet, error] {
	return func(yield func(models.Pet, error) bool) {
		pets, err := m.ListAll()
		if err != nil {
			yield(models.Pet{}, err)
			return
		}
		for _, pet := range pets {
			if !yield(pet, nil) {
				return
			}
		}
	}
}

func (m *MockPetService) ListAll() ([]models.Pet, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Pet), args.Error(1)
}

func (m *MockPetService) Get(id int64) (*models.Pet, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pet), args.Error(1)
}

func (m *MockPetService) Update(id int64, update services.PetUpdate) error {
	args := m.Called(id, update)
	return args.Error(0)
}

func (m *MockPetService) Delete(id int64) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPetService) DeleteAll() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPetService) Count() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockPetService) InsertDummyPet() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPetService) Seed(inputs []services.PetInput) ([]int64, error) {
	args := m.Called(inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockPetService) Repair() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockPetService) Close() error {
	args := m.Called()
	return args.Error(0)
}
