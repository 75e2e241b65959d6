// filepath: internal/services/pet_service_test.go
package services_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"petsapp/internal/config"
	"petsapp/internal/models"
	"petsapp/internal/repository"
	"petsapp/internal/services"
	"petsapp/internal/services/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPetService(t *testing.T) (services.PetService, *mocks.MockAuditor, func()) {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), models.DefaultDatabaseName)},
		CacheTTL: time.Minute,
	}

	auditor := new(mocks.MockAuditor)
	auditor.On("Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	svc, err := services.OpenPetService(cfg, auditor, "test")
	require.NoError(t, err)

	cleanup := func() {
		svc.Close()
	}
	return svc, auditor, cleanup
}

func ptr[T any](v T) *T {
	return &v
}

func TestPetService_Scenario(t *testing.T) {
	svc, auditor, cleanup := setupPetService(t)
	defer cleanup()

	id, err := svc.Create(services.PetInput{Name: "Toto", Breed: "Terrier", Gender: models.GenderMale, WeightText: "7"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	pet, err := svc.Get(1)
	require.NoError(t, err)
	assert.Equal(t, models.Pet{ID: 1, Name: "Toto", Breed: "Terrier", Gender: models.GenderMale, Weight: 7}, *pet)

	require.NoError(t, svc.Update(1, services.PetUpdate{WeightText: ptr("8")}))
	pet, err = svc.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 8, pet.Weight)
	assert.Equal(t, "Toto", pet.Name, "Omitted fields must keep their stored value")

	affected, err := svc.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = svc.Get(1)
	assert.ErrorIs(t, err, services.ErrNotFound)

	auditor.AssertCalled(t, "Log", mock.Anything, "pet.create", "test", "Pet:1", mock.Anything)
	auditor.AssertCalled(t, "Log", mock.Anything, "pet.update", "test", "Pet:1", mock.Anything)
	auditor.AssertCalled(t, "Log", mock.Anything, "pet.delete", "test", "Pet:1", mock.Anything)
}

func TestPetService_CreateRoundTrip(t *testing.T) {
	svc, _, cleanup := setupPetService(t)
	defer cleanup()

	inputs := []services.PetInput{
		{Name: "Rex", Breed: "Boxer", Gender: models.GenderMale, WeightText: "30"},
		{Name: "  Bella ", Breed: " Poodle", Gender: models.GenderFemale, WeightText: "12"},
		{Name: "Mystery", Breed: "Mixed", Gender: models.GenderUnknown, WeightText: ""},
	}
	want := []models.Pet{
		{Name: "Rex", Breed: "Boxer", Gender: models.GenderMale, Weight: 30},
		{Name: "Bella", Breed: "Poodle", Gender: models.GenderFemale, Weight: 12},
		{Name: "Mystery", Breed: "Mixed", Gender: models.GenderUnknown, Weight: 0},
	}

	for i, input := range inputs {
		id, err := svc.Create(input)
		require.NoError(t, err)

		got, err := svc.Get(id)
		require.NoError(t, err)

		expected := want[i]
		expected.ID = id
		assert.Equal(t, expected, *got)
	}
}

func TestPetService_CreateValidation(t *testing.T) {
	svc, auditor, cleanup := setupPetService(t)
	defer cleanup()

	tests := []struct {
		name  string
		input services.PetInput
	}{
		{"EmptyName", services.PetInput{Name: "", Breed: "Terrier"}},
		{"BlankName", services.PetInput{Name: "   ", Breed: "Terrier"}},
		{"EmptyBreed", services.PetInput{Name: "Toto", Breed: ""}},
		{"BlankBreed", services.PetInput{Name: "Toto", Breed: "\t"}},
		{"UnparseableWeight", services.PetInput{Name: "Toto", Breed: "Terrier", WeightText: "heavy"}},
		{"NegativeWeight", services.PetInput{Name: "Toto", Breed: "Terrier", WeightText: "-3"}},
		{"BadGender", services.PetInput{Name: "Toto", Breed: "Terrier", Gender: models.Gender(5)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(tc.input)
			assert.ErrorIs(t, err, services.ErrValidation)

			count, err := svc.Count()
			require.NoError(t, err)
			assert.Equal(t, 0, count, "A rejected create must not write")
		})
	}

	auditor.AssertNotCalled(t, "Log", mock.Anything, "pet.create", mock.Anything, mock.Anything, mock.Anything)
}

func TestPetService_CreateReportsAllProblems(t *testing.T) {
	svc, _, cleanup := setupPetService(t)
	defer cleanup()

	_, err := svc.Create(services.PetInput{WeightText: "x"})
	require.ErrorIs(t, err, services.ErrValidation)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "breed is required")
	assert.Contains(t, err.Error(), "invalid weight")
}

func TestPetService_ListDistinctIDs(t *testing.T) {
	svc, _, cleanup := setupPetService(t)
	defer cleanup()

	const n = 12
	for i := 0; i < n; i++ {
		_, err := svc.Create(services.PetInput{Name: "Pet", Breed: "Mutt", WeightText: "1"})
		require.NoError(t, err)
	}

	pets, err := svc.ListAll()
	require.NoError(t, err)
	assert.Len(t, pets, n)

	seen := make(map[int64]bool)
	for _, pet := range pets {
		assert.False(t, seen[pet.ID], "duplicate id %d", pet.ID)
		seen[pet.ID] = true
	}
}

func TestPetService_ListIsRestartableAndBreakable(t *testing.T) {
	svc, _, cleanup := setupPetService(t)
	defer cleanup()

	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.Create(services.PetInput{Name: name, Breed: "Mutt"})
		require.NoError(t, err)
	}

	seq := svc.List()

	var first []string
	for pet, err := range seq {
		require.NoError(t, err)
		first = append(first, pet.Name)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"A", "B"}, first)

	var second []string
	for pet, err := range seq {
		require.NoError(t, err)
		second = append(second, pet.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, second, "Each range runs a fresh query")

	// A write after a broken loop must not be blocked by a leaked cursor.
	_, err := svc.Create(services.PetInput{Name: "D", Breed: "Mutt"})
	assert.NoError(t, err)
}

func TestPetService_ListEmpty(t *testing.T) {
	svc, _, cleanup := setupPetService(t)
	defer cleanup()

	pets, err := svc.ListAll()
	require.NoError(t, err)
	assert.NotNil(t, pets)
	assert.Empty(t, pets)
}

func TestPetService_UpdateAfterDelete(t *testing.T) {
	svc, _, cleanup := setupPetService(t)
	defer cleanup()

	id, err := svc.Create(services.PetInput{Name: "Toto", Breed: "Terrier", Gender: models.GenderMale, WeightText: "7"})
	require.NoError(t, err)
	_, err = svc.Delete(id)
	require.NoError(t, err)

	t.Run("Partial", func(t *testing.T) {
		err := svc.Update(id, services.PetUpdate{WeightText: ptr("8")})
		assert.ErrorIs(t, err, services.ErrUpdateFailed)
	})

	t.Run("Full", func(t *testing.T) {
		err := svc.Update(id, services.PetUpdate{
			Name:       ptr("Toto"),
			Breed:      ptr("Terrier"),
			Gender:     ptr(models.GenderMale),
			WeightText: ptr("8"),
		})
		assert.ErrorIs(t, err, services.ErrUpdateFailed)
	})

	pets, err := svc.ListAll()
	require.NoError(t, err)
	assert.Empty(t, pets)
}

func TestPetService_UpdateValidation(t *testing.T) {
	svc, _, cleanup := setupPetService(t)
	defer cleanup()

	id, err := svc.Create(services.PetInput{Name: "Toto", Breed: "Terrier", WeightText: "7"})
	require.NoError(t, err)

	err = svc.Update(id, services.PetUpdate{Name: ptr("  ")})
	assert.ErrorIs(t, err, services.ErrValidation)

	err = svc.Update(id, services.PetUpdate{WeightText: ptr("seven")})
	assert.ErrorIs(t, err, services.ErrValidation)

	pet, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Toto", pet.Name)
	assert.Equal(t, 7, pet.Weight)
}

func TestPetService_DeleteTwiceIsNoOp(t *testing.T) {
	svc, _, cleanup := setupPetService(t)
	defer cleanup()

	keep, err := svc.Create(services.PetInput{Name: "Keep", Breed: "Mutt"})
	require.NoError(t, err)
	gone, err := svc.Create(services.PetInput{Name: "Gone", Breed: "Mutt"})
	require.NoError(t, err)

	affected, err := svc.Delete(gone)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = svc.Delete(gone)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	count, err := svc.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = svc.Get(keep)
	assert.NoError(t, err)
}

func TestPetService_DeleteAll(t *testing.T) {
	svc, auditor, cleanup := setupPetService(t)
	defer cleanup()

	for i := 0; i < 3; i++ {
		_, err := svc.InsertDummyPet()
		require.NoError(t, err)
	}

	removed, err := svc.DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	count, err := svc.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	id, err := svc.InsertDummyPet()
	require.NoError(t, err)
	assert.Equal(t, int64(4), id, "Ids are never reused")

	auditor.AssertCalled(t, "Log", mock.Anything, "pet.delete_all", "test", models.PetsTable, map[string]interface{}{"removed": int64(3)})
}

func TestPetService_InsertDummyPet(t *testing.T) {
	svc, _, cleanup := setupPetService(t)
	defer cleanup()

	id, err := svc.InsertDummyPet()
	require.NoError(t, err)

	pet, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, models.Pet{ID: id, Name: "Toto", Breed: "Terrier", Gender: models.GenderMale, Weight: 7}, *pet)
}

func TestPetService_Seed(t *testing.T) {
	svc, _, cleanup := setupPetService(t)
	defer cleanup()

	t.Run("AllOrNothing", func(t *testing.T) {
		_, err := svc.Seed([]services.PetInput{
			{Name: "Ok", Breed: "Mutt"},
			{Name: "", Breed: "Mutt"},
		})
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Contains(t, err.Error(), "pet #2")

		count, err := svc.Count()
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("Success", func(t *testing.T) {
		ids, err := svc.Seed([]services.PetInput{
			{Name: "Rex", Breed: "Boxer", Gender: models.GenderMale, WeightText: "30"},
			{Name: "Bella", Breed: "Poodle", Gender: models.GenderFemale, WeightText: "12"},
		})
		require.NoError(t, err)
		assert.Len(t, ids, 2)

		pets, err := svc.ListAll()
		require.NoError(t, err)
		require.Len(t, pets, 2)
		assert.Equal(t, "Rex", pets[0].Name)
		assert.Equal(t, "Bella", pets[1].Name)
	})
}

func TestPetService_Repair(t *testing.T) {
	svc, _, cleanup := setupPetService(t)
	defer cleanup()

	_, err := svc.InsertDummyPet()
	require.NoError(t, err)

	fixed, err := svc.Repair()
	require.NoError(t, err)
	assert.Equal(t, 0, fixed, "Clean rows are left alone")
}

func TestPetService_StorageUnavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cfg := &config.Config{Database: config.DatabaseConfig{Path: filepath.Join(blocker, "shelter.db")}}
	_, err := services.OpenPetService(cfg, new(mocks.MockAuditor), "test")
	assert.ErrorIs(t, err, services.ErrStorageUnavailable)
}

func TestPetService_WriteAfterClose(t *testing.T) {
	svc, _, _ := setupPetService(t)
	require.NoError(t, svc.Close())

	_, err := svc.Create(services.PetInput{Name: "Toto", Breed: "Terrier"})
	assert.ErrorIs(t, err, services.ErrWrite)

	_, err = svc.Count()
	assert.ErrorIs(t, err, services.ErrStorageUnavailable)
}

func TestPetService_EditAndRepairCorruptRow(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), models.DefaultDatabaseName)},
	}

	// Rows written by another program can hold values this application never writes.
	raw, err := repository.Open(cfg)
	require.NoError(t, err)
	_, err = raw.DB.Exec("INSERT INTO pets (name, breed, gender, weight) VALUES ('Odd', 'Mutt', 9, -2)")
	require.NoError(t, err)
	_, err = raw.DB.Exec("INSERT INTO pets (name, breed, gender, weight) VALUES ('Odder', 'Mutt', 5, 3)")
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	auditor := new(mocks.MockAuditor)
	auditor.On("Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	svc, err := services.OpenPetService(cfg, auditor, "test")
	require.NoError(t, err)
	defer svc.Close()

	pet, err := svc.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", pet.Gender.String())

	require.NoError(t, svc.Update(1, services.PetUpdate{Name: ptr("Even")}))
	pet, err = svc.Get(1)
	require.NoError(t, err)
	assert.Equal(t, models.Pet{ID: 1, Name: "Even", Breed: "Mutt", Gender: models.GenderUnknown, Weight: 0}, *pet)

	fixed, err := svc.Repair()
	require.NoError(t, err)
	assert.Equal(t, 1, fixed, "only the untouched row still needed fixing")

	pet, err = svc.Get(2)
	require.NoError(t, err)
	assert.Equal(t, models.GenderUnknown, pet.Gender)
	assert.Equal(t, 3, pet.Weight)
	auditor.AssertCalled(t, "Log", mock.Anything, "pet.repair", "test", models.PetsTable, map[string]interface{}{"fixed": 1})
}

func TestPetService_TwoInstancesShareFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), models.DefaultDatabaseName)

	open := func(t *testing.T, ttl string) services.PetService {
		t.Helper()
		cfg := &config.Config{
			Database: config.DatabaseConfig{Path: dbPath},
			Cache:    config.CacheConfig{TTL: ttl},
		}
		require.NoError(t, cfg.ParseAndValidate())
		svc, err := services.OpenPetService(cfg, nil, "test")
		require.NoError(t, err)
		t.Cleanup(func() { svc.Close() })
		return svc
	}

	t.Run("DefaultConfigSeesOtherWrites", func(t *testing.T) {
		a, b := open(t, ""), open(t, "")

		id, err := a.Create(services.PetInput{Name: "Toto", Breed: "Terrier", Gender: models.GenderMale, WeightText: "7"})
		require.NoError(t, err)
		pet, err := a.Get(id)
		require.NoError(t, err)
		assert.Equal(t, 7, pet.Weight)

		require.NoError(t, b.Update(id, services.PetUpdate{WeightText: ptr("9")}))
		pet, err = a.Get(id)
		require.NoError(t, err)
		assert.Equal(t, 9, pet.Weight)

		_, err = b.Delete(id)
		require.NoError(t, err)
		_, err = a.Get(id)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("CachedInstanceMergesFreshRow", func(t *testing.T) {
		cached, other := open(t, "1m"), open(t, "")

		id, err := cached.Create(services.PetInput{Name: "Bella", Breed: "Poodle", Gender: models.GenderFemale, WeightText: "12"})
		require.NoError(t, err)
		_, err = cached.Get(id)
		require.NoError(t, err)

		require.NoError(t, other.Update(id, services.PetUpdate{WeightText: ptr("14")}))
		require.NoError(t, cached.Update(id, services.PetUpdate{Name: ptr("Belle")}))

		pet, err := other.Get(id)
		require.NoError(t, err)
		assert.Equal(t, models.Pet{ID: id, Name: "Belle", Breed: "Poodle", Gender: models.GenderFemale, Weight: 14}, *pet,
			"A partial edit must not write back fields from a cached copy")
	})
}

func TestPetService_NilAuditor(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), models.DefaultDatabaseName)},
	}
	repo, err := repository.Open(cfg)
	require.NoError(t, err)

	svc := services.NewPetService(repo, nil, "")
	defer svc.Close()

	assert.NotPanics(t, func() {
		id, err := svc.InsertDummyPet()
		require.NoError(t, err)
		require.NoError(t, svc.Update(id, services.PetUpdate{Name: ptr("Rex")}))
		_, err = svc.Seed([]services.PetInput{{Name: "Bella", Breed: "Poodle"}})
		require.NoError(t, err)
		_, err = svc.Delete(id)
		require.NoError(t, err)
		_, err = svc.Repair()
		require.NoError(t, err)
		_, err = svc.DeleteAll()
		require.NoError(t, err)
	})
}
