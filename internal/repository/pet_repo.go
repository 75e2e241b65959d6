// filepath: internal/repository/pet_repo.go
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"petsapp/internal/logging"
	"petsapp/internal/models"
	"petsapp/internal/shared"

	"github.com/Masterminds/squirrel"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (models.Pet, error) {
	var pet models.Pet
	var gender int
	if err := row.Scan(&pet.ID, &pet.Name, &pet.Breed, &gender, &pet.Weight); err != nil {
		return models.Pet{}, err
	}
	// Out-of-range codes are kept as stored; Gender.String shows them as Unknown.
	pet.Gender = models.Gender(gender)
	return pet, nil
}

// InsertPet appends a new row and returns the id assigned by SQLite.
func (s *Repository) InsertPet(pet models.Pet) (int64, error) {
	query, args, err := s.Builder.Insert(models.PetsTable).
		Columns(models.ColumnName, models.ColumnBreed, models.ColumnGender, models.ColumnWeight).
		Values(pet.Name, pet.Breed, int(pet.Gender), pet.Weight).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: build insert: %w", shared.ErrWriteFailed, err)
	}

	result, err := s.DB.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: insert pet: %w", shared.ErrWriteFailed, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: read new id: %w", shared.ErrWriteFailed, err)
	}

	logging.Log.Debugf("InsertPet: '%s' stored with ID %d", pet.Name, id)
	return id, nil
}

// QueryAllPets opens a forward-only cursor over every row, in storage order.
// The caller must Close the cursor; it also closes itself once exhausted.
func (s *Repository) QueryAllPets() (*PetCursor, error) {
	query, args, err := s.Builder.Select(models.PetColumns...).From(models.PetsTable).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pets: %w", err)
	}
	return &PetCursor{rows: rows}, nil
}

// QueryPetByID returns the row with the given id, or shared.ErrPetNotFound.
// With the cache enabled a hit is served without touching the file.
func (s *Repository) QueryPetByID(id int64) (*models.Pet, error) {
	if pet, found := s.cachedPet(id); found {
		return &pet, nil
	}

	logging.Log.Debugf("QueryPetByID: CACHE MISS for ID %d. Querying DB.", id)
	return s.LoadPetByID(id)
}

// LoadPetByID always reads the row from the file and refreshes the cache.
// Read-then-write paths use it so they never merge a stale cached row.
func (s *Repository) LoadPetByID(id int64) (*models.Pet, error) {
	query, args, err := s.Builder.Select(models.PetColumns...).
		From(models.PetsTable).
		Where(squirrel.Eq{models.ColumnID: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	pet, err := scanPet(s.DB.QueryRow(query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.invalidatePet(id)
			return nil, fmt.Errorf("pet %d: %w", id, shared.ErrPetNotFound)
		}
		return nil, fmt.Errorf("failed to query pet %d: %w", id, err)
	}

	s.cachePet(pet)
	return &pet, nil
}

// UpdatePet overwrites name, breed, gender and weight of the row with the given
// id and returns the number of rows affected (0 or 1).
func (s *Repository) UpdatePet(id int64, pet models.Pet) (int64, error) {
	query, args, err := s.Builder.Update(models.PetsTable).
		Set(models.ColumnName, pet.Name).
		Set(models.ColumnBreed, pet.Breed).
		Set(models.ColumnGender, int(pet.Gender)).
		Set(models.ColumnWeight, pet.Weight).
		Where(squirrel.Eq{models.ColumnID: id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: build update: %w", shared.ErrWriteFailed, err)
	}

	s.invalidatePet(id)
	result, err := s.DB.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: update pet %d: %w", shared.ErrWriteFailed, id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: update pet %d: %w", shared.ErrWriteFailed, id, err)
	}
	logging.Log.Debugf("UpdatePet: ID %d, %d row(s) affected", id, affected)
	return affected, nil
}

// DeletePet removes the row with the given id and returns the number of rows affected.
func (s *Repository) DeletePet(id int64) (int64, error) {
	query, args, err := s.Builder.Delete(models.PetsTable).
		Where(squirrel.Eq{models.ColumnID: id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: build delete: %w", shared.ErrWriteFailed, err)
	}

	s.invalidatePet(id)
	result, err := s.DB.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: delete pet %d: %w", shared.ErrWriteFailed, id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: delete pet %d: %w", shared.ErrWriteFailed, id, err)
	}
	logging.Log.Debugf("DeletePet: ID %d, %d row(s) affected", id, affected)
	return affected, nil
}

// DeleteAllPets empties the table. AUTOINCREMENT keeps ids from being reused afterwards.
func (s *Repository) DeleteAllPets() (int64, error) {
	query, args, err := s.Builder.Delete(models.PetsTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: build delete: %w", shared.ErrWriteFailed, err)
	}

	s.invalidateAll()
	result, err := s.DB.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: delete all pets: %w", shared.ErrWriteFailed, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: delete all pets: %w", shared.ErrWriteFailed, err)
	}
	return affected, nil
}

// CountPets returns the number of rows in the pets table.
func (s *Repository) CountPets() (int, error) {
	query, args, err := s.Builder.Select("COUNT(*)").From(models.PetsTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err := s.DB.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pets: %w", err)
	}
	return count, nil
}

// PetCursor is a lazy, forward-only sequence of pets. It cannot be rewound;
// call QueryAllPets again for a fresh pass.
type PetCursor struct {
	rows    *sql.Rows
	current models.Pet
	err     error
	closed  bool
}

// Next advances to the next pet. It returns false when the rows are exhausted
// or an error occurred; check Err afterwards.
func (c *PetCursor) Next() bool {
	if c.closed {
		return false
	}
	if !c.rows.Next() {
		c.err = c.rows.Err()
		c.Close()
		return false
	}

	pet, err := scanPet(c.rows)
	if err != nil {
		c.err = fmt.Errorf("failed to scan pet: %w", err)
		c.Close()
		return false
	}
	c.current = pet
	return true
}

// Pet returns the pet at the current position.
func (c *PetCursor) Pet() models.Pet {
	return c.current
}

// Err returns the error, if any, that ended the iteration.
func (c *PetCursor) Err() error {
	return c.err
}

// Close releases the underlying rows. It is safe to call more than once.
func (c *PetCursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rows.Close()
}
