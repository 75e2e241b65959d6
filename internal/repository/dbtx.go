// filepath: internal/repository/dbtx.go
package repository

import (
	"database/sql"
	"fmt"

	"petsapp/internal/models"
	"petsapp/internal/shared"

	"github.com/Masterminds/squirrel"
)

// Tx is a wrapper around *sql.Tx that provides transactional database operations.
type Tx struct {
	*sql.Tx
	builder squirrel.StatementBuilderType
}

// BeginTx starts a transaction on the pets database.
func (s *Repository) BeginTx() (*Tx, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %w", shared.ErrWriteFailed, err)
	}
	return &Tx{Tx: tx, builder: s.Builder}, nil
}

// InsertPetInTx inserts a pet within a transaction and returns its new id.
func (tx *Tx) InsertPetInTx(pet models.Pet) (int64, error) {
	query, args, err := tx.builder.Insert(models.PetsTable).
		Columns(models.ColumnName, models.ColumnBreed, models.ColumnGender, models.ColumnWeight).
		Values(pet.Name, pet.Breed, int(pet.Gender), pet.Weight).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: build insert: %w", shared.ErrWriteFailed, err)
	}

	res, err := tx.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: insert pet: %w", shared.ErrWriteFailed, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: read new id: %w", shared.ErrWriteFailed, err)
	}
	return id, nil
}

// Commit commits the transaction, reporting failures as write errors.
func (tx *Tx) Commit() error {
	if err := tx.Tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", shared.ErrWriteFailed, err)
	}
	return nil
}
