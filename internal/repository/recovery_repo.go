// filepath: internal/repository/recovery_repo.go
package repository

import (
	"fmt"

	"petsapp/internal/logging"
	"petsapp/internal/models"
	"petsapp/internal/shared"

	"github.com/Masterminds/squirrel"
)

var validGenderCodes = []int{int(models.GenderUnknown), int(models.GenderMale), int(models.GenderFemale)}

// FixCorruptPets resets rows that break the data model: gender codes outside
// the defined set become Unknown and negative weights become 0.
// It returns the total number of rows fixed.
func (s *Repository) FixCorruptPets() (int, error) {
	tx, err := s.BeginTx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	fixes := []struct {
		label string
		query squirrel.UpdateBuilder
	}{
		{"gender", s.Builder.Update(models.PetsTable).
			Set(models.ColumnGender, int(models.GenderUnknown)).
			Where(squirrel.NotEq{models.ColumnGender: validGenderCodes})},
		{"weight", s.Builder.Update(models.PetsTable).
			Set(models.ColumnWeight, 0).
			Where(squirrel.Lt{models.ColumnWeight: 0})},
	}

	totalFixed := 0
	for _, fix := range fixes {
		query, args, err := fix.query.ToSql()
		if err != nil {
			return 0, fmt.Errorf("failed to build %s repair: %w", fix.label, err)
		}

		result, err := tx.Exec(query, args...)
		if err != nil {
			return 0, fmt.Errorf("%w: repair %s: %w", shared.ErrWriteFailed, fix.label, err)
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected > 0 {
			logging.Log.Infof("Fixed %d pet(s) with invalid %s", rowsAffected, fix.label)
			totalFixed += int(rowsAffected)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	s.invalidateAll()
	return totalFixed, nil
}
