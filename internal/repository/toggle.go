package repository

import (
	"context"

	"gorm.io/gorm"
)

// ToggleOutcome reports what a toggleAssociation call did.
type ToggleOutcome int

const (
	ToggleCreated ToggleOutcome = iota
	ToggleRemoved
	ToggleSwitched
)

// toggleAssociation implements the recurring "look up the join row for
// (actor, target), then create/flip/delete" pattern shared by article
// votes and comment votes.
//
// If no row matches query/args, fresh is created. If a row exists and
// same reports the requested value matches it, the row is deleted
// (toggle off). Otherwise overwrite mutates the row in place and it is
// saved.
func toggleAssociation[T any](ctx context.Context, db *gorm.DB, query string, args []any, fresh *T, same func(existing *T) bool, overwrite func(existing *T)) (ToggleOutcome, *T, error) {
	// Find with a slice avoids gorm's "record not found" log noise.
	var existing []T
	err := db.WithContext(ctx).
		Where(query, args...).
		Limit(1).
		Find(&existing).Error
	if err != nil {
		return 0, nil, err
	}

	if len(existing) == 0 {
		if err := db.WithContext(ctx).Create(fresh).Error; err != nil {
			return 0, nil, err
		}
		return ToggleCreated, fresh, nil
	}

	record := existing[0]
	if same(&record) {
		if err := db.WithContext(ctx).Delete(&record).Error; err != nil {
			return 0, nil, err
		}
		return ToggleRemoved, &record, nil
	}

	overwrite(&record)
	if err := db.WithContext(ctx).Save(&record).Error; err != nil {
		return 0, nil, err
	}
	return ToggleSwitched, &record, nil
}
