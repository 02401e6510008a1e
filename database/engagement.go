package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/unified-blog-backend/models"
)

// toggleLike flips userID's membership in the like set of the row with id.
// The row is read with SELECT ... FOR UPDATE and only the liked_by column is
// written, all inside one transaction, so concurrent toggles on the same row
// apply one after another.
func toggleLike[T any, PT interface {
	*T
	models.Engageable
}](ctx context.Context, db *gorm.DB, id, userID uuid.UUID) (found, liked bool, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row T
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		likes := PT(&row).Likes()
		liked = likes.Toggle(userID)
		return tx.Model(PT(&row)).UpdateColumn("liked_by", *likes).Error
	})
	if err != nil {
		return false, false, err
	}
	return found, liked, nil
}
