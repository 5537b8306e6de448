package dao

import "gorm.io/gorm"

// InitTables creates the schema with GORM's AutoMigrate. Production databases are
// migrated with the SQL files in internal/db/migrations instead.
func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&UserFollow{},
		&Preferences{},
		&Category{},
		&Event{},
		&EventFavorite{},
		&Registration{},
		&Comment{},
		&CommentLike{},
	)
}
