package database

import (
	"fmt"

	"gorm.io/gorm"
)

// EnsureIndexes creates the indexes the schema relies on. Statements use
// IF NOT EXISTS so the call is safe to repeat on every startup.
func EnsureIndexes(db *gorm.DB) error {
	statements := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_email ON profiles(email);",
		"CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts(author_id);",
		"CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC);",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
