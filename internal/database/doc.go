// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, migrations, health ping
//	└── vocabulary/      # Words, pronunciations and stage words
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./wordbook.db")
//	repo := vocabulary.NewRepository(db.DB)
//
//	word, ok, err := repo.FindWordByID(ctx, "8f7d1b9e3a2c5f6e")
//	pronunciations, err := word.Pronunciations.Load(ctx)
//
// # Associations
//
// Children (pronunciations, stage words) carry the word_id foreign key and
// nothing else. A word's child collections are loaded on demand through the
// repository, never preloaded, and a load can fail after the word itself was
// returned successfully.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check in internal/interfaces
package database
