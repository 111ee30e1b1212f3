// package repositories provides persistence layer implementations for reading list entries.
package repositories

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/readlist/internal/models"
	"github.com/desertthunder/readlist/internal/shared"
)

// Supported values for [shared.DatabaseConfig.Backend].
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// DefaultPath is the database file used when none is configured.
const DefaultPath = "./readlist.db"

// BookStore persists [models.Book] records.
type BookStore interface {
	CreateBook(title, comment, author, isbn string) (models.Book, error) // CreateBook inserts a book and returns it with its assigned id
	Books() ([]models.Book, error)                                       // Books lists all books in insertion order
	UpdateBook(book models.Book) error                                   // UpdateBook replaces every mutable field of the book with book.ID
	DeleteBook(id int64) error                                           // DeleteBook removes the book with the given id
}

// VideoStore persists [models.Video] records.
type VideoStore interface {
	CreateVideo(title, comment, url, duration string) (models.Video, error) // CreateVideo inserts a video and returns it with its assigned id
	Videos() ([]models.Video, error)                                        // Videos lists all videos in insertion order
	UpdateVideo(video models.Video) error                                   // UpdateVideo replaces every mutable field of the video with video.ID
	DeleteVideo(id int64) error                                             // DeleteVideo removes the video with the given id
}

// Store is a complete backend. Close is idempotent; afterwards every operation fails with [shared.ErrStoreClosed].
type Store interface {
	BookStore
	VideoStore
	Close() error
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*BoltStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// Open creates the backend selected by cfg.Backend. An empty backend selects SQLite.
func Open(cfg shared.DatabaseConfig, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}

	switch strings.ToLower(cfg.Backend) {
	case "", BackendSQLite:
		db, err := shared.NewDatabase(cfg.Driver, path)
		if err != nil {
			return nil, err
		}
		if path != shared.MemoryPath {
			shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)
		}

		store, err := NewSQLiteStore(db, logger)
		if err != nil {
			db.Close()
			return nil, err
		}
		return store, nil
	case BackendBolt:
		return OpenBoltStore(path, cfg.Timeout(), logger)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownBackend, cfg.Backend)
	}
}
