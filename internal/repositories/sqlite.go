package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/readlist/internal/models"
	"github.com/desertthunder/readlist/internal/shared"
)

const (
	bookTable  = "book"
	videoTable = "video"
)

// SQLiteStore implements [Store] on top of the book and video tables.
//
// The store owns its *sql.DB and closes it on Close. All user input goes through query parameters.
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
	closed bool
}

// NewSQLiteStore creates a new SQLiteStore over db, creating the tables when they don't exist yet.
func NewSQLiteStore(db *sql.DB, logger *log.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	if err := shared.EnsureSchema(db); err != nil {
		return nil, fmt.Errorf("%w: failed to ensure schema: %w", shared.ErrStorage, err)
	}

	return &SQLiteStore{db: db, logger: shared.WithLogger(logger, "backend", BackendSQLite)}, nil
}

// OpenSQLiteStore opens (or creates) the database at path with driver and wraps it in a [SQLiteStore].
//
// Pass ":memory:" as path for an ephemeral database.
func OpenSQLiteStore(driver, path string, logger *log.Logger) (*SQLiteStore, error) {
	db, err := shared.NewDatabase(driver, path)
	if err != nil {
		return nil, err
	}

	store, err := NewSQLiteStore(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// CreateBook inserts a new book row and returns it with the id SQLite assigned
func (s *SQLiteStore) CreateBook(title, comment, author, isbn string) (models.Book, error) {
	if s.closed {
		return models.Book{}, shared.ErrStoreClosed
	}

	query := `INSERT INTO book (title, comment, author, ISBN) VALUES (?, ?, ?, ?)`

	result, err := s.db.Exec(query, title, comment, author, isbn)
	if err != nil {
		return models.Book{}, s.fail("insert book", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Book{}, s.fail("read book id", err)
	}

	return models.Book{ID: id, Title: title, Comment: comment, Author: author, ISBN: isbn}, nil
}

// CreateVideo inserts a new video row and returns it with the id SQLite assigned
func (s *SQLiteStore) CreateVideo(title, comment, url, duration string) (models.Video, error) {
	if s.closed {
		return models.Video{}, shared.ErrStoreClosed
	}

	query := `INSERT INTO video (title, comment, url, duration) VALUES (?, ?, ?, ?)`

	result, err := s.db.Exec(query, title, comment, url, duration)
	if err != nil {
		return models.Video{}, s.fail("insert video", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Video{}, s.fail("read video id", err)
	}

	return models.Video{ID: id, Title: title, Comment: comment, URL: url, Duration: duration}, nil
}

// Books retrieves all books ordered by id
func (s *SQLiteStore) Books() ([]models.Book, error) {
	books := []models.Book{}
	if s.closed {
		return books, shared.ErrStoreClosed
	}

	rows, err := s.db.Query(`SELECT id, title, comment, author, ISBN FROM book ORDER BY id ASC`)
	if err != nil {
		return books, s.fail("query books", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                           int64
			title, comment, author, isbn sql.NullString
		)

		if err := rows.Scan(&id, &title, &comment, &author, &isbn); err != nil {
			return []models.Book{}, s.fail("scan book", err)
		}

		books = append(books, models.Book{
			ID:      id,
			Title:   title.String,
			Comment: comment.String,
			Author:  author.String,
			ISBN:    isbn.String,
		})
	}

	if err := rows.Err(); err != nil {
		return []models.Book{}, s.fail("iterate books", err)
	}

	return books, nil
}

// Videos retrieves all videos ordered by id
func (s *SQLiteStore) Videos() ([]models.Video, error) {
	videos := []models.Video{}
	if s.closed {
		return videos, shared.ErrStoreClosed
	}

	rows, err := s.db.Query(`SELECT id, title, comment, url, duration FROM video ORDER BY id ASC`)
	if err != nil {
		return videos, s.fail("query videos", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                            int64
			title, comment, url, duration sql.NullString
		)

		if err := rows.Scan(&id, &title, &comment, &url, &duration); err != nil {
			return []models.Video{}, s.fail("scan video", err)
		}

		videos = append(videos, models.Video{
			ID:       id,
			Title:    title.String,
			Comment:  comment.String,
			URL:      url.String,
			Duration: duration.String,
		})
	}

	if err := rows.Err(); err != nil {
		return []models.Video{}, s.fail("iterate videos", err)
	}

	return videos, nil
}

// UpdateBook modifies an existing book row
func (s *SQLiteStore) UpdateBook(book models.Book) error {
	if s.closed {
		return shared.ErrStoreClosed
	}

	query := `UPDATE book SET title = ?, comment = ?, author = ?, ISBN = ? WHERE id = ?`

	result, err := s.db.Exec(query, book.Title, book.Comment, book.Author, book.ISBN, book.ID)
	if err != nil {
		return s.fail("update book", err)
	}

	return s.expectRow(result, book.Ref())
}

// UpdateVideo modifies an existing video row
func (s *SQLiteStore) UpdateVideo(video models.Video) error {
	if s.closed {
		return shared.ErrStoreClosed
	}

	query := `UPDATE video SET title = ?, comment = ?, url = ?, duration = ? WHERE id = ?`

	result, err := s.db.Exec(query, video.Title, video.Comment, video.URL, video.Duration, video.ID)
	if err != nil {
		return s.fail("update video", err)
	}

	return s.expectRow(result, video.Ref())
}

// DeleteBook removes a book row by id
func (s *SQLiteStore) DeleteBook(id int64) error {
	return s.deleteRow(bookTable, models.Ref{Kind: models.KindBook, ID: id})
}

// DeleteVideo removes a video row by id
func (s *SQLiteStore) DeleteVideo(id int64) error {
	return s.deleteRow(videoTable, models.Ref{Kind: models.KindVideo, ID: id})
}

// Close releases the database connection. Calling it again is a no-op.
func (s *SQLiteStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.db.Close(); err != nil {
		return s.fail("close database", err)
	}
	return nil
}

// deleteRow checks the row exists before deleting so a missing id is reported as [shared.ErrNotFound].
//
// table is always one of the package constants, never user input.
func (s *SQLiteStore) deleteRow(table string, ref models.Ref) error {
	if s.closed {
		return shared.ErrStoreClosed
	}

	exists, err := s.exists(table, ref.ID)
	if err != nil {
		return s.fail("check "+table, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, ref)
	}

	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), ref.ID); err != nil {
		return s.fail("delete "+table, err)
	}

	return nil
}

func (s *SQLiteStore) exists(table string, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = ?)", table), id).Scan(&exists)
	return exists, err
}

func (s *SQLiteStore) expectRow(result sql.Result, ref models.Ref) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return s.fail("get affected rows", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, ref)
	}
	return nil
}

// fail logs err and converts it into an error wrapping the matching sentinel.
func (s *SQLiteStore) fail(op string, err error) error {
	if isUniqueViolation(err) {
		s.logger.Warn("constraint violation", "op", op, "error", err)
		return fmt.Errorf("%w: %s", shared.ErrDuplicateTitle, op)
	}

	s.logger.Error("storage failure", "op", op, "error", err)
	return fmt.Errorf("%w: failed to %s: %w", shared.ErrStorage, op, err)
}

// isUniqueViolation matches the constraint message reported by both SQLite drivers.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}
