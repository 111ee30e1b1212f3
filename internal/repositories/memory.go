package repositories

import (
	"fmt"
	"slices"

	"github.com/desertthunder/readlist/internal/models"
	"github.com/desertthunder/readlist/internal/shared"
)

// MemoryStore implements [Store] with two ordered slices.
//
// Ids come from per-kind counters, so a deleted id is never handed out again.
// Titles are not checked for uniqueness.
type MemoryStore struct {
	books       []models.Book
	videos      []models.Video
	lastBookID  int64
	lastVideoID int64
	closed      bool
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{books: []models.Book{}, videos: []models.Video{}}
}

func (m *MemoryStore) CreateBook(title, comment, author, isbn string) (models.Book, error) {
	if m.closed {
		return models.Book{}, shared.ErrStoreClosed
	}

	m.lastBookID++
	book := models.Book{ID: m.lastBookID, Title: title, Comment: comment, Author: author, ISBN: isbn}
	m.books = append(m.books, book)
	return book, nil
}

func (m *MemoryStore) CreateVideo(title, comment, url, duration string) (models.Video, error) {
	if m.closed {
		return models.Video{}, shared.ErrStoreClosed
	}

	m.lastVideoID++
	video := models.Video{ID: m.lastVideoID, Title: title, Comment: comment, URL: url, Duration: duration}
	m.videos = append(m.videos, video)
	return video, nil
}

// Books returns a copy of the stored books
func (m *MemoryStore) Books() ([]models.Book, error) {
	if m.closed {
		return []models.Book{}, shared.ErrStoreClosed
	}
	return slices.Clone(m.books), nil
}

// Videos returns a copy of the stored videos
func (m *MemoryStore) Videos() ([]models.Video, error) {
	if m.closed {
		return []models.Video{}, shared.ErrStoreClosed
	}
	return slices.Clone(m.videos), nil
}

func (m *MemoryStore) UpdateBook(book models.Book) error {
	if m.closed {
		return shared.ErrStoreClosed
	}

	i := slices.IndexFunc(m.books, func(b models.Book) bool { return b.ID == book.ID })
	if i < 0 {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, book.Ref())
	}
	m.books[i] = book
	return nil
}

func (m *MemoryStore) UpdateVideo(video models.Video) error {
	if m.closed {
		return shared.ErrStoreClosed
	}

	i := slices.IndexFunc(m.videos, func(v models.Video) bool { return v.ID == video.ID })
	if i < 0 {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, video.Ref())
	}
	m.videos[i] = video
	return nil
}

func (m *MemoryStore) DeleteBook(id int64) error {
	if m.closed {
		return shared.ErrStoreClosed
	}

	i := slices.IndexFunc(m.books, func(b models.Book) bool { return b.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, models.Ref{Kind: models.KindBook, ID: id})
	}
	m.books = slices.Delete(m.books, i, i+1)
	return nil
}

func (m *MemoryStore) DeleteVideo(id int64) error {
	if m.closed {
		return shared.ErrStoreClosed
	}

	i := slices.IndexFunc(m.videos, func(v models.Video) bool { return v.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, models.Ref{Kind: models.KindVideo, ID: id})
	}
	m.videos = slices.Delete(m.videos, i, i+1)
	return nil
}

// Close marks the store closed. The data is kept but no longer reachable.
func (m *MemoryStore) Close() error {
	m.closed = true
	return nil
}
