package services

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/readlist/internal/models"
	"github.com/desertthunder/readlist/internal/repositories"
	"github.com/desertthunder/readlist/internal/shared"
)

// LibraryService validates and routes reading list operations to the stores.
type LibraryService struct {
	books  repositories.BookStore
	videos repositories.VideoStore
	policy Policy
	logger *log.Logger
}

// NewLibraryService creates a [LibraryService]. books and videos may be the same [repositories.Store].
func NewLibraryService(books repositories.BookStore, videos repositories.VideoStore, policy Policy, logger *log.Logger) *LibraryService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &LibraryService{
		books:  books,
		videos: videos,
		policy: policy,
		logger: shared.WithLogger(logger, "service", "library"),
	}
}

// NewLibraryFromStore creates a [LibraryService] backed by a single store.
func NewLibraryFromStore(store repositories.Store, policy Policy, logger *log.Logger) *LibraryService {
	return NewLibraryService(store, store, policy, logger)
}

// Policy returns the required-field policy in effect.
func (s *LibraryService) Policy() Policy {
	return s.policy
}

// CreateBook validates and stores a new book.
func (s *LibraryService) CreateBook(title, comment, author, isbn string) error {
	candidate := models.Book{Title: title, Comment: comment, Author: author, ISBN: isbn}
	if err := s.policy.CheckBook(candidate); err != nil {
		s.logger.Warn("book rejected", "title", title, "error", err)
		return err
	}

	book, err := s.books.CreateBook(title, comment, author, isbn)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	s.logger.Debug("book created", "id", book.ID, "title", book.Title)
	return nil
}

// CreateVideo validates and stores a new video.
func (s *LibraryService) CreateVideo(title, comment, url, duration string) error {
	candidate := models.Video{Title: title, Comment: comment, URL: url, Duration: duration}
	if err := s.policy.CheckVideo(candidate); err != nil {
		s.logger.Warn("video rejected", "title", title, "error", err)
		return err
	}

	video, err := s.videos.CreateVideo(title, comment, url, duration)
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	s.logger.Debug("video created", "id", video.ID, "title", video.Title)
	return nil
}

// Books returns all books in insertion order.
func (s *LibraryService) Books() ([]models.Book, error) {
	return s.books.Books()
}

// Videos returns all videos in insertion order.
func (s *LibraryService) Videos() ([]models.Video, error) {
	return s.videos.Videos()
}

// Entries returns all books followed by all videos.
func (s *LibraryService) Entries() ([]models.Entry, error) {
	books, err := s.books.Books()
	if err != nil {
		return []models.Entry{}, err
	}

	videos, err := s.videos.Videos()
	if err != nil {
		return []models.Entry{}, err
	}

	entries := make([]models.Entry, 0, len(books)+len(videos))
	for _, b := range books {
		entries = append(entries, b)
	}
	for _, v := range videos {
		entries = append(entries, v)
	}
	return entries, nil
}

// DeleteBook removes the book with the given id.
func (s *LibraryService) DeleteBook(id int64) error {
	if err := s.books.DeleteBook(id); err != nil {
		return fmt.Errorf("failed to delete book %d: %w", id, err)
	}
	s.logger.Debug("book deleted", "id", id)
	return nil
}

// DeleteVideo removes the video with the given id.
func (s *LibraryService) DeleteVideo(id int64) error {
	if err := s.videos.DeleteVideo(id); err != nil {
		return fmt.Errorf("failed to delete video %d: %w", id, err)
	}
	s.logger.Debug("video deleted", "id", id)
	return nil
}

// DeleteEntry removes entry from the store matching its kind.
func (s *LibraryService) DeleteEntry(entry models.Entry) error {
	switch e := entry.(type) {
	case models.Book:
		return s.DeleteBook(e.ID)
	case *models.Book:
		if e == nil {
			break
		}
		return s.DeleteBook(e.ID)
	case models.Video:
		return s.DeleteVideo(e.ID)
	case *models.Video:
		if e == nil {
			break
		}
		return s.DeleteVideo(e.ID)
	}
	return fmt.Errorf("%w: no entry to delete", shared.ErrInvalidInput)
}

// EditBook replaces every mutable field of the book with the given id.
func (s *LibraryService) EditBook(id int64, title, comment, author, isbn string) error {
	book := models.Book{ID: id, Title: title, Comment: comment, Author: author, ISBN: isbn}
	if err := s.policy.CheckBook(book); err != nil {
		s.logger.Warn("book edit rejected", "id", id, "error", err)
		return err
	}

	if err := s.books.UpdateBook(book); err != nil {
		return fmt.Errorf("failed to edit book %d: %w", id, err)
	}

	s.logger.Debug("book edited", "id", id)
	return nil
}

// EditVideo replaces every mutable field of the video with the given id.
func (s *LibraryService) EditVideo(id int64, title, comment, url, duration string) error {
	video := models.Video{ID: id, Title: title, Comment: comment, URL: url, Duration: duration}
	if err := s.policy.CheckVideo(video); err != nil {
		s.logger.Warn("video edit rejected", "id", id, "error", err)
		return err
	}

	if err := s.videos.UpdateVideo(video); err != nil {
		return fmt.Errorf("failed to edit video %d: %w", id, err)
	}

	s.logger.Debug("video edited", "id", id)
	return nil
}

// CreateCourse validates a course reference. Courses are not persisted.
func (s *LibraryService) CreateCourse(code, name string) error {
	if code == "" {
		return fmt.Errorf("%w: course code", shared.ErrMissingField)
	}
	if name == "" {
		return fmt.Errorf("%w: course name", shared.ErrMissingField)
	}

	course := models.Course{Code: code, Name: name}
	s.logger.Debug("course accepted", "code", course.Code, "name", course.Name)
	return nil
}
