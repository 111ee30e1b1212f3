package repositories

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/readlist/internal/models"
	"github.com/desertthunder/readlist/internal/shared"
)

// bucketPair names the record bucket of a kind and its title index.
type bucketPair struct {
	kind    models.Kind
	records []byte
	titles  []byte
}

var (
	bookBuckets  = bucketPair{kind: models.KindBook, records: []byte("book"), titles: []byte("book_titles")}
	videoBuckets = bucketPair{kind: models.KindVideo, records: []byte("video"), titles: []byte("video_titles")}
)

// BoltStore implements [Store] on a BoltDB file.
//
// Records are JSON documents keyed by the big-endian bucket sequence, so cursor order is insertion order.
// The title index bucket maps a title to its id and enforces per-kind uniqueness; empty titles are not indexed.
type BoltStore struct {
	db     *bolt.DB
	logger *log.Logger
	closed bool
}

// OpenBoltStore opens (or creates) the BoltDB file at path and sets up the buckets.
//
// timeout bounds how long to wait for the file lock held by another process.
// A non-positive timeout uses [shared.DefaultLockTimeout].
func OpenBoltStore(path string, timeout time.Duration, logger *log.Logger) (*BoltStore, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	if timeout <= 0 {
		timeout = shared.DefaultLockTimeout
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open bolt database: %w", shared.ErrStorage, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bookBuckets.records, bookBuckets.titles, videoBuckets.records, videoBuckets.titles} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to set up buckets: %w", shared.ErrStorage, err)
	}

	return &BoltStore{db: db, logger: shared.WithLogger(logger, "backend", BackendBolt)}, nil
}

func (s *BoltStore) CreateBook(title, comment, author, isbn string) (models.Book, error) {
	if s.closed {
		return models.Book{}, shared.ErrStoreClosed
	}

	book, err := insertRecord(s.db, bookBuckets, title, func(id int64) models.Book {
		return models.Book{ID: id, Title: title, Comment: comment, Author: author, ISBN: isbn}
	})
	if err != nil {
		return models.Book{}, s.fail("insert book", err)
	}
	return book, nil
}

func (s *BoltStore) CreateVideo(title, comment, url, duration string) (models.Video, error) {
	if s.closed {
		return models.Video{}, shared.ErrStoreClosed
	}

	video, err := insertRecord(s.db, videoBuckets, title, func(id int64) models.Video {
		return models.Video{ID: id, Title: title, Comment: comment, URL: url, Duration: duration}
	})
	if err != nil {
		return models.Video{}, s.fail("insert video", err)
	}
	return video, nil
}

func (s *BoltStore) Books() ([]models.Book, error) {
	if s.closed {
		return []models.Book{}, shared.ErrStoreClosed
	}

	books, err := listRecords[models.Book](s.db, bookBuckets)
	if err != nil {
		return []models.Book{}, s.fail("list books", err)
	}
	return books, nil
}

func (s *BoltStore) Videos() ([]models.Video, error) {
	if s.closed {
		return []models.Video{}, shared.ErrStoreClosed
	}

	videos, err := listRecords[models.Video](s.db, videoBuckets)
	if err != nil {
		return []models.Video{}, s.fail("list videos", err)
	}
	return videos, nil
}

func (s *BoltStore) UpdateBook(book models.Book) error {
	if s.closed {
		return shared.ErrStoreClosed
	}

	if err := updateRecord(s.db, bookBuckets, book.ID, book, models.Book.Label); err != nil {
		return s.fail("update book", err)
	}
	return nil
}

func (s *BoltStore) UpdateVideo(video models.Video) error {
	if s.closed {
		return shared.ErrStoreClosed
	}

	if err := updateRecord(s.db, videoBuckets, video.ID, video, models.Video.Label); err != nil {
		return s.fail("update video", err)
	}
	return nil
}

func (s *BoltStore) DeleteBook(id int64) error {
	if s.closed {
		return shared.ErrStoreClosed
	}

	if err := deleteRecord(s.db, bookBuckets, id, models.Book.Label); err != nil {
		return s.fail("delete book", err)
	}
	return nil
}

func (s *BoltStore) DeleteVideo(id int64) error {
	if s.closed {
		return shared.ErrStoreClosed
	}

	if err := deleteRecord(s.db, videoBuckets, id, models.Video.Label); err != nil {
		return s.fail("delete video", err)
	}
	return nil
}

// Close shuts down the bolt database. Calling it again is a no-op.
func (s *BoltStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.db.Close(); err != nil {
		return s.fail("close database", err)
	}
	return nil
}

// fail passes domain sentinels through and logs anything else as a storage fault.
func (s *BoltStore) fail(op string, err error) error {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return err
	case errors.Is(err, shared.ErrDuplicateTitle):
		s.logger.Warn("constraint violation", "op", op, "error", err)
		return err
	default:
		s.logger.Error("storage failure", "op", op, "error", err)
		return fmt.Errorf("%w: failed to %s: %w", shared.ErrStorage, op, err)
	}
}

func insertRecord[T any](db *bolt.DB, bp bucketPair, title string, build func(id int64) T) (T, error) {
	var record T
	err := db.Update(func(tx *bolt.Tx) error {
		records, titles := tx.Bucket(bp.records), tx.Bucket(bp.titles)

		if title != "" && titles.Get([]byte(title)) != nil {
			return fmt.Errorf("%w: %s %q", shared.ErrDuplicateTitle, bp.kind, title)
		}

		seq, err := records.NextSequence()
		if err != nil {
			return err
		}

		id := int64(seq)
		record = build(id)

		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if err := records.Put(itob(id), data); err != nil {
			return err
		}
		if title != "" {
			return titles.Put([]byte(title), itob(id))
		}
		return nil
	})
	return record, err
}

func listRecords[T any](db *bolt.DB, bp bucketPair) ([]T, error) {
	list := []T{}
	err := db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bp.records).ForEach(func(_, v []byte) error {
			var record T
			if err := json.Unmarshal(v, &record); err != nil {
				return err
			}
			list = append(list, record)
			return nil
		})
	})
	return list, err
}

func updateRecord[T any](db *bolt.DB, bp bucketPair, id int64, record T, titleOf func(T) string) error {
	return db.Update(func(tx *bolt.Tx) error {
		records, titles := tx.Bucket(bp.records), tx.Bucket(bp.titles)

		key := itob(id)
		existing := records.Get(key)
		if existing == nil {
			return fmt.Errorf("%w: %s", shared.ErrNotFound, models.Ref{Kind: bp.kind, ID: id})
		}

		var previous T
		if err := json.Unmarshal(existing, &previous); err != nil {
			return err
		}

		oldTitle, newTitle := titleOf(previous), titleOf(record)
		if oldTitle != newTitle {
			if newTitle != "" {
				if owner := titles.Get([]byte(newTitle)); owner != nil && btoi(owner) != id {
					return fmt.Errorf("%w: %s %q", shared.ErrDuplicateTitle, bp.kind, newTitle)
				}
				if err := titles.Put([]byte(newTitle), key); err != nil {
					return err
				}
			}
			if oldTitle != "" {
				if err := titles.Delete([]byte(oldTitle)); err != nil {
					return err
				}
			}
		}

		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		return records.Put(key, data)
	})
}

func deleteRecord[T any](db *bolt.DB, bp bucketPair, id int64, titleOf func(T) string) error {
	return db.Update(func(tx *bolt.Tx) error {
		records, titles := tx.Bucket(bp.records), tx.Bucket(bp.titles)

		key := itob(id)
		existing := records.Get(key)
		if existing == nil {
			return fmt.Errorf("%w: %s", shared.ErrNotFound, models.Ref{Kind: bp.kind, ID: id})
		}

		var record T
		if err := json.Unmarshal(existing, &record); err != nil {
			return err
		}
		if title := titleOf(record); title != "" {
			if err := titles.Delete([]byte(title)); err != nil {
				return err
			}
		}
		return records.Delete(key)
	})
}

func itob(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func btoi(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}
