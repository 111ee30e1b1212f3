package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/readlist/internal/models"
	"github.com/desertthunder/readlist/internal/shared"
)

// Field names an entry attribute that a [Policy] can require.
type Field string

const (
	FieldTitle    Field = "title"
	FieldComment  Field = "comment"
	FieldAuthor   Field = "author"
	FieldISBN     Field = "isbn"
	FieldURL      Field = "url"
	FieldDuration Field = "duration"
)

var (
	bookFields  = []Field{FieldTitle, FieldComment, FieldAuthor, FieldISBN}
	videoFields = []Field{FieldTitle, FieldComment, FieldURL, FieldDuration}
)

// Policy lists the fields that must be non-empty for each entry kind.
type Policy struct {
	Book  []Field
	Video []Field
}

// DefaultPolicy requires a title and author for books and a title for videos.
func DefaultPolicy() Policy {
	return Policy{
		Book:  []Field{FieldTitle, FieldAuthor},
		Video: []Field{FieldTitle},
	}
}

// ParsePolicy builds a [Policy] from configuration.
//
// Names are case-insensitive. The title is added when missing; a field that the kind does not have is rejected with [shared.ErrInvalidConfig].
func ParsePolicy(cfg shared.PolicyConfig) (Policy, error) {
	book, err := parseFields(models.KindBook, cfg.BookRequired, bookFields)
	if err != nil {
		return Policy{}, err
	}

	video, err := parseFields(models.KindVideo, cfg.VideoRequired, videoFields)
	if err != nil {
		return Policy{}, err
	}

	return Policy{Book: book, Video: video}, nil
}

func parseFields(kind models.Kind, names []string, known []Field) ([]Field, error) {
	fields := []Field{FieldTitle}
	for _, name := range names {
		f := Field(strings.ToLower(strings.TrimSpace(name)))
		if !slices.Contains(known, f) {
			return nil, fmt.Errorf("%w: %s has no field %q", shared.ErrInvalidConfig, kind, name)
		}
		if !slices.Contains(fields, f) {
			fields = append(fields, f)
		}
	}
	return fields, nil
}

// CheckBook reports the first required field that is empty in book.
func (p Policy) CheckBook(book models.Book) error {
	values := map[Field]string{
		FieldTitle:   book.Title,
		FieldComment: book.Comment,
		FieldAuthor:  book.Author,
		FieldISBN:    book.ISBN,
	}
	return check(models.KindBook, p.Book, values)
}

// CheckVideo reports the first required field that is empty in video.
func (p Policy) CheckVideo(video models.Video) error {
	values := map[Field]string{
		FieldTitle:    video.Title,
		FieldComment:  video.Comment,
		FieldURL:      video.URL,
		FieldDuration: video.Duration,
	}
	return check(models.KindVideo, p.Video, values)
}

func check(kind models.Kind, required []Field, values map[Field]string) error {
	if values[FieldTitle] == "" {
		return fmt.Errorf("%w: %s %s", shared.ErrMissingField, kind, FieldTitle)
	}
	for _, f := range required {
		if values[f] == "" {
			return fmt.Errorf("%w: %s %s", shared.ErrMissingField, kind, f)
		}
	}
	return nil
}
