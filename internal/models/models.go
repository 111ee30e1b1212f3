// package models defines the data model for the reading list
package models

import (
	"fmt"
	"strings"
)

// Kind discriminates between the entry variants.
type Kind int

const (
	KindBook Kind = iota
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindBook:
		return "book"
	case KindVideo:
		return "video"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts "book" or "video" (case-insensitive) into a [Kind].
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "book":
		return KindBook, nil
	case "video":
		return KindVideo, nil
	default:
		return 0, fmt.Errorf("unknown entry kind %q", s)
	}
}

// Ref identifies an entry across kinds.
type Ref struct {
	Kind Kind
	ID   int64
}

func (r Ref) String() string {
	return fmt.Sprintf("%s #%d", r.Kind, r.ID)
}

// Entry is implemented by [Book] and [Video] only.
type Entry interface {
	Kind() Kind     // Kind reports which variant this entry is
	Ref() Ref       // Ref returns the kind and backend-assigned id
	Label() string  // Label returns the entry title
	String() string // String renders the entry for humans
	isEntry()
}

var (
	_ Entry = Book{}
	_ Entry = Video{}
)

// Book is a recommended book.
type Book struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
	Author  string `json:"author"`
	ISBN    string `json:"isbn"`
}

func (Book) Kind() Kind      { return KindBook }
func (b Book) Ref() Ref      { return Ref{Kind: KindBook, ID: b.ID} }
func (b Book) Label() string { return b.Title }
func (Book) isEntry()        {}

// String renders "<author>: <title>" followed by the ISBN and comment on their own indented lines.
// Empty parts are omitted.
func (b Book) String() string {
	return render(b.Author, b.Title, b.ISBN, b.Comment)
}

// Video is a recommended video.
type Video struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Comment  string `json:"comment"`
	URL      string `json:"url"`
	Duration string `json:"duration"`
}

func (Video) Kind() Kind      { return KindVideo }
func (v Video) Ref() Ref      { return Ref{Kind: KindVideo, ID: v.ID} }
func (v Video) Label() string { return v.Title }
func (Video) isEntry()        {}

// String renders "<url>: <title>" followed by the duration and comment, like [Book.String].
func (v Video) String() string {
	return render(v.URL, v.Title, v.Duration, v.Comment)
}

func render(prefix, title, detail, comment string) string {
	var sb strings.Builder
	if prefix != "" {
		sb.WriteString(prefix)
		sb.WriteString(": ")
	}
	sb.WriteString(title)
	for _, line := range []string{detail, comment} {
		if line != "" {
			sb.WriteString("\n\t")
			sb.WriteString(line)
		}
	}
	return sb.String()
}

// Course is a university course reference. Courses are validated but never stored.
type Course struct {
	Code string
	Name string
}
