// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/readlist/internal/models"
	"github.com/desertthunder/readlist/internal/repositories"
)

var _ repositories.Store = (*FailingStore)(nil)

// FailingStore is a [repositories.Store] whose every operation fails with Err
type FailingStore struct {
	Err    error
	Closed bool
}

func NewFailingStore(err error) *FailingStore {
	return &FailingStore{Err: err}
}

func (f *FailingStore) CreateBook(title, comment, author, isbn string) (models.Book, error) {
	return models.Book{}, f.Err
}

func (f *FailingStore) CreateVideo(title, comment, url, duration string) (models.Video, error) {
	return models.Video{}, f.Err
}

func (f *FailingStore) Books() ([]models.Book, error)   { return []models.Book{}, f.Err }
func (f *FailingStore) Videos() ([]models.Video, error) { return []models.Video{}, f.Err }
func (f *FailingStore) UpdateBook(models.Book) error    { return f.Err }
func (f *FailingStore) UpdateVideo(models.Video) error  { return f.Err }
func (f *FailingStore) DeleteBook(int64) error          { return f.Err }
func (f *FailingStore) DeleteVideo(int64) error         { return f.Err }

func (f *FailingStore) Close() error {
	f.Closed = true
	return nil
}

// ScriptedIO feeds a fixed list of input lines and records everything printed.
//
// It satisfies the interactive shell's IO interface.
type ScriptedIO struct {
	lines   []string
	Prompts []string
	Output  []string
}

func NewScriptedIO(lines ...string) *ScriptedIO {
	return &ScriptedIO{lines: lines}
}

func (s *ScriptedIO) HasNextLine() bool { return len(s.lines) > 0 }

// ReadLine returns the next scripted line, or "" once the script is exhausted.
func (s *ScriptedIO) ReadLine(prompt string) string {
	s.Prompts = append(s.Prompts, prompt)
	if len(s.lines) == 0 {
		return ""
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line
}

func (s *ScriptedIO) Print(line string) {
	s.Output = append(s.Output, line)
}

// Printed joins all output lines with newlines.
func (s *ScriptedIO) Printed() string {
	return strings.Join(s.Output, "\n")
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
