package formatter

import (
	"errors"
	"testing"

	"github.com/desertthunder/readlist/internal/models"
	"github.com/desertthunder/readlist/internal/shared"
)

func TestParseEntries(t *testing.T) {
	for _, f := range []Format{FormatCSV, FormatJSON} {
		t.Run("reads its own "+string(f)+" export", func(t *testing.T) {
			data, err := Export(sampleEntries(), f)
			if err != nil {
				t.Fatalf("Export failed: %v", err)
			}

			entries, err := ParseEntries(data, f)
			if err != nil {
				t.Fatalf("ParseEntries failed: %v", err)
			}

			want := sampleEntries()
			if len(entries) != len(want) {
				t.Fatalf("expected %d entries, got %d", len(want), len(entries))
			}
			for i := range want {
				if entries[i] != want[i] {
					t.Errorf("entry %d: got %#v, want %#v", i, entries[i], want[i])
				}
			}
		})
	}

	t.Run("text cannot be read back", func(t *testing.T) {
		if _, err := ParseEntries([]byte("Entries: 0\n"), FormatText); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestParseCSV(t *testing.T) {
	t.Run("columns in any order and missing id", func(t *testing.T) {
		data := "Title,Kind,Author\nClean Code,book,Robert Martin\nMerge sort,Video,\n"

		entries, err := ParseCSV([]byte(data))
		if err != nil {
			t.Fatalf("ParseCSV failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0] != (models.Book{Title: "Clean Code", Author: "Robert Martin"}) {
			t.Errorf("unexpected book: %#v", entries[0])
		}
		if entries[1] != (models.Video{Title: "Merge sort"}) {
			t.Errorf("unexpected video: %#v", entries[1])
		}
	})

	t.Run("empty input", func(t *testing.T) {
		entries, err := ParseCSV(nil)
		if err != nil || len(entries) != 0 {
			t.Errorf("expected no entries, got %v %v", entries, err)
		}
	})

	tc := []struct {
		name string
		data string
	}{
		{name: "no kind column", data: "Title\nClean Code\n"},
		{name: "unknown kind", data: "Kind,Title\npodcast,Episode 1\n"},
		{name: "bad id", data: "Kind,ID,Title\nbook,one,Clean Code\n"},
		{name: "unterminated quote", data: "Kind,Title\nbook,\"Clean Code\n"},
	}
	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCSV([]byte(tt.data)); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	if _, err := ParseJSON([]byte(`{"kind":"book"}`)); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for an object, got %v", err)
	}
	if _, err := ParseJSON([]byte(`[{"kind":"comic","title":"x"}]`)); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for an unknown kind, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, err := FormatFromPath("exports/readlist.CSV"); err != nil || f != FormatCSV {
		t.Errorf("expected csv, got %q %v", f, err)
	}
	if f, err := FormatFromPath("readlist.json"); err != nil || f != FormatJSON {
		t.Errorf("expected json, got %q %v", f, err)
	}
	if _, err := FormatFromPath("readlist"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
