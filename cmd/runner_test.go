package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/readlist/internal/repositories"
	"github.com/desertthunder/readlist/internal/shared"
	tu "github.com/desertthunder/readlist/internal/testing"
)

// newTestRunner returns a Runner on a memory store whose output is captured in the returned buffer.
func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	config := shared.DefaultConfig()
	config.Database.Backend = repositories.BackendMemory
	config.Log.Level = "error"

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(&bytes.Buffer{}),
		Output: output,
	})
	t.Cleanup(func() { runner.Close() })
	return runner, output
}

func run(r *Runner, args ...string) error {
	return r.App().Run(context.Background(), append([]string{"readlist"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			input := strings.NewReader("")
			store := repositories.NewMemoryStore()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "/test/path/config.toml",
				Logger:     logger,
				Output:     output,
				Input:      input,
				Store:      store,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.input != input {
				t.Error("expected input to be set")
			}
			if runner.store != store {
				t.Error("expected store to be set")
			}
			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.configLoaded {
				t.Error("default config should still be replaced by the config file")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output and input uses stdio", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.input != os.Stdin {
				t.Error("expected input to default to os.Stdin")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result := output.String(); result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("writePlainln surrounds with newlines", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlainln("Next steps:"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result := output.String(); result != "\nNext steps:\n" {
				t.Errorf("unexpected output %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("Close", func(t *testing.T) {
		t.Run("closes an opened store once", func(t *testing.T) {
			runner, _ := newTestRunner(t)
			if _, err := runner.Library(); err != nil {
				t.Fatalf("failed to open library: %v", err)
			}

			if err := runner.Close(); err != nil {
				t.Errorf("first close: %v", err)
			}
			if err := runner.Close(); err != nil {
				t.Errorf("second close: %v", err)
			}
		})

		t.Run("leaves an injected store open", func(t *testing.T) {
			store := repositories.NewMemoryStore()
			runner := NewRunner(RunnerOpts{Store: store, Logger: shared.NewLogger(&bytes.Buffer{})})
			if _, err := runner.Library(); err != nil {
				t.Fatalf("failed to open library: %v", err)
			}

			runner.Close()

			if _, err := store.CreateBook("still open", "", "a", ""); err != nil {
				t.Errorf("injected store should stay open, got %v", err)
			}
		})
	})
}

func TestBookCommands(t *testing.T) {
	t.Run("add and list", func(t *testing.T) {
		runner, output := newTestRunner(t)

		err := run(runner, "book", "add", "--title", "Clean Code", "--author", "Robert Martin", "--isbn", "978-0132350884", "--comment", "comments here")
		if err != nil {
			t.Fatalf("book add failed: %v", err)
		}
		if !strings.Contains(output.String(), "Added book 'Clean Code'") {
			t.Errorf("unexpected output: %s", output.String())
		}

		output.Reset()
		if err := run(runner, "book", "list"); err != nil {
			t.Fatalf("book list failed: %v", err)
		}
		if !strings.Contains(output.String(), "1. [book] Robert Martin: Clean Code\n\t978-0132350884\n\tcomments here") {
			t.Errorf("unexpected list output: %s", output.String())
		}
	})

	t.Run("add without author", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := run(runner, "book", "add", "--title", "Clean Code")
		if !errors.Is(err, shared.ErrMissingField) {
			t.Errorf("expected ErrMissingField, got %v", err)
		}
	})

	t.Run("edit keeps unset fields", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(runner, "book", "add", "-t", "Clean Code", "-a", "Robert Martin", "--isbn", "978-0132350884"); err != nil {
			t.Fatalf("book add failed: %v", err)
		}

		output.Reset()
		if err := run(runner, "book", "edit", "--id", "1", "--author", "Uncle Bob"); err != nil {
			t.Fatalf("book edit failed: %v", err)
		}
		if !strings.Contains(output.String(), "Updated book #1") {
			t.Errorf("unexpected output: %s", output.String())
		}

		lib, _ := runner.Library()
		books, _ := lib.Books()
		if len(books) != 1 || books[0].Author != "Uncle Bob" || books[0].ISBN != "978-0132350884" || books[0].Title != "Clean Code" {
			t.Errorf("unexpected books after edit: %+v", books)
		}
	})

	t.Run("edit and delete unknown id", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := run(runner, "book", "edit", "--id", "7", "--title", "x"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound from edit, got %v", err)
		}
		if err := run(runner, "book", "delete", "--id", "7"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound from delete, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := run(runner, "book", "add", "-t", "Clean Code", "-a", "Robert Martin"); err != nil {
			t.Fatalf("book add failed: %v", err)
		}

		output.Reset()
		if err := run(runner, "book", "rm", "--id", "1"); err != nil {
			t.Fatalf("book delete failed: %v", err)
		}
		if !strings.Contains(output.String(), "Deleted book #1") {
			t.Errorf("unexpected output: %s", output.String())
		}

		lib, _ := runner.Library()
		books, _ := lib.Books()
		if len(books) != 0 {
			t.Errorf("expected no books, got %+v", books)
		}
	})

	t.Run("delete requires an id", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := run(runner, "book", "delete"); err == nil {
			t.Error("expected error without --id")
		}
	})
}

func TestVideoCommands(t *testing.T) {
	runner, output := newTestRunner(t)

	if err := run(runner, "video", "add", "--title", "Merge sort algorithm", "--url", "https://www.youtube.com/watch?v=TzeBrDU-JaY"); err != nil {
		t.Fatalf("video add failed: %v", err)
	}
	if err := run(runner, "video", "add", "--title", "No link"); err != nil {
		t.Fatalf("video add without url failed: %v", err)
	}
	if err := run(runner, "video", "add", "--url", "https://example.com"); !errors.Is(err, shared.ErrMissingField) {
		t.Errorf("expected ErrMissingField without title, got %v", err)
	}

	if err := run(runner, "video", "edit", "--id", "2", "--duration", "3 min"); err != nil {
		t.Fatalf("video edit failed: %v", err)
	}

	output.Reset()
	if err := run(runner, "video", "list", "--format", "csv"); err != nil {
		t.Fatalf("video list failed: %v", err)
	}
	if !strings.Contains(output.String(), "video,2,No link,,,,,3 min") {
		t.Errorf("unexpected CSV output: %s", output.String())
	}

	if err := run(runner, "video", "delete", "--id", "1"); err != nil {
		t.Fatalf("video delete failed: %v", err)
	}
	lib, _ := runner.Library()
	videos, _ := lib.Videos()
	if len(videos) != 1 || videos[0].Title != "No link" {
		t.Errorf("unexpected videos: %+v", videos)
	}
}

func TestListCommand(t *testing.T) {
	seed := func(t *testing.T) (*Runner, *bytes.Buffer) {
		runner, output := newTestRunner(t)
		if err := run(runner, "video", "add", "-t", "Merge sort algorithm"); err != nil {
			t.Fatalf("video add failed: %v", err)
		}
		if err := run(runner, "book", "add", "-t", "Clean Code", "-a", "Robert Martin"); err != nil {
			t.Fatalf("book add failed: %v", err)
		}
		output.Reset()
		return runner, output
	}

	t.Run("text lists books first", func(t *testing.T) {
		runner, output := seed(t)

		if err := run(runner, "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}

		out := output.String()
		if strings.Index(out, "[book]") > strings.Index(out, "[video]") {
			t.Errorf("books should be listed first:\n%s", out)
		}
	})

	t.Run("markdown to file", func(t *testing.T) {
		runner, output := seed(t)
		path := filepath.Join(t.TempDir(), "exports", "readlist.md")

		if err := run(runner, "list", "--format", "md", "-o", path); err != nil {
			t.Fatalf("list failed: %v", err)
		}

		tu.AssertFileExists(t, path)
		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "## Books") || !strings.Contains(content, "**Clean Code** by Robert Martin") {
			t.Errorf("unexpected markdown:\n%s", content)
		}
		if !strings.Contains(output.String(), "Wrote 2 entries to") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		runner, _ := seed(t)

		if err := run(runner, "list", "--format", "xml"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestImportCommand(t *testing.T) {
	exportTo := func(t *testing.T, format string) string {
		t.Helper()
		runner, _ := newTestRunner(t)
		if err := run(runner, "video", "add", "-t", "Merge sort algorithm"); err != nil {
			t.Fatalf("video add failed: %v", err)
		}
		if err := run(runner, "book", "add", "-t", "Clean Code", "-a", "Robert Martin"); err != nil {
			t.Fatalf("book add failed: %v", err)
		}

		path := filepath.Join(t.TempDir(), "readlist."+format)
		if err := run(runner, "list", "--format", format, "-o", path); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		return path
	}

	entryCount := func(t *testing.T, r *Runner) int {
		t.Helper()
		lib, err := r.Library()
		if err != nil {
			t.Fatalf("Library failed: %v", err)
		}
		entries, err := lib.Entries()
		if err != nil {
			t.Fatalf("Entries failed: %v", err)
		}
		return len(entries)
	}

	for _, format := range []string{"csv", "json"} {
		t.Run("round trip through "+format, func(t *testing.T) {
			path := exportTo(t, format)
			runner, output := newTestRunner(t)

			if err := run(runner, "import", "--file", path); err != nil {
				t.Fatalf("import failed: %v", err)
			}
			if !strings.Contains(output.String(), "Imported 2 of 2 entries") {
				t.Errorf("unexpected output:\n%s", output.String())
			}
			if n := entryCount(t, runner); n != 2 {
				t.Errorf("expected 2 entries, got %d", n)
			}
		})
	}

	t.Run("dry run", func(t *testing.T) {
		path := exportTo(t, "csv")
		runner, output := newTestRunner(t)

		if err := run(runner, "import", "-i", path, "--dry-run"); err != nil {
			t.Fatalf("import failed: %v", err)
		}
		if !strings.Contains(output.String(), "Checked 2 of 2 entries") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
		if n := entryCount(t, runner); n != 0 {
			t.Errorf("dry run stored %d entries", n)
		}
	})

	t.Run("skip existing", func(t *testing.T) {
		path := exportTo(t, "json")
		runner, output := newTestRunner(t)

		if err := run(runner, "import", "--file", path); err != nil {
			t.Fatalf("first import failed: %v", err)
		}
		output.Reset()
		if err := run(runner, "import", "--file", path, "--skip-existing"); err != nil {
			t.Fatalf("second import failed: %v", err)
		}

		if !strings.Contains(output.String(), "Skipped 2 already listed") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
		if n := entryCount(t, runner); n != 2 {
			t.Errorf("expected 2 entries, got %d", n)
		}
	})

	t.Run("rejected rows are reported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "backup.data")
		data := `[{"kind":"book","title":"Anonymous"},{"kind":"video","title":"Talk"}]`
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
		runner, output := newTestRunner(t)

		if err := run(runner, "import", "--file", path, "--format", "json"); err != nil {
			t.Fatalf("import failed: %v", err)
		}

		out := output.String()
		if !strings.Contains(out, "Imported 1 of 2 entries") || !strings.Contains(out, "Rejected 1:") {
			t.Errorf("unexpected output:\n%s", out)
		}
		if !strings.Contains(out, "book 'Anonymous'") {
			t.Errorf("rejected entry not named:\n%s", out)
		}
	})

	t.Run("missing file flag", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := run(runner, "import"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := run(runner, "import", "--file", "x.csv", "--format", "xml"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestCourseCommand(t *testing.T) {
	runner, output := newTestRunner(t)

	if err := run(runner, "course", "add", "--code", "TKT20005", "--name", "Laskennan mallit"); err != nil {
		t.Fatalf("course add failed: %v", err)
	}
	if !strings.Contains(output.String(), "Course TKT20005 (Laskennan mallit) is valid") {
		t.Errorf("unexpected output: %s", output.String())
	}

	if err := run(runner, "course", "add", "--name", "Todennäköisyyslaskenta"); !errors.Is(err, shared.ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestShellCommand(t *testing.T) {
	config := shared.DefaultConfig()
	config.Database.Backend = repositories.BackendMemory

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(&bytes.Buffer{}),
		Output: output,
		Input:  strings.NewReader("1\n1\nClean Code\nRobert Martin\n\n\n2\nX\n"),
	})
	defer runner.Close()

	if err := run(runner, "shell"); err != nil {
		t.Fatalf("shell failed: %v", err)
	}

	out := output.String()
	for _, want := range []string{"Welcome to the reading list!", "Entry added successfully", "1. book: Clean Code", "closing"} {
		if !strings.Contains(out, want) {
			t.Errorf("shell transcript missing %q:\n%s", want, out)
		}
	}
}

func TestConfigure(t *testing.T) {
	t.Run("loads the config file and applies flags", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		content := `
[database]
backend = "bolt"
path = "` + filepath.Join(dir, "from-file.bolt") + `"

[policy]
video_required = ["url"]

[log]
level = "error"
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{}), Output: &bytes.Buffer{}})
		defer runner.Close()

		dbPath := filepath.Join(dir, "flag.bolt")
		err := run(runner, "-c", configPath, "--db", dbPath, "video", "add", "--title", "No link")
		if !errors.Is(err, shared.ErrMissingField) {
			t.Errorf("policy from the config file should require a url, got %v", err)
		}

		if runner.config.Database.Backend != repositories.BackendBolt {
			t.Errorf("expected bolt backend from file, got %q", runner.config.Database.Backend)
		}
		if runner.config.Database.Path != dbPath {
			t.Errorf("--db should override the file, got %q", runner.config.Database.Path)
		}
		tu.AssertFileExists(t, dbPath)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv(shared.EnvBackend, repositories.BackendMemory)
		t.Setenv(shared.EnvLogLevel, "warn")

		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{}), Output: &bytes.Buffer{}})
		defer runner.Close()

		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := shared.CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if err := run(runner, "-c", configPath, "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if runner.config.Database.Backend != repositories.BackendMemory {
			t.Errorf("expected memory backend from env, got %q", runner.config.Database.Backend)
		}
		if runner.config.Log.Level != "warn" {
			t.Errorf("expected warn level from env, got %q", runner.config.Log.Level)
		}
	})

	t.Run("explicit config must exist", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{}), Output: &bytes.Buffer{}})
		defer runner.Close()

		missing := filepath.Join(t.TempDir(), "missing.toml")
		if err := run(runner, "-c", missing, "list"); !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		runner.config.Log.Level = "loud"

		if err := run(runner, "list"); !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("invalid policy", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		runner.config.Policy.BookRequired = []string{"url"}

		if err := run(runner, "list"); !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := run(runner, "--backend", "cassette", "list"); !errors.Is(err, shared.ErrUnknownBackend) {
			t.Errorf("expected ErrUnknownBackend, got %v", err)
		}
	})
}

func TestSetup(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	dbPath := filepath.Join(dir, "readlist.db")

	runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{}), Output: &bytes.Buffer{}})
	if err := run(runner, "-c", configPath, "--db", dbPath, "setup"); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := runner.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	tu.AssertFileExists(t, configPath)
	tu.AssertFileExists(t, dbPath)

	output := &bytes.Buffer{}
	again := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{}), Output: output})
	defer again.Close()

	if err := run(again, "-c", configPath, "--db", dbPath, "setup"); err != nil {
		t.Fatalf("second setup failed: %v", err)
	}
	if !strings.Contains(output.String(), "Using existing config") || !strings.Contains(output.String(), "Setup complete") {
		t.Errorf("unexpected output: %s", output.String())
	}
}

func TestPersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "readlist.db")
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := shared.CreateConfigFile(configPath); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	first := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{}), Output: &bytes.Buffer{}})
	if err := run(first, "-c", configPath, "--db", dbPath, "book", "add", "-t", "Clean Code", "-a", "Robert Martin"); err != nil {
		t.Fatalf("book add failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	output := &bytes.Buffer{}
	second := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{}), Output: output})
	defer second.Close()

	if err := run(second, "-c", configPath, "--db", dbPath, "list", "--format", "json"); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(output.String(), `"title": "Clean Code"`) {
		t.Errorf("book should persist across runs, got %s", output.String())
	}

	if err := run(second, "-c", configPath, "--db", dbPath, "book", "add", "-t", "Clean Code", "-a", "Someone"); !errors.Is(err, shared.ErrDuplicateTitle) {
		t.Errorf("expected ErrDuplicateTitle, got %v", err)
	}
}
