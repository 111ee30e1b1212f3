package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/readlist/internal/repositories"
	"github.com/desertthunder/readlist/internal/services"
	"github.com/desertthunder/readlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The store is opened on first use and released by [Runner.Close].
type Runner struct {
	config       *shared.Config
	configPath   string
	configLoaded bool
	logger       *log.Logger
	output       io.Writer
	input        io.Reader
	store        repositories.Store
	ownsStore    bool
	library      *services.LibraryService
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A Store or Library passed in is used as is and never closed by the Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
	Store      repositories.Store
	Library    *services.LibraryService
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	configLoaded := opts.Config != nil
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	return &Runner{
		config:       opts.Config,
		configPath:   opts.ConfigPath,
		configLoaded: configLoaded,
		logger:       opts.Logger,
		output:       opts.Output,
		input:        opts.Input,
		store:        opts.Store,
		library:      opts.Library,
	}
}

// SetLogger replaces the logger used by commands and by stores opened afterwards.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// App builds the root command.
func (r *Runner) App() *cli.Command {
	return &cli.Command{
		Name:      "readlist",
		Usage:     "Keep a reading list of recommended books and videos",
		Version:   "0.1.0",
		Writer:    r.output,
		ErrWriter: r.output,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Storage backend (sqlite, bolt or memory)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the database file",
			},
		},
		Before:   r.configure,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, bookCommand, videoCommand, listCommand, importCommand, courseCommand, shellCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure loads the config file (unless one was injected) and applies environment and flag overrides.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if !r.configLoaded {
		path := cmd.String("config")
		load := shared.LoadConfigOrDefault
		if cmd.IsSet("config") && cmd.Args().First() != "setup" {
			load = shared.LoadConfig
		}
		config, err := load(path)
		if err != nil {
			return ctx, fmt.Errorf("failed to load config: %w", err)
		}
		r.config = config
		r.configPath = path
		r.configLoaded = true
	}

	shared.ApplyEnv(r.config)

	if backend := cmd.String("backend"); backend != "" {
		r.config.Database.Backend = backend
	}
	if path := cmd.String("db"); path != "" {
		r.config.Database.Path = path
	}

	level, err := shared.ParseLogLevel(r.config.Log.Level)
	if err != nil {
		return ctx, err
	}
	shared.SetLogLevel(r.logger, level)

	return ctx, nil
}

// Library returns the library service, opening the configured store on first call.
func (r *Runner) Library() (*services.LibraryService, error) {
	if r.library != nil {
		return r.library, nil
	}

	policy, err := services.ParsePolicy(r.config.Policy)
	if err != nil {
		return nil, err
	}

	if r.store == nil {
		store, err := repositories.Open(r.config.Database, r.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s store: %w", r.config.Database.Backend, err)
		}
		r.store = store
		r.ownsStore = true
		r.logger.Debug("store opened", "backend", r.config.Database.Backend, "path", r.config.Database.Path)
	}

	r.library = services.NewLibraryFromStore(r.store, policy, r.logger)
	return r.library, nil
}

// Close releases the store if the Runner opened it. It is safe to call more than once.
func (r *Runner) Close() error {
	if r.store == nil || !r.ownsStore {
		return nil
	}

	err := r.store.Close()
	r.store = nil
	r.library = nil
	r.ownsStore = false
	return err
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
