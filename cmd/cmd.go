// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand writes the config file and prepares the store.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml from the template and initialize the store",
		Action: r.Setup,
	}
}

// bookCommand handles book operations
func bookCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "book",
		Aliases: []string{"books", "b"},
		Usage:   "Manage recommended books",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a book",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Book title"},
					&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Usage: "Author"},
					&cli.StringFlag{Name: "isbn", Usage: "ISBN"},
					&cli.StringFlag{Name: "comment", Usage: "Free-form comment"},
				},
				Action: r.BookAdd,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List books",
				Flags:   []cli.Flag{formatFlag()},
				Action:  r.BookList,
			},
			{
				Name:  "edit",
				Usage: "Edit a book; fields without a flag keep their value",
				Flags: []cli.Flag{
					idFlag(),
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
					&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Usage: "New author"},
					&cli.StringFlag{Name: "isbn", Usage: "New ISBN"},
					&cli.StringFlag{Name: "comment", Usage: "New comment"},
				},
				Action: r.BookEdit,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a book",
				Flags:   []cli.Flag{idFlag()},
				Action:  r.BookDelete,
			},
		},
	}
}

// videoCommand handles video operations
func videoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "video",
		Aliases: []string{"videos", "v"},
		Usage:   "Manage recommended videos",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a video",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Video title"},
					&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "Video URL"},
					&cli.StringFlag{Name: "duration", Usage: "Duration, e.g. \"12 min\""},
					&cli.StringFlag{Name: "comment", Usage: "Free-form comment"},
				},
				Action: r.VideoAdd,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List videos",
				Flags:   []cli.Flag{formatFlag()},
				Action:  r.VideoList,
			},
			{
				Name:  "edit",
				Usage: "Edit a video; fields without a flag keep their value",
				Flags: []cli.Flag{
					idFlag(),
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
					&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "New URL"},
					&cli.StringFlag{Name: "duration", Usage: "New duration"},
					&cli.StringFlag{Name: "comment", Usage: "New comment"},
				},
				Action: r.VideoEdit,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a video",
				Flags:   []cli.Flag{idFlag()},
				Action:  r.VideoDelete,
			},
		},
	}
}

// listCommand exports every entry
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all entries, books first",
		Flags: []cli.Flag{
			formatFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to this file instead of stdout",
			},
		},
		Action: r.List,
	}
}

// importCommand reads entries back from a list export
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Add the entries of a CSV or JSON export",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"i"}, Usage: "Export file to read"},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "csv or json (default: from the file extension)",
			},
			&cli.BoolFlag{Name: "skip-existing", Usage: "Skip entries whose title is already listed"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Check entries against the required fields without storing them"},
		},
		Action: r.Import,
	}
}

// courseCommand validates course references
func courseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "course",
		Usage: "Course references",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Validate a course code and name",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "code", Usage: "Course code, e.g. TKT20005"},
					&cli.StringFlag{Name: "name", Usage: "Course name"},
				},
				Action: r.CourseAdd,
			},
		},
	}
}

// shellCommand starts the numbered-menu interactive mode.
func shellCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "shell",
		Aliases: []string{"menu"},
		Usage:   "Interactive menu on stdin/stdout",
		Action:  r.Shell,
	}
}

// tuiCommand returns the top-level TUI command for browsing entries.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive list browser",
		Action:  r.TUI,
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: text, csv, markdown or json",
		Value:   "text",
	}
}

func idFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:     "id",
		Usage:    "Entry id as shown by list",
		Required: true,
	}
}
