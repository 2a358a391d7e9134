// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand initializes the database, the admin account and the
// bundled library.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database, run migrations and seed the library",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "skip-seed",
				Usage: "Skip seeding the bundled library",
			},
		},
		Action: r.Setup,
	}
}

// serveCommand runs the HTTP server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the library HTTP server",
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: r.Serve,
	}
}

// libraryCommand handles seeding and listing operations.
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Library seeding and inspection",
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Ensure all manifest folders and tracks exist",
				Flags:  []cli.Flag{configFlag()},
				Action: r.LibrarySeed,
			},
			{
				Name:   "repair",
				Usage:  "Clear folders and tracks, then reseed from the manifest",
				Flags:  []cli.Flag{configFlag()},
				Action: r.LibraryRepair,
			},
			{
				Name:  "list",
				Usage: "Print all folders and their tracks",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LibraryList,
			},
			{
				Name:  "export",
				Usage: "Export one folder's track listing to CSV, Markdown or text",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Folder ID to export",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: csv, md or txt",
						Value: "txt",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (stdout when empty)",
					},
				},
				Action: r.LibraryExport,
			},
		},
	}
}

// usersCommand handles account management.
func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Account management",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Print all accounts",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.UsersList,
			},
			{
				Name:  "create",
				Usage: "Register a new account",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.UsersCreate,
			},
		},
	}
}

// tuiCommand launches the interactive library browser.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse the library in an interactive terminal UI",
		Flags:  []cli.Flag{configFlag()},
		Action: r.TUI,
	}
}
