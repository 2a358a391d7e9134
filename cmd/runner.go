package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/rcavaliericopy-max/salomao/internal/auth"
	"github.com/rcavaliericopy-max/salomao/internal/library"
	"github.com/rcavaliericopy-max/salomao/internal/repositories"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	store      *repositories.Store
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Store      *repositories.Store
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		store:      opts.Store,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, libraryCommand, usersCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger, used when the TUI takes over
// the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// loadConfig resolves the configuration for a command: an explicit file
// when present, embedded defaults otherwise. The result is cached on the
// runner.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	if r.config != nil {
		return r.config
	}

	path := cmd.String("config")
	if _, err := os.Stat(path); err == nil {
		if config, err := shared.LoadConfig(path); err == nil {
			r.config = config
			return r.config
		} else {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	r.config = shared.DefaultConfig()
	return r.config
}

// openStore returns the runner's store handle, creating it from config on
// first use.
func (r *Runner) openStore(cmd *cli.Command) (*repositories.Store, error) {
	if r.store == nil {
		config := r.loadConfig(cmd)
		r.store = repositories.NewStore(config.Database)
	}
	if err := r.store.Open(); err != nil {
		return nil, err
	}
	return r.store, nil
}

// gateway builds the auth gateway over the runner's store.
func (r *Runner) gateway(cmd *cli.Command) (*auth.Gateway, error) {
	store, err := r.openStore(cmd)
	if err != nil {
		return nil, err
	}
	config := r.loadConfig(cmd)
	return auth.NewGateway(store.Users(), config.Admin, nil, r.logger), nil
}

// seeder builds the seeding service over the runner's store.
func (r *Runner) seeder(cmd *cli.Command) (*library.Seeder, error) {
	store, err := r.openStore(cmd)
	if err != nil {
		return nil, err
	}
	config := r.loadConfig(cmd)

	manifest, err := r.manifest(config)
	if err != nil {
		return nil, err
	}

	assets := library.NewAssetClient(
		config.Library.BaseURL,
		r.httpClient,
		config.Library.FetchRate,
		config.Library.MinAssetBytes,
	)

	return library.NewSeeder(store, assets, manifest, r.logger), nil
}

// manifest loads the configured manifest file, falling back to the
// embedded default.
func (r *Runner) manifest(config *shared.Config) (*library.Manifest, error) {
	if config.Library.ManifestPath == "" {
		return library.DefaultManifest(), nil
	}
	manifest, err := library.LoadManifest(config.Library.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return manifest, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
