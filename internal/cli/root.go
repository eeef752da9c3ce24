// Package cli implements the gmboard command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dfb/gmtools/internal/logging"
	"github.com/dfb/gmtools/internal/paths"
	"github.com/dfb/gmtools/pkg/boards"
	"github.com/dfb/gmtools/pkg/catalog"
	"github.com/dfb/gmtools/pkg/kv"
	"github.com/dfb/gmtools/pkg/types"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app carries the state shared by one command invocation.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool

	cfg    *viper.Viper
	logger *slog.Logger
	units  *catalog.Catalog
}

// NewRootCmd creates the gmboard command tree. Output goes to the command's
// configured writers so tests can capture it.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "gmboard",
		Short:         "Create, edit and resize tactical-game boards",
		Long:          "gmboard manages the boards of a tactical-game editor: a named grid of\ntiles with terrain, lighting, movement rules and placed units.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir, or $"+paths.EnvConfigDir+")")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: ./"+paths.DefaultDataDirName+", or $"+paths.EnvDataDir+")")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log store and board operations at debug level")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newListCmd(a),
		newCreateCmd(a),
		newShowCmd(a),
		newResizeCmd(a),
		newRenameCmd(a),
		newDeleteCmd(a),
		newTileCmd(a),
		newPlaceCmd(a),
		newFindCmd(a),
		newUnitsCmd(a),
	)
	return root
}

// Execute runs gmboard with os.Args and returns the process exit code.
func Execute() int {
	return run(context.Background(), NewRootCmd(), os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, root *cobra.Command, args []string, stdout, stderr io.Writer) int {
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	defer logging.Redirect(stderr)()

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "gmboard:", err)
	return exitCode(err)
}

// setup resolves directories and loads config.yaml. The store is opened
// by the commands that need it, through withService.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return systemError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	cfg, err := loadConfig(configDir)
	if err != nil {
		return systemError(err)
	}
	a.cfg = cfg

	lvl, err := logging.ParseLevel(cfg.GetString(cfgKeyLogLevel))
	if err != nil {
		return userError(err)
	}
	logging.SetLevel(lvl)
	a.logger = logging.Default().With("cmd", cmd.Name())

	dataDir, err := paths.ResolveDataDir(a.dataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return systemError(fmt.Errorf("resolve data dir: %w", err))
	}
	a.dataDir = dataDir
	return nil
}

// withService attaches the configured store, runs fn against a board
// service over it, and detaches again. Errors come back classified. With
// --verbose the whole exchange is logged at debug level.
func (a *app) withService(cmd *cobra.Command, fn func(ctx context.Context, svc *boards.Service) error) error {
	if !a.verbose {
		return a.serve(cmd, fn)
	}
	var err error
	logging.Bracket(slog.LevelDebug, func() {
		err = a.serve(cmd, fn)
	})
	return err
}

func (a *app) serve(cmd *cobra.Command, fn func(ctx context.Context, svc *boards.Service) error) (err error) {
	config := storeConfig(a.cfg, a.dataDir)
	if err := config.Validate(); err != nil {
		return userError(fmt.Errorf("config.yaml: %w", err))
	}
	// Each command opens its own store, so a memory store would start empty
	// every time.
	if config.Backend == types.BackendMemory {
		return userError(fmt.Errorf("config.yaml: backend %q keeps nothing between commands; use %q", types.BackendMemory, types.BackendSQLite))
	}

	ids, err := boards.NewIDGenerator(config.IDScheme, nil)
	if err != nil {
		return userError(fmt.Errorf("config.yaml: %w", err))
	}

	store, err := kv.Open(config, a.logger)
	if err != nil {
		return systemError(fmt.Errorf("open store: %w", err))
	}
	defer func() {
		if derr := store.Detach(); derr != nil && err == nil {
			err = systemError(fmt.Errorf("close store: %w", derr))
		}
	}()

	svc := boards.NewService(store,
		boards.WithIDGenerator(ids),
		boards.WithLogger(a.logger),
	)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return classify(fn(ctx, svc))
}

// catalog loads the unit catalog named in config.yaml, or the built-in one.
func (a *app) catalog() (*catalog.Catalog, error) {
	if a.units != nil {
		return a.units, nil
	}
	units, err := catalog.LoadOrDefault(a.cfg.GetString(cfgKeyCatalogFile))
	if err != nil {
		return nil, userError(err)
	}
	a.units = units
	return units, nil
}

// exitErr attaches an exit code to an error.
type exitErr struct {
	code int
	err  error
}

func (e *exitErr) Error() string { return e.err.Error() }
func (e *exitErr) Unwrap() error { return e.err }

func userError(err error) error   { return &exitErr{code: exitUserError, err: err} }
func systemError(err error) error { return &exitErr{code: exitSysError, err: err} }

// userErrors are caused by arguments or data the user supplied.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrInvalidDimensions,
	types.ErrOutOfBounds,
	types.ErrInvalidQuery,
	types.ErrMalformedBoard,
	catalog.ErrInvalidCatalog,
	catalog.ErrUnitNotFound,
}

// classify wraps err with the exit code its cause calls for.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitErr
	if errors.As(err, &ee) {
		return err
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return systemError(err)
}

// exitCode maps err to a process exit code. Errors that carry no code come
// from cobra's flag and argument parsing, which makes them user errors.
func exitCode(err error) int {
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
