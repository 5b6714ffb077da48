package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/cron"
	hhttp "github.com/fwojciec/harvest/http"
	hslog "github.com/fwojciec/harvest/slog"
	"github.com/fwojciec/harvest/sqlite"
	"github.com/fwojciec/harvest/yaml"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path, used when --db is not given. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// NewFetcher overrides the HTTP fetcher, for end-to-end testing.
	NewFetcher func(cfg harvest.Config) harvest.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("harvest"),
		kong.Description("Crawl blog categories and keep a deduplicated store of their articles."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'harvest --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	deps.Config, err = loadConfig(cli)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	deps.NewFetcher = m.NewFetcher
	if deps.NewFetcher == nil {
		deps.NewFetcher = newHTTPFetcher
	}
	deps.Scheduler = cron.NewScheduler(deps.Logger)

	switch kongCtx.Command() {
	case "config", "categories":
		// No store needed.
	default:
		dbPath := m.DBPath
		if cli.DB != "" {
			dbPath = cli.DB
		}
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set HARVEST_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()

		deps.DB = m.DB
		deps.Articles = hslog.NewLoggingArticleService(sqlite.NewArticleService(m.DB), deps.Logger)
	}

	return kongCtx.Run(deps)
}

// loadConfig layers the config file and the global flags over the
// defaults. Command flags are applied by the commands themselves.
func loadConfig(cli *CLI) (harvest.Config, error) {
	path, optional := cli.ConfigFile, false
	if path == "" {
		path, optional = yaml.DefaultConfigPath(), true
	}

	cfg, err := yaml.LoadConfig(path, harvest.DefaultConfig(), optional)
	if err != nil {
		return cfg, err
	}
	if cli.BaseURL != "" {
		cfg.BaseURL = cli.BaseURL
	}
	return cfg, cfg.Validate()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newHTTPFetcher(cfg harvest.Config) harvest.Fetcher {
	opts := []hhttp.Option{
		hhttp.WithTimeout(cfg.Timeout),
		hhttp.WithUserAgent(cfg.UserAgent),
	}
	if cfg.RespectRobots {
		opts = append(opts, hhttp.WithRobots())
	}
	return hhttp.NewFetcher(opts...)
}

func defaultDBPath() string {
	dir := filepath.Join(xdg.DataHome, "harvest")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "harvest.db"
	}
	return filepath.Join(dir, "harvest.db")
}
