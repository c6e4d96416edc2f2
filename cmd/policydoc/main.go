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

	"github.com/alecthomas/kong"
	"github.com/fwojciec/policydoc"
	"github.com/fwojciec/policydoc/fs"
	"github.com/fwojciec/policydoc/goldmark"
	"github.com/fwojciec/policydoc/goquery"
	"github.com/fwojciec/policydoc/htmltomarkdown"
	pdhttp "github.com/fwojciec/policydoc/http"
	"github.com/fwojciec/policydoc/json"
	pdslog "github.com/fwojciec/policydoc/slog"
	"github.com/fwojciec/policydoc/sqlite"
	"github.com/fwojciec/policydoc/yaml"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Values already in the environment win over .env.
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Record service for end-to-end testing.
	RecordService policydoc.RecordService
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("policydoc"),
		kong.Description("Search, highlight and export policy documents."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'policydoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set POLICYDOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.RecordService = pdslog.NewLoggingRecordService(sqlite.NewRecordService(m.DB), deps.Logger)
	deps.Records = m.RecordService
	deps.Exports = func(dir string) policydoc.ExportWriter {
		return fs.NewExportWriter(dir)
	}

	decoders := newDecoders()
	deps.Loader = pdslog.NewLoggingLoader(&SourceLoader{
		Files: fs.NewLoader(decoders),
		URLs:  pdhttp.NewLoader(decoders),
	}, deps.Logger)

	return kongCtx.Run(deps)
}

// newDecoders returns a decoder for every supported document format.
func newDecoders() policydoc.Decoders {
	markdown := goldmark.NewDecoder()
	return policydoc.Decoders{
		policydoc.FormatJSON:     json.NewDecoder(),
		policydoc.FormatYAML:     yaml.NewDecoder(),
		policydoc.FormatMarkdown: markdown,
		policydoc.FormatHTML:     goquery.NewDecoder(htmltomarkdown.NewConverter(), markdown),
	}
}

func defaultDBPath() string {
	if path := os.Getenv("POLICYDOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "policydoc.db"
	}
	dir := filepath.Join(home, ".policydoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "policydoc.db")
}
