package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/linkwish/linkwish"
	"github.com/linkwish/linkwish/config"
	"github.com/linkwish/linkwish/extract"
	"github.com/linkwish/linkwish/gemini"
	"github.com/linkwish/linkwish/goquery"
	lwhttp "github.com/linkwish/linkwish/http"
	"github.com/linkwish/linkwish/rod"
	lwslog "github.com/linkwish/linkwish/slog"
	"github.com/linkwish/linkwish/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Loaded configuration. Set during Run().
	Config *config.Config

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Closers for resources that outlive command parsing.
	fetcher  linkwish.Fetcher
	renderer linkwish.Renderer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.renderer != nil {
		_ = m.renderer.Close()
	}
	if m.fetcher != nil {
		_ = m.fetcher.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	m.Config = cfg

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		Config: cfg,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("linkwish"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'linkwish --help' to see available commands")
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

	m.DB = sqlite.NewDB(cfg.Store.Path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LINKWISH_STORE_PATH to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cfg.Store.Path, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Wishlist = sqlite.NewWishlistService(m.DB)

	// Commands that extract need the pipeline; list/remove only touch the store.
	if cmd == "serve" || cmd == "peek" || cmd == "add" {
		pipeline, err := m.buildPipeline(ctx, logger, stderr)
		if err != nil {
			return err
		}
		deps.Pipeline = pipeline
	}

	return kongCtx.Run(deps)
}

// buildPipeline assembles the extraction strategies. The structural and
// fallback strategies are always present; the AI-assisted strategy joins
// only when a Gemini API key is configured and a browser can start.
func (m *Main) buildPipeline(ctx context.Context, logger *slog.Logger, stderr io.Writer) (*extract.Pipeline, error) {
	cfg := m.Config

	fetcher := lwhttp.NewFetcher(lwhttp.WithTimeout(cfg.Extract.FetchTimeout))
	m.fetcher = fetcher

	extractors := []linkwish.Extractor{
		lwslog.NewLoggingExtractor(goquery.NewExtractor(fetcher), logger),
		lwslog.NewLoggingExtractor(extract.NewFallbackExtractor(), logger),
	}

	if cfg.Gemini.APIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your LINKWISH_GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		renderer, err := rod.NewRenderer(
			rod.WithMaxPages(cfg.Browser.MaxPages),
			rod.WithMaxConcurrent(cfg.Browser.MaxConcurrent),
		)
		if err != nil {
			// Extraction still works without the AI strategy.
			logger.Warn("browser unavailable, AI-assisted extraction disabled", "err", err)
		} else {
			m.renderer = renderer
			vision := extract.NewVisionExtractor(
				lwslog.NewLoggingRenderer(renderer, logger),
				gemini.NewDescriber(client, gemini.WithModel(cfg.Gemini.Model)),
				extract.WithRenderTimeout(cfg.Extract.RenderTimeout),
				extract.WithInferenceTimeout(cfg.Extract.InferenceTimeout),
			)
			extractors = append(extractors, lwslog.NewLoggingExtractor(vision, logger))
		}
	}

	return &extract.Pipeline{
		Extractors: extractors,
		Limiter:    extract.NewDomainLimiter(cfg.Extract.DomainRPS),
	}, nil
}
