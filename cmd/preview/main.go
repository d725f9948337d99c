package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"setu-signal-bot/internal/analysis"
	"setu-signal-bot/internal/domain"
	"setu-signal-bot/internal/service"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
)

var (
	loadEnvFunc            = godotenv.Load
	openFileFunc           = func(path string) (io.ReadCloser, error) { return os.Open(path) }
	stdout       io.Writer = os.Stdout
)

var (
	longColor  = lipgloss.Color("#00FF00")
	shortColor = lipgloss.Color("#FF0000")
	waitColor  = lipgloss.Color("#FFFF00")

	subtextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

type options struct {
	paths []string
	plain bool
	seed  uint64
}

func main() {
	loadEnvFunc()

	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		log.Fatalf("parse options: %v", err)
	}

	var rng analysis.RandSource
	if opts.seed != 0 {
		rng = rand.New(rand.NewPCG(opts.seed, opts.seed))
	}
	svc := service.NewAnalysisService(nil, analysis.NewSynthesizer(rng, nil), nil, nil)

	if err := run(context.Background(), svc, opts); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, svc *service.AnalysisService, opts options) error {
	for _, path := range opts.paths {
		result, err := analyzeFile(ctx, svc, path)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, renderView(path, result, opts.plain))
	}
	return nil
}

func analyzeFile(ctx context.Context, svc *service.AnalysisService, path string) (*domain.Analysis, error) {
	f, err := openFileFunc(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	result, err := svc.Analyze(ctx, service.SourcePreview, f)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}
	return result, nil
}

func parseOptions(args []string) (options, error) {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: preview [-plain] [-seed N] screenshot.png [more.png ...]")
		fs.PrintDefaults()
	}

	plain := fs.Bool("plain", false, "print the raw Markdown report without a border")
	seed := fs.Uint64("seed", 0, "seed the random source for reproducible output (0 picks a random seed)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	paths := make([]string, 0, fs.NArg())
	for _, arg := range fs.Args() {
		if p := strings.TrimSpace(arg); p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return options{}, fmt.Errorf("at least one screenshot path is required")
	}

	return options{paths: paths, plain: *plain, seed: *seed}, nil
}

func renderView(path string, a *domain.Analysis, plain bool) string {
	if plain {
		return a.Report
	}

	action := a.Record.RecommendedAction()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(actionColor(action)).
		Padding(0, 1)

	header := subtextStyle.Render(fmt.Sprintf("%s  %s", filepath.Base(path), action))
	return lipgloss.JoinVertical(lipgloss.Left, header, box.Render(a.Report))
}

func actionColor(action domain.Action) lipgloss.Color {
	switch action {
	case domain.ActionLong:
		return longColor
	case domain.ActionShort:
		return shortColor
	default:
		return waitColor
	}
}
