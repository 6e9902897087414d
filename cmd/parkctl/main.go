// Command parkctl loads a parks payload once and prints what the service
// would serve for a query: the visible page, facets, and statistics, or the
// CSV export.
//
// Usage:
//
//	go run ./cmd/parkctl -file data/parks.csv -q clifton -facet major-sites -pages 2
//	go run ./cmd/parkctl -url https://example.org/parks.csv -format csv > bristol_parks_data.csv
//
// With neither -file nor -url the built-in sample parks are used.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/couchcryptid/parks-data-service/internal/adapter/source"
	"github.com/couchcryptid/parks-data-service/internal/catalog"
	"github.com/couchcryptid/parks-data-service/internal/domain"
	"github.com/couchcryptid/parks-data-service/internal/observability"
	"github.com/couchcryptid/parks-data-service/internal/pipeline"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

type options struct {
	file      string
	url       string
	timeout   time.Duration
	delimiter string
	search    string
	facet     string
	pages     int
	format    string
	asOf      string
}

// report is the json output shape.
type report struct {
	Meta   catalog.Meta           `json:"meta"`
	Stats  catalog.Stats          `json:"stats"`
	Facets []catalog.FilterOption `json:"facets"`
	View   catalog.View           `json:"view"`
}

func main() {
	_ = godotenv.Load(".env")
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.asOf != "" {
		at, err := time.Parse(time.RFC3339, opts.asOf)
		if err != nil {
			fmt.Fprintf(stderr, "invalid -as-of: %v\n", err)
			return 2
		}
		pipeline.SetClock(clockwork.NewFakeClockAt(at))
		defer pipeline.SetClock(nil)
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewUnregisteredMetrics()

	loader := pipeline.New(buildSource(opts, logger, metrics), pipeline.NewTransformer(opts.delimiter), nil, logger, metrics, 0)
	cat, err := loader.Load(context.Background())
	if err != nil {
		fmt.Fprintf(stderr, "load failed: %v\n", err)
		return 1
	}

	if err := render(stdout, cat, opts); err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("parkctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.file, "file", "", "path to a parks CSV payload")
	fs.StringVar(&opts.url, "url", "", "URL of a parks CSV payload, tried before -file")
	fs.DurationVar(&opts.timeout, "timeout", 10*time.Second, "HTTP fetch timeout")
	fs.StringVar(&opts.delimiter, "delimiter", domain.DefaultDelimiter, "field delimiter")
	fs.StringVar(&opts.search, "q", "", "search term")
	fs.StringVar(&opts.facet, "facet", catalog.FacetAll, "facet: all, major-sites, or a park type")
	fs.IntVar(&opts.pages, "pages", 1, "number of pages to reveal")
	fs.StringVar(&opts.format, "format", "table", "output format: table, json, or csv")
	fs.StringVar(&opts.asOf, "as-of", "", "fixed RFC3339 load time for reproducible output")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	switch opts.format {
	case "table", "json", "csv":
	default:
		fmt.Fprintf(stderr, "unknown -format %q\n", opts.format)
		return opts, errors.New("invalid format")
	}
	if opts.pages < 1 {
		fmt.Fprintln(stderr, "-pages must be at least 1")
		return opts, errors.New("invalid pages")
	}
	return opts, nil
}

func buildSource(opts options, logger *slog.Logger, metrics *observability.Metrics) domain.Source {
	var sources []domain.Source
	if opts.url != "" {
		sources = append(sources, source.NewHTTP(opts.url, opts.timeout, logger))
	}
	if opts.file != "" {
		sources = append(sources, source.NewFile(opts.file))
	}
	if len(sources) == 0 {
		return nil
	}
	return source.NewChain(logger, metrics, sources...)
}

func render(w io.Writer, cat *catalog.Catalog, opts options) error {
	q := catalog.Query{Search: opts.search, Facet: opts.facet}
	if opts.format == "csv" {
		return cat.Export(w, q)
	}

	session := catalog.NewSession(cat, catalog.PageSize)
	session.SetSearch(q.Search)
	session.SetFacet(q.Facet)
	view := session.View()
	for range opts.pages - 1 {
		view = session.More()
	}

	if opts.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report{Meta: cat.Meta(), Stats: cat.Stats(), Facets: cat.Facets(), View: view})
	}
	return writeTable(w, cat, view)
}

func writeTable(w io.Writer, cat *catalog.Catalog, view catalog.View) error {
	meta, stats := cat.Meta(), cat.Stats()
	fmt.Fprintf(w, "catalog v%d (%s, %s)\n", meta.Version, meta.Status, meta.Origin)
	fmt.Fprintf(w, "parks: %d  area: %d ha  avg rating: %.1f  major sites: %d\n\n",
		stats.TotalParks, stats.TotalAreaHectares, stats.AverageRating, stats.MajorSites)

	facets := make([]string, 0, len(cat.Facets()))
	for _, f := range cat.Facets() {
		facets = append(facets, fmt.Sprintf("%s (%d)", f.Label, f.Count))
	}
	fmt.Fprintf(w, "facets: %s\n\n", strings.Join(facets, ", "))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tLOCATION\tRATING\tHOURS")
	for _, p := range view.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.1f\t%s\n", p.ObjectID, p.SiteName, p.Type, p.Location, p.Rating, p.OpeningHours)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nshowing %d of %d", view.Visible, view.Total)
	if view.HasMore {
		fmt.Fprint(w, " (more available)")
	}
	_, err := fmt.Fprintln(w)
	return err
}
