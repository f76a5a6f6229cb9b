package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/cannibal"
	"github.com/fwojciec/cannibal/crawl"
	"github.com/fwojciec/cannibal/fs"
	"github.com/fwojciec/cannibal/goquery"
	cannibalhttp "github.com/fwojciec/cannibal/http"
	"github.com/fwojciec/cannibal/keyword"
	"github.com/fwojciec/cannibal/readability"
	"github.com/fwojciec/cannibal/rod"
	cannibalslog "github.com/fwojciec/cannibal/slog"
	"github.com/fwojciec/cannibal/trafilatura"
)

// retryBaseDelay is the first backoff delay; each retry doubles it.
const retryBaseDelay = time.Second

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	return c.AnalysisFlags.run(deps, []string{c.URL}, c.MaxDepth)
}

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	return c.AnalysisFlags.run(deps, []string{c.URL1, c.URL2}, c.MaxDepth)
}

// run analyzes seeds and writes the report.
func (f *AnalysisFlags) run(deps *Dependencies, seeds []string, maxDepth int) error {
	writer, err := reportWriter(f.Format)
	if err != nil {
		return err
	}

	analyzer, closeFn, err := f.analyzer(deps, maxDepth)
	if err != nil {
		return err
	}
	defer closeFn()

	report, err := analyzer.Analyze(deps.Ctx, seeds)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stderr, "Crawled %d pages (%d failed, %d skipped)\n",
		report.PagesCrawled, report.PagesFailed, report.PagesSkipped)
	if err := report.Err(); err != nil {
		return err
	}

	if f.Save {
		if err := deps.Reports.CreateReport(deps.Ctx, report); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved report %s\n", report.ID)
	}

	if report.Status == cannibal.StatusNone && f.Format != "table" {
		fmt.Fprintln(deps.Stderr, "No cannibalization found.")
	}
	return writeReport(deps, writer, report, f.Output)
}

// options converts the flags to analysis options.
func (f *AnalysisFlags) options(maxDepth int) (cannibal.Options, error) {
	scoring, err := cannibal.ParseScoringMode(f.Scoring)
	if err != nil {
		return cannibal.Options{}, err
	}
	opts := cannibal.Options{
		NGramSizes:           f.NGram,
		TopK:                 f.TopK,
		Scoring:              scoring,
		MaxPages:             f.MaxPages,
		MaxDepth:             maxDepth,
		FetchTimeout:         f.Timeout,
		Concurrency:          f.Concurrency,
		Stem:                 f.Stem,
		SkipDuplicateContent: f.SkipDuplicateContent,
	}
	if f.Retries < 0 {
		return cannibal.Options{}, cannibal.Errorf(cannibal.EINVALID, "retries must not be negative")
	}
	if f.RPS < 0 {
		return cannibal.Options{}, cannibal.Errorf(cannibal.EINVALID, "rps must not be negative")
	}
	return opts, opts.Validate()
}

// analyzer wires an Analyzer from the flags. The returned function
// releases the collaborators it created.
func (f *AnalysisFlags) analyzer(deps *Dependencies, maxDepth int) (*crawl.Analyzer, func() error, error) {
	noop := func() error { return nil }

	opts, err := f.options(maxDepth)
	if err != nil {
		return nil, noop, err
	}
	filter, err := cannibal.NewURLFilter(f.Include, f.Exclude)
	if err != nil {
		return nil, noop, err
	}
	stopwords, err := loadStopwords(f.Stopwords)
	if err != nil {
		return nil, noop, err
	}
	extractor := keyword.NewExtractor(stopwords)
	extractor.Stem = f.Stem
	if err := extractor.Validate(); err != nil {
		return nil, noop, err
	}

	logger := deps.Logger
	closeFn := noop

	fetcher := deps.Fetcher
	if fetcher == nil {
		if f.Render {
			rf, err := rod.NewFetcher(rod.WithFetchTimeout(f.Timeout))
			if err != nil {
				fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --render")
				return nil, noop, fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = rf
		} else {
			fetcher = cannibalhttp.NewFetcher(cannibalhttp.WithTimeout(f.Timeout))
		}
		closeFn = fetcher.Close
	}

	var text cannibal.TextExtractor = goquery.NewTextExtractor()
	switch f.Content {
	case "main":
		text = trafilatura.NewTextExtractor(text)
	case "article":
		text = readability.NewTextExtractor(text)
	}

	crawler := &crawl.Crawler{
		Fetcher:       cannibalslog.NewLoggingFetcher(fetcher, logger),
		TextExtractor: cannibalslog.NewLoggingTextExtractor(text, logger),
		LinkSelector:  goquery.NewLinkSelector(),
		Filter:        filter,
		RetryDelays:   crawl.BackoffDelays(f.Retries, retryBaseDelay),
		Logger:        logger,
	}
	if f.RPS > 0 {
		crawler.RateLimiter = crawl.NewDomainLimiter(f.RPS)
	}
	// robots.txt and sitemaps are plain documents; they never need a
	// browser, but they share the page fetch timeout.
	metaFetcher := cannibalhttp.NewFetcher(cannibalhttp.WithTimeout(f.Timeout))
	if !f.IgnoreRobots {
		robots := deps.Robots
		if robots == nil {
			robots = cannibalhttp.NewRobotsChecker(metaFetcher, cannibalhttp.DefaultUserAgent)
		}
		crawler.Robots = cannibalslog.NewLoggingRobotsChecker(robots, logger)
	}
	if f.Sitemap {
		sitemaps := deps.Sitemaps
		if sitemaps == nil {
			sitemaps = cannibalhttp.NewSitemapService(cannibalslog.NewLoggingFetcher(metaFetcher, logger))
		}
		crawler.Sitemaps = cannibalslog.NewLoggingSitemapService(sitemaps, logger)
	}

	analyzer := &crawl.Analyzer{
		Crawler:   crawler,
		Extractor: extractor,
		Options:   opts,
		Now:       deps.Now,
		Progress: func(e crawl.ProgressEvent) {
			switch e.Type {
			case crawl.ProgressFailed:
				fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", crawl.TruncateURL(e.URL, 80), cannibal.ErrorMessage(e.Error))
			case crawl.ProgressFinished:
				fmt.Fprintf(deps.Stderr, "Fetched %s in %d requests\n", crawl.FormatBytes(e.Bytes), e.Completed)
			}
		},
	}
	if f.PagesDir != "" {
		analyzer.PageStore = fs.NewFileStore(filepath.Dir(f.PagesDir), filepath.Base(f.PagesDir))
	}
	return analyzer, closeFn, nil
}

// loadStopwords resolves the --stopwords value: "none", a file path,
// or an embedded language list. Word list files are English.
func loadStopwords(value string) (*keyword.Stopwords, error) {
	if value == "none" {
		return keyword.NewStopwords(keyword.DefaultLanguage), nil
	}
	if info, err := os.Stat(value); err == nil && !info.IsDir() {
		file, err := os.Open(value)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return keyword.ReadStopwords(keyword.DefaultLanguage, file)
	}
	return keyword.LoadStopwords(value)
}
