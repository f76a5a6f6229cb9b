package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/cannibal"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Reports cannibal.ReportService

	// Network collaborators. Commands build them from their flags
	// when nil.
	Fetcher  cannibal.Fetcher
	Robots   cannibal.RobotsChecker
	Sitemaps cannibal.SitemapService

	Now func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetches and crawl decisions to stderr"`

	Analyze AnalyzeCmd `cmd:"" help:"Crawl a site and report keywords shared by its pages"`
	Compare CompareCmd `cmd:"" help:"Report keywords shared by two pages"`
	Reports ReportsCmd `cmd:"" help:"Manage saved reports"`
}

// AnalysisFlags are the flags shared by analyze and compare.
type AnalysisFlags struct {
	NGram       []int         `name:"ngram" default:"1,2,3" help:"N-gram sizes to extract (1-3)"`
	TopK        int           `name:"top-k" default:"10" help:"Keywords kept per page and n-gram size"`
	Scoring     string        `enum:"frequency,weighted" default:"frequency" help:"Keyword scoring (${enum})"`
	MaxPages    int           `default:"100" help:"Maximum pages to fetch"`
	Timeout     time.Duration `default:"10s" help:"Per-page fetch timeout"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64       `name:"rps" default:"0" help:"Requests per second per site (0 for unlimited)"`
	Retries     int           `default:"2" help:"Retries for transient fetch failures"`

	Render       bool     `help:"Render pages in headless Chrome before extraction"`
	Content      string   `enum:"body,main,article" default:"body" help:"Text to analyze: whole body, main content, or readability article (${enum})"`
	Sitemap      bool     `help:"Seed the crawl from the site's sitemaps"`
	IgnoreRobots bool     `help:"Do not honor robots.txt"`
	Include      []string `help:"Only follow URLs matching regex (repeatable)"`
	Exclude      []string `help:"Never follow URLs matching regex (repeatable)"`

	Stem                 bool   `help:"Reduce words to their stems (english, french, spanish)"`
	Stopwords            string `default:"english" help:"Stopword language, path to an English word list, or 'none'"`
	SkipDuplicateContent bool   `help:"Ignore pages whose text repeats another page"`

	Format   string `short:"f" enum:"table,csv,markdown,json" default:"table" help:"Output format (${enum})"`
	Output   string `short:"o" type:"path" help:"Write the report to a file instead of stdout"`
	Save     bool   `help:"Save the report to the local database"`
	PagesDir string `type:"path" help:"Write the extracted text of every crawled page to this directory"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL      string `arg:"" help:"Site URL to crawl"`
	MaxDepth int    `default:"-1" help:"Maximum link hops from the seed (-1 for unlimited)"`

	AnalysisFlags `embed:""`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	URL1     string `arg:"" name:"url1" help:"First page URL"`
	URL2     string `arg:"" name:"url2" help:"Second page URL"`
	MaxDepth int    `default:"0" help:"Maximum link hops from each page"`

	AnalysisFlags `embed:""`
}

// ReportsCmd groups the saved report subcommands.
type ReportsCmd struct {
	List   ReportsListCmd   `cmd:"" help:"List saved reports"`
	Show   ReportsShowCmd   `cmd:"" help:"Print a saved report"`
	Delete ReportsDeleteCmd `cmd:"" help:"Delete a saved report"`
}

// ReportsListCmd is the "reports list" subcommand.
type ReportsListCmd struct {
	Seed  string `help:"Only reports for this seed URL"`
	Limit int    `short:"n" default:"20" help:"Maximum reports to list"`
}

// ReportsShowCmd is the "reports show" subcommand.
type ReportsShowCmd struct {
	ID     string `arg:"" help:"Report ID"`
	Format string `short:"f" enum:"table,csv,markdown,json" default:"table" help:"Output format (${enum})"`
	Output string `short:"o" type:"path" help:"Write the report to a file instead of stdout"`
}

// ReportsDeleteCmd is the "reports delete" subcommand.
type ReportsDeleteCmd struct {
	ID    string `arg:"" help:"Report ID"`
	Force bool   `help:"Confirm deletion"`
}
