package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/cannibal"
	"github.com/fwojciec/cannibal/keyword"
	"golang.org/x/sync/errgroup"
)

// State is a stage of an analysis run.
type State int

// Analysis states, in the order a run passes through them.
const (
	StateIdle State = iota
	StateSeeding
	StateCrawling
	StateExtracting
	StateAggregating
	StateRanked
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSeeding:
		return "seeding"
	case StateCrawling:
		return "crawling"
	case StateExtracting:
		return "extracting"
	case StateAggregating:
		return "aggregating"
	case StateRanked:
		return "ranked"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// MaxSeeds is the number of seeds one run accepts: a site, or two pages
// or sites to compare.
const MaxSeeds = 2

// Analyzer runs the whole pipeline: crawl, extract keywords per page,
// aggregate them across pages, and rank the shared ones.
type Analyzer struct {
	// Crawler supplies the fetch collaborators. Its bounds are replaced
	// by the ones in Options for each run.
	Crawler *Crawler
	// Extractor supplies the stopwords. Nil removes no stopwords.
	Extractor *keyword.Extractor
	Options   cannibal.Options

	// OnState, if set, is called on every state transition.
	OnState func(State)
	// Progress, if set, receives crawl progress.
	Progress ProgressFunc
	// PageStore, if set, receives the text of every crawled page.
	PageStore cannibal.PageStore
	// Now returns the report timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Analyze runs one analysis over one or two seeds. Invalid seeds or
// options fail before any network activity. A run where no page could
// be retrieved returns a report with status empty rather than an error;
// use Report.Err to surface it.
func (a *Analyzer) Analyze(ctx context.Context, seeds []string) (*cannibal.Report, error) {
	a.setState(StateIdle)
	a.setState(StateSeeding)

	if len(seeds) == 0 || len(seeds) > MaxSeeds {
		return nil, cannibal.Errorf(cannibal.EINVALID, "expected 1 or %d seed URLs, got %d", MaxSeeds, len(seeds))
	}
	normalized := make([]string, 0, len(seeds))
	for _, raw := range seeds {
		u, err := cannibal.ParseSeed(raw)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, u.String())
	}
	opts := a.Options
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := a.extractor(opts).Validate(); err != nil {
		return nil, err
	}

	a.setState(StateCrawling)
	crawler := *a.Crawler
	crawler.MaxPages = opts.MaxPages
	crawler.MaxDepth = opts.MaxDepth
	crawler.Concurrency = opts.Concurrency
	crawler.FetchTimeout = opts.FetchTimeout
	crawler.SkipDuplicateContent = opts.SkipDuplicateContent

	crawled, err := crawler.Crawl(ctx, normalized, a.Progress)
	if err != nil {
		return nil, err
	}

	if a.PageStore != nil {
		if err := savePages(ctx, a.PageStore, crawled.Pages); err != nil {
			return nil, err
		}
	}

	report := &cannibal.Report{
		Seeds:        normalized,
		Options:      opts,
		PagesCrawled: len(crawled.Pages),
		PagesFailed:  len(crawled.Failures),
		PagesSkipped: crawled.Skipped,
		Failures:     crawled.Failures,
		Records:      []*cannibal.Record{},
		CreatedAt:    a.now().UTC().Truncate(time.Second),
	}

	if len(crawled.Pages) > 0 {
		a.setState(StateExtracting)
		perPage, err := a.extract(ctx, crawled.Pages, opts)
		if err != nil {
			return nil, err
		}

		a.setState(StateAggregating)
		wordCounts := make(map[string]int, len(crawled.Pages))
		for _, page := range crawled.Pages {
			wordCounts[page.URL] = page.WordCount
		}
		aggregates := cannibal.Aggregate(perPage, wordCounts)

		report.Records = cannibal.Rank(aggregates)
		a.setState(StateRanked)
	}

	report.SetStatus()
	a.setState(StateDone)
	return report, nil
}

// extractor returns the configured keyword extractor with the run's
// stemming option applied.
func (a *Analyzer) extractor(opts cannibal.Options) *keyword.Extractor {
	var extractor keyword.Extractor
	if a.Extractor != nil {
		extractor = *a.Extractor
	}
	extractor.Stem = extractor.Stem || opts.Stem
	return &extractor
}

// extract returns each page's top keywords for every configured n-gram
// size. Weighted scoring builds one corpus per size from every page
// before any page is scored.
func (a *Analyzer) extract(ctx context.Context, pages []*cannibal.Page, opts cannibal.Options) (map[string][]cannibal.Keyword, error) {
	sizes := opts.NGrams()
	concurrency := max(opts.Concurrency, 1)
	extractor := a.extractor(opts)

	// terms[s][i] holds the n-grams of size sizes[s] for pages[i].
	terms := make([][][]string, len(sizes))
	for s := range sizes {
		terms[s] = make([][]string, len(pages))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, page := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tokens := extractor.Tokens(page.Text)
			for s, n := range sizes {
				terms[s][i] = keyword.NGrams(tokens, n)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	corpora := make([]*keyword.Corpus, len(sizes))
	if opts.Scoring == cannibal.ScoreWeighted {
		for s := range sizes {
			corpora[s] = keyword.NewCorpus()
			for i := range pages {
				corpora[s].Add(terms[s][i])
			}
		}
	}

	keywords := make([][]cannibal.Keyword, len(pages))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for s := range sizes {
				kws, err := keyword.Score(terms[s][i], opts.TopK, opts.Scoring, corpora[s])
				if err != nil {
					return err
				}
				keywords[i] = append(keywords[i], kws...)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	perPage := make(map[string][]cannibal.Keyword, len(pages))
	for i, page := range pages {
		perPage[page.URL] = keywords[i]
	}
	return perPage, nil
}

// savePages saves every page and commits, or aborts on the first error.
func savePages(ctx context.Context, store cannibal.PageStore, pages []*cannibal.Page) error {
	for _, page := range pages {
		if err := store.Save(ctx, page); err != nil {
			store.Abort()
			return err
		}
	}
	return store.Commit()
}

func (a *Analyzer) setState(s State) {
	if a.OnState != nil {
		a.OnState(s)
	}
}

func (a *Analyzer) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
