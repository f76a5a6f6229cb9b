package cannibal

import "slices"

// KeywordAggregate collects the occurrences of one keyword across pages.
// Pages holds at most one occurrence per page URL.
type KeywordAggregate struct {
	Keyword    string
	Pages      map[string]KeywordOccurrence
	TotalCount int
	Density    float64
}

// NewKeywordAggregate returns an empty aggregate for keyword.
func NewKeywordAggregate(keyword string) *KeywordAggregate {
	return &KeywordAggregate{
		Keyword: keyword,
		Pages:   make(map[string]KeywordOccurrence),
	}
}

// Insert adds an occurrence to the aggregate. Inserting a second
// occurrence for the same page adds its count to the existing entry,
// so the final aggregate does not depend on insertion order.
func (a *KeywordAggregate) Insert(occ KeywordOccurrence) {
	if existing, ok := a.Pages[occ.PageURL]; ok {
		existing.Count += occ.Count
		existing.PageWordCount = max(existing.PageWordCount, occ.PageWordCount)
		occ = existing
	}
	occ.Keyword = a.Keyword
	a.Pages[occ.PageURL] = occ
	a.recount()
}

// Merge folds other's occurrences into a.
func (a *KeywordAggregate) Merge(other *KeywordAggregate) {
	for _, url := range other.PageURLs() {
		a.Insert(other.Pages[url])
	}
}

// ComputeDensity sets and returns the mean per-page density.
func (a *KeywordAggregate) ComputeDensity() float64 {
	if len(a.Pages) == 0 {
		a.Density = 0
		return 0
	}
	var sum float64
	for _, url := range a.PageURLs() {
		sum += a.Pages[url].Density()
	}
	a.Density = min(max(sum/float64(len(a.Pages)), 0), 100)
	return a.Density
}

// PageURLs returns the aggregate's page URLs in lexicographic order.
func (a *KeywordAggregate) PageURLs() []string {
	urls := make([]string, 0, len(a.Pages))
	for url := range a.Pages {
		urls = append(urls, url)
	}
	slices.Sort(urls)
	return urls
}

func (a *KeywordAggregate) recount() {
	total := 0
	for _, occ := range a.Pages {
		total += occ.Count
	}
	a.TotalCount = total
}

// Aggregate merges per-page keyword lists into a cross-page index keyed
// by keyword. It is a pure function of its inputs; the result does not
// depend on map iteration order.
func Aggregate(perPage map[string][]Keyword, wordCounts map[string]int) map[string]*KeywordAggregate {
	aggregates := make(map[string]*KeywordAggregate)
	for pageURL, keywords := range perPage {
		for _, kw := range keywords {
			if kw.Term == "" {
				continue
			}
			agg, ok := aggregates[kw.Term]
			if !ok {
				agg = NewKeywordAggregate(kw.Term)
				aggregates[kw.Term] = agg
			}
			agg.Insert(KeywordOccurrence{
				Keyword:       kw.Term,
				PageURL:       pageURL,
				Count:         kw.Count,
				PageWordCount: wordCounts[pageURL],
			})
		}
	}
	return aggregates
}
