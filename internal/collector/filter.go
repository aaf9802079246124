package collector

import "github.com/locktivity/epack-collector-github-search/internal/search"

// recordFilter keeps the records whose repository name passes the
// include/exclude patterns and counts what it dropped.
type recordFilter struct {
	includePatterns []string
	excludePatterns []string

	kept     []search.DisplayRecord
	excluded int
}

func newRecordFilter(includePatterns, excludePatterns []string) *recordFilter {
	return &recordFilter{
		includePatterns: includePatterns,
		excludePatterns: excludePatterns,
		kept:            []search.DisplayRecord{},
	}
}

// add processes records in order; kept records keep their relative order.
func (f *recordFilter) add(records []search.DisplayRecord) {
	for _, record := range records {
		if !ShouldIncludeRepo(record.Title, f.includePatterns, f.excludePatterns) {
			f.excluded++
			continue
		}
		f.kept = append(f.kept, record)
	}
}

// coverage is the percentage of records kept.
func (f *recordFilter) coverage() int {
	return percent(len(f.kept), len(f.kept)+f.excluded)
}
