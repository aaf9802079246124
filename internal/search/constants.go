package search

// Query bounds. The search is a single page; there is no cursor.
const (
	PageSize       = 100
	LanguagesLimit = 5
	ReleasesLimit  = 1
	TopicsLimit    = 10
)

// Platform is the tag carried by every record produced from GitHub.
const Platform = "github"

// SubtitlePrefix precedes the owner/name path in a record subtitle.
const SubtitlePrefix = "github.com > "
