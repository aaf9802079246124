package search

import (
	"strings"

	"github.com/locktivity/epack-collector-github-search/internal/github"
)

// DisplayRecord is everything a renderer needs to present one repository.
type DisplayRecord struct {
	Platform      string   `json:"platform"`
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle"`
	Link          string   `json:"link"`
	Description   *string  `json:"description,omitempty"`
	Languages     []string `json:"languages"`
	LatestRelease *string  `json:"latest_release,omitempty"`
	Stars         int      `json:"stars"`
	Forks         int      `json:"forks"`
	DiskUsageKB   int      `json:"disk_usage_kb"`
	Topics        []string `json:"topics"`
}

// Transform converts search edges into display records, dropping forks.
// Record order follows edge order.
func Transform(edges []github.Edge) []DisplayRecord {
	records := make([]DisplayRecord, 0, len(edges))
	for _, edge := range edges {
		if edge.Node.IsFork() {
			continue
		}
		records = append(records, newDisplayRecord(edge.Node))
	}
	return records
}

func newDisplayRecord(repo github.Repository) DisplayRecord {
	return DisplayRecord{
		Platform:      Platform,
		Title:         repo.Name,
		Subtitle:      SubtitlePrefix + repo.NameWithOwner,
		Link:          repo.URL,
		Description:   description(repo),
		Languages:     languageTags(repo),
		LatestRelease: latestRelease(repo),
		Stars:         repo.Stargazers.TotalCount,
		Forks:         repo.ForkCount,
		DiskUsageKB:   repo.DiskUsage,
		Topics:        topicTags(repo),
	}
}

func description(repo github.Repository) *string {
	if repo.Description == nil || len(*repo.Description) == 0 {
		return nil
	}
	d := *repo.Description
	return &d
}

// languageTags upper-cases language names.
func languageTags(repo github.Repository) []string {
	tags := make([]string, 0, len(repo.Languages.Nodes))
	for _, lang := range repo.Languages.Nodes {
		tags = append(tags, strings.ToUpper(lang.Name))
	}
	return tags
}

func topicTags(repo github.Repository) []string {
	tags := make([]string, 0, len(repo.RepositoryTopics.Nodes))
	for _, node := range repo.RepositoryTopics.Nodes {
		tags = append(tags, node.Topic.Name)
	}
	return tags
}

// latestRelease returns the release tag, if any. The query asks for the
// last release only, so the first node is the most recent one.
func latestRelease(repo github.Repository) *string {
	if len(repo.Releases.Nodes) == 0 {
		return nil
	}
	tag := repo.Releases.Nodes[0].TagName
	return &tag
}
