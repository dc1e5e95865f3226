package config

import "strings"

// GitHubConfig controls the releases/CI-status aggregation component.
type GitHubConfig struct {
	// APIBaseURL is the GitHub API root. Override for GitHub Enterprise.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"https://api.github.com"`

	// Token is the API token used for release and workflow-run lookups.
	// When empty the releases endpoint reports itself unavailable.
	Token string `env:"TOKEN"`

	// Repos lists "owner/name" repositories to surface on the releases page.
	Repos []string `env:"REPOS" envSeparator:","`
}

// Sanitize applies guardrails to GitHub configuration values.
func (c *GitHubConfig) Sanitize() {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	c.Token = strings.TrimSpace(c.Token)

	repos := c.Repos[:0]
	for _, r := range c.Repos {
		r = strings.TrimSpace(r)
		if r == "" || !strings.Contains(r, "/") {
			continue
		}
		repos = append(repos, r)
	}
	c.Repos = repos
}

// Enabled returns true when the releases component can reach the GitHub API.
func (c *GitHubConfig) Enabled() bool {
	return c.Token != "" && len(c.Repos) > 0
}
