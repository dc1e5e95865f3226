package model

import "time"

// RepoStatus combines the latest release and CI run state for one repository
// on the releases page.
type RepoStatus struct {
	Repo          string     `json:"repo"`
	ReleaseTag    string     `json:"release_tag,omitempty"`
	ReleaseName   string     `json:"release_name,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CIStatus      string     `json:"ci_status,omitempty"`
	CIConclusion  string     `json:"ci_conclusion,omitempty"`
	CIWorkflowURL string     `json:"ci_workflow_url,omitempty"`
}
