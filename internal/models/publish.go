package models

// CreatedIssue records one issue GitHub accepted.
type CreatedIssue struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Number int    `json:"number"`
}

// FailedIssue records one issue GitHub rejected, with the reason.
type FailedIssue struct {
	Title string `json:"title"`
	Error string `json:"error"`
}

// CreationResult is the outcome of one publish invocation.
// Created and Failed each keep input order.
type CreationResult struct {
	Created      []CreatedIssue `json:"created"`
	Failed       []FailedIssue  `json:"failed"`
	TotalCreated int            `json:"total_created"`
}

// NewCreationResult returns an empty result whose lists marshal as [].
func NewCreationResult() *CreationResult {
	return &CreationResult{
		Created: []CreatedIssue{},
		Failed:  []FailedIssue{},
	}
}

// IssueDraft is what gets sent to the tracker for a single issue.
type IssueDraft struct {
	Title     string
	Body      string
	Labels    []string
	Assignees []string
	Milestone *int
}

// PublishedIssue is the tracker's answer to a successful creation.
type PublishedIssue struct {
	Number int
	URL    string
	Title  string
}

// PreviewItem is one row of a dry-run.
type PreviewItem struct {
	Title     string   `json:"title"`
	Labels    []string `json:"labels"`
	Assignees []string `json:"assignees"`
	Milestone *string  `json:"milestone"`
	Priority  Priority `json:"priority"`
}

// Preview is the dry-run answer: what would be created, nothing more.
type Preview struct {
	Items  []PreviewItem `json:"preview"`
	Total  int           `json:"total"`
	DryRun bool          `json:"dry_run"`
}

// Repository is the subset of repository metadata the front-end lists.
type Repository struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	FullName    string  `json:"full_name"`
	Private     bool    `json:"private"`
	Description *string `json:"description"`
	Owner       string  `json:"owner"`
}
