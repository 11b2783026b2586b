package views

// SiteInfo carries site-wide values that do not come from the CMS.
type SiteInfo struct {
	Name        string // fallback title when the CMS has no site title
	URL         string // canonical base, e.g. https://studio.example
	Description string
	Stylesheet  string // href of the page stylesheet
	HtmxSrc     string // optional htmx script; empty disables partial swaps
}

// SnapshotRow is one stored content snapshot as listed in the admin.
type SnapshotRow struct {
	ID        int64
	FetchedAt string
	Source    string
	Size      int
}
