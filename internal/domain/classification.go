package domain

// Provenance identifies which classifier stage produced a result.
type Provenance string

const (
	SourceLocal     Provenance = "local"
	SourceCloud     Provenance = "cloud"
	SourceHeuristic Provenance = "heuristic"
)

// Classification is the transient outcome of classifying a URL. It is
// never persisted as-is; its fields are copied into the bookmark and
// keyword records.
type Classification struct {
	// Keywords are deduplicated and ordered by relevance, at most five.
	Keywords []string `json:"keywords"`
	// Summary is never empty.
	Summary string `json:"summary"`
	// FolderPath is a non-empty suggested path, "/unsorted" by default.
	FolderPath string `json:"folder_path"`
	// Source tags the stage that produced this result.
	Source Provenance `json:"source"`
}
