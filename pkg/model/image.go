package model

// ContainerdImage is one image known to the local containerd runtime,
// parsed from crictl output. Size keeps the crictl display form (e.g. "117MB"),
// SizeBytes the normalized byte count used for tests and comparisons.
type ContainerdImage struct {
	Repository string `json:"repository"`
	Tag        string `json:"tag"`
	ImageId    string `json:"image_id"`
	Size       string `json:"size"`
	SizeBytes  uint64 `json:"-"`
}

// HarborImage is one tag of an artifact in the Harbor registry.
// An artifact with N tags yields N entries sharing digest and size.
type HarborImage struct {
	Project    string `json:"project"`
	Repository string `json:"repository"`
	Tag        string `json:"tag"`
	Digest     string `json:"digest"`
	Size       uint64 `json:"size"`
}

// AggregateResult combines both image sources plus accumulated errors.
// Partial success is a valid terminal state: an error for one source never
// suppresses data from the other.
type AggregateResult struct {
	ContainerdImages []ContainerdImage `json:"containerd_images"`
	HarborImages     []HarborImage     `json:"harbor_images"`
	Errors           []string          `json:"errors"`
}

// NewAggregateResult returns a result with empty (non-nil) sequences so the
// JSON arrays are never null.
func NewAggregateResult() AggregateResult {
	return AggregateResult{
		ContainerdImages: []ContainerdImage{},
		HarborImages:     []HarborImage{},
		Errors:           []string{},
	}
}
