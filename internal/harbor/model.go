package harbor

import "fmt"

// Harbor v2.0 API response shapes, only the fields this service reads

type Project struct {
	ProjectId int    `json:"project_id"`
	Name      string `json:"name"`
}

type Repository struct {
	Id            int    `json:"id"`
	Name          string `json:"name"` // Harbor returns "<project>/<repository>"
	ArtifactCount int    `json:"artifact_count"`
}

type Tag struct {
	Name string `json:"name"`
}

type Artifact struct {
	Digest string `json:"digest"`
	Size   uint64 `json:"size"`
	Tags   []Tag  `json:"tags"`
}

// StatusError carries a non-2xx Harbor response so callers can pass the
// registry's status and detail through verbatim.
type StatusError struct {
	Code   int
	Detail string
}

func (rx *StatusError) Error() string {
	if rx.Detail == "" {
		return fmt.Sprintf("harbor returned status %d", rx.Code)
	}
	return fmt.Sprintf("harbor returned status %d: %s", rx.Code, rx.Detail)
}
