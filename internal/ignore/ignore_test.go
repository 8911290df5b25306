package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anubhavpatrick/Cluster-Images/internal/logging"
	"github.com/anubhavpatrick/Cluster-Images/pkg/model"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger = logging.NewLogger("error")

func writeIgnoreFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "images_to_ignore.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadIgnoreSet(t *testing.T) {

	path := writeIgnoreFile(t, `IMAGE,TAG,IMAGE ID,SIZE
docker.io/library/redis,7.2,170a1e90f8437,117MB
registry.k8s.io/pause,3.9,e6f1816883972,745kB
,, ,
`)
	ids, err := LoadIgnoreSet(path, logger)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "170a1e90f8437")
	assert.Contains(t, ids, "e6f1816883972")
}

func TestLoadIgnoreSetMissingFile(t *testing.T) {

	ids, err := LoadIgnoreSet(filepath.Join(t.TempDir(), "nope.txt"), logger)
	assert.NoError(t, err)
	assert.Empty(t, ids)

	// empty path disables the feature
	ids, err = LoadIgnoreSet("", logger)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLoadIgnoreSetMissingColumn(t *testing.T) {

	path := writeIgnoreFile(t, `IMAGE,TAG,ID,SIZE
docker.io/library/redis,7.2,170a1e90f8437,117MB
`)
	ids, err := LoadIgnoreSet(path, logger)
	assert.Error(t, err)
	assert.Empty(t, ids)

	// the match is case-sensitive
	path = writeIgnoreFile(t, "image id\n170a1e90f8437\n")
	_, err = LoadIgnoreSet(path, logger)
	assert.Error(t, err)
}

func TestLoadIgnoreSetEmptyFile(t *testing.T) {

	ids, err := LoadIgnoreSet(writeIgnoreFile(t, ""), logger)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFilter(t *testing.T) {

	images := []model.ContainerdImage{
		{Repository: "docker.io/library/redis", Tag: "7.2", ImageId: "170a1e90f8437"},
		{Repository: "registry.k8s.io/pause", Tag: "3.9", ImageId: "e6f1816883972"},
		{Repository: "docker.io/library/nginx", Tag: "latest", ImageId: "9a2e5a5ae9c6b"},
	}

	filtered := Filter(images, map[string]struct{}{"e6f1816883972": {}})
	require.Len(t, filtered, 2)
	ids := lo.Map(filtered, func(image model.ContainerdImage, _ int) string { return image.ImageId })
	assert.NotContains(t, ids, "e6f1816883972")

	// exact full-identifier match only, no prefix semantics
	filtered = Filter(images, map[string]struct{}{"e6f18": {}})
	assert.Len(t, filtered, 3)

	// empty set is a no-op
	assert.Equal(t, images, Filter(images, nil))
}
