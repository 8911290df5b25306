package crictl

import (
	"testing"

	"github.com/anubhavpatrick/Cluster-Images/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var crictlOutput = `IMAGE                                      TAG                 IMAGE ID            SIZE
docker.io/library/redis                    7.2                 170a1e90f8437       117MB
registry.k8s.io/pause                      3.9                 e6f1816883972       745kB
docker.io/library/busybox                  <none>              af4709625109b       4.27MB
`

func TestParseImagesOutput(t *testing.T) {

	images, malformed, err := ParseImagesOutput(crictlOutput)
	require.NoError(t, err)
	assert.Equal(t, 0, malformed)
	require.Len(t, images, 3)

	assert.Equal(t, model.ContainerdImage{
		Repository: "docker.io/library/redis",
		Tag:        "7.2",
		ImageId:    "170a1e90f8437",
		Size:       "117MB",
		SizeBytes:  117_000_000,
	}, images[0])

	assert.Equal(t, "745kB", images[1].Size)
	assert.Equal(t, uint64(745_000), images[1].SizeBytes)
	assert.Equal(t, "<none>", images[2].Tag)
}

func TestParseImagesOutputMalformedRows(t *testing.T) {

	output := `IMAGE        TAG     IMAGE ID      SIZE
docker.io/library/redis 7.2 170a1e90f8437 117MB
short row
docker.io/library/nginx latest 9a2e5a5ae9c6b 52MB extra
registry.k8s.io/pause 3.9 e6f1816883972 745kB
`
	images, malformed, err := ParseImagesOutput(output)
	require.NoError(t, err)
	assert.Equal(t, 2, malformed)
	require.Len(t, images, 2)
	assert.Equal(t, "docker.io/library/redis", images[0].Repository)
	assert.Equal(t, "registry.k8s.io/pause", images[1].Repository)
}

func TestParseImagesOutputUnparsableSize(t *testing.T) {

	output := `IMAGE   TAG   IMAGE ID   SIZE
docker.io/library/redis 7.2 170a1e90f8437 huge
`
	images, malformed, err := ParseImagesOutput(output)
	require.NoError(t, err)
	assert.Equal(t, 0, malformed)
	require.Len(t, images, 1)

	// raw text kept, byte count flagged as zero
	assert.Equal(t, "huge", images[0].Size)
	assert.Equal(t, uint64(0), images[0].SizeBytes)
}

func TestParseImagesOutputBadHeader(t *testing.T) {

	for _, output := range []string{
		"",
		"no images here",
		"IMAGE   SIZE   TAG   IMAGE ID\n",
	} {
		_, _, err := ParseImagesOutput(output)
		assert.Error(t, err, output)
	}

	// header only is a valid, empty listing
	images, malformed, err := ParseImagesOutput("IMAGE   TAG   IMAGE ID   SIZE\n")
	assert.NoError(t, err)
	assert.Equal(t, 0, malformed)
	assert.Empty(t, images)
}
