package crictl

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/anubhavpatrick/Cluster-Images/internal/utils"
	"github.com/anubhavpatrick/Cluster-Images/pkg/model"
	"github.com/rs/zerolog"
)

// crictl local image inventory
type CrictlRunner struct {
	Bin         string
	UseSudo     bool
	ListTimeout time.Duration

	logger *zerolog.Logger
}

// create crictl runner, the binary is resolved per call so a missing crictl
// surfaces as a request error, not a startup failure
func NewCrictlRunner(config model.CrictlConfig, logger *zerolog.Logger) *CrictlRunner {

	bin := config.Bin
	if bin == "" {
		bin = "crictl"
	}
	runner := CrictlRunner{
		Bin:         bin,
		UseSudo:     config.UseSudo,
		ListTimeout: utils.DurationOr(config.Timeout, 30*time.Second),
		logger:      logger,
	}
	if !filepath.IsAbs(bin) && !utils.IsInstalled(bin) {
		logger.Warn().Str("bin", bin).Msg("crictl not found in PATH, local listings will fail")
	}
	runner.logger.Info().
		Str("bin", runner.Bin).
		Bool("sudo", runner.UseSudo).
		Str("timeout", runner.ListTimeout.String()).
		Msg("NewCrictlRunner() ready")

	return &runner
}

// run "crictl images" and parse its tabular output.
// sudo is invoked non-interactive (-n): the process must already hold
// passwordless authorization, a denied sudo is returned as an error
func (rx *CrictlRunner) ListImages(ctx context.Context) ([]model.ContainerdImage, error) {

	bin := rx.Bin
	if !filepath.IsAbs(bin) {
		var err error
		if bin, err = utils.OsWhich(bin); err != nil {
			return nil, err
		}
	}
	name := bin
	args := []string{"images"}
	if rx.UseSudo {
		name = "sudo"
		args = []string{"-n", bin, "images"}
	}

	ctx, cancel := context.WithTimeout(ctx, rx.ListTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer

	elapsed := utils.ElapsedFunc()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("crictl images timed out after %s", rx.ListTimeout)
		}
		detail := strings.TrimSpace(utils.NoColorCodes(stderr.String()))
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("crictl images failed: %s", detail)
	}

	images, malformed, err := ParseImagesOutput(stdout.String())
	if err != nil {
		return nil, err
	}
	if malformed > 0 {
		rx.logger.Warn().Int("rows", malformed).Msg("skipped malformed crictl rows")
	}
	rx.logger.Debug().
		Int("images", len(images)).
		Str("elapsed", utils.HumanDeltaMilisec(elapsed())).
		Msg("ListImages() OK")

	return images, nil
}

// parse crictl tabular output into image records.
// expected column order: IMAGE, TAG, IMAGE ID, SIZE. Rows with an unexpected
// field count are skipped and counted, not fatal. Unparsable sizes keep the
// raw text and a zero byte count.
func ParseImagesOutput(output string) ([]model.ContainerdImage, int, error) {

	images := []model.ContainerdImage{}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, 0, fmt.Errorf("crictl produced no output")
	}

	header := lines[0]
	idxTag := strings.Index(header, "TAG")
	idxId := strings.Index(header, "IMAGE ID")
	idxSize := strings.Index(header, "SIZE")
	if idxTag < 0 || idxId < 0 || idxSize < 0 || idxTag >= idxId || idxId >= idxSize {
		return nil, 0, fmt.Errorf("unexpected crictl header: %q", header)
	}

	malformed := 0
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			malformed++
			continue
		}
		tag := fields[1]
		if tag == "" {
			tag = "<none>"
		}
		image := model.ContainerdImage{
			Repository: fields[0],
			Tag:        tag,
			ImageId:    fields[2],
			Size:       fields[3],
		}
		if size, ok := utils.ParseImageSize(fields[3]); ok {
			image.SizeBytes = size
			image.Size = utils.FormatImageSize(size)
		}
		images = append(images, image)
	}
	return images, malformed, nil
}
