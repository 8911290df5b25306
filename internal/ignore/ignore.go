package ignore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/anubhavpatrick/Cluster-Images/pkg/model"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// header column carrying the identifiers, matched case-sensitive
const ImageIdColumn = "IMAGE ID"

// load image IDs to exclude from a CSV file.
// A missing file is not an error, filtering degrades to a no-op. A header
// without the IMAGE ID column is a configuration error reported once.
func LoadIgnoreSet(path string, logger *zerolog.Logger) (map[string]struct{}, error) {

	ids := map[string]struct{}{}
	if path == "" {
		return ids, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("no ignore file, nothing filtered")
			return ids, nil
		}
		return ids, fmt.Errorf("ignore file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		logger.Debug().Str("path", path).Msg("ignore file is empty")
		return ids, nil
	}
	if err != nil {
		return ids, fmt.Errorf("ignore file %s: %w", path, err)
	}

	column := lo.IndexOf(lo.Map(header, func(h string, _ int) string {
		return strings.TrimSpace(h)
	}), ImageIdColumn)
	if column < 0 {
		return ids, fmt.Errorf("ignore file %s: header %v has no %q column", path, header, ImageIdColumn)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("skipping malformed ignore row")
			continue
		}
		if column >= len(row) {
			logger.Warn().Any("row", row).Msg("ignore row has too few columns")
			continue
		}
		if id := strings.TrimSpace(row[column]); id != "" {
			ids[id] = struct{}{}
		}
	}
	logger.Debug().Int("ids", len(ids)).Str("path", path).Msg("loaded ignore set")
	return ids, nil
}

// drop images whose full identifier appears verbatim in the ignore set.
// Matching is exact, display-layer ID truncation plays no role here.
func Filter(images []model.ContainerdImage, ignore map[string]struct{}) []model.ContainerdImage {
	if len(ignore) == 0 {
		return images
	}
	return lo.Filter(images, func(image model.ContainerdImage, _ int) bool {
		_, drop := ignore[image.ImageId]
		return !drop
	})
}
