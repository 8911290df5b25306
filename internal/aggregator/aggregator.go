package aggregator

import (
	"context"
	"sync"

	"github.com/anubhavpatrick/Cluster-Images/internal/harbor"
	"github.com/anubhavpatrick/Cluster-Images/internal/ignore"
	"github.com/anubhavpatrick/Cluster-Images/internal/utils"
	"github.com/anubhavpatrick/Cluster-Images/pkg/model"
	"github.com/rs/zerolog"
)

const defaultWorkers = 4

// LocalLister lists images known to the local container runtime.
type LocalLister interface {
	ListImages(ctx context.Context) ([]model.ContainerdImage, error)
}

// RegistryClient enumerates the Harbor project/repository/artifact hierarchy.
type RegistryClient interface {
	ListProjects(ctx context.Context) ([]harbor.Project, error)
	ListRepositories(ctx context.Context, project string) ([]harbor.Repository, error)
	ListArtifacts(ctx context.Context, project, repository string) ([]model.HarborImage, error)
}

// Aggregator merges both image sources into one response. It keeps no state
// between runs, every Aggregate call is an independent fresh traversal.
type Aggregator struct {
	local      LocalLister
	registry   RegistryClient
	ignorePath string
	workers    int
	logger     *zerolog.Logger
}

func New(local LocalLister, registry RegistryClient, ignorePath string, workers int, logger *zerolog.Logger) *Aggregator {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Aggregator{
		local:      local,
		registry:   registry,
		ignorePath: ignorePath,
		workers:    workers,
		logger:     logger,
	}
}

// per-project traversal outcome, merged in project input order
type projectResult struct {
	images []model.HarborImage
	errors []string
}

// Aggregate runs both sources concurrently and merges records plus the
// accumulated error list. A failing source contributes an error string and an
// empty sequence, it never suppresses the other source.
func (rx *Aggregator) Aggregate(ctx context.Context) model.AggregateResult {

	elapsed := utils.ElapsedFunc()
	result := model.NewAggregateResult()

	var localImages []model.ContainerdImage
	var localErrors []string
	var harborImages []model.HarborImage
	var harborErrors []string

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		localImages, localErrors = rx.collectLocal(ctx)
	}()
	go func() {
		defer wg.Done()
		harborImages, harborErrors = rx.collectHarbor(ctx)
	}()
	wg.Wait()

	result.ContainerdImages = append(result.ContainerdImages, localImages...)
	result.HarborImages = append(result.HarborImages, harborImages...)
	result.Errors = append(result.Errors, localErrors...)
	result.Errors = append(result.Errors, harborErrors...)

	rx.logger.Info().
		Int("containerd", len(result.ContainerdImages)).
		Int("harbor", len(result.HarborImages)).
		Int("errors", len(result.Errors)).
		Str("elapsed", utils.HumanDeltaMilisec(elapsed())).
		Msg("Aggregate() done")

	return result
}

// LocalImages lists and filters the local runtime images only.
// An unloadable ignore list is logged and degrades to no filtering.
func (rx *Aggregator) LocalImages(ctx context.Context) ([]model.ContainerdImage, error) {
	images, err := rx.local.ListImages(ctx)
	if err != nil {
		return nil, err
	}
	ignoreSet, err := ignore.LoadIgnoreSet(rx.ignorePath, rx.logger)
	if err != nil {
		rx.logger.Error().Err(err).Msg("ignore list unusable, returning unfiltered images")
	}
	filtered := ignore.Filter(images, ignoreSet)
	if filtered == nil {
		filtered = []model.ContainerdImage{}
	}
	return filtered, nil
}

func (rx *Aggregator) collectLocal(ctx context.Context) ([]model.ContainerdImage, []string) {

	images, err := rx.local.ListImages(ctx)
	if err != nil {
		rx.logger.Error().Err(err).Msg("local image listing failed")
		return []model.ContainerdImage{}, []string{"containerd: " + err.Error()}
	}

	var errors []string
	ignoreSet, err := ignore.LoadIgnoreSet(rx.ignorePath, rx.logger)
	if err != nil {
		rx.logger.Error().Err(err).Msg("ignore list unusable, filtering skipped")
		errors = append(errors, "ignore list: "+err.Error())
	}
	return ignore.Filter(images, ignoreSet), errors
}

// collectHarbor walks project -> repository -> artifact with bounded fan-out
// over projects. Results and errors land in index-addressed slots and are
// merged in project input order, so the output is deterministic regardless of
// which goroutine finishes first.
func (rx *Aggregator) collectHarbor(ctx context.Context) ([]model.HarborImage, []string) {

	projects, err := rx.registry.ListProjects(ctx)
	if err != nil {
		rx.logger.Error().Err(err).Msg("harbor project listing failed")
		return []model.HarborImage{}, []string{"harbor: " + err.Error()}
	}

	slots := make([]projectResult, len(projects))
	sem := make(chan struct{}, rx.workers)

	var wg sync.WaitGroup
	for k, project := range projects {
		wg.Add(1)
		go func(slot int, project string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			slots[slot] = rx.collectProject(ctx, project)
		}(k, project.Name)
	}
	wg.Wait()

	images := []model.HarborImage{}
	errors := []string{}
	for _, slot := range slots {
		images = append(images, slot.images...)
		errors = append(errors, slot.errors...)
	}
	return images, errors
}

// collectProject enumerates one project. A repository-listing failure stops
// only this project, an artifact-listing failure stops only that repository.
func (rx *Aggregator) collectProject(ctx context.Context, project string) projectResult {

	repositories, err := rx.registry.ListRepositories(ctx, project)
	if err != nil {
		rx.logger.Error().Err(err).Str("project", project).Msg("harbor repository listing failed")
		return projectResult{errors: []string{"harbor project " + project + ": " + err.Error()}}
	}

	var slot projectResult
	for _, repository := range repositories {
		images, err := rx.registry.ListArtifacts(ctx, project, repository.Name)
		if err != nil {
			rx.logger.Error().Err(err).
				Str("project", project).
				Str("repository", repository.Name).
				Msg("harbor artifact listing failed")
			slot.errors = append(slot.errors, "harbor project "+project+" repository "+repository.Name+": "+err.Error())
			continue
		}
		slot.images = append(slot.images, images...)
	}
	return slot
}
