package projects

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/analysis"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/metrics"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/telemetry"
)

// Service uploads a submission's images and writes its record.
type Service struct {
	Uploader *Uploader
	Repo     Repo
	Now      func() time.Time
}

// SaveRecord uploads both image sequences concurrently and then inserts a
// single row. Uploaded objects are not removed when the insert fails.
func (s *Service) SaveRecord(ctx context.Context, form intake.FormData, result analysis.AIAnalysis) (int64, error) {
	floors, err := ParseFloorCount(form.FloorCount)
	if err != nil {
		return 0, &PersistenceError{Err: err}
	}

	planner := NewKeyPlanner(s.Now)
	var currentURLs, finalURLs []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		urls, err := s.Uploader.UploadImages(gctx, planner, form.CurrentSituationImages)
		currentURLs = urls
		return err
	})
	g.Go(func() error {
		urls, err := s.Uploader.UploadImages(gctx, planner, form.FinalProjectImages)
		finalURLs = urls
		return err
	})
	if err := g.Wait(); err != nil {
		if len(currentURLs)+len(finalURLs) > 0 {
			logOrphans(ctx, currentURLs, finalURLs)
		}
		return 0, err
	}
	metrics.AddImagesUploaded(len(currentURLs) + len(finalURLs))

	record := newRecord(form, floors, currentURLs, finalURLs, result)
	id, err := s.Repo.Insert(ctx, record)
	if err != nil {
		telemetry.Error("projects.insert_failed", map[string]any{
			"request_id": telemetry.RequestIDFromContext(ctx),
			"error":      err,
		})
		logOrphans(ctx, currentURLs, finalURLs)
		return 0, &PersistenceError{Err: err}
	}

	telemetry.Info("projects.saved", map[string]any{
		"request_id":   telemetry.RequestIDFromContext(ctx),
		"record_id":    id,
		"image_count":  len(currentURLs) + len(finalURLs),
		"project_name": record.ProjectName,
	})
	return id, nil
}

func logOrphans(ctx context.Context, currentURLs, finalURLs []string) {
	telemetry.Warn("projects.orphaned_uploads", map[string]any{
		"request_id":   telemetry.RequestIDFromContext(ctx),
		"current_urls": currentURLs,
		"final_urls":   finalURLs,
	})
}
