package projects

import (
	"bytes"
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/storage/object"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/telemetry"
)

// Uploader stores attachments in the object store and resolves their public URLs.
type Uploader struct {
	Store object.ObjectStore
}

// UploadImages uploads every file concurrently and returns the public URLs in
// input order. An empty list performs no calls. On failure the URLs of the
// files that were stored are returned alongside the error.
func (u *Uploader) UploadImages(ctx context.Context, planner *KeyPlanner, files []intake.Attachment) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}
	if u == nil || u.Store == nil {
		return nil, &UploadError{FileName: files[0].Name, Stage: StageUpload, Err: ErrStoreNotConfigured}
	}
	if planner == nil {
		planner = NewKeyPlanner(nil)
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		key := planner.Next(file.Name)
		g.Go(func() error {
			url, err := u.uploadOne(gctx, key, file)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		stored := make([]string, 0, len(urls))
		for _, url := range urls {
			if url != "" {
				stored = append(stored, url)
			}
		}
		return stored, err
	}
	return urls, nil
}

func (u *Uploader) uploadOne(ctx context.Context, key string, file intake.Attachment) (string, error) {
	bucket := u.Store.Bucket()
	if err := u.Store.Put(ctx, key, file.MimeType, bytes.NewReader(file.Data), int64(len(file.Data))); err != nil {
		fields := map[string]any{
			"request_id": telemetry.RequestIDFromContext(ctx),
			"bucket":     bucket,
			"key":        key,
			"file_name":  file.Name,
			"error":      err,
		}
		if errors.Is(err, object.ErrBucketNotFound) {
			telemetry.Error("projects.bucket_missing", fields)
		} else {
			telemetry.Error("projects.upload_failed", fields)
		}
		return "", &UploadError{FileName: file.Name, Bucket: bucket, Stage: StageUpload, Err: err}
	}

	url, err := u.Store.PublicURL(key)
	if err == nil && url == "" {
		err = object.ErrNoPublicURL
	}
	if err != nil {
		telemetry.Error("projects.public_url_failed", map[string]any{
			"request_id": telemetry.RequestIDFromContext(ctx),
			"bucket":     bucket,
			"key":        key,
			"error":      err,
		})
		return "", &UploadError{FileName: file.Name, Bucket: bucket, Stage: StagePublicURL, Err: err}
	}
	return url, nil
}
