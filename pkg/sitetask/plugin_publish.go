package sitetask

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/sitetask/sitetask/internal/fs"
)

// EnvVarS3Bucket overwrites the bucket of publish actions when it is set.
const EnvVarS3Bucket = "SITETASK_S3_BUCKET"

// Uploader uploads files to an object storage.
type Uploader interface {
	// Upload uploads the file at filepath and returns the URL of the
	// created object.
	Upload(ctx context.Context, filepath, bucket, key string) (string, error)
}

// PublishPlugin uploads the files of a directory to an S3 bucket.
type PublishPlugin struct {
	root        string
	newUploader func(context.Context) (Uploader, error)
	uploader    Uploader
	uploaderMu  sync.Mutex
	logFn       func(format string, v ...any)
}

// NewPublishPlugin returns a PublishPlugin. newUploader is called when the
// first publish action runs.
func NewPublishPlugin(
	root string,
	newUploader func(context.Context) (Uploader, error),
	logFn func(format string, v ...any),
) *PublishPlugin {
	return &PublishPlugin{
		root:        root,
		newUploader: newUploader,
		logFn:       logFn,
	}
}

func (p *PublishPlugin) Run(ctx context.Context, a *Action) error {
	opts := a.Publish
	if opts == nil {
		return fmt.Errorf("action %s has no publish options", a)
	}

	bucket := opts.Bucket
	if envBucket := os.Getenv(EnvVarS3Bucket); envBucket != "" {
		bucket = envBucket
	}

	if bucket == "" {
		return fmt.Errorf("no bucket configured, set the bucket option or the %s environment variable", EnvVarS3Bucket)
	}

	dir := fs.AbsPath(p.root, opts.Dir)

	files, err := fs.FileGlob(filepath.Join(dir, "**"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("directory %s does not exist", opts.Dir)
		}

		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("directory %s contains no files", opts.Dir)
	}

	uploader, err := p.getUploader(ctx)
	if err != nil {
		return fmt.Errorf("creating uploader failed: %w", err)
	}

	for _, file := range files {
		key, err := objectKey(dir, opts.Prefix, file)
		if err != nil {
			return err
		}

		url, err := uploader.Upload(ctx, file, bucket, key)
		if err != nil {
			return fmt.Errorf("uploading %s failed: %w", file, err)
		}

		p.logFn("%s: uploaded %s to %s\n", a, file, url)
	}

	return nil
}

func (p *PublishPlugin) getUploader(ctx context.Context) (Uploader, error) {
	p.uploaderMu.Lock()
	defer p.uploaderMu.Unlock()

	if p.uploader != nil {
		return p.uploader, nil
	}

	uploader, err := p.newUploader(ctx)
	if err != nil {
		return nil, err
	}
	p.uploader = uploader

	return uploader, nil
}

func objectKey(dir, prefix, file string) (string, error) {
	rel, err := filepath.Rel(dir, file)
	if err != nil {
		return "", err
	}

	return path.Join(prefix, filepath.ToSlash(rel)), nil
}
