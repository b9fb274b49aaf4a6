package sitetask

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitetask/sitetask/internal/testutils/fstest"
	"github.com/sitetask/sitetask/pkg/cfg"
)

type upload struct {
	file   string
	bucket string
	key    string
}

type fakeUploader struct {
	uploads []upload
	err     error
}

func (u *fakeUploader) Upload(_ context.Context, file, bucket, key string) (string, error) {
	if u.err != nil {
		return "", u.err
	}

	u.uploads = append(u.uploads, upload{file: file, bucket: bucket, key: key})

	return "s3://" + bucket + "/" + key, nil
}

func newUploaderFn(u Uploader, calls *int) func(context.Context) (Uploader, error) {
	return func(context.Context) (Uploader, error) {
		*calls++
		return u, nil
	}
}

func TestPublishUploadsAllFiles(t *testing.T) {
	t.Setenv(EnvVarS3Bucket, "")

	root := t.TempDir()
	fstest.WriteToFile(t, []byte("<html/>"), filepath.Join(root, "_site", "index.html"))
	fstest.WriteToFile(t, []byte("body{}"), filepath.Join(root, "_site", "css", "main.css"))

	uploader := fakeUploader{}
	var calls int

	plugin := NewPublishPlugin(root, newUploaderFn(&uploader, &calls), t.Logf)
	action := Action{
		Name:    "publish",
		Kind:    KindPublish,
		Publish: &cfg.PublishOptions{Dir: "_site", Bucket: "www.example.com", Prefix: "v1"},
	}

	require.NoError(t, plugin.Run(context.Background(), &action))
	require.NoError(t, plugin.Run(context.Background(), &action))

	assert.Equal(t, 1, calls, "uploader should be created once")
	assert.ElementsMatch(t,
		[]upload{
			{file: filepath.Join(root, "_site", "index.html"), bucket: "www.example.com", key: "v1/index.html"},
			{file: filepath.Join(root, "_site", "css", "main.css"), bucket: "www.example.com", key: "v1/css/main.css"},
			{file: filepath.Join(root, "_site", "index.html"), bucket: "www.example.com", key: "v1/index.html"},
			{file: filepath.Join(root, "_site", "css", "main.css"), bucket: "www.example.com", key: "v1/css/main.css"},
		},
		uploader.uploads,
	)
}

func TestPublishBucketFromEnvironment(t *testing.T) {
	t.Setenv(EnvVarS3Bucket, "staging")

	root := t.TempDir()
	fstest.WriteToFile(t, []byte("<html/>"), filepath.Join(root, "_site", "index.html"))

	uploader := fakeUploader{}
	var calls int

	action := Action{
		Name:    "publish",
		Kind:    KindPublish,
		Publish: &cfg.PublishOptions{Dir: "_site", Bucket: "production"},
	}

	require.NoError(t, NewPublishPlugin(root, newUploaderFn(&uploader, &calls), t.Logf).Run(context.Background(), &action))
	require.Len(t, uploader.uploads, 1)
	assert.Equal(t, "staging", uploader.uploads[0].bucket)
	assert.Equal(t, "index.html", uploader.uploads[0].key)
}

func TestPublishErrors(t *testing.T) {
	t.Setenv(EnvVarS3Bucket, "")

	root := t.TempDir()
	fstest.WriteToFile(t, []byte("<html/>"), filepath.Join(root, "_site", "index.html"))

	uploadErr := errors.New("access denied")

	testcases := []struct {
		name     string
		opts     cfg.PublishOptions
		uploader fakeUploader
	}{
		{name: "no_bucket", opts: cfg.PublishOptions{Dir: "_site"}},
		{name: "missing_dir", opts: cfg.PublishOptions{Dir: "public", Bucket: "b"}},
		{name: "upload_fails", opts: cfg.PublishOptions{Dir: "_site", Bucket: "b"}, uploader: fakeUploader{err: uploadErr}},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int
			opts := tc.opts
			uploader := tc.uploader

			action := Action{Name: "publish", Kind: KindPublish, Publish: &opts}
			err := NewPublishPlugin(root, newUploaderFn(&uploader, &calls), t.Logf).Run(context.Background(), &action)
			require.Error(t, err)
			assert.Empty(t, uploader.uploads)
		})
	}
}
