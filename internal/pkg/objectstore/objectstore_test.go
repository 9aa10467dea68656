package objectstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mx-space/folio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPut(t *testing.T) {
	root := t.TempDir()
	store := NewLocal(root, "/objects/")

	url, err := store.Put(context.Background(), "general/1-cat.png", strings.NewReader("meow"), 4, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/objects/general/1-cat.png", url)

	data, err := os.ReadFile(filepath.Join(root, "general", "1-cat.png"))
	require.NoError(t, err)
	assert.Equal(t, "meow", string(data))
}

func TestLocalPutStaysUnderRoot(t *testing.T) {
	root := t.TempDir()
	store := NewLocal(root, "/objects")

	url, err := store.Put(context.Background(), "../../etc/passwd", strings.NewReader("x"), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "/objects/etc/passwd", url)
	assert.FileExists(t, filepath.Join(root, "etc", "passwd"))
}

func TestLocalPutCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocal(t.TempDir(), "/objects").Put(ctx, "a/b.txt", strings.NewReader("x"), 1, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPublicBaseURL(t *testing.T) {
	cases := []struct {
		name string
		opts config.S3Options
		want string
	}{
		{"custom domain", config.S3Options{Bucket: "b", CustomDomain: "cdn.example.com/"}, "https://cdn.example.com"},
		{"aws", config.S3Options{Bucket: "b", Region: "eu-west-1"}, "https://b.s3.eu-west-1.amazonaws.com"},
		{"path style", config.S3Options{Bucket: "b", Endpoint: "http://minio:9000", PathStyleAccess: true}, "http://minio:9000/b"},
		{"virtual host", config.S3Options{Bucket: "b", Endpoint: "https://s3.example.com"}, "https://b.s3.example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PublicBaseURL(tc.opts))
		})
	}
}

func TestNew(t *testing.T) {
	cfg := &config.AppConfig{}
	cfg.Storage.Driver = config.StorageS3
	_, err := New(cfg)
	assert.Error(t, err)

	cfg.Storage.S3 = config.S3Options{Bucket: "b", AccessKeyID: "k", SecretAccessKey: "s"}
	s, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &S3{}, s)

	cfg.Storage.Driver = config.StorageLocal
	s, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)

	cfg.Storage.Driver = "ftp"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestEscapeKey(t *testing.T) {
	assert.Equal(t, "general/1-my%20file.png", escapeKey("general/1-my file.png"))
}

func TestNewAppliesBucketPrefix(t *testing.T) {
	root := t.TempDir()
	cfg := &config.AppConfig{
		Storage: config.StorageRuntimeConfig{Driver: config.StorageLocal, BucketPrefix: "site"},
		Paths:   config.RuntimePathsConfig{Static: root},
	}
	store, err := New(cfg)
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "general/1-cat.png", strings.NewReader("meow"), 4, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/objects/site/general/1-cat.png", url)
	assert.FileExists(t, filepath.Join(root, "site", "general", "1-cat.png"))

	got, ok := LocalRoot(store)
	require.True(t, ok)
	assert.Equal(t, root, got)
}

func TestWithPrefixEmptyIsIdentity(t *testing.T) {
	local := NewLocal(t.TempDir(), "/objects")
	assert.Same(t, local, WithPrefix(local, "/"))
}
