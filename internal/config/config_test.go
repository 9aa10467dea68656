package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, StorageLocal, cfg.Storage.Driver)
	assert.Equal(t, "portfolio", cfg.Storage.S3.Bucket)
	assert.Contains(t, cfg.DSN, "tcp(127.0.0.1:3306)/portfolio")
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoad_YAMLSections(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
port: 8080
env: production
database:
  driver: sqlite
  path: /tmp/folio.db
redis:
  disabled: true
storage:
  driver: s3
  s3:
    endpoint: https://s3.example.com/
    bucket: media
    path_style_access: true
upload:
  max_size_mb: 5
  allowed_exts: [PNG, ".jpg"]
allowed_origins: ["*.example.com", " "]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/folio.db", cfg.DSN)
	assert.True(t, cfg.Redis.Disabled)
	assert.Equal(t, StorageS3, cfg.Storage.Driver)
	assert.Equal(t, "https://s3.example.com", cfg.Storage.S3.Endpoint)
	assert.Equal(t, "media", cfg.Storage.S3.Bucket)
	assert.True(t, cfg.Storage.S3.PathStyleAccess)
	assert.Equal(t, []string{".png", ".jpg"}, cfg.Upload.AllowedExts)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes())
	assert.Equal(t, []string{"*.example.com"}, cfg.AllowedOrigins)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, "prot: 1\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"port":    "port: 70000\n",
		"driver":  "database:\n  driver: postgres\n",
		"storage": "storage:\n  driver: ftp\n",
		"upload":  "upload:\n  max_size_mb: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvAdminEmail, " admin@example.com ")
	t.Setenv(EnvAdminPassword, " spaced secret ")
	t.Setenv(EnvDatabaseURL, "user:pw@tcp(db:3306)/site")
	t.Setenv(EnvS3Bucket, "assets")
	t.Setenv(EnvStorageDriver, "s3")
	t.Setenv(EnvS3BucketPrefix, "/site/")

	cfg, err := Load(writeConfig(t, "port: 8080\nstorage:\n  bucket_prefix: ignored\n"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "admin@example.com", cfg.Admin.Email)
	assert.Equal(t, " spaced secret ", cfg.Admin.Password)
	assert.Equal(t, "user:pw@tcp(db:3306)/site", cfg.DSN)
	assert.Equal(t, "assets", cfg.Storage.S3.Bucket)
	assert.Equal(t, StorageS3, cfg.Storage.Driver)
	assert.Equal(t, "site", cfg.Storage.BucketPrefix)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_SECRET=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv(EnvJWTSecret) })

	cfg, err := Load(filepath.Join(dir, "config.yml"))
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.JWTSecret)
}

func TestDSNValue_MySQLParts(t *testing.T) {
	db := normalizeDatabaseConfig(DatabaseRuntimeConfig{
		Host:      "db.internal",
		Port:      3307,
		User:      "folio",
		Password:  "p@ss",
		Name:      "site",
		ParseTime: true,
		Loc:       "UTC",
	})

	dsn := db.DSNValue()
	assert.True(t, strings.HasPrefix(dsn, "folio:p@ss@tcp(db.internal:3307)/site?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestURLValue_FromParts(t *testing.T) {
	r := RedisRuntimeConfig{Host: "cache", Port: 6380, DB: 2, Password: "pw", TLS: true}
	assert.Equal(t, "rediss://:pw@cache:6380/2", r.URLValue())

	r = RedisRuntimeConfig{URL: "cache:6379/1"}
	assert.Equal(t, "redis://cache:6379/1", r.URLValue())
}

func TestResolveRuntimePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	assert.Equal(t, filepath.Join(home, "static"), ResolveRuntimePath("", "static"))
	assert.Equal(t, filepath.Join(home, "data", "logs"), ResolveRuntimePath(" data/logs ", "logs"))
	assert.Equal(t, home, ResolveRuntimePath("", ""))

	abs := filepath.Join(t.TempDir(), "x")
	assert.Equal(t, abs, ResolveRuntimePath(abs+"/", "static"))
}
