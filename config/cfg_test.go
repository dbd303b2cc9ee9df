package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "https://photobooksgallery.am"
timeout = "10s"

[upload]
transport = "bucket"

[bucket]
s3_bucket_name = "pbg-media"
convert_webp = true

[locale]
display = "hy-AM"
`), 0o600))
	t.Setenv("PBG_API_TOKEN", "secret")
	t.Setenv("STORE_DSN", "/tmp/drafts.db")

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://photobooksgallery.am", c.API.BaseURL)
	assert.Equal(t, 10*time.Second, c.API.Timeout)
	assert.Equal(t, "secret", c.API.Token)
	assert.Equal(t, TransportBucket, c.Upload.Transport)
	assert.Equal(t, 3, c.Upload.Concurrency)
	assert.True(t, c.Bucket.ConvertWebP)
	assert.Equal(t, "/tmp/drafts.db", c.Store.DSN)
	assert.Equal(t, "sqlite3", c.Store.Driver)
	assert.True(t, c.Locale.FallbackAtRead)
	assert.Equal(t, entity.LocaleHY, c.DisplayLocale())
}

func TestLoadConfig_BadTransport(t *testing.T) {
	t.Setenv("UPLOAD_TRANSPORT", "ftp")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDisplayLocale_Fallback(t *testing.T) {
	c := &Config{Locale: LocaleConfig{Display: "de"}}
	assert.Equal(t, entity.LocaleRU, c.DisplayLocale())
}
