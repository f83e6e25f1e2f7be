package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// config holding only defaults.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)

	assert.Equal(t, DefaultVersion, cfg.App.Version)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultShutdownTimeout, cfg.Server.ShutdownTimeout)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, DefaultPersistTimeout, cfg.Storage.PersistTimeout)
	assert.Equal(t, DefaultFilePath, cfg.Storage.File.Path)
	assert.Equal(t, DefaultRedisKey, cfg.Storage.Redis.Key)
	assert.Equal(t, DefaultBlobsDir, cfg.Storage.Blobs.Dir)
	assert.Equal(t, DefaultThumbnailEdge, cfg.Storage.Blobs.ThumbnailEdge)
	assert.Equal(t, DefaultViewerServerURL, cfg.Viewer.ServerURL)
	assert.Zero(t, cfg.Workers.BackupInterval)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_FirstSourceWins verifies that a field set by an earlier source is
// not overridden by a later one, while unset fields are filled in.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0"}},
		&StructuredConfig{
			App:    App{Version: "9.9.9"},
			Server: Server{HTTPAddress: "127.0.0.1:9999"},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.HTTPAddress)
}

func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StructuredConfig
		wantErr error
	}{
		{
			name:    "unknown backend",
			cfg:     StructuredConfig{Storage: Storage{Backend: "mongo"}},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "sqlite without dsn",
			cfg:     StructuredConfig{Storage: Storage{Backend: BackendSQLite}},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "postgres without dsn",
			cfg:     StructuredConfig{Storage: Storage{Backend: BackendPostgres}},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "redis without address",
			cfg:     StructuredConfig{Storage: Storage{Backend: BackendRedis}},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "negative persist timeout",
			cfg:     StructuredConfig{Storage: Storage{PersistTimeout: -time.Second}},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "backup without dir",
			cfg:     StructuredConfig{Workers: Workers{BackupInterval: time.Minute}},
			wantErr: ErrInvalidWorkerConfigs,
		},
		{
			name: "sqlite with dsn",
			cfg:  StructuredConfig{Storage: Storage{Backend: BackendSQLite, DB: DB{DSN: "roster.db"}}},
		},
		{
			name: "redis with address",
			cfg:  StructuredConfig{Storage: Storage{Backend: BackendRedis, Redis: Redis{Addr: "localhost:6379"}}},
		},
		{
			name: "backup with dir",
			cfg:  StructuredConfig{Workers: Workers{BackupInterval: time.Minute, BackupDir: "backups"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder()
			cfg := tt.cfg
			b.configs = append(b.configs, &cfg)

			_, err := b.build()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// ── withArgs / withJSON ───────────────────────────────────────────────────────

func TestWithArgs_InvalidFlagSetsError(t *testing.T) {
	b := newConfigBuilder().withArgs([]string{"-no-such-flag"})
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithJSON_NotSpecified(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_LoadsFileFromFlags(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app":     map[string]any{"version": "from-json"},
		"storage": map[string]any{"backend": "sqlite", "db": map[string]any{"dsn": "json.db"}},
	})

	cfg, err := newConfigBuilder().
		withArgs([]string{"-a", "localhost:7070", "-c", path}).
		withJSON().
		build()
	require.NoError(t, err)

	assert.Equal(t, "localhost:7070", cfg.Server.HTTPAddress)
	assert.Equal(t, "from-json", cfg.App.Version)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "json.db", cfg.Storage.DB.DSN)
}

func TestWithJSON_MissingFileSetsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/definitely/not/here.json"})

	b.withJSON()
	assert.Error(t, b.err)
}

// ── viewer ────────────────────────────────────────────────────────────────────

func TestViewerConfig(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Viewer: Viewer{ServerURL: "http://gm.local:8080"}})
	cfg, err := b.build()
	require.NoError(t, err)

	viewer := newViewerConfig(cfg)
	require.NoError(t, viewer.validate())
	assert.Equal(t, "http://gm.local:8080", viewer.ServerURL)
	assert.Equal(t, DefaultRequestTimeout, viewer.RequestTimeout)
	assert.Equal(t, DefaultVersion, viewer.Version)

	assert.ErrorIs(t, (&ViewerConfig{}).validate(), ErrInvalidViewerConfigs)
}
