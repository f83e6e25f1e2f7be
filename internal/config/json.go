package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
// Durations are written as strings like "30s".
type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		Backend        string   `json:"backend"`
		PersistTimeout Duration `json:"persist_timeout"`
		File           struct {
			Path string `json:"path"`
		} `json:"file,omitempty"`
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Redis struct {
			Addr     string `json:"addr"`
			Password string `json:"password"`
			DB       int    `json:"db"`
			Key      string `json:"key"`
		} `json:"redis,omitempty"`
		Blobs struct {
			Dir           string `json:"dir"`
			RemoteURL     string `json:"remote_url"`
			RemoteToken   string `json:"remote_token"`
			ThumbnailEdge int    `json:"thumbnail_edge"`
		} `json:"blobs,omitempty"`
	} `json:"storage,omitempty"`

	Workers struct {
		BackupInterval Duration `json:"backup_interval"`
		BackupDir      string   `json:"backup_dir"`
	} `json:"workers,omitempty"`

	Viewer struct {
		ServerURL      string   `json:"server_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"viewer,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Storage: Storage{
			Backend:        jsonCfg.Storage.Backend,
			PersistTimeout: time.Duration(jsonCfg.Storage.PersistTimeout),
			File:           File{Path: jsonCfg.Storage.File.Path},
			DB:             DB{DSN: jsonCfg.Storage.DB.DSN},
			Redis: Redis{
				Addr:     jsonCfg.Storage.Redis.Addr,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
				Key:      jsonCfg.Storage.Redis.Key,
			},
			Blobs: Blobs{
				Dir:           jsonCfg.Storage.Blobs.Dir,
				RemoteURL:     jsonCfg.Storage.Blobs.RemoteURL,
				RemoteToken:   jsonCfg.Storage.Blobs.RemoteToken,
				ThumbnailEdge: jsonCfg.Storage.Blobs.ThumbnailEdge,
			},
		},
		Workers: Workers{
			BackupInterval: time.Duration(jsonCfg.Workers.BackupInterval),
			BackupDir:      jsonCfg.Workers.BackupDir,
		},
		Viewer: Viewer{
			ServerURL:      jsonCfg.Viewer.ServerURL,
			RequestTimeout: time.Duration(jsonCfg.Viewer.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
