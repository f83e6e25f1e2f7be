package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-shutdown-timeout graceful shutdown timeout
//	-version application version
//	-backend persistence backend (file, sqlite, postgres, redis)
//	-persist-timeout roster save timeout
//	-f roster file path
//	-d database DSN
//	-redis-addr / -redis-password / -redis-db / -redis-key redis settings
//	-blobs-dir photo directory
//	-blobs-url remote photo store URL
//	-blobs-token remote photo store bearer token
//	-thumbnail-edge longest photo edge in pixels
//	-backup-interval / -backup-dir periodic export settings
//	-server-url roster server URL used by the viewer
//	-c/-config json file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("influence-roster", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress NetAddress
	cfg := &StructuredConfig{}

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&cfg.Server.ShutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout")
	fs.StringVar(&cfg.App.Version, "version", "", "Application version")

	fs.StringVar(&cfg.Storage.Backend, "backend", "", "Persistence backend: file, sqlite, postgres, redis")
	fs.DurationVar(&cfg.Storage.PersistTimeout, "persist-timeout", 0, "Roster save timeout")
	fs.StringVar(&cfg.Storage.File.Path, "f", "", "Roster file path")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.Redis.Addr, "redis-addr", "", "Redis address host:port")
	fs.StringVar(&cfg.Storage.Redis.Password, "redis-password", "", "Redis password")
	fs.IntVar(&cfg.Storage.Redis.DB, "redis-db", 0, "Redis database number")
	fs.StringVar(&cfg.Storage.Redis.Key, "redis-key", "", "Redis key of the roster document")
	fs.StringVar(&cfg.Storage.Blobs.Dir, "blobs-dir", "", "Photo directory")
	fs.StringVar(&cfg.Storage.Blobs.RemoteURL, "blobs-url", "", "Remote photo store URL")
	fs.StringVar(&cfg.Storage.Blobs.RemoteToken, "blobs-token", "", "Remote photo store bearer token")
	fs.IntVar(&cfg.Storage.Blobs.ThumbnailEdge, "thumbnail-edge", 0, "Longest photo edge in pixels")

	fs.DurationVar(&cfg.Workers.BackupInterval, "backup-interval", 0, "Roster backup interval (0 disables)")
	fs.StringVar(&cfg.Workers.BackupDir, "backup-dir", "", "Roster backup directory")

	fs.StringVar(&cfg.Viewer.ServerURL, "server-url", "", "Roster server URL used by the viewer")
	fs.DurationVar(&cfg.Viewer.RequestTimeout, "viewer-timeout", 0, "Viewer request timeout")

	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

var _ flag.Value = (*NetAddress)(nil)
