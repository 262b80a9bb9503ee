package server

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/topi314/club-recruitment/internal/xtime"
	"github.com/topi314/club-recruitment/server/api"
	"github.com/topi314/club-recruitment/server/database"
	"github.com/topi314/club-recruitment/server/session"
)

func LoadConfig(cfgPath string) (Config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	cfg := defaultConfig()
	if _, err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config file: %w", err)
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:     slog.LevelInfo,
			Format:    LogFormatText,
			AddSource: false,
		},
		Server: ServerConfig{
			Addr:      ":8085",
			PublicURL: "http://localhost:8085",
		},
		API: api.Config{
			BaseURL: "http://127.0.0.1:5000",
			Every:   xtime.Duration(100 * time.Millisecond),
			Burst:   20,
		},
		Identity: session.Identity{
			StudentID:     1,
			CoordinatorID: 2,
		},
		Home: HomeConfig{
			PollInterval: xtime.Duration(60 * time.Second),
		},
		Chat: ChatConfig{
			IdleTimeout: xtime.Duration(2 * time.Hour),
		},
		Session: session.Config{
			Store:  session.StoreTypeMemory,
			MaxAge: xtime.Duration(30 * 24 * time.Hour),
		},
		Database: database.Config{
			Host:     "localhost",
			Port:     5432,
			Username: "postgres",
			Password: "password",
			Database: "club-recruitment",
			SSLMode:  "disable",
		},
	}
}

type Config struct {
	Dev           bool                `toml:"dev"`
	Log           LogConfig           `toml:"log"`
	Server        ServerConfig        `toml:"server"`
	API           api.Config          `toml:"api"`
	Identity      session.Identity    `toml:"identity"`
	Home          HomeConfig          `toml:"home"`
	Chat          ChatConfig          `toml:"chat"`
	Session       session.Config      `toml:"session"`
	Database      database.Config     `toml:"database"`
	Notifications NotificationsConfig `toml:"notifications"`
}

func (c Config) String() string {
	return fmt.Sprintf("Dev: %t\nLog: %s\nServer: %s\nAPI: %s\nIdentity: %s\nHome: %s\nChat: %s\nSession: %s\nDatabase: %s\nNotifications: %s",
		c.Dev,
		c.Log,
		c.Server,
		c.API,
		c.Identity,
		c.Home,
		c.Chat,
		c.Session,
		c.Database,
		c.Notifications,
	)
}

type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    LogFormat  `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

func (c LogConfig) String() string {
	return fmt.Sprintf("\n Level: %s\n Format: %s\n AddSource: %t",
		c.Level,
		c.Format,
		c.AddSource,
	)
}

type ServerConfig struct {
	Addr string `toml:"addr"`
	// PublicURL is where browsers reach this server. Share QR codes point at it.
	PublicURL string `toml:"public_url"`
}

func (c ServerConfig) String() string {
	return fmt.Sprintf("\n Address: %s\n PublicURL: %s",
		c.Addr,
		c.PublicURL,
	)
}

type HomeConfig struct {
	PollInterval xtime.Duration `toml:"poll_interval"`
}

func (c HomeConfig) String() string {
	return fmt.Sprintf("\n PollInterval: %s",
		c.PollInterval,
	)
}

type ChatConfig struct {
	IdleTimeout xtime.Duration `toml:"idle_timeout"`
}

func (c ChatConfig) String() string {
	return fmt.Sprintf("\n IdleTimeout: %s",
		c.IdleTimeout,
	)
}

type NotificationsConfig struct {
	Enabled    bool   `toml:"enabled"`
	WebhookURL string `toml:"webhook_url"`
}

func (c NotificationsConfig) String() string {
	return fmt.Sprintf("\n Enabled: %t\n WebhookURL: %s",
		c.Enabled,
		c.WebhookURL,
	)
}
