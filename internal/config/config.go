package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config 是唯一持久化的配置文件结构。
type Config struct {
	Title          string `toml:"title"`
	Placeholder    string `toml:"placeholder"`
	StoreRaw       bool   `toml:"store_raw"`
	CopyableOutput bool   `toml:"copyable_output"`
	LogPath        string `toml:"log_path"`
	LogLevel       string `toml:"log_level"`
	Source         string `toml:"-"`
}

func Default() Config {
	return Config{
		Title:          "Chat",
		Placeholder:    "Type a message…",
		CopyableOutput: false,
		LogPath:        "logs/chatlog.log",
		LogLevel:       "info",
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chatlog", "config.toml")
}

// Load 读取配置文件；文件不存在时返回默认值。
// 环境变量 CHATLOG_TITLE 优先于文件中的 title。
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if env := strings.TrimSpace(os.Getenv("CHATLOG_TITLE")); env != "" {
		cfg.Title = env
	}
}
