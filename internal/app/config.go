// Package app loads the application configuration and boots the shared
// infrastructure behind the three bot personas.
package app

import (
	"fmt"
	"strconv"
	"strings"

	coreconfig "github.com/savdohub/savdobot/core/config"
	"github.com/savdohub/savdobot/core/database"
)

// RedisConfig holds the optional session store settings. When Addr is empty
// every bot keeps its sessions in process memory.
type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`
}

// BotTokens carries one Telegram token per persona.
type BotTokens struct {
	Diller   string `yaml:"diller" envconfig:"DILLER_BOT_TOKEN"`
	Sotuvchi string `yaml:"sotuvchi" envconfig:"SOTUVCHI_BOT_TOKEN"`
	Watcher  string `yaml:"watcher" envconfig:"GROUP_SCRAPING_BOT_TOKEN"`
}

// Config aggregates the core bot settings with the application concerns.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database database.Config `yaml:"database"`
	Redis    RedisConfig     `yaml:"redis"`
	Tokens   BotTokens       `yaml:"bot_tokens"`

	// AllowedChats lists the group chat IDs the watcher scrapes,
	// comma-separated. Empty means every group the bot is in.
	AllowedChats string `yaml:"allowed_chat_ids" envconfig:"ALLOWED_CHAT_IDS"`
}

// Load reads the YAML file at path and overlays the environment. The
// persona token is applied later via UseToken, so Load does not validate
// the Telegram section yet.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.LoadInto(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UseToken selects the persona token and validates the core settings.
func (c *Config) UseToken(token string) error {
	if token != "" {
		c.Telegram.Token = token
	}
	return coreconfig.Normalize(&c.Config)
}

// AllowedChatIDs parses the comma-separated chat allow-list.
func (c *Config) AllowedChatIDs() ([]int64, error) {
	raw := strings.TrimSpace(c.AllowedChats)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chat id %q in allowed_chat_ids", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
