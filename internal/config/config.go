package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Address         string        `yaml:"address"`
	LogLevel        string        `yaml:"log_level"`
	LogJSON         bool          `yaml:"log_json"`
	SecureCookies   bool          `yaml:"secure_cookies"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	JwtTTL          time.Duration `yaml:"jwt_ttl"`
	TopicsPerPage   int           `yaml:"topics_per_page"`
	PostsPerPage    int           `yaml:"posts_per_page"`
	Gate            Gate          `yaml:"gate"`
	Jobs            Jobs          `yaml:"jobs"`
	RenderCacheSize int           `yaml:"render_cache_size"`
}

// Gate configures the per-request authorization gate. Passed into the
// gate builder explicitly so tests can run builders with different
// settings side by side.
type Gate struct {
	IdentityStrategy   string        `yaml:"identity_strategy"`   // "jwt"
	ModerationStrategy string        `yaml:"moderation_strategy"` // "flag" or "per-board"
	ActiveWindow       time.Duration `yaml:"active_window"`       // how far back "recently active" looks
	ActiveUsersLimit   int           `yaml:"active_users_limit"`
}

type Jobs struct {
	QueueSize     int    `yaml:"queue_size"`
	PruneSchedule string `yaml:"prune_schedule"` // cron spec for stale-activity pruning
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	JwtKey string `yaml:"jwt_key"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err = yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	p := &c.Public
	if p.Address == "" {
		p.Address = ":8080"
	}
	if p.TopicsPerPage == 0 {
		p.TopicsPerPage = 25
	}
	if p.PostsPerPage == 0 {
		p.PostsPerPage = 50
	}
	if p.RenderCacheSize == 0 {
		p.RenderCacheSize = 1024
	}
	if p.Gate.IdentityStrategy == "" {
		p.Gate.IdentityStrategy = "jwt"
	}
	if p.Gate.ModerationStrategy == "" {
		p.Gate.ModerationStrategy = "flag"
	}
	if p.Gate.ActiveWindow == 0 {
		p.Gate.ActiveWindow = 15 * time.Minute
	}
	if p.Gate.ActiveUsersLimit == 0 {
		p.Gate.ActiveUsersLimit = 50
	}
	if p.Jobs.QueueSize == 0 {
		p.Jobs.QueueSize = 256
	}
	if p.Jobs.PruneSchedule == "" {
		p.Jobs.PruneSchedule = "@hourly"
	}
}
