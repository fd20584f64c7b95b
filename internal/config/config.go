package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server" json:"server"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard" json:"leaderboard"`
	AI          AIConfig          `yaml:"ai" json:"ai"`
	Admin       AdminConfig       `yaml:"admin" json:"admin"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr" json:"addr"`
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

type LeaderboardConfig struct {
	// BaseURL of the remote aggregate store. Empty means the remote is not
	// configured and ranked views come from the built-in demo data.
	BaseURL    string `yaml:"base_url" json:"base_url"`
	FetchLimit int    `yaml:"fetch_limit" json:"fetch_limit"`
	// DemoFallback controls whether ranked views fall back to the built-in
	// demo dataset when the remote is unconfigured or broken. Off, the board
	// shows only the requesting user. Defaults to on.
	DemoFallback *bool `yaml:"demo_fallback" json:"demo_fallback"`
}

// DemoFallbackEnabled resolves the optional toggle, defaulting to true.
func (c LeaderboardConfig) DemoFallbackEnabled() bool {
	return c.DemoFallback == nil || *c.DemoFallback
}

type AIConfig struct {
	// APIKey for the generative-text endpoint. Empty disables the coach's
	// remote calls; every operation then serves its canned response.
	APIKey  string `yaml:"api_key" json:"-"`
	Model   string `yaml:"model" json:"model"`
	BaseURL string `yaml:"base_url" json:"base_url"`
}

type AdminConfig struct {
	Email string `yaml:"email" json:"email"`
	// PasswordHash is a bcrypt hash and takes precedence over Password.
	PasswordHash string `yaml:"password_hash" json:"-"`
	Password     string `yaml:"password" json:"-"`
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.DataDir == "" {
		c.Server.DataDir = "data"
	}
	if c.Leaderboard.FetchLimit == 0 {
		c.Leaderboard.FetchLimit = 20
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.Admin.Email == "" {
		c.Admin.Email = "admin@orbitgoals.app"
	}
}

// Load reads a YAML config file and applies defaults. A missing file is not
// an error; the zero config plus defaults is a working local setup.
func Load(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}

// ApplyEnv overrides config values from environment variables. Empty
// variables leave the file values untouched.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("ORBIT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("ORBIT_DATA_DIR"); v != "" {
		c.Server.DataDir = v
	}
	if v := os.Getenv("ORBIT_LEADERBOARD_URL"); v != "" {
		c.Leaderboard.BaseURL = v
	}
	if v := getEnvInt("ORBIT_LEADERBOARD_FETCH_LIMIT"); v > 0 {
		c.Leaderboard.FetchLimit = v
	}
	if v := os.Getenv("ORBIT_AI_API_KEY"); v != "" {
		c.AI.APIKey = v
	} else if v := os.Getenv("API_KEY"); v != "" {
		// Legacy name kept for existing .env files.
		c.AI.APIKey = v
	}
	if v := os.Getenv("ORBIT_AI_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("ORBIT_AI_URL"); v != "" {
		c.AI.BaseURL = v
	}
	if v := os.Getenv("ORBIT_ADMIN_EMAIL"); v != "" {
		c.Admin.Email = v
	}
	if v := os.Getenv("ORBIT_ADMIN_PASSWORD_HASH"); v != "" {
		c.Admin.PasswordHash = v
	}
	if v := os.Getenv("ORBIT_ADMIN_PASSWORD"); v != "" {
		c.Admin.Password = v
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
