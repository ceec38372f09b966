package model

import "time"

// Config holds all runtime configuration for veracity
type Config struct {
	Database     DatabaseConfig    `mapstructure:"database" yaml:"database"`
	HTTP         HTTPConfig        `mapstructure:"http" yaml:"http"`
	RateLimiting RateLimitConfig   `mapstructure:"rate_limiting" yaml:"rate_limiting"`
	Concurrency  ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	Cache        CacheConfig       `mapstructure:"cache" yaml:"cache"`
	Dedup        DedupConfig       `mapstructure:"dedup" yaml:"dedup"`
	Reconcile    ReconcileConfig   `mapstructure:"reconcile" yaml:"reconcile"`
	Sources      SourcesConfig     `mapstructure:"sources" yaml:"sources"`
	LLM          LLMConfig         `mapstructure:"llm" yaml:"llm"`
	Events       EventsConfig      `mapstructure:"events" yaml:"events"`
	Schedule     ScheduleConfig    `mapstructure:"schedule" yaml:"schedule"`
	Logging      LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// DatabaseConfig selects the store backend
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"` // sqlite or postgres
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
}

// HTTPConfig configures outbound fetching
type HTTPConfig struct {
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent     string        `mapstructure:"user_agent" yaml:"user_agent"`
	MaxBodyBytes  int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	MaxRetries    int           `mapstructure:"max_retries" yaml:"max_retries"`
	InsecureTLS   bool          `mapstructure:"insecure_tls" yaml:"insecure_tls"`
	RespectRobots bool          `mapstructure:"respect_robots" yaml:"respect_robots"`
	HTTPProxy     string        `mapstructure:"http_proxy" yaml:"http_proxy,omitempty"`
	HTTPSProxy    string        `mapstructure:"https_proxy" yaml:"https_proxy,omitempty"`
}

// RateLimitConfig configures per-host request rates
type RateLimitConfig struct {
	RequestsPerSecond float64       `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	Burst             int           `mapstructure:"burst" yaml:"burst"`
	PageDelay         time.Duration `mapstructure:"page_delay" yaml:"page_delay"` // Pause between paginated requests
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// CacheConfig configures the fetched-page and author caches
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	Dir     string        `mapstructure:"dir" yaml:"dir"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// DedupConfig configures near-duplicate suppression
type DedupConfig struct {
	Threshold  float64 `mapstructure:"threshold" yaml:"threshold"`
	WindowDays int     `mapstructure:"window_days" yaml:"window_days"`
	Scope      string  `mapstructure:"scope" yaml:"scope"` // journalist or player
}

// ReconcileConfig configures claim validation against confirmed transfers
type ReconcileConfig struct {
	WindowDays        int      `mapstructure:"window_days" yaml:"window_days"`
	Pages             int      `mapstructure:"pages" yaml:"pages"`
	Transfermarkt     bool     `mapstructure:"transfermarkt" yaml:"transfermarkt"`
	Guardian          bool     `mapstructure:"guardian" yaml:"guardian"`
	GuardianURL       string   `mapstructure:"guardian_url" yaml:"guardian_url"`
	Wikipedia         bool     `mapstructure:"wikipedia" yaml:"wikipedia"`
	WikipediaURLs     []string `mapstructure:"wikipedia_urls" yaml:"wikipedia_urls"`
	TransfermarktBase string   `mapstructure:"transfermarkt_base" yaml:"transfermarkt_base"`
}

// SourcesConfig configures where rumours are scraped from
type SourcesConfig struct {
	GossipIndexURL string `mapstructure:"gossip_index_url" yaml:"gossip_index_url"`
	GossipRSSURL   string `mapstructure:"gossip_rss_url" yaml:"gossip_rss_url"`
	GossipPages    int    `mapstructure:"gossip_pages" yaml:"gossip_pages"`
	RedditURL      string `mapstructure:"reddit_url" yaml:"reddit_url"`
	RedditLimit    int    `mapstructure:"reddit_limit" yaml:"reddit_limit"`
}

// LLMConfig configures the optional model-backed extractor
type LLMConfig struct {
	Provider  string        `mapstructure:"provider" yaml:"provider"` // openai, anthropic, ollama, or empty
	Model     string        `mapstructure:"model" yaml:"model"`
	APIKey    string        `mapstructure:"api_key" yaml:"-"`
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url,omitempty"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxTokens int           `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// EventsConfig configures the claim/score event publisher
type EventsConfig struct {
	AMQPURL    string `mapstructure:"amqp_url" yaml:"amqp_url,omitempty"` // Empty disables RabbitMQ
	Exchange   string `mapstructure:"exchange" yaml:"exchange"`
	Queue      string `mapstructure:"queue" yaml:"queue"`
	RoutingKey string `mapstructure:"routing_key" yaml:"routing_key"`
}

// ScheduleConfig configures the long-running serve command
type ScheduleConfig struct {
	ScrapeInterval   time.Duration `mapstructure:"scrape_interval" yaml:"scrape_interval"`
	ValidateInterval time.Duration `mapstructure:"validate_interval" yaml:"validate_interval"`
	RunTimeout       time.Duration `mapstructure:"run_timeout" yaml:"run_timeout"`
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // json or console
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "veracity.db",
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Mozilla/5.0 (compatible; veracity/0.3; +https://github.com/JSmilg/veracity)",
			MaxBodyBytes:  5_000_000,
			MaxRetries:    3,
			RespectRobots: true,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             2,
			PageDelay:         2 * time.Second,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".veracity-cache",
			TTL:     24 * time.Hour,
		},
		Dedup: DedupConfig{
			Threshold:  0.85,
			WindowDays: 30,
			Scope:      "journalist",
		},
		Reconcile: ReconcileConfig{
			WindowDays:        90,
			Pages:             5,
			Transfermarkt:     true,
			Guardian:          true,
			GuardianURL:       "https://interactive.guim.co.uk/2024/07/transfers/men-winter-2026.json",
			Wikipedia:         true,
			TransfermarktBase: "https://www.transfermarkt.com",
			WikipediaURLs: []string{
				"https://en.wikipedia.org/wiki/List_of_English_football_transfers_summer_2025",
				"https://en.wikipedia.org/wiki/List_of_English_football_transfers_winter_2024%E2%80%9325",
				"https://en.wikipedia.org/wiki/List_of_English_football_transfers_winter_2025%E2%80%9326",
			},
		},
		Sources: SourcesConfig{
			GossipIndexURL: "https://www.bbc.com/sport/football/gossip",
			GossipRSSURL:   "https://feeds.bbci.co.uk/sport/football/rss.xml",
			GossipPages:    1,
			RedditURL:      "https://www.reddit.com/r/soccer/new.json",
			RedditLimit:    100,
		},
		LLM: LLMConfig{
			Timeout:   60 * time.Second,
			MaxTokens: 4096,
		},
		Events: EventsConfig{
			Exchange:   "veracity.events",
			Queue:      "veracity.claims",
			RoutingKey: "claims",
		},
		Schedule: ScheduleConfig{
			ScrapeInterval:   6 * time.Hour,
			ValidateInterval: 24 * time.Hour,
			RunTimeout:       30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
