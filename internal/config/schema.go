package config

// Config represents the full OrbitAI configuration
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	// OpenAI configuration
	OpenAI OpenAIConfig `yaml:"openai" mapstructure:"openai"`

	// Notion configuration
	Notion NotionConfig `yaml:"notion" mapstructure:"notion"`

	// External feed configuration
	Feeds FeedsConfig `yaml:"feeds" mapstructure:"feeds"`

	// Briefing configuration
	Briefing BriefingConfig `yaml:"briefing" mapstructure:"briefing"`

	// Storage configuration
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Retrieval configuration
	Retrieval RetrievalConfig `yaml:"retrieval" mapstructure:"retrieval"`

	// Chat configuration
	Chat ChatConfig `yaml:"chat" mapstructure:"chat"`

	// Server configuration
	Server ServerConfig `yaml:"server" mapstructure:"server"`
}

// OpenAIConfig holds OpenAI credentials and model names. APIKey comes
// from the environment, never from config files.
type OpenAIConfig struct {
	APIKey         string `yaml:"-" mapstructure:"-"`
	Model          string `yaml:"model" mapstructure:"model"`
	EmbeddingModel string `yaml:"embedding_model" mapstructure:"embedding_model"`
}

// NotionConfig holds the Notion integration. Token and PageID come from
// the environment.
type NotionConfig struct {
	Token  string `yaml:"-" mapstructure:"-"`
	PageID string `yaml:"-" mapstructure:"-"`
}

// FeedsConfig configures the news and weather endpoints
type FeedsConfig struct {
	NewsURL    string `yaml:"news_url" mapstructure:"news_url"`
	WeatherURL string `yaml:"weather_url" mapstructure:"weather_url"`
}

// BriefingConfig configures briefing generation
type BriefingConfig struct {
	Path       string `yaml:"path" mapstructure:"path"`
	ArchiveDir string `yaml:"archive_dir" mapstructure:"archive_dir"`
	Timezone   string `yaml:"timezone" mapstructure:"timezone"`
}

// StorageConfig configures the SQLite store
type StorageConfig struct {
	DBPath string `yaml:"db_path" mapstructure:"db_path"`
}

// RetrievalConfig bounds the retrieval pipeline
type RetrievalConfig struct {
	MaxPerSource    int  `yaml:"max_per_source" mapstructure:"max_per_source"`
	TopKAfterRerank int  `yaml:"top_k_after_rerank" mapstructure:"top_k_after_rerank"`
	MinFragmentLen  int  `yaml:"min_fragment_len" mapstructure:"min_fragment_len"`
	FallbackTopN    int  `yaml:"fallback_top_n" mapstructure:"fallback_top_n"`
	Rerank          bool `yaml:"rerank" mapstructure:"rerank"`
}

// ChatConfig configures conversation sessions
type ChatConfig struct {
	HistoryWindow int `yaml:"history_window" mapstructure:"history_window"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}
