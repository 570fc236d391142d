package config

// DefaultConfig returns the baseline configuration. File and environment
// values are layered on top.
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		OpenAI: OpenAIConfig{
			Model:          "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
		},
		Feeds: FeedsConfig{
			NewsURL:    "https://saurav.tech/NewsAPI/top-headlines/category/general/in.json",
			WeatherURL: "https://api.open-meteo.com/v1/forecast?latitude=12.9165&longitude=79.1325&current=temperature_2m,wind_speed_10m,relative_humidity_2m",
		},
		Briefing: BriefingConfig{
			Path:       "daily_briefing.md",
			ArchiveDir: ".orbit/briefings",
			Timezone:   "Asia/Kolkata",
		},
		Storage: StorageConfig{
			DBPath: ".orbit/orbit.db",
		},
		Retrieval: RetrievalConfig{
			MaxPerSource:    5,
			TopKAfterRerank: 5,
			MinFragmentLen:  10,
			FallbackTopN:    5,
			Rerank:          true,
		},
		Chat: ChatConfig{
			HistoryWindow: 20,
		},
		Server: ServerConfig{
			Addr: ":8000",
		},
	}
}
