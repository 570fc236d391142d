package main

import (
	"fmt"

	"github.com/YuvaneshSankar/OrbitAI/internal/briefing"
	"github.com/YuvaneshSankar/OrbitAI/internal/chat"
	"github.com/YuvaneshSankar/OrbitAI/internal/config"
	"github.com/YuvaneshSankar/OrbitAI/internal/embedding"
	"github.com/YuvaneshSankar/OrbitAI/internal/fetch"
	"github.com/YuvaneshSankar/OrbitAI/internal/llm"
	"github.com/YuvaneshSankar/OrbitAI/internal/retrieval"
	"github.com/YuvaneshSankar/OrbitAI/internal/storage"
)

// app wires configuration into the live components. Construction never
// fails on missing secrets; those degrade per-fetch at runtime.
type app struct {
	cfg      *config.Config
	docs     *storage.DocumentStore
	vectors  *storage.VecStore
	model    llm.Client
	embedder *embedding.OpenAIClient
	engine   *retrieval.Engine
	cache    *briefing.Cache
	store    *briefing.Store
	session  *chat.Session
}

func newApp(cfg *config.Config) (*app, error) {
	docs, err := storage.NewDocumentStore(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening document store: %w", err)
	}

	vectors, err := storage.NewVecStore(docs.DB())
	if err != nil {
		docs.Close()
		return nil, fmt.Errorf("opening vector store: %w", err)
	}

	model := llm.NewOpenAIClient(cfg.OpenAI.APIKey, llm.WithModel(cfg.OpenAI.Model))
	embedder := embedding.NewOpenAIClient(cfg.OpenAI.APIKey)

	// Retrieval: one vector source over the personal document store
	source := retrieval.NewVectorSource("personal", embedder, vectors, docs)
	engine := retrieval.NewEngine([]retrieval.Store{source}, model, retrieval.Options{
		MaxPerSource:    cfg.Retrieval.MaxPerSource,
		TopKAfterRerank: cfg.Retrieval.TopKAfterRerank,
		MinFragmentLen:  cfg.Retrieval.MinFragmentLen,
		FallbackTopN:    cfg.Retrieval.FallbackTopN,
		Rerank:          cfg.Retrieval.Rerank,
	})

	// Briefing pipeline
	calendar := fetch.NewCalendarFetcher(docs, cfg.Briefing.Timezone)
	tasks := fetch.NewTasksFetcher(cfg.Notion.Token, cfg.Notion.PageID)
	news := fetch.NewNewsWeatherFetcher(cfg.Feeds.NewsURL, cfg.Feeds.WeatherURL, model)

	assembler := briefing.NewAssembler(calendar, tasks, news, model)
	store := briefing.NewStore(cfg.Briefing.Path)
	cache := briefing.NewCache(store, assembler, cfg.Briefing.ArchiveDir)

	session := chat.NewSession(engine, model, cfg.Chat.HistoryWindow)

	return &app{
		cfg:      cfg,
		docs:     docs,
		vectors:  vectors,
		model:    model,
		embedder: embedder,
		engine:   engine,
		cache:    cache,
		store:    store,
		session:  session,
	}, nil
}

func (a *app) Close() error {
	return a.docs.Close()
}

func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return newApp(cfg)
}
