// Package agentcore provides a high-level façade over the agent loop and its
// collaborators (memory tiers, retrieval, tools, model gateways) enabling
// construction of the full service container in one call. Most applications
// interact with this package by:
//  1. Loading config.Settings (or building one by hand)
//  2. Creating an App via New() (optionally overriding individual services)
//  3. Calling App.Agent.Chat / App.Retriever.AddDocuments from their transport
//
// The container is built once at process start and passed by handle into
// request-scoped handlers; there is no ambient global lookup. All defaults
// are safe for local development and testing; production deployments supply
// durable store implementations and a structured logger.
package agentcore

import (
	"fmt"
	"io"

	"github.com/modularai/agentcore/agent"
	"github.com/modularai/agentcore/config"
	"github.com/modularai/agentcore/core"
	"github.com/modularai/agentcore/logging"
	"github.com/modularai/agentcore/memory"
	memredis "github.com/modularai/agentcore/memory/redis"
	memsqlite "github.com/modularai/agentcore/memory/sqlite"
	"github.com/modularai/agentcore/model"
	modelanthropic "github.com/modularai/agentcore/model/anthropic"
	modelollama "github.com/modularai/agentcore/model/ollama"
	modelopenai "github.com/modularai/agentcore/model/openai"
	"github.com/modularai/agentcore/rag"
	ragchromem "github.com/modularai/agentcore/rag/chromem"
	"github.com/modularai/agentcore/rag/ollamaembed"
	"github.com/modularai/agentcore/rag/openaiembed"
	"github.com/modularai/agentcore/tool"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/redis/go-redis/v9"
)

// Options allow overriding individual services before wiring. Any unset
// service is built from Settings.
type Options struct {
	Model       model.Model
	Embedder    core.Embedder
	VectorIndex core.VectorIndex
	LongTerm    core.LongTermStore
	Logger      logging.Logger
}

// App is the assembled service container.
type App struct {
	Agent     *agent.Agent
	Memory    *memory.Service
	Retriever *rag.Retriever
	Registry  *tool.Registry
	Logger    logging.Logger

	closers []io.Closer
}

// New builds the full container from Settings, honoring any overrides.
func New(cfg *config.Settings, optFns ...func(o *Options)) (*App, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewSlogLogger(logging.ParseLogLevel(cfg.LogLevel), cfg.LogFormat)
	}

	app := &App{Logger: logger}

	longTerm := opts.LongTerm
	if longTerm == nil {
		var err error
		if longTerm, err = buildLongTerm(cfg, app); err != nil {
			return nil, err
		}
	}
	memorySvc := memory.NewService(memory.NewShortTerm(cfg.ShortTermMaxMessages), longTerm)

	embedder := opts.Embedder
	if embedder == nil {
		embedder = buildEmbedder(cfg)
	}
	index := opts.VectorIndex
	if index == nil {
		var err error
		if index, err = buildVectorIndex(cfg); err != nil {
			return nil, err
		}
	}
	retriever := rag.NewRetriever(index, embedder)

	registry := tool.NewRegistry(tool.WithLogger(logger))
	registry.Register(tool.NewVectorSearchTool(retriever))
	registry.Register(tool.NewSaveMemoryTool(memorySvc))
	registry.Register(tool.NewRetrieveMemoryTool(memorySvc))
	registry.Register(tool.NewExternalAPIMockTool())

	gateway := opts.Model
	if gateway == nil {
		gateway = buildModel(cfg)
	}

	app.Memory = memorySvc
	app.Retriever = retriever
	app.Registry = registry
	app.Agent = agent.New(gateway, registry, memorySvc, retriever, func(o *agent.Options) {
		o.MaxSteps = cfg.AgentMaxSteps
		o.RetrievalEnabled = cfg.RAGEnabled
		o.Logger = logger
	})
	return app, nil
}

// Close releases resources held by backend stores.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func buildLongTerm(cfg *config.Settings, app *App) (core.LongTermStore, error) {
	switch cfg.LongTermBackend {
	case config.LongTermRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		app.closers = append(app.closers, client)
		return memredis.New(client), nil
	case config.LongTermSQLite:
		store, err := memsqlite.New(cfg.MemoryDBPath)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, store)
		return store, nil
	default:
		return nil, fmt.Errorf("agentcore: unknown long-term backend %q", cfg.LongTermBackend)
	}
}

func buildVectorIndex(cfg *config.Settings) (core.VectorIndex, error) {
	switch cfg.VectorBackend {
	case config.VectorChromem:
		if cfg.RAGPersistDir != "" {
			return ragchromem.NewPersistent(cfg.RAGPersistDir)
		}
		return ragchromem.New()
	default:
		return rag.NewIndex(), nil
	}
}

func buildEmbedder(cfg *config.Settings) core.Embedder {
	switch cfg.EmbeddingBackend {
	case config.EmbeddingOllama:
		return ollamaembed.New(func(o *ollamaembed.Options) {
			o.Host = cfg.OllamaHost
			o.Model = cfg.OllamaEmbedModel
		})
	case config.EmbeddingFake:
		return rag.NewHashEmbedder(0)
	default:
		return openaiembed.New(func(o *openaiembed.Options) {
			o.Model = cfg.OpenAIEmbeddingModel
		})
	}
}

func buildModel(cfg *config.Settings) model.Model {
	switch cfg.ModelBackend {
	case config.ModelAnthropic:
		return modelanthropic.NewModel(func(o *modelanthropic.Options) {
			if cfg.AnthropicModel != "" {
				o.Model = anthropic.Model(cfg.AnthropicModel)
			}
		})
	case config.ModelOllama:
		return modelollama.NewModel(func(o *modelollama.Options) {
			o.Host = cfg.OllamaHost
			o.Model = cfg.OllamaChatModel
		})
	case config.ModelFake:
		return model.NewFakeModel()
	default:
		return modelopenai.NewModel(func(o *modelopenai.Options) {
			o.Model = cfg.OpenAIModel
		})
	}
}
