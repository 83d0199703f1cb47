package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/config"
	"github.com/kitbuilder587/searchportal/internal/handler"
	"github.com/kitbuilder587/searchportal/internal/llm"
	"github.com/kitbuilder587/searchportal/internal/llm/gateway"
	"github.com/kitbuilder587/searchportal/internal/llm/openai"
	"github.com/kitbuilder587/searchportal/internal/metrics"
	"github.com/kitbuilder587/searchportal/internal/repository/postgres"
	"github.com/kitbuilder587/searchportal/internal/search"
	"github.com/kitbuilder587/searchportal/internal/search/archive"
	"github.com/kitbuilder587/searchportal/internal/search/arxiv"
	"github.com/kitbuilder587/searchportal/internal/search/duckduckgo"
	"github.com/kitbuilder587/searchportal/internal/search/firecrawl"
	"github.com/kitbuilder587/searchportal/internal/search/openlibrary"
	"github.com/kitbuilder587/searchportal/internal/search/pubmed"
	"github.com/kitbuilder587/searchportal/internal/search/video"
	"github.com/kitbuilder587/searchportal/internal/search/wikimedia"
	"github.com/kitbuilder587/searchportal/internal/service"
)

// services holds every aggregator built from one configuration.
type services struct {
	web          *service.WebService
	academic     *service.AcademicService
	video        *service.VideoService
	news         *service.NewsService
	images       *service.ImageService
	shopping     *service.ShoppingService
	autocomplete *service.AutocompleteService
}

func (s *services) handlers() handler.SearchServices {
	return handler.SearchServices{
		Web:          s.web,
		Academic:     s.academic,
		Video:        s.video,
		News:         s.news,
		Images:       s.images,
		Shopping:     s.shopping,
		Autocomplete: s.autocomplete,
	}
}

func newMetrics() *metrics.Metrics {
	reg := prometheus.NewRegistry()
	return metrics.NewWithRegistry(reg, reg)
}

func newLLMClient(cfg config.AIConfig, logger *zap.Logger) llm.Client {
	if cfg.APIKey == "" {
		logger.Info("AI key not set, summaries use the fallback text")
		return nil
	}
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.New(openai.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}, logger)
	default:
		return gateway.New(gateway.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}, logger)
	}
}

func buildServices(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) *services {
	up := cfg.Upstream
	wm := wikimedia.Config{UserAgent: up.UserAgent, Timeout: up.Timeout}

	wikipedia := wikimedia.NewWikipedia(wm, logger)
	commons := wikimedia.NewCommons(wm, logger)
	ax := arxiv.New(arxiv.Config{UserAgent: up.UserAgent, Timeout: up.Timeout}, logger)
	pm := pubmed.New(pubmed.Config{UserAgent: up.UserAgent, Timeout: up.Timeout}, logger)
	ia := archive.New(archive.Config{UserAgent: up.UserAgent, Timeout: up.Timeout}, logger)

	mirror := video.MirrorConfig{Timeout: up.MirrorTimeout, UserAgent: up.UserAgent}
	youtube := video.NewYouTube(
		video.NewInvidious(mirror, logger),
		video.NewPiped(mirror, logger),
		logger,
	)
	peertube := video.NewPeerTube(video.MirrorConfig{Timeout: up.PeerTubeTimeout, UserAgent: up.UserAgent}, logger)

	synth := service.NewSynthesizer(newLLMClient(cfg.AI, logger), m, logger)

	var fc search.SearchClient
	if cfg.Firecrawl.APIKey != "" {
		fc = firecrawl.New(firecrawl.Config{
			APIKey:  cfg.Firecrawl.APIKey,
			BaseURL: cfg.Firecrawl.BaseURL,
			Timeout: cfg.Server.RequestTimeout,
		}, logger)
	} else {
		logger.Info("FIRECRAWL_API_KEY not set, news and shopping are disabled")
	}

	return &services{
		web: service.NewWebService(service.WebServiceDeps{
			Sources: service.WebSources{
				DuckDuckGo:  duckduckgo.New(duckduckgo.Config{UserAgent: up.UserAgent, Timeout: up.Timeout}, logger),
				Wikipedia:   wikipedia,
				Wikidata:    wikimedia.NewWikidata(wm, logger),
				OpenLibrary: openlibrary.New(openlibrary.Config{UserAgent: up.UserAgent, Timeout: up.Timeout}, logger),
				Arxiv:       ax,
				PubMed:      pm,
				Commons:     commons,
				Archive:     ia,
			},
			Synthesizer: synth,
			Logger:      logger,
			Metrics:     m,
		}),
		academic: service.NewAcademicService(service.AcademicServiceDeps{
			Arxiv:       ax,
			PubMed:      pm,
			Synthesizer: synth,
			Logger:      logger,
			Metrics:     m,
		}),
		video: service.NewVideoService(service.VideoServiceDeps{
			Sources: service.VideoSources{
				YouTube:     youtube,
				Dailymotion: video.NewDailymotion(video.DailymotionConfig{UserAgent: up.UserAgent, Timeout: up.Timeout}, logger),
				Archive:     ia,
				PeerTube:    peertube,
			},
			Logger:  logger,
			Metrics: m,
		}),
		news: service.NewNewsService(service.NewsServiceDeps{
			Search:      fc,
			Synthesizer: synth,
			Logger:      logger,
			Metrics:     m,
		}),
		images: service.NewImageService(service.ImageServiceDeps{
			Commons:   commons,
			Wikipedia: wikipedia,
			Logger:    logger,
			Metrics:   m,
		}),
		shopping: service.NewShoppingService(service.ShoppingServiceDeps{
			Search:  fc,
			Logger:  logger,
			Metrics: m,
		}),
		autocomplete: service.NewAutocompleteService(nil),
	}
}

// openLibrary connects the record store, optionally applies the schema, and
// returns the library handler with a close func. The handler is nil when
// DATABASE_URL is unset.
func openLibrary(ctx context.Context, cfg *config.Config, migrate bool, logger *zap.Logger) (*handler.LibraryHandler, func(), error) {
	if !cfg.LibraryEnabled() {
		logger.Info("DATABASE_URL not set, library endpoints are disabled")
		return nil, func() {}, nil
	}

	db, err := postgres.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if migrate {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}

	library := service.NewLibraryService(
		postgres.NewHistoryRepo(db),
		postgres.NewSavedSearchRepo(db),
		postgres.NewReadingListRepo(db),
		logger,
	)
	return handler.NewLibraryHandler(library, logger), db.Close, nil
}
