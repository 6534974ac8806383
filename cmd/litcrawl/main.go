package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"litcrawl/internal/config"
	"litcrawl/internal/crawl"
	"litcrawl/internal/fetch"
	"litcrawl/internal/notify"
	"litcrawl/internal/planner"
	"litcrawl/internal/qualis"
	"litcrawl/internal/storage"
	"litcrawl/internal/translate"
)

func main() {
	fs := pflag.NewFlagSet("litcrawl", pflag.ExitOnError)

	cfg, err := config.Load("", fs)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	fs.Usage = cfg.Usage

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Invalid log level '%s': %v", cfg.LogLevel, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	logger.Info().Str("query", cfg.Query).Int("pages_desired", cfg.PagesDesired).Msg("starting litcrawl")

	proxyCfg := fetch.ProxyConfig{
		SocksAddr: cfg.TorSocksProxy,
		HTTPAddr:  cfg.TorHTTPProxy,
	}
	transport, err := fetch.NewHTTPTransport(proxyCfg, 20*time.Second)
	if err != nil {
		log.Fatalf("Failed to build HTTP transport: %v", err)
	}
	if usingProxy, addr := proxyCfg.UsingProxy(); usingProxy {
		logger.Info().Str("proxy", addr).Msg("routing requests through proxy")
	}

	notifier := notify.NewZerologNotifier(logger)

	headers := map[string]string{}
	if cfg.SemanticScholarAPIKey != "" {
		headers["x-api-key"] = cfg.SemanticScholarAPIKey
	}
	fetcher := fetch.NewFetcher(transport, notifier, headers)

	ctx := context.Background()
	store, err := storage.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	backend, err := translate.NewBackend(translate.Config{
		Provider: translate.Provider(cfg.TranslatorProvider),
		APIKey:   cfg.TranslatorAPIKey,
		Model:    cfg.TranslatorModel,
	})
	if err != nil {
		log.Fatalf("Failed to build translator backend: %v", err)
	}
	translator := translate.New(backend)

	qualisTable := qualis.NewTable()

	controller := crawl.NewController(fetcher, store, notifier, qualisTable, translator)

	var mandatory, optional []crawl.KeywordConstraint
	for _, rule := range cfg.KeywordRules {
		kc := crawl.KeywordConstraint{Term: rule.Term}
		if strings.EqualFold(rule.Importance, "required") {
			mandatory = append(mandatory, kc)
		} else {
			optional = append(optional, kc)
		}
	}

	req := crawl.Request{
		Label:      cfg.Query,
		Query:      cfg.Query,
		Desired:    cfg.PagesDesired * 20,
		YearFilter: parseYearFilter(cfg.YearFilter),
		Mandatory:  mandatory,
		Optional:   optional,
	}

	articles, err := controller.Run(ctx, req)
	if err != nil {
		logger.Fatal().Err(err).Msg("crawl failed")
	}

	logger.Info().Int("accepted", len(articles)).Msg("crawl complete")
}

func parseYearFilter(raw string) planner.YearFilter {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "recent5":
		return planner.YearFilterRecent5
	case "recent10":
		return planner.YearFilterRecent10
	case "recent20":
		return planner.YearFilterRecent20
	default:
		return planner.YearFilterNone
	}
}
