package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GiftChart/internal/bot"
	"GiftChart/internal/calculator"
	"GiftChart/internal/card"
	"GiftChart/internal/chart"
	"GiftChart/internal/collector"
	"GiftChart/internal/config"
	"GiftChart/internal/generator"
	"GiftChart/internal/gifts"
	"GiftChart/internal/metrics"
	"GiftChart/internal/model"
	"GiftChart/internal/notifier"
	"GiftChart/internal/recorder"
	"GiftChart/internal/scheduler"
	"GiftChart/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] GiftChart starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	mm := metrics.NewManager()

	// Marketplace session
	var sources session.ChainSource
	if cfg.Portals.AuthFile != "" {
		sources = append(sources, session.FileSource{Path: cfg.Portals.AuthFile})
	}
	if cfg.Portals.AuthData != "" {
		sources = append(sources, session.StaticSource(cfg.Portals.AuthData))
	}
	sm, err := session.NewManager(cfg.Session.StateFile, sources, cfg.Session.TTL)
	if err != nil {
		log.Fatalf("[FATAL] init session manager: %v", err)
	}

	// Data source
	pcfg := collector.PortalsConfigDefaults()
	pcfg.BaseURL = cfg.Portals.BaseURL
	pcfg.HistoryLimit = cfg.Portals.HistoryLimit
	pcfg.RateLimitPerSec = cfg.Portals.RateLimitPerSec
	pcfg.ProxyURL = cfg.Proxy
	fetcher := collector.NewPortalsFetcher(pcfg, sm)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	col := collector.NewCollector(fetcher, calculator.NewNormalizer(cfg.Chart.Window, cfg.Chart.MaxPoints), cfg.Portals.Timeout)
	col.Observer = mm

	// Rendering
	chain := cfg.Render.FontPaths
	if len(chain) == 0 {
		chain = chart.DefaultFontChain()
	}
	fonts, err := chart.LoadFont(chain)
	if err != nil {
		log.Printf("[WARN] %v; cards will fail until a font is available", err)
	}
	seed := cfg.Render.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := model.NewRand(seed)

	var icons generator.IconFetcher
	if cfg.Icons.URLTemplate != "-" {
		icons = collector.NewIconSource(cfg.Icons.URLTemplate, cfg.Proxy, cfg.Icons.Timeout)
	}

	// Gift catalog
	var catalog map[string]string
	if cfg.Gifts.CatalogPath != "" {
		catalog, err = gifts.LoadCatalog(cfg.Gifts.CatalogPath)
		if err != nil {
			log.Printf("[WARN] load gift catalog, using built-in names: %v", err)
		}
	}
	resolver := gifts.NewResolver(catalog)
	log.Printf("[INFO] %d gifts known", len(resolver.Names()))
	if icons != nil && !resolver.HasIDs() {
		log.Println("[WARN] remote icons enabled but the gift catalog has no ids; set gifts.catalog_path to fetch icons")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using memory: %v", err)
			rec = recorder.NewMemoryRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewMemoryRecorder()
	}
	defer rec.Close()

	gen := &generator.Generator{
		Collector:   col,
		Renderer:    chart.NewRenderer(fonts, rnd),
		Composer:    card.NewComposer(fonts, cfg.Render.AssetDir, cfg.Render.Watermark),
		Icons:       icons,
		IconTimeout: cfg.Icons.Timeout,
		Rates:       card.Rates{TONPerStar: cfg.Rates.TONPerStar, USDPerTON: cfg.Rates.USDPerTON},
		Rand:        rnd,
		Metrics:     mm,
		History:     rec,
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Proxy)

	handler := &bot.Handler{
		Messenger: tn,
		Generator: gen,
		Resolver:  resolver,
		Rates:     rec,
		Metrics:   mm,
		RateLimit: cfg.Bot.RateLimit,
	}
	dispatcher := bot.NewDispatcher(handler, cfg.Bot.MaxConcurrent, cfg.Bot.UpdateTimeout)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics endpoint
	var srv *http.Server
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", mm.Handler())
		srv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			log.Printf("[INFO] metrics listening on %s", cfg.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[ERROR] metrics server: %v", err)
			}
		}()
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, sm, rec, tn, cfg.Telegram.AdminChatID)
	sched.RetainFor = cfg.Bot.RateLimit
	if err := sched.RegisterAll(cfg.Schedule.SessionRefreshCron, cfg.Schedule.PruneCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()

	// Start Telegram polling
	go tn.StartPolling(ctx, dispatcher.Dispatch)
	log.Println("[INFO] Telegram polling started")

	// Optional: refresh the session immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing session now")
		go func() {
			if err := sched.RefreshNow(); err != nil {
				log.Printf("[WARN] initial session refresh: %v", err)
			}
		}()
	}

	log.Println("[INFO] GiftChart is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	sched.Stop()
	dispatcher.Wait()
	if srv != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] metrics shutdown: %v", err)
		}
	}
	log.Println("[INFO] GiftChart stopped")
}
