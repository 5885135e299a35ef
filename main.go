package main

import (
	"context"
	"fmt"
	"log"

	"github.com/BethCNC/dad-social-media-agent-sub000/api"
	"github.com/BethCNC/dad-social-media-agent-sub000/archive"
	"github.com/BethCNC/dad-social-media-agent-sub000/cache"
	"github.com/BethCNC/dad-social-media-agent-sub000/client"
	"github.com/BethCNC/dad-social-media-agent-sub000/config"
	"github.com/BethCNC/dad-social-media-agent-sub000/events"
	"github.com/BethCNC/dad-social-media-agent-sub000/planner"
	"github.com/BethCNC/dad-social-media-agent-sub000/publish"
	"github.com/BethCNC/dad-social-media-agent-sub000/render"
	"github.com/BethCNC/dad-social-media-agent-sub000/scheduler"
	"github.com/BethCNC/dad-social-media-agent-sub000/topics"
	"github.com/BethCNC/dad-social-media-agent-sub000/types"
	"github.com/BethCNC/dad-social-media-agent-sub000/wizard"
)

func main() {
	cfg := config.Load()

	backend := client.New(cfg.BackendURL)

	// Plan generation goes straight to Cohere when a key is configured,
	// otherwise through the backend API.
	var planGen wizard.PlanGenerator = backend
	if cfg.CohereAPIKey != "" {
		planGen = planner.New(cfg.CohereAPIKey, config.PlannerModel)
		log.Println("✅ Using in-process Cohere planner")
	}

	var searcher wizard.AssetSearcher = backend
	if cfg.RedisAddr != "" {
		cached, err := cache.New(backend, cfg.RedisAddr, config.SearchCacheTTL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable, search cache disabled: %v", err)
		} else {
			searcher = cached
			log.Printf("✅ Search cache enabled (redis %s)", cfg.RedisAddr)
		}
	}

	var renderClient wizard.RenderClient = backend
	localRender := false
	if cfg.LocalRender {
		baseURL := fmt.Sprintf("http://localhost:%s/renders", cfg.Port)
		engine, err := render.NewEngine(config.RenderOutputDir, baseURL)
		if err != nil {
			log.Fatalf("❌ Failed to initialize render engine: %v", err)
		}
		renderClient = engine
		localRender = true
		log.Printf("✅ Local ffmpeg rendering enabled (output: %s)", config.RenderOutputDir)
	}

	var sink wizard.EventSink
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := events.NewProducer(events.ProducerConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			log.Printf("⚠️  Kafka unavailable, event publishing disabled: %v", err)
		} else {
			sink = producer
			defer producer.Close()
			log.Printf("✅ Publishing pipeline events to %s", cfg.KafkaTopic)
		}
	}

	visualStyle := types.VisualStyleStockVideo
	if cfg.DefaultVisualStyle == string(types.VisualStyleAIGeneration) {
		visualStyle = types.VisualStyleAIGeneration
	}

	factory := func() *wizard.Orchestrator {
		return wizard.New(planGen, searcher, renderClient, backend, wizard.Options{
			PollCap:             cfg.RenderPollCap,
			RequiredVideoAssets: cfg.RequiredVideoAssets,
			VisualStyle:         visualStyle,
			Events:              sink,
		})
	}

	var suggester *topics.Suggester
	if len(cfg.TopicFeeds) > 0 {
		suggester = topics.NewSuggester(cfg.TopicFeeds)
		log.Printf("✅ Topic suggestions enabled (%d feeds)", len(cfg.TopicFeeds))
	}

	queue := scheduler.NewQueue(backend)
	if err := queue.Start("* * * * *"); err != nil {
		log.Fatalf("❌ Failed to start post queue: %v", err)
	}
	defer queue.Stop()

	var archiver api.PostArchiver
	if cfg.S3Bucket != "" {
		store, err := archive.NewS3(context.Background(), archive.S3Config{
			Region:       cfg.S3Region,
			UsePathStyle: cfg.S3UsePathStyle,
		})
		if err != nil {
			log.Printf("⚠️  S3 unavailable, archiving disabled: %v", err)
		} else {
			archiver = archive.NewArchiver(store, cfg.S3Bucket, cfg.S3Prefix)
			log.Printf("✅ Archiving delivered posts to s3://%s/%s", cfg.S3Bucket, cfg.S3Prefix)
		}
	}

	var uploader api.ShortsUploader
	if cfg.YouTubeServiceAccountFile != "" {
		yt, err := publish.NewUploader(cfg.YouTubeServiceAccountFile)
		if err != nil {
			log.Printf("⚠️  YouTube uploader disabled: %v", err)
		} else {
			uploader = yt
			log.Println("✅ YouTube Shorts upload enabled")
		}
	}

	server := api.NewServer(factory, suggester, queue, archiver, uploader)
	r := server.NewRouter()
	if localRender {
		r.Static("/renders", config.RenderOutputDir)
	}

	addr := ":" + cfg.Port
	log.Printf("Starting wizard API on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
