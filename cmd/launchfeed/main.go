package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"launchfeed/internal/engine"
	"launchfeed/internal/logging"
	"launchfeed/source/httpjson"
)

func main() {
	logging.InitFromEnv()

	cfg := engine.Config{
		PipelineYml: "pipeline.yml", // optional
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	httpjson.Register("https", func() httpjson.Adapter { return &httpjson.Driver{} })

	e, err := engine.Bootstrap(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	if err := e.Run(ctx); err != nil {
		log.Fatalf("launchfeed: %v", err)
	}
}
