package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"damai-site/pkg/config"
	"damai-site/pkg/logger"
	"damai-site/pkg/queue"
	"damai-site/pkg/s3"
)

// orphans drains the orphaned-media queue and prints one JSON line per
// object. With -purge it deletes each object from the store as it goes.
func main() {
	var (
		purge = flag.Bool("purge", false, "delete each reported object from the media store")
		idle  = flag.Duration("for", 0, "stop after this long (0 runs until interrupted)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	defer log.Sync()

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		os.Exit(1)
	}
	defer queueClient.Close()

	var store deleter
	if *purge {
		s3Client, err := s3.NewClient(cfg)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			os.Exit(1)
		}
		store = s3Client
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if *idle > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *idle)
		defer cancel()
	}

	r := newReporter(os.Stdout, store, *purge, log)
	start := time.Now()
	err = queueClient.ConsumeOrphanedMedia(ctx, func(event queue.OrphanedMedia) error {
		return r.handle(ctx, event)
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		log.Error("Consumer stopped: %v", err)
		os.Exit(1)
	}

	log.Info("Processed %d orphaned objects in %s", r.seen, time.Since(start).Round(time.Second))
}
