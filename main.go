package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"festbot/app/api"
	"festbot/app/client/directory"
	"festbot/app/client/llm"
	"festbot/app/client/venues"
	"festbot/app/config"
	"festbot/app/service/chat"
	"festbot/app/service/chatlog"
	"festbot/app/service/guests"
	"festbot/app/service/intent"
	"festbot/app/service/refs"
	"festbot/app/service/session"
	"festbot/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, directory.New)
	do.Provide(di, llm.New)
	do.Provide(di, venues.New)
	do.Provide(di, intent.New)
	do.Provide(di, refs.New)
	do.Provide(di, session.New)
	do.Provide(di, guests.New)
	do.Provide(di, chatlog.New)
	do.Provide(di, chat.New)
	do.Provide(di, api.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	group, groupCtx := errgroup.WithContext(appCtx)

	group.Go(func() error {
		do.MustInvoke[*chatlog.Service](di).Run(groupCtx)
		return nil
	})

	group.Go(func() error {
		return do.MustInvoke[*api.Server](di).Run()
	})

	group.Go(func() error {
		<-groupCtx.Done()
		return do.MustInvoke[*api.Server](di).Shutdown()
	})

	if err := group.Wait(); err != nil {
		slog.Error("Service stopped with error", "error", err)
	}
}
