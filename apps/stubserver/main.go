package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/apps/stubserver/echoapi"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/gateway/inmem"
	logsvc "github.com/karciss/Frontend-Proyecto-Red-Social-sub001/services/logger"
)

func main() {
	conf := core.LoadConfig()

	std := log.New(os.Stdout, "STUB : ", log.LstdFlags|log.Lshortfile)
	logger := newLogger(std, conf)

	store := inmem.New([]byte(conf.SecretKey), conf.AppName)
	errAndDie(store.Seed())

	addr := os.Getenv("STUB_ADDR")
	if addr == "" {
		addr = ":8000"
	}

	app := echoapi.NewServer(&echoapi.Options{
		Address: addr,
		Store:   store,
		Conf:    conf,
		Logger:  logger,
	})
	logger.Info("stub backend listening on " + addr + " (demo logins use password \"secret\")")

	done := make(chan error, 1)
	go func() { done <- app.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-done:
		errAndDie(err)
	case <-quit:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errAndDie(app.Stop(ctx))
		if err := <-done; !core.IsShutdown(err) {
			errAndDie(err)
		}
		logger.Info("stub backend stopped")
	}
}

func newLogger(std *log.Logger, conf *core.Config) core.Logger {
	if conf.RollbarToken != "" {
		return logsvc.NewRollbarLogger(std, conf)
	}
	return logsvc.NewConsoleLogger(std)
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
