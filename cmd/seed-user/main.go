package main

import (
	"context"
	"errors"
	"flag"
	"io"

	"orca-backend/config"
	"orca-backend/logger"
	"orca-backend/service"
	"orca-backend/state"
	"orca-backend/storage"
)

func main() {
	username := flag.String("username", "Anon_Dev", "founder name to sign in")
	isPro := flag.Bool("pro", false, "sign in on the Pro tier")
	replace := flag.Bool("replace", false, "sign out an existing founder first")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	backend, err := storage.NewStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("failed to initialize storage", "type", cfg.Storage.Type, "error", err)
	}
	if c, ok := backend.(io.Closer); ok {
		defer c.Close()
	}

	session := service.NewSessionService(state.New(backend, cfg.KeyPrefix, log), service.SessionWithLogger(log))

	existing, err := session.Current(ctx)
	if err != nil {
		log.Fatal("failed to read session", "error", err)
	}
	if existing != nil {
		if !*replace {
			log.Info("founder already signed in", "username", existing.Username, "reputation", existing.Reputation)
			return
		}
		if err := session.Logout(ctx); err != nil {
			log.Fatal("failed to sign out", "error", err)
		}
	}

	user, err := session.Login(ctx, service.LoginRequest{Username: *username, IsPro: *isPro})
	if errors.Is(err, service.ErrUsernameRequired) {
		log.Fatal("username must not be blank")
	}
	if err != nil {
		log.Fatal("failed to sign in", "error", err)
	}
	log.Info("✓ founder signed in", "username", user.Username, "is_pro", user.IsPro, "storage", cfg.Storage.Type)
}
