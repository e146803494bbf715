package main

import (
	"log/slog"
	"os"

	"github.com/gorilla/mux"

	"echoclime/internal/config"
	"echoclime/internal/logger"
	"echoclime/internal/mongo"
	"echoclime/internal/mysql"
	"echoclime/internal/routing"
	"echoclime/pkg/middleware"
	"echoclime/pkg/session"
	"echoclime/pkg/storage"
)

func main() {
	config.Load() // load env var from .env (or $START)

	log := logger.Load()

	slot := loadSlot(log)
	store := session.NewStore(slot, loadCodec(), log)
	store.Initialize() // rehydrate before the first request is served

	mongoDB := mongo.LoadDB()

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Panic(log))
	api.Use(middleware.Guard(store))

	routing.InitRoutes(api, store, mongoDB, log)
	routing.ServeAppPages(r, store)
	routing.ServeStaticFiles(r)
	routing.ServeFallback(r, log)
	routing.StartServer(r)
}

// loadSlot picks the durable slot backend. Persistence failures are
// recoverable: the store still works in-memory for this process lifetime.
func loadSlot(log *slog.Logger) storage.KeyValue {
	if os.Getenv("MYSQL_DSN") != "" {
		db, err := mysql.LoadDB()
		if err != nil {
			log.Warn("mysql unavailable, sessions will not survive restarts", "error", err)
			return storage.NewMemory()
		}
		return storage.NewSQLStore(db)
	}

	if dir := os.Getenv("SESSION_STORAGE_DIR"); dir != "" {
		fs, err := storage.NewFileStore(dir)
		if err != nil {
			log.Warn("file storage unavailable, sessions will not survive restarts", "error", err)
			return storage.NewMemory()
		}
		return fs
	}

	log.Warn("no durable storage configured, sessions will not survive restarts")
	return storage.NewMemory()
}

func loadCodec() session.Codec {
	if os.Getenv("SESSION_CODEC") == "signed" {
		return session.SignedCodec{Secret: []byte(os.Getenv("SESSION_SECRET"))}
	}
	return session.JSONCodec{}
}
