package routing

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"echoclime/pkg/handlers"
	"echoclime/pkg/middleware"
	"echoclime/pkg/session"
	"echoclime/pkg/story"
)

const (
	staticPath  = "./static"
	indexPage   = "static/html/index.html"
	defaultAddr = ":8082"
)

func InitRoutes(api *mux.Router, store session.Service, mongoDB *mongo.Database, logger *slog.Logger) {

	sessionHandler := handlers.NewSessionHandler(store, logger)

	storyService := story.NewService(story.NewMongoRepo(mongoDB))
	storyHandler := handlers.NewStoryHandler(storyService, logger)

	/* -+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+ */

	authRouter := api.PathPrefix("").Subrouter()
	storiesRouter := api.PathPrefix("/stories").Subrouter()
	storyRouter := api.PathPrefix("/story").Subrouter()

	/* session routers */
	authRouter.HandleFunc("/login", sessionHandler.Login).Methods("POST").Name("login")
	authRouter.HandleFunc("/signup", sessionHandler.Signup).Methods("POST").Name("signup")
	authRouter.HandleFunc("/logout", sessionHandler.Logout).Methods("POST").Name("logout")
	authRouter.HandleFunc("/session", sessionHandler.GetSession).Methods("GET").Name("session")

	/* stories routers */
	storiesRouter.HandleFunc("", storyHandler.GetAllStories).Methods("GET")
	storiesRouter.HandleFunc("/{category:(?:"+story.Categories+")}", storyHandler.GetStoriesByCategory).Methods("GET")

	/* story routers */
	storyRouter.HandleFunc("", storyHandler.PublishStory).Methods("POST")
	storyRouter.HandleFunc("/{story_id:[a-zA-Z0-9]+}", storyHandler.GetStoryByID).Methods("GET")
}

// ServeAppPages registers the dashboard pages behind the route guard and the
// open login surface. The guard runs per request, so logging out in one view
// is observed on the next navigation.
func ServeAppPages(r *mux.Router, store middleware.SessionSource) {
	index := indexHandler()

	for _, path := range []string{"/dashboard", "/my-impact"} {
		r.Handle(path, middleware.GuardPage(store, index)).Methods("GET")
	}
	r.Handle("/login", index).Methods("GET")
}

func ServeStaticFiles(r *mux.Router) {
	fs := http.FileServer(http.Dir(staticPath))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))
}

func ServeFallback(r *mux.Router, logger *slog.Logger) {
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/static/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write([]byte("[]")); err != nil {
				logger.Error("failed to write fallback JSON", slog.String("path", r.URL.Path), slog.Any("error", err))
			}
			return
		}
		http.ServeFile(w, r, indexPage)
	})
}

func indexHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, indexPage)
	})
}

func StartServer(r *mux.Router) {
	addr := os.Getenv("APP_ADDR")
	if addr == "" {
		addr = defaultAddr
	}
	fmt.Println("\n\033[32m", "EchoClime is running on http://localhost"+addr, "\033[0m")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
