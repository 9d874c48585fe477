package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/petitionhq/petition/database"
	"github.com/petitionhq/petition/logging"
	"github.com/petitionhq/petition/routes"
	"github.com/petitionhq/petition/session"
	"github.com/petitionhq/petition/views"
)

var (
	DATABASE_URL,
	SESSION_SECRET,
	PORT,
	APP_ENV string

	REQUIRED_ENV = []string{
		"DATABASE_URL",
		"SESSION_SECRET",
	}
)

func init() {
	godotenv.Load()

	DATABASE_URL = os.Getenv("DATABASE_URL")
	SESSION_SECRET = os.Getenv("SESSION_SECRET")
	PORT = os.Getenv("PORT")
	APP_ENV = os.Getenv("APP_ENV")

	missing := checkenv(REQUIRED_ENV)

	if len(missing) != 0 {
		log.Fatalf(
			"missing %v in env",
			strings.Join(missing, ", "),
		)
	}
}

func main() {
	applog := logging.New("petition", APP_ENV)

	d, err := gorm.Open(postgres.Open(DATABASE_URL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		applog.WithError(err).Fatal("failed to connect to postgres")
	}

	database.InitDatabase(d)

	renderer, err := views.New(applog)
	if err != nil {
		applog.WithError(err).Fatal("failed to parse templates")
	}

	sessions := session.NewManager(SESSION_SECRET)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(session.SecurityHeaders)
	r.Use(sessions.LoadSession)
	r.Use(session.CSRF)

	rt := routes.Routes{
		Sessions: sessions,
		Views:    renderer,
		Log:      applog,
	}
	r.Mount("/", rt.Router())

	port := PORT
	if port == "" {
		port = "8080"
	}

	applog.WithField("port", port).Info("listening")

	if err := http.ListenAndServe(":"+port, r); err != nil {
		applog.WithError(err).Fatal("failed to start server")
	}
}

func checkenv(keys []string) []string {
	var missing []string
	for _, key := range keys {
		if val, ok := os.LookupEnv(key); len(val) == 0 || !ok {
			missing = append(missing, key)
		}
	}

	return missing
}
