package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/mccartn3y/tetris-cli/pkg/api"
	"github.com/mccartn3y/tetris-cli/pkg/log"
	"github.com/mccartn3y/tetris-cli/pkg/repositories"
	"github.com/mccartn3y/tetris-cli/pkg/version"
)

func main() {
	port := flag.Int("port", 9090, "port to listen on")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting api server version %s", version.Get())
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded: %v", err)
	}

	connStr := os.Getenv("TETRIS_DATABASE_URL")
	if connStr == "" {
		connStr = "sqlite://tetris.db"
	}

	u, err := url.Parse(connStr)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse connection string: %v", err))
	}

	var repository repositories.Repository
	switch u.Scheme {
	case "sqlite":
		repository, err = repositories.NewSQLiteRepository(ctx, u.Host)
		if err != nil {
			panic(fmt.Sprintf("Failed to create SQLite repository: %v", err))
		}
	case "postgresql":
		repository = repositories.NewPostgresRepository(ctx, u.String())
	default:
		panic(fmt.Sprintf("Unknown database type %s", u.Scheme))
	}
	defer repository.Close(ctx)

	apiServerOpts := api.NewAPIServerOptions{
		Port:       *port,
		Repository: repository,
	}
	tlsCertFile := os.Getenv("TETRIS_API_TLS_CERT_FILE")
	tlsKeyFile := os.Getenv("TETRIS_API_TLS_KEY_FILE")
	if tlsCertFile != "" && tlsKeyFile != "" {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: tlsCertFile,
			KeyFile:  tlsKeyFile,
		}
	}
	server := api.NewAPIServer(apiServerOpts)
	go server.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
	if err := server.Stop(ctx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}
}
