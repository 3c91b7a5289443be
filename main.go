package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/omar-mohamud/raagsanplatform/api"
	"github.com/omar-mohamud/raagsanplatform/config"
	"github.com/omar-mohamud/raagsanplatform/database"
	"github.com/omar-mohamud/raagsanplatform/models"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	c := config.New()

	// The primary store is dialed lazily on first use. A missing DATABASE_URL
	// dooms only the primary-store paths; the server still boots and serves
	// reads from the fallback set.
	opts := database.ConnOptionsFromConfig(c)
	conns := database.NewConnManager(opts)
	if opts.DSN == "" {
		log.Warn().Msg("DATABASE_URL is not set, primary store unavailable, serving fallback data")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
		conn, err := conns.Connect(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("primary store unreachable at boot, will retry on demand")
		} else if config.GetBool(c, "AUTO_MIGRATE", false) {
			if err := conn.AutoMigrate(&models.Project{}, &models.Story{}); err != nil {
				log.Error().Err(err).Msg("schema migration failed")
			}
		}
		cancel()
	}

	fallbackPath := config.GetString(c, "FALLBACK_DATA_FILE", "")
	db := database.New(conns, fallbackPath)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(db)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
