// migrate applies the embedded SQL migrations to DATABASE_URL: go run ./cmd/migrate -direction up
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/verigate/internal/config"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/persistence/db/migrate"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	dir, err := migrate.ParseDirection(*direction)
	if err != nil {
		log.Fatal().Err(err).Msg("parse direction")
	}
	store, err := config.LoadStore()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if store.Driver != config.DriverPostgres {
		log.Fatal().Str("driver", store.Driver).Msg("migrations only apply to the postgres store")
	}
	if err := migrate.Run(store.DatabaseURL, dir); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Str("direction", string(dir)).Msg("migrations applied")
}
