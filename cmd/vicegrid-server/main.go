package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/peterkuimelis/vicegrid/internal/catalog"
	"github.com/peterkuimelis/vicegrid/internal/engine"
	"github.com/peterkuimelis/vicegrid/internal/server"
)

func main() {
	viper.SetDefault("addr", ":8080")
	viper.SetDefault("cards", "")
	viper.SetDefault("decks", "")
	viper.SetDefault("debug", false)

	viper.SetConfigName("vicegrid")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/vicegrid")
	viper.SetEnvPrefix("vicegrid")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
			os.Exit(1)
		}
	}

	logger, err := newLogger(viper.GetBool("debug"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	defs, decks, err := loadCardPool(viper.GetString("cards"), viper.GetString("decks"))
	if err != nil {
		logger.Fatal("load card pool", zap.Error(err))
	}

	srv := server.NewServer(defs, decks, logger)
	if err := srv.ListenAndServe(viper.GetString("addr")); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadCardPool loads the catalog and deck lists, falling back to the
// embedded defaults when no paths are configured.
func loadCardPool(cardsPath, decksPath string) (engine.Registry, map[string][]string, error) {
	var (
		defs engine.Registry
		err  error
	)
	if cardsPath != "" {
		defs, err = catalog.Load(cardsPath)
	} else {
		defs, err = catalog.Default()
	}
	if err != nil {
		return nil, nil, err
	}

	var decks map[string][]string
	if decksPath != "" {
		decks, err = catalog.LoadDecks(decksPath, defs)
	} else {
		decks, err = catalog.DefaultDecks(defs)
	}
	if err != nil {
		return nil, nil, err
	}
	return defs, decks, nil
}
