package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/vicegrid/internal/catalog"
	"github.com/peterkuimelis/vicegrid/internal/engine"
	vicemcp "github.com/peterkuimelis/vicegrid/internal/mcp"
)

func main() {
	cardsFile := flag.String("cards", "", "path to cards YAML file (default: embedded pool)")
	decksFile := flag.String("decks", "", "path to decks YAML file (default: embedded lists)")
	flag.Parse()

	var (
		defs engine.Registry
		err  error
	)
	if *cardsFile != "" {
		defs, err = catalog.Load(*cardsFile)
	} else {
		defs, err = catalog.Default()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var decks map[string][]string
	if *decksFile != "" {
		decks, err = catalog.LoadDecks(*decksFile, defs)
	} else {
		decks, err = catalog.DefaultDecks(defs)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	vicemcp.SetCardPool(defs, decks)

	s := server.NewMCPServer("vicegrid", "1.0.0")
	vicemcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
