package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/peterkuimelis/vicegrid/internal/catalog"
	"github.com/peterkuimelis/vicegrid/internal/engine"
	"github.com/peterkuimelis/vicegrid/internal/journal"
)

func main() {
	hostDeck := flag.String("host-deck", "Street Pressure", "deck name for the host seat")
	awayDeck := flag.String("away-deck", "Grid Control", "deck name for the away seat")
	seed := flag.Int64("seed", 1, "shuffle seed (0 leaves decks unshuffled)")
	cardsFile := flag.String("cards", "", "path to cards YAML file (default: embedded pool)")
	decksFile := flag.String("decks", "", "path to decks YAML file (default: embedded lists)")
	flag.Parse()

	if err := run(*hostDeck, *awayDeck, *seed, *cardsFile, *decksFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(hostDeckName, awayDeckName string, seed int64, cardsFile, decksFile string) error {
	var (
		defs engine.Registry
		err  error
	)
	if cardsFile != "" {
		defs, err = catalog.Load(cardsFile)
	} else {
		defs, err = catalog.Default()
	}
	if err != nil {
		return err
	}

	var decks map[string][]string
	if decksFile != "" {
		decks, err = catalog.LoadDecks(decksFile, defs)
	} else {
		decks, err = catalog.DefaultDecks(defs)
	}
	if err != nil {
		return err
	}

	hostDeck, err := catalog.DeckByName(decks, hostDeckName)
	if err != nil {
		return err
	}
	awayDeck, err := catalog.DeckByName(decks, awayDeckName)
	if err != nil {
		return err
	}

	state, err := engine.NewDuel(engine.DuelConfig{
		Defs:     defs,
		HostDeck: hostDeck,
		AwayDeck: awayDeck,
		Seed:     seed,
	})
	if err != nil {
		return err
	}

	log := journal.New()
	in := bufio.NewScanner(os.Stdin)
	mark := 0

	for !state.GameOver {
		seat := actingSeat(state)
		printSummary(state, seat)

		moves := engine.LegalMoves(state, seat)
		for i, mv := range moves {
			fmt.Printf("  [%d] %s\n", i, describe(state, mv))
		}
		fmt.Printf("%s> ", seat)

		if !in.Scan() {
			return nil
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if line == "q" || line == "quit" {
			return nil
		}
		idx, err := strconv.Atoi(line)
		if err != nil || idx < 0 || idx >= len(moves) {
			fmt.Println("Pick a move by number, or q to quit.")
			continue
		}

		events := engine.Decide(state, seat, moves[idx])
		if len(events) == 0 {
			fmt.Println("That move is no longer legal.")
			continue
		}
		state = engine.Apply(state, events)
		log.Append(events)
		mark = log.Tail(os.Stdout, mark)
	}

	fmt.Printf("\n=== %s wins (%s) ===\n", state.Winner, state.WinReason)
	return nil
}

// actingSeat is whoever may act: the priority holder during a chain,
// otherwise the turn player.
func actingSeat(gs *engine.GameState) engine.Seat {
	if len(gs.CurrentChain) > 0 {
		return gs.CurrentPriorityPlayer
	}
	return gs.CurrentTurnPlayer
}

func printSummary(gs *engine.GameState, seat engine.Seat) {
	fmt.Printf("\n-- Turn %d | %s | %s to act --\n", gs.TurnNumber, gs.CurrentPhase, seat)
	for _, s := range engine.Seats() {
		p := gs.Players[s]
		fmt.Printf("%s: %d LP | hand %d | board %d | deck %d | breakdowns %d\n",
			s, p.LifePoints, len(p.Hand), len(p.Board), len(p.Deck), p.BreakdownsCaused)
	}
	p := gs.Players[seat]
	if len(p.Hand) > 0 {
		names := make([]string, len(p.Hand))
		for i, id := range p.Hand {
			names[i] = cardName(gs, id)
		}
		fmt.Printf("hand: %s\n", strings.Join(names, ", "))
	}
}

func cardName(gs *engine.GameState, instanceID string) string {
	if def := gs.Definition(instanceID); def != nil {
		return fmt.Sprintf("%s (%s)", def.Name, instanceID)
	}
	return instanceID
}

func describe(gs *engine.GameState, cmd engine.Command) string {
	var sb strings.Builder
	sb.WriteString(string(cmd.Type))
	if cmd.CardID != "" {
		sb.WriteString(" " + cardName(gs, cmd.CardID))
	}
	if len(cmd.TributeIDs) > 0 {
		names := make([]string, len(cmd.TributeIDs))
		for i, id := range cmd.TributeIDs {
			names[i] = cardName(gs, id)
		}
		sb.WriteString(" tributing " + strings.Join(names, ", "))
	}
	if cmd.Type == engine.CommandDeclareAttack {
		if cmd.TargetID == "" {
			sb.WriteString(" (direct)")
		} else {
			sb.WriteString(" -> " + cardName(gs, cmd.TargetID))
		}
	}
	if len(cmd.TargetIDs) > 0 {
		names := make([]string, len(cmd.TargetIDs))
		for i, id := range cmd.TargetIDs {
			names[i] = cardName(gs, id)
		}
		sb.WriteString(" targeting " + strings.Join(names, ", "))
	}
	if cmd.Type == engine.CommandChainResponse && cmd.Pass {
		sb.WriteString(" (pass)")
	}
	return sb.String()
}
