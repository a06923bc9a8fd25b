package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	colorize "github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arcanaland/pontifex/internal/config"
	"github.com/arcanaland/pontifex/internal/deck"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage key decks in your deck library",
	Long:  `Commands for creating and managing key decks in your deck library.`,
}

// deckListCmd represents the deck list command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available key decks in your deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetDeckLibraryPath()

		// Check if deck library exists
		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			fmt.Fprintf(out, "Deck library at %s does not exist.\n", libraryPath)
			fmt.Fprintln(out, "Run 'pontifex deck init' to create it.")
			return nil
		}

		libraryPath, err := filepath.EvalSymlinks(libraryPath)
		if err != nil {
			return fmt.Errorf("error resolving symbolic link: %w", err)
		}

		defaultDeck, err := config.GetDefaultDeck()
		if err != nil {
			return fmt.Errorf("error getting default deck: %w", err)
		}

		entries, err := os.ReadDir(libraryPath)
		if err != nil {
			return fmt.Errorf("error reading deck library: %w", err)
		}

		found := 0
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != deck.FileExt {
				continue
			}

			k, err := deck.Load(filepath.Join(libraryPath, entry.Name()))
			if err != nil {
				logrus.WithError(err).WithField("file", entry.Name()).Debug("skipping invalid key deck")
				continue
			}
			found++

			name := strings.TrimSuffix(entry.Name(), deck.FileExt)
			if name == defaultDeck || entry.Name() == defaultDeck {
				fmt.Fprintf(out, "* %s (%s, %d cards) %s\n", name, k.Name, k.Deck.Len(), colorize.GreenString("[DEFAULT]"))
			} else {
				fmt.Fprintf(out, "  %s (%s, %d cards)\n", name, k.Name, k.Deck.Len())
			}
		}

		if found == 0 {
			fmt.Fprintln(out, "No key decks found in your deck library.")
			fmt.Fprintln(out, "Create one with 'pontifex deck new NAME --shuffle'.")
		}
		return nil
	},
}

// deckSetDefaultCmd represents the deck set-default command
var deckSetDefaultCmd = &cobra.Command{
	Use:   "set-default [deck_name]",
	Short: "Set the default key deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckName := args[0]

		deckPath, err := config.GetDeckPath(deckName)
		if err != nil {
			return err
		}

		// Try to load the deck to make sure it's valid
		if _, err := deck.Load(deckPath); err != nil {
			return fmt.Errorf("not a valid key deck: %w", err)
		}

		if err := config.SetDefaultDeck(deckName); err != nil {
			return fmt.Errorf("error setting default deck: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default deck set to: %s\n", deckName)
		return nil
	},
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetDeckLibraryPath()

		if err := os.MkdirAll(libraryPath, 0700); err != nil {
			return fmt.Errorf("error creating deck library: %w", err)
		}

		fmt.Fprintln(out, "Deck library initialized at:", libraryPath)

		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		fmt.Fprintln(out, "Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

// deckNewCmd represents the deck new command
var deckNewCmd = &cobra.Command{
	Use:   "new [deck_name]",
	Short: "Create a key deck in the deck library",
	Long: `New writes a key deck to your deck library. Without --shuffle the deck is in
factory order, which is only useful for testing against published vectors.

Examples:
  pontifex deck new field --shuffle
  pontifex deck new tiny --per-suit 5 --suits 2 --shuffle --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if strings.ContainsAny(name, " /\\") {
			return fmt.Errorf("deck name must not contain spaces or path separators: %q", name)
		}

		perSuit, _ := cmd.Flags().GetInt("per-suit")
		suits, _ := cmd.Flags().GetInt("suits")
		shuffle, _ := cmd.Flags().GetBool("shuffle")
		seed, _ := cmd.Flags().GetInt64("seed")
		title, _ := cmd.Flags().GetString("name")
		force, _ := cmd.Flags().GetBool("force")

		d, err := deck.New(perSuit, suits)
		if err != nil {
			return err
		}

		if shuffle {
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			d.Shuffle(rand.New(rand.NewSource(seed)))
			logrus.WithField("seed", seed).Debug("deck shuffled")
		}

		path := filepath.Join(config.GetDeckLibraryPath(), name+deck.FileExt)
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("deck %s already exists at %s; use --force to overwrite", name, path)
		}

		if title == "" {
			title = name
		}
		section := deck.DeckSection{
			ID:           name,
			Name:         title,
			CardsPerSuit: perSuit,
			Suits:        suits,
		}
		if err := deck.Save(path, section, d); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Key deck %s (%d cards) written to %s\n", name, d.Len(), path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckSetDefaultCmd)
	deckCmd.AddCommand(deckInitCmd)
	deckCmd.AddCommand(deckNewCmd)

	deckNewCmd.Flags().Int("per-suit", deck.MaxCardsPerSuit, "Cards per suit (1-13)")
	deckNewCmd.Flags().Int("suits", deck.MaxSuits, "Number of suits (1-4)")
	deckNewCmd.Flags().Bool("shuffle", false, "Shuffle the deck before saving")
	deckNewCmd.Flags().Int64("seed", 0, "Seed for the shuffle (default: current time)")
	deckNewCmd.Flags().String("name", "", "Human readable deck name")
	deckNewCmd.Flags().BoolP("force", "f", false, "Overwrite an existing deck")
}
