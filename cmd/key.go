package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arcanaland/pontifex/internal/config"
	"github.com/arcanaland/pontifex/internal/deck"
	"github.com/arcanaland/pontifex/internal/keystream"
)

// session is the key deck and settings shared by the cipher commands
type session struct {
	key   *deck.KeyDeck
	rules keystream.Rules
	group int
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("deck", "d", "", "Specify a deck from your deck library or a path to a key deck file")
	cmd.Flags().String("rules", "", "Joker move rules: classic or legacy (default from config)")
}

// loadSession resolves the key deck from --deck or the configured default,
// and the rules from --rules or the config.
func loadSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	deckName, _ := cmd.Flags().GetString("deck")
	if deckName == "" {
		deckName = cfg.DefaultDeck
	}
	if deckName == "" {
		return nil, fmt.Errorf("no deck given and no default deck set; use --deck or 'pontifex deck set-default'")
	}

	deckPath, err := config.GetDeckPath(deckName)
	if err != nil {
		return nil, err
	}

	key, err := deck.Load(deckPath)
	if err != nil {
		return nil, fmt.Errorf("error loading deck: %w", err)
	}

	rulesName := cfg.Rules
	if f := cmd.Flags().Lookup("rules"); f != nil && f.Changed {
		rulesName = f.Value.String()
	}
	rules, err := keystream.ParseRules(rulesName)
	if err != nil {
		return nil, err
	}

	group := cfg.GroupSize
	if f := cmd.Flags().Lookup("group"); f != nil && f.Changed {
		group, _ = cmd.Flags().GetInt("group")
	}

	logrus.WithFields(logrus.Fields{
		"deck":  key.ID,
		"path":  key.Path,
		"cards": key.Deck.Len(),
		"rules": rules,
	}).Debug("key deck loaded")

	return &session{key: key, rules: rules, group: group}, nil
}

func (s *session) options() []keystream.Option {
	return []keystream.Option{
		keystream.WithRules(s.rules),
		keystream.WithLogger(logrus.StandardLogger().WithField("deck", s.key.ID)),
	}
}
