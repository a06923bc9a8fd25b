package cmd

import (
	"fmt"
	"image/color" // This is the standard library color package
	"io"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/arcanaland/pontifex/internal/card"
	"github.com/arcanaland/pontifex/internal/deck"
	"github.com/arcanaland/pontifex/internal/keystream"

	colorize "github.com/fatih/color" // Rename this import to avoid the conflict
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [deck]",
	Short: "Display the arrangement of a key deck",
	Long: `Show prints the cards of a key deck from top to bottom.

You can specify a deck using the --deck flag or as the argument, which will
look for the deck in your deck library (XDG_DATA_HOME/pontifex/decks) or as a
relative path. If no deck is specified, the default deck from your config will
be used.

Examples:
  pontifex show
  pontifex show field --heat
  pontifex show --deck ./key.toml --after 10`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			if err := cmd.Flags().Set("deck", args[0]); err != nil {
				return err
			}
		}

		s, err := loadSession(cmd)
		if err != nil {
			return err
		}

		d := s.key.Deck
		after, _ := cmd.Flags().GetInt("after")
		if after > 0 {
			g := keystream.New(d, s.options()...)
			if _, err := g.Stream(after); err != nil {
				return fmt.Errorf("error stepping deck: %w", err)
			}
			d = g.Deck()
		}

		heat, _ := cmd.Flags().GetBool("heat")
		displayDeck(cmd.OutOrStdout(), s.key, d, after, heat)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	addSessionFlags(showCmd)
	showCmd.Flags().Int("after", 0, "Show the working deck after generating this many keystream values")
	showCmd.Flags().Bool("heat", false, "Color each card by its value")
}

// cellWidth is the printed width of one card code plus spacing
const cellWidth = 5

// displayDeck prints the header lines and the cards in rows sized to the
// terminal
func displayDeck(w io.Writer, k *deck.KeyDeck, d *deck.Deck, after int, heat bool) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80 // Default if we can't get terminal width
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  "+colorize.CyanString("Deck:  ")+colorize.HiWhiteString("%s", k.Name))
	fmt.Fprintln(w, "  "+colorize.CyanString("ID:    ")+colorize.HiWhiteString("%s", k.ID))
	fmt.Fprintln(w, "  "+colorize.CyanString("Cards: ")+colorize.HiWhiteString("%d", d.Len()))
	if after > 0 {
		fmt.Fprintln(w, "  "+colorize.CyanString("After: ")+colorize.HiWhiteString("%d keystream values", after))
	}
	if d.Len() > 0 {
		fmt.Fprintln(w, "  "+colorize.CyanString("Top:   ")+colorize.HiWhiteString("%s", d.Card(d.Head()).Name()))
		fmt.Fprintln(w, "  "+colorize.CyanString("Bottom:")+" "+colorize.HiWhiteString("%s", d.Card(d.Tail()).Name()))
	}
	fmt.Fprintln(w)

	perRow := (width - 2) / cellWidth
	if perRow < 1 {
		perRow = 1
	}

	cells := renderCells(d, heat)
	for i := 0; i < len(cells); i += perRow {
		end := min(i+perRow, len(cells))
		fmt.Fprintln(w, "  "+strings.Join(cells[i:end], ""))
	}
	fmt.Fprintln(w)
}

// renderCells returns one padded, colored cell per card from top to bottom
func renderCells(d *deck.Deck, heat bool) []string {
	cards := d.Cards()
	cells := make([]string, len(cards))
	for i, c := range cards {
		code := c.String()
		var cell string
		if heat {
			fg, bg := heatColors(c.Value(len(cards)), len(cards))
			cell = ansiColorString(code, fg, bg)
		} else {
			cell = suitColor(c).Sprint(code)
		}
		// pad on the visible width, escape codes take no columns
		cells[i] = cell + strings.Repeat(" ", cellWidth-len(stripAnsi(cell)))
	}
	return cells
}

// suitColor picks the print color of a card
func suitColor(c card.Card) *colorize.Color {
	switch {
	case c.IsJoker():
		return colorize.New(colorize.FgHiMagenta, colorize.Bold)
	case c.Suit.Red():
		return colorize.New(colorize.FgHiRed)
	default:
		return colorize.New(colorize.FgHiWhite)
	}
}

// heatColors maps a card value onto a blue to red gradient, with a dark or
// light foreground for contrast
func heatColors(value, total int) (fg, bg color.Color) {
	cold, _ := colorful.Hex("#2c7bb6")
	hot, _ := colorful.Hex("#d7191c")

	t := 0.0
	if total > 1 {
		t = float64(value) / float64(total-1)
	}
	c := cold.BlendHcl(hot, t).Clamped()

	_, _, l := c.Hcl()
	if l > 0.6 {
		return colorfulToColor(colorful.Color{}), colorfulToColor(c)
	}
	return colorfulToColor(colorful.Color{R: 1, G: 1, B: 1}), colorfulToColor(c)
}

// colorfulToColor converts a colorful.Color to a standard color.Color
func colorfulToColor(c colorful.Color) color.Color {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ansiColorString formats text with 24-bit ANSI color codes
func ansiColorString(text string, fg, bg color.Color) string {
	r1, g1, b1, _ := fg.RGBA()
	r2, g2, b2, _ := bg.RGBA()

	// Convert from uint32 to uint8 (RGBA() returns values in range 0-65535)
	r1, g1, b1 = r1>>8, g1>>8, b1>>8
	r2, g2, b2 = r2>>8, g2>>8, b2>>8

	if colorize.NoColor {
		return text
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%s\x1b[0m",
		r1, g1, b1, r2, g2, b2, text)
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
