package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/pontifex/internal/cipher"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode [text...]",
	Short: "Encode a message with a key deck",
	Long: `Encode strips everything but letters from the message, upper-cases it and
adds one keystream value to each letter. The text is read from the arguments,
or from standard input when none are given.

Examples:
  pontifex encode --deck field "Do not use PC"
  echo "meet at ten" | pontifex encode`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCipher(cmd, args, (*cipher.Cipher).Encode)
	},
}

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode [text...]",
	Short: "Decode a message with a key deck",
	Long: `Decode reverses encode with the same key deck. Spaces and other
non-letters in the input are ignored, so grouped output can be pasted back in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCipher(cmd, args, (*cipher.Cipher).Decode)
	},
}

// keystreamCmd represents the keystream command
var keystreamCmd = &cobra.Command{
	Use:   "keystream [count]",
	Short: "Print the first values of a key deck's keystream",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("count must be a non-negative integer, got %q", args[0])
		}

		s, err := loadSession(cmd)
		if err != nil {
			return err
		}

		values, err := cipher.New(s.key.Deck, s.options()...).Keystream(n)
		if err != nil {
			return fmt.Errorf("error generating keystream: %w", err)
		}

		out := make([]string, len(values))
		for i, v := range values {
			out[i] = strconv.Itoa(v)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))
		return nil
	},
}

func runCipher(cmd *cobra.Command, args []string, op func(*cipher.Cipher, string) (string, error)) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("error reading input: %w", err)
		}
		text = string(data)
	}

	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	out, err := op(cipher.New(s.key.Deck, s.options()...), text)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cipher.Group(out, s.group))
	return nil
}

func init() {
	for _, c := range []*cobra.Command{encodeCmd, decodeCmd, keystreamCmd} {
		addSessionFlags(c)
		RootCmd.AddCommand(c)
	}
	encodeCmd.Flags().Int("group", 5, "Letters per output group, 0 for none (default from config)")
	decodeCmd.Flags().Int("group", 5, "Letters per output group, 0 for none (default from config)")
}
