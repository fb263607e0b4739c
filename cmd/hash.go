package cmd

import (
	"fmt"
	"io"

	"github.com/deso-protocol/reccak/reccak"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Print the digest of stdin",
	Long: `Reads all of stdin and prints its digest as 0x followed by eight
4-digit upper-case hex lanes. Note that a trailing newline is part of the input.`,
	Args: cobra.NoArgs,
	RunE: Hash,
}

func init() {
	rootCmd.AddCommand(hashCmd)
}

func Hash(cmd *cobra.Command, args []string) error {
	message, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return errors.Wrapf(err, "Hash: Problem reading input")
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), reccak.Hash(message).String())
	return err
}
