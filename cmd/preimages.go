package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var preimagesCmd = &cobra.Command{
	Use:   "preimages",
	Short: "List the preimages found so far",
	Args:  cobra.NoArgs,
	RunE:  Preimages,
}

func init() {
	rootCmd.AddCommand(preimagesCmd)
}

func Preimages(cmd *cobra.Command, args []string) error {
	config := LoadConfig()
	node := NewNode(config)
	if err := node.Start(); err != nil {
		return err
	}
	defer node.Stop()

	entries, err := node.PreimageStore.Entries()
	if err != nil {
		return err
	}
	for _, entry := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%v %d %s\n", entry.Key.Digest, entry.Key.CandidateSize, entry.Preimage)
	}
	return nil
}
