package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deso-protocol/reccak/lib"
	"github.com/deso-protocol/reccak/reccak"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var reverseCmd = &cobra.Command{
	Use:   "reverse",
	Short: "Search for a preimage of a digest",
	Long: `Searches every candidate of the given length over the configured charset
for one whose digest matches. Without --digest, the built-in table of known
digests is reversed one after the other.`,
	Args: cobra.NoArgs,
	RunE: Reverse,
}

var (
	reverseDigest string
	reverseLength int
)

func init() {
	reverseCmd.Flags().StringVar(&reverseDigest, "digest", "",
		"Digest to reverse, as printed by the hash command.")
	reverseCmd.Flags().IntVar(&reverseLength, "length", 0,
		"Length of the candidates to search. Required with --digest.")
	rootCmd.AddCommand(reverseCmd)
}

func Reverse(cmd *cobra.Command, args []string) error {
	targets, err := reverseTargets(reverseDigest, reverseLength)
	if err != nil {
		return err
	}

	// Parse the configuration (can use CLI flags, environment variables, or config file)
	config := LoadConfig()
	node := NewNode(config)
	if err := node.Start(); err != nil {
		return err
	}
	defer func() {
		node.Stop()
		glog.Info("Shutdown complete")
	}()

	// Ctrl-c abandons the search in progress.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	for _, target := range targets {
		timeStart := time.Now()
		preimage, err := node.Reverse(ctx, target.Digest, target.CandidateSize)
		elapsed := time.Since(timeStart)
		if errors.Is(err, lib.ErrPreimageNotFound) {
			fmt.Fprintf(out, "Digest: %v\nNo preimage of length %d\nElapsed: %v\n",
				target.Digest, target.CandidateSize, elapsed)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Digest: %v\nInput: %s\nElapsed: %v\n", target.Digest, preimage, elapsed)
	}
	return nil
}

func reverseTargets(digest string, length int) ([]lib.KnownDigest, error) {
	if digest == "" {
		return lib.KnownDigests, nil
	}
	if length <= 0 {
		return nil, errors.Errorf("reverse: --length must be positive, got %d", length)
	}
	parsed, err := reccak.ParseDigest(digest)
	if err != nil {
		return nil, errors.Wrapf(err, "reverse: Problem parsing --digest")
	}
	return []lib.KnownDigest{{Digest: parsed, CandidateSize: length}}, nil
}
