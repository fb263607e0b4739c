package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reccak",
	Short: "Reccak hash and brute-force preimage search",
	Long: `reccak computes the 128-bit digest of the reduced Keccak-style hash and
searches fixed-length candidate strings for a preimage of a given digest.`,
	SilenceUsage: true,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.reccak/reccak.yaml)")
	SetupNodeFlags(rootCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Expand("~/.reccak")
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigName("reccak")
	}

	// Environment variable support, e.g. WORKERS=8 or STATSD_ADDRESS=localhost:8125
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// SetupNodeFlags registers every flag LoadConfig reads. They are persistent so
// that each subcommand accepts them.
func SetupNodeFlags(cmd *cobra.Command) {
	// Search
	cmd.PersistentFlags().Int("workers", 0,
		"Number of worker goroutines in the search pool. When unset, one per CPU.")
	cmd.PersistentFlags().String("charset", "",
		"Symbols that candidates are made of. When unset, the 81-symbol default "+
			"(letters, digits and punctuation) is used.")
	cmd.PersistentFlags().String("driver", "pool",
		"How candidates are handed to workers: \"pool\" splits the space into one contiguous "+
			"chunk per worker, \"stream\" feeds them through a shared queue.")

	// Storage
	cmd.PersistentFlags().String("data-dir", "",
		"The location where found preimages are stored. "+
			"When unset, defaults to the system's configuration directory.")
	cmd.PersistentFlags().Bool("store-preimages", true,
		"Persist found preimages so that later searches for the same digest return immediately. "+
			"When false, preimages are only kept in memory for the lifetime of the process.")
	cmd.PersistentFlags().Int("preimage-cache-size", 1024,
		"Number of preimages kept in the in-memory cache in front of the database.")

	// Stats
	cmd.PersistentFlags().String("statsd-address", "",
		"host:port of a statsd agent to receive hash rate gauges. When unset, stats are only logged.")
	cmd.PersistentFlags().Uint64("stats-interval-seconds", 5,
		"How often the hash rate is reported.")
	cmd.PersistentFlags().Bool("datadog-profiler", false, "Enable the DataDog profiler for performance testing.")

	// Logging
	cmd.PersistentFlags().String("log-dir", "", "The directory for logs")
	cmd.PersistentFlags().Uint64("glog-v", 0, "The log level. 0 = INFO, 1 = DEBUG, 2 = TRACE. Defaults to zero")
	cmd.PersistentFlags().String("glog-vmodule", "", "The syntax of the argument is a comma-separated list of pattern=N, where pattern is a literal file name (minus the \".go\" suffix) or \"glob\" pattern and N is a V level. For instance, -vmodule=gopher*=3 sets the V level to 3 in all Go files whose names begin \"gopher\".")

	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		viper.BindPFlag(flag.Name, flag)
	})
}
