package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/deso-protocol/reccak/lib"
	"github.com/golang/glog"
	"github.com/spf13/viper"
)

// Search drivers selectable with --driver.
const (
	// DriverPool splits the search space across the long-lived worker pool.
	DriverPool = "pool"
	// DriverStream feeds candidates through a shared queue to short-lived goroutines.
	DriverStream = "stream"
)

type Config struct {
	// Search
	Workers int
	Charset string
	Driver  string

	// Storage
	DataDirectory     string
	StorePreimages    bool
	PreimageCacheSize int

	// Stats
	StatsdAddress        string
	StatsIntervalSeconds uint64
	DatadogProfiler      bool

	// Logging
	LogDirectory string
	GlogV        uint64
	GlogVmodule  string
}

func LoadConfig() *Config {
	config := Config{}

	// Search
	config.Workers = viper.GetInt("workers")
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	config.Charset = viper.GetString("charset")
	if config.Charset == "" {
		config.Charset = lib.DefaultCharset
	}
	config.Driver = viper.GetString("driver")
	if config.Driver != DriverStream {
		config.Driver = DriverPool
	}

	// Storage
	dataDir := viper.GetString("data-dir")
	if dataDir == "" {
		dataDir = lib.GetDataDir()
	}
	config.DataDirectory = dataDir
	if err := os.MkdirAll(config.DataDirectory, os.ModePerm); err != nil {
		glog.Fatalf("Could not create data directories (%s): %v", config.DataDirectory, err)
	}
	config.StorePreimages = viper.GetBool("store-preimages")
	config.PreimageCacheSize = viper.GetInt("preimage-cache-size")
	if config.PreimageCacheSize <= 0 {
		config.PreimageCacheSize = lib.DefaultPreimageCacheSize
	}

	// Stats
	config.StatsdAddress = viper.GetString("statsd-address")
	config.StatsIntervalSeconds = viper.GetUint64("stats-interval-seconds")
	if config.StatsIntervalSeconds == 0 {
		config.StatsIntervalSeconds = lib.DefaultStatsIntervalSeconds
	}
	config.DatadogProfiler = viper.GetBool("datadog-profiler")

	// Logging
	config.LogDirectory = viper.GetString("log-dir")
	if config.LogDirectory == "" {
		config.LogDirectory = config.DataDirectory
	}
	config.GlogV = viper.GetUint64("glog-v")
	config.GlogVmodule = viper.GetString("glog-vmodule")

	return &config
}

func (config *Config) Print() {
	glog.Infof("Logging to directory %s", config.LogDirectory)
	glog.Infof("Data Directory: %s", config.DataDirectory)
	glog.Infof("Workers: %d", config.Workers)
	glog.Infof("Charset: %q (%d symbols)", config.Charset, len(config.Charset))
	glog.Infof("Driver: %s", config.Driver)

	if config.StorePreimages {
		glog.Infof("Preimage store: ON (cache size %d)", config.PreimageCacheSize)
	} else {
		glog.V(0).Info(lib.CLog(lib.Red, "Preimage store: OFF - found preimages "+
			"are forgotten when the process exits."))
	}

	if config.StatsdAddress != "" {
		glog.Infof("Statsd: %s every %ds", config.StatsdAddress, config.StatsIntervalSeconds)
	}

	if config.DatadogProfiler {
		glog.Infof("DataDog profiler: ON")
	}
}

// GenerateTestConfig creates a config that keeps all state in a temporary
// directory and stores preimages in memory only.
func GenerateTestConfig(t *testing.T, workers int) Config {
	config := Config{}

	config.Workers = workers
	config.Charset = lib.DefaultCharset
	config.Driver = DriverPool
	config.DataDirectory = t.TempDir()
	config.StorePreimages = false
	config.PreimageCacheSize = 16
	config.StatsIntervalSeconds = 60
	config.LogDirectory = filepath.Join(config.DataDirectory, "logs")
	if err := os.MkdirAll(config.LogDirectory, os.ModePerm); err != nil {
		t.Fatalf("Could not create log directory (%s): %v", config.LogDirectory, err)
	}
	config.GlogV = 0
	config.GlogVmodule = "*reverse_hash_worker*=0,*reverse_hash_pool*=0,*preimage_store*=0"

	return config
}
