package cmd

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/davecgh/go-spew/spew"
	"github.com/deso-protocol/reccak/lib"
	"github.com/deso-protocol/reccak/reccak"
	"github.com/deso-protocol/reccak/storage"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
	"gopkg.in/DataDog/dd-trace-go.v1/profiler"
)

var (
	ErrAlreadyStarted = errors.New("node is already running")
	ErrNotRunning     = errors.New("node is not running")
)

type Node struct {
	// Components
	Pool          *lib.ReverseHashPool
	PreimageDB    storage.Database
	PreimageStore *lib.PreimageStore
	StatsManager  *lib.StatsManager

	Config       *Config
	statsdClient statsd.ClientInterface

	// isRunning is false when a NewNode is created, set to true on Start(), set to false
	// after Stop() is called.
	isRunning bool
	// runningMutex is write-held by Start() and Stop(), and read-held for the
	// whole of Reverse() so that Stop() waits for searches in flight.
	runningMutex sync.RWMutex
}

func NewNode(config *Config) *Node {
	result := Node{}
	result.Config = config

	return &result
}

// setupLogging forwards the logging config into glog's flags. glog reads them
// lazily, so this has to run before the first log line is written to a file.
func setupLogging(config *Config) {
	flag.Set("log_dir", config.LogDirectory)
	flag.Set("v", fmt.Sprintf("%d", config.GlogV))
	flag.Set("vmodule", config.GlogVmodule)
	flag.Set("alsologtostderr", "true")
	// Mark the flag set as parsed without touching os.Args, which belong to cobra.
	flag.CommandLine.Parse(nil)
	glog.CopyStandardLogTo("INFO")
}

// Start brings up the worker pool, the preimage store, and the stats reporter.
// When a step fails, everything started before it is torn down again.
func (node *Node) Start() (_err error) {
	setupLogging(node.Config)
	node.runningMutex.Lock()
	defer node.runningMutex.Unlock()

	if node.isRunning {
		return ErrAlreadyStarted
	}

	// Print config
	node.Config.Print()
	glog.V(2).Infof("Node.Start: Config: %s", spew.Sdump(node.Config))

	// teardown holds the undo of every step so far, run last-in first-out on
	// failure. That is the order Stop uses.
	var teardown []func()
	defer func() {
		if _err == nil {
			return
		}
		for ii := len(teardown) - 1; ii >= 0; ii-- {
			teardown[ii]()
		}
	}()

	// Setup Datadog span tracer and profiler
	if node.Config.DatadogProfiler {
		tracer.Start()
		teardown = append(teardown, tracer.Stop)
		err := profiler.Start(profiler.WithProfileTypes(profiler.CPUProfile, profiler.BlockProfile, profiler.MutexProfile, profiler.GoroutineProfile, profiler.HeapProfile))
		if err != nil {
			return errors.Wrapf(err, "Node.Start: Problem starting profiler")
		}
		teardown = append(teardown, profiler.Stop)
	}

	// Setup statsd
	node.statsdClient = &statsd.NoOpClient{}
	if node.Config.StatsdAddress != "" {
		statsdClient, err := statsd.New(node.Config.StatsdAddress)
		if err != nil {
			return errors.Wrapf(err, "Node.Start: Problem creating statsd client for %s", node.Config.StatsdAddress)
		}
		node.statsdClient = statsdClient
		teardown = append(teardown, func() { statsdClient.Close() })
	}

	// Setup the preimage store
	dbOpts := storage.InMemoryBadgerOptions()
	if node.Config.StorePreimages {
		dbOpts = storage.DefaultBadgerOptions(filepath.Join(node.Config.DataDirectory, lib.PreimageDirName))
	}
	preimageDB := storage.NewBadgerDatabase(dbOpts, false)
	if err := preimageDB.Setup(); err != nil {
		return errors.Wrapf(err, "Node.Start: Problem opening preimage database")
	}
	teardown = append(teardown, func() { preimageDB.Close() })
	preimageStore, err := lib.NewPreimageStore(preimageDB, node.Config.PreimageCacheSize)
	if err != nil {
		return errors.Wrapf(err, "Node.Start:")
	}

	// Setup the worker pool
	pool, err := lib.NewReverseHashPool(node.Config.Workers)
	if err != nil {
		return errors.Wrapf(err, "Node.Start:")
	}

	node.PreimageDB = preimageDB
	node.PreimageStore = preimageStore
	node.Pool = pool
	node.StatsManager = lib.NewStatsManager(node.Pool, node.statsdClient,
		time.Duration(node.Config.StatsIntervalSeconds)*time.Second)
	node.StatsManager.Start()

	node.isRunning = true
	glog.Info(lib.CLog(lib.Green, fmt.Sprintf("Node.Start: Ready with %d workers", node.Pool.NumWorkers())))
	return nil
}

func (node *Node) IsRunning() bool {
	node.runningMutex.RLock()
	defer node.runningMutex.RUnlock()
	return node.isRunning
}

// Stop waits for a search in progress to finish before tearing down the pool.
func (node *Node) Stop() {
	node.runningMutex.Lock()
	defer node.runningMutex.Unlock()

	if !node.isRunning {
		return
	}
	node.isRunning = false
	glog.Info(lib.CLog(lib.Yellow, "Node.Stop: Gracefully shutting down the node..."))

	node.StatsManager.Stop()
	glog.Info(lib.CLog(lib.Yellow, "Node.Stop: Closed the StatsManager"))

	node.Pool.Stop()
	glog.Info(lib.CLog(lib.Yellow, "Node.Stop: Closed the ReverseHashPool"))

	if err := node.PreimageDB.Close(); err != nil {
		glog.Errorf("Node.Stop: Problem closing preimage database: %v", err)
	} else {
		glog.Info(lib.CLog(lib.Yellow, "Node.Stop: Preimage database successfully closed."))
	}

	if err := node.statsdClient.Close(); err != nil {
		glog.Errorf("Node.Stop: Problem closing statsd client: %v", err)
	}

	if node.Config.DatadogProfiler {
		profiler.Stop()
		tracer.Stop()
	}
}

// Reverse finds a candidate of length size over the configured charset that
// hashes to digest. Preimages found before are served from the store.
// Reverse may be called concurrently with Stop; Stop then waits for it.
func (node *Node) Reverse(ctx context.Context, digest reccak.Digest, size int) (_preimage []byte, _err error) {
	node.runningMutex.RLock()
	defer node.runningMutex.RUnlock()
	if !node.isRunning {
		return nil, ErrNotRunning
	}

	span, ctx := tracer.StartSpanFromContext(ctx, "reccak.reverse",
		tracer.Tag("digest", digest.String()), tracer.Tag("size", size))
	defer func() {
		span.Finish(tracer.WithError(_err))
	}()

	alphabet := []byte(node.Config.Charset)
	preimage, found, err := node.PreimageStore.Get(digest, alphabet, size)
	if err != nil {
		return nil, errors.Wrapf(err, "Node.Reverse:")
	}
	if found {
		glog.V(1).Infof("Node.Reverse: Preimage of %v served from store", digest)
		return preimage, nil
	}

	if node.Config.Driver == DriverStream {
		preimage, err = lib.FindAny(ctx, node.Pool.NumWorkers(), alphabet, size, digest, node.Pool.HashCounter())
	} else {
		preimage, err = node.Pool.ReverseHash(ctx, alphabet, size, digest)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Node.Reverse:")
	}
	glog.Info(lib.CLog(lib.Green, fmt.Sprintf("Node.Reverse: Found preimage %q for %v", preimage, digest)))

	if err := node.PreimageStore.Put(digest, alphabet, preimage); err != nil {
		// The search result stands on its own; a failed write only costs a re-search later.
		glog.Errorf("Node.Reverse: Problem storing preimage: %v", err)
	}
	return preimage, nil
}
