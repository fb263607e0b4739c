package lib

import (
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/deso-protocol/reccak/collections/repeated_task"
	"github.com/golang/glog"
)

// StatsManager periodically reports the pool's hashing throughput to statsd
// and to the log.
type StatsManager struct {
	pool         *ReverseHashPool
	statsdClient statsd.ClientInterface
	interval     time.Duration
	task         *repeated_task.RepeatedTask

	lastNumHashed uint64
	lastReport    time.Time
}

// NewStatsManager accepts a nil statsdClient, in which case reports only go to
// the log.
func NewStatsManager(pool *ReverseHashPool, statsdClient statsd.ClientInterface,
	interval time.Duration) *StatsManager {

	if statsdClient == nil {
		statsdClient = &statsd.NoOpClient{}
	}
	stam := &StatsManager{
		pool:         pool,
		statsdClient: statsdClient,
		interval:     interval,
	}
	stam.task = repeated_task.NewRepeatedTask(stam.waitAndReport, interval+time.Second)
	return stam
}

func (stam *StatsManager) Start() {
	stam.lastNumHashed = stam.pool.NumHashed()
	stam.lastReport = time.Now()
	stam.task.Start()
}

func (stam *StatsManager) Stop() {
	if stam.task.Stop() {
		glog.Errorf("StatsManager.Stop: Reporter did not stop within %v", stam.interval+time.Second)
	}
}

func (stam *StatsManager) GetStatsdClient() statsd.ClientInterface {
	return stam.statsdClient
}

func (stam *StatsManager) waitAndReport(exitChan <-chan struct{}) bool {
	select {
	case <-time.After(stam.interval):
		stam.report(time.Now())
		return false
	case <-exitChan:
		return true
	}
}

func (stam *StatsManager) report(now time.Time) {
	tags := []string{}

	numHashed := stam.pool.NumHashed()
	elapsed := now.Sub(stam.lastReport)
	delta := numHashed - stam.lastNumHashed

	if err := stam.statsdClient.Gauge("REVERSE.HASHES", float64(numHashed), tags, 1); err != nil {
		glog.V(1).Infof("StatsManager.report: Problem sending gauge: %v", err)
	}
	if elapsed > 0 {
		hashRate := float64(delta) / elapsed.Seconds()
		if err := stam.statsdClient.Gauge("REVERSE.HASHRATE", hashRate, tags, 1); err != nil {
			glog.V(1).Infof("StatsManager.report: Problem sending gauge: %v", err)
		}
	}
	if err := stam.statsdClient.Gauge("REVERSE.WORKERS", float64(stam.pool.NumWorkers()), tags, 1); err != nil {
		glog.V(1).Infof("StatsManager.report: Problem sending gauge: %v", err)
	}

	if delta > 0 {
		glog.Info(CLog(Cyan, "StatsManager: "+FormatHashRate(delta, elapsed)))
	}

	stam.lastNumHashed = numHashed
	stam.lastReport = now
}
