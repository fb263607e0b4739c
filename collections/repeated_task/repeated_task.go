package repeated_task

import (
	"sync"
	"time"
)

type state int

const (
	stopped state = iota
	running
)

// RepeatedTask calls task in a loop on its own goroutine until the task
// returns true or Stop is called. The task receives a channel that is closed
// by Stop, so a task blocked on a timer can bail out early.
type RepeatedTask struct {
	state
	mtx        sync.Mutex
	startGroup sync.WaitGroup
	stopGroup  sync.WaitGroup

	exitChan     chan struct{}
	taskExitChan chan struct{}
	task         func(exitChan <-chan struct{}) bool
	stopTimeout  time.Duration
}

func NewRepeatedTask(task func(exitChan <-chan struct{}) (_done bool), stopTimeout time.Duration) *RepeatedTask {
	return &RepeatedTask{
		task:        task,
		stopTimeout: stopTimeout,
	}
}

func (rt *RepeatedTask) Start() {
	rt.mtx.Lock()
	defer rt.mtx.Unlock()

	if rt.state == running {
		return
	}
	exitChan := make(chan struct{})
	taskExitChan := make(chan struct{})
	rt.exitChan = exitChan
	rt.taskExitChan = taskExitChan

	rt.startGroup.Add(1)
	rt.stopGroup.Add(1)
	go func() {
		rt.startGroup.Done()
		defer rt.stopGroup.Done()
		for {
			select {
			case <-exitChan:
				return
			default:
				if rt.task(taskExitChan) {
					return
				}
			}
		}
	}()
	rt.startGroup.Wait()
	rt.state = running
}

// Stop signals the task and waits up to stopTimeout for it to return. It
// reports whether the task had to be abandoned.
func (rt *RepeatedTask) Stop() (_killed bool) {
	rt.mtx.Lock()
	defer rt.mtx.Unlock()

	if rt.state == stopped {
		return
	}
	close(rt.taskExitChan)
	close(rt.exitChan)

	stopChan := make(chan struct{})
	go func() {
		rt.stopGroup.Wait()
		close(stopChan)
	}()

	killed := false
	select {
	case <-stopChan:
	case <-time.After(rt.stopTimeout):
		killed = true
	}
	rt.state = stopped
	return killed
}
