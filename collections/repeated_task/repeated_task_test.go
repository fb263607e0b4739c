package repeated_task

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRepeatedTask(t *testing.T) {
	require := require.New(t)

	// Test that the task is run repeatedly
	var repeatCounter atomic.Int64

	task := func(exitChan <-chan struct{}) bool {
		repeatCounter.Add(1)
		time.Sleep(2 * time.Millisecond)
		return false
	}

	repeatedTask := NewRepeatedTask(task, 10*time.Millisecond)
	repeatedTask.Start()
	totalWait := 0
	for {
		if totalWait > 1000 {
			t.Fatalf("Task is stuck")
		}
		if repeatCounter.Load() > 5 {
			break
		}
		time.Sleep(1 * time.Millisecond)
		totalWait++
	}
	require.False(repeatedTask.Stop())

	// Test that a task returning true ends the loop on its own.
	repeatCounter.Store(0)
	task = func(exitChan <-chan struct{}) bool {
		return repeatCounter.Add(1) > 5
	}
	repeatedTask = NewRepeatedTask(task, 10*time.Millisecond)
	repeatedTask.Start()
	time.Sleep(20 * time.Millisecond)
	require.Equal(int64(6), repeatCounter.Load())
	repeatedTask.Stop()

	// Test that the task is exited when Stop() is called
	callbackChan := make(chan struct{}, 10)
	task2 := func(exitChan <-chan struct{}) bool {
		<-exitChan
		callbackChan <- struct{}{}
		return true
	}

	repeatedTask2 := NewRepeatedTask(task2, 10*time.Millisecond)
	repeatedTask2.Start()
	repeatedTask2.Stop()

	select {
	case <-callbackChan:
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("Task did not exit after Stop() was called")
	}

	// Test that the task is killed if it fails to stop within the stop timeout.
	task3 := func(exitChan <-chan struct{}) bool {
		time.Sleep(100 * time.Millisecond)
		return true
	}
	repeatedTask3 := NewRepeatedTask(task3, 10*time.Millisecond)
	repeatedTask3.Start()
	killed := repeatedTask3.Stop()
	require.True(killed)
}
