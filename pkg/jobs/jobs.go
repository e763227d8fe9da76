// Package jobs holds the maintenance jobs the server schedules.
package jobs

import (
	"context"
	"sort"
	"sync"
)

// Job is a job that can be registered with the scheduler.
type Job struct {
	ID     int
	Name   string
	Runner Runner
}

// Runner is a job runner. An empty spec disables the job.
type Runner interface {
	Spec(context.Context) string
	Func(context.Context) func() error
}

var (
	mtx  sync.Mutex
	jobs = make(map[string]*Job)
)

// Register registers a job.
func Register(name string, runner Runner) {
	mtx.Lock()
	defer mtx.Unlock()
	jobs[name] = &Job{Name: name, Runner: runner}
}

// List returns the registered jobs sorted by name.
func List() []*Job {
	mtx.Lock()
	defer mtx.Unlock()
	list := make([]*Job, 0, len(jobs))
	for _, j := range jobs {
		list = append(list, j)
	}
	sort.Slice(list, func(i, k int) bool {
		return list[i].Name < list[k].Name
	})
	return list
}
