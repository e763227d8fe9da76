package syncclient

import (
	"context"
	"sync"

	"github.com/taskflow-dev/taskflow/pkg/proto"
)

// Notification messages shown after a move.
const (
	MsgMoved      = "Task moved"
	MsgMoveFailed = "Failed to move task"
)

// Level is the kind of a notification.
type Level int

const (
	Success Level = iota
	Failure
)

// String implements fmt.Stringer.
func (l Level) String() string {
	if l == Success {
		return "success"
	}
	return "error"
}

// Notifier tells the user about the outcome of a move.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(level Level, message string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(level Level, message string) {
	f(level, message)
}

// API is the part of the server API a board needs.
type API interface {
	ListTasks(ctx context.Context, teamID string) ([]proto.Task, error)
	UpdateTask(ctx context.Context, id string, patch proto.TaskPatch) (proto.Task, error)
}

// State is a step of a card drag.
type State int

const (
	Idle State = iota
	Dragging
	DroppedValid
	DroppedInvalid
	Confirming
	Reverting
)

var stateNames = [...]string{"idle", "dragging", "dropped-valid", "dropped-invalid", "confirming", "reverting"}

// String implements fmt.Stringer.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// ParseDropTarget maps a droppable id to the status column it names.
func ParseDropTarget(id string) (proto.Status, bool) {
	s := proto.Status(id)
	return s, s.Valid()
}

// ApplyMove returns a copy of tasks with the status of task id replaced.
func ApplyMove(tasks []proto.Task, id string, status proto.Status) []proto.Task {
	out := make([]proto.Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].ID == id {
			out[i].Status = status
		}
	}
	return out
}

// Columns partitions tasks by status, keeping their order.
func Columns(tasks []proto.Task) map[proto.Status][]proto.Task {
	cols := make(map[proto.Status][]proto.Task, len(proto.Statuses))
	for _, s := range proto.Statuses {
		cols[s] = []proto.Task{}
	}
	for _, t := range tasks {
		cols[t.Status] = append(cols[t.Status], t)
	}
	return cols
}

// Board is a Kanban view over one task list. The cached list is written only
// by refreshes and by drops.
type Board struct {
	api      API
	notifier Notifier
	cache    *QueryCache[[]proto.Task]
	key      string

	mu      sync.Mutex
	fetched []proto.Task
}

// NewBoard returns a board over the tasks of teamID, or the personal tasks
// when teamID is empty.
func NewBoard(api API, notifier Notifier, cache *QueryCache[[]proto.Task], teamID string) *Board {
	if cache == nil {
		cache = NewQueryCache[[]proto.Task]()
	}
	b := &Board{
		api:      api,
		notifier: notifier,
		cache:    cache,
		key:      TasksKey(teamID),
	}
	cache.Register(b.key, func(ctx context.Context) ([]proto.Task, error) {
		tasks, err := api.ListTasks(ctx, teamID)
		if err != nil {
			return nil, err
		}
		b.mu.Lock()
		b.fetched = append([]proto.Task(nil), tasks...)
		b.mu.Unlock()
		return tasks, nil
	})
	return b
}

// TasksKey is the cache key of a task list.
func TasksKey(teamID string) string {
	return "tasks:" + teamID
}

// Refresh loads the task list from the server.
func (b *Board) Refresh(ctx context.Context) error {
	_, err := b.cache.Fetch(ctx, b.key)
	return err
}

// Tasks returns the cached task list.
func (b *Board) Tasks() []proto.Task {
	tasks, _ := b.cache.Get(b.key)
	return tasks
}

// Columns returns the cached list partitioned by status.
func (b *Board) Columns() map[proto.Status][]proto.Task {
	return Columns(b.Tasks())
}

// Drag starts dragging a card.
func (b *Board) Drag(taskID string) *Drag {
	return &Drag{board: b, taskID: taskID, states: []State{Idle, Dragging}}
}

// Drag is one drag of a card, from pick-up to settled.
type Drag struct {
	board  *Board
	taskID string
	states []State
}

// States returns the states the drag went through.
func (d *Drag) States() []State {
	return append([]State(nil), d.states...)
}

// State returns the current state.
func (d *Drag) State() State {
	return d.states[len(d.states)-1]
}

func (d *Drag) enter(s State) {
	d.states = append(d.states, s)
}

// Drop releases the card over target. Unknown targets change nothing and
// send nothing. Otherwise the move shows at once and is confirmed with the
// server; on failure the list reverts to the last one fetched.
func (d *Drag) Drop(ctx context.Context, target string) error {
	b := d.board
	status, ok := ParseDropTarget(target)
	if !ok {
		d.enter(DroppedInvalid)
		d.enter(Idle)
		return nil
	}

	d.enter(DroppedValid)
	b.cache.Update(b.key, func(tasks []proto.Task) []proto.Task {
		return ApplyMove(tasks, d.taskID, status)
	})

	d.enter(Confirming)
	_, err := b.api.UpdateTask(ctx, d.taskID, proto.TaskPatch{Status: proto.Some(status)})
	if err != nil {
		d.enter(Reverting)
		b.mu.Lock()
		fetched := append([]proto.Task(nil), b.fetched...)
		b.mu.Unlock()
		b.cache.Set(b.key, fetched)
		b.notify(Failure, MsgMoveFailed)
		d.enter(Idle)
		return err
	}

	b.notify(Success, MsgMoved)
	d.enter(Idle)
	return nil
}

func (b *Board) notify(level Level, msg string) {
	if b.notifier != nil {
		b.notifier.Notify(level, msg)
	}
}
