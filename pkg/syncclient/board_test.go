package syncclient

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

type fakeAPI struct {
	tasks   []proto.Task
	fail    error
	lists   int
	updates []proto.TaskPatch
}

func (f *fakeAPI) ListTasks(context.Context, string) ([]proto.Task, error) {
	f.lists++
	return append([]proto.Task(nil), f.tasks...), nil
}

func (f *fakeAPI) UpdateTask(_ context.Context, id string, patch proto.TaskPatch) (proto.Task, error) {
	f.updates = append(f.updates, patch)
	if f.fail != nil {
		return proto.Task{}, f.fail
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i] = patch.Apply(f.tasks[i])
			return f.tasks[i], nil
		}
	}
	return proto.Task{}, errors.New("not found")
}

type note struct {
	level Level
	msg   string
}

func newBoard(t *testing.T, api *fakeAPI) (*Board, *[]note) {
	t.Helper()
	var notes []note
	b := NewBoard(api, NotifierFunc(func(l Level, m string) {
		notes = append(notes, note{l, m})
	}), nil, "")
	if err := b.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	return b, &notes
}

func sampleTasks() []proto.Task {
	return []proto.Task{
		{ID: "a", Title: "A", Status: proto.StatusTodo},
		{ID: "b", Title: "B", Status: proto.StatusInProgress},
		{ID: "c", Title: "C", Status: proto.StatusTodo},
	}
}

func TestParseDropTarget(t *testing.T) {
	is := is.New(t)
	for _, s := range proto.Statuses {
		got, ok := ParseDropTarget(string(s))
		is.True(ok)
		is.Equal(got, s)
	}
	_, ok := ParseDropTarget("task-b")
	is.True(!ok)
	_, ok = ParseDropTarget("")
	is.True(!ok)
}

func TestApplyMoveIsPure(t *testing.T) {
	is := is.New(t)
	tasks := sampleTasks()
	moved := ApplyMove(tasks, "a", proto.StatusCompleted)
	is.Equal(moved[0].Status, proto.StatusCompleted)
	is.Equal(tasks[0].Status, proto.StatusTodo)

	cols := Columns(moved)
	is.Equal(len(cols[proto.StatusTodo]), 1)
	is.Equal(len(cols[proto.StatusInProgress]), 1)
	is.Equal(len(cols[proto.StatusCompleted]), 1)
}

func TestDropSuccess(t *testing.T) {
	is := is.New(t)
	api := &fakeAPI{tasks: sampleTasks()}
	b, notes := newBoard(t, api)

	d := b.Drag("a")
	is.NoErr(d.Drop(context.Background(), string(proto.StatusCompleted)))

	is.Equal(d.States(), []State{Idle, Dragging, DroppedValid, Confirming, Idle})
	is.Equal(len(api.updates), 1)
	is.Equal(api.updates[0].Status.Value, proto.StatusCompleted)
	is.Equal(b.Columns()[proto.StatusCompleted][0].ID, "a")
	is.Equal(*notes, []note{{Success, MsgMoved}})
	is.Equal(api.lists, 1)
}

func TestDropInvalidTarget(t *testing.T) {
	is := is.New(t)
	api := &fakeAPI{tasks: sampleTasks()}
	b, notes := newBoard(t, api)
	before := b.Tasks()

	d := b.Drag("a")
	is.NoErr(d.Drop(context.Background(), "c"))

	is.Equal(d.States(), []State{Idle, Dragging, DroppedInvalid, Idle})
	is.Equal(len(api.updates), 0)
	is.Equal(b.Tasks(), before)
	is.Equal(len(*notes), 0)
}

func TestDropFailureRevertsToFetchedList(t *testing.T) {
	is := is.New(t)
	api := &fakeAPI{tasks: sampleTasks()}
	b, notes := newBoard(t, api)

	// A first successful move is kept locally but is not part of the last
	// fetched list.
	is.NoErr(b.Drag("b").Drop(context.Background(), string(proto.StatusCompleted)))

	api.fail = errors.New("offline")
	var seen [][]proto.Task
	b.cache.Subscribe(b.key, func(tasks []proto.Task) { seen = append(seen, tasks) })

	d := b.Drag("a")
	err := d.Drop(context.Background(), string(proto.StatusInProgress))
	is.True(err != nil)
	is.Equal(d.States(), []State{Idle, Dragging, DroppedValid, Confirming, Reverting, Idle})

	// The optimistic value was shown, then replaced by the fetched list.
	is.Equal(len(seen), 2)
	is.Equal(seen[0][0].Status, proto.StatusInProgress)
	is.Equal(b.Tasks(), sampleTasks())
	is.Equal((*notes)[len(*notes)-1], note{Failure, MsgMoveFailed})
}
