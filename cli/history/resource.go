package history

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"execview/cli/api"
)

// Fetcher loads one execution snapshot. *api.Client satisfies it.
type Fetcher interface {
	GetExecution(ctx context.Context, id api.ID) (*api.Execution, error)
}

type Phase int

const (
	Idle Phase = iota
	Pending
	Ready
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	default:
		return "idle"
	}
}

// Snapshot is an immutable view of the resource at one version.
// Record is non-nil only when Phase is Ready.
type Snapshot struct {
	Phase   Phase
	ID      api.ID
	Record  *api.Execution
	Err     error
	Version uint64
}

func (s Snapshot) Loaded() bool { return s.Phase == Ready && s.Record != nil }

// LoadedMsg carries the outcome of a fetch back onto the event loop.
type LoadedMsg struct {
	ID        api.ID
	Execution *api.Execution
	Err       error

	token uint64
}

// Resource holds the execution matching the most recently requested id.
// All methods must be called from the event loop goroutine; only the
// commands returned by SetRequestedID run elsewhere.
type Resource struct {
	fetcher Fetcher
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	requested api.ID
	token     uint64
	phase     Phase
	record    *api.Execution
	err       error
	version   uint64
}

func NewResource(fetcher Fetcher, logger *slog.Logger) *Resource {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Resource{
		fetcher: fetcher,
		logger:  logger.With("component", "execution-resource"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetRequestedID selects the execution to show. A zero id clears the
// record. A new id clears the record and returns the fetch command;
// repeating the current id returns nil.
func (r *Resource) SetRequestedID(id api.ID) tea.Cmd {
	if id.IsZero() {
		if r.requested.IsZero() && r.phase == Idle && r.record == nil && r.err == nil {
			return nil
		}
		r.token++
		r.requested = ""
		r.reset(Idle, nil)
		return nil
	}
	if id == r.requested {
		return nil
	}

	r.token++
	r.requested = id
	r.reset(Pending, nil)
	r.logger.Debug("fetching execution", "id", id, "token", r.token)
	return r.fetch(id, r.token)
}

// fetch captures everything it needs up front; the returned command runs
// off the event loop and must not touch r.
func (r *Resource) fetch(id api.ID, token uint64) tea.Cmd {
	ctx := r.ctx
	fetcher := r.fetcher
	return func() tea.Msg {
		exec, err := fetcher.GetExecution(ctx, id)
		return LoadedMsg{ID: id, Execution: exec, Err: err, token: token}
	}
}

// Update applies a LoadedMsg if it answers the current request. It
// reports whether the snapshot changed.
func (r *Resource) Update(msg tea.Msg) bool {
	loaded, ok := msg.(LoadedMsg)
	if !ok {
		return false
	}
	if loaded.token != r.token || loaded.ID != r.requested || r.phase != Pending {
		r.logger.Debug("discarding superseded execution", "id", loaded.ID, "requested", r.requested)
		return false
	}

	err := loaded.Err
	if err == nil && loaded.Execution == nil {
		err = fmt.Errorf("get execution %s: empty response", loaded.ID)
	}
	if err == nil && !loaded.Execution.ID.IsZero() && loaded.Execution.ID != loaded.ID {
		err = fmt.Errorf("get execution %s: response is for execution %s", loaded.ID, loaded.Execution.ID)
	}
	if err != nil {
		r.logger.Error("failed to load execution", "id", loaded.ID, "err", err)
		r.requested = ""
		r.reset(Idle, err)
		return true
	}

	record := *loaded.Execution
	if record.ID.IsZero() {
		record.ID = loaded.ID
	}
	if record.ExitCode != nil {
		code := *record.ExitCode
		record.ExitCode = &code
	}
	r.record = &record
	r.phase = Ready
	r.err = nil
	r.version++
	return true
}

func (r *Resource) reset(phase Phase, err error) {
	r.phase = phase
	r.record = nil
	r.err = err
	r.version++
}

func (r *Resource) Snapshot() Snapshot {
	s := Snapshot{
		Phase:   r.phase,
		ID:      r.requested,
		Err:     r.err,
		Version: r.version,
	}
	if r.record != nil {
		rec := *r.record
		s.Record = &rec
	}
	return s
}

func (r *Resource) Version() uint64 { return r.version }

// Close cancels fetches still in flight. Results that arrive afterwards
// are discarded.
func (r *Resource) Close() {
	r.cancel()
	r.token++
	r.requested = ""
	r.reset(Idle, nil)
}
