package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"neuronwatch"
	"neuronwatch/internal/clock"
	"neuronwatch/internal/logger"
	"neuronwatch/internal/normalize"
	"neuronwatch/internal/repository"
	"neuronwatch/internal/stream"
)

// DefaultRetryInterval is the fixed delay between connection attempts.
// There is no backoff, no jitter and no attempt limit.
const DefaultRetryInterval = 60 * time.Second

// Options configures a Monitor. Addr and Dialer are required.
type Options struct {
	Addr          string
	Dialer        stream.Dialer
	Clock         clock.Clock
	Log           *logger.Logger
	LogCapacity   int
	RetryInterval time.Duration
	PulseWindow   time.Duration
	// OnEntry, if set, is called with every appended log entry, in order,
	// outside the monitor's lock.
	OnEntry func(neuronwatch.LogEntry)
}

// connHandle identifies one connection attempt. Every callback of that
// attempt compares its handle with Monitor.current and does nothing on mismatch.
type connHandle struct {
	id   string
	conn stream.Conn // nil until the handshake completes
}

// Monitor owns the stream connection and drives its lifecycle:
//
//	connecting -> open -> closed|polling -> (retry) -> connecting
//	connecting -> error -> (retry) -> connecting
//
// All callbacks (open, frame, close, dial error, retry) run under mu, so each
// is atomic with respect to the others.
type Monitor struct {
	mu sync.Mutex

	addr          string
	dialer        stream.Dialer
	clock         clock.Clock
	log           *logger.Logger
	retryInterval time.Duration
	onEntry       func(neuronwatch.LogEntry)

	repos      *repository.Repository
	reconciler *Reconciler
	pulses     *PulseTracker

	state     neuronwatch.ConnState
	lastErr   string
	shutdown  neuronwatch.ShutdownNotice
	current   *connHandle
	attempts  int
	malformed int

	retry    clock.Timer
	retrySeq uint64
	retryAt  time.Time

	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	stopped bool
}

func NewMonitor(opts Options) *Monitor {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real()
	}
	retry := opts.RetryInterval
	if retry <= 0 {
		retry = DefaultRetryInterval
	}
	repos := repository.NewRepository(opts.LogCapacity)
	ctx, cancel := context.WithCancel(context.Background())

	return &Monitor{
		addr:          opts.Addr,
		dialer:        opts.Dialer,
		clock:         clk,
		log:           logger.OrNop(opts.Log),
		retryInterval: retry,
		onEntry:       opts.OnEntry,
		repos:         repos,
		reconciler:    NewReconciler(repos.NeuronRepo, clk),
		pulses:        NewPulseTracker(clk, opts.PulseWindow),
		state:         neuronwatch.StateConnecting,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start begins connecting. It is safe to call again: a second call never
// disturbs a live or in-flight connection.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	if !m.started {
		m.started = true
		m.cancel()
		m.ctx, m.cancel = context.WithCancel(ctx)
	}
	m.connectLocked()
}

// Run starts the monitor and blocks until ctx is done, then tears it down.
func (m *Monitor) Run(ctx context.Context) {
	m.Start(ctx)
	<-ctx.Done()
	m.Close()
}

// Close cancels any pending retry, invalidates the current connection and
// closes it. The monitor cannot be restarted.
func (m *Monitor) Close() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	m.stopRetryLocked()
	old := m.current
	m.current = nil
	m.state = neuronwatch.StateClosed
	cancel := m.cancel
	m.mu.Unlock()

	cancel()
	if old != nil && old.conn != nil {
		_ = old.conn.Close()
	}
	m.log.Infow("monitor_stopped")
}

// connectLocked starts a dial only when connecting with no live handle,
// which keeps re-entrant triggers from opening duplicate connections.
func (m *Monitor) connectLocked() {
	if m.stopped || m.state != neuronwatch.StateConnecting || m.current != nil {
		return
	}
	h := &connHandle{id: uuid.NewString()}
	m.current = h
	m.attempts++
	m.log.Infow("stream_connecting", "conn_id", h.id, "addr", m.addr, "attempt", m.attempts)
	go m.dial(m.ctx, h)
}

func (m *Monitor) dial(ctx context.Context, h *connHandle) {
	conn, err := m.dialer.Dial(ctx, m.addr)
	if err != nil {
		m.handleDialError(h, err)
		return
	}
	if !m.handleOpen(h, conn) {
		_ = conn.Close()
		return
	}
	m.readLoop(h, conn)
}

// readLoop delivers frames one at a time, in transport order.
func (m *Monitor) readLoop(h *connHandle, conn stream.Conn) {
	for {
		data, err := conn.ReadFrame()
		if err != nil {
			m.handleClose(h, err)
			return
		}
		m.handleFrame(h, data)
	}
}

// handleOpen starts a fresh epoch: empty table and log, no error, no notice.
func (m *Monitor) handleOpen(h *connHandle, conn stream.Conn) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != h {
		return false
	}
	h.conn = conn
	m.state = neuronwatch.StateOpen
	m.lastErr = ""
	m.shutdown = neuronwatch.ShutdownNotice{}
	m.reconciler.Reset()
	m.repos.EventRepo.Reset()
	m.stopRetryLocked()
	m.log.Infow("stream_open", "conn_id", h.id, "addr", m.addr)
	return true
}

func (m *Monitor) handleDialError(h *connHandle, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != h {
		return
	}
	m.current = nil
	m.state = neuronwatch.StateError
	m.lastErr = err.Error()
	m.log.Warnw("stream_connect_failed", "conn_id", h.id, "err", err, "retry_in", m.retryInterval)
	m.scheduleRetryLocked()
}

func (m *Monitor) handleClose(h *connHandle, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != h {
		return
	}
	m.current = nil

	if m.state == neuronwatch.StatePolling {
		// the shutdown notice already moved us on and scheduled the retry
		m.log.Infow("stream_closed_after_shutdown_notice", "conn_id", h.id)
		m.scheduleRetryLocked()
		return
	}

	m.state = neuronwatch.StateClosed
	if !stream.IsNormalClosure(err) {
		m.lastErr = err.Error()
	}
	m.log.Warnw("stream_closed", "conn_id", h.id, "err", err, "retry_in", m.retryInterval)
	m.scheduleRetryLocked()
}

func (m *Monitor) handleFrame(h *connHandle, data []byte) {
	msg, err := normalize.ParseFrame(data)

	m.mu.Lock()
	if m.current != h {
		m.mu.Unlock()
		return
	}
	if err != nil {
		m.malformed++
		m.mu.Unlock()
		m.log.Warnw("stream_frame_dropped", "conn_id", h.id, "err", err, "bytes", len(data))
		return
	}
	entry := m.applyLocked(msg)
	onEntry := m.onEntry
	m.mu.Unlock()

	if onEntry != nil {
		onEntry(entry)
	}
}

// applyLocked logs msg exactly once, then dispatches it to the reconciler,
// the pulse tracker and the lifecycle.
func (m *Monitor) applyLocked(msg neuronwatch.Message) neuronwatch.LogEntry {
	now := m.clock.Now().UTC()
	entry := m.repos.EventRepo.Append(neuronwatch.LogEntry{
		ReceivedAt: now,
		Kind:       msg.Kind,
		EventType:  msg.Tag(),
		Payload:    msg,
	})

	switch msg.Kind {
	case neuronwatch.KindSnapshot:
		m.reconciler.ApplySnapshot(*msg.Snapshot)
		m.log.Debugw("snapshot_applied", "neurons", len(msg.Snapshot.Neurons))

	case neuronwatch.KindEvent:
		touched := m.reconciler.ApplyEvent(msg.Event)
		switch ev := msg.Event.(type) {
		case neuronwatch.NeuronHeartbeat:
			// pulse the rows under the key the views read; an unmatched
			// heartbeat still pulses under its raw id
			if len(touched) == 0 {
				touched = []string{ev.NeuronID}
			}
			for _, id := range touched {
				m.pulses.Beat(id)
			}
		case neuronwatch.CortexShutdownNotice:
			m.handleShutdownLocked(ev, now)
		}
	}
	return entry
}

// handleShutdownLocked records the notice. While open it moves straight to
// polling without closing the connection; the server closes it.
func (m *Monitor) handleShutdownLocked(ev neuronwatch.CortexShutdownNotice, now time.Time) {
	m.shutdown = neuronwatch.ShutdownNotice{Seen: true, Reason: ev.Reason, At: now}
	reason := ""
	if ev.Reason != nil {
		reason = *ev.Reason
	}
	m.log.Infow("cortex_shutdown_notice", "reason", reason, "state", m.state)

	if m.state != neuronwatch.StateOpen {
		return
	}
	m.state = neuronwatch.StatePolling
	m.scheduleRetryLocked()
}

// scheduleRetryLocked arms the retry timer unless one is already pending.
func (m *Monitor) scheduleRetryLocked() {
	if m.stopped || m.retry != nil {
		return
	}
	m.retrySeq++
	seq := m.retrySeq
	m.retryAt = m.clock.Now().Add(m.retryInterval)
	m.retry = m.clock.AfterFunc(m.retryInterval, func() { m.handleRetry(seq) })
}

func (m *Monitor) stopRetryLocked() {
	if m.retry == nil {
		return
	}
	m.retry.Stop()
	m.retry = nil
	m.retryAt = time.Time{}
	m.retrySeq++
}

func (m *Monitor) handleRetry(seq uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped || m.retry == nil || seq != m.retrySeq {
		return
	}
	m.retry = nil
	m.retryAt = time.Time{}

	if old := m.current; old != nil {
		// still attached to a connection the cortex announced it would drop
		m.current = nil
		if old.conn != nil {
			go func() { _ = old.conn.Close() }()
		}
		m.log.Infow("stream_superseded", "conn_id", old.id)
	}
	m.state = neuronwatch.StateConnecting
	m.connectLocked()
}
