package ink

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTimeoutReached is returned when replacing a one-off task whose timeout
// has already fired. Callers install a fresh task instead.
var ErrTimeoutReached = errors.New("ink: one-off task timeout already reached")

// ErrTaskQuit is returned when operating on a task that was quit.
var ErrTaskQuit = errors.New("ink: task quit")

// EngineTask is a message posted by background work and applied by the engine
// on its own goroutine.
type EngineTask interface {
	engineTask()
}

// ZoomTask commits a permanent zoom after the temporary zoom settled.
type ZoomTask struct {
	Zoom float64
}

// RenderToken identifies the request a rendering result originates from.
// Results whose token is no longer current are stale and dropped.
type RenderToken struct {
	Viewport   Aabb
	ImageScale float64
	// Revision is the stroke revision the images were rendered from.
	Revision uint64
}

// UpdateStrokeWithImagesTask carries freshly rendered images for one stroke.
type UpdateStrokeWithImagesTask struct {
	Key    StrokeKey
	Images []*Image
	Token  RenderToken
}

// BlinkTypewriterCursorTask toggles the typewriter cursor visibility.
type BlinkTypewriterCursorTask struct{}

// QuitTask stops the engine task loop.
type QuitTask struct{}

func (ZoomTask) engineTask()                   {}
func (UpdateStrokeWithImagesTask) engineTask() {}
func (BlinkTypewriterCursorTask) engineTask()  {}
func (QuitTask) engineTask()                   {}

// TaskChannel is an unbounded multi-producer, single-consumer queue of
// engine tasks. Sending never blocks, so timers and render workers can post
// results regardless of how busy the engine goroutine is.
type TaskChannel struct {
	mu     sync.Mutex
	queue  []EngineTask
	notify chan struct{}
	closed bool
}

// NewTaskChannel creates an empty task channel.
func NewTaskChannel() *TaskChannel {
	return &TaskChannel{notify: make(chan struct{}, 1)}
}

// Sender returns the sending half of the channel.
func (c *TaskChannel) Sender() TaskSender {
	return TaskSender{ch: c}
}

func (c *TaskChannel) push(task EngineTask) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.queue = append(c.queue, task)
	c.mu.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
	return true
}

// TryRecv pops the oldest task without blocking.
func (c *TaskChannel) TryRecv() (EngineTask, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return nil, false
	}
	task := c.queue[0]
	c.queue[0] = nil
	c.queue = c.queue[1:]
	return task, true
}

// Recv blocks until a task is available, the context is done or the channel
// is closed and drained.
func (c *TaskChannel) Recv(ctx context.Context) (EngineTask, error) {
	for {
		if task, ok := c.TryRecv(); ok {
			return task, nil
		}
		c.mu.Lock()
		closed := c.closed
		c.mu.Unlock()
		if closed {
			return nil, ErrTaskQuit
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.notify:
		}
	}
}

// Len returns the number of queued tasks.
func (c *TaskChannel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Close stops accepting tasks. Queued tasks can still be received.
func (c *TaskChannel) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// TaskSender is the cloneable sending half of a TaskChannel.
// The zero value discards every task.
type TaskSender struct {
	ch *TaskChannel
}

// Send posts a task. It never blocks.
func (s TaskSender) Send(task EngineTask) {
	if s.ch == nil {
		return
	}
	if !s.ch.push(task) {
		Logger().Debug("task dropped on closed channel", "task", taskName(task))
	}
}

func taskName(task EngineTask) string {
	switch task.(type) {
	case ZoomTask:
		return "zoom"
	case UpdateStrokeWithImagesTask:
		return "update-stroke-images"
	case BlinkTypewriterCursorTask:
		return "blink-cursor"
	case QuitTask:
		return "quit"
	default:
		return "unknown"
	}
}

// OneOffTask runs a function once after a timeout. Until the timeout fires,
// the function can be replaced, which also restarts the timeout.
type OneOffTask struct {
	mu      sync.Mutex
	fn      func()
	timeout time.Duration
	timer   *time.Timer
	gen     uint64
	fired   bool
	quit    bool
}

// NewOneOffTask schedules fn to run once after timeout.
func NewOneOffTask(fn func(), timeout time.Duration) *OneOffTask {
	t := &OneOffTask{fn: fn, timeout: timeout}
	t.mu.Lock()
	t.schedule()
	t.mu.Unlock()
	return t
}

// schedule must be called with t.mu held.
func (t *OneOffTask) schedule() {
	t.gen++
	gen := t.gen
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.timeout, func() { t.fire(gen) })
}

func (t *OneOffTask) fire(gen uint64) {
	t.mu.Lock()
	// A timer that was superseded by Replace may still run; its generation
	// no longer matches.
	if t.fired || t.quit || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.fired = true
	fn := t.fn
	t.mu.Unlock()

	fn()
}

// Replace swaps the pending function and restarts the timeout. It returns
// ErrTimeoutReached if the task already ran and ErrTaskQuit if it was quit.
func (t *OneOffTask) Replace(fn func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.quit {
		return ErrTaskQuit
	}
	if t.fired {
		return ErrTimeoutReached
	}
	t.fn = fn
	t.schedule()
	return nil
}

// TimeoutReached reports whether the function already ran.
func (t *OneOffTask) TimeoutReached() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

// Quit cancels the task if it has not fired yet.
func (t *OneOffTask) Quit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.quit = true
	if t.timer != nil {
		t.timer.Stop()
	}
}

// PeriodicTask runs a function at a fixed interval until quit.
type PeriodicTask struct {
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// NewPeriodicTask starts calling fn every interval on its own goroutine.
func NewPeriodicTask(fn func(), interval time.Duration) *PeriodicTask {
	t := &PeriodicTask{done: make(chan struct{})}
	ticker := time.NewTicker(interval)
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return t
}

// Quit stops the task and waits for the goroutine to exit.
// Quit is safe to call multiple times.
func (t *PeriodicTask) Quit() {
	t.once.Do(func() { close(t.done) })
	t.wg.Wait()
}
