package session

// Timed drives an Engine with a per-question countdown. Expiry advances the
// session as if the user had answered nothing.
type Timed struct {
	engine    *Engine
	countdown *Countdown
}

func NewTimed(engine *Engine, countdown *Countdown) *Timed {
	return &Timed{engine: engine, countdown: countdown}
}

// Engine exposes the wrapped session.
func (t *Timed) Engine() *Engine {
	return t.engine
}

// Events is the countdown's tick stream.
func (t *Timed) Events() <-chan Tick {
	return t.countdown.Events()
}

// Begin starts the countdown for the current question.
func (t *Timed) Begin() {
	if t.engine.State() == StateInProgress {
		t.countdown.Start()
	}
}

// Submit forwards r to the engine and restarts the countdown for the next
// question. A rejected response keeps the current countdown running.
func (t *Timed) Submit(r Response) error {
	if err := t.engine.Submit(r); err != nil {
		return err
	}
	t.restart()
	return nil
}

// HandleTick applies a countdown event. It returns true when the tick
// expired the current question and the session moved on. Stale ticks are
// ignored.
func (t *Timed) HandleTick(tick Tick) (bool, error) {
	if !t.countdown.Current(tick) || !tick.Expired {
		return false, nil
	}
	if err := t.engine.Skip(); err != nil {
		t.countdown.Stop()
		return false, err
	}
	t.restart()
	return true, nil
}

// Stop cancels the countdown; call it when the driver is torn down.
func (t *Timed) Stop() {
	t.countdown.Stop()
}

func (t *Timed) restart() {
	if t.engine.State() == StateInProgress {
		t.countdown.Start()
		return
	}
	t.countdown.Stop()
}
