package session

import (
	"reflect"
	"testing"
	"time"

	"personality-quiz/internal/domain"
)

func nextTick(t *testing.T, ch <-chan Tick) Tick {
	t.Helper()
	select {
	case tick := <-ch:
		return tick
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for countdown tick")
	}
	return Tick{}
}

func drain(t *testing.T, c *Countdown, gen uint64) []time.Duration {
	t.Helper()
	var remaining []time.Duration
	for {
		tick := nextTick(t, c.Events())
		if tick.Generation != gen {
			t.Fatalf("expected generation %d, got %d", gen, tick.Generation)
		}
		remaining = append(remaining, tick.Remaining)
		if tick.Expired {
			if !c.Current(tick) {
				t.Fatalf("expected expiry tick to be current")
			}
			return remaining
		}
	}
}

func TestCountdownTicksDownAndExpires(t *testing.T) {
	c := NewCountdown(30*time.Millisecond, 10*time.Millisecond)
	gen := c.Start()
	defer c.Stop()

	got := drain(t, c, gen)
	want := []time.Duration{20 * time.Millisecond, 10 * time.Millisecond, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected remaining %v, got %v", want, got)
	}
}

func TestCountdownExpiresAtLimitNotNextInterval(t *testing.T) {
	c := NewCountdown(25*time.Millisecond, 10*time.Millisecond)
	started := time.Now()
	gen := c.Start()
	defer c.Stop()

	got := drain(t, c, gen)
	elapsed := time.Since(started)
	want := []time.Duration{15 * time.Millisecond, 5 * time.Millisecond, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected remaining %v, got %v", want, got)
	}
	if elapsed < 25*time.Millisecond {
		t.Fatalf("expired early after %v", elapsed)
	}
}

func TestCountdownLimitBelowInterval(t *testing.T) {
	c := NewCountdown(5*time.Millisecond, time.Hour)
	gen := c.Start()
	defer c.Stop()

	got := drain(t, c, gen)
	if !reflect.DeepEqual(got, []time.Duration{0}) {
		t.Fatalf("expected a single expiry tick, got %v", got)
	}
}

func TestCountdownStopMakesTicksStale(t *testing.T) {
	c := NewCountdown(time.Hour, time.Hour)
	gen := c.Start()
	c.Stop()
	if c.Current(Tick{Generation: gen, Expired: true}) {
		t.Fatalf("expected tick stale after stop")
	}

	next := c.Start()
	defer c.Stop()
	if next == gen {
		t.Fatalf("expected a new generation")
	}
	if c.Current(Tick{Generation: gen}) || !c.Current(Tick{Generation: next}) {
		t.Fatalf("only the latest generation should be current")
	}
}

func TestTimedExpirySkipsQuestion(t *testing.T) {
	e := New()
	mustStart(t, e, sampleQuiz(), false, false)
	timed := NewTimed(e, NewCountdown(20*time.Millisecond, 10*time.Millisecond))
	timed.Begin()
	defer timed.Stop()

	for {
		tick := nextTick(t, timed.Events())
		advanced, err := timed.HandleTick(tick)
		if err != nil {
			t.Fatalf("handle tick: %v", err)
		}
		if advanced {
			break
		}
	}
	if e.Index() != 1 || len(e.ChosenAnswers()) != 0 || e.State() != StateInProgress {
		t.Fatalf("expected skip to question 2, index=%d chosen=%v state=%v", e.Index(), e.ChosenAnswers(), e.State())
	}
}

func TestTimedIgnoresStaleTicks(t *testing.T) {
	e := New()
	mustStart(t, e, sampleQuiz(), false, false)
	countdown := NewCountdown(time.Hour, time.Hour)
	timed := NewTimed(e, countdown)
	timed.Begin()
	defer timed.Stop()

	stale := Tick{Generation: countdown.Start(), Expired: true}
	mustSubmit(t, timed.Submit(SingleChoice{Index: 2}))

	advanced, err := timed.HandleTick(stale)
	if err != nil || advanced {
		t.Fatalf("expected stale tick ignored, advanced=%v err=%v", advanced, err)
	}
	if e.Index() != 1 {
		t.Fatalf("expected index 1, got %d", e.Index())
	}
}

func TestTimedSubmitErrorKeepsCountdown(t *testing.T) {
	e := New()
	mustStart(t, e, sampleQuiz(), false, false)
	countdown := NewCountdown(time.Hour, time.Hour)
	timed := NewTimed(e, countdown)
	gen := countdown.Start()
	defer timed.Stop()

	expectErr(t, timed.Submit(SingleChoice{Index: 9}), domain.ErrChoiceOutOfRange)
	if !countdown.Current(Tick{Generation: gen}) {
		t.Fatalf("expected countdown to keep running")
	}
}

func TestTimedStopsAfterCompletion(t *testing.T) {
	e := New()
	mustStart(t, e, sampleQuiz(), false, false)
	countdown := NewCountdown(time.Hour, time.Hour)
	timed := NewTimed(e, countdown)
	timed.Begin()

	mustSubmit(t, timed.Submit(SingleChoice{Index: 0}))
	mustSubmit(t, timed.Submit(MultipleChoice{}))
	gen := countdown.Start()
	mustSubmit(t, timed.Submit(RangedChoice{Position: 0.4}))

	if e.State() != StateCompleted {
		t.Fatalf("expected completed, got %v", e.State())
	}
	if countdown.Current(Tick{Generation: gen, Expired: true}) {
		t.Fatalf("expected countdown stopped after completion")
	}
}
