package dynamo

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type callLog struct {
	calls []string
	times []float64
}

func (l *callLog) driver() *Driver {
	d := New(
		func(dt float64) error {
			l.calls = append(l.calls, fmt.Sprintf("advance(%g)", dt))
			return nil
		},
		func(sc StepContext) error {
			l.calls = append(l.calls, fmt.Sprintf("collide(%d)", sc.Step))
			return nil
		},
		func(sc StepContext) error {
			l.calls = append(l.calls, fmt.Sprintf("render(%d)", sc.Step))
			l.times = append(l.times, sc.Time)
			return nil
		},
	)
	d.OnCleanup(func() { l.calls = append(l.calls, "cleanup") })
	return d
}

func TestDriverInterleaving(t *testing.T) {
	l := &callLog{}
	if err := l.driver().Run(context.Background(), Config{Steps: 3, Dt: 0.01}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := []string{
		"collide(0)", "advance(0.01)", "cleanup", "render(0)",
		"collide(1)", "advance(0.01)", "cleanup", "render(1)",
		"collide(2)", "advance(0.01)", "cleanup", "render(2)",
	}
	if len(l.calls) != len(want) {
		t.Fatalf("expected %d calls, got %d: %v", len(want), len(l.calls), l.calls)
	}
	for i := range want {
		if l.calls[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, l.calls[i], want[i])
		}
	}
}

func TestDriverTimes(t *testing.T) {
	l := &callLog{}
	if err := l.driver().Run(context.Background(), Config{Steps: 3, Dt: 0.01}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := []float64{0, 0.01, 0.02}
	for i, tm := range l.times {
		if tm != want[i] {
			t.Errorf("time %d = %v, want %v", i, tm, want[i])
		}
	}
}

func TestDriverTimeHasNoDrift(t *testing.T) {
	const dt = 0.1
	var steps []StepContext
	d := New(func(float64) error { return nil }, nil, func(sc StepContext) error {
		steps = append(steps, sc)
		return nil
	})

	if err := d.Run(context.Background(), Config{Steps: 1000, Dt: dt}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i, sc := range steps {
		if sc.Step != i {
			t.Fatalf("step %d reported index %d", i, sc.Step)
		}
		if sc.Time != float64(i)*dt {
			t.Fatalf("step %d time = %v, want %v", i, sc.Time, float64(i)*dt)
		}
	}
}

func TestDriverZeroSteps(t *testing.T) {
	called := false
	mark := func(StepContext) error { called = true; return nil }
	d := New(func(float64) error { called = true; return nil }, mark, mark)
	d.OnCleanup(func() { called = true })

	if err := d.Run(context.Background(), Config{Steps: 0, Dt: 0.01}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if called {
		t.Error("no callback should run for zero steps")
	}
}

func TestDriverInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"negative steps", Config{Steps: -1, Dt: 0.01}, ErrNegativeSteps},
		{"zero dt", Config{Steps: 1, Dt: 0}, ErrInvalidDt},
		{"negative dt", Config{Steps: 1, Dt: -0.01}, ErrInvalidDt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &callLog{}
			err := l.driver().Run(context.Background(), tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("config errors should match ErrInvalidConfig")
			}
			if len(l.calls) != 0 {
				t.Errorf("expected no calls, got %v", l.calls)
			}
		})
	}
}

func TestDriverNilAdvance(t *testing.T) {
	err := New(nil, nil, nil).Run(context.Background(), Config{Steps: 1, Dt: 0.01})
	if !errors.Is(err, ErrNoAdvance) {
		t.Errorf("expected ErrNoAdvance, got %v", err)
	}
}

func TestDriverAdvanceErrorStopsRun(t *testing.T) {
	boom := errors.New("world exploded")
	var rendered []int
	advances := 0

	d := New(
		func(float64) error {
			advances++
			if advances == 3 {
				return boom
			}
			return nil
		},
		nil,
		func(sc StepContext) error {
			rendered = append(rendered, sc.Step)
			return nil
		},
	)

	err := d.Run(context.Background(), Config{Steps: 10, Dt: 0.01})
	if err != boom {
		t.Fatalf("expected the advance error unchanged, got %v", err)
	}
	if advances != 3 {
		t.Errorf("expected 3 advances, got %d", advances)
	}
	if len(rendered) != 2 || rendered[1] != 1 {
		t.Errorf("expected renders for steps 0 and 1 only, got %v", rendered)
	}
}

func TestDriverCollideErrorSkipsAdvance(t *testing.T) {
	boom := errors.New("bad pair")
	advanced := false
	d := New(
		func(float64) error { advanced = true; return nil },
		func(StepContext) error { return boom },
		nil,
	)

	if err := d.Run(context.Background(), Config{Steps: 5, Dt: 0.01}); err != boom {
		t.Fatalf("expected collide error, got %v", err)
	}
	if advanced {
		t.Error("advance must not run after a collide failure")
	}
}

func TestDriverRenderErrorStopsRun(t *testing.T) {
	boom := errors.New("terminal gone")
	renders := 0
	d := New(func(float64) error { return nil }, nil, func(StepContext) error {
		renders++
		return boom
	})

	if err := d.Run(context.Background(), Config{Steps: 5, Dt: 0.01}); err != boom {
		t.Fatalf("expected render error, got %v", err)
	}
	if renders != 1 {
		t.Errorf("expected 1 render, got %d", renders)
	}
}

func TestDriverCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var steps []int
	d := New(func(float64) error { return nil }, nil, func(sc StepContext) error {
		steps = append(steps, sc.Step)
		if sc.Step == 4 {
			cancel()
		}
		return nil
	})

	err := d.Run(ctx, Config{Steps: 100, Dt: 0.01})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(steps) != 5 {
		t.Errorf("expected 5 steps before cancel, got %d", len(steps))
	}
}

func TestDriverObservers(t *testing.T) {
	var order []string
	d := New(func(float64) error { return nil }, nil, func(StepContext) error {
		order = append(order, "render")
		return nil
	})
	d.AddObserver(ObserverFunc(func(sc StepContext) {
		order = append(order, fmt.Sprintf("observe(%d)", sc.Step))
	}))

	if err := d.Run(context.Background(), Config{Steps: 2, Dt: 0.5}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := []string{"render", "observe(0)", "render", "observe(1)"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	collect := func() []StepContext {
		var out []StepContext
		err := Run(context.Background(), Config{Steps: 50, Dt: 0.01},
			func(float64) error { return nil },
			func(sc StepContext) error { out = append(out, sc); return nil },
			nil,
		)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return out
	}

	a, b := collect(), collect()
	if len(a) != 50 || len(a) != len(b) {
		t.Fatalf("expected 50 contexts each, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("context %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
