package timer

import "testing"

func TestTick(t *testing.T) {
	tests := []struct {
		start byte
		ticks int
		want  byte
	}{
		{0, 0, 0},
		{0, 5, 0},
		{10, 3, 7},
		{10, 10, 0},
		{10, 11, 0},
		{255, 300, 0},
		{255, 1, 254},
	}

	for _, tt := range tests {
		d := New()
		d.SetDelay(tt.start)
		d.SetSound(tt.start)

		for i := 0; i < tt.ticks; i++ {
			d.Tick()
		}

		if d.Delay() != tt.want {
			t.Fatalf("delay %d after %d ticks: want %d, have %d", tt.start, tt.ticks, tt.want, d.Delay())
		}
		if d.Sound() != tt.want {
			t.Fatalf("sound %d after %d ticks: want %d, have %d", tt.start, tt.ticks, tt.want, d.Sound())
		}
	}
}

func TestIndependentCounters(t *testing.T) {
	d := New()
	d.SetDelay(2)
	d.SetSound(5)

	d.Tick()
	d.Tick()
	d.Tick()

	if d.Delay() != 0 || d.Sound() != 2 {
		t.Fatalf("want delay=0 sound=2; have delay=%d sound=%d", d.Delay(), d.Sound())
	}

	if !d.Beeping() {
		t.Fatalf("expected sound timer to be active")
	}
}

func TestStartupResets(t *testing.T) {
	d := New()
	d.SetDelay(9)
	d.SetSound(9)

	if err := d.Startup(); err != nil {
		t.Fatalf("Startup failure: %v", err)
	}

	if d.Delay() != 0 || d.Sound() != 0 || d.Beeping() {
		t.Fatalf("expected counters to be reset")
	}
}
