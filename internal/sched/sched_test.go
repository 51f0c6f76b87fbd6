package sched

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)

func TestManualFiresInOrder(t *testing.T) {
	m := NewManual(epoch)
	var got []string
	m.AfterFunc(3*time.Second, func() { got = append(got, "c") })
	m.AfterFunc(1*time.Second, func() { got = append(got, "a") })
	m.AfterFunc(1*time.Second, func() { got = append(got, "b") })

	m.Advance(2 * time.Second)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("after 2s fired %v, want [a b]", got)
	}
	m.Advance(time.Second)
	if len(got) != 3 || got[2] != "c" {
		t.Fatalf("after 3s fired %v, want [a b c]", got)
	}
	if !m.Now().Equal(epoch.Add(3 * time.Second)) {
		t.Errorf("Now() = %v, want %v", m.Now(), epoch.Add(3*time.Second))
	}
}

func TestManualStop(t *testing.T) {
	m := NewManual(epoch)
	fired := false
	task := m.AfterFunc(time.Second, func() { fired = true })
	if !task.Stop() {
		t.Fatal("Stop() = false on pending task")
	}
	if task.Stop() {
		t.Error("second Stop() = true")
	}
	m.Advance(time.Minute)
	if fired {
		t.Error("stopped task fired")
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", m.Pending())
	}
}

func TestManualRescheduleWithinWindow(t *testing.T) {
	m := NewManual(epoch)
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		m.AfterFunc(time.Second, tick)
	}
	m.AfterFunc(time.Second, tick)

	m.Advance(10 * time.Second)
	if ticks != 10 {
		t.Errorf("ticks = %d, want 10", ticks)
	}
	if m.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", m.Pending())
	}
}

func TestStopAfterFireReturnsFalse(t *testing.T) {
	m := NewManual(epoch)
	task := m.AfterFunc(time.Second, func() {})
	m.Advance(time.Second)
	if task.Stop() {
		t.Error("Stop() after fire = true")
	}
}
