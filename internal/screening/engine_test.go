package screening

import (
	"testing"
	"time"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
)

// A tiny scale compresses the multi-minute pipeline into milliseconds.
const testScale = 0.001

func waitComplete(t *testing.T, e *Engine, id string) *Progress {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		p, err := e.Snapshot(id)
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		if p.Complete {
			return p
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("screening never completed")
	return nil
}

func TestEngineRunsToCompletion(t *testing.T) {
	e := NewEngine(testScale)
	defer e.Shutdown()

	if err := e.Start("SCR-1", "APP-1", 7); err != nil {
		t.Fatalf("Start: %v", err)
	}

	p := waitComplete(t, e, "SCR-1")

	if p.ApplicationID != "APP-1" {
		t.Errorf("ApplicationID = %q, want APP-1", p.ApplicationID)
	}
	if p.Overall != 100 {
		t.Errorf("Overall = %d, want 100", p.Overall)
	}
	if p.ETA != "complete" {
		t.Errorf("ETA = %q, want complete", p.ETA)
	}
	if len(p.Checks) != len(models.ScreeningChecks) {
		t.Fatalf("got %d checks, want %d", len(p.Checks), len(models.ScreeningChecks))
	}
	for _, name := range models.ScreeningChecks {
		if p.Checks[name] != 100 {
			t.Errorf("check %s ended at %d", name, p.Checks[name])
		}
		score := p.Scores[name]
		if name == models.CheckIdentity {
			if score != 100 {
				t.Errorf("identity score = %d, want 100", score)
			}
			continue
		}
		if score < targetMin || score > targetMax {
			t.Errorf("check %s scored %d, want %d..%d", name, score, targetMin, targetMax)
		}
	}
}

func TestEngineIdentityPreComplete(t *testing.T) {
	e := NewEngine(testScale)
	defer e.Shutdown()

	if err := e.Start("SCR-2", "APP-2", 1); err != nil {
		t.Fatal(err)
	}
	p, err := e.Snapshot("SCR-2")
	if err != nil {
		t.Fatal(err)
	}
	if p.Checks[models.CheckIdentity] != 100 {
		t.Errorf("identity starts at %d, want 100", p.Checks[models.CheckIdentity])
	}
	if p.Complete {
		t.Error("screening reported complete immediately after start")
	}
}

func TestEngineDuplicateStart(t *testing.T) {
	e := NewEngine(testScale)
	defer e.Shutdown()

	if err := e.Start("SCR-3", "APP-3", 1); err != nil {
		t.Fatal(err)
	}
	if err := e.Start("SCR-3", "APP-3", 1); err == nil {
		t.Error("second Start of the same screening succeeded")
	}
}

func TestEngineFinish(t *testing.T) {
	e := NewEngine(testScale)
	defer e.Shutdown()

	if err := e.Start("SCR-4", "APP-4", 1); err != nil {
		t.Fatal(err)
	}

	// Finish must refuse while checks are still running.
	if _, err := e.Finish("SCR-4"); err == nil {
		t.Error("Finish succeeded on an in-progress screening")
	}

	waitComplete(t, e, "SCR-4")

	p, err := e.Finish("SCR-4")
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if !p.Complete || p.Overall != 100 {
		t.Errorf("finished progress = %+v", p)
	}

	// The run is gone after Finish.
	if _, err := e.Snapshot("SCR-4"); err == nil {
		t.Error("Snapshot still succeeds after Finish")
	}
}

func TestEngineCancel(t *testing.T) {
	e := NewEngine(testScale)
	defer e.Shutdown()

	if err := e.Start("SCR-5", "APP-5", 1); err != nil {
		t.Fatal(err)
	}
	if err := e.Cancel("SCR-5"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := e.Snapshot("SCR-5"); err == nil {
		t.Error("Snapshot still succeeds after Cancel")
	}
	if err := e.Cancel("SCR-5"); err == nil {
		t.Error("second Cancel succeeded")
	}
}

func TestEngineUserID(t *testing.T) {
	e := NewEngine(testScale)
	defer e.Shutdown()

	if err := e.Start("SCR-6", "APP-6", 42); err != nil {
		t.Fatal(err)
	}
	uid, err := e.UserID("SCR-6")
	if err != nil {
		t.Fatal(err)
	}
	if uid != 42 {
		t.Errorf("UserID = %d, want 42", uid)
	}
	if _, err := e.UserID("SCR-missing"); err == nil {
		t.Error("UserID succeeded for unknown screening")
	}
}

func TestEtaBand(t *testing.T) {
	cases := map[int]string{
		100: "complete",
		80:  "less than 30 seconds",
		60:  "about a minute",
		30:  "about 90 seconds",
		10:  "about 2 minutes",
	}
	for overall, want := range cases {
		if got := etaBand(overall); got != want {
			t.Errorf("etaBand(%d) = %q, want %q", overall, got, want)
		}
	}
}
