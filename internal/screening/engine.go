package screening

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
)

// Stagger offsets at which the checks come online, simulating a pipeline
// that picks work up in stages. Identity is verified at signup and starts
// complete.
var checkStartOffsets = map[string]time.Duration{
	models.CheckBackground:    0,
	models.CheckCredit:        2 * time.Second,
	models.CheckReference:     5 * time.Second,
	models.CheckDocument:      8 * time.Second,
	models.CheckEmployment:    10 * time.Second,
	models.CheckRentalHistory: 12 * time.Second,
}

const (
	targetMin = 85
	targetMax = 96

	incrementMin = 1
	incrementMax = 5

	tickMin = 800 * time.Millisecond
	tickMax = 2 * time.Second
)

// Progress is a point-in-time snapshot of one screening run.
type Progress struct {
	ScreeningID   string         `json:"screening_id"`
	ApplicationID string         `json:"application_id"`
	Checks        map[string]int `json:"checks"`
	Scores        map[string]int `json:"scores"`
	Overall       int            `json:"overall"`
	ETA           string         `json:"eta"`
	Complete      bool           `json:"complete"`
}

type check struct {
	percent int
	target  int
	score   int
	done    bool
}

type run struct {
	applicationID string
	userID        uint
	checks        map[string]*check
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// Engine drives the simulated screening checks. Each active screening runs
// one goroutine per pending check; all timing is scaled by the configured
// factor so tests compress minutes into milliseconds.
type Engine struct {
	mu    sync.Mutex
	runs  map[string]*run
	scale float64
}

// NewEngine creates an Engine. scale multiplies every delay; 1.0 is real
// time.
func NewEngine(scale float64) *Engine {
	if scale <= 0 {
		scale = 1.0
	}
	return &Engine{
		runs:  make(map[string]*run),
		scale: scale,
	}
}

// ErrUnknownScreening is wrapped into errors for IDs the engine is not
// running.
var ErrUnknownScreening = fmt.Errorf("screening not running")

// Start launches the check pipeline for a screening. Starting an ID twice
// is an error.
func (e *Engine) Start(screeningID, applicationID string, userID uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.runs[screeningID]; exists {
		return fmt.Errorf("screening %s already started", screeningID)
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &run{
		applicationID: applicationID,
		userID:        userID,
		checks:        make(map[string]*check),
		cancel:        cancel,
	}

	for _, name := range models.ScreeningChecks {
		if name == models.CheckIdentity {
			r.checks[name] = &check{percent: 100, target: 100, score: 100, done: true}
			continue
		}
		r.checks[name] = &check{
			target: targetMin + rand.Intn(targetMax-targetMin+1),
		}
	}

	e.runs[screeningID] = r

	for _, name := range models.ScreeningChecks {
		if name == models.CheckIdentity {
			continue
		}
		r.wg.Add(1)
		go e.driveCheck(ctx, r, name)
	}
	return nil
}

func (e *Engine) driveCheck(ctx context.Context, r *run, name string) {
	defer r.wg.Done()

	if offset := checkStartOffsets[name]; offset > 0 {
		if !sleepCtx(ctx, e.scaled(offset)) {
			return
		}
	}

	for {
		tick := tickMin + time.Duration(rand.Int63n(int64(tickMax-tickMin)))
		if !sleepCtx(ctx, e.scaled(tick)) {
			return
		}

		e.mu.Lock()
		c := r.checks[name]
		switch {
		case c.done:
			e.mu.Unlock()
			return
		case c.percent >= c.target:
			// Target confidence reached; the check finalizes on its next
			// tick and records the confidence it settled at.
			c.score = c.percent
			c.percent = 100
			c.done = true
			e.mu.Unlock()
			return
		default:
			c.percent += incrementMin + rand.Intn(incrementMax-incrementMin+1)
			if c.percent > c.target {
				c.percent = c.target
			}
			e.mu.Unlock()
		}
	}
}

func (e *Engine) scaled(d time.Duration) time.Duration {
	return time.Duration(float64(d) * e.scale)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Snapshot reports the current progress of a running screening.
func (e *Engine) Snapshot(screeningID string) (*Progress, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, ok := e.runs[screeningID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScreening, screeningID)
	}

	p := &Progress{
		ScreeningID:   screeningID,
		ApplicationID: r.applicationID,
		Checks:        make(map[string]int, len(r.checks)),
		Scores:        make(map[string]int, len(r.checks)),
		Complete:      true,
	}

	sum := 0
	for name, c := range r.checks {
		p.Checks[name] = c.percent
		p.Scores[name] = c.score
		sum += c.percent
		if !c.done {
			p.Complete = false
		}
	}
	p.Overall = sum / len(r.checks)
	p.ETA = etaBand(p.Overall)
	return p, nil
}

// UserID returns the owner of a running screening.
func (e *Engine) UserID(screeningID string) (uint, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.runs[screeningID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownScreening, screeningID)
	}
	return r.userID, nil
}

// Cancel stops a running screening and discards its state.
func (e *Engine) Cancel(screeningID string) error {
	e.mu.Lock()
	r, ok := e.runs[screeningID]
	if ok {
		delete(e.runs, screeningID)
	}
	e.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownScreening, screeningID)
	}
	r.cancel()
	r.wg.Wait()
	return nil
}

// Finish removes a completed screening from the engine and returns its
// final progress. It fails while checks are still running.
func (e *Engine) Finish(screeningID string) (*Progress, error) {
	p, err := e.Snapshot(screeningID)
	if err != nil {
		return nil, err
	}
	if !p.Complete {
		return nil, fmt.Errorf("screening %s still in progress", screeningID)
	}

	e.mu.Lock()
	r := e.runs[screeningID]
	delete(e.runs, screeningID)
	e.mu.Unlock()

	if r != nil {
		r.cancel()
		r.wg.Wait()
	}
	return p, nil
}

// Shutdown cancels every active screening and waits for their goroutines.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	runs := e.runs
	e.runs = make(map[string]*run)
	e.mu.Unlock()

	for _, r := range runs {
		r.cancel()
	}
	for _, r := range runs {
		r.wg.Wait()
	}
}

// etaBand maps overall progress to the coarse human-readable estimate shown
// while checks run.
func etaBand(overall int) string {
	switch {
	case overall >= 100:
		return "complete"
	case overall >= 75:
		return "less than 30 seconds"
	case overall >= 50:
		return "about a minute"
	case overall >= 25:
		return "about 90 seconds"
	default:
		return "about 2 minutes"
	}
}
