package setup

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/poller"
	"github.com/umputun/admax/app/state"
)

// DefaultAnalysisDuration is how long the fake analysis progress takes to walk all steps
const DefaultAnalysisDuration = 2 * time.Minute

// ErrNoTarget returned when cold start has neither account nor brand
var ErrNoTarget = errors.New("either account id or brand id is required")

// AnalysisStep is one label of the analysis progress
type AnalysisStep struct {
	Label    string        `json:"label"`
	Duration time.Duration `json:"duration"`
}

// AnalysisSteps returns progress labels splitting total duration evenly
func AnalysisSteps(total time.Duration, hasProductOrCompetitor bool) []AnalysisStep {
	labels := []string{"Connecting to Meta Ads API", "Analyzing historical campaign data"}
	if hasProductOrCompetitor {
		labels = append(labels, "Analyzing products & competitors")
	}
	labels = append(labels, "Generating AI recommendations")
	res := make([]AnalysisStep, len(labels))
	for i, l := range labels {
		res[i] = AnalysisStep{Label: l, Duration: total / time.Duration(len(labels))}
	}
	return res
}

// AnalyzerState is the cold start analysis progress
type AnalyzerState struct {
	CurrentStep            int
	CompletedSteps         []int
	HasProductOrCompetitor bool
	IsPolling              bool
	TaskID                 string
}

// ColdStartParams selects what to analyze. AccountID wins over BrandID.
type ColdStartParams struct {
	AccountID            string
	BrandID              string
	ProductIDs           []string
	CompetitorTrackerIDs []string
	OnTaskID             func(taskID string) // called before polling starts
}

// AnalyzerParams are dependencies and tuning of the analyzer
type AnalyzerParams struct {
	Backend      TaskBackend
	Accounts     interface{ Fetch(ctx context.Context) error }
	Duration     time.Duration // fake progress duration
	Tick         time.Duration // fake progress update interval
	PollInterval time.Duration
	Now          func() time.Time
}

// Analyzer runs the cold start analysis task and reports fake step progress while it runs
type Analyzer struct {
	p     AnalyzerParams
	store *state.Store[AnalyzerState]
	polls *poller.Manager[api.Task]

	mu        sync.Mutex
	running   string // task id of the active watch
	cancelRun context.CancelFunc
	wg        sync.WaitGroup

	lmu        sync.Mutex
	lastID     int
	onComplete map[int]func(ctx context.Context)
	onFailed   map[int]func(ctx context.Context, err error)
}

// NewAnalyzer makes an idle analyzer
func NewAnalyzer(p AnalyzerParams) *Analyzer {
	if p.Duration <= 0 {
		p.Duration = DefaultAnalysisDuration
	}
	if p.Tick <= 0 {
		p.Tick = time.Second
	}
	if p.PollInterval <= 0 {
		p.PollInterval = poller.DefaultInterval
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Analyzer{
		p:          p,
		store:      state.New(AnalyzerState{CompletedSteps: []int{}}),
		polls:      poller.NewManager[api.Task](),
		onComplete: map[int]func(ctx context.Context){},
		onFailed:   map[int]func(ctx context.Context, err error){},
	}
}

// State returns a snapshot of the analyzer state
func (a *Analyzer) State() AnalyzerState { return a.store.Get() }

// Store exposes the analyzer state store
func (a *Analyzer) Store() *state.Store[AnalyzerState] { return a.store }

// Steps returns progress steps of the current analysis
func (a *Analyzer) Steps() []AnalysisStep {
	return AnalysisSteps(a.p.Duration, a.store.Get().HasProductOrCompetitor)
}

// CurrentStepInfo returns the step in progress, false when all steps are done
func (a *Analyzer) CurrentStepInfo() (AnalysisStep, bool) {
	steps, st := a.Steps(), a.store.Get()
	if st.CurrentStep < 0 || st.CurrentStep >= len(steps) {
		return AnalysisStep{}, false
	}
	return steps[st.CurrentStep], true
}

// Progress is the analysis progress percentage, never reaches 100 on its own
func (a *Analyzer) Progress() int {
	st, n := a.store.Get(), len(a.Steps())
	if st.IsPolling {
		if len(st.CompletedSteps) > n {
			return 99
		}
		return min(int(math.Round(float64(st.CurrentStep)/float64(n)*100)), 99)
	}
	return min(int(math.Round(float64(st.CurrentStep+1)/float64(n)*100)), 99)
}

// IsAllStepsCompleted reports whether every progress step is marked done
func (a *Analyzer) IsAllStepsCompleted() bool {
	st, n := a.store.Get(), len(a.Steps())
	return st.CurrentStep == n && len(st.CompletedSteps) == n
}

// OnComplete registers fn called after the task succeeded and accounts were reloaded
func (a *Analyzer) OnComplete(fn func(ctx context.Context)) (unsubscribe func()) {
	a.lmu.Lock()
	defer a.lmu.Unlock()
	a.lastID++
	id := a.lastID
	a.onComplete[id] = fn
	return func() {
		a.lmu.Lock()
		delete(a.onComplete, id)
		a.lmu.Unlock()
	}
}

// OnFailed registers fn called when the task could not be started or ended with failure
func (a *Analyzer) OnFailed(fn func(ctx context.Context, err error)) (unsubscribe func()) {
	a.lmu.Lock()
	defer a.lmu.Unlock()
	a.lastID++
	id := a.lastID
	a.onFailed[id] = fn
	return func() {
		a.lmu.Lock()
		delete(a.onFailed, id)
		a.lmu.Unlock()
	}
}

// StartColdStart starts the analysis task, reports its id and begins polling with fake progress.
// Start failures fire failed listeners and are returned. Listeners are always called from analyzer
// goroutines, never from the caller's one.
func (a *Analyzer) StartColdStart(ctx context.Context, params ColdStartParams) error {
	hasExtra := len(params.ProductIDs) > 0 || len(params.CompetitorTrackerIDs) > 0
	a.store.Update(func(s *AnalyzerState) {
		s.HasProductOrCompetitor = hasExtra
		s.CurrentStep, s.CompletedSteps = 0, []int{}
		s.IsPolling = true
	})

	req := api.ColdStartRequest{ProductIDs: params.ProductIDs, CompetitorTrackerIDs: params.CompetitorTrackerIDs}
	var ref api.TaskRef
	var err error
	switch {
	case params.AccountID != "":
		req.AccountID = params.AccountID
		ref, err = a.p.Backend.ColdStart(ctx, req)
	case params.BrandID != "":
		req.BrandID = params.BrandID
		ref, err = a.p.Backend.BrandColdStart(ctx, req)
	default:
		err = ErrNoTarget
	}
	if err != nil {
		a.store.Update(func(s *AnalyzerState) { s.IsPolling, s.TaskID = false, "" })
		err = fmt.Errorf("start cold start: %w", err)
		a.async(func(ctx context.Context) { a.fire(ctx, err) })
		return err
	}

	log.Printf("[INFO] cold start analysis started, task %s", ref.TaskID)
	if params.OnTaskID != nil {
		params.OnTaskID(ref.TaskID)
	}
	a.watch(ref.TaskID, a.p.Now())
	return nil
}

// ResumePolling continues watching a task started before restart. Terminal tasks fire listeners
// right away, running ones resume with progress estimated at half of the duration.
func (a *Analyzer) ResumePolling(ctx context.Context, taskID string, hasProductOrCompetitor bool) error {
	a.store.Update(func(s *AnalyzerState) {
		s.HasProductOrCompetitor = hasProductOrCompetitor
		s.IsPolling = true
	})

	task, err := a.p.Backend.GetTask(ctx, taskID)
	if err != nil {
		a.store.Update(func(s *AnalyzerState) { s.IsPolling, s.TaskID = false, "" })
		err = fmt.Errorf("get analysis task %s: %w", taskID, err)
		a.async(func(ctx context.Context) { a.fire(ctx, err) })
		return err
	}

	switch {
	case task.Status == api.TaskSuccess:
		a.async(a.succeeded)
	case task.Failed():
		a.store.Update(func(s *AnalyzerState) { s.IsPolling, s.TaskID = false, "" })
		taskErr := &poller.TaskError{TaskID: taskID, Status: string(task.Status), Message: task.Error}
		a.async(func(ctx context.Context) { a.fire(ctx, taskErr) })
	default:
		log.Printf("[INFO] resume polling of analysis task %s", taskID)
		a.watch(taskID, a.p.Now().Add(-a.p.Duration/2))
	}
	return nil
}

// Stop cancels polling and fake progress and waits for them to finish
func (a *Analyzer) Stop() {
	a.mu.Lock()
	if a.cancelRun != nil {
		a.cancelRun()
		a.cancelRun = nil
	}
	a.running = ""
	a.mu.Unlock()
	a.polls.CancelAll()
	a.wg.Wait()
	a.store.Update(func(s *AnalyzerState) { s.IsPolling, s.TaskID = false, "" })
}

// Dispose stops everything and drops listeners
func (a *Analyzer) Dispose() {
	a.Stop()
	a.lmu.Lock()
	a.onComplete = map[int]func(ctx context.Context){}
	a.onFailed = map[int]func(ctx context.Context, err error){}
	a.lmu.Unlock()
}

// watch polls the task and runs fake progress from start time. A watch of the same task is kept,
// a watch of another task is replaced.
func (a *Analyzer) watch(taskID string, start time.Time) {
	a.mu.Lock()
	if taskID != "" && a.running == taskID {
		a.mu.Unlock()
		log.Printf("[DEBUG] analysis task %s already polled", taskID)
		return
	}
	if a.cancelRun != nil {
		log.Printf("[DEBUG] replace polling of %s with %s", a.running, taskID)
		a.cancelRun()
	}
	runCtx, cancel := context.WithCancel(context.Background())
	a.running, a.cancelRun = taskID, cancel
	a.mu.Unlock()

	a.store.Update(func(s *AnalyzerState) { s.TaskID, s.IsPolling = taskID, true })
	progressCtx, cancelProgress := context.WithCancel(runCtx)
	progressDone := make(chan struct{})
	stopProgress := func() {
		cancelProgress()
		<-progressDone
	}

	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		defer close(progressDone)
		a.progress(progressCtx, start)
	}()
	go func() {
		defer a.wg.Done()
		defer cancelProgress()
		a.poll(runCtx, taskID, stopProgress)
	}()
}

func (a *Analyzer) poll(ctx context.Context, taskID string, stopProgress func()) {
	_, err := poller.WaitTask(ctx, a.polls, a.p.Backend, taskID, a.p.PollInterval)
	stopProgress()
	if ctx.Err() != nil {
		log.Printf("[DEBUG] polling of analysis task %s canceled", taskID)
		return
	}
	if !a.release(taskID) {
		return
	}
	if err != nil {
		log.Printf("[WARN] analysis task %s failed, %v", taskID, err)
		a.store.Update(func(s *AnalyzerState) { s.IsPolling, s.TaskID = false, "" })
		a.fire(ctx, err)
		return
	}
	log.Printf("[INFO] analysis task %s completed", taskID)
	a.succeeded(ctx)
}

// release clears the active watch if it still belongs to taskID. The run context stays alive
// for listeners until Stop or the next watch.
func (a *Analyzer) release(taskID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running != taskID {
		return false
	}
	a.running = ""
	return true
}

// async runs fn on an analyzer goroutine, canceled by Stop or by the next watch
func (a *Analyzer) async(fn func(ctx context.Context)) {
	a.mu.Lock()
	if a.cancelRun != nil {
		a.cancelRun()
	}
	runCtx, cancel := context.WithCancel(context.Background())
	a.running, a.cancelRun = "", cancel
	a.mu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		fn(runCtx)
	}()
}

// succeeded reloads accounts, marks all steps done and fires complete listeners
func (a *Analyzer) succeeded(ctx context.Context) {
	if err := a.p.Accounts.Fetch(ctx); err != nil {
		log.Printf("[WARN] can't reload accounts after analysis, %v", err)
	}
	n := len(a.Steps())
	a.store.Update(func(s *AnalyzerState) {
		s.IsPolling, s.TaskID = false, ""
		s.CurrentStep, s.CompletedSteps = n, seq(n)
	})
	a.lmu.Lock()
	fns := make([]func(ctx context.Context), 0, len(a.onComplete))
	for _, fn := range a.onComplete {
		fns = append(fns, fn)
	}
	a.lmu.Unlock()
	for _, fn := range fns {
		fn(ctx)
	}
}

func (a *Analyzer) fire(ctx context.Context, err error) {
	a.lmu.Lock()
	fns := make([]func(ctx context.Context, err error), 0, len(a.onFailed))
	for _, fn := range a.onFailed {
		fns = append(fns, fn)
	}
	a.lmu.Unlock()
	for _, fn := range fns {
		fn(ctx, err)
	}
}

// progress moves fake steps by elapsed time until ctx is done
func (a *Analyzer) progress(ctx context.Context, start time.Time) {
	ticker := time.NewTicker(a.p.Tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		n := len(a.Steps())
		elapsed := a.p.Now().Sub(start)
		done := min(int(float64(elapsed)/float64(a.p.Duration)*float64(n)), n)
		a.store.Update(func(s *AnalyzerState) {
			s.CurrentStep, s.CompletedSteps = done, seq(done)
		})
	}
}

// seq returns 0..n-1
func seq(n int) []int {
	res := make([]int, n)
	for i := range res {
		res[i] = i
	}
	return res
}
