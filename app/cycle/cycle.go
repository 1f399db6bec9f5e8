// Package cycle computes the weekly automation cycle shown in the queue stats bar.
// A cycle starts at each activation of the cron schedule; the first half of it is the
// creation phase, the second half is the analysis phase.
package cycle

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSpec starts a cycle every Monday at 00:00
const DefaultSpec = "0 0 * * 1"

// lookBack limits search of the current cycle start, cycles longer than this are not supported
const lookBack = 8 * 24 * time.Hour

// Phase of the cycle
type Phase string

// cycle phases
const (
	PhaseCreation Phase = "creation"
	PhaseAnalysis Phase = "analysis"
	PhaseBoth     Phase = "both"
)

// Label is the phase title used by the stats bar
func (p Phase) Label() string {
	switch p {
	case PhaseCreation:
		return "Creating"
	case PhaseAnalysis:
		return "Optimizing"
	default:
		return "Creating & Optimizing"
	}
}

// WeeklyCycle is the cycle state at some moment
type WeeklyCycle struct {
	CurrentWeek            int       `json:"current_week"`
	Phase                  Phase     `json:"cycle_phase"`
	CreationPipelineActive bool      `json:"creation_pipeline_active"`
	AnalysisPipelineActive bool      `json:"analysis_pipeline_active"`
	NextCycleStart         time.Time `json:"next_cycle_start"`
}

// Planner computes cycles from the schedule
type Planner struct {
	Spec     string
	Epoch    time.Time // start of week 1, zero means every cycle is week 1
	schedule cron.Schedule
}

// NewPlanner parses standard 5-field cron spec, empty spec means DefaultSpec
func NewPlanner(spec string, epoch time.Time) (*Planner, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("can't parse cycle spec %q: %w", spec, err)
	}
	return &Planner{Spec: spec, Epoch: epoch, schedule: sched}, nil
}

// At returns the cycle for the given time
func (p *Planner) At(now time.Time) WeeklyCycle {
	next := p.schedule.Next(now)
	start := p.start(now)

	res := WeeklyCycle{CurrentWeek: 1, Phase: PhaseCreation, CreationPipelineActive: true, NextCycleStart: next}
	if !start.IsZero() && now.Sub(start) >= next.Sub(start)/2 {
		res.Phase = PhaseAnalysis
		res.CreationPipelineActive = false
		res.AnalysisPipelineActive = true
	}
	if !p.Epoch.IsZero() && now.After(p.Epoch) {
		res.CurrentWeek = int(now.Sub(p.Epoch)/(7*24*time.Hour)) + 1
	}
	return res
}

// start finds the last activation not after now, zero if none within lookBack
func (p *Planner) start(now time.Time) time.Time {
	var res time.Time
	for t := p.schedule.Next(now.Add(-lookBack)); !t.After(now); t = p.schedule.Next(t) {
		res = t
	}
	return res
}

// AutomationLevel of the account automation
type AutomationLevel string

// AutomationSupervised requires approval of every pipeline item
const AutomationSupervised AutomationLevel = "SUPERVISED"

// CircuitBreaker pauses automation when a metric deviates
type CircuitBreaker struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Metric    string `json:"metric"`
	Threshold string `json:"threshold"`
	Action    string `json:"action"`
	Enabled   bool   `json:"enabled"`
	Triggered bool   `json:"triggered"`
}

// AutomationStatus summarizes automation trust level
type AutomationStatus struct {
	Level                 AutomationLevel  `json:"level"`
	CurrentWeek           int              `json:"current_week"`
	WeeksInCurrentLevel   int              `json:"weeks_in_current_level"`
	ApprovalRate          float64          `json:"approval_rate"`
	Confidence            float64          `json:"confidence"`
	CanUpgrade            bool             `json:"can_upgrade"`
	NextLevelRequirements string           `json:"next_level_requirements,omitempty"`
	CircuitBreakers       []CircuitBreaker `json:"circuit_breakers"`
}

// DefaultAutomationStatus is the status of a new account
func DefaultAutomationStatus() AutomationStatus {
	return AutomationStatus{
		Level:               AutomationSupervised,
		CurrentWeek:         1,
		WeeksInCurrentLevel: 1,
		ApprovalRate:        85,
		Confidence:          75,
		CircuitBreakers:     []CircuitBreaker{},
	}
}
