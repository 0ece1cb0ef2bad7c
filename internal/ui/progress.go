// Package ui provides terminal output helpers for the non-interactive
// commands. This file implements the step display shown by `sketchify sketch`.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// StepStatus represents the state of a single step.
type StepStatus int

const (
	StatusPending StepStatus = iota
	StatusRunning
	StatusDone
	StatusFailed
)

// Step holds the display state of one step.
type Step struct {
	ID      string
	Title   string
	Status  StepStatus
	Detail  string // shown after the title, e.g. sizes or the saved path
	Elapsed time.Duration
}

// ProgressDisplay manages a live-updating step list. On a terminal the list
// is redrawn in place; otherwise one line is printed per status change.
type ProgressDisplay struct {
	mu          sync.Mutex
	out         io.Writer
	title       string
	steps       []*Step
	index       map[string]int
	started     bool
	isTTY       bool
	linesDrawn  int
	startTimes  map[string]time.Time
	lastPrinted map[string]StepStatus
}

// NewProgressDisplay creates a ProgressDisplay writing to out.
func NewProgressDisplay(out io.Writer, title string) *ProgressDisplay {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return &ProgressDisplay{
		out:         out,
		title:       title,
		index:       make(map[string]int),
		startTimes:  make(map[string]time.Time),
		lastPrinted: make(map[string]StepStatus),
		isTTY:       isTTY,
	}
}

// AddStep registers a step.
func (p *ProgressDisplay) AddStep(id, title string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.index[id] = len(p.steps)
	p.steps = append(p.steps, &Step{ID: id, Title: title})
}

// Start draws the initial display.
func (p *ProgressDisplay) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = true
	p.render()
}

// Update sets a step's status and detail and re-renders.
func (p *ProgressDisplay) Update(id string, status StepStatus, detail string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx, ok := p.index[id]
	if !ok {
		return
	}

	step := p.steps[idx]
	step.Status = status
	step.Detail = detail

	switch status {
	case StatusRunning:
		p.startTimes[id] = time.Now()
	case StatusDone, StatusFailed:
		if start, ok := p.startTimes[id]; ok {
			step.Elapsed = time.Since(start)
		}
	}

	if p.started {
		p.render()
	}
}

// Finish moves below the display and prints a summary line.
func (p *ProgressDisplay) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	failed := 0
	done := 0
	for _, s := range p.steps {
		switch s.Status {
		case StatusDone:
			done++
		case StatusFailed:
			failed++
		}
	}

	if failed > 0 {
		fmt.Fprintf(p.out, "\nFailed after %d/%d steps\n", done, len(p.steps))
		return
	}
	fmt.Fprintf(p.out, "\nDone: %d/%d steps\n", done, len(p.steps))
}

func (p *ProgressDisplay) render() {
	if !p.isTTY {
		p.renderPlain()
		return
	}
	p.renderTTY()
}

// renderTTY redraws in place using ANSI cursor movement.
func (p *ProgressDisplay) renderTTY() {
	if p.linesDrawn > 0 {
		fmt.Fprintf(p.out, "\033[%dA", p.linesDrawn)
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("\033[2K\033[1m\u270f Sketchify - %s\033[0m\n", p.title))
	buf.WriteString("\033[2K\n")
	for _, step := range p.steps {
		buf.WriteString("\033[2K")
		buf.WriteString(formatStepLine(step, p.startTimes))
		buf.WriteString("\n")
	}

	fmt.Fprint(p.out, buf.String())
	p.linesDrawn = len(p.steps) + 2
}

// renderPlain only prints on status transitions to avoid duplicate lines.
func (p *ProgressDisplay) renderPlain() {
	for _, step := range p.steps {
		if step.Status == StatusPending {
			continue
		}
		if prev, seen := p.lastPrinted[step.ID]; seen && prev == step.Status {
			continue
		}
		fmt.Fprintln(p.out, formatStepLinePlain(step))
		p.lastPrinted[step.ID] = step.Status
	}
}

func formatStepLine(step *Step, startTimes map[string]time.Time) string {
	line := fmt.Sprintf("  %s %s  %s", statusIcon(step.Status), step.Title, statusDetail(step, startTimes))
	if step.Detail != "" {
		line += "  \033[90m" + step.Detail + "\033[0m"
	}
	return line
}

func formatStepLinePlain(step *Step) string {
	var status string
	switch step.Status {
	case StatusPending:
		status = "PENDING"
	case StatusRunning:
		status = "RUNNING"
	case StatusDone:
		status = fmt.Sprintf("DONE [%s]", formatDuration(step.Elapsed))
	case StatusFailed:
		status = "FAILED"
	}
	line := fmt.Sprintf("[%s] %s", status, step.Title)
	if step.Detail != "" {
		line += ": " + step.Detail
	}
	return line
}

func statusIcon(status StepStatus) string {
	switch status {
	case StatusDone:
		return "\033[32m\u2705\033[0m"
	case StatusRunning:
		return "\033[33m\u23f3\033[0m"
	case StatusFailed:
		return "\033[31m\u274c\033[0m"
	default:
		return "\033[90m\u25cb\033[0m"
	}
}

func statusDetail(step *Step, startTimes map[string]time.Time) string {
	switch step.Status {
	case StatusDone:
		return fmt.Sprintf("\033[90m[%s]\033[0m", formatDuration(step.Elapsed))
	case StatusRunning:
		return fmt.Sprintf("\033[33m[%s]\033[0m", formatDuration(time.Since(startTimes[step.ID])))
	case StatusFailed:
		return "\033[31m[failed]\033[0m"
	default:
		return "\033[90m[pending]\033[0m"
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm%ds", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}
