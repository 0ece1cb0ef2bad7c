// Package app provides the main TUI application that wires all views together.
package app

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"

	"github.com/sketchify-dev/sketchify/internal/config"
	"github.com/sketchify-dev/sketchify/internal/imagedata"
	evlog "github.com/sketchify-dev/sketchify/internal/log"
	"github.com/sketchify-dev/sketchify/internal/session"
	"github.com/sketchify-dev/sketchify/internal/style"
	"github.com/sketchify-dev/sketchify/internal/tui"
	"github.com/sketchify-dev/sketchify/internal/tui/commands"
	"github.com/sketchify-dev/sketchify/internal/tui/views"
)

// ctrlCWindow is how long the first Ctrl+C waits for a second one.
const ctrlCWindow = time.Second

// App is the main TUI application that wires all views together.
type App struct {
	model *tui.Model
	keys  tui.KeyMap

	uploadView views.UploadModel
	studioView views.StudioModel

	openPath string
}

// New creates a new App. synth performs generation; events may be nil.
func New(cfg *config.Config, synth session.Synthesizer, events *evlog.Logger) *App {
	model := tui.NewModel(cfg, synth, events)

	return &App{
		model:      model,
		keys:       tui.DefaultKeyMap,
		uploadView: views.NewUploadModel(model.Width, model.Height),
		studioView: views.NewStudioModel(model),
	}
}

// Session returns the current session value.
func (a *App) Session() session.Session {
	return a.model.Session
}

// Model returns the shared TUI model.
func (a *App) Model() *tui.Model {
	return a.model
}

// Open queues a photo to be loaded as soon as the program starts.
func (a *App) Open(path string) {
	a.openPath = path
	a.model.Loading = true
	a.uploadView.SetLoading(true)
}

// Init returns the initial command for the TUI.
func (a *App) Init() tea.Cmd {
	if a.openPath == "" {
		return a.uploadView.Init()
	}
	return tea.Batch(a.uploadView.Init(), commands.LoadFileCmd(a.openPath, a.model.Cfg.MaxUploadBytes()))
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		var cmd tea.Cmd
		a.uploadView, cmd = a.uploadView.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.CtrlC) {
			if a.model.CtrlCPending {
				return a, tea.Quit
			}
			a.model.CtrlCPending = true
			return a, tea.Tick(ctrlCWindow, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case spinner.TickMsg:
		if a.model.Session.Phase != session.Processing {
			return a, nil
		}
		var cmd tea.Cmd
		a.model.Spinner, cmd = a.model.Spinner.Update(msg)
		return a, cmd

	case tui.FileLoadedMsg:
		return a.handleFileLoaded(msg)

	case tui.FileRejectedMsg:
		return a.handleFileRejected(msg)

	case tui.GenerationDoneMsg:
		return a.handleGenerationDone(msg)

	case tui.SketchSavedMsg:
		return a.handleSketchSaved(msg)
	}

	if a.model.Session.Phase == session.Idle {
		return a.updateIdle(msg)
	}
	return a.updateStudio(msg)
}

// View renders the current application state.
func (a *App) View() string {
	var content string
	if a.model.Session.Phase == session.Idle {
		a.uploadView.SetCtrlCPending(a.model.CtrlCPending)
		content = a.uploadView.View()
	} else {
		content = a.studioView.View()
	}

	return lipgloss.Place(
		a.model.Width,
		a.model.Height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// ============================================================================
// Phase Update Handlers
// ============================================================================

func (a *App) updateIdle(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == tui.KeyEsc {
		a.reset()
		return a, nil
	}

	var cmd tea.Cmd
	a.uploadView, cmd = a.uploadView.Update(msg)

	if submit, ok := msg.(views.SubmitPathMsg); ok {
		a.model.Loading = true
		a.model.Alert = ""
		a.uploadView.SetLoading(true)
		a.uploadView.SetAlert("")
		return a, commands.LoadFileCmd(submit.Path, a.model.Cfg.MaxUploadBytes())
	}

	return a, cmd
}

func (a *App) updateStudio(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	keys := a.studioView.Keys()

	switch {
	case key.Matches(k, keys.Reset):
		a.reset()
		return a, a.uploadView.Init()

	case key.Matches(k, keys.Up):
		a.moveStyle(-1)

	case key.Matches(k, keys.Down):
		a.moveStyle(1)

	case key.Matches(k, keys.Generate):
		return a, a.generate()

	case key.Matches(k, keys.Download):
		a.model.Alert = ""
		return a, commands.SaveSketchCmd(a.model.Cfg.OutputDir, a.model.Session.SketchImage, a.model.Now())
	}

	return a, nil
}

// ============================================================================
// Transitions
// ============================================================================

func (a *App) handleFileLoaded(msg tui.FileLoadedMsg) (tea.Model, tea.Cmd) {
	// Reset while the file was being read.
	if !a.model.Loading {
		return a, nil
	}
	a.model.Loading = false
	a.model.Alert = ""
	a.uploadView.SetLoading(false)
	a.uploadView.SetAlert("")
	a.uploadView.Clear()

	a.model.Session = session.SelectFile(a.model.Session, msg.Image)
	a.model.ClearOriginal()
	a.model.OriginalName = msg.Path
	a.model.OriginalInfo = msg.Info

	a.logEvent(evlog.LogEvent{
		Event:    evlog.EventFileSelected,
		Path:     msg.Path,
		MIMEType: msg.Image.MIMEType(),
		Bytes:    msg.Info.Size,
	})
	return a, nil
}

func (a *App) handleFileRejected(msg tui.FileRejectedMsg) (tea.Model, tea.Cmd) {
	if !a.model.Loading {
		return a, nil
	}
	a.model.Loading = false
	a.model.Alert = rejectionMessage(msg.Err)
	a.uploadView.SetLoading(false)
	a.uploadView.SetAlert(a.model.Alert)

	a.logEvent(evlog.LogEvent{
		Event: evlog.EventFileRejected,
		Path:  msg.Path,
		Error: msg.Err.Error(),
	})
	return a, nil
}

// rejectionMessage turns a validation error into the alert text.
func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, imagedata.ErrNotImage):
		return "Please select an image file."
	case errors.Is(err, imagedata.ErrTooLarge):
		return "That image is too large."
	default:
		return err.Error()
	}
}

func (a *App) moveStyle(delta int) {
	all := style.All()
	i := style.Index(a.model.Session.SelectedStyle)
	if i < 0 {
		i = 0
	}
	i = (i + delta + len(all)) % len(all)

	a.model.Session = session.SelectStyle(a.model.Session, all[i])
	a.logEvent(evlog.LogEvent{
		Event: evlog.EventStyleSelected,
		Style: all[i].Label,
		Phase: a.model.Session.Phase.String(),
	})
}

func (a *App) generate() tea.Cmd {
	next, req, err := session.Generate(a.model.Session)
	if err != nil {
		a.model.Alert = err.Error()
		return nil
	}
	a.model.Session = next
	a.model.Alert = ""
	a.model.SketchInfo = imagedata.Info{}
	a.model.SavedPath = ""
	a.model.StartedAt = a.model.Now()

	a.logEvent(evlog.LogEvent{
		Event:     evlog.EventGenerationStarted,
		RequestID: req.ID,
		Version:   req.Version,
		Style:     req.Style.Label,
	})
	return tea.Batch(
		a.model.Spinner.Tick,
		commands.GenerateCmd(a.model.Synth, req),
	)
}

func (a *App) handleGenerationDone(msg tui.GenerationDoneMsg) (tea.Model, tea.Cmd) {
	o := msg.Outcome
	next, applied := session.Resolve(a.model.Session, o)
	if !applied {
		a.logEvent(evlog.LogEvent{
			Event:     evlog.EventStaleResultDiscarded,
			RequestID: o.Request.ID,
			Version:   o.Request.Version,
			Phase:     a.model.Session.Phase.String(),
		})
		return a, nil
	}
	a.model.Session = next

	event := evlog.LogEvent{
		RequestID:  o.Request.ID,
		Version:    o.Request.Version,
		Style:      o.Request.Style.Label,
		DurationMs: msg.Duration.Milliseconds(),
	}
	if next.Phase == session.Complete {
		if _, data, err := next.SketchImage.Decode(); err == nil {
			a.model.SketchInfo = imagedata.Describe(data)
		}
		event.Event = evlog.EventGenerationSucceeded
		event.Bytes = a.model.SketchInfo.Size
	} else {
		event.Event = evlog.EventGenerationFailed
		event.Error = next.Error
	}
	a.logEvent(event)
	return a, nil
}

func (a *App) handleSketchSaved(msg tui.SketchSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.model.Alert = "Could not save sketch: " + msg.Err.Error()
		charmlog.Warn("saving sketch", "err", msg.Err)
		return a, nil
	}
	a.model.SavedPath = msg.Path
	a.logEvent(evlog.LogEvent{Event: evlog.EventSketchSaved, Path: msg.Path})
	return a, nil
}

func (a *App) reset() {
	prev := a.model.Session.Phase
	a.model.Session = session.Reset(a.model.Session)
	a.model.ClearOriginal()
	a.model.Alert = ""
	a.model.Loading = false
	a.uploadView.SetAlert("")
	a.uploadView.SetLoading(false)
	a.uploadView.Clear()

	a.logEvent(evlog.LogEvent{Event: evlog.EventSessionReset, Phase: prev.String()})
}

// logEvent appends to the event log. Failures are reported to the debug log
// only.
func (a *App) logEvent(e evlog.LogEvent) {
	if err := a.model.Events.Append(e); err != nil {
		charmlog.Warn("appending event", "event", e.Event, "err", err)
	}
	charmlog.Debug(e.Event, "request", e.RequestID, "version", e.Version, "phase", a.model.Session.Phase)
}
