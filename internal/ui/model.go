package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/disk"

	"scorch/internal/config"
	"scorch/internal/domain"
	"scorch/internal/services"
	"scorch/internal/state"
	"scorch/internal/sunburst"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧"}

const tickInterval = 120 * time.Millisecond

type Model struct {
	cfg       config.Config
	scanner   services.Scanner
	guard     *services.DeletionGuard
	navigator *state.Navigator
	keys      KeyMap
	styles    uiStyles
	viewport  sunburst.Viewport

	segments []sunburst.Segment
	focus    *domain.Node
	selected int

	scanning bool
	status   string
	spinner  int
	width    int
	height   int

	confirming   bool
	deleteTarget []string
	deleteInfo   services.DeleteInfo

	scanCtx context.Context
	cancel  context.CancelFunc

	volTotal uint64
	volUsed  uint64
}

func NewModel(cfg config.Config, scanner services.Scanner, guard *services.DeletionGuard, navigator *state.Navigator) Model {
	ctx, cancel := context.WithCancel(context.Background())
	viewport := sunburst.DefaultViewport()
	if cfg.MaxDepth > 0 {
		viewport.MaxDepth = cfg.MaxDepth
	}
	model := Model{
		cfg:       cfg,
		scanner:   scanner,
		guard:     guard,
		navigator: navigator,
		keys:      DefaultKeyMap(),
		styles:    stylesFor(cfg.Theme),
		viewport:  viewport,
		scanning:  true,
		status:    "Preparing scan...",
		scanCtx:   ctx,
		cancel:    cancel,
		width:     100,
		height:    30,
	}
	if provider, ok := scanner.(services.SummaryProvider); ok {
		if summary, found := provider.LastSummary(cfg.Path); found {
			model.status = fmt.Sprintf("Last scan: %s (%s)",
				humanize.IBytes(uint64(summary.SizeBytes)),
				humanize.Time(summary.ScannedAt))
		}
	}
	return model
}

func progressOf(scanner services.Scanner) services.ScanProgress {
	if provider, ok := scanner.(services.ProgressProvider); ok {
		return provider.ProgressSnapshot()
	}
	return services.ScanProgress{}
}

// ConfigProvider is implemented by models that can report their effective
// configuration back for persisting on exit.
type ConfigProvider interface {
	ConfigSnapshot() config.Config
}

func (model Model) ConfigSnapshot() config.Config {
	return model.cfg
}

func (model Model) WithStatus(status string) Model {
	model.status = status
	return model
}

func (model Model) Init() tea.Cmd {
	return tea.Batch(model.scanCmd(), model.volumeCmd(), tickCmd())
}

func (model Model) scanCmd() tea.Cmd {
	ctx := model.scanCtx
	scanner := model.scanner
	req := services.ScanRequest{RootPath: model.cfg.Path, Workers: model.cfg.Workers}
	return func() tea.Msg {
		result, err := scanner.Scan(ctx, req)
		return scanResultMsg{result: result, err: err}
	}
}

func (model Model) volumeCmd() tea.Cmd {
	path := model.cfg.Path
	return func() tea.Msg {
		usage, err := disk.Usage(path)
		if err != nil {
			return volumeMsg{err: err}
		}
		return volumeMsg{total: usage.Total, used: usage.Used}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return model.handleKey(typed)
	case tea.WindowSizeMsg:
		model.width = typed.Width
		model.height = typed.Height
		return model, nil
	case tickMsg:
		if model.scanning {
			model.spinner = (model.spinner + 1) % len(spinnerFrames)
			model.rebuild()
			return model, tickCmd()
		}
		return model, nil
	case scanResultMsg:
		model.scanning = false
		if typed.err != nil {
			if errors.Is(typed.err, domain.ErrFailedAtRoot) {
				model.status = fmt.Sprintf("Scan failed at root: %v", typed.err)
			} else {
				model.status = fmt.Sprintf("Scan failed: %v", typed.err)
			}
			return model, nil
		}
		model.rebuild()
		model.status = scanStatus(typed.result, model.focus)
		return model, nil
	case deleteResultMsg:
		model.rebuild()
		model.status = deleteStatus(typed.result, typed.err)
		return model, nil
	case volumeMsg:
		if typed.err == nil {
			model.volTotal = typed.total
			model.volUsed = typed.used
		}
		return model, nil
	default:
		return model, nil
	}
}

func scanStatus(result services.ScanResult, focus *domain.Node) string {
	total := "0 B"
	if focus != nil {
		total = humanize.IBytes(uint64(focus.SizeBytes))
	}
	switch result.Session.Outcome {
	case domain.OutcomeCancelled:
		return fmt.Sprintf("Scan cancelled - %s collected so far", total)
	default:
		return fmt.Sprintf("Scanned %s in %s", total, result.Duration.Round(time.Millisecond))
	}
}

func deleteStatus(result services.DeleteResult, err error) string {
	var partial *domain.PartialDeleteError
	switch {
	case err == nil:
		return fmt.Sprintf("Deleted %s (%d entries)", humanize.IBytes(uint64(result.FreedBytes)), result.Removed)
	case errors.As(err, &partial):
		return fmt.Sprintf("Partial delete: %d removed, %d failed - tree re-synced", partial.Removed, partial.Failed)
	case errors.Is(err, domain.ErrProtectedPath):
		return "Delete denied: path is protected"
	case errors.Is(err, domain.ErrScanRoot):
		return "Delete denied: cannot remove the scan root"
	case errors.Is(err, domain.ErrNotFound):
		return "Delete denied: entry no longer exists"
	default:
		return fmt.Sprintf("Delete failed: %v", err)
	}
}

func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.confirming {
		switch {
		case key.Matches(msg, model.keys.Confirm):
			target := model.deleteTarget
			model.confirming = false
			model.deleteTarget = nil
			model.status = "Deleting..."
			guard := model.guard
			return model, func() tea.Msg {
				result, err := guard.Execute(context.Background(), services.DeleteRequest{Path: target})
				return deleteResultMsg{result: result, err: err}
			}
		default:
			model.confirming = false
			model.deleteTarget = nil
			model.status = "Delete cancelled"
			return model, nil
		}
	}

	switch {
	case key.Matches(msg, model.keys.Quit):
		model.cancel()
		return model, tea.Quit

	case key.Matches(msg, model.keys.Prev):
		model.moveSelection(-1)
		return model, nil

	case key.Matches(msg, model.keys.Next):
		model.moveSelection(1)
		return model, nil

	case key.Matches(msg, model.keys.Drill):
		segment := model.selectedSegment()
		if segment == nil || segment.Residual {
			return model, nil
		}
		if model.navigator.DrillDown(segment.Name) {
			model.selected = 0
			model.rebuild()
		}
		return model, nil

	case key.Matches(msg, model.keys.Up):
		if model.navigator.GoUp() {
			model.selected = 0
			model.rebuild()
		}
		return model, nil

	case key.Matches(msg, model.keys.Delete):
		if model.scanning {
			model.status = "Scan in progress - cancel it before deleting"
			return model, nil
		}
		segment := model.selectedSegment()
		if segment == nil || segment.Residual {
			return model, nil
		}
		target := append(model.navigator.FocusPath(), segment.Path...)
		if err := model.guard.Authorize(target); err != nil {
			model.status = deleteStatus(services.DeleteResult{}, err)
			return model, nil
		}
		model.deleteTarget = target
		model.deleteInfo, _ = model.guard.Info(target)
		model.confirming = true
		return model, nil

	case key.Matches(msg, model.keys.Rescan):
		if model.scanning {
			return model, nil
		}
		model.cancel()
		model.scanCtx, model.cancel = context.WithCancel(context.Background())
		model.scanning = true
		model.status = "Rescanning..."
		return model, tea.Batch(model.scanCmd(), model.volumeCmd(), tickCmd())

	case key.Matches(msg, model.keys.Cancel):
		if model.scanning {
			model.cancel()
			model.status = "Cancelling..."
		}
		return model, nil
	}
	return model, nil
}

func (model *Model) moveSelection(delta int) {
	ring := sunburst.Ring(model.segments, 1)
	if len(ring) == 0 {
		model.selected = 0
		return
	}
	model.selected = (model.selected + delta + len(ring)) % len(ring)
}

func (model *Model) selectedSegment() *sunburst.Segment {
	ring := sunburst.Ring(model.segments, 1)
	if len(ring) == 0 {
		return nil
	}
	if model.selected >= len(ring) {
		model.selected = len(ring) - 1
	}
	if model.selected < 0 {
		model.selected = 0
	}
	segment := ring[model.selected]
	return &segment
}

// rebuild re-derives segments from the current tree snapshot. Always a
// full recompute: one sibling's growth shifts every other sibling's arc.
func (model *Model) rebuild() {
	model.navigator.EnsureValid()
	focus, ok := model.navigator.Focus(model.viewport.MaxDepth)
	if !ok {
		model.focus = nil
		model.segments = nil
		model.selected = 0
		return
	}
	model.focus = focus
	model.segments = sunburst.Build(focus, model.viewport)
	ring := sunburst.Ring(model.segments, 1)
	if model.selected >= len(ring) {
		model.selected = max(len(ring)-1, 0)
	}
}
