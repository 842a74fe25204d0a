package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"scorch/internal/domain"
	"scorch/internal/sunburst"
)

func (model Model) View() string {
	var view strings.Builder

	view.WriteString(model.renderHeader())
	view.WriteString("\n")
	view.WriteString(model.renderBreadcrumbs())
	view.WriteString("\n\n")

	if model.scanning {
		view.WriteString(model.renderProgress())
		view.WriteString("\n")
	}

	if model.focus != nil {
		view.WriteString(model.renderRings())
		view.WriteString("\n")
		view.WriteString(model.renderSelection())
		view.WriteString("\n")
	}

	if model.confirming {
		view.WriteString("\n")
		view.WriteString(model.renderConfirm())
		view.WriteString("\n")
	}

	view.WriteString("\n")
	view.WriteString(model.styles.statusStyle.Render(model.status))
	view.WriteString("\n")
	view.WriteString(model.renderFooter())
	return view.String()
}

func (model Model) renderHeader() string {
	title := model.styles.headerStyle.Render(" Scorch ")
	root := model.styles.mutedStyle.Render(model.cfg.Path)
	volume := ""
	if model.volTotal > 0 {
		volume = model.styles.mutedStyle.Render(fmt.Sprintf("  volume %s / %s used",
			humanize.IBytes(model.volUsed), humanize.IBytes(model.volTotal)))
	}
	return title + " " + root + volume
}

func (model Model) renderBreadcrumbs() string {
	crumbs := model.navigator.Breadcrumbs()
	if len(crumbs) == 0 {
		return model.styles.mutedStyle.Render("(no data yet)")
	}
	parts := make([]string, 0, len(crumbs))
	for i, crumb := range crumbs {
		label := fmt.Sprintf("%s (%s)", crumb.Name, humanize.IBytes(uint64(crumb.SizeBytes)))
		if i == len(crumbs)-1 {
			parts = append(parts, model.styles.focusStyle.Render(label))
		} else {
			parts = append(parts, model.styles.crumbStyle.Render(label))
		}
	}
	return truncate(strings.Join(parts, " › "), model.width)
}

func (model Model) renderProgress() string {
	progress := progressOf(model.scanner)
	frame := spinnerFrames[model.spinner]
	line := fmt.Sprintf("%s scanning  %d files  %d dirs  %s",
		frame, progress.Files, progress.Dirs, humanize.IBytes(uint64(progress.Bytes)))
	if progress.Errs > 0 {
		line += model.styles.warnStyle.Render(fmt.Sprintf("  %d errors", progress.Errs))
	}
	current := model.styles.mutedStyle.Render(truncate(progress.Current, model.width-2))
	return model.styles.statusStyle.Render(line) + "\n  " + current
}

// renderRings draws each depth as a horizontal band. A segment's column
// span is its angular span scaled to the bar width, so a child always
// sits directly under the stretch of its parent.
func (model Model) renderRings() string {
	barWidth := model.width - 4
	if barWidth < 16 {
		barWidth = 16
	}
	var rings strings.Builder
	for depth := 1; depth <= model.viewport.MaxDepth; depth++ {
		ring := sunburst.Ring(model.segments, depth)
		if len(ring) == 0 {
			break
		}
		rings.WriteString("  ")
		rings.WriteString(model.renderRing(ring, depth, barWidth))
		rings.WriteString("\n")
	}
	return rings.String()
}

func (model Model) renderRing(ring []sunburst.Segment, depth, barWidth int) string {
	cells := make([]string, barWidth)
	for i := range cells {
		cells[i] = " "
	}
	for index, segment := range ring {
		begin := int(segment.StartAngle / sunburst.FullCircle * float64(barWidth))
		end := int(segment.EndAngle() / sunburst.FullCircle * float64(barWidth))
		if end <= begin {
			end = begin + 1
		}
		if end > barWidth {
			end = barWidth
		}
		style := model.styles.categoryStyle(segment.Category)
		switch {
		case segment.Residual:
			style = model.styles.residual
		case segment.Protected:
			style = model.styles.protected
		}
		glyph := "█"
		if depth == 1 && index == model.selected {
			glyph = "▓"
			style = model.styles.selected
		}
		for col := begin; col < end && col < barWidth; col++ {
			cells[col] = style.Render(glyph)
		}
	}
	return strings.Join(cells, "")
}

func (model Model) renderSelection() string {
	segment := model.selectedSegment()
	if segment == nil {
		return model.styles.mutedStyle.Render("  (empty directory)")
	}
	if segment.Residual {
		return fmt.Sprintf("  %s %s",
			model.styles.residual.Render(segment.Name),
			model.styles.mutedStyle.Render(fmt.Sprintf("%s of entries too small to draw",
				humanize.IBytes(uint64(segment.SizeBytes)))))
	}
	share := segment.Sweep / sunburst.FullCircle * 100
	details := fmt.Sprintf("%s  %.1f%%  %s", humanize.IBytes(uint64(segment.SizeBytes)), share, segment.Kind)
	if segment.Kind == domain.KindFile {
		details += "  " + segment.Category.String()
	}
	if segment.State == domain.ScanPartial {
		details += "  " + model.styles.warnStyle.Render("partial")
	}
	if segment.Protected {
		details += "  " + model.styles.protected.Render("protected")
	}
	return fmt.Sprintf("  %s  %s",
		model.styles.focusStyle.Render(segment.Name),
		model.styles.mutedStyle.Render(details))
}

func (model Model) renderConfirm() string {
	target := filepath.Join(append([]string{model.cfg.Path}, model.deleteTarget...)...)
	prompt := fmt.Sprintf("Delete %s? %d items, %s will be freed. (y/n)",
		target, model.deleteInfo.Items, humanize.IBytes(uint64(model.deleteInfo.Bytes)))
	return model.styles.warnStyle.Render("  " + prompt)
}

func (model Model) renderFooter() string {
	bindings := []string{
		model.keys.Prev.Help().Key + " " + model.keys.Prev.Help().Desc,
		model.keys.Drill.Help().Key + " " + model.keys.Drill.Help().Desc,
		model.keys.Up.Help().Key + " " + model.keys.Up.Help().Desc,
		model.keys.Delete.Help().Key + " " + model.keys.Delete.Help().Desc,
		model.keys.Rescan.Help().Key + " " + model.keys.Rescan.Help().Desc,
		model.keys.Quit.Help().Key + " " + model.keys.Quit.Help().Desc,
	}
	if model.scanning {
		bindings = append(bindings, model.keys.Cancel.Help().Key+" "+model.keys.Cancel.Help().Desc)
	}
	return model.styles.mutedStyle.Render("  " + strings.Join(bindings, "  ·  "))
}

func truncate(text string, width int) string {
	if width <= 3 || len(text) <= width {
		return text
	}
	return text[:width-3] + "..."
}
