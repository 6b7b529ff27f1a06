package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mfreeman/picbind/internal/service"
	"github.com/mfreeman/picbind/internal/tui/styles"
)

// View renders the application
func (m *Model) View() string {
	switch m.state {
	case StateViewer:
		return m.viewLightbox()
	case StateConfirmClear:
		return m.viewConfirmClear()
	default:
		return m.viewBrowse()
	}
}

// DisplayReference returns the reference the operator is currently looking
// at, substituting the placeholder when the cache came up empty.
func (m *Model) DisplayReference() string {
	if m.placeholder || m.current.IsZero() {
		return service.PlaceholderReference
	}
	return m.current.Reference
}

func (m *Model) viewBrowse() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("picbind") + styles.Dim.Render("  assign photos to recipients"))
	b.WriteString("\n\n")

	// Current image
	caption := service.AttributionText(m.current)
	if m.placeholder {
		caption = service.PlaceholderCaption
	}
	frame := m.DisplayReference()
	if m.loadingImage {
		frame = "loading…"
		caption = ""
	}
	b.WriteString(styles.Frame.Render(frame))
	b.WriteString("\n")
	if caption != "" {
		b.WriteString(styles.Caption.Render(caption))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Assignment form
	formLabel := "Assign to"
	if m.pane == PaneForm {
		formLabel = "Assign to ●"
	}
	b.WriteString(styles.Label.Render(formLabel))
	b.WriteString("\n")
	b.WriteString(m.emailInput.View())
	b.WriteString("\n")
	if len(m.suggestions) > 0 && m.pane == PaneForm {
		b.WriteString(styles.Dim.Render("known: " + strings.Join(m.suggestions, ", ")))
		b.WriteString("\n")
	}

	// Status line
	if m.status != "" {
		style := styles.Status
		if m.statusErr {
			style = styles.StatusError
		}
		b.WriteString(style.Render(m.status))
	}
	b.WriteString("\n\n")

	// Gallery
	b.WriteString(m.viewGallery())

	b.WriteString("\n")
	b.WriteString(styles.Help.Render("tab focus · enter assign · C-s skip · x remove · v view · / filter · C-x clear all · C-c quit"))

	return b.String()
}

func (m *Model) viewGallery() string {
	var b strings.Builder

	galleryLabel := "Assignments"
	if m.pane == PaneGallery {
		galleryLabel = "Assignments ●"
	}
	b.WriteString(styles.Label.Render(galleryLabel))
	b.WriteString("\n")

	if m.filtering || m.filterInput.Value() != "" {
		b.WriteString("/" + m.filterInput.View())
		b.WriteString("\n")
	}

	if len(m.visible) == 0 {
		if len(m.groups) == 0 {
			b.WriteString(styles.Dim.Render("No assignments yet — assign the image above to get started."))
		} else {
			b.WriteString(styles.Dim.Render("No recipients match the filter."))
		}
		b.WriteString("\n")
		return b.String()
	}

	for ri, row := range m.rows {
		group := m.visible[row.group]
		var line string

		if row.item == -1 {
			marker := "▸"
			if m.expanded[group.Recipient] {
				marker = "▾"
			}
			line = fmt.Sprintf("%s %s %s", marker,
				styles.GroupHeader.Render(group.Recipient),
				styles.Dim.Render(fmt.Sprintf("(%d images)", group.ImageCount)))
		} else {
			line = fmt.Sprintf("    %d. %s", row.item+1, group.References[row.item])
		}

		if m.pane == PaneGallery && ri == m.cursor {
			line = styles.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) viewLightbox() string {
	ref, ok := m.viewer.Current()
	if !ok {
		return ""
	}
	pos, total := m.viewer.Position()

	content := lipgloss.JoinVertical(lipgloss.Center,
		ref,
		"",
		styles.Dim.Render(fmt.Sprintf("%d of %d", pos+1, total)),
		styles.Help.Render("←/→ navigate · esc close"),
	)

	box := styles.Lightbox.Render(content)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m *Model) viewConfirmClear() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.StatusError.Render("Clear all assignments?"),
		"",
		"This cannot be undone.",
		"",
		styles.Help.Render("y confirm · n cancel"),
	)

	box := styles.Lightbox.Render(content)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
