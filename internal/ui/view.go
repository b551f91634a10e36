package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/showcase/internal/catalog"
	"github.com/five82/showcase/internal/route"
)

const maxCardWidth = 80

// View implements tea.Model.
func (m Model) View() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(m.renderHeader(styles))
	b.WriteString("\n")
	b.WriteString(m.renderCard(styles))
	b.WriteString("\n")

	if m.prompting {
		b.WriteString(" ")
		b.WriteString(m.gotoInput.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(" ")
		b.WriteString(styles.DangerText.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(styles.Footer.Render(m.help.View(m.keys)))
	return b.String()
}

// renderHeader renders the title bar with the position in the catalog.
func (m Model) renderHeader(styles Styles) string {
	position := fmt.Sprintf("Product %d", m.state.CurrentID)
	if m.state.MaxID > 0 {
		position = fmt.Sprintf("Product %d of %d", m.state.CurrentID, m.state.MaxID)
	}

	parts := []string{
		styles.Title.Render("Showcase"),
		styles.MutedText.Render(position),
		styles.FaintText.Render(m.theme.Name),
	}
	return styles.Header.Render(strings.Join(parts, styles.FaintText.Render("  ·  ")))
}

// renderCard renders the current product, or a spinner while it loads.
func (m Model) renderCard(styles Styles) string {
	width := m.cardWidth()
	card := styles.Card.Width(width)

	p := m.state.Current
	if p == nil {
		line := fmt.Sprintf("%s Loading product %d…", m.spinner.View(), m.state.CurrentID)
		return card.Render(styles.MutedText.Render(line))
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(p.Title))
	b.WriteString("\n")
	b.WriteString(m.renderMeta(styles, p))
	b.WriteString("\n\n")

	// Padding(1, 2) takes four columns from the card.
	desc := lipgloss.NewStyle().Width(max(1, width-4)).Render(p.Description)
	b.WriteString(styles.Text.Render(desc))
	b.WriteString("\n\n")

	if p.Image != "" {
		b.WriteString(styles.FaintText.Render(p.Image))
		b.WriteString("\n")
	}
	b.WriteString(styles.AccentText.Render(route.Canonical(p.Title, p.ID)))

	return card.Render(b.String())
}

func (m Model) renderMeta(styles Styles, p *catalog.Product) string {
	parts := []string{
		styles.WarningText.Render(fmt.Sprintf("$%.2f", p.Price)),
		styles.MutedText.Render(p.Category),
	}
	if p.Rating != nil {
		parts = append(parts, styles.MutedText.Render(fmt.Sprintf("★ %.1f (%d)", p.Rating.Rate, p.Rating.Count)))
	}
	if p.Available() {
		parts = append(parts, styles.SuccessText.Render("Available"))
	} else {
		parts = append(parts, styles.DangerText.Render("Unavailable"))
	}
	return strings.Join(parts, styles.FaintText.Render(" · "))
}

func (m Model) cardWidth() int {
	if m.width <= 0 {
		return maxCardWidth
	}
	return max(20, min(maxCardWidth, m.width-2))
}
