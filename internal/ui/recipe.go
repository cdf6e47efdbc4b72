package ui

import (
	"fmt"
	"strings"
)

// renderRecipe renders the recipe panel.
func (m Model) renderRecipe(width, height int) string {
	focused := m.focus == paneRecipe
	title := "Recipe"
	if m.recipeState == panelReady && m.recipe.Title != "" {
		title = m.recipe.Title
	}

	var content string
	if m.recipeState == panelLoading {
		bg := NewBgStyle(m.panelBackground(focused))
		styles := m.theme.Styles().WithBackground(m.panelBackground(focused))
		content = bg.Render(m.spinner.View()+" Loading recipe...", styles.MutedText)
	} else {
		content = m.recipeViewport.View()
	}
	return m.renderTitledBox(title, content, width, height, focused)
}

// refreshRecipe rebuilds the viewport content; top scrolls back to the start.
func (m *Model) refreshRecipe(top bool) {
	if !m.ready {
		return
	}
	m.recipeViewport.SetContent(m.renderRecipeContent(m.recipeViewport.Width))
	if top {
		m.recipeViewport.GotoTop()
	}
}

// renderRecipeContent renders the recipe body for the viewport.
func (m Model) renderRecipeContent(width int) string {
	bgColor := m.panelBackground(m.focus == paneRecipe)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)

	switch m.recipeState {
	case panelEmpty:
		return strings.Join(styledLines(wrap(m.recipeText, width), bg, styles.MutedText), "\n")
	case panelError:
		return strings.Join(styledLines(wrap("⚠ "+m.recipeText, width), bg, styles.DangerText), "\n")
	case panelLoading:
		return ""
	}

	r := m.recipe
	var b strings.Builder

	b.WriteString(bg.Render(r.Title, styles.AccentText.Bold(true)))
	if r.UserGenerated() {
		b.WriteString(bg.Space())
		b.WriteString(styles.BadgeStyle("user").Render("USER"))
	}
	if r.Bookmarked {
		b.WriteString(bg.Space())
		b.WriteString(styles.BadgeStyle("bookmarked").Render("BOOKMARKED"))
	}
	b.WriteString("\n")
	if r.Publisher != "" {
		b.WriteString(bg.Render("by "+r.Publisher, styles.MutedText))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(bg.Render(fmt.Sprintf("%d", r.CookingTime), styles.Text.Bold(true)))
	b.WriteString(bg.Render(" minutes", styles.MutedText))
	b.WriteString(bg.Spaces(4))
	b.WriteString(bg.Render(fmt.Sprintf("%d", r.Servings), styles.Text.Bold(true)))
	b.WriteString(bg.Render(" servings", styles.MutedText))
	b.WriteString(bg.Spaces(2))
	b.WriteString(bg.Render("(+/-)", styles.FaintText))
	b.WriteString("\n\n")

	b.WriteString(bg.Render("Recipe ingredients", styles.WarningText.Bold(true)))
	b.WriteString("\n")
	if len(r.Ingredients) == 0 {
		b.WriteString(bg.Render("  No ingredients listed", styles.FaintText))
		b.WriteString("\n")
	}
	for _, ing := range r.Ingredients {
		for i, line := range wrap(formatIngredient(ing), max(width-4, 10)) {
			marker := "  "
			if i == 0 {
				marker = "✓ "
			}
			b.WriteString(bg.Spaces(2))
			b.WriteString(bg.Render(marker, styles.SuccessText))
			b.WriteString(bg.Render(line, styles.Text))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(bg.Render("How to cook it", styles.WarningText.Bold(true)))
	b.WriteString("\n")
	publisher := r.Publisher
	if publisher == "" {
		publisher = "its publisher"
	}
	directions := fmt.Sprintf("This recipe was carefully designed and tested by %s. Check out directions at their website:", publisher)
	for _, line := range wrap(directions, width) {
		b.WriteString(bg.Render(line, styles.MutedText))
		b.WriteString("\n")
	}
	if r.SourceURL != "" {
		b.WriteString(bg.Render(r.SourceURL, styles.InfoText.Underline(true)))
		b.WriteString("\n")
	}

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = bg.FillLine(line, width)
	}
	return strings.Join(lines, "\n")
}
