package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/state"
)

type uploadStatus int

const (
	uploadEditing uploadStatus = iota
	uploadSending
	uploadDone
	uploadFailed
)

type uploadField struct {
	name        string
	label       string
	placeholder string
}

const uploadIngredientSlots = 6

var uploadFields = func() []uploadField {
	fields := []uploadField{
		{state.FieldTitle, "Title", "Pasta with tomato sauce"},
		{state.FieldSourceURL, "URL", "https://example.com/pasta"},
		{state.FieldImage, "Image URL", "https://example.com/pasta.jpg"},
		{state.FieldPublisher, "Publisher", "Me"},
		{state.FieldCookingTime, "Prep time", "23"},
		{state.FieldServings, "Servings", "4"},
	}
	for i := 1; i <= uploadIngredientSlots; i++ {
		n := strconv.Itoa(i)
		fields = append(fields, uploadField{
			name:        "ingredient-" + n,
			label:       "Ingredient " + n,
			placeholder: "quantity,unit,description",
		})
	}
	return fields
}()

// uploadForm is the recipe upload overlay.
type uploadForm struct {
	inputs  []textinput.Model
	focus   int
	status  uploadStatus
	message string
}

func newUploadForm(width int) uploadForm {
	inputs := make([]textinput.Model, len(uploadFields))
	for i, f := range uploadFields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = f.placeholder
		in.CharLimit = 200
		in.Width = max(min(width-30, 50), 20)
		inputs[i] = in
	}
	return uploadForm{inputs: inputs}
}

func (f *uploadForm) focusField(i int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.inputs[f.focus].Blur()
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

// values returns the form as named fields.
func (f uploadForm) values() map[string]string {
	out := make(map[string]string, len(f.inputs))
	for i, in := range f.inputs {
		out[uploadFields[i].name] = in.Value()
	}
	return out
}

// handleUploadKey processes keyboard input while the upload form is open.
func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.upload.status == uploadSending {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.showUpload = false
		m.upload = uploadForm{}
		return m, nil
	case key.Matches(msg, m.keys.SubmitForm):
		return m, m.publish(event.Event{Kind: event.Upload, Fields: m.upload.values()})
	case key.Matches(msg, m.keys.Confirm):
		if m.upload.focus == len(m.upload.inputs)-1 {
			return m, m.publish(event.Event{Kind: event.Upload, Fields: m.upload.values()})
		}
		return m, m.upload.focusField(m.upload.focus + 1)
	case key.Matches(msg, m.keys.NextField):
		return m, m.upload.focusField(m.upload.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.upload.focusField(m.upload.focus - 1)
	}

	if len(m.upload.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.upload.inputs[m.upload.focus], cmd = m.upload.inputs[m.upload.focus].Update(msg)
	return m, cmd
}

// renderUpload renders the upload form overlay.
func (m Model) renderUpload() string {
	styles := m.theme.Styles()
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted)).Width(14)
	focusLabel := labelStyle.Foreground(lipgloss.Color(m.theme.Accent)).Bold(true)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Upload recipe"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, in := range m.upload.inputs {
		if i == len(m.upload.inputs)-uploadIngredientSlots {
			b.WriteString("\n")
			b.WriteString(styles.AccentText.Bold(true).Render("Ingredients"))
			b.WriteString("\n")
		}
		label := labelStyle
		if i == m.upload.focus {
			label = focusLabel
		}
		b.WriteString(label.Render(uploadFields[i].label))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.upload.status {
	case uploadSending:
		b.WriteString(styles.MutedText.Render(m.spinner.View() + " Uploading..."))
	case uploadDone:
		b.WriteString(styles.SuccessText.Render("✓ " + m.upload.message))
	case uploadFailed:
		b.WriteString(styles.DangerText.Render("⚠ " + m.upload.message))
	default:
		b.WriteString(styles.FaintText.Render("ctrl+s upload  •  tab next field  •  esc close"))
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(max(min(m.width-4, 72), 30))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
