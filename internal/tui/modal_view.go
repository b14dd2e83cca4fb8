package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JoemMastertech/cantina/internal/catalog"
	"github.com/JoemMastertech/cantina/internal/modal"
	"github.com/JoemMastertech/cantina/internal/workflow"
)

// handleModalKey routes keys while a modal owns the screen. Arrow keys
// drive the customization widgets; tab and enter drive the action row;
// esc is the backdrop click.
func (m *Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.presenter.Current()
	if d == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.presenter.HandleBackdropClick()
		return m, nil

	case key.Matches(msg, m.keys.NextAction):
		if n := len(d.Actions); n > 0 {
			m.actionCursor = (m.actionCursor + 1) % n
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.presenter.Activate(m.actionCursor)
		return m, nil
	}

	if _, ok := d.Content.(workflow.CustomizationContent); ok {
		m.handleCustomizationKey(msg)
	}
	return m, nil
}

func (m *Model) handleCustomizationKey(msg tea.KeyMsg) {
	draft := m.workflow.Draft()
	if draft == nil {
		return
	}

	switch draft.Behavior.Kind {
	case catalog.KindMixers:
		m.handleMixerKey(msg, draft)
	case catalog.KindCookingTerm:
		m.handleCookingTermKey(msg, draft)
	case catalog.KindIngredients:
		if key.Matches(msg, m.keys.CustomText) {
			m.startTyping(draft.CustomText)
		}
	}
}

func (m *Model) handleMixerKey(msg tea.KeyMsg, draft *workflow.Draft) {
	options := append([]string(nil), draft.Options...)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.optionCursor > 0 {
			m.optionCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.optionCursor < len(options)-1 {
			m.optionCursor++
		}
	case key.Matches(msg, m.keys.Increment):
		if m.optionCursor >= len(options) {
			return
		}
		option := options[m.optionCursor]
		if draft.Tier == catalog.TierBottle {
			// A rejection lands on the draft notice and renders in the modal.
			m.workflow.IncrementMixer(option)
		} else if option == workflow.OptionNone {
			m.workflow.SelectNone()
		} else {
			m.workflow.SelectSingleMixer(option)
		}
	case key.Matches(msg, m.keys.Decrement):
		if draft.Tier == catalog.TierBottle && m.optionCursor < len(options) {
			m.workflow.DecrementMixer(options[m.optionCursor])
		}
	}
}

// handleCookingTermKey keeps the selection glued to the cursor; moving
// it is choosing.
func (m *Model) handleCookingTermKey(msg tea.KeyMsg, draft *workflow.Draft) {
	terms := workflow.CookingTerms()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.termCursor > 0 {
			m.termCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.termCursor < len(terms)-1 {
			m.termCursor++
		}
	case key.Matches(msg, m.keys.CustomText):
		m.startTyping(draft.CustomText)
		return
	default:
		return
	}
	m.workflow.SelectCookingTerm(terms[m.termCursor].ID)
}

func (m *Model) startTyping(current string) {
	m.customInput.SetValue(current)
	m.customInput.Focus()
	m.typing = true
}

func (m *Model) handleTypingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.workflow.SetCustomText(strings.TrimSpace(m.customInput.Value()))
		m.typing = false
		m.customInput.Blur()
		return m, nil
	case "esc":
		m.typing = false
		m.customInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.customInput, cmd = m.customInput.Update(msg)
	return m, cmd
}

func (m *Model) renderModal(d *modal.Descriptor) string {
	var b strings.Builder

	b.WriteString(m.styles.ModalTitle.Render(d.Title))
	b.WriteString("\n\n")

	if d.Body != "" {
		b.WriteString(d.Body)
		b.WriteString("\n\n")
	}

	if _, ok := d.Content.(workflow.CustomizationContent); ok {
		b.WriteString(m.renderCustomization())
	}

	b.WriteString(m.renderActions(d.Actions))

	box := m.styles.Modal.Width(min(m.width-4, 60)).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderCustomization() string {
	draft := m.workflow.Draft()
	if draft == nil {
		return ""
	}

	var b strings.Builder
	if draft.Notice != "" {
		b.WriteString(m.styles.Error.Render(draft.Notice))
		b.WriteString("\n\n")
	}
	switch draft.Behavior.Kind {
	case catalog.KindMixers:
		b.WriteString(m.styles.Muted.Render("Acompañamientos:"))
		b.WriteString("\n")
		for i, option := range draft.Options {
			line := "  " + option
			if n := draft.Count(option); n > 0 {
				line += m.styles.Total.Render(countMark(n))
			} else if containsOption(draft.Selected, option) {
				line += m.styles.Total.Render(" ✓")
			}
			if i == m.optionCursor {
				line = m.styles.MenuSelected.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		if draft.Tier == catalog.TierBottle {
			b.WriteString(m.styles.Muted.Render("+/- ajusta cantidades"))
			b.WriteString("\n")
		}

	case catalog.KindCookingTerm:
		b.WriteString(m.styles.Muted.Render("Término de cocción:"))
		b.WriteString("\n")
		for i, term := range workflow.CookingTerms() {
			line := "  " + term.Label
			if draft.TermID == term.ID {
				line += m.styles.Total.Render(" ✓")
			}
			if i == m.termCursor {
				line = m.styles.MenuSelected.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString(m.renderCustomTextField(draft, "Guarnición"))

	case catalog.KindIngredients:
		b.WriteString(m.renderCustomTextField(draft, "Ingredientes"))
	}

	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderCustomTextField(draft *workflow.Draft, label string) string {
	var b strings.Builder
	b.WriteString(m.styles.Muted.Render(label + " (t para editar):"))
	b.WriteString("\n")
	if m.typing {
		b.WriteString(m.customInput.View())
	} else if draft.CustomText != "" {
		b.WriteString("  " + draft.CustomText)
	} else {
		b.WriteString(m.styles.Muted.Render("  sin cambios"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderActions(actions []modal.Action) string {
	if len(actions) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(actions))
	for i, action := range actions {
		style := m.styles.ButtonGhost
		if action.Variant == modal.VariantContrast || action.Variant == modal.VariantPrimary {
			style = m.styles.ButtonPrimary
		}
		if i == m.actionCursor {
			style = m.styles.ButtonFocus
		}
		rendered = append(rendered, style.Render(action.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func countMark(n int) string {
	if n == 1 {
		return " ✓"
	}
	return fmt.Sprintf(" x%d", n)
}

func containsOption(selected []string, option string) bool {
	for _, s := range selected {
		if s == option {
			return true
		}
	}
	return false
}
