package form

import (
	tea "charm.land/bubbletea/v2"

	"quantovale/lib/quote"
)

// Init satisfies tea.Model. Returns nil (no initial commands).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update is the bubbletea update function.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case submitResultMsg:
		m.submitting = false
		m.last = msg.state
		return m, nil
	}

	return m, nil
}

// --- Key Handling ---

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	k := msg.Key()

	if k.Code == 'c' && k.Mod == tea.ModCtrl {
		return m, tea.Quit
	}

	switch k.Code {
	case tea.KeyEscape:
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyTab:
		if k.Mod == tea.ModShift {
			m.focus = (m.focus + focusCount - 1) % focusCount
		} else {
			m.focus = (m.focus + 1) % focusCount
		}
		return m, nil
	case tea.KeyUp:
		if m.focus > 0 {
			m.focus--
		}
		return m, nil
	case tea.KeyDown:
		if m.focus < focusCount-1 {
			m.focus++
		}
		return m, nil
	}

	switch m.focus {
	case focusProduct:
		m.product = edit(m.product, k, func(string) bool { return true })
		m.controller.UpdateField(quote.FieldProduct, m.product)
	case focusYear:
		m.year = edit(m.year, k, isDigits)
		m.controller.UpdateField(quote.FieldPurchaseYear, m.year)
	case focusCondition:
		switch k.Code {
		case tea.KeyLeft:
			m.condition = (m.condition + len(quote.Conditions) - 1) % len(quote.Conditions)
		case tea.KeyRight, tea.KeySpace:
			m.condition = (m.condition + 1) % len(quote.Conditions)
		}
		m.controller.UpdateField(quote.FieldCondition, m.conditionValue())
	}
	return m, nil
}

func edit(value string, k tea.Key, accept func(string) bool) string {
	if k.Code == tea.KeyBackspace {
		if len(value) == 0 {
			return value
		}
		r := []rune(value)
		return string(r[:len(r)-1])
	}
	if k.Text != "" && accept(k.Text) {
		return value + k.Text
	}
	return value
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.Display().SubmitEnabled {
		return m, nil
	}
	m.submitting = true
	return m, m.doSubmit()
}

// --- Async Commands ---

func (m Model) doSubmit() tea.Cmd {
	ctx := m.ctx
	c := m.controller
	return func() tea.Msg {
		return submitResultMsg{state: c.Submit(ctx)}
	}
}
