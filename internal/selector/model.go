package selector

import tea "github.com/charmbracelet/bubbletea"

// outcome records how a session ended.
type outcome int

const (
	pending outcome = iota
	confirmed
	interrupted
)

// singleModel is the Bubble Tea model behind SelectSingle.
type singleModel struct {
	title   string
	options []Option
	styles  styles
	state   singleState
	outcome outcome
}

func newSingleModel(title string, options []Option, st styles) singleModel {
	return singleModel{
		title:   title,
		options: options,
		styles:  st,
		state:   newSingleState(len(options)),
	}
}

func (m singleModel) Init() tea.Cmd { return nil }

func (m singleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.outcome != pending {
		return m, nil
	}

	for _, ev := range decodeKeys(key) {
		switch ev {
		case eventConfirm:
			m.outcome = confirmed
			return m, tea.Quit
		case eventInterrupt:
			m.outcome = interrupted
			return m, tea.Quit
		default:
			m.state = m.state.apply(ev)
		}
	}
	return m, nil
}

func (m singleModel) View() string {
	switch m.outcome {
	case confirmed:
		return renderAnswer(m.styles, m.title, []string{m.chosen().Label})
	case interrupted:
		return ""
	}
	return renderSingle(m.styles, m.title, m.options, m.state)
}

func (m singleModel) chosen() Option {
	return m.options[m.state.cursor]
}

// multiModel is the Bubble Tea model behind SelectMultiple.
type multiModel struct {
	title   string
	options []Option
	styles  styles
	state   multiState
	outcome outcome
}

func newMultiModel(title string, options []Option, st styles) multiModel {
	return multiModel{
		title:   title,
		options: options,
		styles:  st,
		state:   newMultiState(len(options)),
	}
}

func (m multiModel) Init() tea.Cmd { return nil }

func (m multiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.outcome != pending {
		return m, nil
	}

	for _, ev := range decodeKeys(key) {
		switch ev {
		case eventConfirm:
			m.outcome = confirmed
			return m, tea.Quit
		case eventInterrupt:
			m.outcome = interrupted
			return m, tea.Quit
		default:
			m.state = m.state.apply(ev)
		}
	}
	return m, nil
}

func (m multiModel) View() string {
	switch m.outcome {
	case confirmed:
		chosen := m.chosen()
		labels := make([]string, len(chosen))
		for i, o := range chosen {
			labels[i] = o.Label
		}
		return renderAnswer(m.styles, m.title, labels)
	case interrupted:
		return ""
	}
	return renderMulti(m.styles, m.title, m.options, m.state)
}

func (m multiModel) chosen() []Option {
	return m.state.selected(m.options)
}
