package selector

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

const (
	markerCursor   = "❯"
	markerBlank    = " "
	markerRadio    = "○"
	markerChosen   = "◉"
	markerUnchosen = "◯"
	markerDone     = "✔"
	markerQuestion = "?"
)

// styles holds the lipgloss styles for one selector session. They are bound
// to a renderer created for the selector's output so that colour support is
// detected on the writer actually used.
type styles struct {
	question lipgloss.Style
	title    lipgloss.Style
	cursor   lipgloss.Style
	neutral  lipgloss.Style
	current  lipgloss.Style
	chosen   lipgloss.Style
	desc     lipgloss.Style
	hint     lipgloss.Style
	answer   lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	// EnvColorProfile honours NO_COLOR and CLICOLOR_FORCE.
	r.SetColorProfile(termenv.NewOutput(out).EnvColorProfile())

	accent := lipgloss.AdaptiveColor{Light: "#00796B", Dark: "#00DC82"}
	return styles{
		question: r.NewStyle().Foreground(accent).Bold(true),
		title:    r.NewStyle().Bold(true),
		cursor:   r.NewStyle().Foreground(accent),
		neutral:  r.NewStyle(),
		current:  r.NewStyle().Foreground(accent),
		chosen:   r.NewStyle().Bold(true),
		desc:     r.NewStyle().Faint(true),
		hint:     r.NewStyle().Faint(true).Italic(true),
		answer:   r.NewStyle().Foreground(accent),
	}
}

// labelStyle picks the checkbox label decoration: bold when chosen,
// underlined when under the cursor, both when both apply.
func (st styles) labelStyle(chosen, current bool) lipgloss.Style {
	s := st.neutral
	if chosen {
		s = st.chosen
	}
	if current {
		s = s.Underline(true)
	}
	return s
}

func labelWidth(options []Option) int {
	w := 0
	for _, o := range options {
		w = max(w, runewidth.StringWidth(o.Label))
	}
	return w
}

// gapAfter returns the padding that aligns descriptions after label.
func gapAfter(label string, width int) string {
	return strings.Repeat(" ", max(0, width-runewidth.StringWidth(label)))
}

func (st styles) header(b *strings.Builder, title string) {
	b.WriteString(st.question.Render(markerQuestion))
	b.WriteString(" ")
	b.WriteString(st.title.Render(title))
	b.WriteString("\n")
}

func (st styles) description(b *strings.Builder, o Option, gap string) {
	if o.Description == "" {
		return
	}
	b.WriteString(gap)
	b.WriteString("  ")
	b.WriteString(st.desc.Render(o.Description))
}

func renderSingle(st styles, title string, options []Option, s singleState) string {
	var b strings.Builder
	st.header(&b, title)

	width := labelWidth(options)
	for i, o := range options {
		if i == s.cursor {
			b.WriteString(st.cursor.Render(markerCursor + " " + markerChosen))
			b.WriteString(" ")
			b.WriteString(st.current.Render(o.Label))
		} else {
			b.WriteString(markerBlank + " " + markerRadio + " ")
			b.WriteString(st.neutral.Render(o.Label))
		}
		st.description(&b, o, gapAfter(o.Label, width))
		b.WriteString("\n")
	}
	b.WriteString(st.hint.Render("↑/↓ move • enter confirm"))
	b.WriteString("\n")
	return b.String()
}

func renderMulti(st styles, title string, options []Option, s multiState) string {
	var b strings.Builder
	st.header(&b, title)

	width := labelWidth(options)
	for i, o := range options {
		current := i == s.cursor
		chosen := s.chosen[i]

		if current {
			b.WriteString(st.cursor.Render(markerCursor))
		} else {
			b.WriteString(markerBlank)
		}
		b.WriteString(" ")
		if chosen {
			b.WriteString(st.current.Render(markerChosen))
		} else {
			b.WriteString(markerUnchosen)
		}
		b.WriteString(" ")

		b.WriteString(st.labelStyle(chosen, current).Render(o.Label))
		st.description(&b, o, gapAfter(o.Label, width))
		b.WriteString("\n")
	}
	b.WriteString(st.hint.Render("↑/↓ move • space toggle • enter confirm"))
	b.WriteString("\n")
	return b.String()
}

// renderAnswer is the single line left on screen once a selector resolves.
func renderAnswer(st styles, title string, labels []string) string {
	answer := "none"
	if len(labels) > 0 {
		answer = strings.Join(labels, ", ")
	}
	return st.answer.Render(markerDone) + " " + st.title.Render(title) + " " + st.answer.Render(answer) + "\n"
}
