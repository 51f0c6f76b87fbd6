package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sdvig/internal/store"
)

type createField int

const (
	fieldFigma createField = iota
	fieldName
	fieldDesc
	fieldCost
	fieldDeadline
	numFields
)

// formField maps form inputs to the names store validation reports.
var formField = [numFields]string{
	fieldName:     store.FieldName,
	fieldDesc:     store.FieldDesc,
	fieldCost:     store.FieldCost,
	fieldDeadline: store.FieldDeadline,
}

type createModel struct {
	store     *store.Store
	fields    [numFields]string
	thumbnail string
	focus     createField
	invalid   map[string]bool
	loading   bool
	frame     int
}

// prefillMsg carries the form after a design-file lookup.
type prefillMsg struct {
	url  string
	form store.ProjectForm
	err  error
}

func newCreateModel(s *store.Store) createModel {
	return createModel{store: s}
}

func (m createModel) form() store.ProjectForm {
	return store.ProjectForm{
		Name:         m.fields[fieldName],
		Desc:         m.fields[fieldDesc],
		Cost:         m.fields[fieldCost],
		Deadline:     m.fields[fieldDeadline],
		FigmaURL:     m.fields[fieldFigma],
		ThumbnailURL: m.thumbnail,
	}
}

func (m createModel) Update(msg tea.Msg) (createModel, tea.Cmd) {
	switch msg := msg.(type) {
	case prefillMsg:
		if msg.url != m.fields[fieldFigma] {
			return m, nil
		}
		m.loading = false
		if msg.err == nil {
			m.fields[fieldName] = msg.form.Name
			m.thumbnail = msg.form.ThumbnailURL
			delete(m.invalid, store.FieldName)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m createModel) updateKeys(msg tea.KeyMsg) (createModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "tab", "down", "enter":
		return m.moveFocus((m.focus + 1) % numFields)
	case "shift+tab", "up":
		return m.moveFocus((m.focus - 1 + numFields) % numFields)
	}

	f := &m.fields[m.focus]
	next := editKey(*f, msg)
	if m.focus == fieldCost {
		next = strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) {
				return r
			}
			return -1
		}, next)
	}
	*f = next
	return m, nil
}

// moveFocus leaves the current field, looking up the design file when the
// link field was just filled in.
func (m createModel) moveFocus(to createField) (createModel, tea.Cmd) {
	from := m.focus
	m.focus = to
	if from != fieldFigma || !strings.Contains(m.fields[fieldFigma], "figma.com") {
		return m, nil
	}
	m.loading = true
	s, form := m.store, m.form()
	return m, func() tea.Msg {
		got, err := s.PrefillFromDesignFile(context.Background(), form)
		return prefillMsg{url: form.FigmaURL, form: got, err: err}
	}
}

func (m createModel) submit() (createModel, tea.Cmd) {
	_, err := m.store.AddProject(m.form())
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		m.invalid = make(map[string]bool, len(verr.Fields))
		for _, f := range verr.Fields {
			m.invalid[f] = true
		}
		return m, nil
	}
	if err != nil {
		return m, nil
	}
	return newCreateModel(m.store), nil
}

func (m createModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New project") + "\n\n")

	labels := [numFields]string{"figma link", "name", "description", "cost", "deadline"}
	placeholders := [numFields]string{"https://figma.com/file/...", "Enter a name", "Enter a description", "10 000 ₽", "YYYY-MM-DD"}

	for i := createField(0); i < numFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}
		value := m.fields[i]
		var shown string
		switch {
		case i == m.focus:
			shown = normalStyle.Render(value) + accentStyle.Render("█")
		case value == "":
			shown = inputPlaceholderStyle.Render(placeholders[i])
		default:
			shown = dimStyle.Render(value)
		}
		if m.invalid[formField[i]] {
			style = errorStyle
		}
		fmt.Fprintf(&b, "%s %s: %s\n", cursor, style.Render(labels[i]), shown)
		if i == fieldFigma && m.loading {
			b.WriteString("  " + accentStyle.Render("Loading name...") + "\n")
		}
	}

	if m.thumbnail != "" {
		b.WriteString("\n" + metaStyle.Render("thumbnail: "+truncStr(m.thumbnail, 60)) + "\n")
	}
	return b.String()
}
