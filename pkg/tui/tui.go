// Package tui provides a terminal user interface for tabs2notes
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/james-see/tabs2notes/pkg/converter"
	"github.com/james-see/tabs2notes/pkg/converter/instruments"
	"github.com/james-see/tabs2notes/pkg/notes"
)

// Fretboard color scheme: rosewood and brass
var (
	brass     = lipgloss.Color("#D4A017")
	ivory     = lipgloss.Color("#FFFFF0")
	steelGray = lipgloss.Color("#A9A9A9")
	rosewood  = lipgloss.Color("#3B1F1A")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(brass).
			Background(rosewood).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(steelGray).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(brass).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(ivory).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(brass).
			Bold(true)

	notesStyle = lipgloss.NewStyle().
			Foreground(ivory)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(brass).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateFilePicker
	StateConverting
	StateResult
)

// MenuItem represents a menu option
type MenuItem struct {
	Title       string
	Description string
	Instrument  string
	ToFormat    converter.Format
}

var menuItems = []MenuItem{
	{Title: "BASS → NOTES", Description: "Read a 4-string bass tablature as note names", Instrument: instruments.Bass4ID, ToFormat: converter.FormatNotes},
	{Title: "GUITAR → NOTES", Description: "Read a 6-string guitar tablature as note names", Instrument: instruments.Guitar6ID, ToFormat: converter.FormatNotes},
	{Title: "BASS → MIDI", Description: "Write a 4-string bass tablature to a MIDI file", Instrument: instruments.Bass4ID, ToFormat: converter.FormatMIDI},
	{Title: "GUITAR → MIDI", Description: "Write a 6-string guitar tablature to a MIDI file", Instrument: instruments.Guitar6ID, ToFormat: converter.FormatMIDI},
	{Title: "Exit", Description: "Exit the application"},
}

var tabTypes = []string{".tab", ".txt"}

// Model represents the TUI model
type Model struct {
	state        State
	menuIndex    int
	naming       notes.Language
	transpose    int
	filePicker   filepicker.Model
	spinner      spinner.Model
	selectedFile string
	outputFile   string
	outputSize   int
	rendered     string
	conversion   MenuItem
	err          error
	width        int
	height       int
}

// conversionDoneMsg signals conversion completion
type conversionDoneMsg struct {
	outputFile string
	outputSize int
	rendered   string
	err        error
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick)
}

// New creates a new TUI model
func New() Model {
	fp := filepicker.New()
	fp.AllowedTypes = tabTypes
	fp.CurrentDirectory, _ = os.Getwd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(brass)

	return Model{
		state:      StateMenu,
		naming:     converter.DefaultNaming,
		filePicker: fp,
		spinner:    s,
	}
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The file picker needs to receive all messages
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.state = StateConverting
			return m, tea.Batch(m.spinner.Tick, m.performConversion())
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filePicker.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case conversionDoneMsg:
		m.state = StateResult
		m.outputFile = msg.outputFile
		m.outputSize = msg.outputSize
		m.rendered = msg.rendered
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "n":
		m.naming = notes.Languages[(int(m.naming)+1)%len(notes.Languages)]
	case "+", "=":
		m.transpose++
	case "-":
		m.transpose--
	case "enter":
		if m.menuIndex == len(menuItems)-1 {
			return m, tea.Quit
		}
		m.conversion = menuItems[m.menuIndex]
		m.state = StateFilePicker
		m.filePicker.AllowedTypes = tabTypes
		return m, m.filePicker.Init()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateMenu
		m.err = nil
		m.selectedFile = ""
		m.outputFile = ""
		m.rendered = ""
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) performConversion() tea.Cmd {
	conversion, path := m.conversion, m.selectedFile
	naming, transpose := m.naming, m.transpose

	return func() tea.Msg {
		return convert(conversion, path, naming, transpose)
	}
}

func convert(item MenuItem, path string, naming notes.Language, transpose int) conversionDoneMsg {
	inst, err := instruments.Lookup(item.Instrument)
	if err != nil {
		return conversionDoneMsg{err: err}
	}
	conv := converter.New(inst, converter.WithNaming(naming), converter.WithTranspose(transpose))

	data, err := os.ReadFile(path)
	if err != nil {
		return conversionDoneMsg{err: err}
	}

	if item.ToFormat == converter.FormatNotes {
		res, err := conv.Notes(data)
		if err != nil {
			return conversionDoneMsg{err: err}
		}
		return conversionDoneMsg{rendered: res.String()}
	}

	result, err := conv.TabToMIDI(data)
	if err != nil {
		return conversionDoneMsg{err: err}
	}

	outputFile := strings.TrimSuffix(path, filepath.Ext(path)) + ".mid"
	if err := os.WriteFile(outputFile, result, 0644); err != nil {
		return conversionDoneMsg{err: err}
	}
	return conversionDoneMsg{outputFile: outputFile, outputSize: len(result)}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateFilePicker:
		s.WriteString(m.viewFilePicker())
	case StateConverting:
		s.WriteString(m.viewConverting())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • n: naming • +/-: transpose • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT CONVERSION "))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(ivory).PaddingLeft(4).Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	s.WriteString(statusStyle.Render(fmt.Sprintf("Naming: %s  Transpose: %+d", m.naming, m.transpose)))

	return boxStyle.Render(s.String())
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf(" SELECT %s TABLATURE ", strings.ToUpper(m.conversion.Instrument))))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back to menu"))

	return s.String()
}

func (m Model) viewConverting() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" CONVERTING "))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Converting %s...\n", m.spinner.View(), filepath.Base(m.selectedFile)))
	s.WriteString(statusStyle.Render(fmt.Sprintf("  %s → %s", m.conversion.Instrument, m.conversion.ToFormat)))

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	switch {
	case m.err != nil:
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ Conversion failed: %s", m.err.Error())))
	case m.outputFile != "":
		s.WriteString(titleStyle.Render(" SUCCESS "))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render("✓ Conversion complete!"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Input:  %s\n", filepath.Base(m.selectedFile)))
		s.WriteString(fmt.Sprintf("Output: %s (%s)", filepath.Base(m.outputFile), humanize.Bytes(uint64(m.outputSize))))
	default:
		s.WriteString(titleStyle.Render(fmt.Sprintf(" NOTES (%s) ", m.naming)))
		s.WriteString("\n\n")
		s.WriteString(notesStyle.Render(m.rendered))
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
  _        _        ___               _
 | |_ __ _| |__ ___|_  )_ _  ___ | |_ ___ ___
 |  _/ _' | '_ (_-< / /| ' \/ _ \|  _/ -_|_-<
  \__\__,_|_.__/__//___|_||_\___/ \__\___/__/
`
	return lipgloss.NewStyle().Foreground(brass).Render(logo)
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
