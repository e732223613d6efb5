package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"execview/cli/api"
	"execview/cli/history"
	"execview/cli/style"
)

var browseCmd = &cobra.Command{
	Use:   "browse [execution-id...]",
	Short: "Interactively view executions by id",
	Long: `Opens a full-screen view of one execution at a time.

Type an id and press enter to load it, ctrl+x to clear the view, tab and
shift+tab to cycle through ids given on the command line, ctrl+r to retry
a failed load, esc or ctrl+c to quit.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ids := make([]api.ID, 0, len(args))
	for _, a := range args {
		if id := api.ParseID(a); !id.IsZero() {
			ids = append(ids, id)
		}
	}

	res := history.NewResource(client, logger)
	defer res.Close()

	p := tea.NewProgram(newBrowseModel(history.NewDetailView(res, loc), ids), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// headerLines is the space taken above the detail view.
const headerLines = 4

type browseModel struct {
	view   *history.DetailView
	input  textinput.Model
	ids    []api.ID
	cursor int
}

func newBrowseModel(view *history.DetailView, ids []api.ID) browseModel {
	ti := textinput.New()
	ti.Prompt = style.InputPrompt.Render("id ")
	ti.Placeholder = "execution id"
	ti.CharLimit = 128
	ti.Focus()

	return browseModel{
		view:   view,
		input:  ti,
		ids:    ids,
		cursor: -1,
	}
}

func (m browseModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.view.Init()}
	if len(m.ids) > 0 {
		cmds = append(cmds, func() tea.Msg { return selectMsg{index: 0} })
	}
	return tea.Batch(cmds...)
}

// selectMsg picks one of the command-line ids.
type selectMsg struct{ index int }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			id := api.ParseID(m.input.Value())
			m.input.SetValue("")
			m.cursor = indexOf(m.ids, id)
			return m, m.view.SetExecutionID(id)
		case "ctrl+x":
			m.cursor = -1
			return m, m.view.SetExecutionID("")
		case "tab":
			return m.step(1)
		case "shift+tab":
			return m.step(-1)
		case "ctrl+r":
			return m, m.view.Retry()
		case "up", "down", "pgup", "pgdown":
			return m, m.view.Update(msg)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case selectMsg:
		if msg.index < 0 || msg.index >= len(m.ids) {
			return m, nil
		}
		m.cursor = msg.index
		return m, m.view.SetExecutionID(m.ids[msg.index])

	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-8, 10)
		m.view.SetSize(msg.Width, msg.Height-headerLines)
		return m, nil

	case history.LoadedMsg:
		return m, m.view.Update(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, tea.Batch(cmd, m.view.Update(msg))
}

func (m browseModel) step(delta int) (tea.Model, tea.Cmd) {
	if len(m.ids) == 0 {
		return m, nil
	}
	next := m.cursor + delta
	if m.cursor < 0 && delta < 0 {
		next = len(m.ids) - 1
	}
	next = (next%len(m.ids) + len(m.ids)) % len(m.ids)
	return m.Update(selectMsg{index: next})
}

func (m browseModel) View() string {
	current := style.DimText.Render("none")
	if id := m.view.ExecutionID(); !id.IsZero() {
		current = style.Bold.Render(id.String())
	}
	position := ""
	if m.cursor >= 0 && len(m.ids) > 1 {
		position = style.DimText.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.ids)))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		style.Banner.Render("⚡ EXECUTION"),
		"  ",
		current,
		position,
		"  ",
		style.DimText.Render("enter load • ctrl+x clear • tab next • esc quit"),
	)

	return header + "\n" + m.input.View() + "\n\n" + m.view.View()
}

func indexOf(ids []api.ID, id api.ID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
