package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"execview/cli/api"
	"execview/cli/style"
)

// Fields is what the detail view displays. The zero value is the empty view.
type Fields struct {
	ScriptName string
	User       string
	StartTime  string
	Status     string
	Command    string
	Log        string
}

type Row struct {
	Title string
	Value string
}

// Rows lists the labeled fields in display order. The log is not a row.
func (f Fields) Rows() []Row {
	return []Row{
		{"Script name", f.ScriptName},
		{"User", f.User},
		{"Start time", f.StartTime},
		{"Status", f.Status},
		{"Command", f.Command},
	}
}

func FieldsFor(s Snapshot, loc *time.Location) Fields {
	if !s.Loaded() {
		return Fields{}
	}
	rec := s.Record
	status := rec.Status
	if rec.ExitCode != nil {
		status = FormatStatus(rec.Status, *rec.ExitCode)
	}
	return Fields{
		ScriptName: rec.Script,
		User:       rec.User,
		StartTime:  FormatStartTime(rec.StartTime, loc),
		Status:     status,
		Command:    rec.Command,
		Log:        rec.Log,
	}
}

// fieldLines is the number of lines rendered above the log block.
const fieldLines = 8

// DetailView shows the execution selected by its host. It only reads the
// resource and forwards the selected id to it.
type DetailView struct {
	res *Resource
	loc *time.Location

	input api.ID

	fields   Fields
	snap     Snapshot
	rendered uint64
	synced   bool

	viewport viewport.Model
	spinner  spinner.Model
	width    int
	height   int
}

func NewDetailView(res *Resource, loc *time.Location) *DetailView {
	if loc == nil {
		loc = time.Local
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.Primary)

	return &DetailView{
		res:      res,
		loc:      loc,
		viewport: viewport.New(0, 0),
		spinner:  s,
	}
}

func (d *DetailView) Init() tea.Cmd {
	return d.spinner.Tick
}

// SetExecutionID is the view's only input. A zero id empties the view.
func (d *DetailView) SetExecutionID(id api.ID) tea.Cmd {
	d.input = id
	cmd := d.res.SetRequestedID(id)
	d.sync()
	return cmd
}

func (d *DetailView) ExecutionID() api.ID { return d.input }

// Retry re-requests the selected execution after a failed load.
func (d *DetailView) Retry() tea.Cmd {
	snap := d.res.Snapshot()
	if d.input.IsZero() || snap.Phase != Idle || snap.Err == nil {
		return nil
	}
	cmd := d.res.SetRequestedID(d.input)
	d.sync()
	return cmd
}

func (d *DetailView) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = width
	d.viewport.Height = max(height-fieldLines, 3)
}

func (d *DetailView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case LoadedMsg:
		if d.res.Update(msg) {
			d.sync()
		}
		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return cmd

	case tea.WindowSizeMsg:
		d.SetSize(msg.Width, msg.Height)
		return nil
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

// sync rebuilds the cached fields when the resource has published a new
// version.
func (d *DetailView) sync() {
	if d.synced && d.res.Version() == d.rendered {
		return
	}
	d.snap = d.res.Snapshot()
	d.fields = FieldsFor(d.snap, d.loc)
	d.rendered = d.snap.Version
	d.synced = true
	d.viewport.SetContent(d.fields.Log)
	d.viewport.GotoTop()
}

func (d *DetailView) Fields() Fields {
	d.sync()
	return d.fields
}

func (d *DetailView) Snapshot() Snapshot {
	d.sync()
	return d.snap
}

func (d *DetailView) View() string {
	d.sync()
	var b strings.Builder
	d.writeFields(&b)
	b.WriteString(d.statusLine())
	b.WriteString("\n")
	b.WriteString(style.LogBlock(d.viewport.View(), d.width))
	return b.String()
}

// Render is the non-interactive form: no spinner, full log.
func (d *DetailView) Render(width int) string {
	d.sync()
	var b strings.Builder
	d.writeFields(&b)
	if d.snap.Err != nil {
		b.WriteString(style.ErrorLine.Render(d.snap.Err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(style.LogBlock(d.fields.Log, width))
	return b.String()
}

func (d *DetailView) writeFields(b *strings.Builder) {
	for _, row := range d.fields.Rows() {
		if row.Title == "Status" {
			b.WriteString(style.Key.Render(row.Title))
			b.WriteString(style.StatusStyle(row.Value).Render(row.Value))
		} else {
			b.WriteString(style.ReadonlyField(row.Title, row.Value))
		}
		b.WriteString("\n")
	}
}

func (d *DetailView) statusLine() string {
	switch {
	case d.snap.Phase == Pending:
		return d.spinner.View() + style.DimText.Render(fmt.Sprintf(" loading execution %s", d.snap.ID))
	case d.snap.Err != nil:
		return style.ErrorLine.Render(d.snap.Err.Error()) + style.DimText.Render("  ctrl+r to retry")
	case d.input.IsZero():
		return style.DimText.Render("no execution selected")
	default:
		return ""
	}
}
