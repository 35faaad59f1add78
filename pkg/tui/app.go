// Package tui is the interactive week view of the planner.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/planner/pkg/dirty"
	"tableflip.dev/planner/pkg/events"
	"tableflip.dev/planner/pkg/glyph"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/state"
	"tableflip.dev/planner/pkg/store"
)

// Options configure the week view.
type Options struct {
	// Save writes dirty documents. Nil leaves changes to the caller.
	Save func(ctx context.Context) (dirty.Report, error)
	// Watcher, when set, reloads the view on changes made by other
	// processes.
	Watcher store.Watcher
	Now     func() time.Time
}

// changedMsg carries a store notification into the program.
type changedMsg struct {
	event events.Event
}

// reloadedMsg reports a document reloaded after an outside change.
type reloadedMsg struct {
	event store.Event
}

type savedMsg struct {
	report dirty.Report
	err    error
}

// App is the root bubbletea model.
type App struct {
	ctx   context.Context
	store *state.Store
	save  func(ctx context.Context) (dirty.Report, error)
	now   func() time.Time

	changes chan events.Event
	sub     events.Subscription

	day    int
	cursor int

	adding bool
	input  textinput.Model

	help     help.Model
	showHelp bool

	width  int
	height int

	status    string
	statusErr bool
}

// NewApp builds the view over st and subscribes to its change events.
// Close releases the subscription.
func NewApp(ctx context.Context, st *state.Store, opts Options) App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ti := textinput.New()
	ti.Placeholder = "new todo"
	ti.CharLimit = 500
	ti.Width = 48

	a := App{
		ctx:     ctx,
		store:   st,
		save:    opts.Save,
		now:     now,
		changes: make(chan events.Event, 64),
		input:   ti,
		help:    help.New(),
	}
	ch := a.changes
	a.sub = st.Bus().On(events.DataChanged, func(ev events.Event) {
		select {
		case ch <- ev:
		default:
			// dropped; the next redraw reads the store anyway
		}
	})
	a.day = a.todayIndex()
	return a
}

// Close unsubscribes from the store.
func (a App) Close() {
	a.store.Bus().Off(events.DataChanged, a.sub)
}

func (a App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.waitForChange())
}

func (a App) waitForChange() tea.Cmd {
	ch := a.changes
	return func() tea.Msg {
		return changedMsg{event: <-ch}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case changedMsg:
		a.clampCursor()
		switch ev := msg.event.(type) {
		case events.YearLoaded:
			if !ev.AlreadyLoaded {
				a.setStatus(fmt.Sprintf("loaded %d", ev.Year))
			}
		case events.BackupRestored:
			a.setStatus(ev.Describe())
		}
		return a, a.waitForChange()

	case reloadedMsg:
		a.clampCursor()
		name := msg.event.Document
		if name == "" {
			name = "documents"
		}
		a.setStatus(name + " changed on disk")
		return a, nil

	case savedMsg:
		if msg.err != nil {
			a.setError(msg.err)
			return a, nil
		}
		n := len(msg.report.Written)
		a.setStatus(fmt.Sprintf("saved %d document%s", n, plural(n)))
		return a, nil

	case tea.KeyMsg:
		if a.adding {
			return a.updateInput(msg)
		}
		return a.updateKeys(msg)
	}
	return a, nil
}

func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		text := strings.TrimSpace(a.input.Value())
		a.adding = false
		a.input.Reset()
		a.input.Blur()
		if text == "" {
			return a, nil
		}
		date := a.selectedDate()
		if _, err := a.store.AddTodoForDate(date, text); err != nil {
			a.setError(err)
			return a, nil
		}
		a.cursor = len(a.store.GetTodosForDate(date)) - 1
		a.setStatus("added to " + date)
		return a, nil
	case key.Matches(msg, keys.Back):
		a.adding = false
		a.input.Reset()
		a.input.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
	case key.Matches(msg, keys.PrevWeek):
		a.moveTo(-1, a.day)
	case key.Matches(msg, keys.NextWeek):
		a.moveTo(1, a.day)
	case key.Matches(msg, keys.PrevDay):
		if a.day == 0 {
			a.moveTo(-1, 6)
		} else {
			a.moveTo(0, a.day-1)
		}
		a.cursor = 0
	case key.Matches(msg, keys.NextDay):
		if a.day == 6 {
			a.moveTo(1, 0)
		} else {
			a.moveTo(0, a.day+1)
		}
		a.cursor = 0
	case key.Matches(msg, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, keys.Down):
		a.cursor++
		a.clampCursor()
	case key.Matches(msg, keys.PrevYear):
		a.loadYear(a.store.Year() - 1)
	case key.Matches(msg, keys.NextYear):
		a.loadYear(a.store.Year() + 1)
	case key.Matches(msg, keys.Today):
		today := a.now()
		if today.Year() != a.store.Year() {
			a.loadYear(today.Year())
		}
		a.store.SetWeeklyViewStart(model.MondayOf(today))
		a.day = a.todayIndex()
		a.cursor = 0
	case key.Matches(msg, keys.Add):
		a.adding = true
		cmd := a.input.Focus()
		return a, cmd
	case key.Matches(msg, keys.Toggle):
		a.toggle()
	case key.Matches(msg, keys.Delete):
		a.deleteTodo()
	case key.Matches(msg, keys.Carry):
		a.carry()
	case key.Matches(msg, keys.Mark):
		a.cycleMark()
	case key.Matches(msg, keys.Save):
		return a, a.saveCmd()
	}
	return a, nil
}

func (a App) saveCmd() tea.Cmd {
	if a.save == nil {
		return nil
	}
	ctx, save := a.ctx, a.save
	return func() tea.Msg {
		report, err := save(ctx)
		return savedMsg{report: report, err: err}
	}
}

// moveTo shifts the week cursor n weeks and selects day. The year of the
// selected date is made resident when it differs.
func (a *App) moveTo(n, day int) {
	monday := a.weekStart()
	if n != 0 {
		monday = a.store.ShiftWeek(n)
	}
	a.day = day
	if year := monday.AddDate(0, 0, day).Year(); year != a.store.Year() {
		a.loadYear(year)
		a.store.SetWeeklyViewStart(monday)
		a.day = day
	}
	a.clampCursor()
}

func (a *App) loadYear(year int) {
	if err := a.store.LoadDataForYear(a.ctx, year); err != nil {
		a.setError(err)
		return
	}
	a.day = a.todayIndex()
	a.cursor = 0
}

func (a *App) toggle() {
	date := a.selectedDate()
	todos := a.store.GetTodosForDate(date)
	if a.cursor >= len(todos) {
		return
	}
	done := !todos[a.cursor].Completed
	if err := a.store.UpdateTodoPropertyForDate(date, todos[a.cursor].ID, state.TodoUpdate{Completed: &done}); err != nil {
		a.setError(err)
	}
}

func (a *App) deleteTodo() {
	date := a.selectedDate()
	todos := a.store.GetTodosForDate(date)
	if a.cursor >= len(todos) {
		return
	}
	if err := a.store.DeleteTodoForDate(date, todos[a.cursor].ID); err != nil {
		a.setError(err)
		return
	}
	a.clampCursor()
}

// carry moves the open todos of the selected day to the next day.
func (a *App) carry() {
	from, err := model.ParseDate(a.selectedDate())
	if err != nil {
		a.setError(err)
		return
	}
	to := model.FormatDate(from.AddDate(0, 0, 1))
	moved, err := a.store.CarryOverTodos(model.FormatDate(from), to)
	if err != nil {
		a.setError(err)
		return
	}
	a.clampCursor()
	a.setStatus(fmt.Sprintf("carried %d todo%s to %s", len(moved), plural(len(moved)), to))
}

// cycleMark steps the selected day through the known marks and back to
// none.
func (a *App) cycleMark() {
	date := a.selectedDate()
	marks := glyph.SortedMarks()
	current := a.store.GetCellMark(date)
	next := marks[0].Key
	for i, g := range marks {
		if g.Key == current {
			next = ""
			if i+1 < len(marks) {
				next = marks[i+1].Key
			}
			break
		}
	}
	if err := a.store.SetCellMark(date, next); err != nil {
		a.setError(err)
	}
}

func (a *App) clampCursor() {
	n := len(a.store.GetTodosForDate(a.selectedDate()))
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(err error) {
	a.status = "ERR: " + err.Error()
	a.statusErr = true
}

func (a App) weekStart() time.Time {
	if ws := a.store.WeekStart(); !ws.IsZero() {
		return ws
	}
	return model.MondayOf(a.now())
}

func (a App) selectedDate() string {
	return model.FormatDate(a.weekStart().AddDate(0, 0, a.day))
}

// todayIndex is today's offset in the visible week, or 0 when today is
// elsewhere.
func (a App) todayIndex() int {
	today := model.FormatDate(a.now())
	ws := a.weekStart()
	for i := 0; i < 7; i++ {
		if model.FormatDate(ws.AddDate(0, 0, i)) == today {
			return i
		}
	}
	return 0
}

func (a App) View() string {
	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.renderWeek())
	b.WriteString("\n")
	b.WriteString(a.renderDay())
	b.WriteString("\n")
	b.WriteString(a.renderFooter())
	return b.String()
}

func (a App) renderHeader() string {
	ws := a.weekStart()
	title := titleStyle.Render(fmt.Sprintf("Planner %d · week of %s", a.store.Year(), model.FormatDate(ws)))
	if n := a.store.Dirty().Len(); n > 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, title, dirtyStyle.Render(fmt.Sprintf("● %d unsaved", n)))
	}
	return title
}

func (a App) renderWeek() string {
	ws := a.weekStart()
	today := model.FormatDate(a.now())
	cells := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		d := ws.AddDate(0, 0, i)
		date := model.FormatDate(d)
		label := fmt.Sprintf("%s %2d %s", d.Weekday().String()[:3], d.Day(), glyph.Mark(a.store.GetCellMark(date)))
		switch {
		case d.Year() != a.store.Year():
			label = outsideStyle.Render(label)
		case date == today:
			label = todayStyle.Render(label)
		}
		if open := countOpen(a.store.GetTodosForDate(date)); open > 0 {
			label += fmt.Sprintf(" %d", open)
		}
		style := dayStyle
		if i == a.day {
			style = activeDayStyle
		}
		cells = append(cells, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (a App) renderDay() string {
	date := a.selectedDate()
	var b strings.Builder
	b.WriteString(dayHeaderStyle.Render(date))
	if mark := a.store.GetCellMark(date); mark != "" {
		b.WriteString(" " + glyph.Mark(mark))
	}
	b.WriteString("\n")

	for _, ev := range a.store.EventsOn(date) {
		name := ev.LabelID
		style := eventStyle
		if l, ok := a.store.Label(ev.LabelID); ok {
			name = l.Name
			if l.Color != "" {
				style = style.Foreground(lipgloss.Color(l.Color))
			}
		}
		b.WriteString(style.Render("  ◆ "+name) + "\n")
	}

	todos := a.store.GetTodosForDate(date)
	if len(todos) == 0 {
		b.WriteString(outsideStyle.Render("  no todos") + "\n")
	}
	for i, t := range todos {
		line := fmt.Sprintf("%s %s", glyph.Todo(t.Completed), t.Text)
		if t.Completed {
			line = doneStyle.Render(line)
		}
		if i == a.cursor {
			b.WriteString(cursorStyle.Render("› ") + line + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}

	d := a.store.GetDiary(date)
	for _, part := range []struct{ name, text string }{{"Keep", d.Keep}, {"Problem", d.Problem}, {"Try", d.Try}} {
		if part.text != "" {
			b.WriteString(fmt.Sprintf("  %s: %s\n", eventStyle.Render(part.name), part.text))
		}
	}
	return b.String()
}

func (a App) renderFooter() string {
	var lines []string
	if a.adding {
		lines = append(lines, " "+a.input.View())
	}
	if a.status != "" {
		style := statusStyle
		if a.statusErr {
			style = errorStyle
		}
		lines = append(lines, style.Render(a.status))
	}
	lines = append(lines, helpStyle.Render(a.help.View(keys)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func countOpen(todos []model.DayTodo) int {
	n := 0
	for _, t := range todos {
		if !t.Completed {
			n++
		}
	}
	return n
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
