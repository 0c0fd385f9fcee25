// Package tui provides an interactive terminal quote wizard.
package tui

import (
	"fmt"

	"github.com/Veraticus/carquote/internal/catalog"
	"github.com/Veraticus/carquote/internal/cli"
	"github.com/Veraticus/carquote/internal/model"
	"github.com/Veraticus/carquote/internal/quote"
	"github.com/Veraticus/carquote/internal/ratetable"
	"github.com/Veraticus/carquote/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Step is a stage of the quote wizard.
type Step int

const (
	StepVehicle Step = iota
	StepDownPayment
	StepPeriod
	StepResult
)

// Config holds the wizard's dependencies.
type Config struct {
	Catalog  *catalog.Catalog
	Rates    *ratetable.Table
	Engine   *quote.Engine
	Rounding cli.Rounding
	Theme    themes.Theme
}

// Model holds the wizard state.
type Model struct {
	result       quote.Result
	err          error
	inputErr     error
	rates        *ratetable.Table
	engine       *quote.Engine
	theme        themes.Theme
	rounding     cli.Rounding
	mode         model.DownPaymentMode
	vehicles     []model.Vehicle
	vehicle      model.Vehicle
	down         model.DownPayment
	keymap       KeyMap
	help         help.Model
	vehicleTable table.Model
	downInput    textinput.Model
	step         Step
	periodCursor int
	width        int
	height       int
	quitting     bool
}

// New creates the wizard model.
func New(cfg Config) Model {
	if cfg.Engine == nil {
		cfg.Engine = quote.New()
	}
	if cfg.Rounding == "" {
		cfg.Rounding = cli.DefaultRounding
	}
	if cfg.Theme.Primary == "" {
		cfg.Theme = themes.Default
	}

	vehicles := cfg.Catalog.Vehicles()

	input := textinput.New()
	input.CharLimit = 16
	input.Width = 20

	m := Model{
		rates:        cfg.Rates,
		engine:       cfg.Engine,
		theme:        cfg.Theme,
		rounding:     cfg.Rounding,
		vehicles:     vehicles,
		keymap:       DefaultKeyMap(),
		help:         help.New(),
		vehicleTable: newVehicleTable(vehicles, cfg.Rounding, cfg.Theme),
		downInput:    input,
		mode:         model.DownPaymentPercent,
		step:         StepVehicle,
	}
	m.setInputPrompt()
	return m
}

func newVehicleTable(vehicles []model.Vehicle, rounding cli.Rounding, theme themes.Theme) table.Model {
	rows := make([]table.Row, len(vehicles))
	for i, v := range vehicles {
		rows[i] = table.Row{v.Model, v.SubModel, rounding.Money(v.Price)}
	}

	height := len(rows) + 1
	if height > 12 {
		height = 12
	}

	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Model", Width: 16},
			{Title: "Sub model", Width: 20},
			{Title: "Price", Width: 16},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithStyles(tableStyles(theme)),
	)
}

func tableStyles(theme themes.Theme) table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(theme.Primary)
	styles.Selected = theme.Selected
	return styles
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Step returns the current wizard step.
func (m Model) Step() Step {
	return m.step
}

// Result returns the last quote result, or nil before one is computed.
func (m Model) Result() quote.Result {
	return m.result
}

// Err returns the error from the last quote attempt.
func (m Model) Err() error {
	return m.err
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		// The down payment field takes free text, so q and ? are typed there.
		if m.step != StepDownPayment {
			switch {
			case key.Matches(msg, m.keymap.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keymap.ToggleHelp):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}

		switch m.step {
		case StepVehicle:
			return m.updateVehicle(msg)
		case StepDownPayment:
			return m.updateDownPayment(msg)
		case StepPeriod:
			return m.updatePeriod(msg)
		case StepResult:
			return m.updateResult(msg)
		}
	}

	if m.step == StepDownPayment {
		var cmd tea.Cmd
		m.downInput, cmd = m.downInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateVehicle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Select) {
		idx := m.vehicleTable.Cursor()
		if idx < 0 || idx >= len(m.vehicles) {
			return m, nil
		}
		m.vehicle = m.vehicles[idx]
		m.step = StepDownPayment
		m.inputErr = nil
		return m, m.downInput.Focus()
	}

	var cmd tea.Cmd
	m.vehicleTable, cmd = m.vehicleTable.Update(msg)
	return m, cmd
}

func (m Model) updateDownPayment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Back):
		m.downInput.Blur()
		m.step = StepVehicle
		return m, nil

	case key.Matches(msg, m.keymap.ToggleMode):
		if m.mode == model.DownPaymentPercent {
			m.mode = model.DownPaymentAmount
		} else {
			m.mode = model.DownPaymentPercent
		}
		m.downInput.SetValue("")
		m.inputErr = nil
		m.setInputPrompt()
		return m, nil

	case key.Matches(msg, m.keymap.Select):
		down, err := m.parseDownPayment()
		if err != nil {
			m.inputErr = err
			return m, nil
		}
		m.down = down
		m.inputErr = nil
		m.downInput.Blur()
		m.step = StepPeriod
		return m, nil
	}

	var cmd tea.Cmd
	m.downInput, cmd = m.downInput.Update(msg)
	return m, cmd
}

func (m Model) updatePeriod(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.periodCursor > 0 {
			m.periodCursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.periodCursor < len(model.AllowedPeriods)-1 {
			m.periodCursor++
		}
	case key.Matches(msg, m.keymap.Back):
		m.step = StepDownPayment
		return m, m.downInput.Focus()
	case key.Matches(msg, m.keymap.Select):
		req := model.QuoteRequest{
			DownPayment: m.down,
			Price:       m.vehicle.Price,
			Period:      model.AllowedPeriods[m.periodCursor],
		}
		m.result, m.err = m.engine.Quote(req, m.rates)
		m.step = StepResult
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Back):
		m.step = StepPeriod
	case key.Matches(msg, m.keymap.NewQuote):
		m.result, m.err = nil, nil
		m.downInput.SetValue("")
		m.step = StepVehicle
	}
	return m, nil
}

func (m Model) parseDownPayment() (model.DownPayment, error) {
	raw := m.downInput.Value()

	if m.mode == model.DownPaymentPercent {
		if raw == "" {
			if def, ok := m.rates.DefaultDownPercent(); ok {
				return model.PercentDown(def), nil
			}
		}
		v, err := cli.ParseNumber(raw)
		if err != nil {
			return model.DownPayment{}, err
		}
		if v < 0 || v > 100 {
			return model.DownPayment{}, fmt.Errorf("percentage must be between 0 and 100")
		}
		return model.PercentDown(v), nil
	}

	v, err := cli.ParseNumber(raw)
	if err != nil {
		return model.DownPayment{}, err
	}
	if v < 0 {
		return model.DownPayment{}, fmt.Errorf("amount cannot be negative")
	}
	return model.AmountDown(v), nil
}

func (m *Model) setInputPrompt() {
	if m.mode == model.DownPaymentPercent {
		m.downInput.Prompt = "Down payment (%): "
		m.downInput.Placeholder = ""
		if def, ok := m.rates.DefaultDownPercent(); ok {
			m.downInput.Placeholder = cli.Percent(def)
		}
		return
	}
	m.downInput.Prompt = "Down payment (฿): "
	m.downInput.Placeholder = "100,000"
}
