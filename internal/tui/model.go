// Package tui implements the interactive calculator: a field list on the
// left, live results on the right, recomputed in full on every input change.
package tui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fleetshift/fleetshift/internal/tco"
)

// State represents the current state of the calculator TUI.
type State int

const (
	// StateEditing indicates the user is adjusting inputs.
	StateEditing State = iota
	// StateQuitting indicates the application is exiting.
	StateQuitting
	// StateError indicates the last recalculation failed.
	StateError
)

// fieldID identifies one adjustable input row.
type fieldID int

const (
	fieldFleetSize fieldID = iota
	fieldVehicleClass
	fieldUsageProfile
	fieldAnnualMileage
	fieldUsageYears
	fieldHighwayShare
	fieldDepotShare
	fieldDieselPrice
	fieldElectricityPrice
	fieldInfrastructure
	fieldChargingPoints
	fieldDCCharging
	fieldGridUpgrade
	fieldCount
)

// Default dimensions before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
)

// keyMap defines the calculator keybindings.
type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Reset key.Binding
	Quit  key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Left, k.Right}, {k.Reset, k.Quit}}
}

// defaultKeyMap returns the calculator keybindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "select"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "select"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "decrease"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "increase"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the Bubble Tea model for the interactive calculator.
type Model struct {
	inputs  tco.Inputs
	results tco.Results

	focusedRow fieldID
	state      State
	err        error

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewModel creates a calculator model seeded with the given inputs. The
// initial results are computed immediately; the calculation is pure and fast
// enough that no loading state is needed.
func NewModel(inputs tco.Inputs) Model {
	m := Model{
		inputs: inputs,
		state:  StateEditing,
		keys:   defaultKeyMap(),
		help:   help.New(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.recalculate()
	return m
}

// Run starts the interactive calculator with the given inputs.
func Run(inputs tco.Inputs) error {
	program := tea.NewProgram(NewModel(inputs), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run calculator: %w", err)
	}
	return nil
}

// Inputs returns the current input record.
func (m Model) Inputs() tco.Inputs { return m.inputs }

// Results returns the results for the current inputs.
func (m Model) Results() tco.Results { return m.results }

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleKeyMsg processes keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = StateQuitting
		return m, tea.Quit

	case key.Matches(msg, m.keys.Reset):
		m.inputs = tco.DefaultInputs()
		m.recalculate()

	case key.Matches(msg, m.keys.Up):
		if m.focusedRow > 0 {
			m.focusedRow--
		}

	case key.Matches(msg, m.keys.Down):
		if m.focusedRow < fieldCount-1 {
			m.focusedRow++
		}

	case key.Matches(msg, m.keys.Left):
		m.adjustField(m.focusedRow, -1)

	case key.Matches(msg, m.keys.Right):
		m.adjustField(m.focusedRow, +1)
	}

	return m, nil
}

// adjustField applies one step in the given direction to a field, then
// recomputes the results. Editing the mileage, highway share or depot share
// reverts the usage profile tag to custom; selecting a profile template
// overwrites all three.
func (m *Model) adjustField(id fieldID, direction int) {
	step := float64(direction)

	switch id {
	case fieldFleetSize:
		m.inputs.FleetSize = clampInt(m.inputs.FleetSize+direction, 1, 10000)
	case fieldVehicleClass:
		m.inputs.VehicleClass = cycle(tco.VehicleClasses(), m.inputs.VehicleClass, direction)
	case fieldUsageProfile:
		next := cycle(tco.UsageProfileTypes(), m.inputs.UsageProfile, direction)
		if applied, err := m.inputs.ApplyProfile(next); err == nil {
			m.inputs = applied
		}
	case fieldAnnualMileage:
		m.inputs.AnnualMileage = clampFloat(m.inputs.AnnualMileage+step*5000, 5000, 500000)
		m.inputs.UsageProfile = tco.ProfileCustom
	case fieldUsageYears:
		m.inputs.UsageYears = clampInt(m.inputs.UsageYears+direction, 1, 20)
	case fieldHighwayShare:
		m.inputs.HighwayShare = clampShare(m.inputs.HighwayShare + step*0.05)
		m.inputs.UsageProfile = tco.ProfileCustom
	case fieldDepotShare:
		m.inputs.DepotChargingShare = clampShare(m.inputs.DepotChargingShare + step*0.05)
		m.inputs.UsageProfile = tco.ProfileCustom
	case fieldDieselPrice:
		m.inputs.DieselPrice = clampFloat(m.inputs.DieselPrice+step*0.05, 0.05, 5)
	case fieldElectricityPrice:
		m.inputs.ElectricityPrice = clampFloat(m.inputs.ElectricityPrice+step*0.01, 0.01, 2)
	case fieldInfrastructure:
		m.inputs.IncludeInfrastructure = !m.inputs.IncludeInfrastructure
	case fieldChargingPoints:
		m.inputs.ChargingPoints = clampInt(m.inputs.ChargingPoints+direction, 1, 1000)
	case fieldDCCharging:
		m.inputs.DCCharging = !m.inputs.DCCharging
	case fieldGridUpgrade:
		m.inputs.GridUpgrade = !m.inputs.GridUpgrade
	case fieldCount:
		// Unreachable sentinel.
	}

	m.recalculate()
}

// recalculate refreshes the results from the current inputs.
func (m *Model) recalculate() {
	results, err := tco.Calculate(m.inputs)
	if err != nil {
		m.err = err
		m.state = StateError
		return
	}
	m.results = results
	m.err = nil
	m.state = StateEditing
}

// cycle steps through an ordered value list, wrapping at both ends.
func cycle[T comparable](values []T, current T, direction int) T {
	index := 0
	for i, v := range values {
		if v == current {
			index = i
			break
		}
	}
	index = (index + direction + len(values)) % len(values)
	return values[index]
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func clampFloat(v, low, high float64) float64 {
	return math.Min(high, math.Max(low, v))
}

func clampShare(v float64) float64 {
	// Round away the float drift from repeated 0.05 steps.
	return clampFloat(math.Round(v*100)/100, 0, 1)
}
