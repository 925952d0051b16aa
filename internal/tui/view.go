package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fleetshift/fleetshift/internal/tco"
)

//nolint:gochecknoglobals // Shared render styles, constructed once
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	focusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	goodStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
	badStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// fieldLabels maps field rows to their display labels, in row order.
//
//nolint:gochecknoglobals // Static display table
var fieldLabels = [fieldCount]string{
	fieldFleetSize:        "Fleet size",
	fieldVehicleClass:     "Vehicle class",
	fieldUsageProfile:     "Usage profile",
	fieldAnnualMileage:    "Annual mileage",
	fieldUsageYears:       "Usage period",
	fieldHighwayShare:     "Highway share",
	fieldDepotShare:       "Depot charging",
	fieldDieselPrice:      "Diesel price",
	fieldElectricityPrice: "Electricity price",
	fieldInfrastructure:   "Infrastructure",
	fieldChargingPoints:   "Charging points",
	fieldDCCharging:       "DC fast charging",
	fieldGridUpgrade:      "Grid upgrade",
}

// View renders the current view.
func (m Model) View() string {
	switch m.state {
	case StateQuitting:
		return ""
	case StateError:
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	case StateEditing:
	}

	left := panelStyle.Render(m.renderFields())
	right := panelStyle.Render(m.renderResults())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	var b strings.Builder
	b.WriteString(titleStyle.Render("FleetShift TCO Calculator"))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderFields renders the adjustable input rows.
func (m Model) renderFields() string {
	var b strings.Builder
	for id := fieldID(0); id < fieldCount; id++ {
		marker := "  "
		label := labelStyle.Render(fmt.Sprintf("%-17s", fieldLabels[id]))
		value := valueStyle.Render(m.fieldValue(id))
		if id == m.focusedRow {
			marker = focusStyle.Render("> ")
			label = focusStyle.Render(fmt.Sprintf("%-17s", fieldLabels[id]))
		}
		b.WriteString(marker + label + value)
		if id < fieldCount-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// fieldValue renders the current value of one input row.
func (m Model) fieldValue(id fieldID) string {
	in := m.inputs
	switch id {
	case fieldFleetSize:
		return fmt.Sprintf("%d", in.FleetSize)
	case fieldVehicleClass:
		return string(in.VehicleClass)
	case fieldUsageProfile:
		return string(in.UsageProfile)
	case fieldAnnualMileage:
		return tco.FormatNumber(in.AnnualMileage) + " km"
	case fieldUsageYears:
		return fmt.Sprintf("%d years", in.UsageYears)
	case fieldHighwayShare:
		return tco.FormatPercent(in.HighwayShare * 100)
	case fieldDepotShare:
		return tco.FormatPercent(in.DepotChargingShare * 100)
	case fieldDieselPrice:
		return fmt.Sprintf("%.2f €/l", in.DieselPrice)
	case fieldElectricityPrice:
		return fmt.Sprintf("%.2f €/kWh", in.ElectricityPrice)
	case fieldInfrastructure:
		return onOff(in.IncludeInfrastructure)
	case fieldChargingPoints:
		return fmt.Sprintf("%d", in.ChargingPoints)
	case fieldDCCharging:
		return onOff(in.DCCharging)
	case fieldGridUpgrade:
		return onOff(in.GridUpgrade)
	case fieldCount:
	}
	return ""
}

// renderResults renders the live results panel.
func (m Model) renderResults() string {
	r := m.results

	savingsStyle := goodStyle
	if r.Fleet.Savings < 0 {
		savingsStyle = badStyle
	}

	rows := []struct {
		label string
		value string
	}{
		{"Diesel TCO", tco.FormatCurrency(r.Diesel.TCO)},
		{"Electric TCO", tco.FormatCurrency(r.Electric.TCO)},
		{"Diesel €/km", tco.FormatCostPerKm(r.Diesel.CostPerKm)},
		{"Electric €/km", tco.FormatCostPerKm(r.Electric.CostPerKm)},
		{"", ""},
		{"Fleet savings", savingsStyle.Render(tco.FormatCurrency(r.Fleet.Savings))},
		{"Break-even", tco.FormatYears(r.BreakEvenYears)},
		{"ROI", tco.FormatPercent(r.ROI)},
		{"CO2 saved", tco.FormatNumber(r.CO2Savings) + " t"},
	}
	if r.Infrastructure.Cost > 0 {
		rows = append(rows, struct {
			label string
			value string
		}{"Infrastructure", tco.FormatCurrency(r.Infrastructure.Cost)})
	}

	var b strings.Builder
	for i, row := range rows {
		if row.label == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-15s", row.label)))
		b.WriteString(row.value)
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
