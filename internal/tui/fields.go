package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scerpa/scerpa-config/internal/domain"
	"github.com/scerpa/scerpa-config/internal/record"
)

// Tab identifies one page of the editor form
type Tab int

const (
	TabConfig Tab = iota
	TabWaveform
	TabCircuit
)

// Tabs lists the tabs in display order
func Tabs() []Tab {
	return []Tab{TabConfig, TabWaveform, TabCircuit}
}

// String returns the tab title
func (t Tab) String() string {
	switch t {
	case TabConfig:
		return "Config"
	case TabWaveform:
		return "Waveform"
	case TabCircuit:
		return "Circuit"
	default:
		return "Unknown"
	}
}

// TabForSetting maps the ui.start_tab setting to a tab
func TabForSetting(name string) Tab {
	switch strings.ToLower(name) {
	case "molecule", "waveform":
		return TabWaveform
	case "circuit":
		return TabCircuit
	default:
		return TabConfig
	}
}

type fieldKind int

const (
	kindText fieldKind = iota
	kindFloat
	kindInt
	kindSelect
	kindToggle
	kindGrid
	kindDriverSelect
	kindAction
)

// editsText reports whether the field is edited through the text input
func (k fieldKind) editsText() bool {
	switch k {
	case kindText, kindFloat, kindInt, kindGrid:
		return true
	default:
		return false
	}
}

type fieldID string

const (
	fieldImporter     fieldID = "solver.magcadImporter"
	fieldVerbosity    fieldID = "runtime.verbosity"
	fieldMoleculeName fieldID = "molecule.name"
	fieldDistance     fieldID = "molecule.intermolecularDistance"
	fieldStructure    fieldID = "circuit.structure"
	fieldDriver       fieldID = "circuit.drivers"
	fieldDriverName   fieldID = "circuit.drivers.name"
	fieldDriverValue  fieldID = "circuit.drivers.value"
	fieldStackPhase   fieldID = "stackPhase.0"
	fieldPlot1DCharge fieldID = "plotting.plot1DCharge"
	fieldOutputPath   fieldID = "plotting.outputPath"
	fieldIntermediate fieldID = "runtime.plotIntermediateSteps"
	fieldSave         fieldID = "save"
)

type field struct {
	id      fieldID
	label   string
	section string
	kind    fieldKind
}

var tabFields = map[Tab][]field{
	TabConfig: {
		{id: fieldImporter, label: "Solver Type", section: domain.SectionSolver, kind: kindSelect},
		{id: fieldVerbosity, label: "Verbosity", section: domain.SectionRuntime, kind: kindInt},
	},
	TabWaveform: {
		{id: fieldMoleculeName, label: "Molecule Name", section: domain.SectionMolecule, kind: kindText},
		{id: fieldDistance, label: "Intermolecular Distance", section: domain.SectionMolecule, kind: kindFloat},
	},
	TabCircuit: {
		{id: fieldStructure, label: "Structure", section: domain.SectionCircuit, kind: kindGrid},
		{id: fieldDriver, label: "Driver", section: domain.SectionCircuit, kind: kindDriverSelect},
		{id: fieldDriverName, label: "Driver Name", section: domain.SectionCircuit, kind: kindText},
		{id: fieldDriverValue, label: "Driver Value", section: domain.SectionCircuit, kind: kindFloat},
		{id: fieldStackPhase, label: "Stack Phase", section: domain.SectionStackPhase, kind: kindFloat},
	},
}

var plottingFields = []field{
	{id: fieldPlot1DCharge, label: "Plot 1D Charge", section: domain.SectionPlotting, kind: kindToggle},
	{id: fieldOutputPath, label: "Output Path", section: domain.SectionPlotting, kind: kindText},
	{id: fieldIntermediate, label: "Plot Intermediate Steps", section: domain.SectionRuntime, kind: kindInt},
}

var saveField = field{id: fieldSave, label: "Save Configuration", kind: kindAction}

// visibleFields returns the focus order for a tab: the tab's own fields,
// then the plotting card, then the save action.
func visibleFields(tab Tab) []field {
	fields := make([]field, 0, len(tabFields[tab])+len(plottingFields)+1)
	fields = append(fields, tabFields[tab]...)
	fields = append(fields, plottingFields...)
	return append(fields, saveField)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// fieldText renders the current record value of a text-edited field
func fieldText(r domain.Record, id fieldID, driver, cell int) string {
	switch id {
	case fieldVerbosity:
		return strconv.Itoa(r.Runtime.Verbosity)
	case fieldMoleculeName:
		return r.Molecule.Name
	case fieldDistance:
		return formatFloat(r.Molecule.IntermolecularDistance)
	case fieldStructure:
		return r.Circuit.Structure[cell]
	case fieldDriverName:
		if d, err := record.Driver(r, driver); err == nil {
			return d.Name
		}
	case fieldDriverValue:
		if d, err := record.Driver(r, driver); err == nil {
			return formatFloat(d.Value)
		}
	case fieldStackPhase:
		if len(r.StackPhase) > 0 {
			return formatFloat(r.StackPhase[0])
		}
	case fieldOutputPath:
		return r.Plotting.OutputPath
	case fieldIntermediate:
		return strconv.Itoa(r.Runtime.PlotIntermediateSteps)
	}
	return ""
}

// applyText parses input for a field and runs the matching record update.
// Parse failures are returned without touching the record.
func applyText(r domain.Record, id fieldID, input string, driver, cell int, enforceRanges bool) (domain.Record, error) {
	switch id {
	case fieldMoleculeName:
		return record.UpdateField(r, domain.SectionMolecule, "name", input)

	case fieldDistance:
		v, err := domain.ParseFloat(input).Get()
		if err != nil {
			return r, err
		}
		return record.UpdateField(r, domain.SectionMolecule, "intermolecularDistance", v)

	case fieldVerbosity:
		res := domain.ParseInt(input)
		if enforceRanges {
			res = domain.ParseIntInRange(input, record.MinVerbosity, record.MaxVerbosity)
		}
		v, err := res.Get()
		if err != nil {
			return r, err
		}
		return record.UpdateField(r, domain.SectionRuntime, "verbosity", v)

	case fieldIntermediate:
		v, err := domain.ParseInt(input).Get()
		if err != nil {
			return r, err
		}
		return record.UpdateField(r, domain.SectionRuntime, "plotIntermediateSteps", v)

	case fieldStructure:
		return record.UpdateStructure(r, cell, input)

	case fieldDriverName:
		return record.UpdateNestedField(r, domain.SectionCircuit, fmt.Sprintf("drivers.%d", driver), record.DriverFieldName, input)

	case fieldDriverValue:
		v, err := domain.ParseFloat(input).Get()
		if err != nil {
			return r, err
		}
		return record.UpdateDriver(r, driver, record.DriverFieldValue, v)

	case fieldStackPhase:
		v, err := domain.ParseFloat(input).Get()
		if err != nil {
			return r, err
		}
		return record.UpdateField(r, domain.SectionStackPhase, "0", v)

	case fieldOutputPath:
		return record.UpdateField(r, domain.SectionPlotting, "outputPath", input)
	}

	return r, fmt.Errorf("%w: %s", domain.ErrUnknownField, id)
}

// cycleImporter steps through the importer options, wrapping at both ends
func cycleImporter(current domain.Importer, step int) domain.Importer {
	options := domain.Importers()
	idx := 0
	for i, imp := range options {
		if imp == current {
			idx = i
			break
		}
	}
	idx = (idx + step + len(options)) % len(options)
	return options[idx]
}
