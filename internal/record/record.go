// Package record builds and updates configuration records.
//
// Every operation takes a record by value and returns a new one. Slices
// are copied before they are changed, so a snapshot handed out earlier
// never observes a later edit.
package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scerpa/scerpa-config/internal/domain"
)

// Default values of a fresh record
const (
	DefaultMoleculeName           = "bisfe_4"
	DefaultIntermolecularDistance = 10.0
	DefaultStructureToken         = "0"
	DefaultDriverName             = "Dr1"
	DefaultDriverValue            = -4.5
	DefaultStackPhase             = 2.0
	DefaultPlotIntermediateSteps  = -1
	DefaultVerbosity              = 2
	DefaultPlot1DCharge           = true
)

// Verbosity bounds shown by the editor
const (
	MinVerbosity = 0
	MaxVerbosity = 3
)

// Driver field names accepted by UpdateDriver
const (
	DriverFieldName  = "name"
	DriverFieldValue = "value"
)

// New returns the default configuration record
func New() domain.Record {
	r := domain.Record{
		Solver: domain.SolverConfig{
			MagcadImporter: domain.ImporterMatlab,
		},
		Molecule: domain.MoleculeConfig{
			Name:                   DefaultMoleculeName,
			IntermolecularDistance: DefaultIntermolecularDistance,
		},
		Circuit: domain.CircuitConfig{
			Drivers: []domain.Driver{{Name: DefaultDriverName, Value: DefaultDriverValue}},
		},
		StackPhase: []float64{DefaultStackPhase},
		Runtime: domain.RuntimeConfig{
			PlotIntermediateSteps: DefaultPlotIntermediateSteps,
			Verbosity:             DefaultVerbosity,
		},
		Plotting: domain.PlottingConfig{
			Plot1DCharge: DefaultPlot1DCharge,
			OutputPath:   "",
		},
	}
	for i := range r.Circuit.Structure {
		r.Circuit.Structure[i] = DefaultStructureToken
	}
	return r
}

// UpdateField replaces one field of a top-level section. Values are not
// range checked; only the Go type has to match the field.
func UpdateField(r domain.Record, section, key string, value interface{}) (domain.Record, error) {
	switch section {
	case domain.SectionSolver:
		switch key {
		case "magcadImporter":
			v, err := asImporter(value)
			if err != nil {
				return r, fieldTypeError(section, key, value)
			}
			r.Solver.MagcadImporter = v
			return r, nil
		}

	case domain.SectionMolecule:
		switch key {
		case "name":
			v, ok := value.(string)
			if !ok {
				return r, fieldTypeError(section, key, value)
			}
			r.Molecule.Name = v
			return r, nil
		case "intermolecularDistance":
			v, ok := asFloat(value)
			if !ok {
				return r, fieldTypeError(section, key, value)
			}
			r.Molecule.IntermolecularDistance = v
			return r, nil
		}

	case domain.SectionStackPhase:
		idx, err := strconv.Atoi(key)
		if err != nil {
			break
		}
		if idx < 0 || idx >= len(r.StackPhase) {
			return r, indexError("stackPhase", idx, len(r.StackPhase))
		}
		v, ok := asFloat(value)
		if !ok {
			return r, fieldTypeError(section, key, value)
		}
		phases := append([]float64(nil), r.StackPhase...)
		phases[idx] = v
		r.StackPhase = phases
		return r, nil

	case domain.SectionRuntime:
		switch key {
		case "plotIntermediateSteps", "verbosity":
			v, ok := value.(int)
			if !ok {
				return r, fieldTypeError(section, key, value)
			}
			if key == "verbosity" {
				r.Runtime.Verbosity = v
			} else {
				r.Runtime.PlotIntermediateSteps = v
			}
			return r, nil
		}

	case domain.SectionPlotting:
		switch key {
		case "plot1DCharge":
			v, ok := value.(bool)
			if !ok {
				return r, fieldTypeError(section, key, value)
			}
			r.Plotting.Plot1DCharge = v
			return r, nil
		case "outputPath":
			v, ok := value.(string)
			if !ok {
				return r, fieldTypeError(section, key, value)
			}
			r.Plotting.OutputPath = v
			return r, nil
		}
	}

	return r, fmt.Errorf("%w: %s.%s", domain.ErrUnknownField, section, key)
}

// UpdateNestedField replaces a field two levels below a section. The
// drivers of the circuit are the only nested entries; they are addressed
// as subsection "drivers.<index>".
func UpdateNestedField(r domain.Record, section, subsection, key string, value interface{}) (domain.Record, error) {
	if section == domain.SectionCircuit {
		if idxStr, ok := strings.CutPrefix(subsection, "drivers."); ok {
			idx, err := strconv.Atoi(idxStr)
			if err == nil {
				return UpdateDriver(r, idx, key, value)
			}
		}
	}
	return r, fmt.Errorf("%w: %s.%s.%s", domain.ErrUnknownField, section, subsection, key)
}

// UpdateStructure replaces the token at index of the circuit structure
func UpdateStructure(r domain.Record, index int, token string) (domain.Record, error) {
	if index < 0 || index >= domain.StructureSize {
		return r, indexError("structure", index, domain.StructureSize)
	}
	r.Circuit.Structure[index] = token
	return r, nil
}

// UpdateDriver replaces the name or the value of one driver
func UpdateDriver(r domain.Record, index int, field string, value interface{}) (domain.Record, error) {
	if index < 0 || index >= len(r.Circuit.Drivers) {
		return r, indexError("drivers", index, len(r.Circuit.Drivers))
	}

	drivers := append([]domain.Driver(nil), r.Circuit.Drivers...)
	switch field {
	case DriverFieldName:
		v, ok := value.(string)
		if !ok {
			return r, fieldTypeError("circuit.drivers", field, value)
		}
		drivers[index].Name = v
	case DriverFieldValue:
		v, ok := asFloat(value)
		if !ok {
			return r, fieldTypeError("circuit.drivers", field, value)
		}
		drivers[index].Value = v
	default:
		return r, fmt.Errorf("%w: circuit.drivers.%d.%s", domain.ErrUnknownField, index, field)
	}

	r.Circuit.Drivers = drivers
	return r, nil
}

// Driver returns the driver at index
func Driver(r domain.Record, index int) (domain.Driver, error) {
	if index < 0 || index >= len(r.Circuit.Drivers) {
		return domain.Driver{}, indexError("drivers", index, len(r.Circuit.Drivers))
	}
	return r.Circuit.Drivers[index], nil
}

// AppendDriver adds a driver at the end of the drivers sequence
func AppendDriver(r domain.Record, d domain.Driver) domain.Record {
	drivers := make([]domain.Driver, 0, len(r.Circuit.Drivers)+1)
	drivers = append(drivers, r.Circuit.Drivers...)
	r.Circuit.Drivers = append(drivers, d)
	return r
}

// RemoveDriver deletes the driver at index. At least one driver always remains.
func RemoveDriver(r domain.Record, index int) (domain.Record, error) {
	if index < 0 || index >= len(r.Circuit.Drivers) {
		return r, indexError("drivers", index, len(r.Circuit.Drivers))
	}
	if len(r.Circuit.Drivers) == 1 {
		return r, domain.ErrLastDriver
	}

	drivers := make([]domain.Driver, 0, len(r.Circuit.Drivers)-1)
	drivers = append(drivers, r.Circuit.Drivers[:index]...)
	r.Circuit.Drivers = append(drivers, r.Circuit.Drivers[index+1:]...)
	return r, nil
}

// NextDriverName proposes a name for a new driver, e.g. "Dr2"
func NextDriverName(r domain.Record) string {
	used := make(map[string]bool, len(r.Circuit.Drivers))
	for _, d := range r.Circuit.Drivers {
		used[d.Name] = true
	}
	for n := len(r.Circuit.Drivers) + 1; ; n++ {
		name := "Dr" + strconv.Itoa(n)
		if !used[name] {
			return name
		}
	}
}

// Reset restores one section to its default values
func Reset(r domain.Record, section string) (domain.Record, error) {
	def := New()
	switch section {
	case domain.SectionSolver:
		r.Solver = def.Solver
	case domain.SectionMolecule:
		r.Molecule = def.Molecule
	case domain.SectionCircuit:
		r.Circuit = def.Circuit
	case domain.SectionStackPhase:
		r.StackPhase = def.StackPhase
	case domain.SectionRuntime:
		r.Runtime = def.Runtime
	case domain.SectionPlotting:
		r.Plotting = def.Plotting
	default:
		return r, fmt.Errorf("%w: unknown section %s", domain.ErrUnknownField, section)
	}
	return r, nil
}

// Normalize fills fields a partially written record may lack so that the
// result is fully populated.
func Normalize(r domain.Record) domain.Record {
	def := New()
	if len(r.Circuit.Drivers) == 0 {
		r.Circuit.Drivers = def.Circuit.Drivers
	}
	if len(r.StackPhase) == 0 {
		r.StackPhase = def.StackPhase
	}
	return r
}

func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func asImporter(value interface{}) (domain.Importer, error) {
	switch v := value.(type) {
	case domain.Importer:
		return v, nil
	case int:
		return domain.Importer(v), nil
	default:
		return 0, domain.ErrFieldType
	}
}

func fieldTypeError(section, key string, value interface{}) error {
	return fmt.Errorf("%w: %s.%s does not accept %T", domain.ErrFieldType, section, key, value)
}

func indexError(name string, index, length int) error {
	return fmt.Errorf("%w: %s[%d] with length %d", domain.ErrIndexOutOfRange, name, index, length)
}
