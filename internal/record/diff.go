package record

import (
	"fmt"
	"math"

	"github.com/scerpa/scerpa-config/internal/domain"
)

// Diff lists the dotted paths of fields that differ between a and b
func Diff(a, b domain.Record) []string {
	var changed []string
	add := func(path string, differs bool) {
		if differs {
			changed = append(changed, path)
		}
	}

	add("solver.magcadImporter", a.Solver.MagcadImporter != b.Solver.MagcadImporter)
	add("molecule.name", a.Molecule.Name != b.Molecule.Name)
	add("molecule.intermolecularDistance", !sameFloat(a.Molecule.IntermolecularDistance, b.Molecule.IntermolecularDistance))

	for i := range a.Circuit.Structure {
		add(fmt.Sprintf("circuit.structure.%d", i), a.Circuit.Structure[i] != b.Circuit.Structure[i])
	}

	if len(a.Circuit.Drivers) != len(b.Circuit.Drivers) {
		changed = append(changed, "circuit.drivers")
	} else {
		for i := range a.Circuit.Drivers {
			add(fmt.Sprintf("circuit.drivers.%d.name", i), a.Circuit.Drivers[i].Name != b.Circuit.Drivers[i].Name)
			add(fmt.Sprintf("circuit.drivers.%d.value", i), !sameFloat(a.Circuit.Drivers[i].Value, b.Circuit.Drivers[i].Value))
		}
	}

	if len(a.StackPhase) != len(b.StackPhase) {
		changed = append(changed, "stackPhase")
	} else {
		for i := range a.StackPhase {
			add(fmt.Sprintf("stackPhase.%d", i), !sameFloat(a.StackPhase[i], b.StackPhase[i]))
		}
	}

	add("runtime.plotIntermediateSteps", a.Runtime.PlotIntermediateSteps != b.Runtime.PlotIntermediateSteps)
	add("runtime.verbosity", a.Runtime.Verbosity != b.Runtime.Verbosity)
	add("plotting.plot1DCharge", a.Plotting.Plot1DCharge != b.Plotting.Plot1DCharge)
	add("plotting.outputPath", a.Plotting.OutputPath != b.Plotting.OutputPath)

	return changed
}

// Equal reports whether two records hold the same values
func Equal(a, b domain.Record) bool {
	return len(Diff(a, b)) == 0
}

// sameFloat treats two NaNs as equal so an unchanged NaN is not reported
func sameFloat(x, y float64) bool {
	return x == y || (math.IsNaN(x) && math.IsNaN(y))
}
