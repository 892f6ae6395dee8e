package perft

import (
	"strings"

	"github.com/klauspost/cpuid/v2"
)

// Host describes the processor perft runs on.
type Host struct {
	Brand         string
	PhysicalCores int
	LogicalCores  int
	AVX2          bool
	BMI2          bool
	POPCNT        bool
}

// DetectHost returns the capabilities of the current system.
func DetectHost() Host {
	return Host{
		Brand:         cpuid.CPU.BrandName,
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  cpuid.CPU.LogicalCores,
		AVX2:          cpuid.CPU.Supports(cpuid.AVX2),
		BMI2:          cpuid.CPU.Supports(cpuid.BMI2),
		POPCNT:        cpuid.CPU.Supports(cpuid.POPCNT),
	}
}

// FeatureString returns a human-readable list of supported features.
func (h Host) FeatureString() string {
	var features []string
	if h.AVX2 {
		features = append(features, "AVX2")
	}
	if h.BMI2 {
		features = append(features, "BMI2")
	}
	if h.POPCNT {
		features = append(features, "POPCNT")
	}
	if len(features) == 0 {
		return "none"
	}
	return strings.Join(features, ", ")
}

// DefaultWorkers returns the worker count for parallel perft: one per
// logical core, at least one.
func DefaultWorkers() int {
	return max(DetectHost().LogicalCores, 1)
}
