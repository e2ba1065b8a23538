// Package units converts between the imperial and metric values the journal
// service stores side by side.
package units

// Conversion factors.
const (
	GramsPerOunce       = 28.3495
	MillilitersPerOunce = 29.5735
	CentimetersPerInch  = 2.54
)

// OuncesToGrams converts a mass in ounces to grams.
func OuncesToGrams(oz float64) float64 { return oz * GramsPerOunce }

// GramsToOunces converts a mass in grams to ounces.
func GramsToOunces(g float64) float64 { return g / GramsPerOunce }

// OuncesToMilliliters converts a fluid volume in ounces to milliliters.
func OuncesToMilliliters(oz float64) float64 { return oz * MillilitersPerOunce }

// MillilitersToOunces converts a fluid volume in milliliters to ounces.
func MillilitersToOunces(ml float64) float64 { return ml / MillilitersPerOunce }

// InchesToCentimeters converts a length in inches to centimeters.
func InchesToCentimeters(in float64) float64 { return in * CentimetersPerInch }

// CentimetersToInches converts a length in centimeters to inches.
func CentimetersToInches(cm float64) float64 { return cm / CentimetersPerInch }

// Pair holds one quantity in both systems.
type Pair struct {
	Imperial float64
	Metric   float64
}

// Complete fills the missing side of a pair using toMetric, or its inverse
// fromMetric. ok is false when neither side is given. When both are given
// they are returned unchanged.
func Complete(imperial, metric *float64, toMetric, fromMetric func(float64) float64) (p Pair, ok bool) {
	switch {
	case imperial != nil && metric != nil:
		return Pair{Imperial: *imperial, Metric: *metric}, true
	case imperial != nil:
		return Pair{Imperial: *imperial, Metric: toMetric(*imperial)}, true
	case metric != nil:
		return Pair{Imperial: fromMetric(*metric), Metric: *metric}, true
	default:
		return Pair{}, false
	}
}
