package opt

// Optimizer is a black-box minimizer over a bounded parameter space.
type Optimizer interface {
	// Run minimizes eval over the box [lower, upper] of the given
	// dimensionality and returns the best parameters and their cost.
	Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64)
}
