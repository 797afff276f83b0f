// Package analysis provides goodness-of-fit tools for polynomial fits.
//
// The package includes:
//
//   - [Diagnose]: residual statistics, R², RMSE and information criteria
//   - [DegreeSearch]: grid search over candidate degrees scored by a metric
//
// # Degree Selection
//
// AIC trades residual size against the number of coefficients; the degree
// with the smallest score wins:
//
//	search := analysis.NewDegreeSearch(analysis.Degrees(0, 8), analysis.MetricAIC)
//	best, all, err := search.Search(ctx, x, y, nil)
package analysis
