// Package prommetrics exports fcago operations as Prometheus metrics.
//
// A Collector implements fcago.MetricsCollector and can be passed wherever
// one is accepted:
//
//	reg := prometheus.NewRegistry()
//	mc, err := prommetrics.New(func(o *prommetrics.Options) { o.Registerer = reg })
//	if err != nil {
//		return err
//	}
//	c, err := fcago.New(matrix, objects, attributes, fcago.WithMetricsCollector(mc))
//	res, err := grecon.Factorize(ctx, c, enumerate.NextClosure{}, func(o *grecon.Options) { o.Metrics = mc })
//
// Exported series (namespace "fcago" by default):
//
//	fcago_contexts_total{result}            counter, result is "ok" or "error"
//	fcago_context_duration_seconds          histogram
//	fcago_enumerations_total{result}        counter
//	fcago_concepts_total                    counter
//	fcago_enumerate_duration_seconds        histogram
//	fcago_covers_total{result}              counter, result is "ok", "incomplete" or "error"
//	fcago_factors_total                     counter
//	fcago_cover_uncovered_cells             gauge, cells left by the last cover
//	fcago_cover_duration_seconds            histogram
package prommetrics
