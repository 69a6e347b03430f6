package metricshttp

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// metricFamilyJSON is the JSON rendering of one Prometheus metric
// family, used by GET /metrics?format=json.
type metricFamilyJSON struct {
	Name    string       `json:"name"`
	Help    string       `json:"help,omitempty"`
	Type    string       `json:"type"`
	Metrics []metricJSON `json:"metrics"`
}

type metricJSON struct {
	Labels    map[string]string `json:"labels,omitempty"`
	Value     *float64          `json:"value,omitempty"`
	Count     *uint64           `json:"count,omitempty"`
	Sum       *float64          `json:"sum,omitempty"`
	Buckets   map[string]uint64 `json:"buckets,omitempty"`
	Quantiles map[string]float64 `json:"quantiles,omitempty"`
}

// gatherJSON walks registry.Gather() into the JSON shape spec.md §6
// calls for ("application/json when ?format=json"). A gather error
// aborts the whole result: no partial families are returned, and the
// handler answers 500.
func gatherJSON(gatherer prometheus.Gatherer) ([]metricFamilyJSON, error) {
	families, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}

	out := make([]metricFamilyJSON, 0, len(families))
	for _, fam := range families {
		mf := metricFamilyJSON{
			Name:    fam.GetName(),
			Help:    fam.GetHelp(),
			Type:    fam.GetType().String(),
			Metrics: make([]metricJSON, 0, len(fam.GetMetric())),
		}
		for _, m := range fam.GetMetric() {
			mf.Metrics = append(mf.Metrics, metricToJSON(m))
		}
		out = append(out, mf)
	}
	return out, nil
}

func metricToJSON(m *dto.Metric) metricJSON {
	mj := metricJSON{Labels: labelsToMap(m.GetLabel())}

	switch {
	case m.Counter != nil:
		v := m.GetCounter().GetValue()
		mj.Value = &v
	case m.Gauge != nil:
		v := m.GetGauge().GetValue()
		mj.Value = &v
	case m.Untyped != nil:
		v := m.GetUntyped().GetValue()
		mj.Value = &v
	case m.Summary != nil:
		s := m.GetSummary()
		count, sum := s.GetSampleCount(), s.GetSampleSum()
		mj.Count, mj.Sum = &count, &sum
		if qs := s.GetQuantile(); len(qs) > 0 {
			mj.Quantiles = make(map[string]float64, len(qs))
			for _, q := range qs {
				mj.Quantiles[formatFloat(q.GetQuantile())] = q.GetValue()
			}
		}
	case m.Histogram != nil:
		h := m.GetHistogram()
		count, sum := h.GetSampleCount(), h.GetSampleSum()
		mj.Count, mj.Sum = &count, &sum
		if buckets := h.GetBucket(); len(buckets) > 0 {
			mj.Buckets = make(map[string]uint64, len(buckets))
			for _, b := range buckets {
				mj.Buckets[formatFloat(b.GetUpperBound())] = b.GetCumulativeCount()
			}
		}
	}

	return mj
}

func labelsToMap(pairs []*dto.LabelPair) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p.GetName()] = p.GetValue()
	}
	return m
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
