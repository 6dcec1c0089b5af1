package check

import "fairmodels/metrics"

//------------------------------------------------------------------------------
// Result sources
//------------------------------------------------------------------------------

// resultSource is the accessor contract shared by the two kinds of merge
// input: freshly computed model evaluations and previously built audits. The
// merge walks sources in order and concatenates what they expose, it never
// inspects which variant it is holding.
type resultSource interface {
	labels() []string
	model(label string) *ModelResult
	checkRows() []metrics.CheckRow
}

// computedSource carries results derived from the new evaluations of this
// Create call, in input order.
type computedSource struct {
	order   []string
	results map[string]*ModelResult
	rows    []metrics.CheckRow
}

func (s *computedSource) labels() []string {
	return s.order
}

func (s *computedSource) model(label string) *ModelResult {
	return s.results[label]
}

func (s *computedSource) checkRows() []metrics.CheckRow {
	return s.rows
}

// priorSource exposes the content of a previously built audit, in its stored
// order.
type priorSource struct {
	obj *AuditObject
}

func (s *priorSource) labels() []string {
	return s.obj.Labels
}

func (s *priorSource) model(label string) *ModelResult {
	return s.obj.Models[label]
}

func (s *priorSource) checkRows() []metrics.CheckRow {
	return s.obj.CheckTable
}
