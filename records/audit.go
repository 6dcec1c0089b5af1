package records

import (
	"context"
	"fmt"
	"time"

	"fairmodels/check"
	"fairmodels/metrics"
	"fairmodels/mongodb"
	"fairmodels/types"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gonum.org/v1/gonum/mat"
)

//------------------------------------------------------------------------------
// AuditRecord
//------------------------------------------------------------------------------

// GroupConfusionRecord is the stored form of one group confusion matrix.
type GroupConfusionRecord struct {
	Level string `bson:"level"`
	TP    int    `bson:"tp"`
	FP    int    `bson:"fp"`
	TN    int    `bson:"tn"`
	FN    int    `bson:"fn"`
}

// MetricRowRecord stores one metric row of the group metric matrix, scores in
// level order. NaN survives the bson round trip as a double.
type MetricRowRecord struct {
	Name   string    `bson:"name"`
	Scores []float64 `bson:"scores"`
}

// ModelResultRecord is the stored form of one model's audit result.
type ModelResultRecord struct {
	Label      string                 `bson:"label"`
	Groups     []GroupConfusionRecord `bson:"groups"`
	Metrics    []MetricRowRecord      `bson:"metrics"`
	ParityLoss []float64              `bson:"parity_loss"`
	Cutoffs    map[string]float64     `bson:"cutoffs"`
	Degenerate int                    `bson:"degenerate"`
}

// AuditRecord is the stored form of a full audit object, keyed by name.
// Loaded records re-hydrate into objects that feed back into merges as priors.
type AuditRecord struct {
	Name       string              `bson:"name"`
	Protected  []string            `bson:"protected"`
	Levels     []string            `bson:"levels"`
	Privileged string              `bson:"privileged"`
	Epsilon    float64             `bson:"epsilon"`
	Truth      []int               `bson:"truth"`
	Labels     []string            `bson:"labels"`
	Models     []ModelResultRecord `bson:"models"`
	CheckTable []metrics.CheckRow  `bson:"check_table"`
	UpdatedAt  time.Time           `bson:"updated_at"`
}

// NewAuditRecord flattens an audit object into its stored form.
func NewAuditRecord(name string, obj *check.AuditObject) *AuditRecord {
	record := &AuditRecord{
		Name:       name,
		Protected:  obj.Protected.Values,
		Levels:     obj.Protected.Levels,
		Privileged: obj.Protected.Privileged,
		Epsilon:    obj.Epsilon,
		Truth:      obj.Truth,
		Labels:     obj.Labels,
		CheckTable: obj.CheckTable,
		UpdatedAt:  time.Now().UTC(),
	}

	for _, label := range obj.Labels {
		m := obj.Models[label]
		mr := ModelResultRecord{
			Label:      m.Label,
			ParityLoss: m.ParityLoss[:],
			Cutoffs:    m.Cutoffs,
			Degenerate: m.Degenerate,
		}
		for _, lvl := range obj.Protected.Levels {
			cm := m.Groups[lvl]
			mr.Groups = append(mr.Groups, GroupConfusionRecord{
				Level: lvl, TP: cm.TP, FP: cm.FP, TN: cm.TN, FN: cm.FN,
			})
		}
		for _, metricName := range metrics.MetricNames {
			// the names come from the canonical metric table, the lookup cannot fail
			scores, _ := m.Matrix.Row(metricName)
			mr.Metrics = append(mr.Metrics, MetricRowRecord{
				Name:   metricName,
				Scores: scores,
			})
		}
		record.Models = append(record.Models, mr)
	}

	return record
}

// ToObject re-hydrates the stored record into an audit object. The level set
// is taken from the record, not re-derived from the observed values, so a
// declared-but-unobserved level keeps its column across the round trip.
func (record *AuditRecord) ToObject() (*check.AuditObject, error) {
	pa := &types.ProtectedAttribute{
		Values:     record.Protected,
		Levels:     record.Levels,
		Privileged: record.Privileged,
	}
	if len(pa.Levels) == 0 {
		return nil, fmt.Errorf("audit record %q: %w: empty level set", record.Name, types.ErrInvalidLevel)
	}
	if !pa.HasLevel(pa.Privileged) {
		return nil, fmt.Errorf("audit record %q: %w: privileged group %q is not a level",
			record.Name, types.ErrInvalidLevel, pa.Privileged)
	}

	obj := &check.AuditObject{
		Protected:  pa,
		Epsilon:    record.Epsilon,
		Truth:      record.Truth,
		Labels:     record.Labels,
		Models:     make(map[string]*check.ModelResult, len(record.Models)),
		CheckTable: record.CheckTable,
	}

	for _, mr := range record.Models {
		if len(mr.Metrics) != metrics.MetricCount || len(mr.ParityLoss) != metrics.MetricCount {
			return nil, fmt.Errorf("audit record %q: model %q has a malformed metric table",
				record.Name, mr.Label)
		}

		data := mat.NewDense(metrics.MetricCount, len(pa.Levels), nil)
		for row, metricRow := range mr.Metrics {
			if len(metricRow.Scores) != len(pa.Levels) {
				return nil, fmt.Errorf("audit record %q: model %q metric %q has %d scores for %d levels",
					record.Name, mr.Label, metricRow.Name, len(metricRow.Scores), len(pa.Levels))
			}
			data.SetRow(row, metricRow.Scores)
		}

		groups := make(map[string]metrics.ConfusionMatrix, len(mr.Groups))
		for _, g := range mr.Groups {
			groups[g.Level] = metrics.ConfusionMatrix{TP: g.TP, FP: g.FP, TN: g.TN, FN: g.FN}
		}

		result := &check.ModelResult{
			Label:      mr.Label,
			Groups:     groups,
			Matrix:     &metrics.GroupMetricMatrix{Levels: pa.Levels, Data: data},
			Cutoffs:    mr.Cutoffs,
			Degenerate: mr.Degenerate,
		}
		copy(result.ParityLoss[:], mr.ParityLoss)

		obj.Models[mr.Label] = result
	}

	return obj, nil
}

//------------------------------------------------------------------------------
// Persistence
//------------------------------------------------------------------------------

// FindAndLoadAudit fills the record from the audits collection by name.
func (record *AuditRecord) FindAndLoadAudit(name string,
	collection mongodb.CollectionAPI, l *zerolog.Logger) (bool, error) {

	auditFilter := bson.D{{Key: "name", Value: name}}
	opts := options.FindOne()

	// Set mongo context
	ctxM, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var found bool = true
	cursor := collection.FindOne(ctxM, auditFilter, opts)
	err := cursor.Decode(record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			l.Debug().Str("name", name).Msg("Audit entry not found.")
			found = false
		} else {
			l.Error().Msg("Could not retrieve audit data from MongoDB.")
			return false, err
		}
	}

	return found, nil
}

// Save upserts the record into the audits collection, keyed by name.
func (record *AuditRecord) Save(collection mongodb.CollectionAPI, l *zerolog.Logger) error {
	auditFilter := bson.D{{Key: "name", Value: record.Name}}
	opts := options.Replace().SetUpsert(true)

	// Set mongo context
	ctxM, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.ReplaceOne(ctxM, auditFilter, record, opts)
	if err != nil {
		l.Error().Str("name", record.Name).Msg("Could not save audit data to MongoDB.")
		return err
	}

	l.Debug().
		Str("name", record.Name).
		Int("models", len(record.Models)).
		Msg("Audit record saved.")

	return nil
}
