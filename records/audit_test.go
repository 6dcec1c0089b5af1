package records

import (
	"math"
	"testing"

	"fairmodels/check"
	"fairmodels/metrics"
	"fairmodels/mongodb"
	"fairmodels/types"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuditRecordTestSuite struct {
	suite.Suite
	logger *zerolog.Logger
	object *check.AuditObject
}

func (s *AuditRecordTestSuite) SetupTest() {
	l := zerolog.Nop()
	s.logger = &l

	truth := make([]int, 20)
	probs := make([]float64, 20)
	protected := make([]string, 20)
	for i := 0; i < 20; i++ {
		if i < 10 {
			truth[i] = 1
			probs[i] = 1
			protected[i] = "A"
		} else {
			protected[i] = "B"
		}
	}

	obj, err := check.Create([]types.ModelEvaluation{
		{Label: "model_1", Truth: truth, Probabilities: probs},
	}, nil, check.Options{Protected: protected, Privileged: "A"}, s.logger)
	s.Require().NoError(err)
	s.object = obj
}

func (s *AuditRecordTestSuite) Test_RoundTrip() {
	record := NewAuditRecord("audit_1", s.object)

	// through the bson layer, as mongo would store it
	raw, err := bson.Marshal(record)
	s.Require().NoError(err)
	var loaded AuditRecord
	s.Require().NoError(bson.Unmarshal(raw, &loaded))

	obj, err := loaded.ToObject()
	s.Require().NoError(err)

	s.Equal(s.object.Labels, obj.Labels)
	s.Equal(s.object.Epsilon, obj.Epsilon)
	s.Equal(s.object.Truth, obj.Truth)
	s.True(s.object.Protected.Equal(obj.Protected))
	s.Equal(len(s.object.CheckTable), len(obj.CheckTable))

	want := s.object.Models["model_1"]
	got := obj.Models["model_1"]
	s.Require().NotNil(got)
	s.Equal(want.Groups, got.Groups)
	s.Equal(want.Cutoffs, got.Cutoffs)
	s.Equal(want.Degenerate, got.Degenerate)

	// bit-identical metric entries, NaN included
	w := want.Matrix.Data.RawMatrix().Data
	g := got.Matrix.Data.RawMatrix().Data
	s.Require().Equal(len(w), len(g))
	for i := range w {
		s.Equal(math.Float64bits(w[i]), math.Float64bits(g[i]))
	}
}

func (s *AuditRecordTestSuite) Test_RoundTrip_PriorFeedsNextMerge() {
	record := NewAuditRecord("audit_1", s.object)
	prior, err := record.ToObject()
	s.Require().NoError(err)

	eval := types.ModelEvaluation{
		Label:         "model_2",
		Truth:         s.object.Truth,
		Probabilities: make([]float64, len(s.object.Truth)),
	}
	for i, y := range eval.Truth {
		eval.Probabilities[i] = float64(y)
	}

	merged, err := check.Create([]types.ModelEvaluation{eval}, []*check.AuditObject{prior},
		check.Options{}, s.logger)
	s.Require().NoError(err)
	s.Equal([]string{"model_2", "model_1"}, merged.Labels)
	s.Len(merged.CheckTable, 2*metrics.CheckMetricCount())
}

func (s *AuditRecordTestSuite) Test_RoundTrip_KeepsUnobservedLevel() {
	// level "C" is declared but has no observed rows; its column must survive
	// the store and reload
	pa := &types.ProtectedAttribute{
		Values:     s.object.Protected.Values,
		Levels:     []string{"A", "B", "C"},
		Privileged: "A",
	}
	truth := s.object.Truth
	probs := make([]float64, len(truth))
	for i, y := range truth {
		probs[i] = float64(y)
	}
	cutoffs := map[string]float64{"A": 0.5, "B": 0.5, "C": 0.5}

	groups, err := metrics.BuildGroupConfusionMatrices(probs, truth, pa, cutoffs, s.logger)
	s.Require().NoError(err)
	matrix, err := metrics.NewGroupMetricMatrix(groups, pa.Levels)
	s.Require().NoError(err)
	loss, err := matrix.ParityLoss("A")
	s.Require().NoError(err)
	rows, err := metrics.FairnessCheckRows(matrix, "A", "model_1")
	s.Require().NoError(err)

	obj := &check.AuditObject{
		Protected: pa,
		Epsilon:   types.DefaultEpsilon,
		Truth:     truth,
		Labels:    []string{"model_1"},
		Models: map[string]*check.ModelResult{"model_1": {
			Label:      "model_1",
			Groups:     groups,
			Matrix:     matrix,
			ParityLoss: loss,
			Cutoffs:    cutoffs,
			Degenerate: matrix.NaNCount() + metrics.NaNLossCount(loss),
		}},
		CheckTable: rows,
	}

	record := NewAuditRecord("audit_1", obj)
	raw, err := bson.Marshal(record)
	s.Require().NoError(err)
	var loaded AuditRecord
	s.Require().NoError(bson.Unmarshal(raw, &loaded))

	reloaded, err := loaded.ToObject()
	s.Require().NoError(err)
	s.Equal([]string{"A", "B", "C"}, reloaded.Protected.Levels)

	got := reloaded.Models["model_1"]
	s.Require().NotNil(got)
	s.Equal([]string{"A", "B", "C"}, got.Matrix.Levels)
	s.Equal(metrics.ConfusionMatrix{}, got.Groups["C"])
}

func (s *AuditRecordTestSuite) Test_ToObject_PrivilegedNotALevel() {
	record := NewAuditRecord("audit_1", s.object)
	record.Privileged = "Z"

	_, err := record.ToObject()
	s.ErrorIs(err, types.ErrInvalidLevel)
}

func (s *AuditRecordTestSuite) Test_ToObject_MalformedMetricTable() {
	record := NewAuditRecord("audit_1", s.object)
	record.Models[0].Metrics = record.Models[0].Metrics[:3]

	_, err := record.ToObject()
	s.Error(err)
}

func (s *AuditRecordTestSuite) Test_FindAndLoadAudit() {
	stored := NewAuditRecord("audit_1", s.object)

	collection := &mongodb.MockCollection{}
	collection.On("FindOne", mock.Anything, mock.Anything, mock.Anything).
		Return(mongo.NewSingleResultFromDocument(stored, nil, nil))

	var record AuditRecord
	found, err := record.FindAndLoadAudit("audit_1", collection, s.logger)
	s.NoError(err)
	s.True(found)
	s.Equal("audit_1", record.Name)
	s.Equal([]string{"model_1"}, record.Labels)
	collection.AssertExpectations(s.T())
}

func (s *AuditRecordTestSuite) Test_FindAndLoadAudit_NotFound() {
	collection := &mongodb.MockCollection{}
	collection.On("FindOne", mock.Anything, mock.Anything, mock.Anything).
		Return(mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil))

	var record AuditRecord
	found, err := record.FindAndLoadAudit("missing", collection, s.logger)
	s.NoError(err)
	s.False(found)
}

func (s *AuditRecordTestSuite) Test_Save() {
	record := NewAuditRecord("audit_1", s.object)

	collection := &mongodb.MockCollection{}
	collection.On("ReplaceOne", mock.Anything, mock.Anything, record, mock.Anything).
		Return(&mongo.UpdateResult{UpsertedCount: 1}, nil)

	s.NoError(record.Save(collection, s.logger))
	collection.AssertExpectations(s.T())
}

func TestAuditRecordTestSuite(t *testing.T) {
	suite.Run(t, new(AuditRecordTestSuite))
}
