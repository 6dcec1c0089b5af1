package activities

import (
	"testing"

	"fairmodels/check"
	"fairmodels/mongodb"
	"fairmodels/records"
	"fairmodels/types"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.temporal.io/sdk/testsuite"
)

type ActivitiesTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env        *testsuite.TestActivityEnvironment
	app        *types.App
	collection *mongodb.MockCollection
	logger     *zerolog.Logger
}

func (s *ActivitiesTestSuite) SetupTest() {
	l := zerolog.Nop()
	s.logger = &l

	mockDb := mongodb.NewMockClient(types.DefaultMongodbUri, s.logger)
	s.collection = &mongodb.MockCollection{}
	mockDb.On("GetCollection", types.AuditsCollection).Return(s.collection)

	s.app = &types.App{
		Logger:  s.logger,
		Config:  &types.Config{MongodbUri: types.DefaultMongodbUri, LogLevel: types.DefaultLogLevel},
		Mongodb: mockDb,
	}
	aCtx := SetAppConfig(s.app)

	s.env = s.NewTestActivityEnvironment()
	s.env.RegisterActivity(aCtx.RunAudit)
	s.env.RegisterActivity(aCtx.GetVerdict)
}

// auditParams builds the two-group scenario: ten positive "A" rows predicted
// perfectly, ten negative "B" rows predicted perfectly.
func (s *ActivitiesTestSuite) auditParams() types.RunAuditParams {
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
	return types.RunAuditParams{
		Name: "audit_1",
		Evaluations: []types.ModelEvaluation{
			{Label: "model_1", Truth: truth, Probabilities: probs},
		},
		Protected:  protected,
		Privileged: "A",
	}
}

func (s *ActivitiesTestSuite) storedRecord(params types.RunAuditParams) *records.AuditRecord {
	obj, err := check.Create(params.Evaluations, nil, check.Options{
		Protected:  params.Protected,
		Privileged: params.Privileged,
	}, s.logger)
	s.Require().NoError(err)
	return records.NewAuditRecord(params.Name, obj)
}

func (s *ActivitiesTestSuite) Test_RunAudit() {
	params := s.auditParams()

	s.collection.On("ReplaceOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{UpsertedCount: 1}, nil)

	val, err := s.env.ExecuteActivity(Activities.RunAudit, params)
	s.Require().NoError(err)

	var result types.RunAuditResults
	s.Require().NoError(val.Get(&result))
	s.True(result.Success)
	s.Equal(uint(1), result.Models)
	s.Greater(result.Degenerate, uint(0)) // group B has no positives
	s.collection.AssertExpectations(s.T())
}

func (s *ActivitiesTestSuite) Test_RunAudit_EmptyName() {
	params := s.auditParams()
	params.Name = ""

	_, err := s.env.ExecuteActivity(Activities.RunAudit, params)
	s.Error(err)
}

func (s *ActivitiesTestSuite) Test_RunAudit_ValidationFailureSavesNothing() {
	params := s.auditParams()
	params.Evaluations = append(params.Evaluations, params.Evaluations[0]) // duplicate label

	_, err := s.env.ExecuteActivity(Activities.RunAudit, params)
	s.Error(err)
	// no partial merge may reach the store
	s.collection.AssertNotCalled(s.T(), "ReplaceOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ActivitiesTestSuite) Test_RunAudit_MergesStoredPrior() {
	params := s.auditParams()
	prior := s.storedRecord(types.RunAuditParams{
		Name:        "audit_0",
		Evaluations: []types.ModelEvaluation{{Label: "model_0", Truth: params.Evaluations[0].Truth, Probabilities: params.Evaluations[0].Probabilities}},
		Protected:   params.Protected,
		Privileged:  params.Privileged,
	})
	params.Priors = []string{"audit_0"}

	s.collection.On("FindOne", mock.Anything, mock.Anything, mock.Anything).
		Return(mongo.NewSingleResultFromDocument(prior, nil, nil))
	s.collection.On("ReplaceOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{UpsertedCount: 1}, nil)

	val, err := s.env.ExecuteActivity(Activities.RunAudit, params)
	s.Require().NoError(err)

	var result types.RunAuditResults
	s.Require().NoError(val.Get(&result))
	s.True(result.Success)
	s.Equal(uint(2), result.Models)
}

func (s *ActivitiesTestSuite) Test_RunAudit_MissingPrior() {
	params := s.auditParams()
	params.Priors = []string{"missing"}

	s.collection.On("FindOne", mock.Anything, mock.Anything, mock.Anything).
		Return(mongo.NewSingleResultFromDocument(struct{}{}, mongo.ErrNoDocuments, nil))

	_, err := s.env.ExecuteActivity(Activities.RunAudit, params)
	s.Error(err)
}

func (s *ActivitiesTestSuite) Test_GetVerdict() {
	params := s.auditParams()
	stored := s.storedRecord(params)

	s.collection.On("FindOne", mock.Anything, mock.Anything, mock.Anything).
		Return(mongo.NewSingleResultFromDocument(stored, nil, nil))

	val, err := s.env.ExecuteActivity(Activities.GetVerdict, types.GetVerdictParams{Name: "audit_1"})
	s.Require().NoError(err)

	var result types.GetVerdictResults
	s.Require().NoError(val.Get(&result))
	s.Require().Len(result.Verdicts, 1)
	s.Equal("model_1", result.Verdicts[0].Label)
	// the sparse group turns several check differences into NaN failures
	s.False(result.Verdicts[0].Fair)
}

func TestActivitiesTestSuite(t *testing.T) {
	suite.Run(t, new(ActivitiesTestSuite))
}
