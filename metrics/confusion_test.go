package metrics

import (
	"os"
	"testing"
	"time"

	"fairmodels/types"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"golang.org/x/exp/rand"
)

// define a test suite struct
type ConfusionTestSuite struct {
	suite.Suite
	logger *zerolog.Logger
}

func (s *ConfusionTestSuite) SetupTest() {
	l := zerolog.New(
		zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		},
	).Level(zerolog.Disabled).With().Timestamp().Logger()
	s.logger = &l
}

func (s *ConfusionTestSuite) Test_BuildConfusionMatrix() {
	probs := []float64{0.9, 0.8, 0.3, 0.1, 0.5, 0.4}
	truth := []int{1, 0, 1, 0, 1, 0}

	cm, err := BuildConfusionMatrix(probs, truth, 0.5)
	s.NoError(err)
	s.Equal(2, cm.TP) // 0.9 and 0.5 against truth 1
	s.Equal(1, cm.FP) // 0.8 against truth 0
	s.Equal(2, cm.TN) // 0.1 and 0.4 against truth 0
	s.Equal(1, cm.FN) // 0.3 against truth 1
	s.Equal(len(probs), cm.Total())
}

func (s *ConfusionTestSuite) Test_BuildConfusionMatrix_CutoffIsInclusive() {
	cm, err := BuildConfusionMatrix([]float64{0.5}, []int{1}, 0.5)
	s.NoError(err)
	s.Equal(1, cm.TP)
}

func (s *ConfusionTestSuite) Test_BuildConfusionMatrix_Errors() {
	_, err := BuildConfusionMatrix([]float64{0.1, 0.2}, []int{1}, 0.5)
	s.ErrorIs(err, types.ErrInvalidInput)

	_, err = BuildConfusionMatrix([]float64{0.1}, []int{1}, 1.5)
	s.ErrorIs(err, types.ErrInvalidInput)

	_, err = BuildConfusionMatrix([]float64{0.1}, []int{1}, -0.1)
	s.ErrorIs(err, types.ErrInvalidInput)
}

func (s *ConfusionTestSuite) Test_BuildGroupConfusionMatrices() {
	probs := []float64{0.9, 0.2, 0.7, 0.4}
	truth := []int{1, 0, 0, 1}
	pa, err := types.NewProtectedAttribute([]string{"A", "A", "B", "B"}, "A")
	s.NoError(err)

	cutoffs := map[string]float64{"A": 0.5, "B": 0.3}
	groups, err := BuildGroupConfusionMatrices(probs, truth, pa, cutoffs, s.logger)
	s.NoError(err)
	s.Len(groups, 2)

	s.Equal(ConfusionMatrix{TP: 1, TN: 1}, groups["A"])
	// group B under cutoff 0.3: both rows predicted positive
	s.Equal(ConfusionMatrix{TP: 1, FP: 1}, groups["B"])
}

func (s *ConfusionTestSuite) Test_BuildGroupConfusionMatrices_TotalsMatchGroupSizes() {
	rows := 200
	probs := make([]float64, rows)
	truth := make([]int, rows)
	values := make([]string, rows)
	levels := []string{"A", "B", "C"}
	for i := 0; i < rows; i++ {
		probs[i] = float64(rand.Intn(1000)) / 1000.0
		truth[i] = rand.Intn(2)
		values[i] = levels[rand.Intn(len(levels))]
	}
	pa, err := types.NewProtectedAttribute(values, "A")
	s.NoError(err)

	cutoffs := map[string]float64{"A": 0.5, "B": 0.5, "C": 0.5}
	groups, err := BuildGroupConfusionMatrices(probs, truth, pa, cutoffs, s.logger)
	s.NoError(err)

	for _, lvl := range levels {
		s.Equal(len(pa.GroupRows(lvl)), groups[lvl].Total())
	}
}

func (s *ConfusionTestSuite) Test_BuildGroupConfusionMatrices_EmptyLevelYieldsZeroMatrix() {
	// A level with no rows still gets a defined, all-zero matrix: downstream
	// tables are indexed by the full level set.
	pa := &types.ProtectedAttribute{
		Values:     []string{"A", "A", "B"},
		Levels:     []string{"A", "B", "C"},
		Privileged: "A",
	}

	cutoffs := map[string]float64{"A": 0.5, "B": 0.5, "C": 0.5}
	groups, err := BuildGroupConfusionMatrices([]float64{0.9, 0.1, 0.6}, []int{1, 0, 1}, pa, cutoffs, s.logger)
	s.NoError(err)
	s.Len(groups, 3)
	s.Equal(ConfusionMatrix{}, groups["C"])
}

func (s *ConfusionTestSuite) Test_BuildGroupConfusionMatrices_GroupSizeMismatch() {
	pa, err := types.NewProtectedAttribute([]string{"A", "B"}, "A")
	s.NoError(err)

	_, err = BuildGroupConfusionMatrices([]float64{0.5}, []int{1}, pa, map[string]float64{"A": 0.5, "B": 0.5}, s.logger)
	s.ErrorIs(err, types.ErrInvalidInput)
}

func TestConfusionTestSuite(t *testing.T) {
	suite.Run(t, new(ConfusionTestSuite))
}
