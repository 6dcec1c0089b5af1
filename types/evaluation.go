package types

//------------------------------------------------------------------------------
// ModelEvaluation
//------------------------------------------------------------------------------

// ModelEvaluation is the contract exposed by an upstream model explainer:
// a unique label, the ground truth vector and the predicted probabilities,
// row-aligned with the protected attribute. The audit core never mutates it.
type ModelEvaluation struct {
	Label         string    `json:"label" bson:"label"`
	Truth         []int     `json:"y" bson:"y"`
	Probabilities []float64 `json:"y_hat" bson:"y_hat"`
}
