package types

var (
	AuditsCollection = "audits"
)
