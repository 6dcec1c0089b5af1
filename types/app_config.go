package types

import (
	"fairmodels/mongodb"

	"github.com/rs/zerolog"
	"go.temporal.io/sdk/client"
)

type App struct {
	Logger         *zerolog.Logger
	Config         *Config
	Mongodb        mongodb.MongoDb
	TemporalClient client.Client
}
