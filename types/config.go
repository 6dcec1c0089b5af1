package types

type TemporalConfig struct {
	Host      string `json:"host"`
	Port      uint   `json:"port"`
	Namespace string `json:"namespace"`
	TaskQueue string `json:"task_queue"`
}

type Config struct {
	MongodbUri string          `json:"mongodb_uri"`
	LogLevel   string          `json:"log_level"`
	LogColor   bool            `json:"log_color"`
	Temporal   *TemporalConfig `json:"temporal"`
}
