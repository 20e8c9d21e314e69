package spec

type FileSinkSpec struct {
	Path   string `yaml:"path"`
	Indent string `yaml:"indent"`
}

type StdoutSinkSpec struct {
	Indent       string `yaml:"indent"`
	PrintCounter bool   `yaml:"print_counter"`
}

type KafkaSinkSpec struct {
	Brokers      []string `yaml:"brokers"`
	Topic        string   `yaml:"topic"`
	RequiredAcks int16    `yaml:"required_acks"` // 0,1,-1
	Version      string   `yaml:"version"`
	ClientID     string   `yaml:"client_id"`
}

type sinkConfigs struct {
	File   FileSinkSpec   `yaml:"file"`
	Stdout StdoutSinkSpec `yaml:"stdout"`
	Kafka  KafkaSinkSpec  `yaml:"kafka"`
}

type TelemetrySpec struct {
	PushURL string `yaml:"push_url"` // empty = don't push
	Job     string `yaml:"job"`
}

type TransformerSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"` // "prune", "rename", "flatten", "strip"

	Scope string   `yaml:"scope"` // prune: "envelope" or "record"
	Keys  []string `yaml:"keys"`  // prune, strip

	From string `yaml:"from"` // rename
	To   string `yaml:"to"`

	Field string `yaml:"field"` // flatten
	Key   string `yaml:"key"`   // flatten, defaults to "name"
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`

	Source struct {
		Kind   string `yaml:"kind"`
		Driver string `yaml:"driver"`
		Config string `yaml:"config"`
	} `yaml:"source"`

	// Ordered list of stages applied between source and sinks.
	Transformers []TransformerSpec `yaml:"transformers"`

	Sinks       []string      `yaml:"sinks"`
	SinkConfigs sinkConfigs   `yaml:"sink_configs"`
	Telemetry   TelemetrySpec `yaml:"telemetry"`
}
