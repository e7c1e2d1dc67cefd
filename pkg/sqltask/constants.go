package sqltask

import "time"

const (
	configLocation     = "./configs"
	shutDownTimeout    = 30 * time.Second
	defaultMetricPort  = "2121"
	defaultTaskTimeout = "0s"
	defaultTracerRatio = "1"
	tracerName         = "sqltask"
)
