package config

import "time"

// Config represents the stepviz.yaml file.
type Config struct {
	DelayMS   int     `yaml:"delay_ms"`
	Algorithm string  `yaml:"algorithm"`
	Values    []int   `yaml:"values,flow"`
	Heap      Heap    `yaml:"heap"`
	Log       Logging `yaml:"log"`
}

// Heap holds settings for the heap session.
type Heap struct {
	Initial []int `yaml:"initial,flow"`
}

// Logging holds log settings.
type Logging struct {
	Level string `yaml:"level"`
}

// Delay returns the step delay as a duration.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}
