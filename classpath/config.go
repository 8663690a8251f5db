package classpath

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config lists class path entries in search order. Entries are directories
// of class files or jar archives.
type Config struct {
	Entries []string `yaml:"entries"`
}

// LoadConfig reads a yaml classpath config from URL.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load classpath config %s: %w", URL, err)
	}
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse classpath config %s: %w", URL, err)
	}
	return config, nil
}
