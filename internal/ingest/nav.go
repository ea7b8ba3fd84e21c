package ingest

import (
	"fmt"
	"os"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"github.com/awakefm/artist-node/internal/graph"
)

// LoadNavConfig reads the navigation config. A missing file yields an
// empty config so a site without a nav.yaml still serves.
func LoadNavConfig(fsys billy.Filesystem, p string) (graph.NavConfig, error) {
	data, err := util.ReadFile(fsys, p)
	if err != nil {
		if os.IsNotExist(err) {
			return graph.NavConfig{}, nil
		}
		return graph.NavConfig{}, fmt.Errorf("read nav config %s: %w", p, err)
	}
	var cfg graph.NavConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return graph.NavConfig{}, fmt.Errorf("parse nav config %s: %w", p, err)
	}
	return cfg, nil
}
