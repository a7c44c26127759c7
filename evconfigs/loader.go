package evconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/evchain/configs"
	"github.com/reusee/evchain/logs"
)

//go:embed schema.cue
var schema string

// Schema is the CUE schema config files are checked against.
func Schema() string {
	return schema
}

var filenames = []string{
	"evchain.cue",
	".evchain.cue",
}

// ConfigPaths returns the existing config files, most specific first:
// $EVCHAIN_CONFIG, the working directory, the user config dir, /etc.
func ConfigPaths() (paths []string) {
	if path := os.Getenv("EVCHAIN_CONFIG"); path != "" {
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}

	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {
	paths := ConfigPaths()
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}
	return configs.NewLoader(paths, schema)
}
