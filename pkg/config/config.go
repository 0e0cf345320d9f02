package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Gallery     GalleryConfig
	Work        WorkConfig
	Camera      CameraConfig
	Grid        GridConfig
	Permissions PermissionsConfig
	Log         LogConfig
}

// GalleryConfig locates the album saved grids are written to.
type GalleryConfig struct {
	Dir string
}

// WorkConfig locates intermediate crops and captures.
type WorkConfig struct {
	Dir string
}

// CameraConfig holds the external capture command. {output} is replaced by the target file.
type CameraConfig struct {
	Command string
}

// GridConfig holds rendering settings.
type GridConfig struct {
	CellWidth int `mapstructure:"cell_width"`
	Layout    string
}

// PermissionsConfig lists the capabilities granted without prompting.
type PermissionsConfig struct {
	Grant []string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "passgrid")
}

// Load reads configuration from file and env. Env var overrides use prefix PASSGRID_.
// path overrides PASSGRID_CONFIG; a missing default file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("gallery.dir", filepath.Join(dataDir(), "gallery"))
	v.SetDefault("work.dir", filepath.Join(os.TempDir(), "passgrid"))
	v.SetDefault("camera.command", "")
	v.SetDefault("grid.cell_width", 300)
	v.SetDefault("grid.layout", "3x4")
	v.SetDefault("permissions.grant", []string{"all"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigType("yaml")

	if path == "" {
		path = os.Getenv("PASSGRID_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "passgrid"))
		v.SetConfigName("passgrid")
	}

	v.SetEnvPrefix("PASSGRID")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Grid.CellWidth <= 0 {
		return Config{}, fmt.Errorf("grid.cell_width must be positive, got %d", c.Grid.CellWidth)
	}
	return c, nil
}
