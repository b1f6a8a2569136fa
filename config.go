package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ttpr0/go-netvoronoi/parser"
	"github.com/ttpr0/go-netvoronoi/structs"
	"github.com/ttpr0/go-netvoronoi/voronoi"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

var validate = validator.New()

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) (Config, error) {
	slog.Info("reading config file", "file", file)
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	// objects carry one attribute per dimension
	if config.Source.Dims == 0 {
		config.Source.Dims = config.Voronoi.MaxDim
	}
	if err := validate.Struct(config); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if config.Source.Dims != config.Voronoi.MaxDim {
		return Config{}, fmt.Errorf("%w: dims %d differs from max-dim %d", ErrInvalidConfig, config.Source.Dims, config.Voronoi.MaxDim)
	}
	return config, nil
}

func DefaultConfig() Config {
	return Config{
		Source: SourceOptions{
			Delimiter: " ",
			Network:   "driving",
		},
		Voronoi: VoronoiOptions{
			MaxDist: 1000,
			MaxDim:  4,
		},
		LogLevel: LogLevel(slog.LevelInfo),
	}
}

type Config struct {
	Source   SourceOptions  `yaml:"source"`
	Voronoi  VoronoiOptions `yaml:"voronoi"`
	Output   string         `yaml:"output"`
	LogLevel LogLevel       `yaml:"log-level"`
}

type SourceOptions struct {
	Nodes   string `yaml:"nodes" validate:"required_without=OSM"`
	Edges   string `yaml:"edges" validate:"required_without=OSM"`
	OSM     string `yaml:"osm"`
	Network string `yaml:"network" validate:"oneof=driving walking"`
	Objects string `yaml:"objects" validate:"required"`
	Queries string `yaml:"queries" validate:"required"`
	Updates string `yaml:"updates"`

	Delimiter string `yaml:"delimiter" validate:"len=1"`
	Header    bool   `yaml:"header"`
	Dims      int    `yaml:"dims" validate:"gt=0"`
}

type VoronoiOptions struct {
	MaxDist float64 `yaml:"max-dist" validate:"gt=0"`
	MaxDim  int     `yaml:"max-dim" validate:"gt=0,lte=255"`
}

func (self Config) ReaderOptions() parser.ReaderOptions {
	return parser.ReaderOptions{
		Delimiter: []rune(self.Source.Delimiter)[0],
		Header:    self.Source.Header,
		Dims:      self.Source.Dims,
	}
}

func (self Config) VoronoiOptions() voronoi.Options {
	return voronoi.Options{
		MaxDist: self.Voronoi.MaxDist,
		MaxDim:  structs.K(self.Voronoi.MaxDim),
	}
}

//**********************************************************
// enums
//**********************************************************

type LogLevel slog.Level

func (self LogLevel) Level() slog.Level {
	return slog.Level(self)
}
func (self LogLevel) MarshalYAML() (any, error) {
	return slog.Level(self).String(), nil
}
func (self *LogLevel) UnmarshalYAML(value *yaml.Node) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value.Value)); err != nil {
		return err
	}
	*self = LogLevel(level)
	return nil
}
