package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name                string                `yaml:"name"`
	Width               float64               `yaml:"width"`
	Height              float64               `yaml:"height"`
	StartX              float64               `yaml:"start_x"`
	StartY              float64               `yaml:"start_y"`
	JumpSpeed           float64               `yaml:"jump_speed"`
	GroundCheckDistance float64               `yaml:"ground_check_distance"`
	RotationSpeed       float64               `yaml:"rotation_speed"` // degrees per second
	RotationSign        float64               `yaml:"rotation_sign"`
	HitImpulse          float64               `yaml:"hit_impulse"`
	Visuals             map[string]*YAMLColor `yaml:"visuals"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ObstacleSpec struct {
	Name       string     `yaml:"name"`
	Speed      float64    `yaml:"speed"`
	DirectionX float64    `yaml:"direction_x"`
	DirectionY float64    `yaml:"direction_y"`
	Size       float64    `yaml:"size"`
	Color      *YAMLColor `yaml:"color"`
}

type SpawnerSpec struct {
	Name         string  `yaml:"name"`
	Enabled      bool    `yaml:"enabled"`
	IntervalMean float64 `yaml:"interval_mean"`
	IntervalStd  float64 `yaml:"interval_std"`
	SpawnOffset  float64 `yaml:"spawn_offset"`
	SpawnSize    float64 `yaml:"spawn_size"`
	OriginX      float64 `yaml:"origin_x"`
	OriginY      float64 `yaml:"origin_y"`
	// Template names the obstacle prefab file spawned entities are built
	// from. A missing template is a startup error, not a per-spawn one.
	Template string `yaml:"template"`
}

type SessionSpec struct {
	Name               string  `yaml:"name"`
	StartText          string  `yaml:"start_text"`
	ResumeText         string  `yaml:"resume_text"`
	LossText           string  `yaml:"loss_text"`
	DifficultyScript   string  `yaml:"difficulty_script"`
	DifficultyInterval float64 `yaml:"difficulty_interval"`
}

type CameraSpec struct {
	Name          string  `yaml:"name"`
	TargetAspectW float64 `yaml:"target_aspect_w"`
	TargetAspectH float64 `yaml:"target_aspect_h"`
}

// GameSpecs bundles every prefab the game needs at startup.
type GameSpecs struct {
	Player   *PlayerSpec
	Obstacle *ObstacleSpec
	Spawner  *SpawnerSpec
	Session  *SessionSpec
	Camera   *CameraSpec
}

// LoadGameSpecs loads all prefab specs, resolving the spawner's obstacle
// template. Any missing file or an unresolvable template is returned as an
// error; callers treat this as fatal configuration.
func LoadGameSpecs() (*GameSpecs, error) {
	player, err := LoadPlayerSpec()
	if err != nil {
		return nil, err
	}

	spawner, err := LoadSpec[SpawnerSpec]("spawner.yaml")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(spawner.Template) == "" {
		return nil, fmt.Errorf("prefabs: spawner.yaml has no obstacle template")
	}
	obstacle, err := LoadSpec[ObstacleSpec](spawner.Template)
	if err != nil {
		return nil, fmt.Errorf("prefabs: resolve spawner template: %w", err)
	}

	session, err := LoadSpec[SessionSpec]("session.yaml")
	if err != nil {
		return nil, err
	}

	camera, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}

	return &GameSpecs{
		Player:   player,
		Obstacle: &obstacle,
		Spawner:  &spawner,
		Session:  &session,
		Camera:   &camera,
	}, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
