package prefabs

import (
	"fmt"

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

// PlacementSpec places one prefab instance in the world. Name lets other
// prefabs refer to the instance, e.g. as a follow target.
type PlacementSpec struct {
	Prefab string  `yaml:"prefab"`
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

// WorldSpec is the starting layout of the overworld.
type WorldSpec struct {
	Name     string          `yaml:"name"`
	Player   string          `yaml:"player"`
	Ghost    string          `yaml:"ghost"`
	Entities []PlacementSpec `yaml:"entities"`
}

func LoadWorldSpec(filename string) (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Player == "" {
		spec.Player = "player"
	}
	if spec.Ghost == "" {
		spec.Ghost = "ghost"
	}
	return &spec, nil
}

// SpawnSpec lists the prefabs the editor can place.
type SpawnSpec struct {
	Default string   `yaml:"default"`
	Prefabs []string `yaml:"prefabs"`
}

func LoadSpawnSpec() (*SpawnSpec, error) {
	data, err := Load("spawn.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load spawn.yaml: %w", err)
	}
	var spec SpawnSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal spawn.yaml: %w", err)
	}
	if spec.Default == "" && len(spec.Prefabs) > 0 {
		spec.Default = spec.Prefabs[0]
	}
	return &spec, nil
}
