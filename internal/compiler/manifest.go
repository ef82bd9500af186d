package compiler

import (
	"encoding/json"

	"github.com/boredom-js/boredom-build/internal/graph"
)

const ManifestFile = "components.json"

type ManifestEntry struct {
	Name         string   `json:"name"`
	Version      string   `json:"version,omitempty"`
	Module       string   `json:"module"`
	Dependencies []string `json:"dependencies"`
	Props        []string `json:"props"`
	Events       []string `json:"events"`
}

// Manifest lists the components of a build in the order they were emitted.
type Manifest struct {
	Components []ManifestEntry `json:"components"`
}

func BuildManifest(entries []graph.Entry) *Manifest {
	m := &Manifest{Components: make([]ManifestEntry, 0, len(entries))}
	for _, e := range entries {
		md := e.Record.Metadata
		m.Components = append(m.Components, ManifestEntry{
			Name:         md.Name,
			Version:      md.Version,
			Module:       e.ID,
			Dependencies: md.Dependencies,
			Props:        md.Props,
			Events:       md.Events,
		})
	}
	return m
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) JSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
