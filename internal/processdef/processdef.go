// Package processdef reads hiring process definitions from YAML files.
package processdef

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"actualize-backend/internal/model"
)

// ParseYAML decodes and validates a process definition.
// Status defaults to draft and fields without a position keep their file order.
func ParseYAML(data []byte) (*model.Process, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("processdef: definition payload is empty")
	}

	var process model.Process
	if err := yaml.Unmarshal(data, &process); err != nil {
		return nil, fmt.Errorf("processdef: decode definition: %w", err)
	}
	normalize(&process)

	if err := process.Validate(); err != nil {
		return nil, fmt.Errorf("processdef: %w", err)
	}
	process.SortRounds()
	return &process, nil
}

// LoadFile reads and parses the definition at path.
func LoadFile(path string) (*model.Process, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("processdef: read %s: %w", path, err)
	}
	process, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return process, nil
}

func normalize(p *model.Process) {
	p.Title = strings.TrimSpace(p.Title)
	p.Status = strings.ToLower(strings.TrimSpace(p.Status))
	if p.Status == "" {
		p.Status = model.ProcessStatusDraft
	}
	for i := range p.Rounds {
		r := &p.Rounds[i]
		r.Title = strings.TrimSpace(r.Title)
		r.Type = strings.TrimSpace(r.Type)
		if r.Order == 0 {
			r.Order = i + 1
		}
		for j := range r.Fields {
			if r.Fields[j].Position == 0 {
				r.Fields[j].Position = j + 1
			}
		}
	}
}
