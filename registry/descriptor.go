/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Descriptor is the YAML form of record-backed entity metadata, optionally
// carrying fixture data:
//
//	entitySets:
//	  - name: Buildings
//	    type: Building
//	    properties:
//	      - {name: Id, type: String, key: true}
//	      - {name: Name, type: String}
//	    navigations:
//	      - {name: Rooms, target: Rooms, many: true}
//	data:
//	  Buildings:
//	    - {Name: Common Building}
type Descriptor struct {
	EntitySets []SetDescriptor            `yaml:"entitySets"`
	Data       map[string][]map[string]any `yaml:"data"`
}

// SetDescriptor declares one entity set.
type SetDescriptor struct {
	Name        string                 `yaml:"name"`
	Type        string                 `yaml:"type"`
	Properties  []PropertyDescriptor   `yaml:"properties"`
	Navigations []NavigationDescriptor `yaml:"navigations"`
}

// PropertyDescriptor declares one property of a set.
type PropertyDescriptor struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Key  bool   `yaml:"key"`
}

// NavigationDescriptor declares one navigation of a set.
type NavigationDescriptor struct {
	Name   string `yaml:"name"`
	Target string `yaml:"target"`
	Many   bool   `yaml:"many"`
}

// LoadDescriptor reads a descriptor file.
func LoadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}
	return ParseDescriptor(data)
}

// ParseDescriptor decodes a descriptor from YAML.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor: %w", err)
	}
	if d.Data == nil {
		d.Data = make(map[string][]map[string]any)
	}
	return &d, nil
}

// Apply registers every declared set with r.
func (d *Descriptor) Apply(r *Registry) error {
	for _, set := range d.EntitySets {
		props := make([]Property, 0, len(set.Properties))
		for _, p := range set.Properties {
			typ := EdmString
			if p.Type != "" {
				parsed, err := ParseEdmType(p.Type)
				if err != nil {
					return fmt.Errorf("entity set %s, property %s: %w", set.Name, p.Name, err)
				}
				typ = parsed
			}
			props = append(props, Property{Name: p.Name, Type: typ, Key: p.Key})
		}

		navs := make([]Navigation, 0, len(set.Navigations))
		for _, n := range set.Navigations {
			navs = append(navs, Navigation{Name: n.Name, Target: n.Target, Many: n.Many})
		}

		if err := r.RegisterRecords(set.Name, set.Type, props, navs); err != nil {
			return err
		}
	}
	return nil
}
