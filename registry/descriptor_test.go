/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/suparena/memstore/errors"
	"github.com/suparena/memstore/registry"
)

const campusYAML = `
entitySets:
  - name: Buildings
    type: Building
    properties:
      - {name: Id, type: String, key: true}
      - {name: Name}
    navigations:
      - {name: Rooms, target: Rooms, many: true}
  - name: Rooms
    type: Room
    properties:
      - {name: Id, type: Int32, key: true}
      - {name: Name, type: String}
      - {name: Opened, type: DateTime}
    navigations:
      - {name: Building, target: Buildings}
data:
  Buildings:
    - {Name: Common Building}
    - {Id: "42", Name: Library}
`

func TestLoadDescriptor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campus.yaml")
	if err := os.WriteFile(path, []byte(campusYAML), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	d, err := registry.LoadDescriptor(path)
	if err != nil {
		t.Fatalf("LoadDescriptor failed: %v", err)
	}
	if len(d.EntitySets) != 2 {
		t.Fatalf("Expected 2 entity sets, got %d", len(d.EntitySets))
	}
	if len(d.Data["Buildings"]) != 2 {
		t.Fatalf("Expected 2 building fixtures, got %d", len(d.Data["Buildings"]))
	}

	r := registry.New()
	if err := d.Apply(r); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	rooms, err := r.EntitySet("Rooms")
	if err != nil {
		t.Fatalf("EntitySet failed: %v", err)
	}
	if !rooms.IsRecord() {
		t.Error("descriptor sets should be record-backed")
	}
	if !rooms.IsGeneratableKey() {
		t.Error("Int32 single key should be generatable")
	}
	name, _ := rooms.Property("Name")
	if name.Type != registry.EdmString {
		t.Errorf("Expected String, got %s", name.Type)
	}

	nav, err := r.NavigationFor("Buildings", "Rooms")
	if err != nil || !nav.Many {
		t.Errorf("Expected to-many navigation, got %+v (%v)", nav, err)
	}

	obj, err := r.NewDataObject("Rooms")
	if err != nil {
		t.Fatalf("NewDataObject failed: %v", err)
	}
	rec, ok := obj.(*registry.Record)
	if !ok || rec.EntitySet() != "Rooms" {
		t.Errorf("Expected a Rooms record, got %#v", obj)
	}
}

func TestParseDescriptor_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown type", "entitySets:\n  - name: A\n    properties:\n      - {name: Id, type: Currency, key: true}\n"},
		{"no key", "entitySets:\n  - name: A\n    properties:\n      - {name: Id}\n"},
		{"navigation without target", "entitySets:\n  - name: A\n    properties:\n      - {name: Id, key: true}\n    navigations:\n      - {name: B}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := registry.ParseDescriptor([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("ParseDescriptor failed: %v", err)
			}
			if err := d.Apply(registry.New()); err == nil {
				t.Error("Expected Apply to fail")
			}
		})
	}

	if _, err := registry.ParseDescriptor([]byte("entitySets: [")); err == nil {
		t.Error("Expected malformed YAML to fail")
	}
	d, _ := registry.ParseDescriptor([]byte("entitySets:\n  - name: A\n    properties:\n      - {name: Id, key: true}\n"))
	if err := d.Apply(registry.New()); err != nil {
		t.Errorf("Expected valid descriptor, got %v", err)
	}

	r := registry.New()
	_ = d.Apply(r)
	if err := d.Apply(r); !errors.IsMetadataError(err) {
		t.Errorf("Expected metadata error when applying twice, got %v", err)
	}
}
