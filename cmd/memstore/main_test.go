/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const campusYAML = `
entitySets:
  - name: Buildings
    type: Building
    properties:
      - {name: Id, type: Int32, key: true}
      - {name: Name}
    navigations:
      - {name: Rooms, target: Rooms, many: true}
  - name: Rooms
    type: Room
    properties:
      - {name: Id, key: true}
      - {name: Name}
data:
  Buildings:
    - {Name: Common Building}
    - {Id: 1, Name: Clashing Building}
  Rooms:
    - {Id: "0", Name: Room 0}
    - {Id: "1", Name: Room 1}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "campus.yaml")
	if err := os.WriteFile(path, []byte(campusYAML), 0o600); err != nil {
		t.Fatalf("write descriptor: %v", err)
	}
	t.Setenv("MEMSTORE_LOG_FORMAT", "none")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--metadata", path))
	err := cmd.Execute()
	return out.String(), err
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "describe")
	if err != nil {
		t.Fatalf("describe failed: %v\n%s", err, out)
	}
	for _, want := range []string{"Buildings (Building)", "key: [Id] [generated]", "-> Rooms (many)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLoad(t *testing.T) {
	out, err := run(t, "load", "--list")
	if err != nil {
		t.Fatalf("load failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "total                4 entities") {
		t.Errorf("unexpected totals:\n%s", out)
	}
	if !strings.Contains(out, "Name=Clashing Building") {
		t.Errorf("listing missing building:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "memstore version ") {
		t.Errorf("unexpected output: %s", out)
	}
}
