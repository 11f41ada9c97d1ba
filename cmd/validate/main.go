package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/tilequest/pkg/world"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <world.json | worlds-dir>\n", os.Args[0])
		os.Exit(1)
	}

	target := os.Args[1]
	validator := &WorldValidator{}

	info, err := os.Stat(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	if info.IsDir() {
		if err := validator.validateDir(target); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All world files are valid!")
		return
	}

	if _, err := validator.validateFile(target); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("World file is valid!")
}

type WorldValidator struct {
	errors []string
}

// validateDir validates every world file in a directory and
// cross-checks that each exit trigger points at a world that exists.
func (v *WorldValidator) validateDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	worlds := make(map[string]*world.World)
	var failed bool
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		w, err := v.validateFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			failed = true
			continue
		}
		worlds[w.Name] = w
	}

	for name, w := range worlds {
		for _, t := range w.Triggers {
			if t.Type != world.TriggerExit || t.Exit == nil {
				continue
			}
			dest, ok := worlds[t.Exit.Map]
			if !ok {
				fmt.Fprintf(os.Stderr, "world %s: exit %s points at unknown world '%s'\n", name, t.ID, t.Exit.Map)
				failed = true
				continue
			}
			p := t.Exit.Position
			if !dest.NewTerrain().Walkable(p.X, p.Y) {
				fmt.Fprintf(os.Stderr, "world %s: exit %s lands on impassable tile %s in '%s'\n", name, t.ID, p, t.Exit.Map)
				failed = true
			}
		}
	}

	if failed {
		return fmt.Errorf("one or more world files failed validation")
	}
	return nil
}

func (v *WorldValidator) validateFile(filename string) (*world.World, error) {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return nil, fmt.Errorf("world file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidWorldFilename(nameWithoutExt) {
		return nil, fmt.Errorf("world filename '%s' must be lowercase snake_case (e.g., oakvale_town.json, not OakvaleTown.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	if !json.Valid(data) {
		return nil, fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var w world.World
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&w); err != nil {
		return nil, fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	if w.Name != nameWithoutExt {
		v.addError(fmt.Sprintf("world name '%s' must match its filename '%s'", w.Name, nameWithoutExt))
	}
	v.validateIDFormat("world name", w.Name)
	for _, npc := range w.NPCs {
		v.validateIDFormat("NPC ID", npc.ID)
	}
	for _, t := range w.Triggers {
		v.validateIDFormat("trigger ID", t.ID)
		if t.Flag != "" {
			v.validateIDFormat("trigger flag", t.Flag)
		}
	}
	for _, u := range w.Unlocks {
		v.validateIDFormat("unlock flag", u.Flag)
	}

	if err := w.Validate(); err != nil {
		v.addError(err.Error())
	}

	if len(v.errors) > 0 {
		return nil, fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return &w, nil
}

func (v *WorldValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}
	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *WorldValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var (
	validIDRegex       = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
	validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

func isValidWorldFilename(name string) bool {
	return validFilenameRegex.MatchString(name)
}
