// Package keys loads the keyed-alias documents that seed identity
// resolution: competitions.json (region, country, key, alias spellings)
// and athletes.json (key, alias spellings). Documents are validated
// against their JSON Schemas before use.
package keys

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/musclebase/ingest/internal/schemas"
)

// AliasSet maps a stable entity key to every raw spelling known to
// refer to that entity.
type AliasSet map[string][]string

// CompetitionsDoc is the nested shape of competitions.json. Regions
// group countries, countries group competition keys.
type CompetitionsDoc map[string]map[string]map[string][]string

// Flatten collapses the region and country levels into a flat alias
// set keyed by competition key.
func (d CompetitionsDoc) Flatten() AliasSet {
	flat := make(AliasSet)
	for _, region := range d {
		for _, country := range region {
			for key, aliases := range country {
				flat[key] = aliases
			}
		}
	}
	return flat
}

// ReverseIndex builds a lowercased spelling-to-key lookup. Keys index
// to themselves so exact key input also resolves.
func (s AliasSet) ReverseIndex() map[string]string {
	idx := make(map[string]string, len(s))
	for key, aliases := range s {
		idx[strings.ToLower(key)] = key
		for _, alias := range aliases {
			idx[strings.ToLower(alias)] = key
		}
	}
	return idx
}

// LoadCompetitions reads and validates a competitions alias document
// and returns its flattened alias set.
func LoadCompetitions(path string) (AliasSet, error) {
	if err := validate("schemas/competitions.schema.json", path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read competitions document: %w", err)
	}

	var doc CompetitionsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse competitions document: %w", err)
	}
	return doc.Flatten(), nil
}

// LoadAthletes reads and validates an athletes alias document.
func LoadAthletes(path string) (AliasSet, error) {
	if err := validate("schemas/athletes.schema.json", path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read athletes document: %w", err)
	}

	var doc AliasSet
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse athletes document: %w", err)
	}
	return doc, nil
}

func validate(schemaRelPath, docPath string) error {
	schemaPath := schemas.ResolveSchemaPath(schemaRelPath)
	if schemaPath == "" {
		return fmt.Errorf("schema not found: %s", schemaRelPath)
	}
	return schemas.ValidateJSON(schemaPath, docPath)
}
