package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"orca-backend/models"
)

// SchemaVersion is the version tag written with every document
const SchemaVersion = 1

type envelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	Data          json.RawMessage `json:"data"`
}

var errUnsupportedVersion = errors.New("unsupported schema version")

// unwrap splits a persisted value into its schema version and payload.
// Values written before versioning are bare documents and count as version 0.
func unwrap(raw []byte) (int, json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, nil, errors.New("empty document")
	}
	if trimmed[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return 0, nil, err
		}
		if v, ok := probe["schemaVersion"]; ok {
			var env envelope
			if err := json.Unmarshal(trimmed, &env); err != nil {
				return 0, nil, err
			}
			if _, hasData := probe["data"]; !hasData {
				return 0, nil, fmt.Errorf("envelope without data (version %s)", v)
			}
			return env.SchemaVersion, env.Data, nil
		}
	}
	return 0, json.RawMessage(trimmed), nil
}

// decode unwraps, decodes and migrates a persisted document into v
func decode(doc string, raw []byte, v interface{}) error {
	version, data, err := unwrap(raw)
	if err != nil {
		return err
	}
	if version > SchemaVersion || version < 0 {
		return fmt.Errorf("%w: %d", errUnsupportedVersion, version)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	return migrate(doc, version, v)
}

// migrate upgrades a decoded document from version to SchemaVersion in place
func migrate(doc string, version int, v interface{}) error {
	if version >= SchemaVersion {
		return nil
	}
	// 0 -> 1: curriculum nodes gain explicit dependsOn links taken from stored order
	if doc == DocCurriculum {
		nodes, ok := v.(*[]models.CourseNode)
		if !ok {
			return fmt.Errorf("unexpected curriculum type %T", v)
		}
		LinkChain(*nodes)
	}
	return nil
}

// LinkChain fills missing dependsOn links so each node depends on the one stored before it
func LinkChain(nodes []models.CourseNode) {
	for i := 1; i < len(nodes); i++ {
		if nodes[i].DependsOn == "" {
			nodes[i].DependsOn = nodes[i-1].ID
		}
	}
}
