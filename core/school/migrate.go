package school

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
)

// Migrate parses a persisted document and applies idempotent shape
// upgrades from older file versions:
//
//   - v1 kept notifications keyed by role; they become a flat list
//     tagged with a `source` field.
//   - v1 named the ledger fields `pendingFee`/`feeAmount`; they become
//     `currentDue`/`totalFee`.
//
// It reports whether the document needed upgrading (and should be
// written back).
func Migrate(data []byte) (*Document, bool, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, errors.Wrap(err, "parsing document")
	}

	var version int
	if v, ok := raw["version"]; ok {
		_ = json.Unmarshal(v, &version)
	}

	if version < DocumentVersion {
		migrateNotifications(raw)
		migrateLedgerFields(raw)
	}

	upgraded, err := json.Marshal(raw)
	if err != nil {
		return nil, false, errors.Wrap(err, "re-encoding document")
	}
	doc := new(Document)
	if err = json.Unmarshal(upgraded, doc); err != nil {
		return nil, false, errors.Wrap(err, "decoding document")
	}
	doc.Version = DocumentVersion
	doc.Normalize()
	return doc, version < DocumentVersion, nil
}

// migrateNotifications flattens the v1 role-keyed notification map.
func migrateNotifications(raw map[string]json.RawMessage) {
	nraw, ok := raw["notifications"]
	if !ok || len(nraw) == 0 || nraw[0] != '{' {
		return
	}
	var keyed map[string][]Notification
	if err := json.Unmarshal(nraw, &keyed); err != nil {
		return
	}
	flat := make([]Notification, 0)
	for source, list := range keyed {
		for _, n := range list {
			if n.Source == "" {
				n.Source = source
			}
			flat = append(flat, n)
		}
	}
	sort.Slice(flat, func(i, j int) bool { return flat[i].CreatedAt.Before(flat[j].CreatedAt) })
	if b, err := json.Marshal(flat); err == nil {
		raw["notifications"] = b
	}
}

// migrateLedgerFields renames the v1 student fee fields.
func migrateLedgerFields(raw map[string]json.RawMessage) {
	sraw, ok := raw["students"]
	if !ok {
		return
	}
	var students map[string]map[string]json.RawMessage
	if err := json.Unmarshal(sraw, &students); err != nil {
		return
	}
	renamed := map[string]string{
		"pendingFee": "currentDue",
		"feeAmount":  "totalFee",
	}
	for _, fields := range students {
		for old, current := range renamed {
			if v, ok := fields[old]; ok {
				if _, has := fields[current]; !has {
					fields[current] = v
				}
				delete(fields, old)
			}
		}
	}
	if b, err := json.Marshal(students); err == nil {
		raw["students"] = b
	}
}
