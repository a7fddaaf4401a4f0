/*
checkpoint.go - Fingerprint checkpoint persistence

The checkpoint is one small JSON object, {"hash": "<hex digest>"}, at a
stable path inside the state directory. It is read once and written once
per run; concurrent runs against the same state directory must be
serialized by the caller.
*/
package normative

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const checkpointFile = "rules_hash.json"

type checkpoint struct {
	Hash string `json:"hash"`
}

// readCheckpoint returns the previously stored digest. A missing file is
// not an error; it reports hadCheckpoint=false.
func readCheckpoint(stateDir string) (hash string, hadCheckpoint bool, err error) {
	raw, err := os.ReadFile(filepath.Join(stateDir, checkpointFile))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read rules checkpoint: %w", err)
	}
	var cp checkpoint
	if err := json.Unmarshal(raw, &cp); err != nil {
		return "", false, fmt.Errorf("decode rules checkpoint: %w", err)
	}
	return cp.Hash, cp.Hash != "", nil
}

// writeCheckpoint stores the digest, creating the state directory if needed.
func writeCheckpoint(stateDir, hash string) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	raw, err := json.MarshalIndent(checkpoint{Hash: hash}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(stateDir, checkpointFile), raw, 0o644); err != nil {
		return fmt.Errorf("write rules checkpoint: %w", err)
	}
	return nil
}
