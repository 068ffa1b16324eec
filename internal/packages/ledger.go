package packages

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/nvmd-desktop/nvmd/internal/messages"
)

// ErrMalformedLedger reports a ledger file that could not be decoded. Load still returns a
// usable empty ledger alongside it.
var ErrMalformedLedger = errors.New(messages.PackagesLedgerMalformed)

// Ledger maps a package binary name to the runtime versions that have it installed globally.
// Each version appears at most once per name, in insertion order. A name whose set becomes empty
// is kept with an empty list.
//
// The ledger is persisted with a full read-modify-write and no locking: two concurrent global
// install/uninstall runs race on the file and the last writer wins.
type Ledger map[string][]string

// LoadLedger reads the ledger at path. A missing or empty file is an empty ledger. A file that
// cannot be decoded yields an empty ledger and ErrMalformedLedger; the next Save replaces it.
func LoadLedger(path string) (Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Ledger{}, nil
		}
		return Ledger{}, fmt.Errorf(messages.PackagesReadLedgerFmt, path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return Ledger{}, nil
	}
	var ledger Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return Ledger{}, fmt.Errorf(messages.MalformedFileFmt, ErrMalformedLedger, path, err)
	}
	if ledger == nil {
		return Ledger{}, nil
	}
	return ledger, nil
}

// Save overwrites path with the ledger.
func (l Ledger) Save(path string) error {
	out := make(map[string][]string, len(l))
	for name, versions := range l {
		if versions == nil {
			versions = []string{}
		}
		out[name] = versions
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf(messages.PackagesEncodeLedgerFmt, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf(messages.PackagesWriteLedgerFmt, path, err)
	}
	return nil
}

// Add records that version has name installed. It reports whether the ledger changed.
func (l Ledger) Add(name string, version string) bool {
	versions := l[name]
	if slices.Contains(versions, version) {
		return false
	}
	l[name] = append(versions, version)
	return true
}

// Remove drops version from name's set. It reports whether the alias for name can be removed
// and whether the ledger changed.
//
// A name that was never tracked, or whose set is already empty, is removable. A name whose set
// does not contain version is left untouched and is not removable.
func (l Ledger) Remove(name string, version string) (removable bool, changed bool) {
	versions, ok := l[name]
	if !ok || len(versions) == 0 {
		return true, false
	}
	idx := slices.Index(versions, version)
	if idx < 0 {
		return false, false
	}
	remaining := slices.Delete(slices.Clone(versions), idx, idx+1)
	if remaining == nil {
		remaining = []string{}
	}
	l[name] = remaining
	return len(remaining) == 0, true
}

// CanRemove reports whether no version has name installed, so its alias may be deleted.
func (l Ledger) CanRemove(name string) bool {
	return len(l[name]) == 0
}

// Names returns the tracked names in sorted order.
func (l Ledger) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
