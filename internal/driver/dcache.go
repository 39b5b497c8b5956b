package driver

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"svlower/internal/diag"
	"svlower/internal/source"
)

// Current schema version - increment when UnitPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты lowering по Digest юнита на диске.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedNote mirrors diag.Note.
type CachedNote struct {
	Span source.Span
	Msg  string
}

// CachedDiagnostic mirrors diag.Diagnostic.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  source.Span
	Notes    []CachedNote
}

// UnitPayload is what a lowered unit leaves behind: enough to replay its
// diagnostics and HIR dump without lowering again.
type UnitPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Name        string
	Nodes       int
	Failed      int
	Dropped     int
	Diagnostics []CachedDiagnostic
	Dump        string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir is the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := key.String()
	// подкаталог "units", первые два символа ключа - шард
	return filepath.Join(c.dir, "units", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *UnitPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	// после Rename файла уже нет
	defer func() { _ = os.Remove(tmp) }()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache. A payload
// written by another schema reads as a miss.
func (c *DiskCache) Get(key Digest, out *UnitPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func toPayload(res *UnitResult) *UnitPayload {
	p := &UnitPayload{
		Schema:  diskCacheSchemaVersion,
		Name:    res.Name,
		Nodes:   res.Nodes,
		Failed:  res.Failed,
		Dropped: res.Bag.Dropped(),
		Dump:    res.Dump,
	}
	items := res.Bag.Items()
	p.Diagnostics = make([]CachedDiagnostic, len(items))
	for i, d := range items {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Primary:  d.Primary,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote(n))
		}
		p.Diagnostics[i] = cd
	}
	return p
}

// fromPayload restores the parts of a unit result a payload keeps.
func fromPayload(p *UnitPayload) (nodes, failed int, bag *diag.Bag, dump string) {
	bag = diag.NewBag(0)
	for _, cd := range p.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  cd.Primary,
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note(n))
		}
		bag.Add(d)
	}
	bag.AddDropped(p.Dropped)
	return p.Nodes, p.Failed, bag, p.Dump
}
