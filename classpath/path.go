package classpath

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/minio/highwayhash"
	log "github.com/sirupsen/logrus"
	"github.com/viant/afs"

	"github.com/viant/jbind/binder"
	"github.com/viant/jbind/bytecode"
)

var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// Path materializes pre-compiled classes from class path entries. It serves
// as the dependency environment and the top-level index for the binder:
// classes are loaded and converted on first access and memoized.
type Path struct {
	fs      afs.Service
	entries []string

	mu     sync.Mutex
	loaded map[string]*Class
	exists map[string]bool
}

// New creates a Path over the configured entries.
func New(config *Config) *Path {
	return &Path{
		fs:      afs.New(),
		entries: config.Entries,
		loaded:  map[string]*Class{},
		exists:  map[string]bool{},
	}
}

// Get implements the binder environment over the class path. Unknown and
// unreadable classes resolve to nil.
func (p *Path) Get(sym binder.ClassSymbol) binder.HeaderBoundClass {
	class, err := p.Load(sym.Name())
	if err != nil || class == nil {
		return nil
	}
	return class
}

// Contains reports whether any entry provides a class file for the binary
// name.
func (p *Path) Contains(name string) bool {
	p.mu.Lock()
	if found, ok := p.exists[name]; ok {
		p.mu.Unlock()
		return found
	}
	p.mu.Unlock()

	ctx := context.Background()
	found := false
	for _, entry := range p.entries {
		if ok, _ := p.fs.Exists(ctx, entryURL(entry, name)); ok {
			found = true
			break
		}
	}
	p.mu.Lock()
	p.exists[name] = found
	p.mu.Unlock()
	return found
}

// Load resolves a binary name to its header-bound class, or nil when no
// entry provides it. When several entries provide the class the first entry
// wins; entries whose bytes disagree are reported.
func (p *Path) Load(name string) (*Class, error) {
	p.mu.Lock()
	if class, ok := p.loaded[name]; ok {
		p.mu.Unlock()
		return class, nil
	}
	p.mu.Unlock()

	data, err := p.download(name)
	if err != nil {
		return nil, err
	}
	var class *Class
	if data != nil {
		file, err := bytecode.Read(data)
		if err != nil {
			return nil, fmt.Errorf("failed to read class %s: %w", name, err)
		}
		class = newClass(file)
	}
	p.mu.Lock()
	p.loaded[name] = class
	p.exists[name] = class != nil
	p.mu.Unlock()
	return class, nil
}

func (p *Path) download(name string) ([]byte, error) {
	ctx := context.Background()
	var data []byte
	var foundURL string
	for _, entry := range p.entries {
		URL := entryURL(entry, name)
		if ok, _ := p.fs.Exists(ctx, URL); !ok {
			continue
		}
		content, err := p.fs.DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", URL, err)
		}
		if data == nil {
			data, foundURL = content, URL
			continue
		}
		first, err := digest(data)
		if err != nil {
			return nil, err
		}
		duplicate, err := digest(content)
		if err != nil {
			return nil, err
		}
		if first != duplicate {
			log.WithFields(log.Fields{
				"class":     name,
				"first":     foundURL,
				"duplicate": URL,
			}).Warn("classpath entries disagree, keeping the first")
		}
	}
	return data, nil
}

func digest(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err = hash.Write(data); err != nil {
		return 0, err
	}
	return hash.Sum64(), nil
}

// entryURL maps a class path entry and a binary name to a storage URL. Jar
// and zip archives are addressed through the zip scheme nested under the
// archive's file URL: file:<archive>/zip://localhost/<name>.class.
func entryURL(entry, name string) string {
	if strings.HasSuffix(entry, ".jar") || strings.HasSuffix(entry, ".zip") {
		archive := entry
		if !strings.HasPrefix(archive, "/") {
			archive = "/" + archive
		}
		return "file:" + archive + "/zip://localhost/" + name + ".class"
	}
	return path.Join(entry, name+".class")
}
