package levels

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// Pack is a named, ordered collection of levels.
type Pack interface {
	ID() string
	Title() string
	Levels() ([]Level, error)
}

// DirPack serves the levels of a directory on disk.
type DirPack struct {
	id     string
	title  string
	loader *Loader
}

// NewDirPack creates a pack over dir. The pack ID is the directory name.
func NewDirPack(dir string) *DirPack {
	base := filepath.Base(filepath.Clean(dir))
	return &DirPack{id: base, title: base, loader: NewLoader(dir)}
}

func (p *DirPack) ID() string    { return p.id }
func (p *DirPack) Title() string { return p.title }

// Levels loads the pack from disk on every call.
func (p *DirPack) Levels() ([]Level, error) {
	list, err := p.loader.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("pack %s: no levels found", p.id)
	}
	return list, nil
}

// Loader exposes the underlying loader for validation.
func (p *DirPack) Loader() *Loader { return p.loader }

// FSPack serves levels from an fs.FS such as an embed.FS.
type FSPack struct {
	id     string
	title  string
	loader *Loader
}

// NewFSPack creates a pack over root inside fsys.
func NewFSPack(id, title string, fsys fs.FS, root string) *FSPack {
	return &FSPack{id: id, title: title, loader: NewFSLoader(fsys, root)}
}

func (p *FSPack) ID() string    { return p.id }
func (p *FSPack) Title() string { return p.title }

func (p *FSPack) Levels() ([]Level, error) {
	list, err := p.loader.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", p.id, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("pack %s: no levels found", p.id)
	}
	return list, nil
}
