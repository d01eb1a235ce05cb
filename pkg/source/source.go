// Package source acquires the (path, content) pairs an analysis runs on.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"augur/internal/vcs"
	"augur/pkg/config"
	"augur/pkg/parser"
)

// File is one unit of input: a path and its full content.
type File struct {
	Path    string
	Content []byte
}

// Provider yields the files to analyze. Collect returns files in a
// deterministic order; any error aborts the run.
type Provider interface {
	Collect() ([]File, error)
}

// FilesystemProvider walks a directory tree on disk.
type FilesystemProvider struct {
	root string
	cfg  *config.Config
}

// NewFilesystem creates a provider rooted at dir.
func NewFilesystem(dir string, cfg *config.Config) *FilesystemProvider {
	return &FilesystemProvider{root: dir, cfg: cfg}
}

// Collect walks the root and returns every supported, non-excluded
// source file in lexical path order.
func (p *FilesystemProvider) Collect() ([]File, error) {
	var files []File
	err := filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(p.root, path)
		if relErr != nil {
			return relErr
		}
		if d.IsDir() {
			if p.cfg.ShouldExclude(rel + string(filepath.Separator)) {
				return filepath.SkipDir
			}
			return nil
		}
		if p.cfg.ShouldExclude(rel) {
			return nil
		}
		if parser.DetectLanguage(rel) == parser.LangUnknown {
			return nil
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("read %s: %w", path, readErr)
		}
		files = append(files, File{Path: rel, Content: content})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect sources from %s: %w", p.root, err)
	}
	return files, nil
}

// TreeProvider reads files from a git tree at a fixed revision.
// Tree object access is not goroutine safe, so reads are serialized.
type TreeProvider struct {
	tree vcs.Tree
	cfg  *config.Config
	mu   sync.Mutex
}

// NewTree creates a provider over an already resolved git tree.
func NewTree(tree vcs.Tree, cfg *config.Config) *TreeProvider {
	return &TreeProvider{tree: tree, cfg: cfg}
}

// NewGitRevision opens the repository containing dir and returns a
// provider over the tree at rev.
func NewGitRevision(dir, rev string, cfg *config.Config) (*TreeProvider, error) {
	repo, err := vcs.Open(dir)
	if err != nil {
		return nil, err
	}
	tree, err := repo.TreeAt(rev)
	if err != nil {
		return nil, err
	}
	return NewTree(tree, cfg), nil
}

// Collect returns every supported, non-excluded file in the tree.
func (p *TreeProvider) Collect() ([]File, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	paths, err := p.tree.Entries()
	if err != nil {
		return nil, fmt.Errorf("list tree entries: %w", err)
	}

	var files []File
	for _, path := range paths {
		if p.cfg.ShouldExclude(path) {
			continue
		}
		if parser.DetectLanguage(path) == parser.LangUnknown {
			continue
		}
		content, err := p.tree.File(path)
		if err != nil {
			return nil, fmt.Errorf("read %s from tree: %w", path, err)
		}
		files = append(files, File{Path: path, Content: content})
	}
	return files, nil
}
