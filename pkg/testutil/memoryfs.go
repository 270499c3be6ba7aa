package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage. It models symbolic
// links explicitly: Lstat and Remove act on the link itself, while Stat,
// ReadFile and ReadDir follow it.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode
	cwd   string

	// Error injection, keyed by normalized path
	errorPaths map[string]error
	// Error injection, keyed by operation name ("rename", "symlink", ...)
	opErrors map[string]error

	// Statistics
	readCount  int
	writeCount int
}

// fileNode represents a file, directory or symlink in memory
type fileNode struct {
	name     string
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
	children map[string]*fileNode
}

// NewMemoryFS creates a new in-memory filesystem
func NewMemoryFS() *MemoryFS {
	root := &fileNode{
		name:     "/",
		mode:     0755 | os.ModeDir,
		modTime:  time.Now(),
		isDir:    true,
		children: make(map[string]*fileNode),
	}

	return &MemoryFS{
		files:      map[string]*fileNode{"/": root},
		cwd:        "/",
		errorPaths: make(map[string]error),
		opErrors:   make(map[string]error),
	}
}

// normalizePath converts a path to absolute, slash-separated form
func (m *MemoryFS) normalizePath(path string) string {
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = m.cwd + "/" + path
	}
	return filepath.ToSlash(filepath.Clean(path))
}

// getNode retrieves a node at the given path without following a final symlink
func (m *MemoryFS) getNode(path string) (*fileNode, error) {
	path = m.normalizePath(path)

	if err, ok := m.errorPaths[path]; ok {
		return nil, err
	}

	node, exists := m.files[path]
	if !exists {
		return nil, &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
	}

	return node, nil
}

// resolve follows symlinks at path, up to a fixed depth
func (m *MemoryFS) resolve(path string) (*fileNode, string, error) {
	path = m.normalizePath(path)
	for i := 0; i < 40; i++ {
		path = m.resolveParents(path)
		node, err := m.getNode(path)
		if err != nil {
			return nil, path, err
		}
		if !node.isLink {
			return node, path, nil
		}
		target := filepath.ToSlash(node.linkDest)
		if !strings.HasPrefix(target, "/") {
			target = filepath.ToSlash(filepath.Dir(path)) + "/" + target
		}
		path = m.normalizePath(target)
	}
	return nil, path, &fs.PathError{Op: "stat", Path: path, Err: errors.New("too many levels of symbolic links")}
}

// resolveParents replaces any symlinked directory among the parents of
// path by its target
func (m *MemoryFS) resolveParents(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	current := ""
	for i, part := range parts[:len(parts)-1] {
		current += "/" + part
		node, ok := m.files[current]
		if !ok || !node.isLink {
			continue
		}
		target := filepath.ToSlash(node.linkDest)
		if !strings.HasPrefix(target, "/") {
			target = filepath.ToSlash(filepath.Dir(current)) + "/" + target
		}
		rest := strings.Join(parts[i+1:], "/")
		return m.resolveParents(m.normalizePath(target + "/" + rest))
	}
	return path
}

// getParentAndName splits a path into parent directory and filename
func (m *MemoryFS) getParentAndName(path string) (parent *fileNode, name string, err error) {
	path = m.normalizePath(path)
	dir := filepath.ToSlash(filepath.Dir(path))
	name = filepath.Base(path)

	parent, err = m.getNode(dir)
	if err != nil {
		return nil, "", err
	}

	if !parent.isDir {
		return nil, "", &fs.PathError{Op: "open", Path: dir, Err: errors.New("not a directory")}
	}

	return parent, name, nil
}

func (m *MemoryFS) opError(op string) error {
	return m.opErrors[op]
}

// ReadFile reads the entire file content, following symlinks
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCount++

	node, _, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}

	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

// WriteFile writes data to a file, creating parent directories if necessary
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCount++

	path := m.normalizePath(name)
	if err, ok := m.errorPaths[path]; ok {
		return err
	}

	if err := m.mkdirAll(filepath.ToSlash(filepath.Dir(path)), 0755); err != nil {
		return err
	}
	parent, filename, err := m.getParentAndName(path)
	if err != nil {
		return err
	}

	node := &fileNode{
		name:    filename,
		mode:    perm,
		modTime: time.Now(),
		content: make([]byte, len(data)),
	}
	copy(node.content, data)

	parent.children[filename] = node
	m.files[path] = node

	return nil
}

// Stat returns file info, following symlinks
func (m *MemoryFS) Stat(name string) (os.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCount++

	node, _, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// Lstat returns file info without following a final symlink
func (m *MemoryFS) Lstat(name string) (os.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCount++

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}

	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// Remove removes a file, a symlink or an empty directory. A symlink is
// removed itself, its target is never touched.
func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCount++

	if err := m.opError("remove"); err != nil {
		return &fs.PathError{Op: "remove", Path: name, Err: err}
	}

	path := m.normalizePath(name)

	node, err := m.getNode(path)
	if err != nil {
		return err
	}

	if node.isDir && len(node.children) > 0 {
		return &fs.PathError{Op: "remove", Path: name, Err: errors.New("directory not empty")}
	}

	parent, filename, err := m.getParentAndName(path)
	if err != nil {
		return err
	}

	delete(parent.children, filename)
	delete(m.files, path)

	return nil
}

// RemoveAll removes a path and everything below it. Symlinks below path
// are removed without following them.
func (m *MemoryFS) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCount++

	path = m.normalizePath(path)

	for p := range m.files {
		if p == path || strings.HasPrefix(p, path+"/") {
			delete(m.files, p)
		}
	}
	if parent, ok := m.files[filepath.ToSlash(filepath.Dir(path))]; ok && parent.isDir {
		delete(parent.children, filepath.Base(path))
	}

	return nil
}

// Rename moves a node and everything below it. The destination must not
// exist.
func (m *MemoryFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCount++

	if err := m.opError("rename"); err != nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}

	from := m.normalizePath(oldpath)
	to := m.normalizePath(newpath)

	node, err := m.getNode(from)
	if err != nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}
	if _, exists := m.files[to]; exists {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrExist}
	}

	newParent, newName, err := m.getParentAndName(to)
	if err != nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}
	oldParent, oldName, err := m.getParentAndName(from)
	if err != nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}

	moved := make(map[string]*fileNode)
	for p, n := range m.files {
		if p == from {
			moved[to] = n
		} else if strings.HasPrefix(p, from+"/") {
			moved[to+strings.TrimPrefix(p, from)] = n
		}
	}
	for p := range m.files {
		if p == from || strings.HasPrefix(p, from+"/") {
			delete(m.files, p)
		}
	}
	for p, n := range moved {
		m.files[p] = n
	}

	delete(oldParent.children, oldName)
	node.name = newName
	newParent.children[newName] = node

	return nil
}

// MkdirAll creates a directory and all necessary parents
func (m *MemoryFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCount++

	return m.mkdirAll(path, perm)
}

// mkdirAll is the internal implementation without locking
func (m *MemoryFS) mkdirAll(path string, perm os.FileMode) error {
	path = m.normalizePath(path)

	if node, err := m.getNode(path); err == nil {
		if !node.isDir {
			return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("file exists")}
		}
		return nil
	}

	parts := strings.Split(path, "/")
	current := ""
	currentNode := m.files["/"]

	for _, part := range parts {
		if part == "" {
			continue
		}

		next := current + "/" + part

		if child, exists := currentNode.children[part]; exists {
			if !child.isDir {
				return &fs.PathError{Op: "mkdir", Path: next, Err: errors.New("not a directory")}
			}
			currentNode = child
			current = next
			continue
		}

		newDir := &fileNode{
			name:     part,
			mode:     perm | os.ModeDir,
			modTime:  time.Now(),
			isDir:    true,
			children: make(map[string]*fileNode),
		}

		currentNode.children[part] = newDir
		m.files[next] = newDir

		currentNode = newDir
		current = next
	}

	return nil
}

// Readlink returns the destination of a symbolic link
func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCount++

	node, err := m.getNode(name)
	if err != nil {
		return "", err
	}

	if !node.isLink {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: errors.New("not a symbolic link")}
	}

	return node.linkDest, nil
}

// Symlink creates a symbolic link at link pointing to target
func (m *MemoryFS) Symlink(target, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCount++

	if err := m.opError("symlink"); err != nil {
		return &os.LinkError{Op: "symlink", Old: target, New: link, Err: err}
	}

	linkPath := m.normalizePath(link)

	if _, err := m.getNode(linkPath); err == nil {
		return &os.LinkError{Op: "symlink", Old: target, New: link, Err: fs.ErrExist}
	}

	parent, filename, err := m.getParentAndName(linkPath)
	if err != nil {
		return err
	}

	node := &fileNode{
		name:     filename,
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: target,
	}

	parent.children[filename] = node
	m.files[linkPath] = node

	return nil
}

// ReadDir reads a directory, following symlinks, and returns its entries
// sorted by name
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCount++

	node, _, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}

	entries := make([]fs.DirEntry, 0, len(node.children))
	for childName, child := range node.children {
		entries = append(entries, &dirEntry{
			name: childName,
			info: &fileInfo{node: child, name: childName},
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	return entries, nil
}

// WithError configures the filesystem to return an error for a specific path
func (m *MemoryFS) WithError(path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorPaths[m.normalizePath(path)] = err
	return m
}

// FailOperation makes every call of op ("rename", "symlink" or "remove")
// fail with err. A nil err clears the injection.
func (m *MemoryFS) FailOperation(op string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err == nil {
		delete(m.opErrors, op)
	} else {
		m.opErrors[op] = err
	}
	return m
}

// Stats returns filesystem operation statistics
func (m *MemoryFS) Stats() (reads, writes int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.readCount, m.writeCount
}

// ResetStats zeroes the operation counters
func (m *MemoryFS) ResetStats() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readCount, m.writeCount = 0, 0
}

// fileInfo implements os.FileInfo
type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir }
func (fi *fileInfo) Sys() interface{}   { return nil }

// dirEntry implements fs.DirEntry
type dirEntry struct {
	name string
	info os.FileInfo
}

func (de *dirEntry) Name() string               { return de.name }
func (de *dirEntry) IsDir() bool                { return de.info.IsDir() }
func (de *dirEntry) Type() os.FileMode          { return de.info.Mode().Type() }
func (de *dirEntry) Info() (os.FileInfo, error) { return de.info, nil }
