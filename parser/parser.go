package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/erraggy/oasprofile/document"
	"github.com/erraggy/oasprofile/internal/pathutil"
	"github.com/erraggy/oasprofile/oaserrors"
	"go.yaml.in/yaml/v4"
)

// Format is the serialization a document was written in.
type Format string

const (
	// FormatJSON is a JSON document.
	FormatJSON Format = "json"
	// FormatYAML is a YAML document.
	FormatYAML Format = "yaml"
)

// Result is a decoded, reference-resolved document.
type Result struct {
	// Document is the root object.
	Document *document.Object
	// SourceMap maps JSON Pointers to positions in the root file. Nil when disabled.
	SourceMap *document.SourceMap
	// SourcePath is the path the document was read from, if any.
	SourcePath string
	// BaseURI is "file://" followed by the absolute path, or "" for in-memory input.
	BaseURI string
	// Format is the detected serialization.
	Format Format
	// RefsResolved counts the $ref objects replaced by their targets.
	RefsResolved int
	// ExternalDocuments counts the distinct files loaded for file references.
	ExternalDocuments int
	// LoadTime is how long decoding and resolution took.
	LoadTime time.Duration
}

// ParseFile reads, decodes and resolves the document at path.
func ParseFile(path string, opts ...Option) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("parser: file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("parser: error reading file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("parser: file not found: %s is a directory", path)
	}
	if info.Size() > MaxFileSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        MaxFileSize,
			Actual:       info.Size(),
			Message:      path,
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: error reading file %s: %w", path, err)
	}
	return Parse(data, append([]Option{WithSourcePath(path)}, opts...)...)
}

// Parse decodes and resolves a document held in memory.
func Parse(data []byte, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	log := cfg.logger
	if cfg.sourcePath != "" {
		log = log.With("file", cfg.sourcePath)
	}

	var sm *document.SourceMap
	if cfg.sourceMap {
		sm = document.NewSourceMap()
	}
	root, err := decode(data, cfg.sourcePath, sm)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Document:   root,
		SourceMap:  sm,
		SourcePath: cfg.sourcePath,
		Format:     detectFormat(data),
	}
	baseDir := "."
	if cfg.sourcePath != "" {
		abs, err := filepath.Abs(cfg.sourcePath)
		if err != nil {
			return nil, fmt.Errorf("parser: resolving path %s: %w", cfg.sourcePath, err)
		}
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			abs = resolved
		}
		result.BaseURI = "file://" + filepath.ToSlash(abs)
		baseDir = filepath.Dir(abs)
	}

	if cfg.resolveRefs {
		r := NewRefResolver(baseDir)
		r.SetMaxDepth(cfg.maxRefDepth)
		r.SetResolveExternal(cfg.resolveExternal)
		r.SetLogger(log)
		if cfg.sourcePath != "" {
			r.SetRootPath(filepath.Join(baseDir, filepath.Base(cfg.sourcePath)))
		}
		if err := r.ResolveAll(root); err != nil {
			return nil, err
		}
		result.RefsResolved = r.Resolved()
		result.ExternalDocuments = r.ExternalDocuments()
	}

	result.LoadTime = time.Since(start)
	log.Debug("parsed document",
		"format", string(result.Format),
		"refs", result.RefsResolved,
		"externalDocuments", result.ExternalDocuments,
		"duration", result.LoadTime,
	)
	return result, nil
}

// decode turns YAML or JSON bytes into an ordered tree. The root must be a mapping.
func decode(data []byte, path string, sm *document.SourceMap) (*document.Object, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: path, Message: "empty document"}
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "invalid YAML or JSON", Cause: err}
	}
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, &oaserrors.ParseError{
			Path:    path,
			Line:    root.Line,
			Column:  root.Column,
			Message: "document root must be an object",
		}
	}
	d := decoder{path: path, sm: sm, ptr: pathutil.Get(), expanding: make(map[*yaml.Node]bool)}
	defer pathutil.Put(d.ptr)
	v, err := d.value(root)
	if err != nil {
		return nil, err
	}
	return v.(*document.Object), nil
}

// decoder converts yaml nodes while tracking the pointer of the node being
// decoded. The pointer string is only built when a source map is recorded.
//
// Aliases are expanded into independent copies, so the decoder keeps the
// same alias budget go-yaml applies when decoding into values.
type decoder struct {
	path string
	sm   *document.SourceMap
	ptr  *pathutil.PathBuilder

	decoded    int
	aliased    int
	aliasDepth int
	expanding  map[*yaml.Node]bool
}

// allowedAliasRatio returns the share of decoded nodes that may come from
// alias expansion. Small documents may alias freely; the ratio tightens
// linearly between 400k and 4M decoded nodes.
func allowedAliasRatio(decoded int) float64 {
	switch {
	case decoded <= 400_000:
		return 0.99
	case decoded >= 4_000_000:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(decoded-400_000)/3_600_000)
	}
}

func (d *decoder) loc(n *yaml.Node) document.SourceLocation {
	return document.SourceLocation{Line: n.Line, Column: n.Column, File: d.path}
}

func (d *decoder) fail(n *yaml.Node, format string, args ...any) error {
	return &oaserrors.ParseError{
		Path:    d.path,
		Line:    n.Line,
		Column:  n.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

// count charges one decoded node against the alias budget.
func (d *decoder) count(n *yaml.Node) error {
	d.decoded++
	if d.aliasDepth > 0 {
		d.aliased++
	}
	if d.aliased > 100 && d.decoded > 1000 &&
		float64(d.aliased)/float64(d.decoded) > allowedAliasRatio(d.decoded) {
		return d.fail(n, "excessive aliasing")
	}
	return nil
}

// enterAlias marks the start of an alias expansion. The returned func ends it.
func (d *decoder) enterAlias(n *yaml.Node) (func(), error) {
	if d.expanding[n] {
		return nil, d.fail(n, "anchor %q value contains itself", n.Value)
	}
	d.expanding[n] = true
	d.aliasDepth++
	return func() {
		d.aliasDepth--
		delete(d.expanding, n)
	}, nil
}

func (d *decoder) value(n *yaml.Node) (any, error) {
	if err := d.count(n); err != nil {
		return nil, err
	}
	if d.sm != nil {
		d.sm.Set(d.ptr.String(), d.loc(n))
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.value(n.Content[0])
	case yaml.AliasNode:
		leave, err := d.enterAlias(n)
		if err != nil {
			return nil, err
		}
		defer leave()
		return d.value(n.Alias)
	case yaml.MappingNode:
		obj := document.NewObject(len(n.Content) / 2)
		if err := d.mapping(n, obj, false); err != nil {
			return nil, err
		}
		return obj, nil
	case yaml.SequenceNode:
		items := make([]any, len(n.Content))
		for i, item := range n.Content {
			d.ptr.PushIndex(i)
			v, err := d.value(item)
			d.ptr.Pop()
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return items, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, &oaserrors.ParseError{
				Path:    d.path,
				Line:    n.Line,
				Column:  n.Column,
				Message: "invalid scalar",
				Cause:   err,
			}
		}
		return v, nil
	default:
		return nil, nil
	}
}

// mapping decodes the pairs of n into obj. Merge keys ("<<") are applied
// after the explicit keys and never override them. When merging is set, n
// is the source of a merge and keys already in obj are skipped.
func (d *decoder) mapping(n *yaml.Node, obj *document.Object, merging bool) error {
	var merges []*yaml.Node
	var lines map[string]int
	if !merging {
		lines = make(map[string]int, len(n.Content)/2)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return d.fail(keyNode, "mapping keys must be scalars")
		}
		if isMerge(keyNode) {
			merges = append(merges, valNode)
			continue
		}
		key := keyNode.Value
		if merging {
			if obj.Has(key) {
				continue
			}
		} else {
			if line, dup := lines[key]; dup {
				return d.fail(keyNode, "mapping key %q already defined at line %d", key, line)
			}
			lines[key] = keyNode.Line
		}
		d.ptr.Push(key)
		if d.sm != nil {
			d.sm.SetKey(d.ptr.String(), d.loc(keyNode))
		}
		v, err := d.value(valNode)
		d.ptr.Pop()
		if err != nil {
			return err
		}
		obj.Set(key, v)
	}
	for _, m := range merges {
		if err := d.merge(m, obj, true); err != nil {
			return err
		}
	}
	return nil
}

// merge applies the value of a merge key: a mapping, or a sequence of
// mappings where earlier entries win.
func (d *decoder) merge(n *yaml.Node, obj *document.Object, allowSequence bool) error {
	if err := d.count(n); err != nil {
		return err
	}
	switch n.Kind {
	case yaml.AliasNode:
		leave, err := d.enterAlias(n)
		if err != nil {
			return err
		}
		defer leave()
		return d.merge(n.Alias, obj, allowSequence)
	case yaml.MappingNode:
		return d.mapping(n, obj, true)
	case yaml.SequenceNode:
		if allowSequence {
			for _, item := range n.Content {
				if err := d.merge(item, obj, false); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return d.fail(n, "map merge requires a mapping or a sequence of mappings")
}

func isMerge(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Value == "<<" && n.ShortTag() == "!!merge"
}

// detectFormat reports JSON when the first significant byte opens a JSON value.
func detectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}
