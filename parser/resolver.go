package parser

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/erraggy/oasprofile/document"
	"github.com/erraggy/oasprofile/oaserrors"
	"github.com/go-openapi/jsonpointer"
)

// RefResolver replaces $ref objects with deep copies of their targets.
//
// A resolver is used for one root document and is not safe for concurrent use.
type RefResolver struct {
	// baseDir bounds file references: targets must live at or below it
	baseDir string
	// rootPath is the absolute path of the root document ("" for in-memory input)
	rootPath string
	maxDepth int
	external bool
	logger   Logger

	// documents caches loaded files by absolute path; the root is stored under rootPath
	documents map[string]*document.Object
	// memo holds fully resolved targets by canonical id (path#fragment)
	memo map[string]*document.Object
	// stack holds the canonical ids currently being resolved
	stack []string
	// refs holds the $ref strings matching stack, for error chains
	refs []string

	resolved  int
	externals int
}

// NewRefResolver creates a resolver whose file references resolve relative
// to, and may not escape, baseDir.
func NewRefResolver(baseDir string) *RefResolver {
	if abs, err := filepath.Abs(baseDir); err == nil {
		baseDir = abs
	}
	return &RefResolver{
		baseDir:   baseDir,
		maxDepth:  DefaultMaxRefDepth,
		external:  true,
		logger:    NopLogger{},
		documents: make(map[string]*document.Object),
		memo:      make(map[string]*document.Object),
	}
}

// SetMaxDepth sets the maximum $ref chain length. Values below 1 are ignored.
func (r *RefResolver) SetMaxDepth(n int) {
	if n > 0 {
		r.maxDepth = n
	}
}

// SetResolveExternal enables or disables file references.
func (r *RefResolver) SetResolveExternal(enabled bool) {
	r.external = enabled
}

// SetLogger sets the logger. A nil logger is ignored.
func (r *RefResolver) SetLogger(l Logger) {
	if l != nil {
		r.logger = l
	}
}

// SetRootPath records the root document's absolute path so references that
// name the root file explicitly reuse the in-memory tree.
func (r *RefResolver) SetRootPath(path string) {
	r.rootPath = path
}

// Resolved returns the number of $ref objects replaced so far.
func (r *RefResolver) Resolved() int {
	return r.resolved
}

// ExternalDocuments returns the number of files loaded for file references.
func (r *RefResolver) ExternalDocuments() int {
	return r.externals
}

// ResolveAll resolves every $ref in root in place.
func (r *RefResolver) ResolveAll(root *document.Object) error {
	r.documents[r.rootPath] = root
	_, err := r.walk(root, r.rootPath)
	return err
}

// walk resolves references below v, which belongs to the document at file.
// It returns the value that should replace v.
func (r *RefResolver) walk(v any, file string) (any, error) {
	switch t := v.(type) {
	case *document.Object:
		if ref, ok := t.Get("$ref"); ok {
			if s, isString := ref.(string); isString {
				return r.resolve(t, s, file)
			}
		}
		for _, k := range t.Keys() {
			child, _ := t.Get(k)
			nv, err := r.walk(child, file)
			if err != nil {
				return nil, err
			}
			t.Set(k, nv)
		}
		return t, nil
	case []any:
		for i, item := range t {
			nv, err := r.walk(item, file)
			if err != nil {
				return nil, err
			}
			t[i] = nv
		}
		return t, nil
	default:
		return v, nil
	}
}

func (r *RefResolver) resolve(obj *document.Object, ref, file string) (any, error) {
	filePart, fragment, _ := strings.Cut(ref, "#")
	refType := "local"
	targetFile := file

	if filePart != "" {
		refType = "file"
		if !r.external {
			r.logger.Debug("leaving external reference unresolved", "ref", ref)
			return obj, nil
		}
		if strings.Contains(filePart, "://") {
			return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "http", Message: "remote references are not supported"}
		}
		abs, err := r.filePath(file, filePart)
		if err != nil {
			return nil, &oaserrors.ReferenceError{Ref: ref, RefType: refType, IsPathTraversal: true, Cause: err}
		}
		targetFile = abs
	}

	id := targetFile + "#" + fragment
	if i := slices.Index(r.stack, id); i >= 0 {
		chain := append(slices.Clone(r.refs[i:]), ref)
		return nil, &oaserrors.ReferenceError{Ref: ref, RefType: refType, IsCircular: true, Chain: chain}
	}
	if len(r.stack) >= r.maxDepth {
		return nil, &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: refType,
			Message: "reference chain too deep",
			Cause: &oaserrors.ResourceLimitError{
				ResourceType: "ref_depth",
				Limit:        int64(r.maxDepth),
				Actual:       int64(len(r.stack) + 1),
			},
		}
	}

	target, ok := r.memo[id]
	if !ok {
		doc, err := r.load(targetFile)
		if err != nil {
			return nil, &oaserrors.ReferenceError{Ref: ref, RefType: refType, Message: "cannot load target document", Cause: err}
		}
		raw, err := lookup(doc, fragment)
		if err != nil {
			return nil, &oaserrors.ReferenceError{Ref: ref, RefType: refType, Message: "target not found", Cause: err}
		}
		tobj, isObject := raw.(*document.Object)
		if !isObject {
			return nil, &oaserrors.ReferenceError{Ref: ref, RefType: refType, Message: fmt.Sprintf("target is %T, not an object", raw)}
		}

		r.stack = append(r.stack, id)
		r.refs = append(r.refs, ref)
		resolved, err := r.walk(tobj.Clone(), targetFile)
		r.stack = r.stack[:len(r.stack)-1]
		r.refs = r.refs[:len(r.refs)-1]
		if err != nil {
			return nil, err
		}
		target = resolved.(*document.Object)
		r.memo[id] = target
	}

	out := target.Clone()
	for _, k := range obj.Keys() {
		if k == "$ref" {
			continue
		}
		v, _ := obj.Get(k)
		nv, err := r.walk(v, file)
		if err != nil {
			return nil, err
		}
		out.Set(k, nv)
	}
	r.resolved++
	r.logger.Debug("resolved reference", "ref", ref, "depth", len(r.stack)+1)
	return out, nil
}

// filePath returns the absolute path of a file reference made from a
// document at file, rejecting paths that leave baseDir.
func (r *RefResolver) filePath(file, ref string) (string, error) {
	if unescaped, err := url.PathUnescape(ref); err == nil {
		ref = unescaped
	}
	p := filepath.FromSlash(ref)
	if !filepath.IsAbs(p) {
		dir := r.baseDir
		if file != "" {
			dir = filepath.Dir(file)
		}
		p = filepath.Join(dir, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(r.baseDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s", abs, r.baseDir)
	}
	return abs, nil
}

// load returns the decoded document at path, reading it on first use.
func (r *RefResolver) load(path string) (*document.Object, error) {
	if doc, ok := r.documents[path]; ok {
		return doc, nil
	}
	if r.externals >= MaxCachedDocuments {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "cached_documents",
			Limit:        MaxCachedDocuments,
			Actual:       int64(r.externals + 1),
			Message:      "too many external documents",
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
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
		return nil, err
	}
	doc, err := decode(data, path, nil)
	if err != nil {
		return nil, err
	}
	r.documents[path] = doc
	r.externals++
	r.logger.Debug("loaded external document", "path", path)
	return doc, nil
}

// lookup evaluates a URI fragment holding a JSON Pointer against doc.
func lookup(doc *document.Object, fragment string) (any, error) {
	if unescaped, err := url.PathUnescape(fragment); err == nil {
		fragment = unescaped
	}
	if fragment == "" {
		return doc, nil
	}
	if !strings.HasPrefix(fragment, "/") {
		return nil, fmt.Errorf("fragment %q is not a JSON Pointer", fragment)
	}
	ptr, err := jsonpointer.New(fragment)
	if err != nil {
		return nil, err
	}
	v, _, err := ptr.Get(doc)
	return v, err
}
