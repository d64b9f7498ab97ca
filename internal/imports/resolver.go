package imports

import (
	"context"
	"path"
	"regexp"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/xab-mack/contractscope/internal/model"
)

// reImport matches the common Solidity import forms: plain, aliased,
// namespace (* as X from) and named ({A, B} from). All yield the raw path.
var reImport = regexp.MustCompile(`(?m)^\s*import\s+(?:(?:\{[^}]*\}|\*\s*as\s+[A-Za-z_$][\w$]*)\s+from\s+)?["']([^"']+)["']`)

var npmPrefixes = []string{
	"@openzeppelin/",
	"@chainlink/",
	"@uniswap/",
	"@aave/",
	"@arbitrum/",
	"solmate/",
	"solady/",
	"hardhat/",
	"forge-std/",
	"ds-test/",
}

// Resolver resolves import paths against the caller's file set and the
// built-in package registry. Registry lookups for the same path are collapsed
// through singleflight; the zero fetcher is the embedded registry.
type Resolver struct {
	fetcher Fetcher
	group   singleflight.Group
}

func NewResolver(fetcher Fetcher) *Resolver {
	if fetcher == nil {
		fetcher = EmbeddedRegistry()
	}
	return &Resolver{fetcher: fetcher}
}

// Resolve classifies and resolves every distinct import path referenced
// across the file set. Lookups run concurrently per unique path; a failing
// lookup degrades to a missing entry and never aborts its siblings.
func (r *Resolver) Resolve(ctx context.Context, files []model.SourceFile) *model.ResolvedImports {
	paths := ExtractImportPaths(files)
	records := make([]model.ImportRecord, len(paths))

	cpu := runtime.NumCPU()
	if cpu < 2 {
		cpu = 2
	}
	sem := make(chan struct{}, cpu)
	var wg sync.WaitGroup
	for i, p := range paths {
		i, p := i, p
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			records[i] = r.resolveOne(ctx, p, files)
		}()
	}
	wg.Wait()

	out := &model.ResolvedImports{
		Resolved:    []model.ImportRecord{},
		Missing:     []model.ImportRecord{},
		AutoFetched: []model.ImportRecord{},
	}
	for _, rec := range records {
		if rec.Resolved {
			out.Resolved = append(out.Resolved, rec)
			if rec.Type == model.ImportNPM {
				out.AutoFetched = append(out.AutoFetched, rec)
			}
		} else {
			out.Missing = append(out.Missing, rec)
		}
	}
	return out
}

func (r *Resolver) resolveOne(ctx context.Context, importPath string, files []model.SourceFile) model.ImportRecord {
	rec := model.ImportRecord{Path: importPath, Type: Classify(importPath)}
	switch rec.Type {
	case model.ImportRelative:
		if f, ok := findLocalFile(importPath, files); ok {
			rec.Resolved = true
			rec.Content = f.Content
		} else {
			rec.Error = "file not found in provided file set"
		}
	case model.ImportNPM:
		content, err, _ := r.group.Do(importPath, func() (any, error) {
			return r.fetcher.Fetch(ctx, importPath)
		})
		if err != nil {
			rec.Error = err.Error()
		} else {
			rec.Resolved = true
			rec.Content = content.(string)
		}
	case model.ImportGithub:
		rec.Error = "github imports not yet implemented"
	default:
		rec.Error = "unresolvable import path"
	}
	return rec
}

// ExtractImportPaths returns the distinct raw import paths across all files,
// in first-seen order.
func ExtractImportPaths(files []model.SourceFile) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range files {
		for _, m := range reImport.FindAllStringSubmatch(f.Content, -1) {
			p := m[1]
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// Classify tags an import path by provenance, in priority order.
func Classify(importPath string) model.ImportType {
	if strings.HasPrefix(importPath, "./") || strings.HasPrefix(importPath, "../") {
		return model.ImportRelative
	}
	for _, prefix := range npmPrefixes {
		if strings.HasPrefix(importPath, prefix) {
			return model.ImportNPM
		}
	}
	if strings.Contains(importPath, "github.com") || strings.Contains(importPath, "githubusercontent.com") {
		return model.ImportGithub
	}
	return model.ImportUnknown
}

// findLocalFile matches a relative import path against the provided file set:
// exact path, suffix match on the ./ and ../ stripped form, then basename.
func findLocalFile(importPath string, files []model.SourceFile) (model.SourceFile, bool) {
	trimmed := importPath
	for strings.HasPrefix(trimmed, "./") || strings.HasPrefix(trimmed, "../") {
		trimmed = strings.TrimPrefix(trimmed, "./")
		trimmed = strings.TrimPrefix(trimmed, "../")
	}
	for _, f := range files {
		if f.Path == importPath || f.Path == trimmed {
			return f, true
		}
		if strings.HasSuffix(f.Path, "/"+trimmed) {
			return f, true
		}
	}
	base := path.Base(trimmed)
	for _, f := range files {
		if path.Base(f.Path) == base {
			return f, true
		}
	}
	return model.SourceFile{}, false
}
