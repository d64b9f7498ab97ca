package imports

import "github.com/xab-mack/contractscope/internal/model"

// BuildDependencyGraph maps each file path to the import paths it references
// that resolved. Every file gets a node even with no imports; missing imports
// are excluded from the edges. Only one hop is recorded per file, so cycles
// need no special handling.
func BuildDependencyGraph(files []model.SourceFile, resolved *model.ResolvedImports) map[string][]string {
	ok := make(map[string]bool)
	if resolved != nil {
		for _, rec := range resolved.Resolved {
			ok[rec.Path] = true
		}
	}
	graph := make(map[string][]string, len(files))
	for _, f := range files {
		edges := []string{}
		seen := make(map[string]bool)
		for _, m := range reImport.FindAllStringSubmatch(f.Content, -1) {
			if ok[m[1]] && !seen[m[1]] {
				seen[m[1]] = true
				edges = append(edges, m[1])
			}
		}
		graph[f.Path] = edges
	}
	return graph
}
