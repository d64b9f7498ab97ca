package solidity

import (
	"regexp"
	"strings"

	"github.com/xab-mack/contractscope/internal/model"
)

// Structural approximation layer: contracts are delimited by brace counting
// and members recovered by per-line regex matching. This is deliberately not
// a compiler front-end; see the heuristics notes in DESIGN.md.
var (
	reContract = regexp.MustCompile(`^\s*(?:abstract\s+)?contract\s+([A-Za-z_$][\w$]*)(?:\s+is\s+([^{]+))?`)
	reFunction = regexp.MustCompile(`\bfunction\s+([A-Za-z_$][\w$]*)`)
	reEvent    = regexp.MustCompile(`\bevent\s+([A-Za-z_$][\w$]*)`)
	reModifier = regexp.MustCompile(`\bmodifier\s+([A-Za-z_$][\w$]*)`)
	reAbstract = regexp.MustCompile(`\babstract\b`)
)

var mainNameHints = []string{"main", "primary", "core", "master", "factory"}

type openContract struct {
	info  model.ContractInfo
	body  strings.Builder
	depth int
	seen  bool // a '{' has been consumed for this contract
}

// ParseMultiFileContracts scans a verified source set and recovers contract
// declarations, members, inheritance, a shallow construction call graph and a
// best-effort main contract. It never fails: malformed input yields a partial
// or empty result.
func ParseMultiFileContracts(files []model.SourceFile) *model.ParsedFiles {
	out := &model.ParsedFiles{CallGraph: model.CallGraph{}}
	bodies := make(map[string]string)

	for _, f := range files {
		lines := strings.Split(f.Content, "\n")
		out.TotalLines += len(lines)

		var cur *openContract
		for _, line := range lines {
			if cur == nil {
				if name, inherits, ok := matchContract(line); ok {
					cur = &openContract{info: model.ContractInfo{
						Name:      name,
						Path:      f.Path,
						Functions: []string{},
						Events:    []string{},
						Modifiers: []string{},
						Inherits:  inherits,
					}}
				} else {
					continue
				}
			}

			cur.body.WriteString(line)
			cur.body.WriteString("\n")
			cur.info.LineCount++

			for _, m := range reFunction.FindAllStringSubmatch(line, -1) {
				cur.info.Functions = append(cur.info.Functions, m[1])
			}
			for _, m := range reEvent.FindAllStringSubmatch(line, -1) {
				cur.info.Events = append(cur.info.Events, m[1])
			}
			for _, m := range reModifier.FindAllStringSubmatch(line, -1) {
				cur.info.Modifiers = append(cur.info.Modifiers, m[1])
			}

			opens := strings.Count(line, "{")
			closes := strings.Count(line, "}")
			if opens > 0 {
				cur.seen = true
			}
			cur.depth += opens - closes
			if cur.seen && cur.depth <= 0 {
				emit(out, bodies, cur)
				cur = nil
			}
		}
		// Unterminated contract at EOF is still emitted.
		if cur != nil {
			emit(out, bodies, cur)
		}
	}

	for _, c := range out.Contracts {
		out.TotalFunctions += len(c.Functions)
		out.TotalEvents += len(c.Events)
	}

	buildCallGraph(out, bodies)
	out.MainContract = pickMainContract(out)
	return out
}

func matchContract(line string) (name string, inherits []string, ok bool) {
	m := reContract.FindStringSubmatch(line)
	if m == nil {
		return "", nil, false
	}
	name, raw := m[1], m[2]
	inherits = []string{}
	for _, base := range strings.Split(raw, ",") {
		base = strings.TrimSpace(base)
		// drop constructor-style base arguments: "Base(arg)" -> "Base"
		if i := strings.IndexByte(base, '('); i >= 0 {
			base = strings.TrimSpace(base[:i])
		}
		if base != "" {
			inherits = append(inherits, base)
		}
	}
	return name, inherits, true
}

func emit(out *model.ParsedFiles, bodies map[string]string, c *openContract) {
	body := c.body.String()
	if reAbstract.MatchString(body) {
		c.info.IsAbstract = true
	}
	out.Contracts = append(out.Contracts, c.info)
	if _, dup := bodies[c.info.Name]; !dup {
		bodies[c.info.Name] = body
	}
}

// buildCallGraph records a calls edge from A to B when A's body constructs B
// via "new B". Call styles other than direct construction are intentionally
// not recovered.
func buildCallGraph(out *model.ParsedFiles, bodies map[string]string) {
	for _, c := range out.Contracts {
		if _, ok := out.CallGraph[c.Name]; !ok {
			out.CallGraph[c.Name] = &model.CallGraphNode{Calls: []string{}, CalledBy: []string{}}
		}
	}
	for _, caller := range out.Contracts {
		body := bodies[caller.Name]
		for _, callee := range out.Contracts {
			if callee.Name == caller.Name {
				continue
			}
			re := regexp.MustCompile(`\bnew\s+` + regexp.QuoteMeta(callee.Name) + `\b`)
			if !re.MatchString(body) {
				continue
			}
			addEdge(&out.CallGraph[caller.Name].Calls, callee.Name)
			addEdge(&out.CallGraph[callee.Name].CalledBy, caller.Name)
		}
	}
}

func addEdge(set *[]string, name string) {
	for _, v := range *set {
		if v == name {
			return
		}
	}
	*set = append(*set, name)
}

// pickMainContract applies, in order: name hint match, largest calledBy set,
// largest function count. Ties break by parse order.
func pickMainContract(out *model.ParsedFiles) string {
	if len(out.Contracts) == 0 {
		return ""
	}
	if len(out.Contracts) == 1 {
		return out.Contracts[0].Name
	}
	for _, c := range out.Contracts {
		lower := strings.ToLower(c.Name)
		for _, hint := range mainNameHints {
			if strings.Contains(lower, hint) {
				return c.Name
			}
		}
	}
	best, bestRefs := "", 0
	for _, c := range out.Contracts {
		if n := len(out.CallGraph[c.Name].CalledBy); n > bestRefs {
			best, bestRefs = c.Name, n
		}
	}
	if best != "" {
		return best
	}
	bestFns := -1
	for _, c := range out.Contracts {
		if len(c.Functions) > bestFns {
			best, bestFns = c.Name, len(c.Functions)
		}
	}
	return best
}
