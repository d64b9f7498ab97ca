package model

import "time"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func ParseSeverity(s string) Severity {
	switch s {
	case string(SeverityCritical):
		return SeverityCritical
	case string(SeverityHigh):
		return SeverityHigh
	case string(SeverityMedium):
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func SeverityGTE(a, b Severity) bool {
	order := map[Severity]int{SeverityLow: 1, SeverityMedium: 2, SeverityHigh: 3, SeverityCritical: 4}
	return order[a] >= order[b]
}

// SourceFile is one unit of verified source input.
type SourceFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ContractInfo captures the structure recovered for a single contract body.
type ContractInfo struct {
	Name       string   `json:"name"`
	Path       string   `json:"path"`
	Functions  []string `json:"functions"`
	Events     []string `json:"events"`
	Modifiers  []string `json:"modifiers"`
	IsAbstract bool     `json:"isAbstract"`
	Inherits   []string `json:"inherits"`
	LineCount  int      `json:"lineCount"`
}

// CallGraphNode holds one contract's construction edges. Calls/CalledBy are
// kept inverse-consistent by the parser.
type CallGraphNode struct {
	Calls    []string `json:"calls"`
	CalledBy []string `json:"calledBy"`
}

type CallGraph map[string]*CallGraphNode

type ParsedFiles struct {
	Contracts      []ContractInfo `json:"contracts"`
	CallGraph      CallGraph      `json:"callGraph"`
	MainContract   string         `json:"mainContract,omitempty"`
	TotalLines     int            `json:"totalLines"`
	TotalFunctions int            `json:"totalFunctions"`
	TotalEvents    int            `json:"totalEvents"`
}

type ImportType string

const (
	ImportRelative ImportType = "relative"
	ImportNPM      ImportType = "npm"
	ImportGithub   ImportType = "github"
	ImportUnknown  ImportType = "unknown"
)

// ImportRecord is the per-path resolution outcome. Resolved entries carry
// Content; missing entries carry Error.
type ImportRecord struct {
	Path     string     `json:"path"`
	Type     ImportType `json:"type"`
	Resolved bool       `json:"resolved"`
	Content  string     `json:"content,omitempty"`
	Error    string     `json:"error,omitempty"`
}

type ResolvedImports struct {
	Resolved    []ImportRecord `json:"resolved"`
	Missing     []ImportRecord `json:"missing"`
	AutoFetched []ImportRecord `json:"autoFetched"`
}

type FunctionSelector struct {
	Selector  string   `json:"selector"`
	Name      string   `json:"name"`
	Signature string   `json:"signature"`
	Inputs    []string `json:"inputs"`
}

// OpcodeCounters maps opcode mnemonic to occurrence count.
type OpcodeCounters map[string]int

type RiskAssessment struct {
	Severity        Severity `json:"severity"`
	Risks           []string `json:"risks"`
	Recommendations []string `json:"recommendations"`
}

type BytecodeAnalysisResult struct {
	Address             string             `json:"address"`
	Bytecode            string             `json:"bytecode"`
	IsContract          bool               `json:"isContract"`
	FunctionSelectors   []FunctionSelector `json:"functionSelectors"`
	OpcodeCounters      OpcodeCounters     `json:"opcodeCounters"`
	ContractType        string             `json:"contractType"`
	RiskAssessment      RiskAssessment     `json:"riskAssessment"`
	EstimatedComplexity int                `json:"estimatedComplexity"`
}

// AnalysisRecord is the assembled output handed to scoring and caching.
// Cacheable is false whenever Upgradeable is true; the store enforces this
// again on write.
type AnalysisRecord struct {
	Address     string                  `json:"address"`
	ChainID     int64                   `json:"chainId"`
	Parsed      *ParsedFiles            `json:"parsed,omitempty"`
	Imports     *ResolvedImports        `json:"imports,omitempty"`
	ImportGraph map[string][]string     `json:"importGraph,omitempty"`
	Bytecode    *BytecodeAnalysisResult `json:"bytecode,omitempty"`
	Upgradeable bool                    `json:"upgradeable"`
	Cacheable   bool                    `json:"cacheable"`
	Fingerprint string                  `json:"fingerprint"`
	Elapsed     time.Duration           `json:"elapsed"`
}
