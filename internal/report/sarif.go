package report

import (
	"encoding/json"

	"github.com/xab-mack/contractscope/internal/model"
)

type sarif struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}
type sarifDriver struct {
	Name string `json:"name"`
}

type sarifResult struct {
	RuleID  string       `json:"ruleId"`
	Level   string       `json:"level"`
	Message sarifMessage `json:"message"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

// ToSARIF renders the risk findings of a bytecode analysis as SARIF results
// so CI pipelines can consume the engine output directly.
func ToSARIF(rec *model.AnalysisRecord) ([]byte, error) {
	var results []sarifResult
	if rec.Bytecode != nil {
		level := "note"
		switch rec.Bytecode.RiskAssessment.Severity {
		case model.SeverityLow:
			level = "note"
		case model.SeverityMedium:
			level = "warning"
		case model.SeverityHigh, model.SeverityCritical:
			level = "error"
		}
		for _, risk := range rec.Bytecode.RiskAssessment.Risks {
			results = append(results, sarifResult{
				RuleID:  "EVM-RISK",
				Level:   level,
				Message: sarifMessage{Text: risk},
			})
		}
	}
	if rec.Upgradeable {
		results = append(results, sarifResult{
			RuleID:  "UPGRADEABLE",
			Level:   "warning",
			Message: sarifMessage{Text: "Contract matches an upgradeable/proxy pattern; result is not cacheable"},
		})
	}
	s := sarif{Version: "2.1.0", Runs: []sarifRun{{Tool: sarifTool{Driver: sarifDriver{Name: "contractscope"}}, Results: results}}}
	return json.MarshalIndent(s, "", "  ")
}
