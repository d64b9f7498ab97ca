package evm

import (
	"fmt"

	"github.com/xab-mack/contractscope/internal/model"
)

// Escalation thresholds for SELFDESTRUCT occurrence counts.
const (
	selfDestructCritical = 100
	selfDestructHigh     = 10
)

// assessRisk evaluates independent opcode/selector signals. Severity follows
// the number of independent findings (1 low, 2 medium, >=3 high); the
// CRITICAL/HIGH strings for heavy SELFDESTRUCT use are extra markers layered
// on top and do not feed that count.
func assessRisk(counters model.OpcodeCounters, selectors []model.FunctionSelector) model.RiskAssessment {
	risks := []string{}
	recommendations := []string{}
	findings := 0

	if sd := counters["SELFDESTRUCT"]; sd > 0 {
		findings++
		risks = append(risks, "Contract can self-destruct")
		switch {
		case sd > selfDestructCritical:
			risks = append(risks, fmt.Sprintf("CRITICAL: SELFDESTRUCT appears %d times", sd))
			recommendations = append(recommendations, "DO NOT INTERACT: contract is dominated by self-destruct logic")
		case sd > selfDestructHigh:
			risks = append(risks, fmt.Sprintf("HIGH: SELFDESTRUCT appears %d times", sd))
		}
	}
	if counters["DELEGATECALL"] > 0 {
		findings++
		risks = append(risks, "Contract uses delegatecall - potential proxy pattern")
	}
	if counters["CREATE"] > 0 || counters["CREATE2"] > 0 {
		findings++
		risks = append(risks, "Contract can create new contracts")
	}
	if counters["CALL"] > 0 && counters["SSTORE"] > 0 {
		findings++
		risks = append(risks, "Potential reentrancy vulnerability")
		recommendations = append(recommendations, "Use reentrancy guards around external calls that touch storage")
	}
	if len(selectors) >= 3 && !hasAccessControlSelector(selectors) {
		findings++
		risks = append(risks, "No apparent access control mechanisms")
	}

	severity := model.SeverityLow
	switch {
	case findings >= 3:
		severity = model.SeverityHigh
	case findings == 2:
		severity = model.SeverityMedium
	}
	return model.RiskAssessment{Severity: severity, Risks: risks, Recommendations: recommendations}
}
