package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xab-mack/contractscope/internal/model"
)

type modelT struct {
	rec *model.AnalysisRecord
}

func initialModel(rec *model.AnalysisRecord) modelT { return modelT{rec: rec} }

func (m modelT) Init() tea.Cmd                           { return nil }
func (m modelT) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return m, nil }
func (m modelT) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analysis %s (chain %d)\n\n", m.rec.Address, m.rec.ChainID)
	if p := m.rec.Parsed; p != nil {
		fmt.Fprintf(&b, "Contracts: %d  Functions: %d  Events: %d  Main: %s\n",
			len(p.Contracts), p.TotalFunctions, p.TotalEvents, p.MainContract)
	}
	if bc := m.rec.Bytecode; bc != nil {
		fmt.Fprintf(&b, "Type: %s  Selectors: %d  Complexity: %d  Severity: %s\n",
			bc.ContractType, len(bc.FunctionSelectors), bc.EstimatedComplexity, bc.RiskAssessment.Severity)
		for _, r := range bc.RiskAssessment.Risks {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}
	fmt.Fprintf(&b, "\nUpgradeable: %v  Cacheable: %v\n", m.rec.Upgradeable, m.rec.Cacheable)
	return b.String()
}

// Run launches a minimal analysis summary view
func Run(rec *model.AnalysisRecord) error {
	p := tea.NewProgram(initialModel(rec))
	_, err := p.Run()
	return err
}
