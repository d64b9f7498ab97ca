package evm

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"

	"github.com/xab-mack/contractscope/internal/model"
)

// AnalyzeBytecode disassembles raw deployed bytecode into an opcode
// histogram, recovers the probable public function surface by selector
// matching and derives a heuristic risk assessment. Pure: malformed input
// degrades to an empty result, it never fails.
//
// The opcode walk treats every byte position as a potential opcode and does
// not skip PUSH immediate data. That is a deliberate bound of this
// structural-approximation layer, not full EVM disassembly.
func AnalyzeBytecode(address, bytecodeHex string) *model.BytecodeAnalysisResult {
	normalized := normalizeHex(bytecodeHex)
	res := &model.BytecodeAnalysisResult{
		Address:           address,
		Bytecode:          bytecodeHex,
		FunctionSelectors: []model.FunctionSelector{},
		OpcodeCounters:    model.OpcodeCounters{},
		ContractType:      "Custom Contract",
	}
	if normalized == "" {
		return res
	}
	res.IsContract = true

	code := common.FromHex(normalized)
	for _, b := range code {
		op := vm.OpCode(b)
		name := op.String()
		// Undefined byte values are ignored, not errors.
		if strings.HasPrefix(name, "opcode") {
			continue
		}
		res.OpcodeCounters[name]++
	}

	res.FunctionSelectors = recoverSelectors(normalized)
	res.ContractType = classifyContract(res.FunctionSelectors)
	res.RiskAssessment = assessRisk(res.OpcodeCounters, res.FunctionSelectors)
	res.EstimatedComplexity = estimateComplexity(len(code), len(res.FunctionSelectors))
	return res
}

func normalizeHex(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "0x")
	return s
}

// estimateComplexity maps code size and recovered surface onto [0,100]. It is
// monotone in both inputs and clamps at 100.
func estimateComplexity(codeLen, selectorCount int) int {
	score := codeLen/50 + selectorCount*4
	if score > 100 {
		return 100
	}
	return score
}
