package engine

import (
	"context"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/xab-mack/contractscope/internal/evm"
	"github.com/xab-mack/contractscope/internal/imports"
	"github.com/xab-mack/contractscope/internal/model"
	"github.com/xab-mack/contractscope/internal/solidity"
	"github.com/xab-mack/contractscope/internal/util"
)

// Engine runs one analysis per request. It holds no state between
// invocations beyond the injected import fetcher, so concurrent calls for
// unrelated addresses do not interact.
type Engine struct {
	resolver *imports.Resolver
}

func New() *Engine {
	return &Engine{resolver: imports.NewResolver(nil)}
}

func NewWithFetcher(f imports.Fetcher) *Engine {
	return &Engine{resolver: imports.NewResolver(f)}
}

// Analyze dispatches on the input union and assembles the analysis record.
// The upgradeability verdict is the OR of the source and bytecode signals and
// gates cache eligibility.
func (e *Engine) Analyze(ctx context.Context, in model.AnalysisInput) *model.AnalysisRecord {
	start := time.Now()
	address, chainID := in.Target()
	rec := &model.AnalysisRecord{Address: normalizeAddress(address), ChainID: chainID}

	switch input := in.(type) {
	case model.VerifiedInput:
		rec.Parsed = solidity.ParseMultiFileContracts(input.Files)
		rec.Imports = e.resolver.Resolve(ctx, input.Files)
		rec.ImportGraph = imports.BuildDependencyGraph(input.Files, rec.Imports)
		var all strings.Builder
		for _, f := range input.Files {
			all.WriteString(f.Content)
			all.WriteString("\n")
		}
		rec.Upgradeable = solidity.IsUpgradeableSource(all.String())
		rec.Fingerprint = util.Fingerprint(rec.Address, chainID, "source", all.String())
	case model.BytecodeInput:
		res := evm.AnalyzeBytecode(rec.Address, input.Bytecode)
		rec.Bytecode = res
		rec.Upgradeable = evm.IsUpgradeableContract(res.OpcodeCounters, res.FunctionSelectors)
		rec.Fingerprint = util.Fingerprint(rec.Address, chainID, "bytecode", input.Bytecode)
	}

	rec.Cacheable = !rec.Upgradeable
	rec.Elapsed = time.Since(start)
	return rec
}

func normalizeAddress(address string) string {
	if common.IsHexAddress(address) {
		return strings.ToLower(common.HexToAddress(address).Hex())
	}
	return strings.ToLower(strings.TrimSpace(address))
}
