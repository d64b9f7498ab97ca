package engine

import (
	"context"
	"testing"

	"github.com/xab-mack/contractscope/internal/model"
)

func TestAnalyzeBytecodePath(t *testing.T) {
	eng := New()
	rec := eng.Analyze(context.Background(), model.BytecodeInput{
		Address:  "0x000000000000000000000000000000000000dEaD",
		ChainID:  1,
		Bytecode: "0x63a9059cbb6370a082316323b872dd63095ea7b36318160ddd",
	})
	if rec.Bytecode == nil {
		t.Fatal("Bytecode result missing")
	}
	if rec.Parsed != nil {
		t.Error("Parsed should be nil on the bytecode path")
	}
	if rec.Bytecode.ContractType != "ERC20 Token" {
		t.Errorf("ContractType = %q, want ERC20 Token", rec.Bytecode.ContractType)
	}
	if rec.Upgradeable {
		t.Error("plain ERC20 surface should not be upgradeable")
	}
	if !rec.Cacheable {
		t.Error("non-upgradeable record should be cacheable")
	}
	if rec.Address != "0x000000000000000000000000000000000000dead" {
		t.Errorf("address not normalized: %q", rec.Address)
	}
	if rec.Fingerprint == "" {
		t.Error("fingerprint missing")
	}
}

func TestAnalyzeUpgradeableVetoesCaching(t *testing.T) {
	eng := New()
	// DELEGATECALL in the opcode stream
	rec := eng.Analyze(context.Background(), model.BytecodeInput{Address: "0x1", ChainID: 1, Bytecode: "0xf4"})
	if !rec.Upgradeable {
		t.Fatal("delegatecall bytecode should be upgradeable")
	}
	if rec.Cacheable {
		t.Fatal("upgradeable record must not be cacheable")
	}
}

func TestAnalyzeVerifiedPath(t *testing.T) {
	eng := New()
	rec := eng.Analyze(context.Background(), model.VerifiedInput{
		Address: "0x2",
		ChainID: 137,
		Files: []model.SourceFile{
			{Path: "Token.sol", Content: `import "@openzeppelin/contracts/access/Ownable.sol";
contract Token is Ownable { function transfer(address to, uint256 v) public {} }`},
		},
	})
	if rec.Parsed == nil || rec.Imports == nil {
		t.Fatal("verified path should produce parse and import results")
	}
	if rec.Bytecode != nil {
		t.Error("Bytecode should be nil on the verified path")
	}
	if len(rec.Imports.AutoFetched) != 1 {
		t.Errorf("autoFetched = %v, want the Ownable registry hit", rec.Imports.AutoFetched)
	}
	if rec.ImportGraph == nil || len(rec.ImportGraph["Token.sol"]) != 1 {
		t.Errorf("import graph = %v, want one resolved edge for Token.sol", rec.ImportGraph)
	}
	if rec.Upgradeable {
		t.Error("plain ownable token should not be upgradeable")
	}
}

func TestAnalyzeVerifiedUpgradeableSource(t *testing.T) {
	eng := New()
	rec := eng.Analyze(context.Background(), model.VerifiedInput{
		Address: "0x3",
		ChainID: 1,
		Files: []model.SourceFile{
			{Path: "Vault.sol", Content: "contract Vault is UUPSUpgradeable { }"},
		},
	})
	if !rec.Upgradeable {
		t.Fatal("UUPS inheritance should flag upgradeable")
	}
	if rec.Cacheable {
		t.Fatal("upgradeable record must not be cacheable")
	}
}
