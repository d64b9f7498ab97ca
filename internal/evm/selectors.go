package evm

import (
	"strings"

	"github.com/xab-mack/contractscope/internal/model"
)

// knownSelectors is the embedded 4-byte dispatch table. Selectors are matched
// literally against the bytecode hex, never derived by hashing at runtime;
// adding support for a new signature is a row here, not a logic change.
// Rows are kept in scan order so recovery output is deterministic.
var knownSelectors = []model.FunctionSelector{
	// ERC20
	{Selector: "0xa9059cbb", Name: "transfer", Signature: "transfer(address,uint256)", Inputs: []string{"address", "uint256"}},
	{Selector: "0x095ea7b3", Name: "approve", Signature: "approve(address,uint256)", Inputs: []string{"address", "uint256"}},
	{Selector: "0x23b872dd", Name: "transferFrom", Signature: "transferFrom(address,address,uint256)", Inputs: []string{"address", "address", "uint256"}},
	{Selector: "0x18160ddd", Name: "totalSupply", Signature: "totalSupply()", Inputs: []string{}},
	{Selector: "0x70a08231", Name: "balanceOf", Signature: "balanceOf(address)", Inputs: []string{"address"}},
	{Selector: "0xdd62ed3e", Name: "allowance", Signature: "allowance(address,address)", Inputs: []string{"address", "address"}},
	{Selector: "0x06fdde03", Name: "name", Signature: "name()", Inputs: []string{}},
	{Selector: "0x95d89b41", Name: "symbol", Signature: "symbol()", Inputs: []string{}},
	{Selector: "0x313ce567", Name: "decimals", Signature: "decimals()", Inputs: []string{}},
	{Selector: "0x40c10f19", Name: "mint", Signature: "mint(address,uint256)", Inputs: []string{"address", "uint256"}},
	{Selector: "0x42966c68", Name: "burn", Signature: "burn(uint256)", Inputs: []string{"uint256"}},
	// ERC721
	{Selector: "0x6352211e", Name: "ownerOf", Signature: "ownerOf(uint256)", Inputs: []string{"uint256"}},
	{Selector: "0x42842e0e", Name: "safeTransferFrom", Signature: "safeTransferFrom(address,address,uint256)", Inputs: []string{"address", "address", "uint256"}},
	{Selector: "0xa22cb465", Name: "setApprovalForAll", Signature: "setApprovalForAll(address,bool)", Inputs: []string{"address", "bool"}},
	{Selector: "0x081812fc", Name: "getApproved", Signature: "getApproved(uint256)", Inputs: []string{"uint256"}},
	{Selector: "0xe985e9c5", Name: "isApprovedForAll", Signature: "isApprovedForAll(address,address)", Inputs: []string{"address", "address"}},
	{Selector: "0xc87b56dd", Name: "tokenURI", Signature: "tokenURI(uint256)", Inputs: []string{"uint256"}},
	{Selector: "0x01ffc9a7", Name: "supportsInterface", Signature: "supportsInterface(bytes4)", Inputs: []string{"bytes4"}},
	// Ownership / roles
	{Selector: "0x8da5cb5b", Name: "owner", Signature: "owner()", Inputs: []string{}},
	{Selector: "0xf2fde38b", Name: "transferOwnership", Signature: "transferOwnership(address)", Inputs: []string{"address"}},
	{Selector: "0x715018a6", Name: "renounceOwnership", Signature: "renounceOwnership()", Inputs: []string{}},
	{Selector: "0x91d14854", Name: "hasRole", Signature: "hasRole(bytes32,address)", Inputs: []string{"bytes32", "address"}},
	{Selector: "0xa217fddf", Name: "DEFAULT_ADMIN_ROLE", Signature: "DEFAULT_ADMIN_ROLE()", Inputs: []string{}},
	// Proxy / upgrade surface
	{Selector: "0x3659cfe6", Name: "upgradeTo", Signature: "upgradeTo(address)", Inputs: []string{"address"}},
	{Selector: "0x4f1ef286", Name: "upgradeToAndCall", Signature: "upgradeToAndCall(address,bytes)", Inputs: []string{"address", "bytes"}},
	{Selector: "0x5c60da1b", Name: "implementation", Signature: "implementation()", Inputs: []string{}},
	{Selector: "0xf851a440", Name: "admin", Signature: "admin()", Inputs: []string{}},
	{Selector: "0x8f283970", Name: "changeAdmin", Signature: "changeAdmin(address)", Inputs: []string{"address"}},
	{Selector: "0x8129fc1c", Name: "initialize", Signature: "initialize()", Inputs: []string{}},
	// Pausability / misc
	{Selector: "0x5c975abb", Name: "paused", Signature: "paused()", Inputs: []string{}},
	{Selector: "0x8456cb59", Name: "pause", Signature: "pause()", Inputs: []string{}},
	{Selector: "0x3f4ba83a", Name: "unpause", Signature: "unpause()", Inputs: []string{}},
	{Selector: "0x2e1a7d4d", Name: "withdraw", Signature: "withdraw(uint256)", Inputs: []string{"uint256"}},
}

var (
	erc20Group = []string{"0xa9059cbb", "0x70a08231", "0x23b872dd", "0x095ea7b3", "0x18160ddd"}

	erc721Owner    = "0x6352211e"
	erc721Group    = []string{"0x42842e0e", "0xa22cb465", "0x095ea7b3"}
	ownerSelector  = "0x8da5cb5b"
	proxySelectors = []string{"0x3659cfe6", "0x4f1ef286", "0x5c60da1b"}
)

// KnownSelectors returns the embedded selector table.
func KnownSelectors() []model.FunctionSelector {
	out := make([]model.FunctionSelector, len(knownSelectors))
	copy(out, knownSelectors)
	return out
}

// recoverSelectors scans bytecode hex for known 4-byte sequences. A selector
// present multiple times is reported once.
func recoverSelectors(hexCode string) []model.FunctionSelector {
	out := []model.FunctionSelector{}
	for _, entry := range knownSelectors {
		if strings.Contains(hexCode, entry.Selector[2:]) {
			out = append(out, entry)
		}
	}
	return out
}

func selectorSet(selectors []model.FunctionSelector) map[string]bool {
	set := make(map[string]bool, len(selectors))
	for _, s := range selectors {
		set[s.Selector] = true
	}
	return set
}

func containsAll(set map[string]bool, group []string) bool {
	for _, s := range group {
		if !set[s] {
			return false
		}
	}
	return true
}

func containsAny(set map[string]bool, group []string) bool {
	for _, s := range group {
		if set[s] {
			return true
		}
	}
	return false
}

// classifyContract derives the archetype from the recovered selector set.
// ERC20 takes precedence over Ownable when both signal.
func classifyContract(selectors []model.FunctionSelector) string {
	set := selectorSet(selectors)
	switch {
	case containsAll(set, erc20Group):
		return "ERC20 Token"
	case set[erc721Owner] && containsAny(set, erc721Group):
		return "ERC721 NFT"
	case set[ownerSelector]:
		return "Ownable Contract"
	default:
		return "Custom Contract"
	}
}

// hasAccessControlSelector reports whether any recovered selector looks like
// an ownership or role surface.
func hasAccessControlSelector(selectors []model.FunctionSelector) bool {
	for _, s := range selectors {
		lower := strings.ToLower(s.Name)
		if strings.Contains(lower, "owner") || strings.Contains(lower, "role") || strings.Contains(lower, "admin") {
			return true
		}
	}
	return false
}

// IsUpgradeableContract reports the bytecode-path upgradeability signal:
// DELEGATECALL in the opcode stream or a proxy-admin selector in the
// recovered surface.
func IsUpgradeableContract(counters model.OpcodeCounters, selectors []model.FunctionSelector) bool {
	if counters["DELEGATECALL"] > 0 {
		return true
	}
	set := selectorSet(selectors)
	return containsAny(set, proxySelectors)
}
