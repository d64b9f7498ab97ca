package solidity

import (
	"regexp"
	"strings"
)

// Raw-text signals for upgradeable/proxy patterns. Scans are case-insensitive
// and operate on source text, not an AST; a single hit is enough.
var upgradeablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\.?delegatecall\s*\(`),
	regexp.MustCompile(`(?i)\bfunction\s+upgradeTo(AndCall)?\b`),
	regexp.MustCompile(`(?i)\bfunction\s+_authorizeUpgrade\b`),
	regexp.MustCompile(`(?i)@openzeppelin/contracts-upgradeable/`),
	regexp.MustCompile(`(?i)proxy/utils/UUPSUpgradeable`),
	regexp.MustCompile(`(?i)proxy/ERC1967/`),
	regexp.MustCompile(`(?i)\bis\s+[^{]*(upgradeable|uups|diamond|beacon|proxy|transparent|factory)[^{]*\{`),
}

// IsUpgradeableSource reports whether raw source text shows an
// upgradeable/proxy pattern. The caller ORs this with the bytecode-path
// signal; a true verdict vetoes caching of the analysis record.
func IsUpgradeableSource(source string) bool {
	if strings.TrimSpace(source) == "" {
		return false
	}
	for _, re := range upgradeablePatterns {
		if re.MatchString(source) {
			return true
		}
	}
	return false
}
