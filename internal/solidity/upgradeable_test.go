package solidity

import "testing"

func TestIsUpgradeableSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"empty", "", false},
		{"blank", "   \n\t", false},
		{"uups inheritance", "contract X is UUPSUpgradeable {}", true},
		{"proxy inheritance", "contract Wallet is TransparentUpgradeableProxy, Ownable {}", true},
		{"delegatecall", "contract Y { function f(address t) public { t.delegatecall(msg.data); } }", true},
		{"upgrade function", "contract Z { function upgradeTo(address impl) external {} }", true},
		{"upgradeable import", `import "@openzeppelin/contracts-upgradeable/access/OwnableUpgradeable.sol";`, true},
		{"plain token", "contract Token is ERC20 { function transfer(address to, uint256 v) public {} }", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUpgradeableSource(tt.source); got != tt.want {
				t.Errorf("IsUpgradeableSource(%q) = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}
