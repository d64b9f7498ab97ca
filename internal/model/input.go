package model

// AnalysisInput is the engine's input union: exactly one of VerifiedInput
// (source files from the explorer) or BytecodeInput (raw deployed code).
type AnalysisInput interface {
	isAnalysisInput()
	Target() (address string, chainID int64)
}

// VerifiedInput carries a verified multi-file source set.
type VerifiedInput struct {
	Address string
	ChainID int64
	Files   []SourceFile
}

// BytecodeInput carries raw deployed bytecode as an optionally 0x-prefixed
// hex string.
type BytecodeInput struct {
	Address  string
	ChainID  int64
	Bytecode string
}

func (VerifiedInput) isAnalysisInput() {}
func (BytecodeInput) isAnalysisInput() {}

func (v VerifiedInput) Target() (string, int64) { return v.Address, v.ChainID }
func (b BytecodeInput) Target() (string, int64) { return b.Address, b.ChainID }
