package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xab-mack/contractscope/internal/config"
	"github.com/xab-mack/contractscope/internal/engine"
	"github.com/xab-mack/contractscope/internal/model"
	"github.com/xab-mack/contractscope/internal/report"
	"github.com/xab-mack/contractscope/internal/store"
	"github.com/xab-mack/contractscope/internal/tui"
)

func AddCommands(root *cobra.Command) {
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newSelectorsCmd())
}

func newAnalyzeCmd() *cobra.Command {
	var (
		address    string
		bytecode   string
		chainID    int64
		format     string
		outputFile string
		useTUI     bool
		useCache   bool
		failOn     string
		budgetMs   int
	)
	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze verified Solidity sources or raw deployed bytecode",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(budgetMs)*time.Millisecond)
			defer cancel()

			cfg, _, _ := config.Load(".")
			if chainID == 0 {
				chainID = cfg.ChainID
			}

			input, err := buildInput(args, address, bytecode, chainID)
			if err != nil {
				return err
			}

			var st *store.Store
			if useCache {
				st, err = store.Open(cfg.CachePath, time.Duration(cfg.CacheTTLHours)*time.Hour)
				if err != nil {
					return err
				}
				defer st.Close()
			}

			addr, chain := input.Target()
			if st != nil {
				if cached, err := st.Get(ctx, strings.ToLower(addr), chain); err == nil {
					return render(cmd, cached, format, outputFile, useTUI, failOn)
				}
			}

			rec := engine.New().Analyze(ctx, input)
			if st != nil {
				if err := st.Put(ctx, rec); err != nil && !errors.Is(err, store.ErrUpgradeableNotCacheable) {
					return err
				}
			}
			return render(cmd, rec, format, outputFile, useTUI, failOn)
		},
	}
	cmd.Flags().StringVarP(&address, "address", "a", "", "Contract address under analysis")
	cmd.Flags().StringVarP(&bytecode, "bytecode", "b", "", "Raw bytecode hex, or @file to read it from disk")
	cmd.Flags().Int64Var(&chainID, "chain", 0, "Chain id (defaults from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table|json|sarif")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write report to file")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Render interactive TUI output")
	cmd.Flags().BoolVar(&useCache, "cache", false, "Read/write the local analysis cache")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "Fail if risk severity is at or above (low|medium|high|critical)")
	cmd.Flags().IntVar(&budgetMs, "budget-ms", 10000, "Time budget for the analysis in milliseconds")
	return cmd
}

// buildInput picks the verified path when a source directory is given, the
// bytecode path otherwise.
func buildInput(args []string, address, bytecode string, chainID int64) (model.AnalysisInput, error) {
	if bytecode != "" {
		if strings.HasPrefix(bytecode, "@") {
			data, err := os.ReadFile(strings.TrimPrefix(bytecode, "@"))
			if err != nil {
				return nil, err
			}
			bytecode = strings.TrimSpace(string(data))
		}
		return model.BytecodeInput{Address: address, ChainID: chainID, Bytecode: bytecode}, nil
	}
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	files, err := collectSolidityFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .sol files under %s and no --bytecode given", path)
	}
	return model.VerifiedInput{Address: address, ChainID: chainID, Files: files}, nil
}

func collectSolidityFiles(root string) ([]model.SourceFile, error) {
	var out []model.SourceFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".sol") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		out = append(out, model.SourceFile{Path: filepath.ToSlash(rel), Content: string(data)})
		return nil
	})
	return out, err
}

func render(cmd *cobra.Command, rec *model.AnalysisRecord, format, outputFile string, useTUI bool, failOn string) error {
	if useTUI {
		return tui.Run(rec)
	}
	var data []byte
	switch format {
	case "json":
		data, _ = json.MarshalIndent(rec, "", "  ")
	case "sarif":
		data, _ = report.ToSARIF(rec)
	default:
		printTable(cmd, rec)
	}
	if data != nil {
		if outputFile != "" {
			if err := os.WriteFile(outputFile, data, 0o644); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}
	}
	if failOn != "" && rec.Bytecode != nil {
		threshold := model.ParseSeverity(failOn)
		if model.SeverityGTE(rec.Bytecode.RiskAssessment.Severity, threshold) {
			return fmt.Errorf("fail-on threshold met: %s", rec.Bytecode.RiskAssessment.Severity)
		}
	}
	return nil
}

func printTable(cmd *cobra.Command, rec *model.AnalysisRecord) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Address: %s (chain %d, elapsed %s)\n", rec.Address, rec.ChainID, rec.Elapsed)
	if p := rec.Parsed; p != nil {
		fmt.Fprintf(out, "Contracts: %d, functions: %d, events: %d, lines: %d\n",
			len(p.Contracts), p.TotalFunctions, p.TotalEvents, p.TotalLines)
		if p.MainContract != "" {
			fmt.Fprintf(out, "Main contract: %s\n", p.MainContract)
		}
	}
	if imp := rec.Imports; imp != nil {
		fmt.Fprintf(out, "Imports: %d resolved (%d auto-fetched), %d missing\n",
			len(imp.Resolved), len(imp.AutoFetched), len(imp.Missing))
		for _, m := range imp.Missing {
			fmt.Fprintf(out, "- missing %s [%s]: %s\n", m.Path, m.Type, m.Error)
		}
	}
	if bc := rec.Bytecode; bc != nil {
		fmt.Fprintf(out, "Contract type: %s, selectors: %d, complexity: %d/100\n",
			bc.ContractType, len(bc.FunctionSelectors), bc.EstimatedComplexity)
		fmt.Fprintf(out, "Risk severity: %s\n", bc.RiskAssessment.Severity)
		for _, r := range bc.RiskAssessment.Risks {
			fmt.Fprintf(out, "- %s\n", r)
		}
		for _, r := range bc.RiskAssessment.Recommendations {
			fmt.Fprintf(out, "  recommendation: %s\n", r)
		}
	}
	fmt.Fprintf(out, "Upgradeable: %v, cacheable: %v\n", rec.Upgradeable, rec.Cacheable)
}
