package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	ciridae "github.com/GregoryLi360/ciridae-takehome"
	"github.com/GregoryLi360/ciridae-takehome/pkg/errors"
	"github.com/GregoryLi360/ciridae-takehome/pkg/estimate"
	"github.com/GregoryLi360/ciridae-takehome/pkg/logging"
	"github.com/GregoryLi360/ciridae-takehome/pkg/oracle/gemini"
)

var (
	compareThreshold float64
	compareOracle    string
	compareModel     string
	compareOutput    string
)

// report is the serialized output of the compare command.
type report struct {
	Summary estimate.Summary          `yaml:"summary"`
	Rooms   []estimate.RoomComparison `yaml:"rooms"`
}

var compareCmd = &cobra.Command{
	Use:   "compare <source.yaml> <counterpart.yaml>",
	Short: "Compare two estimates room by room",
	Long: `Compare reconciles a source estimate against a counterpart estimate.
Rooms are paired first, then line items within each room pair are matched
and classified. The YAML report lists every matched pair with its diffs
plus the items left unmatched on each side.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().Float64Var(&compareThreshold, "threshold", 0, "minimum similarity for an item match (default 0.85)")
	compareCmd.Flags().StringVar(&compareOracle, "oracle", "lexical", "matching oracle: lexical or gemini")
	compareCmd.Flags().StringVar(&compareModel, "model", "", "gemini model (default "+gemini.DefaultModel+")")
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "", "write the report to a file instead of stdout")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	source, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	counterpart, err := loadDocument(args[1])
	if err != nil {
		return err
	}

	opts := []ciridae.Option{ciridae.WithLogger(*logging.Default())}
	if compareThreshold > 0 {
		opts = append(opts, ciridae.WithSimilarityFloor(compareThreshold))
	}
	oracleOpts, err := oracleOptions(ctx)
	if err != nil {
		return err
	}
	opts = append(opts, oracleOpts...)

	engine, err := ciridae.New(opts...)
	if err != nil {
		return err
	}

	result, err := engine.Compare(ctx, source, counterpart)
	if err != nil {
		return err
	}

	return writeReport(report{Summary: result.Summarize(), Rooms: result.Rooms})
}

// oracleOptions builds the pairer/scorer options for the selected backend.
func oracleOptions(ctx context.Context) ([]ciridae.Option, error) {
	switch compareOracle {
	case "lexical":
		return nil, nil
	case "gemini":
		geminiOpts := []gemini.Option{}
		if key := viper.GetString("gemini_api_key"); key != "" {
			geminiOpts = append(geminiOpts, gemini.WithAPIKey(key))
		}
		if compareModel != "" {
			geminiOpts = append(geminiOpts, gemini.WithModel(compareModel))
		}
		client, err := gemini.New(ctx, geminiOpts...)
		if err != nil {
			return nil, err
		}
		return []ciridae.Option{
			ciridae.WithRoomPairer(client),
			ciridae.WithScorer(client),
		}, nil
	default:
		return nil, &errors.ConfigError{
			Component: "compare",
			Message:   fmt.Sprintf("unknown oracle %q (want lexical or gemini)", compareOracle),
		}
	}
}

func loadDocument(path string) (estimate.Document, error) {
	var doc estimate.Document
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied input path
	if err != nil {
		return doc, errors.WrapIO("read", path, err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, &errors.ValidationError{
			Document: path,
			Message:  fmt.Sprintf("parsing estimate: %v", err),
		}
	}
	if doc.Label == "" {
		doc.Label = path
	}
	return doc, nil
}

func writeReport(r report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if compareOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(compareOutput, data, 0o644); err != nil { //nolint:gosec // report file
		return errors.WrapIO("write", compareOutput, err)
	}
	return nil
}
