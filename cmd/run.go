package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/docranker/internal/collection"
	"github.com/spigell/docranker/internal/extract"
	"github.com/spigell/docranker/internal/logger"
	"github.com/spigell/docranker/internal/persona"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var overwritePrompt = promptui.Select{
	Label: "Existing output files will be overwritten. Proceed?",
	Items: []string{PromptYes, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run [collection directories...]",
	Short: "Run the docranker main command",
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-aprove", "y", false, "do not ask for confirmation before overwriting existing output files")
	runCmd.Flags().IntP("workers", "w", 0, "how many collections to process concurrently")

	viper.BindPFlag("workers", runCmd.Flags().Lookup("workers"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the docranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	dirs := args
	if len(dirs) == 0 {
		dirs = config.Collections
	}

	if len(dirs) == 0 {
		logger.Fatal("no collections to process",
			zap.String("hint", "pass collection directories as arguments or set 'collections' in the configuration file"),
		)
	}

	dirs, err = existingCollections(dirs, config, logger)
	if err != nil {
		logger.Fatal("checking collections", zap.Error(err))
	}

	if len(dirs) == 0 {
		logger.Info("exiting", zap.String("reason", "no collections with input files found"))
		return
	}

	if cmd.Flag("auto-aprove").Value.String() == "false" && hasExistingOutputs(dirs, config) {
		_, action, err := overwritePrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if action == PromptNo {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	runner := collection.NewRunner(
		extract.NewPDFExtractor(),
		persona.DefaultTable(),
		runnerOptions(config),
		logger,
	)

	summary := runner.ProcessAll(ctx, dirs)

	logger.Info("processing complete",
		zap.Int("processed", summary.Processed),
		zap.Int("failed", summary.Failed),
	)

	if summary.Failed > 0 && summary.Processed == 0 {
		logger.Fatal("all collections failed")
	}
}

func runnerOptions(config *Config) collection.Options {
	return collection.Options{
		InputFile:             config.InputFile,
		OutputFile:            config.OutputFile,
		MaxSections:           config.Ranking.MaxSections,
		DiversificationWindow: config.Ranking.DiversificationWindow,
		Workers:               viper.GetInt("workers"),
		Scoring:               config.Ranking.Config,
		Detection:             *config.Extraction,
	}
}

// existingCollections keeps only directories that contain an input file,
// logging the skipped ones the same way missing documents are skipped.
func existingCollections(dirs []string, config *Config, logger *zap.Logger) ([]string, error) {
	inputFile := config.InputFile
	if inputFile == "" {
		inputFile = collection.DefaultInputFile
	}

	kept := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		path := filepath.Join(dir, inputFile)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				logger.Warn("skipping collection without input file", zap.String("collection", dir))
				continue
			}
			return nil, err
		}
		kept = append(kept, dir)
	}
	return kept, nil
}

func hasExistingOutputs(dirs []string, config *Config) bool {
	outputFile := config.OutputFile
	if outputFile == "" {
		outputFile = collection.DefaultOutputFile
	}

	for _, dir := range dirs {
		if _, err := os.Stat(filepath.Join(dir, outputFile)); err == nil {
			return true
		}
	}
	return false
}
