package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/docranker/internal/extract"
	"github.com/spigell/docranker/internal/scoring"
)

const (
	app = "docranker"
)

type Config struct {
	// Collections lists the collection directories to process. Positional
	// arguments to the run command take precedence.
	Collections []string                `mapstructure:"collections"`
	InputFile   string                  `mapstructure:"input-file"`
	OutputFile  string                  `mapstructure:"output-file"`
	Workers     int                     `mapstructure:"workers"`
	Ranking     *RankingConfig          `mapstructure:"ranking"`
	Extraction  *extract.DetectorConfig `mapstructure:"extraction"`
}

type RankingConfig struct {
	scoring.Config        `mapstructure:",squash"`
	MaxSections           int `mapstructure:"max-sections"`
	DiversificationWindow int `mapstructure:"diversification-window"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "docranker ranks document sections by relevance to a persona and its job-to-be-done",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is docranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// All knobs have defaults, so a missing config file is fine. Anything
	// else (unreadable, unparsable) is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Ranking == nil {
		config.Ranking = &RankingConfig{}
	}
	if config.Extraction == nil {
		config.Extraction = &extract.DetectorConfig{}
	}

	return config, nil
}
