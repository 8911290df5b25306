package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/anubhavpatrick/Cluster-Images/pkg/model"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var logLevel string
var config *model.Config = &model.Config{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cluster-images",
	Short: "Unified containerd and Harbor image inventory",
	Long: `Cluster Images aggregates container images from the local containerd runtime
(via crictl) and a Harbor registry into one JSON API, and proxies a subset of
Harbor management operations.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ctx := context.WithValue(cmd.Context(), "config", config)
		cmd.SetContext(ctx)
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("This is the root command that does nothing.\n  Run cluster-images http")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig() {
	// load .env if present so ${VAR} substitution below can see it
	_ = godotenv.Load()
	viper.AutomaticEnv() // read in environment variables that match

	viper.SetDefault("harbor.tlsCheck", true)
	viper.SetDefault("harbor.pageSize", 100)
	viper.SetDefault("harbor.timeout", "30s")
	viper.SetDefault("crictl.bin", "crictl")
	viper.SetDefault("crictl.useSudo", true)
	viper.SetDefault("crictl.timeout", "30s")
	viper.SetDefault("crictl.ignoreFile", "images_to_ignore.txt")
	viper.SetDefault("aggregator.workers", 4)

	cfgFilePath := cfgFile
	if cfgFilePath == "" {
		// Set path to default config file
		cfgFilePath = "./.cluster-images.yaml"
	}
	viper.SetConfigType("yaml")

	// Open config file for ENV variables substitution
	content, err := os.ReadFile(cfgFilePath)
	if err != nil {
		fmt.Println("No config file found, using defaults:", err)
	} else {
		expandedContent := os.ExpandEnv(string(content))
		if err := viper.ReadConfig(strings.NewReader(expandedContent)); err == nil {
			fmt.Println("Using config file:", cfgFilePath)
		} else {
			fmt.Println("Error loading config", err)
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		log.Fatal("Unable to decode config into struct", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.cluster-images.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}
