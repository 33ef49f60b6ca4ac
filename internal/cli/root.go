package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gymstack/gymctl/internal/pkg/logger"
	"github.com/gymstack/gymctl/internal/pkg/validator"
	"github.com/gymstack/gymctl/pkg/client"
)

var (
	cfgFile      string
	outputFormat string
	serverURL    string
	verbose      bool

	apiClient *client.Client
	log       *logger.Logger
	validate  *validator.Validator
)

var rootCmd = &cobra.Command{
	Use:   "gymctl",
	Short: "gymctl - fitness center management client",
	Long: `gymctl provides command-line access to the GymStack platform for
managing members, trainers, activities, equipment, membership plans,
bookings and gym settings. The available surface depends on the role of
the logged-in account (member, trainer or admin).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initRuntime()

		// Config commands never need a client; login and register need
		// an unauthenticated one.
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
			return nil
		}
		if cmd.Name() == "login" || cmd.Name() == "register" {
			return initClient()
		}
		return initAuthenticatedClient()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.gymctl/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newMembersCmd())
	rootCmd.AddCommand(newTrainersCmd())
	rootCmd.AddCommand(newActivitiesCmd())
	rootCmd.AddCommand(newEquipmentCmd())
	rootCmd.AddCommand(newPlansCmd())
	rootCmd.AddCommand(newMembershipsCmd())
	rootCmd.AddCommand(newBookingsCmd())
	rootCmd.AddCommand(newSettingsCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return
		}
		configDir := home + "/.gymctl"
		_ = os.MkdirAll(configDir, 0700)
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("GYMCTL")
	viper.AutomaticEnv()

	viper.SetDefault("server_url", "http://localhost:8080")
	viper.SetDefault("output", "table")

	_ = viper.ReadInConfig()
}

func initRuntime() {
	level := "warn"
	if verbose {
		level = "debug"
	}
	log = logger.New(logger.Config{Level: level, Format: "console"})
	validate = validator.New()
}

func initClient() error {
	url := viper.GetString("server_url")
	if serverURL != "" {
		url = serverURL
	}

	apiClient = client.NewClient(client.Config{BaseURL: url})
	return nil
}

func initAuthenticatedClient() error {
	if err := initClient(); err != nil {
		return err
	}

	token := viper.GetString("auth.token")
	if token == "" {
		return fmt.Errorf("not authenticated. Run 'gymctl auth login' first")
	}

	apiClient.SetToken(token)
	return nil
}

func getOutputFormat() string {
	if outputFormat != "" && outputFormat != "table" {
		return outputFormat
	}
	return viper.GetString("output")
}
