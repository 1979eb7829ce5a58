package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/pyframe/pyframe"
	clicmd "github.com/pyframe/pyframe/internal/cli/cmd"
	"github.com/pyframe/pyframe/internal/cli/cmd/utils"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pyframe",
	Short: "A fullscreen photo frame slideshow",
	Long: `Pyframe is a fullscreen slideshow viewer: it scans a directory tree
for images and shows them with smooth cross-fade transitions, advancing
sequentially or at random on a timer.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, err := cmd.Flags().GetBool("show-config"); err == nil && v {
			log.Infof("Using config file: %v", viper.ConfigFileUsed())
			log.Infof("All settings:")
			utils.PrintJSONColored(viper.AllSettings())
			return
		}

		if v, err := cmd.Flags().GetBool("version"); err == nil && v {
			babyBlue := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
			green := lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
			log.Infof("%v version %v",
				babyBlue.Render("pyframe"),
				green.Render(strings.Trim(pyframe.Version, "\n\r ")))
			return
		}

		if v, err := cmd.Flags().GetBool("installconfig"); err == nil && v {
			utils.InstallDefaultConfig()
			return
		}

		clicmd.StartViewer()
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

func init() {
	cobra.OnInitialize(initConfig)

	RegisterFlags(rootCmd)

	rootCmd.AddCommand(clicmd.NewStartCmd())
	rootCmd.AddCommand(clicmd.NewNextCmd())
	rootCmd.AddCommand(clicmd.NewPreviousCmd())
	rootCmd.AddCommand(clicmd.NewPauseCmd())
	rootCmd.AddCommand(clicmd.NewRandomCmd())
	rootCmd.AddCommand(clicmd.NewStatusCmd())
	rootCmd.AddCommand(clicmd.NewStopCmd())
	rootCmd.AddCommand(clicmd.NewSyncCmd())
	rootCmd.AddCommand(clicmd.NewGenManCmd(rootCmd))
}

// initConfig resolves settings with precedence flags > environment
// (PYFRAME_) > .env file > defaults. The .env layers are loaded into
// the process environment with gotenv, which never overrides variables
// that are already set, so a real environment variable always beats
// the file.
func initConfig() {
	if cfgFile != "" {
		if err := gotenv.Load(cfgFile); err != nil {
			log.Fatalf("Error loading config file %v: %v", cfgFile, err)
		}
		viper.SetConfigFile(cfgFile)
	} else {
		_ = gotenv.Load(".env")
		configDir := os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			configDir = os.Getenv("HOME") + "/.config"
		}
		_ = gotenv.Load(configDir + "/pyframe/pyframe.env")
	}

	viper.SetEnvPrefix("PYFRAME")
	viper.AutomaticEnv()

	viper.SetDefault("fill_type", "CLOSEST_BW")
	viper.SetDefault("slideshow_mode", "RANDOM")
	viper.SetDefault("transition_duration", 2.0)
	viper.SetDefault("slideshow_delay", 10.0)
	viper.SetDefault("remote_workers", 10)
}
