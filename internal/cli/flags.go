package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

func RegisterFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.env, then $XDG_CONFIG_HOME/pyframe/pyframe.env)")

	rootCmd.PersistentFlags().BoolP("installconfig", "i", false, "Install a default config file")
	rootCmd.PersistentFlags().Bool("show-config", false, "Dump resolved config")
	rootCmd.PersistentFlags().BoolP("background", "b", false, "Run as a daemon")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Print version")
	rootCmd.PersistentFlags().BoolP("help", "h", false, "Print usage")

	viper.BindPFlag("background", rootCmd.PersistentFlags().Lookup("background"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.PersistentFlags().String("image-directory", "", "Directory to scan recursively for images")
	rootCmd.PersistentFlags().String("fill-type", "CLOSEST_BW", "Letterbox fill: BLACK, WHITE, TOP_PIXEL, SIDE_PIXEL or CLOSEST_BW")
	rootCmd.PersistentFlags().String("slideshow-mode", "RANDOM", "Ordering: SEQUENTIAL or RANDOM")
	rootCmd.PersistentFlags().Float64("transition-duration", 2, "Cross-fade duration in seconds")
	rootCmd.PersistentFlags().Float64("slideshow-delay", 10, "Seconds each image is held before advancing")

	viper.BindPFlag("image_directory", rootCmd.PersistentFlags().Lookup("image-directory"))
	viper.BindPFlag("fill_type", rootCmd.PersistentFlags().Lookup("fill-type"))
	viper.BindPFlag("slideshow_mode", rootCmd.PersistentFlags().Lookup("slideshow-mode"))
	viper.BindPFlag("transition_duration", rootCmd.PersistentFlags().Lookup("transition-duration"))
	viper.BindPFlag("slideshow_delay", rootCmd.PersistentFlags().Lookup("slideshow-delay"))
}
