package cmd

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pyframe/pyframe/internal/config"
	"github.com/pyframe/pyframe/internal/remote"
)

func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download images from a WebDAV share into the image directory",
		Long: `Sync mirrors one or more folders from a WebDAV server (such as
Nextcloud) into the image directory. Files that already exist locally
are skipped; a running viewer picks up new downloads through the
directory watcher.`,
		Run: func(cmd *cobra.Command, args []string) {
			if v, err := cmd.Flags().GetBool("debug"); err == nil && v {
				log.SetLevel(log.DebugLevel)
			}

			settings, err := config.RemoteFromViper()
			if err != nil {
				log.Fatalf("Invalid sync configuration: %v", err)
			}

			syncer := remote.NewSyncer(settings)
			if err := syncer.Run(context.Background()); err != nil {
				log.Fatalf("Sync failed: %v", err)
			}
		},
	}

	cmd.Flags().String("remote-url", "", "WebDAV server base URL")
	cmd.Flags().String("remote-username", "", "WebDAV username")
	cmd.Flags().String("remote-password", "", "WebDAV password")
	cmd.Flags().StringSlice("remote-dirs", nil, "Remote folders to mirror")
	cmd.Flags().Int("remote-workers", 10, "Concurrent download workers")

	viper.BindPFlag("remote_url", cmd.Flags().Lookup("remote-url"))
	viper.BindPFlag("remote_username", cmd.Flags().Lookup("remote-username"))
	viper.BindPFlag("remote_password", cmd.Flags().Lookup("remote-password"))
	viper.BindPFlag("remote_dirs", cmd.Flags().Lookup("remote-dirs"))
	viper.BindPFlag("remote_workers", cmd.Flags().Lookup("remote-workers"))

	return cmd
}
