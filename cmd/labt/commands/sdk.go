package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSDKCmd() *cobra.Command {
	sdkCmd := &cobra.Command{
		Use:   "sdk",
		Short: "Manage SDK repositories and packages",
	}

	addCmd := &cobra.Command{
		Use:   "add <name> [url]",
		Short: "Register an SDK repository and fetch its manifest",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := ""
			if len(args) == 2 {
				url = args[1]
			}
			return c.app.SDKAdd(cmd.Context(), args[0], url)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list <repo>",
		Short: "Interactively list, install and uninstall a repository's packages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.SDKList(cmd.Context(), args[0])
		},
	}

	installCmd := &cobra.Command{
		Use:   "install <repo>",
		Short: "Install one package from a repository by its manifest path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("path")
			if err != nil {
				return err
			}
			version, err := cmd.Flags().GetString("version")
			if err != nil {
				return err
			}
			return c.app.SDKInstall(cmd.Context(), args[0], path, version)
		},
	}
	installCmd.Flags().String("path", "", "package path, e.g. platforms;android-33")
	installCmd.Flags().String("version", "", "package version, e.g. 3.0.0.0")
	_ = installCmd.MarkFlagRequired("path")

	sdkCmd.AddCommand(addCmd, listCmd, installCmd)
	return sdkCmd
}
