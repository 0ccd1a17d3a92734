package commands

import (
	"github.com/spf13/cobra"

	"github.com/AlexG0311/sportzone/internal/scaffold"
)

func newInitCmd() *cobra.Command {
	var force bool
	var dir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter sportzone.yml and an example venue draft",
		Long: `Create a starter workspace in the current directory.

Creates:
  • sportzone.yml - API, media and session configuration
  • venues/example/draft.yml - Example draft for 'sportzone venue create --from-file'
  • .env.example - Environment overrides, including media credentials

Use --force to overwrite existing files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if err := scaffold.CheckExisting(dir); err != nil {
					return alert("workspace already initialized", err.Error(), nil)
				}
			}
			if err := scaffold.Initialize(dir, force); err != nil {
				return alert("initialization failed", err.Error(), nil)
			}
			scaffold.PrintSuccess()
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to initialize")
	return cmd
}
