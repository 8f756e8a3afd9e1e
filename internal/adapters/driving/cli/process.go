package cli

import (
	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process <repo-url>",
	Short: "Ingest a repository into the local digest cache",
	Long: `Run the external ingestion tool for a GitHub repository and cache
the resulting digest on disk. A repository that was already processed is
left untouched.

Examples:
  ghsb process https://github.com/golang/go`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	application, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}

	result := application.ingestion.Ingest(cmd.Context(), args[0])

	cmd.Println(result.Message)
	if result.OutputPath != "" {
		cmd.Printf("Digest: %s\n", result.OutputPath)
	}
	return nil
}
