package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "podclip <audio>",
		Short:        "Turn long-form audio into captioned vertical clips",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("podcaster", "unknown", "Podcaster label for the run summary")
	root.Flags().StringSlice("platforms", []string{"tiktok"}, "Target platforms (comma-separated)")
	root.Flags().String("out", "out", "Output directory for rendered clips")
	root.Flags().String("results", "", "Directory for run summaries")
	root.Flags().String("config", "", "YAML config overriding platform profiles and limits")
	root.Flags().Bool("verbose", false, "Debug logging")

	// Hidden tuning flag (internal)
	root.Flags().Bool("no-keywords", false, "Disable LLM keyword extraction")
	_ = root.Flags().MarkHidden("no-keywords")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
