package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ff6editor/pluginvet/internal/adapters/outbound/tui"
	"github.com/ff6editor/pluginvet/internal/domain"
)

func newChecksumCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checksum",
		Short: "Generate or verify the checksum.sha256 sidecar",
	}
	cmd.AddCommand(newChecksumVerifyCmd(flags))
	cmd.AddCommand(newChecksumGenerateCmd(flags))
	return cmd
}

func newChecksumVerifyCmd(flags *globalFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "verify <plugin-dir>",
		Short: "Check that checksum.sha256 matches plugin.lua",
		Long:  "Compare the digest in checksum.sha256 with a fresh SHA-256 of plugin.lua. Never writes. Exits non-zero on mismatch or when there is nothing to verify.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, flags)
			if err != nil {
				return err
			}
			dir := args[0]

			v, err := e.service().VerifyChecksum(dir)
			if err != nil {
				return fmt.Errorf("verifying checksum: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(v); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderChecksum(dir, v))
			}

			switch v.Status {
			case domain.ChecksumMismatch:
				return fmt.Errorf("checksum mismatch for %s", dir)
			case domain.ChecksumMissing:
				return fmt.Errorf("no checksum to verify in %s", dir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the verification as JSON")
	return cmd
}

func newChecksumGenerateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <plugin-dir>",
		Short: "Write checksum.sha256 for plugin.lua without running other checks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, flags)
			if err != nil {
				return err
			}

			results := e.service().GenerateChecksum(args[0])
			if len(results) == 0 {
				return fmt.Errorf("%s not found in %s", domain.ScriptFile, args[0])
			}
			r := results[0]
			if !r.Passed {
				return fmt.Errorf("%s", r.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Message)
			return nil
		},
	}
}
