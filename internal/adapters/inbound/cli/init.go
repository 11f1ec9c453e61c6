package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ff6editor/pluginvet/internal/adapters/outbound/pluginfs"
	"github.com/ff6editor/pluginvet/internal/domain"
	"github.com/ff6editor/pluginvet/internal/domain/check"
)

// scaffoldDescriptor keeps metadata.json fields in registry order.
type scaffoldDescriptor struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Version          string   `json:"version"`
	Author           string   `json:"author"`
	Contact          string   `json:"contact"`
	Description      string   `json:"description"`
	LongDescription  string   `json:"longDescription"`
	Category         string   `json:"category"`
	Tags             []string `json:"tags"`
	Permissions      []string `json:"permissions"`
	MinEditorVersion string   `json:"minEditorVersion"`
	Homepage         string   `json:"homepage"`
}

func newInitCmd() *cobra.Command {
	var (
		author   string
		category string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init <plugin-dir>",
		Short: "Scaffold a new plugin submission",
		Long: "Create plugin.lua, metadata.json, README.md and CHANGELOG.md for a new plugin. " +
			"The directory name becomes the plugin ID and must be lowercase alphanumeric with hyphens.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			id := filepath.Base(absPath)
			if !check.ValidID(id) {
				return fmt.Errorf("invalid plugin id %q: must be lowercase alphanumeric with hyphens only", id)
			}

			rules := domain.DefaultRules()
			if !rules.IsValidCategory(category) {
				return fmt.Errorf("unknown category %q (valid: %s)", category, strings.Join(rules.Categories, ", "))
			}

			files, err := scaffold(id, author, category)
			if err != nil {
				return err
			}

			if !force {
				for name := range files {
					if _, err := os.Stat(filepath.Join(absPath, name)); err == nil {
						return fmt.Errorf("%s already exists (use --force to overwrite)", name)
					}
				}
			}

			if err := os.MkdirAll(absPath, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", absPath, err)
			}

			fsys := pluginfs.New()
			for _, name := range rules.RequiredFiles {
				if err := fsys.WriteFile(filepath.Join(absPath, name), files[name]); err != nil {
					return fmt.Errorf("writing %s: %w", name, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created plugin %s in %s\n", id, absPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "Your Name", "Plugin author")
	cmd.Flags().StringVar(&category, "category", "utility", "Plugin category")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

// scaffold returns the contents of every required file for a new plugin.
func scaffold(id, author, category string) (map[string][]byte, error) {
	name := displayName(id)
	description := name + " plugin for the save editor."

	meta, err := json.MarshalIndent(scaffoldDescriptor{
		ID:               id,
		Name:             name,
		Version:          "0.1.0",
		Author:           author,
		Contact:          "you@example.com",
		Description:      description,
		LongDescription:  name + " was created with pluginvet init. Replace this text with a full description of what the plugin does.",
		Category:         category,
		Tags:             []string{category},
		Permissions:      []string{"read_save"},
		MinEditorVersion: "1.0.0",
		Homepage:         "https://example.com/plugins/" + id,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", domain.MetadataFile, err)
	}

	script := fmt.Sprintf(`-- @id: %s
-- @name: %s
-- @version: 0.1.0
-- @author: %s
-- @description: %s
-- @permissions: read_save

local function greet(name)
  return "Hello from " .. name
end

function main()
  local message = greet("%s")
  ui.showMessage(message)
  return message
end
`, id, name, author, description, name)

	readme := fmt.Sprintf(`# %s

%s

## Installation

Copy the %s directory into the editor's plugin folder.

## Usage

Open a save file and run **%s** from the plugin menu.

## Permissions

- read_save: reads the open save file.
`, name, description, "`"+id+"`", name)

	changelog := "# Changelog\n\n## [0.1.0]\n\n- Initial release.\n"

	return map[string][]byte{
		domain.ScriptFile:    []byte(script),
		domain.MetadataFile:  append(meta, '\n'),
		domain.ReadmeFile:    []byte(readme),
		domain.ChangelogFile: []byte(changelog),
	}, nil
}

// displayName turns "stats-display" into "Stats Display".
func displayName(id string) string {
	words := strings.Split(id, "-")
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
