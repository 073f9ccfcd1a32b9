/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/litteralabs/littera/internal/command"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Manage Blocks, the atomic editable text unit inside a Section",
}

var blockCreateCmd = &cobra.Command{
	Use:   "create <section-id>",
	Short: "Create a Block, reading source text from --text or --file (default: stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sectionID, err := parseID(args[0])
		if err != nil {
			return err
		}
		kind, _ := cmd.Flags().GetString("kind")
		langRaw, _ := cmd.Flags().GetString("language")
		order, _ := cmd.Flags().GetInt64("order")
		text, err := blockSourceText(cmd)
		if err != nil {
			return err
		}
		lang, err := parseLanguage(langRaw)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.BlockCreate(ctx, cmdOptions(), &entity.Block{
				SectionID: sectionID, Kind: entity.BlockKind(kind), Language: lang,
				SourceText: text, OrderIndex: order,
			})
			return err
		})
	},
}

var blockGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a Block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.BlockGet(ctx, id)
			return err
		})
	},
}

var blockListCmd = &cobra.Command{
	Use:   "list <section-id>",
	Short: "List a Section's Blocks in order, optionally narrowed by --filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sectionID, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.BlockList(ctx, &repository.ListQuery{
				ParentID:    &sectionID,
				Pagination:  repository.Pagination{PageNo: 1, PageSize: 10000},
				FilterOrder: filterOrderFromFlags(cmd),
			})
			return err
		})
	},
}

var blockUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a Block's source text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		text, err := blockSourceText(cmd)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			b, err := app.BlockGet(ctx, id)
			if err != nil {
				return err
			}
			b.SourceText = text
			_, err = app.BlockUpdate(ctx, b)
			return err
		})
	},
}

var blockDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a Block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			return app.BlockDelete(ctx, cmdOptions(), id)
		})
	},
}

var blockReorderCmd = &cobra.Command{
	Use:   "reorder <section-id> <block-id>...",
	Short: "Rewrite OrderIndex for every Block in a Section to match the given order",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sectionID, err := parseID(args[0])
		if err != nil {
			return err
		}
		ordered := make([]entity.ID, 0, len(args)-1)
		for _, raw := range args[1:] {
			id, err := parseID(raw)
			if err != nil {
				return err
			}
			ordered = append(ordered, id)
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			return app.BlockReorder(ctx, cmdOptions(), sectionID, ordered)
		})
	},
}

func init() {
	rootCmd.AddCommand(blockCmd)
	blockCmd.AddCommand(blockCreateCmd, blockGetCmd, blockListCmd, blockUpdateCmd, blockDeleteCmd, blockReorderCmd)

	blockCreateCmd.Flags().String("kind", string(entity.BlockKindProse), "block kind: prose|heading|code|quote|list_item")
	blockCreateCmd.Flags().String("language", "", "block language tag")
	blockCreateCmd.Flags().Int64("order", 0, "order index among siblings")
	blockCreateCmd.Flags().String("text", "", "source text (default: read from --file or stdin)")
	blockCreateCmd.Flags().String("file", "", "path to read source text from")

	blockUpdateCmd.Flags().String("text", "", "new source text (default: read from --file or stdin)")
	blockUpdateCmd.Flags().String("file", "", "path to read source text from")

	addFilterOrderFlags(blockListCmd, repository.DefaultSiblingOrder)
}

// blockSourceText resolves a Block's source_text from --text, --file, or
// stdin, in that priority order, so short blocks can be passed inline while
// long prose is piped or read from a file.
func blockSourceText(cmd *cobra.Command) (string, error) {
	if text, _ := cmd.Flags().GetString("text"); text != "" {
		return text, nil
	}
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	raw, err := readAllStdin(cmd)
	if err != nil {
		return "", err
	}
	return raw, nil
}
