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

	"github.com/spf13/cobra"

	"github.com/litteralabs/littera/internal/command"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
)

var alignmentCmd = &cobra.Command{
	Use:   "alignment",
	Short: "Manage BlockAlignments linking a source Block to its translation",
}

var alignmentCreateCmd = &cobra.Command{
	Use:   "create <source-block-id> <target-block-id>",
	Short: "Link a source Block to its translated target Block",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := parseID(args[0])
		if err != nil {
			return err
		}
		target, err := parseID(args[1])
		if err != nil {
			return err
		}
		kind, _ := cmd.Flags().GetString("kind")
		confidence, _ := cmd.Flags().GetFloat64("confidence")
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.AlignmentCreate(ctx, cmdOptions(), &entity.BlockAlignment{
				SourceBlock: source, TargetBlock: target, Kind: kind, Confidence: confidence,
			})
			return err
		})
	},
}

var alignmentGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a BlockAlignment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.AlignmentGet(ctx, id)
			return err
		})
	},
}

var alignmentListCmd = &cobra.Command{
	Use:   "list <block-id>",
	Short: "List alignments touching a Block, on either side, optionally narrowed by --filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		blockID, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.AlignmentList(ctx, &repository.ListQuery{
				ParentID:    &blockID,
				Pagination:  repository.Pagination{PageNo: 1, PageSize: 1000},
				FilterOrder: filterOrderFromFlags(cmd),
			})
			return err
		})
	},
}

var alignmentDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a BlockAlignment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			return app.AlignmentDelete(ctx, cmdOptions(), id)
		})
	},
}

var alignmentRebuildCmd = &cobra.Command{
	Use:   "rebuild <source-block-id>",
	Short: "Recompute alignments for a source Block against every translated Document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceID, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			return app.AlignmentRebuild(ctx, cmdOptions(), sourceID)
		})
	},
}

var alignmentGapsCmd = &cobra.Command{
	Use:   "gaps <work-id>",
	Short: "List entities labeled in the source language but missing a label in the target language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workID, err := parseID(args[0])
		if err != nil {
			return err
		}
		sourceRaw, _ := cmd.Flags().GetString("source-language")
		targetRaw, _ := cmd.Flags().GetString("target-language")
		sourceLang, err := parseLanguage(sourceRaw)
		if err != nil {
			return err
		}
		targetLang, err := parseLanguage(targetRaw)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.AlignmentGaps(ctx, workID, sourceLang, targetLang)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(alignmentCmd)
	alignmentCmd.AddCommand(alignmentCreateCmd, alignmentGetCmd, alignmentListCmd, alignmentDeleteCmd, alignmentRebuildCmd, alignmentGapsCmd)

	alignmentCreateCmd.Flags().String("kind", "translation", "alignment kind")
	alignmentCreateCmd.Flags().Float64("confidence", 1.0, "confidence score in [0,1]")

	alignmentGapsCmd.Flags().String("source-language", "", "language an entity must already be labeled in")
	alignmentGapsCmd.Flags().String("target-language", "", "language to check for a missing label")

	addFilterOrderFlags(alignmentListCmd, "")
}
