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

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Manage Sections, nestable children of a Document",
}

var sectionCreateCmd = &cobra.Command{
	Use:   "create <document-id>",
	Short: "Create a Section under a Document (optionally nested under another Section)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		documentID, err := parseID(args[0])
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("title")
		order, _ := cmd.Flags().GetInt64("order")
		parentRaw, _ := cmd.Flags().GetString("parent")
		parentID, err := parseOptionalID(parentRaw)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.SectionCreate(ctx, cmdOptions(), &entity.Section{
				DocumentID: documentID, ParentID: parentID, Title: title, OrderIndex: order,
			})
			return err
		})
	},
}

var sectionGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a Section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.SectionGet(ctx, id)
			return err
		})
	},
}

var sectionListCmd = &cobra.Command{
	Use:   "list <document-id>",
	Short: "List a Document's Sections, optionally narrowed by --filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		documentID, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.SectionList(ctx, &repository.ListQuery{
				ParentID:    &documentID,
				Pagination:  repository.Pagination{PageNo: 1, PageSize: 10000},
				FilterOrder: filterOrderFromFlags(cmd),
			})
			return err
		})
	},
}

var sectionUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename a Section or change its order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("title")
		order, _ := cmd.Flags().GetInt64("order")
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			sec, err := app.SectionGet(ctx, id)
			if err != nil {
				return err
			}
			if title != "" {
				sec.Title = title
			}
			if cmd.Flags().Changed("order") {
				sec.OrderIndex = order
			}
			_, err = app.SectionUpdate(ctx, sec)
			return err
		})
	},
}

var sectionDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a Section and, with --force, its nested Sections and Blocks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			return app.SectionDelete(ctx, cmdOptions(), id)
		})
	},
}

func init() {
	rootCmd.AddCommand(sectionCmd)
	sectionCmd.AddCommand(sectionCreateCmd, sectionGetCmd, sectionListCmd, sectionUpdateCmd, sectionDeleteCmd)

	sectionCreateCmd.Flags().String("title", "", "section title")
	sectionCreateCmd.Flags().Int64("order", 0, "order index among siblings")
	sectionCreateCmd.Flags().String("parent", "", "parent section id, for nesting within the same document")

	sectionUpdateCmd.Flags().String("title", "", "new title")
	sectionUpdateCmd.Flags().Int64("order", 0, "new order index")

	addFilterOrderFlags(sectionListCmd, "")
}
