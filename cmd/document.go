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

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc"},
	Short:   "Manage Documents, ordered children of a Work",
}

var documentCreateCmd = &cobra.Command{
	Use:   "create <work-id>",
	Short: "Create a Document under a Work",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workID, err := parseID(args[0])
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("title")
		order, _ := cmd.Flags().GetInt64("order")
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.DocCreate(ctx, cmdOptions(), &entity.Doc{WorkID: workID, Title: title, OrderIndex: order})
			return err
		})
	},
}

var documentGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a Document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.DocGet(ctx, id)
			return err
		})
	},
}

var documentListCmd = &cobra.Command{
	Use:   "list <work-id>",
	Short: "List a Work's Documents, optionally narrowed by --filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workID, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.DocList(ctx, &repository.ListQuery{
				ParentID:    &workID,
				Pagination:  repository.Pagination{PageNo: 1, PageSize: 1000},
				FilterOrder: filterOrderFromFlags(cmd),
			})
			return err
		})
	},
}

var documentUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename a Document or change its order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("title")
		order, _ := cmd.Flags().GetInt64("order")
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			d, err := app.DocGet(ctx, id)
			if err != nil {
				return err
			}
			if title != "" {
				d.Title = title
			}
			if cmd.Flags().Changed("order") {
				d.OrderIndex = order
			}
			_, err = app.DocUpdate(ctx, d)
			return err
		})
	},
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a Document and, with --force, its nested Sections",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			return app.DocDelete(ctx, cmdOptions(), id)
		})
	},
}

func init() {
	rootCmd.AddCommand(documentCmd)
	documentCmd.AddCommand(documentCreateCmd, documentGetCmd, documentListCmd, documentUpdateCmd, documentDeleteCmd)

	documentCreateCmd.Flags().String("title", "", "document title")
	documentCreateCmd.Flags().Int64("order", 0, "order index among sibling documents")

	documentUpdateCmd.Flags().String("title", "", "new title")
	documentUpdateCmd.Flags().Int64("order", 0, "new order index")

	addFilterOrderFlags(documentListCmd, "")
}
