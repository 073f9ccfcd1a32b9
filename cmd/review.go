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

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Manage Reviews, issues raised against a Work's scoped nodes",
}

var reviewCreateCmd = &cobra.Command{
	Use:   "create <scope-kind> <scope-id>",
	Short: "Raise a Review against a Work, Document, Section, or Block",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		scopeID, err := parseID(args[1])
		if err != nil {
			return err
		}
		issueType, _ := cmd.Flags().GetString("issue-type")
		message, _ := cmd.Flags().GetString("message")
		severity, _ := cmd.Flags().GetString("severity")
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.ReviewCreate(ctx, cmdOptions(), &entity.Review{
				ScopeKind: entity.ReviewScopeKind(args[0]),
				ScopeID:   scopeID,
				IssueType: issueType,
				Message:   message,
				Severity:  entity.ReviewSeverity(severity),
			})
			return err
		})
	},
}

var reviewGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a Review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.ReviewGet(ctx, id)
			return err
		})
	},
}

var reviewListCmd = &cobra.Command{
	Use:   "list <scope-id>",
	Short: "List Reviews raised against a scope id (typically a Work), optionally narrowed by --filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scopeID, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.ReviewList(ctx, &repository.ListQuery{
				ParentID:    &scopeID,
				Pagination:  repository.Pagination{PageNo: 1, PageSize: 1000},
				FilterOrder: filterOrderFromFlags(cmd),
			})
			return err
		})
	},
}

var reviewUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a Review's message or severity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		message, _ := cmd.Flags().GetString("message")
		severity, _ := cmd.Flags().GetString("severity")
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			r, err := app.ReviewGet(ctx, id)
			if err != nil {
				return err
			}
			if message != "" {
				r.Message = message
			}
			if severity != "" {
				r.Severity = entity.ReviewSeverity(severity)
			}
			_, err = app.ReviewUpdate(ctx, r)
			return err
		})
	},
}

var reviewDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Resolve (delete) a Review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			return app.ReviewDelete(ctx, cmdOptions(), id)
		})
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.AddCommand(reviewCreateCmd, reviewGetCmd, reviewListCmd, reviewUpdateCmd, reviewDeleteCmd)

	reviewCreateCmd.Flags().String("issue-type", "", "machine-readable issue category")
	reviewCreateCmd.Flags().String("message", "", "human-readable issue description")
	reviewCreateCmd.Flags().String("severity", string(entity.SeverityWarning), "severity: info|warning|error")

	reviewUpdateCmd.Flags().String("message", "", "new message")
	reviewUpdateCmd.Flags().String("severity", "", "new severity: info|warning|error")

	addFilterOrderFlags(reviewListCmd, "")
}
