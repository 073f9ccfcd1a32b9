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

var entityCmd = &cobra.Command{
	Use:   "entity",
	Short: "Manage SemanticEntitys, Work-independent referents a Mention can point at",
}

var entityCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a SemanticEntity",
	RunE: func(cmd *cobra.Command, args []string) error {
		typeTag, _ := cmd.Flags().GetString("type")
		label, _ := cmd.Flags().GetString("label")
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.EntityCreate(ctx, cmdOptions(), &entity.SemanticEntity{TypeTag: typeTag, Label: label})
			return err
		})
	},
}

var entityGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a SemanticEntity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.EntityGet(ctx, id)
			return err
		})
	},
}

var entityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List SemanticEntitys, optionally narrowed by --filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.EntityList(ctx, &repository.ListQuery{
				Pagination:  repository.Pagination{PageNo: 1, PageSize: 1000},
				FilterOrder: filterOrderFromFlags(cmd),
			})
			return err
		})
	},
}

var entityUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename a SemanticEntity or change its lifecycle status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		label, _ := cmd.Flags().GetString("label")
		status, _ := cmd.Flags().GetString("status")
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			e, err := app.EntityGet(ctx, id)
			if err != nil {
				return err
			}
			if label != "" {
				e.Label = label
			}
			if status != "" {
				e.Status = entity.EntityStatus(status)
			}
			_, err = app.EntityUpdate(ctx, e)
			return err
		})
	},
}

var entityDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a SemanticEntity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			return app.EntityDelete(ctx, cmdOptions(), id)
		})
	},
}

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Manage EntityLabels, an entity's per-language surface labels",
}

var labelAddCmd = &cobra.Command{
	Use:   "add <entity-id>",
	Short: "Attach a language-specific label to a SemanticEntity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entityID, err := parseID(args[0])
		if err != nil {
			return err
		}
		langRaw, _ := cmd.Flags().GetString("language")
		baseForm, _ := cmd.Flags().GetString("base-form")
		aliases, _ := cmd.Flags().GetStringSlice("alias")
		lang, err := entity.ParseLanguage(langRaw)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.LabelAdd(ctx, cmdOptions(), &entity.EntityLabel{
				EntityID: entityID, Language: lang, BaseForm: baseForm, Aliases: aliases,
			})
			return err
		})
	},
}

var labelListCmd = &cobra.Command{
	Use:   "list <entity-id>",
	Short: "List an entity's labels, optionally narrowed by --filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entityID, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.LabelList(ctx, &repository.ListQuery{
				ParentID:    &entityID,
				Pagination:  repository.Pagination{PageNo: 1, PageSize: 1000},
				FilterOrder: filterOrderFromFlags(cmd),
			})
			return err
		})
	},
}

var labelUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a label's base form or aliases",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		baseForm, _ := cmd.Flags().GetString("base-form")
		aliases, _ := cmd.Flags().GetStringSlice("alias")
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			l, err := app.EntityLabel.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if baseForm != "" {
				l.BaseForm = baseForm
			}
			if cmd.Flags().Changed("alias") {
				l.Aliases = aliases
			}
			_, err = app.LabelUpdate(ctx, l)
			return err
		})
	},
}

var labelRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			return app.LabelRemove(ctx, cmdOptions(), id)
		})
	},
}

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage EntityWorkMetadata, a per-Work overlay on a SemanticEntity",
}

var noteSetCmd = &cobra.Command{
	Use:   "set <entity-id> <work-id>",
	Short: "Set the per-Work note on an entity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entityID, err := parseID(args[0])
		if err != nil {
			return err
		}
		workID, err := parseID(args[1])
		if err != nil {
			return err
		}
		notes, _ := cmd.Flags().GetString("notes")
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.NoteSet(ctx, cmdOptions(), &entity.EntityWorkMetadata{EntityID: entityID, WorkID: workID, Notes: notes})
			return err
		})
	},
}

var noteGetCmd = &cobra.Command{
	Use:   "get <entity-id> <work-id>",
	Short: "Show the per-Work note on an entity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entityID, err := parseID(args[0])
		if err != nil {
			return err
		}
		workID, err := parseID(args[1])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.NoteGet(ctx, entityID, workID)
			return err
		})
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list <work-id>",
	Short: "List notes set within a Work",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workID, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.NoteList(ctx, &repository.ListQuery{
				ParentID:    &workID,
				Pagination:  repository.Pagination{PageNo: 1, PageSize: 1000},
				FilterOrder: filterOrderFromFlags(cmd),
			})
			return err
		})
	},
}

var noteClearCmd = &cobra.Command{
	Use:   "clear <entity-id> <work-id>",
	Short: "Clear the per-Work note on an entity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entityID, err := parseID(args[0])
		if err != nil {
			return err
		}
		workID, err := parseID(args[1])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			return app.NoteClear(ctx, cmdOptions(), entityID, workID)
		})
	},
}

func init() {
	rootCmd.AddCommand(entityCmd)
	entityCmd.AddCommand(entityCreateCmd, entityGetCmd, entityListCmd, entityUpdateCmd, entityDeleteCmd, labelCmd, noteCmd)
	labelCmd.AddCommand(labelAddCmd, labelListCmd, labelUpdateCmd, labelRemoveCmd)
	noteCmd.AddCommand(noteSetCmd, noteGetCmd, noteListCmd, noteClearCmd)

	entityCreateCmd.Flags().String("type", "", "entity type tag (e.g. person, place, concept)")
	entityCreateCmd.Flags().String("label", "", "canonical label")

	entityUpdateCmd.Flags().String("label", "", "new canonical label")
	entityUpdateCmd.Flags().String("status", "", "new lifecycle status: active|merged|deprecated")

	labelAddCmd.Flags().String("language", "", "language tag")
	labelAddCmd.Flags().String("base-form", "", "base form in this language")
	labelAddCmd.Flags().StringSlice("alias", nil, "alternate surface form, repeatable")

	labelUpdateCmd.Flags().String("base-form", "", "new base form")
	labelUpdateCmd.Flags().StringSlice("alias", nil, "replacement alias list")

	noteSetCmd.Flags().String("notes", "", "note text")

	addFilterOrderFlags(entityListCmd, "")
	addFilterOrderFlags(labelListCmd, "")
	addFilterOrderFlags(noteListCmd, "")
}
