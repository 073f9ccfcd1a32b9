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
	"github.com/litteralabs/littera/internal/linguistics"
	"github.com/litteralabs/littera/internal/repository"
)

var mentionCmd = &cobra.Command{
	Use:   "mention",
	Short: "Manage Mentions, a Block's attachment of a SemanticEntity",
}

var mentionCreateCmd = &cobra.Command{
	Use:   "create <block-id> <entity-id>",
	Short: "Attach an entity mention to a Block",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		blockID, err := parseID(args[0])
		if err != nil {
			return err
		}
		entityID, err := parseID(args[1])
		if err != nil {
			return err
		}
		langRaw, _ := cmd.Flags().GetString("language")
		surface, _ := cmd.Flags().GetString("surface")
		lang, err := entity.ParseLanguage(langRaw)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.MentionCreate(ctx, cmdOptions(), &entity.Mention{
				BlockID: blockID, EntityID: entityID, Language: lang, Surface: surface,
			})
			return err
		})
	},
}

var mentionGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a Mention",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.MentionGet(ctx, id)
			return err
		})
	},
}

var mentionListCmd = &cobra.Command{
	Use:   "list <block-id>",
	Short: "List mentions on a Block, optionally narrowed by --filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		blockID, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.MentionListByBlock(ctx, &repository.ListQuery{
				ParentID:    &blockID,
				Pagination:  repository.Pagination{PageNo: 1, PageSize: 1000},
				FilterOrder: filterOrderFromFlags(cmd),
			})
			return err
		})
	},
}

var mentionListByEntityCmd = &cobra.Command{
	Use:   "list-by-entity <entity-id>",
	Short: "List every Mention of an entity across all Blocks, optionally narrowed by --filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entityID, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.MentionListByEntity(ctx, entityID, &repository.ListQuery{
				Pagination:  repository.Pagination{PageNo: 1, PageSize: 1000},
				FilterOrder: filterOrderFromFlags(cmd),
			})
			return err
		})
	},
}

var mentionUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a Mention's observed surface form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		surface, _ := cmd.Flags().GetString("surface")
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			m, err := app.MentionGet(ctx, id)
			if err != nil {
				return err
			}
			if surface != "" {
				m.Surface = surface
			}
			_, err = app.MentionUpdate(ctx, m)
			return err
		})
	},
}

var mentionDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a Mention",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			return app.MentionDelete(ctx, cmdOptions(), id)
		})
	},
}

var mentionRenderCmd = &cobra.Command{
	Use:   "render <id>",
	Short: "Run the Linguistics Interface over a Mention's entity and features to produce display text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		features := featuresFromFlags(cmd)
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.MentionRender(ctx, id, features)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(mentionCmd)
	mentionCmd.AddCommand(mentionCreateCmd, mentionGetCmd, mentionListCmd, mentionListByEntityCmd, mentionUpdateCmd, mentionDeleteCmd, mentionRenderCmd)

	mentionCreateCmd.Flags().String("language", "", "grammatical language this mention is rendered in")
	mentionCreateCmd.Flags().String("surface", "", "observed surface form, if already known")

	mentionUpdateCmd.Flags().String("surface", "", "new observed surface form")

	registerFeatureFlags(mentionRenderCmd)

	addFilterOrderFlags(mentionListCmd, "")
	addFilterOrderFlags(mentionListByEntityCmd, "")
}

// featureFlagSpecs names every linguistics.Features field as a CLI flag,
// shared between `mention render` and `inflect` so the two surfaces never
// drift on what grammatical features can be requested.
var featureFlagSpecs = []string{"pos", "number", "case", "article", "tense", "person", "degree"}

func registerFeatureFlags(cmd *cobra.Command) {
	for _, name := range featureFlagSpecs {
		cmd.Flags().String(name, "", "grammatical feature: "+name)
	}
}

func featuresFromFlags(cmd *cobra.Command) linguistics.Features {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return linguistics.Features{
		Pos:     get("pos"),
		Number:  get("number"),
		Case:    get("case"),
		Article: get("article"),
		Tense:   get("tense"),
		Person:  get("person"),
		Degree:  get("degree"),
	}
}
