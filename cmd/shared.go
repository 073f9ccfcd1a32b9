package cmd

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
)

// bindFlagToViper ties a local flag to a viper key so cmdOptions and
// withApp can read it without threading *cobra.Command through every
// command layer function, matching the teacher's cmd/backup_shared.go.
func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// parseID wraps entity.ParseID for flag values, returning InvalidInput
// (offending field "id", message quoting the bad value) when malformed.
func parseID(raw string) (entity.ID, error) {
	return entity.ParseID(raw)
}

// parseOptionalID parses raw unless it is empty, in which case it reports
// no parent set (used for --parent on section create).
func parseOptionalID(raw string) (*entity.ID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseLanguage validates a --language flag value through entity.ParseLanguage.
func parseLanguage(raw string) (entity.Language, error) {
	if raw == "" {
		return entity.LanguageUnspecified, nil
	}
	return entity.ParseLanguage(raw)
}

// readAllStdin reads cmd's configured input to completion, used by the
// block/export/import commands that accept piped content.
func readAllStdin(cmd *cobra.Command) (string, error) {
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// addFilterOrderFlags registers the --filter/--order-by pair every list
// command exposes, binding a CEL predicate and an order_by DSL string that
// the repository layer resolves through a pkg/filterexpr.ResourceSchema.
func addFilterOrderFlags(cmd *cobra.Command, defaultOrderBy string) {
	cmd.Flags().String("filter", "", `CEL filter expression, e.g. language == "en"`)
	cmd.Flags().String("order-by", defaultOrderBy, "order_by DSL, e.g. \"created_at desc\"")
}

// filterOrderFromFlags reads --filter/--order-by into a FilterOrder for a
// ListQuery, the counterpart to addFilterOrderFlags.
func filterOrderFromFlags(cmd *cobra.Command) repository.FilterOrder {
	filter, _ := cmd.Flags().GetString("filter")
	orderBy, _ := cmd.Flags().GetString("order-by")
	return repository.FilterOrder{Filter: filter, OrderBy: orderBy}
}
