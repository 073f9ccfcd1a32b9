package command

import (
	"github.com/litteralabs/littera/internal/command/output"
	"github.com/litteralabs/littera/internal/repository"
)

// App bundles the repositories every command function needs plus the
// Printer results are rendered through. cmd/ constructs one App per
// invocation from the resolved Work's cluster (cmd/root.go), mirroring the
// teacher's practice of wiring a single dependency graph in one place
// (internal/app/container.go) rather than threading individual
// repositories through cobra RunE closures.
type App struct {
	Work           repository.WorkRepository
	Doc            repository.DocRepository
	Section        repository.SectionRepository
	Block          repository.BlockRepository
	SemanticEntity repository.SemanticEntityRepository
	EntityLabel    repository.EntityLabelRepository
	EntityWorkMeta repository.EntityWorkMetadataRepository
	Mention        repository.MentionRepository
	Alignment      repository.BlockAlignmentRepository
	Review         repository.ReviewRepository

	Out *output.Printer
}
