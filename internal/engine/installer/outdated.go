package installer

import (
	"context"
	"slices"
	"strings"

	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
)

// Outdated reports every manifest dependency whose locked version is older
// than the newest published version still satisfying the declared
// constraint. Dependencies without a graph entry are skipped; they have
// never been resolved, so there is nothing to compare against.
func (i *Installer) Outdated(
	ctx context.Context,
	manifest *domain.Manifest,
	record *domain.LockRecord,
	sources []ports.Source,
) ([]domain.OutdatedPackage, error) {
	state := &installRunState{
		i:          i,
		manifest:   manifest,
		record:     record,
		sources:    sources,
		provenance: make(map[string]string),
	}

	universe, err := state.buildUniverse(ctx)
	if err != nil {
		return nil, err
	}

	var outdated []domain.OutdatedPackage
	for _, dep := range manifest.Dependencies {
		name := dep.Name.String()

		entry, locked := record.Graph().Find(name)
		if !locked {
			continue
		}

		candidates := universe.Satisfying(name, dep.Constraint)
		if len(candidates) == 0 {
			continue
		}

		newest := candidates[0]
		if domain.CompareVersions(newest.Version, entry.Version) <= 0 {
			continue
		}

		outdated = append(outdated, domain.OutdatedPackage{
			Name:      dep.Name,
			Locked:    entry.Version,
			Candidate: newest.Version,
			SourceID:  newest.SourceID,
		})
	}

	slices.SortFunc(outdated, func(a, b domain.OutdatedPackage) int {
		return strings.Compare(a.Name.String(), b.Name.String())
	})
	return outdated, nil
}
