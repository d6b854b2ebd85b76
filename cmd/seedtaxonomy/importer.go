package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hejazi/internal/domain"
	"hejazi/internal/service"
)

// importResult counts what an import did.
type importResult struct {
	Created int
	Skipped int
}

// importNodes creates every node not already present in the tenant's tree.
// Existing codes are matched case-insensitively and left untouched, so a
// sheet can be re-imported after edits.
func importNodes(ctx context.Context, taxonomy service.TaxonomyService, tenantID uuid.UUID, nodes []seedNode, dryRun bool) (importResult, error) {
	var res importResult

	tree, err := taxonomy.Tree(ctx, tenantID)
	if err != nil {
		return res, fmt.Errorf("loading taxonomy: %w", err)
	}
	ids := make(map[string]uuid.UUID)
	indexTree(tree, ids)

	for _, n := range nodes {
		key := strings.ToUpper(n.Code)
		if _, ok := ids[key]; ok {
			res.Skipped++
			continue
		}

		input := service.CreateNodeInput{
			Level:     n.Level,
			Code:      n.Code,
			NameAR:    n.NameAR,
			NameEN:    n.NameEN,
			SortOrder: n.SortOrder,
		}
		if n.ParentCode != "" {
			parentID, ok := ids[strings.ToUpper(n.ParentCode)]
			if !ok {
				return res, fmt.Errorf("row %d: parent %q of %q not found", n.Row, n.ParentCode, n.Code)
			}
			input.ParentID = &parentID
		}

		if dryRun {
			ids[key] = uuid.New()
			res.Created++
			log.Info().Str("level", string(n.Level)).Str("code", n.Code).Msg("seedtaxonomy: would create")
			continue
		}

		created, err := taxonomy.Create(ctx, tenantID, input)
		if errors.Is(err, domain.ErrDuplicateCode) {
			return res, fmt.Errorf("row %d: code %q is already used at another level", n.Row, n.Code)
		}
		if err != nil {
			return res, fmt.Errorf("row %d: creating %s %q: %w", n.Row, n.Level, n.Code, err)
		}
		ids[key] = created.ID
		res.Created++
	}
	return res, nil
}

func indexTree(nodes []service.TreeNode, ids map[string]uuid.UUID) {
	for i := range nodes {
		ids[strings.ToUpper(nodes[i].Code)] = nodes[i].ID
		indexTree(nodes[i].Children, ids)
	}
}
