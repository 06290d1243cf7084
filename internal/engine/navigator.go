// internal/engine/navigator.go
package engine

import (
	"context"
	"fmt"
)

// ResolveDestination walks the ordered folder names under the season's
// top-level group, creating each missing level, and returns the deepest
// folder's id.
//
// The walk is idempotent with respect to name: an existing child with the
// exact name is descended into, never duplicated. Two concurrent reports of
// the same match race to create the same folder name; a create failure is
// therefore answered with one re-list before it is surfaced, so the loser
// of the race descends into the winner's folder.
func (e *Engine) ResolveDestination(ctx context.Context, topGroup string, folderNames []string) (string, error) {
	current := topGroup
	for _, name := range folderNames {
		id, err := e.findChild(ctx, current, name)
		if err != nil {
			return "", fmt.Errorf("listing children of group %q: %w", current, err)
		}
		if id == "" {
			id, err = e.createChild(ctx, current, name)
			if err != nil {
				return "", err
			}
		}
		current = id
	}
	return current, nil
}

// findChild scans a parent's direct children for an exact name match and
// returns "" when there is none.
func (e *Engine) findChild(ctx context.Context, parent, name string) (string, error) {
	page, err := e.svc.ListGroups(ctx, parent, "")
	if err != nil {
		return "", err
	}
	for _, g := range page.List {
		if g.Name == name {
			return g.ID, nil
		}
	}
	return "", nil
}

func (e *Engine) createChild(ctx context.Context, parent, name string) (string, error) {
	g, err := e.svc.CreateGroup(ctx, name, parent, e.opts.TeamIdentification, e.opts.PlayerIdentification)
	if err == nil {
		e.log.Info().Str("group", g.ID).Str("name", name).Msg("created replay group")
		return g.ID, nil
	}

	// A concurrent report may have just created the same name. Re-list once
	// and descend into it if so; otherwise the create failure stands.
	if id, lerr := e.findChild(ctx, parent, name); lerr == nil && id != "" {
		return id, nil
	}
	return "", fmt.Errorf("creating group %q: %w", name, err)
}
