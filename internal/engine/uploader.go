// internal/engine/uploader.go
package engine

import (
	"context"
	"fmt"
	"os"
)

// UploadAndFile downloads the matched replay files, uploads them into the
// destination folder, and renames the filed copies "Game 1..n" in
// chronological order.
//
// replayIDs arrive newest first (search order); the pipeline walks them in
// reverse so the numbering reads oldest game to newest. A single file's
// failure is logged and skipped, never fatal to the batch. Temporary files
// are removed on every exit path.
func (e *Engine) UploadAndFile(ctx context.Context, replayIDs []string, destGroup string) ([]string, error) {
	var filed []string

	for i := len(replayIDs) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return filed, err
		}
		id := replayIDs[i]
		filedID, err := e.transferReplay(ctx, id, destGroup)
		if err != nil {
			if ctx.Err() != nil {
				return filed, ctx.Err()
			}
			e.log.Error().Err(err).Str("replay", id).Msg("replay not filed")
			continue
		}
		filed = append(filed, filedID)
	}

	for n, id := range filed {
		if err := ctx.Err(); err != nil {
			return filed, err
		}
		title := fmt.Sprintf("Game %d", n+1)
		if err := e.svc.PatchReplay(ctx, id, map[string]string{"title": title}); err != nil {
			e.log.Error().Err(err).Str("replay", id).Str("title", title).Msg("rename failed")
		}
	}

	return filed, nil
}

// transferReplay moves one replay into the destination group: download to a
// scratch file, re-upload, and on a duplicate conflict re-file the existing
// copy instead.
func (e *Engine) transferReplay(ctx context.Context, id, destGroup string) (string, error) {
	raw, err := e.svc.DownloadReplay(ctx, id)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", id, err)
	}

	tmp, err := os.CreateTemp("", "replay-*.replay")
	if err != nil {
		return "", err
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(raw); err != nil {
		return "", err
	}
	if _, err := tmp.Seek(0, 0); err != nil {
		return "", err
	}

	res, err := e.svc.UploadReplay(ctx, id+".replay", tmp, destGroup, e.opts.Visibility)
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", id, err)
	}
	if !res.Duplicate {
		return res.ID, nil
	}

	// The file already lives on the service under another group: move it
	// rather than duplicating it.
	if err := e.svc.PatchReplay(ctx, res.ID, map[string]string{"group": destGroup}); err != nil {
		return "", fmt.Errorf("re-filing duplicate %s: %w", res.ID, err)
	}
	e.log.Debug().Str("replay", res.ID).Str("group", destGroup).Msg("duplicate re-filed")
	return res.ID, nil
}
