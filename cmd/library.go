package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rcavaliericopy-max/salomao/internal/formatter"
	"github.com/rcavaliericopy-max/salomao/internal/models"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
	"github.com/urfave/cli/v3"
)

// LibrarySeed ensures every manifest folder and track exists.
func (r *Runner) LibrarySeed(ctx context.Context, cmd *cli.Command) error {
	seeder, err := r.seeder(cmd)
	if err != nil {
		return err
	}

	result, err := seeder.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	return r.writePlain("Seeded: %d folders created, %d tracks added, %d skipped, %d failed\n",
		result.FoldersCreated, result.TracksAdded, result.TracksSkipped, result.TracksFailed)
}

// LibraryRepair clears folders and tracks, then reseeds from the manifest.
func (r *Runner) LibraryRepair(ctx context.Context, cmd *cli.Command) error {
	seeder, err := r.seeder(cmd)
	if err != nil {
		return err
	}

	result, err := seeder.Repair(ctx)
	if err != nil {
		return fmt.Errorf("repair failed: %w", err)
	}

	return r.writePlain("Repaired: %d folders created, %d tracks added, %d skipped, %d failed\n",
		result.FoldersCreated, result.TracksAdded, result.TracksSkipped, result.TracksFailed)
}

// LibraryList prints all folders and their tracks, including unfiled
// tracks under the root group.
func (r *Runner) LibraryList(ctx context.Context, cmd *cli.Command) error {
	store, err := r.openStore(cmd)
	if err != nil {
		return err
	}

	folders, err := store.Folders().List()
	if err != nil {
		return err
	}
	tracks, err := store.Tracks().List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		type folderListing struct {
			Folder models.FolderInfo  `json:"folder"`
			Tracks []models.TrackInfo `json:"tracks"`
		}
		byFolder := make(map[string][]models.TrackInfo)
		for _, track := range tracks {
			byFolder[track.FolderID()] = append(byFolder[track.FolderID()], track.Info())
		}

		listings := make([]folderListing, 0, len(folders))
		for _, folder := range folders {
			listings = append(listings, folderListing{Folder: folder.Info(), Tracks: byFolder[folder.ID()]})
		}
		return r.writeJSON(map[string]any{
			"folders": listings,
			"root":    byFolder[models.RootFolderID],
		}, true)
	}

	for _, folder := range folders {
		if err := r.writePlain("%s (%s)\n", folder.Name(), folder.ID()); err != nil {
			return err
		}
		for _, track := range tracks {
			if track.FolderID() != folder.ID() {
				continue
			}
			if err := r.writePlain("  %s  %s\n", track.Name(), formatter.FormatBytes(len(track.Blob()))); err != nil {
				return err
			}
		}
	}

	var unfiled []*models.AudioTrack
	for _, track := range tracks {
		if track.FolderID() == models.RootFolderID {
			unfiled = append(unfiled, track)
		}
	}
	if len(unfiled) > 0 {
		if err := r.writePlain("(unfiled)\n"); err != nil {
			return err
		}
		for _, track := range unfiled {
			if err := r.writePlain("  %s  %s\n", track.Name(), formatter.FormatBytes(len(track.Blob()))); err != nil {
				return err
			}
		}
	}

	return nil
}

// LibraryExport writes one folder's track listing in the requested format.
func (r *Runner) LibraryExport(ctx context.Context, cmd *cli.Command) error {
	store, err := r.openStore(cmd)
	if err != nil {
		return err
	}

	folder, err := store.Folders().Get(cmd.String("id"))
	if err != nil {
		return err
	}
	tracks, err := store.Tracks().ListByFolder(folder.ID())
	if err != nil {
		return err
	}

	infos := make([]models.TrackInfo, len(tracks))
	for i, track := range tracks {
		infos[i] = track.Info()
	}

	var data []byte
	switch format := strings.ToLower(cmd.String("format")); format {
	case "csv":
		data, err = formatter.ExportToCSV(folder.Info(), infos)
	case "md", "markdown":
		data, err = formatter.ExportToMarkdown(folder.Info(), infos)
	case "txt", "text":
		data, err = formatter.ExportToText(folder.Info(), infos)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteExport(path, data); err != nil {
			return err
		}
		return r.writePlain("Exported %d tracks to %s\n", len(infos), path)
	}

	_, err = r.output.Write(data)
	return err
}
