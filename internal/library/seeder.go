package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/rcavaliericopy-max/salomao/internal/models"
	"github.com/rcavaliericopy-max/salomao/internal/repositories"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
)

// AssetFetcher is the network accessor the seeder pulls bundled audio
// content through. Satisfied by [AssetClient].
type AssetFetcher interface {
	Fetch(ctx context.Context, filename string) ([]byte, string, error)
}

// Result summarizes one seeding run.
type Result struct {
	FoldersCreated int
	TracksAdded    int
	TracksSkipped  int
	TracksFailed   int
}

// Seeder brings the store in line with the manifest. Running it twice in
// a row yields the same set of folder and track records as running it
// once.
type Seeder struct {
	store    *repositories.Store
	assets   AssetFetcher
	manifest *Manifest
	logger   *log.Logger
}

// NewSeeder creates a Seeder. A nil manifest falls back to the embedded
// default; a nil logger defaults to stderr.
func NewSeeder(store *repositories.Store, assets AssetFetcher, manifest *Manifest, logger *log.Logger) *Seeder {
	if manifest == nil {
		manifest = DefaultManifest()
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Seeder{store: store, assets: assets, manifest: manifest, logger: logger}
}

// Seed ensures every manifest folder and track exists. Folder and track
// name matching is case-insensitive. Individual asset failures are logged
// and skipped; they never abort the remaining work.
func (s *Seeder) Seed(ctx context.Context) (*Result, error) {
	result := &Result{}

	if err := s.seedFolders(result); err != nil {
		return nil, err
	}
	if err := s.seedTracks(ctx, result); err != nil {
		return nil, err
	}

	s.logger.Info("seeding complete",
		"folders_created", result.FoldersCreated,
		"tracks_added", result.TracksAdded,
		"tracks_skipped", result.TracksSkipped,
		"tracks_failed", result.TracksFailed,
	)
	return result, nil
}

// Repair clears all folder and track records, then re-runs Seed. Users
// and settings survive.
func (s *Seeder) Repair(ctx context.Context) (*Result, error) {
	if err := s.store.ClearLibrary(); err != nil {
		return nil, fmt.Errorf("failed to clear library: %w", err)
	}
	s.logger.Warn("library cleared for repair")
	return s.Seed(ctx)
}

// SeedIfEmpty runs Seed only when the store holds no folders and no
// tracks. Returns nil, nil when the library already has content. The
// emptiness check counts rows rather than listing them, so a populated
// library never loads its blobs just to be skipped.
func (s *Seeder) SeedIfEmpty(ctx context.Context) (*Result, error) {
	folderCount, err := s.store.Folders().Count()
	if err != nil {
		return nil, err
	}
	if folderCount > 0 {
		return nil, nil
	}

	trackCount, err := s.store.Tracks().Count()
	if err != nil {
		return nil, err
	}
	if trackCount > 0 {
		return nil, nil
	}

	return s.Seed(ctx)
}

// seedFolders creates any manifest folder that does not yet exist,
// matching names case-insensitively.
func (s *Seeder) seedFolders(result *Result) error {
	folders := s.store.Folders()

	for _, group := range s.manifest.Groups {
		_, err := folders.GetByName(group.FolderName)
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("failed to check folder %q: %w", group.FolderName, err)
		}

		folder := models.NewFolder(group.FolderName, nil)
		if err := folders.Create(folder); err != nil {
			return fmt.Errorf("failed to create folder %q: %w", group.FolderName, err)
		}
		result.FoldersCreated++
		s.logger.Info("folder created", "name", group.FolderName)
	}

	return nil
}

// seedTracks fetches and persists every manifest track that is not
// already present in its target folder.
func (s *Seeder) seedTracks(ctx context.Context, result *Result) error {
	folders := s.store.Folders()
	tracks := s.store.Tracks()

	for _, group := range s.manifest.Groups {
		folder, err := folders.GetByName(group.FolderName)
		if err != nil {
			// Folder creation failed earlier in a previous run; skip the group.
			s.logger.Warn("manifest folder missing, skipping group", "name", group.FolderName)
			continue
		}

		for _, entry := range group.Tracks {
			exists, err := tracks.ExistsInFolder(folder.ID(), entry.Name)
			if err != nil {
				return fmt.Errorf("failed to check track %q: %w", entry.Name, err)
			}
			if exists {
				result.TracksSkipped++
				continue
			}

			blob, mimeType, err := s.assets.Fetch(ctx, entry.Filename)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				result.TracksFailed++
				s.logger.Warn("skipping track", "file", entry.Filename, "error", err)
				continue
			}

			track := models.NewAudioTrack(folder.ID(), entry.Name, blob, mimeType)
			if err := tracks.Create(track); err != nil {
				result.TracksFailed++
				s.logger.Error("failed to persist track", "name", entry.Name, "error", err)
				continue
			}

			result.TracksAdded++
			s.logger.Info("track added", "name", entry.Name, "folder", group.FolderName, "bytes", len(blob))
		}
	}

	return nil
}
