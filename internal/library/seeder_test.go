package library

import (
	"bytes"
	"context"
	"testing"

	"github.com/rcavaliericopy-max/salomao/internal/models"
	tu "github.com/rcavaliericopy-max/salomao/internal/testing"
)

func testManifest() *Manifest {
	return &Manifest{
		Groups: []Group{
			{
				FolderName: "Mantras",
				Tracks: []Entry{
					{Filename: "mantra-1.mp3", Name: "Mantra 1"},
					{Filename: "mantra-2.mp3", Name: "Mantra 2"},
				},
			},
			{
				FolderName: "Meditação",
				Tracks: []Entry{
					{Filename: "meditacao-guiada.mp3", Name: "Meditação Guiada"},
				},
			},
		},
	}
}

func testFetcher() *tu.FakeFetcher {
	return &tu.FakeFetcher{
		Assets: map[string][]byte{
			"mantra-1.mp3":         bytes.Repeat([]byte{0x01}, 2048),
			"mantra-2.mp3":         bytes.Repeat([]byte{0x02}, 2048),
			"meditacao-guiada.mp3": bytes.Repeat([]byte{0x03}, 2048),
		},
	}
}

func TestSeed(t *testing.T) {
	t.Run("PopulatesEmptyStore", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		seeder := NewSeeder(store, testFetcher(), testManifest(), nil)

		result, err := seeder.Seed(context.Background())
		if err != nil {
			t.Fatalf("failed to seed: %v", err)
		}

		if result.FoldersCreated != 2 {
			t.Errorf("expected 2 folders created, got %d", result.FoldersCreated)
		}
		if result.TracksAdded != 3 {
			t.Errorf("expected 3 tracks added, got %d", result.TracksAdded)
		}
		if result.TracksSkipped != 0 || result.TracksFailed != 0 {
			t.Errorf("expected no skips or failures, got %d/%d", result.TracksSkipped, result.TracksFailed)
		}

		folder, err := store.Folders().GetByName("Mantras")
		if err != nil {
			t.Fatalf("failed to get folder: %v", err)
		}
		tracks, err := store.Tracks().ListByFolder(folder.ID())
		if err != nil {
			t.Fatalf("failed to list tracks: %v", err)
		}
		if len(tracks) != 2 {
			t.Errorf("expected 2 tracks in Mantras, got %d", len(tracks))
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		fetcher := testFetcher()
		seeder := NewSeeder(store, fetcher, testManifest(), nil)

		if _, err := seeder.Seed(context.Background()); err != nil {
			t.Fatalf("first seed failed: %v", err)
		}
		fetchedOnce := len(fetcher.Fetched)

		result, err := seeder.Seed(context.Background())
		if err != nil {
			t.Fatalf("second seed failed: %v", err)
		}

		if result.FoldersCreated != 0 {
			t.Errorf("expected no new folders, got %d", result.FoldersCreated)
		}
		if result.TracksAdded != 0 {
			t.Errorf("expected no new tracks, got %d", result.TracksAdded)
		}
		if result.TracksSkipped != 3 {
			t.Errorf("expected 3 skips, got %d", result.TracksSkipped)
		}
		if len(fetcher.Fetched) != fetchedOnce {
			t.Error("existing tracks should not be fetched again")
		}

		tracks, err := store.Tracks().List()
		if err != nil {
			t.Fatalf("failed to list tracks: %v", err)
		}
		if len(tracks) != 3 {
			t.Errorf("expected 3 tracks after reseeding, got %d", len(tracks))
		}
	})

	t.Run("MatchesExistingNamesCaseInsensitively", func(t *testing.T) {
		store := tu.NewMemoryStore(t)

		folder := models.NewFolder("MANTRAS", nil)
		if err := store.Folders().Create(folder); err != nil {
			t.Fatalf("failed to create folder: %v", err)
		}
		track := models.NewAudioTrack(folder.ID(), "MANTRA 1", bytes.Repeat([]byte{0x01}, 2048), "audio/mpeg")
		if err := store.Tracks().Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}

		seeder := NewSeeder(store, testFetcher(), testManifest(), nil)
		result, err := seeder.Seed(context.Background())
		if err != nil {
			t.Fatalf("failed to seed: %v", err)
		}

		if result.FoldersCreated != 1 {
			t.Errorf("expected only the missing folder to be created, got %d", result.FoldersCreated)
		}
		if result.TracksSkipped != 1 {
			t.Errorf("expected the existing track to be skipped, got %d skips", result.TracksSkipped)
		}
		if result.TracksAdded != 2 {
			t.Errorf("expected 2 tracks added, got %d", result.TracksAdded)
		}
	})

	t.Run("BrokenAssetDoesNotAbortBatch", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		fetcher := testFetcher()
		delete(fetcher.Assets, "mantra-1.mp3")

		seeder := NewSeeder(store, fetcher, testManifest(), nil)
		result, err := seeder.Seed(context.Background())
		if err != nil {
			t.Fatalf("failed to seed: %v", err)
		}

		if result.TracksFailed != 1 {
			t.Errorf("expected 1 failure, got %d", result.TracksFailed)
		}
		if result.TracksAdded != 2 {
			t.Errorf("expected remaining tracks to be added, got %d", result.TracksAdded)
		}
	})

	t.Run("FailedTrackRetriedNextRun", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		fetcher := testFetcher()
		blob := fetcher.Assets["mantra-1.mp3"]
		delete(fetcher.Assets, "mantra-1.mp3")

		seeder := NewSeeder(store, fetcher, testManifest(), nil)
		if _, err := seeder.Seed(context.Background()); err != nil {
			t.Fatalf("first seed failed: %v", err)
		}

		fetcher.Assets["mantra-1.mp3"] = blob
		result, err := seeder.Seed(context.Background())
		if err != nil {
			t.Fatalf("second seed failed: %v", err)
		}

		if result.TracksAdded != 1 {
			t.Errorf("expected the recovered track to be added, got %d", result.TracksAdded)
		}
	})

	t.Run("CancellationAborts", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		seeder := NewSeeder(store, testFetcher(), testManifest(), nil)
		if _, err := seeder.Seed(ctx); err == nil {
			t.Error("expected error when context is already cancelled")
		}
	})
}

func TestRepair(t *testing.T) {
	store := tu.NewMemoryStore(t)
	seeder := NewSeeder(store, testFetcher(), testManifest(), nil)

	if _, err := seeder.Seed(context.Background()); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	// a stray record the manifest does not know about
	stray := models.NewAudioTrack(models.RootFolderID, "Stray", bytes.Repeat([]byte{0xFF}, 2048), "audio/mpeg")
	if err := store.Tracks().Create(stray); err != nil {
		t.Fatalf("failed to create track: %v", err)
	}

	result, err := seeder.Repair(context.Background())
	if err != nil {
		t.Fatalf("failed to repair: %v", err)
	}

	if result.FoldersCreated != 2 || result.TracksAdded != 3 {
		t.Errorf("expected a full rebuild, got %d folders and %d tracks", result.FoldersCreated, result.TracksAdded)
	}

	tracks, err := store.Tracks().List()
	if err != nil {
		t.Fatalf("failed to list tracks: %v", err)
	}
	for _, track := range tracks {
		if track.Name() == "Stray" {
			t.Error("repair should remove records not in the manifest")
		}
	}
}

func TestSeedIfEmpty(t *testing.T) {
	t.Run("SeedsEmptyStore", func(t *testing.T) {
		store := tu.NewMemoryStore(t)
		seeder := NewSeeder(store, testFetcher(), testManifest(), nil)

		result, err := seeder.SeedIfEmpty(context.Background())
		if err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
		if result == nil || result.TracksAdded != 3 {
			t.Errorf("expected a full seed, got %+v", result)
		}
	})

	t.Run("SkipsPopulatedStore", func(t *testing.T) {
		store := tu.NewMemoryStore(t)

		folder := models.NewFolder("Existing", nil)
		if err := store.Folders().Create(folder); err != nil {
			t.Fatalf("failed to create folder: %v", err)
		}

		fetcher := testFetcher()
		seeder := NewSeeder(store, fetcher, testManifest(), nil)

		result, err := seeder.SeedIfEmpty(context.Background())
		if err != nil {
			t.Fatalf("failed: %v", err)
		}
		if result != nil {
			t.Errorf("expected no seeding run, got %+v", result)
		}
		if len(fetcher.Fetched) != 0 {
			t.Error("expected no fetches for a populated store")
		}
	})
}
