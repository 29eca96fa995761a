package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/models"
	"taskmanager/internal/storage/sqlite"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func pngSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tm.db")
	mediaRoot := filepath.Join(dir, "media")

	out, err := run(t, "seed", "--db", dbPath, "--media", mediaRoot)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 9 lookup rows")
	assert.FileExists(t, filepath.Join(mediaRoot, models.DefaultAvatar))

	out, err = run(t, "seed", "--db", dbPath, "--media", mediaRoot)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 0 lookup rows")
}

func TestNormalizeAvatarsCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tm.db")
	mediaRoot := filepath.Join(dir, "media")

	store, err := sqlite.Open(dbPath, nil)
	require.NoError(t, err)

	ctx := context.Background()
	big := models.NewWorker("big", "Big", "Picture")
	small := models.NewWorker("small", "Small", "Picture")
	require.NoError(t, store.CreateWorker(ctx, big))
	require.NoError(t, store.CreateWorker(ctx, small))

	writePNG(t, filepath.Join(mediaRoot, "profile_images", "big.png"), 400, 200)
	writePNG(t, filepath.Join(mediaRoot, "profile_images", "small.png"), 40, 20)
	require.NoError(t, store.CreateProfile(ctx, &models.Profile{WorkerID: big.ID, Avatar: "profile_images/big.png"}))
	require.NoError(t, store.CreateProfile(ctx, &models.Profile{WorkerID: small.ID, Avatar: "profile_images/small.png"}))
	require.NoError(t, store.Close())

	out, err := run(t, "normalize-avatars", "--db", dbPath, "--media", mediaRoot)
	require.NoError(t, err)
	assert.Contains(t, out, "checked 2 profiles, 0 failed")

	w, h := pngSize(t, filepath.Join(mediaRoot, "profile_images", "big.png"))
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)

	w, h = pngSize(t, filepath.Join(mediaRoot, "profile_images", "small.png"))
	assert.Equal(t, 40, w)
	assert.Equal(t, 20, h)
}

func TestNormalizeAvatarsReportsFailures(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tm.db")
	mediaRoot := filepath.Join(dir, "media")

	store, err := sqlite.Open(dbPath, nil)
	require.NoError(t, err)

	ctx := context.Background()
	broken := models.NewWorker("broken", "Broken", "File")
	fine := models.NewWorker("fine", "Fine", "File")
	require.NoError(t, store.CreateWorker(ctx, broken))
	require.NoError(t, store.CreateWorker(ctx, fine))

	require.NoError(t, os.MkdirAll(filepath.Join(mediaRoot, "profile_images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mediaRoot, "profile_images", "broken.png"), []byte("not an image"), 0o644))
	writePNG(t, filepath.Join(mediaRoot, "profile_images", "fine.png"), 300, 300)
	require.NoError(t, store.CreateProfile(ctx, &models.Profile{WorkerID: broken.ID, Avatar: "profile_images/broken.png"}))
	require.NoError(t, store.CreateProfile(ctx, &models.Profile{WorkerID: fine.ID, Avatar: "profile_images/fine.png"}))
	require.NoError(t, store.Close())

	out, err := run(t, "normalize-avatars", "--db", dbPath, "--media", mediaRoot)
	require.Error(t, err)
	assert.Contains(t, out, "checked 2 profiles, 1 failed")

	w, h := pngSize(t, filepath.Join(mediaRoot, "profile_images", "fine.png"))
	assert.Equal(t, 100, w)
	assert.Equal(t, 100, h)
}
