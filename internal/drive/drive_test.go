// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService records the folder/file operations the uploader issues.
type fakeService struct {
	nextID  int
	folders []createdFolder
	uploads []uploadedFile
	failOn  string // base name of a file whose upload should fail
}

type createdFolder struct {
	id, name, parentID string
}

type uploadedFile struct {
	name, parentID string
}

func (f *fakeService) CreateFolder(_ context.Context, name, parentID string) (string, error) {
	f.nextID++
	id := fmt.Sprintf("folder-%d", f.nextID)
	f.folders = append(f.folders, createdFolder{id: id, name: name, parentID: parentID})
	return id, nil
}

func (f *fakeService) UploadFile(_ context.Context, localPath, parentID string) error {
	name := filepath.Base(localPath)
	if name == f.failOn {
		return errors.New("quota exceeded")
	}
	f.uploads = append(f.uploads, uploadedFile{name: name, parentID: parentID})
	return nil
}

func makeTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "EverNote Notes")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Work"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Personal"), 0o755))
	for _, p := range []string{
		filepath.Join(root, "Work", "Standup.pdf"),
		filepath.Join(root, "Work", "Scan.jpg"),
		filepath.Join(root, "Personal", "Trip-MultiItem.pdf"),
	} {
		require.NoError(t, os.WriteFile(p, []byte("content"), 0o644))
	}
	return root
}

func TestUploadDirectory(t *testing.T) {
	root := makeTree(t)
	fake := &fakeService{}
	var buf bytes.Buffer
	c := &Client{svc: fake, w: &buf}

	require.NoError(t, c.UploadDirectory(context.Background(), root, "drive-parent"))

	// Folder per directory, nested under the created root folder.
	require.Len(t, fake.folders, 3)
	rootFolder := fake.folders[0]
	assert.Equal(t, "EverNote Notes", rootFolder.name)
	assert.Equal(t, "drive-parent", rootFolder.parentID)

	byName := make(map[string]createdFolder)
	for _, f := range fake.folders[1:] {
		byName[f.name] = f
		assert.Equal(t, rootFolder.id, f.parentID)
	}
	require.Contains(t, byName, "Work")
	require.Contains(t, byName, "Personal")

	// Every file lands in its directory's folder.
	require.Len(t, fake.uploads, 3)
	for _, u := range fake.uploads {
		switch u.name {
		case "Standup.pdf", "Scan.jpg":
			assert.Equal(t, byName["Work"].id, u.parentID)
		case "Trip-MultiItem.pdf":
			assert.Equal(t, byName["Personal"].id, u.parentID)
		default:
			t.Errorf("unexpected upload %q", u.name)
		}
	}
}

func TestUploadDirectoryRootParent(t *testing.T) {
	root := makeTree(t)
	fake := &fakeService{}
	c := &Client{svc: fake, w: &bytes.Buffer{}}

	require.NoError(t, c.UploadDirectory(context.Background(), root, ""))
	assert.Equal(t, "", fake.folders[0].parentID)
}

func TestUploadDirectoryPartialFailure(t *testing.T) {
	root := makeTree(t)
	fake := &fakeService{failOn: "Scan.jpg"}
	var buf bytes.Buffer
	c := &Client{svc: fake, w: &buf}

	err := c.UploadDirectory(context.Background(), root, "drive-parent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 item(s) failed to upload")

	// The failure did not stop the rest of the tree.
	assert.Len(t, fake.uploads, 2)
	assert.Contains(t, buf.String(), "warning: uploading Scan.jpg")
}
