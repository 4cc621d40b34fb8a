// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package drive mirrors a local directory tree into Google Drive,
// preserving folder names and nesting.
package drive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// folderMimeType marks a Drive file as a folder.
const folderMimeType = "application/vnd.google-apps.folder"

// service abstracts the two Drive operations the uploader needs, so tests
// can substitute a fake.
type service interface {
	CreateFolder(ctx context.Context, name, parentID string) (string, error)
	UploadFile(ctx context.Context, localPath, parentID string) error
}

// Client uploads directory trees to Drive.
type Client struct {
	svc service
	w   io.Writer
}

// NewClient authenticates with a service-account credential (the JSON key
// contents) and returns a ready uploader. Status lines go to w.
func NewClient(ctx context.Context, credentialsJSON []byte, w io.Writer) (*Client, error) {
	srv, err := drive.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating Drive service: %w", err)
	}
	return &Client{svc: &apiService{files: srv.Files}, w: w}, nil
}

// UploadDirectory recreates localPath's folder/file structure under the
// Drive folder parentID ("" means the Drive root). Individual upload
// failures are reported and counted but do not abort the remaining tree;
// UploadDirectory returns an error only when the root folder cannot be
// created or when at least one item failed.
func (c *Client) UploadDirectory(ctx context.Context, localPath, parentID string) error {
	failed, err := c.uploadTree(ctx, localPath, parentID)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d item(s) failed to upload", failed)
	}
	return nil
}

func (c *Client) uploadTree(ctx context.Context, localPath, parentID string) (failed int, err error) {
	name := filepath.Base(localPath)
	fmt.Fprintf(c.w, "creating folder: %s\n", name)

	folderID, err := c.svc.CreateFolder(ctx, name, parentID)
	if err != nil {
		return 0, fmt.Errorf("creating folder %s: %w", name, err)
	}

	entries, err := os.ReadDir(localPath)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", localPath, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		p := filepath.Join(localPath, entry.Name())
		if entry.IsDir() {
			f, err := c.uploadTree(ctx, p, folderID)
			if err != nil {
				fmt.Fprintf(c.w, "warning: %v\n", err)
				failed++
				continue
			}
			failed += f
			continue
		}

		fmt.Fprintf(c.w, "uploading file: %s\n", entry.Name())
		if err := c.svc.UploadFile(ctx, p, folderID); err != nil {
			fmt.Fprintf(c.w, "warning: uploading %s: %v\n", entry.Name(), err)
			failed++
		}
	}
	return failed, nil
}

// apiService is the production implementation over the Drive v3 API.
type apiService struct {
	files *drive.FilesService
}

func (s *apiService) CreateFolder(ctx context.Context, name, parentID string) (string, error) {
	meta := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}
	f, err := s.files.Create(meta).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return f.Id, nil
}

func (s *apiService) UploadFile(ctx context.Context, localPath, parentID string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	meta := &drive.File{
		Name:    filepath.Base(localPath),
		Parents: []string{parentID},
	}
	_, err = s.files.Create(meta).Media(f).Fields("id").Context(ctx).Do()
	return err
}
