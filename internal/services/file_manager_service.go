package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"nodeBoard/internal/enums"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/interfaces"
	"nodeBoard/internal/models"
	"nodeBoard/internal/repositories"

	"github.com/google/uuid"
)

// FileManagerService stores generated content through a FileManager and
// records each file in its side table.
type FileManagerService struct {
	fileManager interfaces.FileManager
	assetRepo   *repositories.AssetRepository
}

func NewFileManagerService(fileManager interfaces.FileManager, assetRepo *repositories.AssetRepository) *FileManagerService {
	return &FileManagerService{
		fileManager: fileManager,
		assetRepo:   assetRepo,
	}
}

func (fs *FileManagerService) StoreImage(ctx context.Context, owner models.AssetOwner, prompt string, data []byte, contentType string) (*models.Image, error) {
	key := objectKey(owner, enums.FILE_PREFIX_IMAGES, extensionFor(contentType, ".png"))
	url, err := fs.upload(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}
	image := &models.Image{
		UserID:       owner.UserID,
		WhiteboardID: owner.WhiteboardID,
		NodeID:       owner.NodeID,
		Prompt:       prompt,
		ObjectKey:    key,
		URL:          url,
	}
	if err := fs.assetRepo.CreateImage(image); err != nil {
		fs.discard(ctx, key)
		return nil, err
	}
	return image, nil
}

func (fs *FileManagerService) StoreSpeech(ctx context.Context, owner models.AssetOwner, text, voice string, data []byte, contentType string) (*models.Speech, error) {
	key := objectKey(owner, enums.FILE_PREFIX_SPEECH, extensionFor(contentType, ".mp3"))
	url, err := fs.upload(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}
	speech := &models.Speech{
		UserID:       owner.UserID,
		WhiteboardID: owner.WhiteboardID,
		NodeID:       owner.NodeID,
		Text:         text,
		Voice:        voice,
		ObjectKey:    key,
		URL:          url,
	}
	if err := fs.assetRepo.CreateSpeech(speech); err != nil {
		fs.discard(ctx, key)
		return nil, err
	}
	return speech, nil
}

func (fs *FileManagerService) StoreWebsite(ctx context.Context, owner models.AssetOwner, prompt string, html []byte) (*models.Website, error) {
	key := objectKey(owner, enums.FILE_PREFIX_WEBSITES, ".html")
	url, err := fs.upload(ctx, key, html, "text/html; charset=utf-8")
	if err != nil {
		return nil, err
	}
	website := &models.Website{
		UserID:       owner.UserID,
		WhiteboardID: owner.WhiteboardID,
		NodeID:       owner.NodeID,
		Prompt:       prompt,
		ObjectKey:    key,
		URL:          url,
	}
	if err := fs.assetRepo.CreateWebsite(website); err != nil {
		fs.discard(ctx, key)
		return nil, err
	}
	return website, nil
}

// DeleteAssets removes the stored objects behind assets and returns every
// failure instead of stopping at the first.
func (fs *FileManagerService) DeleteAssets(ctx context.Context, assets *models.WhiteboardAssets) []error {
	var keys []string
	for _, image := range assets.Images {
		keys = append(keys, image.ObjectKey)
	}
	for _, speech := range assets.Speeches {
		keys = append(keys, speech.ObjectKey)
	}
	for _, website := range assets.Websites {
		keys = append(keys, website.ObjectKey)
	}

	var errors []error
	for _, key := range keys {
		if err := fs.fileManager.DeleteFile(ctx, key); err != nil {
			errors = append(errors, fmt.Errorf("%w %s: %v", errs.ErrUnableToDeleteFile, key, err))
		}
	}
	return errors
}

func (fs *FileManagerService) upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	url, err := fs.fileManager.UploadFile(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrUnableToUploadFile, err)
	}
	return url, nil
}

func (fs *FileManagerService) discard(ctx context.Context, key string) {
	if err := fs.fileManager.DeleteFile(ctx, key); err != nil {
		slog.Warn("failed to remove orphaned file", "key", key, "error", err)
	}
}

func objectKey(owner models.AssetOwner, prefix, extension string) string {
	return fmt.Sprintf("whiteboards/%d/%s/%s%s", owner.WhiteboardID, prefix, uuid.NewString(), extension)
}

func extensionFor(contentType, fallback string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "audio/mpeg":
		return ".mp3"
	case "audio/wav":
		return ".wav"
	case "audio/ogg":
		return ".ogg"
	case "audio/opus":
		return ".opus"
	case "audio/aac":
		return ".aac"
	case "audio/flac":
		return ".flac"
	default:
		return fallback
	}
}
