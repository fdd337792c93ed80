package services

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"strings"

	"pothole-ambulance-be/config"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxImageSize caps report and resolution photo uploads.
const MaxImageSize = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// AllowedImageName reports whether the uploaded filename has an accepted
// image extension.
func AllowedImageName(name string) bool {
	return allowedImageExts[strings.ToLower(path.Ext(name))]
}

// StoredImage is the result of a blob upload: the file id and the
// publicly resolvable URL the caller persists.
type StoredImage struct {
	ID  primitive.ObjectID
	URL string
}

// UploadImage stores an image buffer in the GridFS bucket and returns its
// public URL. The core never inspects the image bytes beyond size and
// extension checks.
func UploadImage(data []byte, contentType, originalName string, ownerID primitive.ObjectID) (*StoredImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no file provided")
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("image exceeds %d bytes", MaxImageSize)
	}
	if !AllowedImageName(originalName) {
		return nil, fmt.Errorf("only image files are allowed (JPEG, JPG, PNG, GIF, WEBP)")
	}

	bucket, err := gridfs.NewBucket(config.ConnectDB())
	if err != nil {
		return nil, err
	}

	filename := uuid.New().String() + strings.ToLower(path.Ext(originalName))
	uploadOptions := options.GridFSUpload().SetMetadata(bson.M{
		"contentType": contentType,
		"owner":       ownerID,
	})

	fileID, err := bucket.UploadFromStream(filename, bytes.NewReader(data), uploadOptions)
	if err != nil {
		return nil, err
	}

	return &StoredImage{ID: fileID, URL: publicFileURL(fileID)}, nil
}

// OpenImage opens a stored image for download and reports its content
// type and length.
func OpenImage(fileID primitive.ObjectID) (*gridfs.DownloadStream, string, int64, error) {
	bucket, err := gridfs.NewBucket(config.ConnectDB())
	if err != nil {
		return nil, "", 0, err
	}

	stream, err := bucket.OpenDownloadStream(fileID)
	if err != nil {
		return nil, "", 0, err
	}

	file := stream.GetFile()
	contentType := "application/octet-stream"
	if file.Metadata != nil {
		if v, err := file.Metadata.LookupErr("contentType"); err == nil {
			if s, ok := v.StringValueOK(); ok && s != "" {
				contentType = s
			}
		}
	}

	return stream, contentType, file.Length, nil
}

func publicFileURL(fileID primitive.ObjectID) string {
	base := strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/")
	return base + "/api/files/" + fileID.Hex()
}
