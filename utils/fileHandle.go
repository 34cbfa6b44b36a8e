package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeFilename replaces every character outside [A-Za-z0-9.-] so an
// uploaded name cannot traverse out of the uploads directory.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(filepath.Base(name), "_")
}

// SaveUploadedFile stores the uploaded file in destDir under a
// collision-resistant name and returns the generated filename.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	// Millisecond timestamp prefix keeps concurrent uploads apart
	newFilename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), SanitizeFilename(file.Filename))
	filePath := filepath.Join(destDir, newFilename)

	// Create destination file
	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Copy the file content
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return newFilename, nil
}

// RemoveUploadedFile is the compensating delete for uploads whose
// record update failed. Best effort: a missing file is not an error.
func RemoveUploadedFile(destDir, filename string) {
	if filename == "" {
		return
	}
	if err := os.Remove(filepath.Join(destDir, filename)); err != nil && !os.IsNotExist(err) {
		fmt.Println("Error cleaning up uploaded file:", err)
	}
}

// GetFileURL maps a stored certificate reference to its download URL.
func GetFileURL(certificatePath string) string {
	if certificatePath == "" {
		return ""
	}
	return "/" + certificatePath
}
