package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"rkzs/config"
	"rkzs/database"
	"rkzs/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUpload(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))
	if age > 0 {
		stamp := time.Now().Add(-age)
		require.NoError(t, os.Chtimes(path, stamp, stamp))
	}
	return path
}

func TestSweepOrphanedCertificates(t *testing.T) {
	config.LoadConfig()
	config.AppConfig.UploadDir = t.TempDir()
	database.ConnectTestDb()

	dir := config.AppConfig.UploadDir

	kept := writeUpload(t, dir, "1000-kept.pdf", 2*time.Hour)
	orphanOld := writeUpload(t, dir, "1001-orphan.pdf", 2*time.Hour)
	orphanNew := writeUpload(t, dir, "1002-inflight.pdf", 0)

	student := models.Student{
		Name:            "Bob",
		CourseID:        1,
		FranchiseID:     1,
		CertificatePath: "uploads/1000-kept.pdf",
	}
	require.NoError(t, database.Database.Db.Create(&student).Error)

	SweepOrphanedCertificates()

	_, err := os.Stat(kept)
	assert.NoError(t, err, "referenced file must survive")

	_, err = os.Stat(orphanOld)
	assert.True(t, os.IsNotExist(err), "old orphan must be removed")

	_, err = os.Stat(orphanNew)
	assert.NoError(t, err, "recent file must survive the age floor")
}

func TestSweepMissingUploadDir(t *testing.T) {
	config.LoadConfig()
	config.AppConfig.UploadDir = filepath.Join(t.TempDir(), "does-not-exist")
	database.ConnectTestDb()

	// Must be a no-op, not a crash
	SweepOrphanedCertificates()
}
