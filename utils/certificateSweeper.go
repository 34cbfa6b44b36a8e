package utils

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"rkzs/config"
	"rkzs/database"
	"rkzs/models"

	"github.com/robfig/cron/v3"
)

// Certificate upload is blob-write then record-update, with no
// transaction across the two. A crash in between leaves a file no
// student references. The sweeper reclaims those.

const orphanMinAge = time.Hour

// logSweeper logs sweeper events with timestamp
func logSweeper(message string) {
	log.Printf("[CERT-SWEEPER %s] %s", time.Now().Format(time.RFC3339), message)
}

// SweepOrphanedCertificates deletes files in the uploads directory that
// are older than orphanMinAge and not referenced by any student row.
// The age floor keeps it from racing an in-flight upload.
func SweepOrphanedCertificates() {
	uploadDir := config.AppConfig.UploadDir

	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return // nothing uploaded yet
		}
		logSweeper("Error reading uploads directory: " + err.Error())
		return
	}

	db := database.Database.Db
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < orphanMinAge {
			continue
		}

		certPath := "uploads/" + entry.Name()
		var count int64
		if err := db.Model(&models.Student{}).Where("certificate_path = ?", certPath).Count(&count).Error; err != nil {
			logSweeper("Error checking certificate reference: " + err.Error())
			continue
		}
		if count > 0 {
			continue
		}

		if err := os.Remove(filepath.Join(uploadDir, entry.Name())); err != nil {
			logSweeper("Error removing orphaned file " + entry.Name() + ": " + err.Error())
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("[CERT-SWEEPER %s] Removed %d orphaned certificate file(s)", time.Now().Format(time.RFC3339), removed)
	}
}

// InitializeCertificateSweeper schedules the hourly orphan sweep.
func InitializeCertificateSweeper() *cron.Cron {
	c := cron.New()

	c.AddFunc("0 * * * *", func() {
		SweepOrphanedCertificates()
	})

	c.Start()
	logSweeper("Certificate sweeper started - runs hourly")
	return c
}
