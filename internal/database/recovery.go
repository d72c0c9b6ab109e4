package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// RecoveryOutcome describes how a startup recovery attempt ended.
type RecoveryOutcome int

const (
	// RecoveryHealthy means the file was absent or passed its integrity check.
	RecoveryHealthy RecoveryOutcome = iota
	// RecoveryWALReplay means replaying the WAL restored a consistent state.
	RecoveryWALReplay
	// RecoveryBackupRestore means the file was replaced with the newest valid backup.
	RecoveryBackupRestore
	// RecoveryFailed means every recovery phase failed.
	RecoveryFailed
)

func (o RecoveryOutcome) String() string {
	switch o {
	case RecoveryHealthy:
		return "healthy"
	case RecoveryWALReplay:
		return "wal_replay"
	case RecoveryBackupRestore:
		return "backup_restore"
	case RecoveryFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RecoveryReport summarizes a recovery attempt.
type RecoveryReport struct {
	Outcome      RecoveryOutcome
	DatabasePath string
	BackupUsed   string
	Err          error
}

// Recover checks the database file before the application opens it and
// attempts repair when the integrity check fails. Phases, in order:
// WAL replay, then restoration of the newest backup that passes its own
// integrity check. The corrupted file is preserved alongside the database.
func Recover(dbPath, backupDir string) (*RecoveryReport, error) {
	report := &RecoveryReport{
		Outcome:      RecoveryHealthy,
		DatabasePath: dbPath,
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		// First run, nothing to recover
		return report, nil
	}

	if err := verifyFile(dbPath); err == nil {
		return report, nil
	} else {
		slog.Warn("database integrity check failed", "path", dbPath, "error", err)
	}

	if _, err := os.Stat(dbPath + "-wal"); err == nil {
		if err := replayWAL(dbPath); err != nil {
			slog.Warn("WAL replay failed", "path", dbPath, "error", err)
		} else if err := verifyFile(dbPath); err == nil {
			report.Outcome = RecoveryWALReplay
			slog.Info("database recovered via WAL replay", "path", dbPath)
			return report, nil
		}
	}

	if backupDir != "" {
		used, err := restoreNewestBackup(dbPath, backupDir)
		if err == nil {
			report.Outcome = RecoveryBackupRestore
			report.BackupUsed = used
			slog.Info("database restored from backup", "path", dbPath, "backup", used)
			return report, nil
		}
		slog.Warn("backup restoration failed", "error", err)
	}

	report.Outcome = RecoveryFailed
	report.Err = errors.New("all recovery attempts failed")
	slog.Error("database recovery failed", "path", dbPath)
	return report, report.Err
}

// verifyFile opens the file read-only and runs SQLite's integrity check.
func verifyFile(dbPath string) error {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, "PRAGMA integrity_check")
	if err != nil {
		return fmt.Errorf("running integrity check: %w", err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var result string
		if err := rows.Scan(&result); err != nil {
			return fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating results: %w", err)
	}

	if len(results) == 1 && results[0] == "ok" {
		return nil
	}
	return fmt.Errorf("integrity check failed: %s", strings.Join(results, "; "))
}

// replayWAL opens the database normally and forces a checkpoint, which
// replays any pending WAL frames into the main file.
func replayWAL(dbPath string) error {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_txlock=immediate", dbPath))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA wal_checkpoint(RESTART)"); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}

// restoreNewestBackup replaces the database with the most recent backup
// that passes an integrity check. Returns the path of the backup used.
func restoreNewestBackup(dbPath, backupDir string) (string, error) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return "", fmt.Errorf("reading backup directory: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}

	var backups []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, candidate{
			path:    filepath.Join(backupDir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	if len(backups) == 0 {
		return "", errors.New("no backup files found")
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].modTime.After(backups[j].modTime)
	})

	for _, backup := range backups {
		if err := verifyFile(backup.path); err != nil {
			slog.Debug("backup failed integrity check", "path", backup.path, "error", err)
			continue
		}

		// Preserve the corrupted file for post-mortem
		corruptedPath := dbPath + ".corrupted." + time.Now().Format("20060102-150405")
		if err := os.Rename(dbPath, corruptedPath); err != nil {
			slog.Warn("failed to preserve corrupted database", "path", dbPath, "error", err)
		}

		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")

		if err := copyFile(backup.path, dbPath); err != nil {
			return "", fmt.Errorf("copying backup: %w", err)
		}
		return backup.path, nil
	}

	return "", errors.New("no valid backup found")
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return dstFile.Sync()
}
