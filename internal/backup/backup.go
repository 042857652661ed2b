// Package backup creates timestamped copy-aside backups of target
// configuration files before a sync overwrites them.
package backup

import (
	"io"
	"os"
	"time"

	"github.com/thoreinstein/claudius/internal/errors"
)

// TimestampFormat names backup files down to the second, local time.
const TimestampFormat = "20060102_150405"

// Create copies the file at path to "{path}.backup.{timestamp}" in the
// same directory and returns the backup path. A missing source is not
// an error; it returns an empty path.
func Create(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "stat %s", path)
	}
	if info.IsDir() {
		return "", errors.Newf("cannot back up directory %s", path)
	}

	backupPath := path + ".backup." + time.Now().Format(TimestampFormat)
	if err := copyFile(path, backupPath, info.Mode()); err != nil {
		return "", errors.Wrapf(err, "backing up %s", path)
	}

	return backupPath, nil
}

// copyFile copies src to dst preserving the source's permissions.
func copyFile(src, dst string, mode os.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return errors.Wrap(err, "creating backup file")
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		return errors.Wrap(err, "closing backup file")
	}

	return nil
}
