package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/Daskott/addressbook/server/cron"
	"github.com/Daskott/addressbook/server/logger"
	"github.com/Daskott/addressbook/server/models"
	"github.com/Daskott/addressbook/server/spreadsheet"
	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
)

const (
	JOB_TAG        = "backupContacts"
	TIMESTAMP      = "20060102T150405Z"
	UPLOAD_TIMEOUT = 50 * time.Second
)

var logg = logger.NewLogger("backup")

type Uploader interface {
	Upload(ctx context.Context, bucket, object string, r io.Reader) error
}

type Backup struct {
	uploader Uploader
	bucket   string
	prefix   string
	now      func() time.Time
}

func NewBackup(uploader Uploader, bucket, prefix string) *Backup {
	return &Backup{uploader: uploader, bucket: bucket, prefix: prefix, now: time.Now}
}

// Run exports every contact to an xlsx workbook & uploads it, returning the object name
func (b *Backup) Run(ctx context.Context) (string, error) {
	contacts, err := models.FetchContacts(false)
	if err != nil {
		return "", errors.Wrap(err, "backup: fetch contacts")
	}

	buff := new(bytes.Buffer)
	if err := spreadsheet.Export(contacts, buff); err != nil {
		return "", errors.Wrap(err, "backup: export contacts")
	}

	object := b.ObjectName()
	if err := b.uploader.Upload(ctx, b.bucket, object, buff); err != nil {
		return "", errors.Wrapf(err, "backup: upload %v", object)
	}

	logg.Infof("Backed up %v contacts to gs://%v/%v", len(contacts), b.bucket, object)
	return object, nil
}

func (b *Backup) ObjectName() string {
	name := fmt.Sprintf("contacts-%v.xlsx", b.now().UTC().Format(TIMESTAMP))
	if b.prefix == "" {
		return name
	}
	return path.Join(b.prefix, name)
}

// Schedule registers 'backup' to run on 'cronExpression'. The returned
// scheduler is not started.
func Schedule(backup *Backup, cronExpression, timeZone string) (*gocron.Scheduler, error) {
	scheduler := cron.NewCronScheduler(timeZone)

	_, err := scheduler.Cron(cronExpression).Tag(JOB_TAG).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), UPLOAD_TIMEOUT)
		defer cancel()

		if _, err := backup.Run(ctx); err != nil {
			logg.Error(err)
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "backup: invalid schedule %q", cronExpression)
	}

	return scheduler, nil
}
