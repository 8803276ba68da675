package backup

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Daskott/addressbook/server/models"
	"github.com/Daskott/addressbook/server/spreadsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type uploaderStub struct {
	bucket string
	object string
	body   []byte
	err    error
}

func (u *uploaderStub) Upload(ctx context.Context, bucket, object string, r io.Reader) error {
	if u.err != nil {
		return u.err
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	u.bucket, u.object, u.body = bucket, object, body
	return nil
}

func fixedClock() time.Time {
	return time.Date(2022, time.March, 4, 5, 6, 7, 0, time.UTC)
}

func TestObjectName(t *testing.T) {
	testCases := []struct {
		prefix   string
		expected string
	}{
		{"", "contacts-20220304T050607Z.xlsx"},
		{"addressbook-dev", "addressbook-dev/contacts-20220304T050607Z.xlsx"},
	}

	for _, tcase := range testCases {
		t.Run(tcase.expected, func(t *testing.T) {
			backup := NewBackup(&uploaderStub{}, "bucket", tcase.prefix)
			backup.now = fixedClock
			assert.Equal(t, tcase.expected, backup.ObjectName())
		})
	}
}

func TestRun(t *testing.T) {
	require.Nil(t, models.InitializeTestDb(t.TempDir()))
	defer models.CloseDB()

	err := models.CreateContact(&models.Contact{
		Name:       "harvey specter",
		IsFavorite: true,
		Methods:    []models.ContactMethod{{Type: "phone", Value: "+12345678900"}},
	})
	require.Nil(t, err)

	uploader := &uploaderStub{}
	backup := NewBackup(uploader, "addressbook", "backups")
	backup.now = fixedClock

	object, err := backup.Run(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "backups/contacts-20220304T050607Z.xlsx", object)
	assert.Equal(t, "addressbook", uploader.bucket)
	assert.Equal(t, object, uploader.object)

	contacts, err := spreadsheet.Import(bytes.NewReader(uploader.body))
	require.Nil(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "harvey specter", contacts[0].Name)
	assert.True(t, contacts[0].IsFavorite)
	assert.Equal(t, "+12345678900", contacts[0].Methods[0].Value)
}

func TestRunUploadFailure(t *testing.T) {
	require.Nil(t, models.InitializeTestDb(t.TempDir()))
	defer models.CloseDB()

	backup := NewBackup(&uploaderStub{err: errors.New("bucket is gone")}, "addressbook", "")

	_, err := backup.Run(context.Background())
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "bucket is gone")
}

func TestSchedule(t *testing.T) {
	backup := NewBackup(&uploaderStub{}, "addressbook", "")

	scheduler, err := Schedule(backup, "0 3 * * *", "America/Toronto")
	require.Nil(t, err)
	assert.Equal(t, 1, scheduler.Len())
	assert.Equal(t, "America/Toronto", scheduler.Location().String())

	_, err = Schedule(backup, "not a cron expression", "UTC")
	assert.NotNil(t, err)
}

func TestRunOversizedContact(t *testing.T) {
	require.Nil(t, models.InitializeTestDb(t.TempDir()))
	defer models.CloseDB()

	err := models.CreateContact(&models.Contact{
		Name:    "louis litt",
		Methods: []models.ContactMethod{{Type: "note", Value: strings.Repeat("x", excelize.TotalCellChars)}},
	})
	require.Nil(t, err)

	uploader := &uploaderStub{}
	_, err = NewBackup(uploader, "addressbook", "").Run(context.Background())
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "backup: export contacts")
	assert.Empty(t, uploader.object, "Should not upload a truncated backup")
}
