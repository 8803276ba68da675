package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDb(t *testing.T) {
	t.Helper()

	require.Nil(t, InitializeTestDb(t.TempDir()))
	t.Cleanup(func() { CloseDB() })
}

func createTestContact(t *testing.T, name string, isFavorite bool, methods ...ContactMethod) *Contact {
	t.Helper()

	contact := &Contact{Name: name, IsFavorite: isFavorite, Methods: methods}
	require.Nil(t, CreateContact(contact), "Should create contact %v", name)

	return contact
}

func TestCreateContact(t *testing.T) {
	setupTestDb(t)

	contact := createTestContact(t, "harvey specter", false,
		ContactMethod{Type: "phone", Value: "+12345678900"},
		ContactMethod{Type: "email", Value: "harvey@pearson.com"},
	)
	assert.NotZero(t, contact.ID)

	found, err := FindContact(contact.ID)
	require.Nil(t, err)
	assert.Equal(t, "harvey specter", found.Name)
	assert.False(t, found.IsFavorite)
	require.Len(t, found.Methods, 2)
	assert.Equal(t, "phone", found.Methods[0].Type)
	assert.Equal(t, "+12345678900", found.Methods[0].Value)
	assert.Equal(t, "email", found.Methods[1].Type)
	assert.Equal(t, contact.ID, found.Methods[1].ContactID)
}

func TestFetchContacts(t *testing.T) {
	setupTestDb(t)

	createTestContact(t, "mike ross", false)
	createTestContact(t, "donna paulsen", true, ContactMethod{Type: "email", Value: "donna@pearson.com"})
	createTestContact(t, "louis litt", true)

	testCases := []struct {
		description   string
		favoritesOnly bool
		expectedNames []string
	}{
		{"Should return all contacts", false, []string{"mike ross", "donna paulsen", "louis litt"}},
		{"Should return only favorite contacts", true, []string{"donna paulsen", "louis litt"}},
	}

	for _, tcase := range testCases {
		t.Run(tcase.description, func(t *testing.T) {
			contacts, err := FetchContacts(tcase.favoritesOnly)
			require.Nil(t, err)

			names := []string{}
			for _, contact := range contacts {
				names = append(names, contact.Name)
				if tcase.favoritesOnly {
					assert.True(t, contact.IsFavorite, "%v should be a favorite", contact.Name)
				}
			}
			assert.Equal(t, tcase.expectedNames, names)
		})
	}

	contacts, err := FetchContacts(true)
	require.Nil(t, err)
	require.Len(t, contacts[0].Methods, 1, "Should preload contact methods")
	assert.Equal(t, "donna@pearson.com", contacts[0].Methods[0].Value)
}

func TestToggleFavorite(t *testing.T) {
	setupTestDb(t)

	contact := createTestContact(t, "jessica pearson", false)

	toggled, err := ToggleFavorite(contact.ID)
	require.Nil(t, err)
	assert.True(t, toggled.IsFavorite)

	toggled, err = ToggleFavorite(contact.ID)
	require.Nil(t, err)
	assert.False(t, toggled.IsFavorite, "Toggling twice should restore the original state")

	_, err = ToggleFavorite(contact.ID + 100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteContact(t *testing.T) {
	setupTestDb(t)

	contact := createTestContact(t, "rachel zane", false,
		ContactMethod{Type: "phone", Value: "555-0100"},
		ContactMethod{Type: "email", Value: "rachel@pearson.com"},
	)
	other := createTestContact(t, "katrina bennett", false, ContactMethod{Type: "phone", Value: "555-0101"})

	count, err := CountContactMethods(contact.ID)
	require.Nil(t, err)
	assert.Equal(t, int64(2), count)

	require.Nil(t, DeleteContact(contact.ID))

	_, err = FindContact(contact.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err = CountContactMethods(contact.ID)
	require.Nil(t, err)
	assert.Zero(t, count, "Deleting a contact should delete its methods")

	count, err = CountContactMethods(other.ID)
	require.Nil(t, err)
	assert.Equal(t, int64(1), count, "Other contacts' methods should be untouched")

	assert.ErrorIs(t, DeleteContact(contact.ID), gorm.ErrRecordNotFound)
}

func TestImportContacts(t *testing.T) {
	setupTestDb(t)

	err := ImportContacts([]Contact{
		{Name: "alex williams", IsFavorite: true, Methods: []ContactMethod{{Type: "phone", Value: "555-0102"}}},
		{Name: "samantha wheeler"},
	})
	require.Nil(t, err)

	contacts, err := FetchContacts(false)
	require.Nil(t, err)
	require.Len(t, contacts, 2)
	assert.True(t, contacts[0].IsFavorite)
	assert.Len(t, contacts[0].Methods, 1)

	assert.Nil(t, ImportContacts(nil), "Empty import should be a no-op")
}

func TestImportContactsIsAtomic(t *testing.T) {
	setupTestDb(t)

	existing := createTestContact(t, "robert zane", false)

	// Re-using an existing primary key forces the second insert to fail
	err := ImportContacts([]Contact{
		{Name: "new contact", Methods: []ContactMethod{{Type: "email", Value: "new@pearson.com"}}},
		{BaseModel: BaseModel{ID: existing.ID}, Name: "duplicate"},
	})
	assert.NotNil(t, err)

	contacts, err := FetchContacts(false)
	require.Nil(t, err)
	require.Len(t, contacts, 1, "Failed import should not commit any contact")
	assert.Equal(t, "robert zane", contacts[0].Name)
}
