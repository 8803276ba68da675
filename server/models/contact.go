package models

import (
	"gorm.io/gorm"
)

type Contact struct {
	BaseModel
	Name       string          `json:"name" gorm:"not null"`
	IsFavorite bool            `json:"is_favorite" gorm:"default:false"`
	Methods    []ContactMethod `json:"methods" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// FetchContacts returns every contact with its methods, or only
// favorite contacts when 'favoritesOnly' is set
func FetchContacts(favoritesOnly bool) ([]Contact, error) {
	contacts := []Contact{}

	err := db.Scopes(favorites(favoritesOnly), withMethods).Order("contacts.id asc").Find(&contacts).Error
	if err != nil {
		return nil, err
	}

	return contacts, nil
}

func FindContact(id interface{}) (*Contact, error) {
	return findContact(db, id)
}

// CreateContact inserts 'contact' & its methods in a single transaction
func CreateContact(contact *Contact) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(contact).Error
	})
}

// ToggleFavorite flips 'is_favorite' for the contact with the given id
// & returns the updated record
func ToggleFavorite(id interface{}) (*Contact, error) {
	var contact *Contact

	err := db.Transaction(func(tx *gorm.DB) error {
		found, err := findContact(tx, id)
		if err != nil {
			return err
		}

		err = tx.Model(&Contact{}).Where("id = ?", found.ID).Update("is_favorite", !found.IsFavorite).Error
		if err != nil {
			return err
		}

		contact, err = findContact(tx, found.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return contact, nil
}

// DeleteContact removes the contact with the given id along with all its methods
func DeleteContact(id interface{}) error {
	return db.Transaction(func(tx *gorm.DB) error {
		contact, err := findContact(tx, id)
		if err != nil {
			return err
		}

		return tx.Select("Methods").Delete(contact).Error
	})
}

// ImportContacts inserts all 'contacts' & their methods. Either every
// contact is stored or none is.
func ImportContacts(contacts []Contact) error {
	if len(contacts) == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := range contacts {
			if err := tx.Create(&contacts[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func findContact(tx *gorm.DB, id interface{}) (*Contact, error) {
	contact := Contact{}

	err := tx.Scopes(withMethods).First(&contact, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return &contact, nil
}
