package models

type ContactMethod struct {
	BaseModel
	Type      string `json:"type"`
	Value     string `json:"value"`
	ContactID uint   `json:"contact_id,omitempty" gorm:"not null"`
}

func CountContactMethods(contactID interface{}) (int64, error) {
	var count int64

	err := db.Model(&ContactMethod{}).Where("contact_id = ?", contactID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
