package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Daskott/addressbook/server/models"
	"github.com/Daskott/addressbook/server/spreadsheet"
	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type ResponsePayload struct {
	Errors  []string    `json:"errors"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

type createContactRequest struct {
	Name    string                 `json:"name" validate:"required,notblank"`
	Methods []contactMethodRequest `json:"methods" validate:"dive"`
}

type contactMethodRequest struct {
	Type  string `json:"type" validate:"required"`
	Value string `json:"value" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := RegisterValidators(validate); err != nil {
		panic(err)
	}
}

func index(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(rw, "Address book is running!\n")
}

func listContacts(rw http.ResponseWriter, r *http.Request) {
	favoritesOnly := r.URL.Query().Get("favorite") == "true"

	contacts, err := models.FetchContacts(favoritesOnly)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	for i := range contacts {
		normalizeMethods(&contacts[i])
	}

	writeResponse(rw, ResponsePayload{Success: true, Data: contacts}, http.StatusOK)
}

func createContact(rw http.ResponseWriter, r *http.Request) {
	data := createContactRequest{}

	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	errs := validate.Struct(data)
	if errs != nil {
		writeResponse(rw, ResponsePayload{Errors: strings.Split(errs.Error(), "\n")}, http.StatusBadRequest)
		return
	}

	contact := models.Contact{Name: data.Name}
	for _, method := range data.Methods {
		contact.Methods = append(contact.Methods, models.ContactMethod{Type: method.Type, Value: method.Value})
	}

	err = models.CreateContact(&contact)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	normalizeMethods(&contact)
	writeResponse(rw, ResponsePayload{Success: true, Data: contact}, http.StatusCreated)
}

func toggleFavorite(rw http.ResponseWriter, r *http.Request) {
	contact, err := models.ToggleFavorite(mux.Vars(r)["id"])
	if err != nil {
		writeErrorForRecord(rw, err)
		return
	}

	normalizeMethods(contact)
	writeResponse(rw, ResponsePayload{Success: true, Data: contact}, http.StatusOK)
}

func deleteContact(rw http.ResponseWriter, r *http.Request) {
	err := models.DeleteContact(mux.Vars(r)["id"])
	if err != nil {
		writeErrorForRecord(rw, err)
		return
	}

	writeResponse(rw, ResponsePayload{Success: true}, http.StatusOK)
}

func exportContacts(rw http.ResponseWriter, r *http.Request) {
	contacts, err := models.FetchContacts(false)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	// Buffer the workbook so a failure can still be reported as json
	buff := new(bytes.Buffer)
	err = spreadsheet.Export(contacts, buff)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", spreadsheet.CONTENT_TYPE)
	rw.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%v", spreadsheet.FILE_NAME))
	rw.Header().Set("Content-Length", fmt.Sprint(buff.Len()))
	rw.WriteHeader(http.StatusOK)

	if _, err := buff.WriteTo(rw); err != nil {
		logg.Errorf("exportContacts: %v", err)
	}
}

func importContacts(maxUploadSize int64) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(rw, r.Body, maxUploadSize)

		file, _, err := r.FormFile("file")
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			writeResponse(rw, ResponsePayload{Errors: []string{"no file uploaded"}}, http.StatusBadRequest)
			return
		}

		if err != nil {
			writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
			return
		}
		defer file.Close()

		contacts, err := spreadsheet.Import(file)
		if err != nil {
			writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
			return
		}

		err = models.ImportContacts(contacts)
		if err != nil {
			writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
			return
		}

		writeResponse(rw,
			ResponsePayload{Success: true, Data: map[string]int{"imported": len(contacts)}},
			http.StatusCreated,
		)
	}
}

// writeErrorForRecord maps a lookup error for a single contact to 404/500
func writeErrorForRecord(rw http.ResponseWriter, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusNotFound)
		return
	}

	writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
}

// normalizeMethods makes sure contacts without methods serialize as [] instead of null
func normalizeMethods(contact *models.Contact) {
	if contact.Methods == nil {
		contact.Methods = []models.ContactMethod{}
	}
}
