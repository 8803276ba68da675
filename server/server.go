package server

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Daskott/addressbook/server/backup"
	"github.com/Daskott/addressbook/server/gstorage"
	"github.com/Daskott/addressbook/server/logger"
	"github.com/Daskott/addressbook/server/models"
	"github.com/Daskott/addressbook/shared"
	"github.com/go-co-op/gocron"
	"github.com/gorilla/mux"
)

const DEFAULT_MAX_UPLOAD_MB = 32

var logg = logger.NewLogger("server")

func Start(config *shared.ServerConfig) {
	fatalOnError(models.AutoMigrate(config.Database))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%v", config.AddressBook.Listener.Port),
		Handler:           NewRouter(config.AddressBook.Listener),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var scheduler *gocron.Scheduler
	if config.Backup.Enabled {
		scheduler = startBackups(config.Backup)
	}

	go serve(server)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	cleanup(scheduler, server)
}

func NewRouter(listener shared.ListenerConfig) *mux.Router {
	maxUploadMB := listener.MaxUploadMB
	if maxUploadMB <= 0 {
		maxUploadMB = DEFAULT_MAX_UPLOAD_MB
	}

	router := mux.NewRouter()
	router.Use(requestIDMiddleware, loggingMiddleware)

	router.HandleFunc("/", index).Methods("GET")
	router.HandleFunc("/export", exportContacts).Methods("GET")
	router.HandleFunc("/import", importContacts(maxUploadMB<<20)).Methods("POST")

	contactsRouter := router.PathPrefix("/contacts").Subrouter()
	contactsRouter.HandleFunc("", listContacts).Methods("GET")
	contactsRouter.HandleFunc("", createContact).Methods("POST")
	contactsRouter.HandleFunc("/{id:[0-9]+}/favorite", toggleFavorite).Methods("PUT")
	contactsRouter.HandleFunc("/{id:[0-9]+}", deleteContact).Methods("DELETE")

	return router
}

func startBackups(config shared.BackupConfig) *gocron.Scheduler {
	storage, err := gstorage.NewGStorage(config.ApplicationCredentials)
	fatalOnError(err)

	scheduler, err := backup.Schedule(backup.NewBackup(storage, config.Bucket, config.Prefix), config.Schedule, config.TimeZone)
	fatalOnError(err)

	scheduler.StartAsync()
	logg.Infof("Scheduled address book backups to bucket %q with '%v'", config.Bucket, config.Schedule)

	return scheduler
}
