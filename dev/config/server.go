package config

// SERVER_YML is written to dev/config/server.yml the first time the
// server runs with --dev
const SERVER_YML = `
addressbook:
  logLevel: debug
  listener:
    port: 3000
    maxUploadMB: 32

database:
  driver: sqlite
  logLevel: info
  sqlite:
    passPhrase: passphrase
    dir: dev

backup:
  enabled: false
  schedule: "*/30 * * * *"
  timeZone: "America/Toronto"
  bucket: "addressbook"
  prefix: "addressbook-dev"
  applicationCredentials:
`
