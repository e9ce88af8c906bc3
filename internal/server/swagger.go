package server

//go:generate swag init -g internal/server/server.go -o docs/swagger

// @title Browser Control API
// @version 0.1
// @description Remote-control surface for the kiosk browser: navigation by restart, liveness, and the navigation journal.
// @contact.name browserctl Maintainers
// @contact.url https://github.com/raysh454/browserctl
// @BasePath /
