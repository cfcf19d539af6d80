package web

import (
	"survivor-pool/api/api"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
}

// Server is the HTTP server that serves the pool snapshot and handles webhook
// requests from the results feed
type Server struct {
	api *api.API
}
