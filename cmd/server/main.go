package main

import (
	"github.com/freddyb/standup/internal/server"
)

func main() {
	s := server.New()
	s.RegisterRoutes()
	s.Start(s.Cfg.BindAddr)
}
