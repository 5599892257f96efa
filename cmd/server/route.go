package main

import (
	"github.com/matryer/way"
)

const URI_WS = "/play"
const URI_LEVEL = "/levels/:number"
const URI_CATALOG = "/catalog"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.GameServer.HandleHttpCall())
	s.router.HandleFunc("GET", URI_LEVEL, s.GameServer.HandleLevel())
	s.router.HandleFunc("GET", URI_CATALOG, s.GameServer.HandleCatalog())
}
