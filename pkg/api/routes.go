package api

// registerRoutes registers all routes on the server mux.
func (s *Server) registerRoutes() {
	// Health and metrics
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.Handle("GET /metrics", s.metrics.Handler())

	// HTML pages
	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.HandleFunc("POST /{$}", s.handleIndexSubmit)
	s.router.HandleFunc("GET /tic", s.handleTicIndex)
	s.router.HandleFunc("POST /tic", s.handleTicSubmit)

	// JSON API
	s.router.HandleFunc("POST /api/trees", s.handleTrees)
	s.router.HandleFunc("POST /api/trees/amplitude", s.handleAmplitudeTrees)
	s.router.HandleFunc("POST /api/query", s.handleQuery)
	s.router.HandleFunc("POST /api/stats", s.handleStats)
	s.router.HandleFunc("POST /api/habitability", s.handleHabitability)
	s.router.HandleFunc("POST /api/planet-type", s.handlePlanetType)
	s.router.HandleFunc("POST /api/classify/{table}", s.handleClassify)
	s.router.HandleFunc("GET /api/tables", s.handleTables)
	s.router.HandleFunc("GET /api/history", s.handleHistory)
}
