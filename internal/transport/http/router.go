package http

import "net/http"

// NewRouter wires the REST API, the event stream and the health check.
func NewRouter(api *API, ws *WSHandler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("POST /quizzes", api.HandleCreateQuiz)
	mux.HandleFunc("GET /quizzes/latest", api.HandleLatest)
	mux.HandleFunc("GET /quizzes/{sequence}", api.HandleGetQuiz)
	mux.HandleFunc("DELETE /quizzes/{sequence}", api.HandleDeleteQuiz)
	mux.HandleFunc("POST /quizzes/{sequence}/attempts", api.HandleAttemptQuiz)
	mux.HandleFunc("GET /accounts/{account}/rating", api.HandleRating)
	mux.HandleFunc("GET /accounts/{account}/balance", api.HandleBalance)
	if ws != nil {
		mux.HandleFunc("GET /events", ws.ServeWS)
	}
	return mux
}
