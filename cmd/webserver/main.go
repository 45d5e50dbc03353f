package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"sync"

	"quizforge"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const sessionName = "quizforge-session"

// Server holds quiz sessions in memory, keyed by an ID stored in the
// browser cookie. The cookie carries only the ID and a one-shot banner
// message; pasted content and parsed questions never enter it, so the
// 4KB cookie limit cannot truncate a quiz.
type Server struct {
	gen       quizforge.TextGenerator
	store     *sessions.CookieStore
	templates map[string]*template.Template

	mu      sync.Mutex
	quizzes map[string]*quizforge.Session
}

func newServer(gen quizforge.TextGenerator, secret string) *Server {
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"printf": fmt.Sprintf,
	}

	templates := make(map[string]*template.Template)
	templates["home"] = template.Must(template.New("home").Funcs(funcMap).ParseFiles("templates/base.html", "templates/home.html"))

	return &Server{
		gen:       gen,
		store:     sessions.NewCookieStore([]byte(secret)),
		templates: templates,
		quizzes:   make(map[string]*quizforge.Session),
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/generate", s.handleGenerate)
	mux.HandleFunc("/submit", s.handleSubmit)
	return mux
}

func main() {
	quizforge.SetVerbose(os.Getenv("QUIZFORGE_VERBOSE") != "")

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required")
	}

	var gen quizforge.TextGenerator = quizforge.NewOpenAIGenerator(apiKey, os.Getenv("QUIZFORGE_MODEL"))

	// Optional model call transcript
	if path := os.Getenv("QUIZFORGE_CALLLOG"); path != "" {
		callLog, err := quizforge.OpenCallLog(path)
		if err != nil {
			log.Fatalf("Failed to open call log: %v", err)
		}
		defer callLog.Close()
		gen = quizforge.NewLoggedGenerator(gen, callLog)
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "quizforge-dev-secret"
	}

	server := newServer(gen, secret)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8180"
	}

	log.Printf("Starting server on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, server.routes()))
}

// loadQuiz resolves the quiz session for this browser, creating a fresh
// one (and a new ID in the cookie) when none exists yet. The returned
// session is the live server-side value; handler mutations stick.
func (s *Server) loadQuiz(r *http.Request) (*sessions.Session, *quizforge.Session) {
	cookie, _ := s.store.Get(r, sessionName)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sid, ok := cookie.Values["sid"].(string); ok {
		if quiz, found := s.quizzes[sid]; found {
			return cookie, quiz
		}
	}

	sid := uuid.NewString()
	quiz := quizforge.NewSession()
	s.quizzes[sid] = quiz
	cookie.Values["sid"] = sid
	return cookie, quiz
}

func (s *Server) saveCookie(w http.ResponseWriter, r *http.Request, cookie *sessions.Session, message string) error {
	cookie.Values["message"] = message
	return cookie.Save(r, w)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	cookie, quiz := s.loadQuiz(r)
	message, _ := cookie.Values["message"].(string)

	// One-shot banner; saving also persists a freshly assigned session ID
	if err := s.saveCookie(w, r, cookie, ""); err != nil {
		log.Printf("Session save error: %v", err)
	}

	feedback := ""
	if quiz.State == quizforge.StateGraded && quiz.Result != nil {
		feedback = quizforge.FeedbackMessage(quiz.Result.Score, quiz.Result.Total)
	}

	err := s.templates["home"].ExecuteTemplate(w, "base.html", map[string]interface{}{
		"Quiz":     quiz,
		"Message":  message,
		"Feedback": feedback,
	})
	if err != nil {
		log.Printf("Template error in home: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	cookie, quiz := s.loadQuiz(r)
	content := r.FormValue("content")
	level := quizforge.ParseLevel(r.FormValue("level"))

	message := ""
	if err := quiz.Generate(r.Context(), s.gen, content, level); err != nil {
		log.Printf("Generation failed: %v", err)
		message = err.Error()
	}

	s.redirectHome(w, r, cookie, message)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	cookie, quiz := s.loadQuiz(r)

	for i := range quiz.Questions {
		if label := r.FormValue(fmt.Sprintf("q_%d", i)); label != "" {
			if err := quiz.Select(i, label); err != nil {
				log.Printf("Select failed: %v", err)
			}
		}
	}

	message := ""
	if _, err := quiz.Submit(); err != nil {
		message = err.Error()
	}

	s.redirectHome(w, r, cookie, message)
}

// redirectHome saves the cookie and bounces back to the home page. A
// cookie that cannot be written would strand the user with invisible
// state, so the failure is surfaced instead of swallowed.
func (s *Server) redirectHome(w http.ResponseWriter, r *http.Request, cookie *sessions.Session, message string) {
	if err := s.saveCookie(w, r, cookie, message); err != nil {
		log.Printf("Session save error: %v", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
