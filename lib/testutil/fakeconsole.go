package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// FakeConsole is an httptest stand-in for the admin console: a login
// form guarding a set of HTML pages, with the same redirect-to-login
// behavior the real console shows on expired sessions.
type FakeConsole struct {
	Server   *httptest.Server
	Username string
	Password string

	mu sync.Mutex
	// request uri (path plus query) -> authenticated page body
	pages         map[string]string
	failPaths     map[string]int
	sessions      map[string]bool
	loginAttempts int
	nextSession   int
}

const loginPage = `<html><body class="login">
<form method="post" action="/admin/login/">
<input type="hidden" name="csrfmiddlewaretoken" value="fake-csrf-token">
<input type="text" name="username">
<input type="password" name="password">
<input type="submit" value="Log in">
</form>
</body></html>`

const dashboardPage = `<html><body class="dashboard">
<div id="content"><h1>Site administration</h1></div>
</body></html>`

func NewFakeConsole(username, password string, pages map[string]string) *FakeConsole {
	if pages == nil {
		pages = map[string]string{}
	}
	f := &FakeConsole{
		Username: username,
		Password: password,
		pages:     pages,
		failPaths: map[string]int{},
		sessions:  map[string]bool{},
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *FakeConsole) Close() { f.Server.Close() }

// AdminUrl is what a console.Client should use as its base url.
func (f *FakeConsole) AdminUrl() string { return f.Server.URL + "/admin" }

func (f *FakeConsole) LoginAttempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginAttempts
}

// ExpireSessions invalidates every session server-side, like the real
// console does after its idle timeout.
func (f *FakeConsole) ExpireSessions() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = map[string]bool{}
}

func (f *FakeConsole) SetPage(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[path] = body
}

// FailPath makes the console answer the path with the given status,
// like a console that is half-down.
func (f *FakeConsole) FailPath(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPaths[path] = status
}

func (f *FakeConsole) authenticated(r *http.Request) bool {
	cookie, err := r.Cookie("sessionid")
	if err != nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[cookie.Value]
}

func (f *FakeConsole) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/admin/login/" {
		f.handleLogin(w, r)
		return
	}

	if !f.authenticated(r) {
		w.Write([]byte(loginPage))
		return
	}

	f.mu.Lock()
	status, failing := f.failPaths[r.URL.RequestURI()]
	body, ok := f.pages[r.URL.RequestURI()]
	f.mu.Unlock()
	if failing {
		w.WriteHeader(status)
		return
	}
	if !ok {
		body = dashboardPage
	}
	w.Write([]byte(body))
}

func (f *FakeConsole) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Write([]byte(loginPage))
		return
	}

	f.mu.Lock()
	f.loginAttempts++
	f.mu.Unlock()

	r.ParseForm()
	if r.PostForm.Get("csrfmiddlewaretoken") == "" ||
		r.PostForm.Get("username") != f.Username ||
		r.PostForm.Get("password") != f.Password {
		w.Write([]byte(loginPage))
		return
	}

	f.mu.Lock()
	f.nextSession++
	id := fmt.Sprintf("session-%d", f.nextSession)
	f.sessions[id] = true
	f.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: id, Path: "/"})
	http.Redirect(w, r, "/admin/", http.StatusFound)
}
