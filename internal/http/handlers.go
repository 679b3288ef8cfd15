package httpx

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"blog/internal/auth"
	"blog/internal/models"
	"blog/internal/store"
	"blog/internal/util"
	"blog/internal/validate"
)

// loginFailedMessage is the single message for every credential failure,
// so responses never reveal whether the email exists.
const loginFailedMessage = "Login unsuccessful. Please check your email and password"

// page builds the template data every layout render needs.
func (s *Server) page(r *http.Request, title string) map[string]any {
	data := map[string]any{"Title": title}
	if user, ok := auth.UserFrom(r.Context()); ok {
		data["User"] = user
	}
	return data
}

func internalError(w http.ResponseWriter, what string, err error) {
	log.Printf("%s: %v", what, err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	posts, err := s.Posts.All(r.Context())
	if err != nil {
		internalError(w, "list posts", err)
		return
	}

	data := s.page(r, "Home")
	data["Posts"] = posts
	switch {
	case r.URL.Query().Get("ok") == "1":
		data["Flash"], data["FlashOK"] = "Your post has been created", true
	case r.URL.Query().Get("updated") == "1":
		data["Flash"], data["FlashOK"] = "Your post has been updated", true
	}
	util.Render(w, "home.html", data)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	util.Render(w, "about.html", s.page(r, "About"))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		data := s.page(r, "Register")
		data["Username"], data["Email"] = "", ""
		util.Render(w, "register.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	in := validate.RegisterInput{
		Username:        strings.TrimSpace(r.FormValue("username")),
		Email:           strings.TrimSpace(strings.ToLower(r.FormValue("email"))),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	rerender := func(msg string) {
		data := s.page(r, "Register")
		data["Error"] = msg
		data["Username"] = in.Username
		data["Email"] = in.Email
		util.Render(w, "register.html", data)
	}

	fe, err := validate.Registration(r.Context(), s.Users, in)
	if err != nil {
		internalError(w, "validate registration", err)
		return
	}
	if fe != nil {
		rerender(fe.Message)
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		internalError(w, "hash password", err)
		return
	}

	_, err = s.Users.Create(r.Context(), &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Picture:      models.DefaultPicture,
	})
	// The validator already checked uniqueness; these catch the race
	// against a concurrent registration.
	if errors.Is(err, store.ErrUsernameTaken) {
		rerender("this username is taken, please choose another one")
		return
	}
	if errors.Is(err, store.ErrEmailTaken) {
		rerender("this email is taken, please choose another one")
		return
	}
	if err != nil {
		internalError(w, "create user", err)
		return
	}

	http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		data := s.page(r, "Login")
		data["Email"] = ""
		data["Next"] = r.URL.Query().Get("next")
		if r.URL.Query().Get("registered") == "1" {
			data["Flash"], data["FlashOK"] = "Your account has been created! You can login now", true
		}
		util.Render(w, "login.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	remember := r.FormValue("remember") == "1"
	next := r.FormValue("next")

	token, session, err := s.Sessions.Login(r.Context(), email, password, remember)
	if errors.Is(err, auth.ErrInvalidLogin) {
		data := s.page(r, "Login")
		data["Error"] = loginFailedMessage
		data["Email"] = email
		data["Next"] = next
		util.Render(w, "login.html", data)
		return
	}
	if err != nil {
		internalError(w, "login", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.Cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})

	if !safeNext(next) {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(CookieName); err == nil {
		if err := s.Sessions.Logout(r.Context(), c.Value); err != nil {
			log.Printf("logout: %v", err)
		}
		http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1})
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	if r.Method == http.MethodGet {
		data := s.page(r, "Account")
		data["Username"] = user.Username
		data["Email"] = user.Email
		data["Picture"] = user.Picture
		if r.URL.Query().Get("ok") == "1" {
			data["Flash"], data["FlashOK"] = "Your account has been updated", true
		}
		util.Render(w, "account.html", data)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	in := validate.AccountInput{
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(strings.ToLower(r.FormValue("email"))),
	}

	file, header, err := r.FormFile("picture")
	switch {
	case err == nil:
		defer file.Close()
		in.Picture = header.Filename
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// keeping the current picture
	default:
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	rerender := func(msg string) {
		data := s.page(r, "Account")
		data["Error"] = msg
		data["Username"] = in.Username
		data["Email"] = in.Email
		data["Picture"] = user.Picture
		util.Render(w, "account.html", data)
	}

	fe, err := validate.AccountUpdate(r.Context(), s.Users, user, in)
	if err != nil {
		internalError(w, "validate account update", err)
		return
	}
	if fe != nil {
		rerender(fe.Message)
		return
	}

	pictureName := user.Picture
	if file != nil {
		pictureName, err = s.Pictures.Save(file, header.Filename)
		if err != nil {
			internalError(w, "save picture", err)
			return
		}
	}

	err = s.Users.UpdateProfile(r.Context(), user.ID, in.Username, in.Email, pictureName)
	if errors.Is(err, store.ErrUsernameTaken) {
		rerender("this username is taken, please choose another one")
		return
	}
	if errors.Is(err, store.ErrEmailTaken) {
		rerender("this email is taken, please choose another one")
		return
	}
	if err != nil {
		internalError(w, "update profile", err)
		return
	}

	http.Redirect(w, r, "/account?ok=1", http.StatusSeeOther)
}

func (s *Server) handlePostNew(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	if r.Method == http.MethodGet {
		data := s.page(r, "New Post")
		data["PostTitle"], data["Content"] = "", ""
		util.Render(w, "post_new.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := strings.TrimSpace(r.FormValue("content"))
	if title == "" || content == "" {
		data := s.page(r, "New Post")
		data["Error"] = "title and content are required"
		data["PostTitle"] = title
		data["Content"] = content
		util.Render(w, "post_new.html", data)
		return
	}

	if _, err := s.Posts.Create(r.Context(), &models.Post{UserID: user.ID, Title: title, Content: content}); err != nil {
		internalError(w, "create post", err)
		return
	}
	http.Redirect(w, r, "/?ok=1", http.StatusSeeOther)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	post, err := s.Posts.ByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		internalError(w, "load post", err)
		return
	}

	user, loggedIn := auth.UserFrom(r.Context())

	if r.Method == http.MethodGet {
		data := s.page(r, post.Title)
		data["Post"] = post
		data["CanEdit"] = loggedIn && user.ID == post.UserID
		util.Render(w, "post.html", data)
		return
	}

	// Updates require the caller to be the post's author.
	if !loggedIn {
		http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
		return
	}
	if user.ID != post.UserID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := strings.TrimSpace(r.FormValue("content"))
	if title == "" || content == "" {
		data := s.page(r, post.Title)
		data["Post"] = post
		data["CanEdit"] = true
		data["Error"] = "title and content are required"
		util.Render(w, "post.html", data)
		return
	}

	if err := s.Posts.Update(r.Context(), post.ID, title, content); err != nil {
		internalError(w, "update post", err)
		return
	}
	http.Redirect(w, r, "/?updated=1", http.StatusSeeOther)
}
