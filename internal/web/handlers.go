package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dquisbert/cartera/internal/models"
	"github.com/dquisbert/cartera/internal/session"
	"github.com/dquisbert/cartera/internal/transactions"
)

func (s *Server) loginPage(c *gin.Context) {
	data := gin.H{"Email": ""}
	if c.Query("registered") == "1" {
		data["Success"] = "¡Cuenta creada exitosamente! Inicia sesión para continuar"
	}
	c.HTML(http.StatusOK, "login.html", data)
}

func (s *Server) login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	_, err := s.sessions.Login(c.Request.Context(), email, password)
	if err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error": err.Error(),
			"Email": email,
		})
		return
	}

	c.Redirect(http.StatusFound, "/home")
}

func (s *Server) registerPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Username": "", "Email": "", "FullName": ""})
}

func (s *Server) register(c *gin.Context) {
	input := session.RegisterInput{
		Username:        c.PostForm("username"),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
		FullName:        c.PostForm("full_name"),
	}

	_, err := s.sessions.Register(c.Request.Context(), input)
	if err != nil {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Error":    err.Error(),
			"Username": input.Username,
			"Email":    input.Email,
			"FullName": input.FullName,
		})
		return
	}

	c.Redirect(http.StatusFound, "/login?registered=1")
}

// home is the gated dashboard. Without a usable session the browser goes
// back to /login.
func (s *Server) home(c *gin.Context) {
	if !s.sessions.IsAuthenticated(c.Request.Context()) {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, ok := s.sessions.User()
	if !ok {
		// Cached profile is advisory, fall back to the server
		fetched, err := s.sessions.CurrentUser(c.Request.Context())
		if err != nil {
			s.logger.Warn("Could not load profile for dashboard", "error", err)
		} else {
			user = fetched
		}
	}

	var warning string
	txs, err := s.txs.List(c.Request.Context())
	if err != nil {
		s.logger.Warn("Could not load transactions", "error", err)
		warning = "No se pudieron cargar los movimientos"
		txs = nil
	}

	movements := make([]movementView, 0, len(txs))
	for _, tx := range txs {
		movements = append(movements, newMovementView(tx, user.Username))
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"User":      user,
		"Balance":   transactions.NetMovement(txs, user.Username).StringFixed(2),
		"Movements": movements,
		"Warning":   warning,
	})
}

func (s *Server) logout(c *gin.Context) {
	s.sessions.Logout(c.Request.Context())
	c.Redirect(http.StatusFound, "/login")
}

func (s *Server) logoutAll(c *gin.Context) {
	s.sessions.LogoutAll(c.Request.Context())
	c.Redirect(http.StatusFound, "/login")
}

type movementView struct {
	Incoming    bool
	Description string
	Counterpart string
	Amount      string
	Time        string
	Status      string
}

func newMovementView(tx models.Transaction, account string) movementView {
	view := movementView{
		Incoming: tx.Incoming(account),
		Amount:   tx.Amount.StringFixed(2),
		Time:     tx.Time.Format("02/01/2006 15:04"),
		Status:   tx.Status,
	}

	if view.Incoming {
		view.Description = "Transferencia recibida"
		view.Counterpart = tx.FromAccount
	} else {
		view.Description = "Transferencia enviada"
		view.Counterpart = tx.ToAccount
	}
	return view
}
