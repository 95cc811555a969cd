package sandbox

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/pkg/handlers"
)

type registerRequest struct {
	LastName        string `json:"nom" validate:"required"`
	FirstName       string `json:"prenom" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"num_tel" validate:"required"`
	PostalCode      string `json:"code_postal"`
	City            string `json:"ville"`
	Country         string `json:"pays"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type forgotRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetRequest struct {
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func (s *Sandbox) obtainToken(c *gin.Context) {
	var creds backend.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		handlers.RespondError(c, s.logger, http.StatusBadRequest, err)
		return
	}

	user, err := s.state.authenticate(creds.Email, creds.Password)
	s.metrics.login("password", err)
	if err != nil {
		handlers.RespondDetail(c, s.logger, MapHTTPStatus(err), err)
		return
	}

	s.respondToken(c, user)
}

// googleLogin trusts the forwarded profile and opens a session for it,
// creating the account on first sign-in.
func (s *Sandbox) googleLogin(c *gin.Context) {
	var profile backend.GoogleProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		handlers.RespondError(c, s.logger, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(profile.Email) == "" {
		handlers.RespondFields(c, s.logger, http.StatusBadRequest, map[string][]string{
			"email": {"Ce champ est obligatoire."},
		})
		return
	}

	user, ok := s.state.userByEmail(profile.Email)
	if !ok {
		created, err := s.state.addUser(backend.User{
			LastName:        profile.FamilyName,
			FirstName:       profile.GivenName,
			Email:           profile.Email,
			GoogleAvatarURL: profile.Picture,
		}, uuid.NewString())
		s.metrics.login("google", err)
		if err != nil {
			handlers.RespondError(c, s.logger, MapHTTPStatus(err), err)
			return
		}
		s.logger.Info("account created from google profile", "email", created.Email)
		user = created
	} else {
		s.metrics.login("google", nil)
	}

	s.respondToken(c, user)
}

func (s *Sandbox) respondToken(c *gin.Context, user backend.User) {
	token, err := s.tokens.issue(user)
	if err != nil {
		handlers.RespondError(c, s.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondJSON(c, http.StatusOK, backend.TokenPair{Access: token, Role: user.Role})
}

func (s *Sandbox) me(c *gin.Context) {
	handlers.RespondJSON(c, http.StatusOK, currentUser(c))
}

func (s *Sandbox) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, s.logger, http.StatusBadRequest, err)
		return
	}
	if fields := fieldErrors(req); fields != nil {
		handlers.RespondFields(c, s.logger, http.StatusBadRequest, fields)
		return
	}
	if req.Password != req.ConfirmPassword {
		handlers.RespondFields(c, s.logger, http.StatusBadRequest, map[string][]string{
			"password": {ErrPasswordMismatch.Error()},
		})
		return
	}

	user, err := s.state.addUser(backend.User{
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		Email:      req.Email,
		Phone:      req.Phone,
		PostalCode: req.PostalCode,
		City:       req.City,
		Country:    req.Country,
		Role:       backend.RoleUser,
	}, req.Password)
	if err != nil {
		if MapHTTPStatus(err) == http.StatusBadRequest {
			handlers.RespondFields(c, s.logger, http.StatusBadRequest, map[string][]string{
				"email": {err.Error()},
			})
			return
		}
		handlers.RespondError(c, s.logger, MapHTTPStatus(err), err)
		return
	}

	s.logger.Info("account registered", "id", user.ID, "email", user.Email)
	handlers.RespondMessage(c, http.StatusCreated, "Utilisateur créé avec succès")
}

func (s *Sandbox) forgotPassword(c *gin.Context) {
	var req forgotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, s.logger, http.StatusBadRequest, err)
		return
	}
	if fields := fieldErrors(req); fields != nil {
		handlers.RespondFields(c, s.logger, http.StatusBadRequest, fields)
		return
	}

	uid, token, err := s.state.issueReset(req.Email)
	if err != nil {
		handlers.RespondError(c, s.logger, MapHTTPStatus(err), err)
		return
	}

	link := "/reinitialiser-mot-de-passe/" + uid + "/" + token + "/"
	s.mail.send(Mail{
		To:      req.Email,
		Subject: "Réinitialisation de votre mot de passe",
		Body:    "Cliquez sur le lien suivant pour réinitialiser votre mot de passe : " + link,
		UID:     uid,
		Token:   token,
		SentAt:  s.tokens.now(),
	})
	s.logger.Info("password reset issued", "email", req.Email, "link", link)

	handlers.RespondMessage(c, http.StatusOK, "Un lien de réinitialisation a été envoyé à votre adresse email.")
}

func (s *Sandbox) resetPassword(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, s.logger, http.StatusBadRequest, err)
		return
	}
	if fields := fieldErrors(req); fields != nil {
		handlers.RespondFields(c, s.logger, http.StatusBadRequest, fields)
		return
	}
	if req.Password != req.ConfirmPassword {
		handlers.RespondError(c, s.logger, MapHTTPStatus(ErrPasswordMismatch), ErrPasswordMismatch)
		return
	}

	id, err := s.state.consumeReset(c.Param("uid"), c.Param("token"))
	if err != nil {
		handlers.RespondError(c, s.logger, MapHTTPStatus(err), err)
		return
	}
	if err := s.state.setPassword(id, req.Password); err != nil {
		handlers.RespondError(c, s.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondMessage(c, http.StatusOK, "Mot de passe réinitialisé avec succès.")
}

func (s *Sandbox) outbox(c *gin.Context) {
	handlers.RespondJSON(c, http.StatusOK, s.mail.list(c.Query("to")))
}
