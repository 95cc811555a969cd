package sandbox

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JaimeStill/printmg/pkg/handlers"
)

func (s *Sandbox) adminDashboard(c *gin.Context) {
	handlers.RespondJSON(c, http.StatusOK, s.state.adminDashboard())
}

func (s *Sandbox) userDashboard(c *gin.Context) {
	handlers.RespondJSON(c, http.StatusOK, s.state.userDashboard(currentUser(c)))
}

func (s *Sandbox) listUsers(c *gin.Context) {
	handlers.RespondJSON(c, http.StatusOK, s.state.listUsers())
}
