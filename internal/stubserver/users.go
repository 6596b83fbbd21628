package stubserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/revbook/revbook-client/internal/entities"
)

type signupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userUpdateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar"`
}

// authPayload is the signup/login response body: the profile with the
// remember token alongside.
type authPayload struct {
	entities.UserProfile
	Token string `json:"remember"`
}

func (s *Server) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		respondFail(c, http.StatusBadRequest, msgEmailRequired)
		return
	}
	if len(req.Password) < minPasswordLength {
		respondFail(c, http.StatusBadRequest, msgPasswordTooShort)
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		respondFail(c, http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[email]; taken {
		respondFail(c, http.StatusBadRequest, msgEmailTaken)
		return
	}

	acct := &account{
		profile: entities.UserProfile{
			ID:        s.nextUserID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     email,
			AvatarURL: entities.DefaultAvatarURL,
			CreatedAt: now(),
		},
		passwordHash: hash,
	}
	s.nextUserID++
	s.users[acct.profile.ID] = acct
	s.byEmail[email] = acct.profile.ID

	token, err := s.issueToken(acct.profile.ID)
	if err != nil {
		respondFail(c, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info().Uint("user_id", acct.profile.ID).Msg("account created")
	respondData(c, http.StatusCreated, authPayload{UserProfile: acct.profile, Token: token})
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.byEmail[email]
	if !ok {
		respondFail(c, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}
	acct := s.users[userID]
	if err := checkPassword(req.Password, acct.passwordHash); err != nil {
		respondFail(c, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	token, err := s.issueToken(userID)
	if err != nil {
		respondFail(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(c, http.StatusOK, authPayload{UserProfile: acct.profile, Token: token})
}

// UserInfo resolves a remember token passed as a query parameter. An
// unknown token is a 401 so clients know to discard it.
func (s *Server) UserInfo(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		respondFail(c, http.StatusUnauthorized, msgAuthRequired)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.tokens[token]
	if !ok {
		respondFail(c, http.StatusUnauthorized, msgAuthRequired)
		return
	}

	respondData(c, http.StatusOK, s.users[userID].profile)
}

func (s *Server) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondFail(c, http.StatusBadRequest, msgUserNotFound)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.users[uint(id)]
	if !ok {
		respondFail(c, http.StatusNotFound, msgUserNotFound)
		return
	}

	respondData(c, http.StatusOK, acct.profile)
}

// UpdateUser overwrites profile fields the request supplies. A user can
// only update their own account.
func (s *Server) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondFail(c, http.StatusBadRequest, msgUserNotFound)
		return
	}
	if uint(id) != c.GetUint(contextKeyUserID) {
		respondFail(c, http.StatusForbidden, msgAuthRequired)
		return
	}

	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.users[uint(id)]
	if req.FirstName != "" {
		acct.profile.FirstName = req.FirstName
	}
	if req.LastName != "" {
		acct.profile.LastName = req.LastName
	}
	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if other, taken := s.byEmail[email]; taken && other != acct.profile.ID {
			respondFail(c, http.StatusBadRequest, msgEmailTaken)
			return
		}
		delete(s.byEmail, acct.profile.Email)
		acct.profile.Email = email
		s.byEmail[email] = acct.profile.ID
	}
	if req.AvatarURL != "" {
		acct.profile.AvatarURL = req.AvatarURL
	}

	respondData(c, http.StatusOK, acct.profile)
}
