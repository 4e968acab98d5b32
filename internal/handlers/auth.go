package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/sedes-ce/sedesgo/internal/models"
	"github.com/sedes-ce/sedesgo/internal/utils"
)

type credentials struct {
	Nome     string `json:"nome,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login authenticates an operator and issues a token
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var creds credentials
	if err := json.NewDecoder(req.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	var user models.Usuario
	err := r.deps.DB.Where("email = ?", creds.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if !utils.CheckPasswordHash(creds.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(&user, r.deps.Config.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// register creates an operator account
func (r *Router) register(w http.ResponseWriter, req *http.Request) {
	var creds credentials
	if err := json.NewDecoder(req.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if creds.Email == "" || len(creds.Password) < 8 {
		respondError(w, http.StatusBadRequest, "Email and a password of at least 8 characters are required")
		return
	}

	hash, err := utils.HashPassword(creds.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user := models.Usuario{
		Nome:         creds.Nome,
		Email:        creds.Email,
		PasswordHash: hash,
		Role:         "operador",
	}
	if err := r.deps.DB.Create(&user).Error; err != nil {
		status, msg := registerStatus(err)
		respondError(w, status, msg)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// registerStatus maps a create failure to a response: only a duplicate email
// is the caller's fault, anything else is a server error.
func registerStatus(err error) (int, string) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return http.StatusConflict, "Email already registered"
	}
	return http.StatusInternalServerError, "Registration failed"
}
