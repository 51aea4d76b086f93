package handlers

import (
	"net/http"
	"strings"

	"fyp-portal/internal/database"
	"fyp-portal/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid form data"})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", form.Username).First(&user).Error; err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid login credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid login credentials"})
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	sess.Set("role", string(user.Role))
	_ = sess.Save()

	c.Redirect(http.StatusFound, "/")
}

func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/login")
}

func ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"errors": gin.H{}})
}

type registerForm struct {
	Username  string `form:"username" binding:"required,min=3,max=150"`
	Password  string `form:"password" binding:"required,min=6"`
	Role      string `form:"role" binding:"required,oneof=student supervisor"`
	FirstName string `form:"first_name" binding:"required,max=30"`
	LastName  string `form:"last_name" binding:"required,max=30"`
	Email     string `form:"email" binding:"required,email"`
	SussexID  string `form:"sussex_id" binding:"required,max=20"`

	// student only
	Course string `form:"course" binding:"max=100"`

	// supervisor only
	Department      string `form:"department" binding:"max=100"`
	TelephoneNumber string `form:"telephone_number" binding:"max=15"`
}

// Register creates an auth identity plus the matching student or
// supervisor profile. Admin accounts are never created here.
func Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{"errors": fieldErrors(err), "form": form})
		return
	}

	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	form.SussexID = strings.TrimSpace(form.SussexID)

	errs := map[string]string{}

	var count int64
	database.DB.Model(&models.User{}).
		Where("username = ?", form.Username).
		Count(&count)
	if count > 0 {
		errs["username"] = "Username is already taken."
	}

	role := models.UserRole(form.Role)
	switch role {
	case models.RoleStudent:
		database.DB.Model(&models.Student{}).
			Where("LOWER(email) = LOWER(?)", form.Email).
			Count(&count)
		if count > 0 {
			errs["email"] = "A student with this email already exists."
		}
		database.DB.Model(&models.Student{}).
			Where("sussex_id = ?", form.SussexID).
			Count(&count)
		if count > 0 {
			errs["sussex_id"] = "A student with this Sussex ID already exists."
		}
	case models.RoleSupervisor:
		database.DB.Model(&models.Supervisor{}).
			Where("LOWER(email) = LOWER(?)", form.Email).
			Count(&count)
		if count > 0 {
			errs["email"] = "A supervisor with this email already exists."
		}
		database.DB.Model(&models.Supervisor{}).
			Where("sussex_id = ?", form.SussexID).
			Count(&count)
		if count > 0 {
			errs["sussex_id"] = "A supervisor with this Sussex ID already exists."
		}
	}

	if len(errs) > 0 {
		render(c, http.StatusBadRequest, "register.html", gin.H{"errors": errs, "form": form})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		render(c, http.StatusInternalServerError, "register.html", gin.H{
			"errors": gin.H{"form": "Could not create the account."}, "form": form,
		})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Username:     form.Username,
			PasswordHash: string(hash),
			Role:         role,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if role == models.RoleStudent {
			return tx.Create(&models.Student{
				UserID:    user.ID,
				FirstName: form.FirstName,
				LastName:  form.LastName,
				Email:     form.Email,
				SussexID:  form.SussexID,
				Course:    form.Course,
			}).Error
		}
		return tx.Create(&models.Supervisor{
			UserID:          user.ID,
			FirstName:       form.FirstName,
			LastName:        form.LastName,
			Email:           form.Email,
			SussexID:        form.SussexID,
			Department:      form.Department,
			TelephoneNumber: form.TelephoneNumber,
		}).Error
	})
	if err != nil {
		log.Error().Err(err).Str("username", form.Username).Msg("registration failed")
		render(c, http.StatusInternalServerError, "register.html", gin.H{
			"errors": gin.H{"form": "Could not create the account."}, "form": form,
		})
		return
	}

	c.Redirect(http.StatusFound, "/login")
}
