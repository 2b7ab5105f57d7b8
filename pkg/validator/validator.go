package validator

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"toolbox-backend/pkg/navigation"
)

var (
	initOnce sync.Once

	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// Init registers the custom rules on gin's binding validator. Safe to call
// more than once.
func Init() {
	initOnce.Do(func() {
		if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustomValidations(engine)
		}
	})
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("username", validateUsername)
}

func ValidatePassword(password string) (bool, string) {
	if len(password) < 6 {
		return false, "password must be at least 6 characters long"
	}

	return true, ""
}

func ValidateUsername(username string) bool {
	return usernamePattern.MatchString(username) && len(username) >= 3 && len(username) <= 30
}

// ValidateModuleID accepts menu entry ids such as "snake-game".
func ValidateModuleID(id string) bool {
	return navigation.ValidID(id)
}

func validateUsername(fl validator.FieldLevel) bool {
	return ValidateUsername(fl.Field().String())
}
